package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caseworks/casegate/pkg/utils/errors"
)

// Matrix is the fixed (Role x Key) -> Level table. It is immutable after
// Validate succeeds and is therefore safe to share across concurrent
// evaluations without locking.
//
// There is deliberately no default level: silent defaulting is how scope
// leaks happen. An entry missing for any (role, key) pair is a fatal
// configuration error surfaced by Validate before the process accepts
// requests.
type Matrix struct {
	entries   map[Role]map[Key]Level
	validated bool
}

// NewMatrix creates an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{entries: make(map[Role]map[Key]Level)}
}

// Set records the level for a (role, key) pair. Panics when called after
// Validate: the matrix is read-only once the process starts serving.
func (m *Matrix) Set(role Role, key Key, level Level) *Matrix {
	if m.validated {
		panic("authz: matrix is immutable after validation")
	}
	if m.entries[role] == nil {
		m.entries[role] = make(map[Key]Level)
	}
	m.entries[role][key] = level
	return m
}

// SetRow records the levels of every declared key for one role.
func (m *Matrix) SetRow(role Role, row map[Key]Level) *Matrix {
	for key, level := range row {
		m.Set(role, key, level)
	}
	return m
}

// Resolve returns the level for a (role, key) pair. The second return is
// false when no entry exists; after Validate has passed this cannot happen
// for declared roles and keys.
func (m *Matrix) Resolve(role Role, key Key) (Level, bool) {
	row, ok := m.entries[role]
	if !ok {
		return "", false
	}
	level, ok := row[key]
	return level, ok
}

// Validate checks the matrix is total over the declared role and key space:
// every registered key has an entry for every declared role, every entry
// names a registered key and a declared role, and every level is a declared
// level. Returns a configuration error describing every defect at once so a
// misconfigured deployment fails loudly with the full picture.
func (m *Matrix) Validate() error {
	var defects []string

	keys := RegisteredKeys()
	if len(keys) == 0 {
		defects = append(defects, "no permission keys registered")
	}

	for _, role := range allRoles {
		row := m.entries[role]
		for _, key := range keys {
			if _, ok := row[key]; !ok {
				defects = append(defects, fmt.Sprintf("missing entry for (%s, %s)", role, key))
			}
		}
	}

	for role, row := range m.entries {
		if !role.Valid() {
			defects = append(defects, fmt.Sprintf("entry for undeclared role %q", role))
			continue
		}
		for key, level := range row {
			if !IsRegistered(key) {
				defects = append(defects, fmt.Sprintf("entry for unregistered key %q (role %s)", key, role))
			}
			if !level.Valid() {
				defects = append(defects, fmt.Sprintf("invalid level %q for (%s, %s)", level, role, key))
			}
		}
	}

	if len(defects) > 0 {
		sort.Strings(defects)
		return errors.ErrConfiguration.WithMessagef(
			"permission matrix validation failed: %s", strings.Join(defects, "; "))
	}

	m.validated = true
	return nil
}
