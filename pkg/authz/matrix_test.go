package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseworks/casegate/pkg/utils/errors"
)

func TestMatrixCompleteness(t *testing.T) {
	m := testMatrix(t)

	// Every declared (role, key) pair resolves to a value; none is missing.
	for _, role := range Roles() {
		for _, key := range RegisteredKeys() {
			level, ok := m.Resolve(role, key)
			assert.True(t, ok, "missing entry for (%s, %s)", role, key)
			assert.True(t, level.Valid(), "invalid level for (%s, %s)", role, key)
		}
	}
}

func TestMatrixValidateMissingEntry(t *testing.T) {
	m := NewMatrix()
	// Only one role row, and that row is itself incomplete.
	m.Set(RoleFrontDesk, testKeyNoteView, LevelDeny)

	err := m.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfiguration.Code))
	assert.Contains(t, err.Error(), "missing entry")
}

func TestMatrixValidateUnregisteredKey(t *testing.T) {
	m := testMatrixRows()
	m.Set(RoleFrontDesk, Key("bogus.never_declared"), LevelAllow)

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unregistered key")
}

func TestMatrixValidateUndeclaredRole(t *testing.T) {
	m := testMatrixRows()
	m.Set(Role("superuser"), testKeyNoteView, LevelAllow)

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared role")
}

func TestMatrixImmutableAfterValidate(t *testing.T) {
	m := testMatrix(t)
	assert.Panics(t, func() {
		m.Set(RoleFrontDesk, testKeyNoteView, LevelAllow)
	})
}

func TestMatrixNoDefaultLevel(t *testing.T) {
	m := NewMatrix()
	_, ok := m.Resolve(RoleAdministrator, testKeyNoteView)
	assert.False(t, ok, "an empty matrix must not default any level")
}

// testMatrixRows builds a complete matrix without validating it, for tests
// that corrupt it afterwards.
func testMatrixRows() *Matrix {
	m := NewMatrix()
	for _, role := range Roles() {
		for _, key := range RegisteredKeys() {
			m.Set(role, key, LevelDeny)
		}
	}
	return m
}
