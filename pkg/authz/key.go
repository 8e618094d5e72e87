package authz

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Key is a stable string identifier for a protected operation, namespaced by
// resource type ("note.create", "client.view_clinical", "alert.cancel").
//
// Every key used by an Enforce call site must be registered before the matrix
// is validated at startup; this catches typos before they become silent
// always-DENY bugs.
type Key string

func (k Key) String() string {
	return string(k)
}

// Namespace returns the resource-type prefix of the key ("note" for
// "note.create").
func (k Key) Namespace() string {
	if i := strings.IndexByte(string(k), '.'); i > 0 {
		return string(k)[:i]
	}
	return string(k)
}

var (
	keyMu       sync.RWMutex
	keyRegistry = make(map[Key]struct{})
	keyPairs    = make(map[Key]Key) // counter action -> originating action
)

// RegisterKey declares a permission key. Panics on duplicate registration so
// conflicting declarations surface at init time, not at request time.
func RegisterKey(k Key) Key {
	keyMu.Lock()
	defer keyMu.Unlock()

	if k == "" || !strings.Contains(string(k), ".") {
		panic(fmt.Sprintf("authz: permission key %q must be namespaced as resource.action", k))
	}
	if _, ok := keyRegistry[k]; ok {
		panic(fmt.Sprintf("authz: permission key %q already registered", k))
	}
	keyRegistry[k] = struct{}{}
	return k
}

// RegisterPair declares that counter is the paired counter-action of origin
// (e.g. alert.cancel counters alert.create). Paired actions are subject to
// the two-person rule: the actor who performed the originating action cannot
// perform the counter action on the same resource.
func RegisterPair(origin, counter Key) {
	keyMu.Lock()
	defer keyMu.Unlock()

	if _, ok := keyRegistry[origin]; !ok {
		panic(fmt.Sprintf("authz: pair origin %q is not a registered key", origin))
	}
	if _, ok := keyRegistry[counter]; !ok {
		panic(fmt.Sprintf("authz: pair counter %q is not a registered key", counter))
	}
	keyPairs[counter] = origin
}

// PairedOrigin returns the originating action paired with k, if any.
func PairedOrigin(k Key) (Key, bool) {
	keyMu.RLock()
	defer keyMu.RUnlock()
	origin, ok := keyPairs[k]
	return origin, ok
}

// RegisteredKeys returns all declared keys in sorted order.
func RegisteredKeys() []Key {
	keyMu.RLock()
	defer keyMu.RUnlock()

	out := make([]Key, 0, len(keyRegistry))
	for k := range keyRegistry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsRegistered reports whether k has been declared.
func IsRegistered(k Key) bool {
	keyMu.RLock()
	defer keyMu.RUnlock()
	_, ok := keyRegistry[k]
	return ok
}

// resetKeys clears the key registry. Test helper only.
func resetKeys() {
	keyMu.Lock()
	defer keyMu.Unlock()
	keyRegistry = make(map[Key]struct{})
	keyPairs = make(map[Key]Key)
}
