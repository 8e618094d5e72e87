// Package id provides unique ID generation for CaseGate.
//
// Audit entries and request IDs use ULIDs (Universally Unique
// Lexicographically Sortable Identifiers): they sort by creation time, which
// keeps the append-only audit table naturally ordered without a secondary
// index on the timestamp.
package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy   *ulid.MonotonicEntropy
	entropyMu sync.Mutex
)

func init() {
	entropy = ulid.Monotonic(rand.Reader, 0)
}

// NewULID generates a new ULID string.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Parse validates a ULID string and returns its embedded timestamp.
func Parse(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(u.Time())), nil
}
