package session

import (
	"context"
	"sync"
	"time"

	"github.com/caseworks/casegate/pkg/utils/errors"
)

// MemoryStore is an in-process ContextStore for single-instance deployments
// and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	programID string
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory context store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Select records the session's confidentiality context.
func (s *MemoryStore) Select(_ context.Context, sessionID, programID string) error {
	if sessionID == "" || programID == "" {
		return errors.ErrInvalidParam.WithMessage("session id and program id are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{
		programID: programID,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Clear removes the session's selection.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// SelectedContext returns the session's current selection ("" when none).
func (s *MemoryStore) SelectedContext(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return "", nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return "", nil
	}
	return entry.programID, nil
}
