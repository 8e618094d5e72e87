// Package session stores per-session confidentiality context selections.
//
// A user with roles in both confidential and non-confidential programs must
// explicitly select which context they are operating in before any decision
// touching a confidential program can resolve to non-DENY. The selection
// lives in session state, outside the access engine; the engine re-reads it
// on every evaluation so a mid-session switch takes effect immediately.
package session

import (
	"context"
	"time"
)

// DefaultTTL bounds a context selection to a working session; a stale
// selection must not outlive the session it was made in.
const DefaultTTL = 8 * time.Hour

// ContextStore persists the confidentiality context selected per session.
// SelectedContext satisfies the engine's authz.ContextSelector contract.
type ContextStore interface {
	// Select records programID as the session's confidentiality context.
	Select(ctx context.Context, sessionID, programID string) error

	// Clear removes the session's selection.
	Clear(ctx context.Context, sessionID string) error

	// SelectedContext returns the session's current selection ("" when none).
	SelectedContext(ctx context.Context, sessionID string) (string, error)
}
