package authz

import (
	"context"
)

// GlobalContext is the explicit org-wide program context. Operations that are
// not naturally scoped to one program (aggregate dashboards, org-wide
// settings) must name this context; the resolver never falls back to a user's
// most permissive program role on its own.
const GlobalContext = "global"

// Membership is one (user, program, role) assignment as supplied by the
// program/membership registry. The registry is consumed read-only; a removed
// membership stays on record with Active false.
type Membership struct {
	UserID    string
	ProgramID string
	Role      Role
	Active    bool
}

// Program describes one organizational service unit. Enrollment in a
// confidential program (shelter, addiction treatment) is itself sensitive:
// access requires the session to have explicitly selected that program as its
// confidentiality context.
type Program struct {
	ID           string
	Name         string
	Confidential bool
}

// MembershipSource supplies membership lookups. Returns (nil, nil) when no
// membership exists for the pair.
type MembershipSource interface {
	Membership(ctx context.Context, userID, programID string) (*Membership, error)
}

// ProgramSource supplies program lookups. Returns (nil, nil) when the program
// does not exist.
type ProgramSource interface {
	Program(ctx context.Context, programID string) (*Program, error)
}

// BlockSource reports whether an active client access block exists for a
// (user, client) pair.
type BlockSource interface {
	Blocked(ctx context.Context, userID, clientID string) (bool, error)
}

// ContextSelector reports the confidentiality context the session has
// explicitly selected ("" when none). Session state is owned outside this
// engine; the selection is re-read on every evaluation, never cached, so a
// mid-session change takes effect immediately.
type ContextSelector interface {
	SelectedContext(ctx context.Context, sessionID string) (string, error)
}

// FieldVisibility is the external per-field configuration collaborator
// consulted for PER_FIELD levels.
type FieldVisibility interface {
	FieldVisible(ctx context.Context, userID string, role Role, programID, field string) (bool, error)
}

// Request carries one access evaluation. ProgramID is always explicit; use
// GlobalContext for operations that are not program-scoped.
type Request struct {
	// UserID is the already-authenticated principal.
	UserID string

	// SessionID identifies the caller's session for confidentiality-context
	// lookup.
	SessionID string

	// Key is the protected operation being attempted.
	Key Key

	// ProgramID is the explicit program context (or GlobalContext).
	ProgramID string

	// ClientID is the target client, when the operation touches one.
	ClientID string

	// Field is the field name consulted for PER_FIELD keys.
	Field string

	// RequestID correlates the audit entry with the HTTP request.
	RequestID string
}
