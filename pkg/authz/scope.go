package authz

import (
	"context"
)

// ScopeResult classifies the outcome of scope evaluation. Any non-OK result
// is a hard DENY the permission matrix cannot override.
type ScopeResult string

const (
	// ScopeOK means all scope checks passed.
	ScopeOK ScopeResult = "ok"

	// ScopeNotMember means no active membership exists for the program.
	ScopeNotMember ScopeResult = "not_member"

	// ScopeContextMismatch means the program is confidential and the session
	// has not explicitly selected it as its confidentiality context.
	ScopeContextMismatch ScopeResult = "context_mismatch"

	// ScopeBlocked means an active client access block applies.
	ScopeBlocked ScopeResult = "blocked"
)

// ScopeEvaluator validates program membership, confidentiality-context
// selection, and client access blocks. It runs before the matrix is consulted
// so that a block or context mismatch can never be shadowed by a permissive
// matrix entry.
type ScopeEvaluator struct {
	members  MembershipSource
	programs ProgramSource
	blocks   BlockSource
	contexts ContextSelector
}

// NewScopeEvaluator creates a scope evaluator over the read-only registries
// and the session context selector.
func NewScopeEvaluator(members MembershipSource, programs ProgramSource, blocks BlockSource, contexts ContextSelector) *ScopeEvaluator {
	return &ScopeEvaluator{
		members:  members,
		programs: programs,
		blocks:   blocks,
		contexts: contexts,
	}
}

// Evaluate runs the scope checks in order: active membership, confidentiality
// context, client access block. The confidentiality selection is read from
// session state on every call; it is never cached for the life of the
// session.
func (e *ScopeEvaluator) Evaluate(ctx context.Context, req Request) (ScopeResult, error) {
	m, err := e.members.Membership(ctx, req.UserID, req.ProgramID)
	if err != nil {
		return "", err
	}
	if m == nil || !m.Active {
		return ScopeNotMember, nil
	}

	// GlobalContext is a pseudo-program; it carries no roster and cannot be
	// confidential, so the program lookup applies only to real programs.
	if req.ProgramID != GlobalContext {
		p, err := e.programs.Program(ctx, req.ProgramID)
		if err != nil {
			return "", err
		}
		if p == nil {
			return ScopeNotMember, nil
		}
		if p.Confidential {
			selected, err := e.contexts.SelectedContext(ctx, req.SessionID)
			if err != nil {
				return "", err
			}
			if selected != req.ProgramID {
				return ScopeContextMismatch, nil
			}
		}
	}

	if req.ClientID != "" {
		blocked, err := e.blocks.Blocked(ctx, req.UserID, req.ClientID)
		if err != nil {
			return "", err
		}
		if blocked {
			return ScopeBlocked, nil
		}
	}

	return ScopeOK, nil
}
