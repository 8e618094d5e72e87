package biz

import (
	"context"

	"github.com/caseworks/casegate/internal/casegate/store"
	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/session"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// SessionService manages per-session confidentiality context selections.
// Selecting a context is not itself a matrix-guarded operation, but it is
// limited to programs the user actively belongs to; otherwise selection could
// be used to probe which confidential programs exist.
type SessionService struct {
	contexts session.ContextStore
	factory  store.Factory
}

// NewSessionService creates the session context service.
func NewSessionService(contexts session.ContextStore, factory store.Factory) *SessionService {
	return &SessionService{contexts: contexts, factory: factory}
}

// Select records programID as the session's confidentiality context. The
// denial for a nonexistent program is identical to the denial for a program
// the user does not belong to.
func (s *SessionService) Select(ctx context.Context, userID, sessionID, programID string) error {
	if userID == "" || sessionID == "" || programID == "" {
		return errors.ErrInvalidParam.WithMessage("user, session and program are required")
	}

	m, err := s.factory.Memberships().Get(ctx, userID, programID)
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound.Code) {
			return errors.ErrNotAuthorized
		}
		return err
	}
	if m.Status != model.MembershipActive {
		return errors.ErrNotAuthorized
	}

	if err := s.contexts.Select(ctx, sessionID, programID); err != nil {
		return errors.ErrSessionStore.WithCause(err)
	}
	return nil
}

// Clear removes the session's selection. Decisions touching confidential
// programs return to DENY on the very next evaluation.
func (s *SessionService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.ErrInvalidParam.WithMessage("session is required")
	}
	if err := s.contexts.Clear(ctx, sessionID); err != nil {
		return errors.ErrSessionStore.WithCause(err)
	}
	return nil
}

// Selected returns the session's current selection ("" when none).
func (s *SessionService) Selected(ctx context.Context, sessionID string) (string, error) {
	selected, err := s.contexts.SelectedContext(ctx, sessionID)
	if err != nil {
		return "", errors.ErrSessionStore.WithCause(err)
	}
	return selected, nil
}
