// Package biz implements the business logic for CaseGate: wiring the access
// engine to its registries, and the program-facing services that sit behind
// the HTTP handlers. Every protected operation in this package runs through
// the enforcement gateway; nothing consults the matrix or the registries
// directly.
package biz

import (
	"context"

	"github.com/caseworks/casegate/internal/casegate/store"
	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/authz"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// registrySources adapts the store factory to the engine's read-only source
// contracts. The engine only ever reads through these; registry writes happen
// in RegistryService, behind their own enforcement.
type registrySources struct {
	factory store.Factory
}

func newRegistrySources(factory store.Factory) *registrySources {
	return &registrySources{factory: factory}
}

// Membership implements authz.MembershipSource.
func (r *registrySources) Membership(ctx context.Context, userID, programID string) (*authz.Membership, error) {
	m, err := r.factory.Memberships().Get(ctx, userID, programID)
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound.Code) {
			return nil, nil
		}
		return nil, err
	}
	return &authz.Membership{
		UserID:    m.UserID,
		ProgramID: m.ProgramID,
		Role:      authz.Role(m.Role),
		Active:    m.Status == model.MembershipActive,
	}, nil
}

// Program implements authz.ProgramSource.
func (r *registrySources) Program(ctx context.Context, programID string) (*authz.Program, error) {
	p, err := r.factory.Programs().Get(ctx, programID)
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound.Code) {
			return nil, nil
		}
		return nil, err
	}
	return &authz.Program{
		ID:           p.ProgramID,
		Name:         p.Name,
		Confidential: p.Confidential,
	}, nil
}

// Blocked implements authz.BlockSource.
func (r *registrySources) Blocked(ctx context.Context, userID, clientID string) (bool, error) {
	return r.factory.Blocks().Exists(ctx, userID, clientID)
}

// FieldVisible implements authz.FieldVisibility.
func (r *registrySources) FieldVisible(ctx context.Context, userID string, role authz.Role, programID, field string) (bool, error) {
	return r.factory.FieldRules().Visible(ctx, role.String(), programID, field)
}

// auditSink adapts the append-only audit store to authz.AuditSink.
type auditSink struct {
	audit store.AuditStore
}

// Record implements authz.AuditSink.
func (s *auditSink) Record(ctx context.Context, entry *authz.Entry) error {
	return s.audit.Insert(ctx, &model.AuditEntry{
		EntryID:        entry.ID,
		Actor:          entry.Actor,
		PermissionKey:  entry.Key.String(),
		ProgramContext: entry.ProgramContext,
		TargetClient:   entry.TargetClient,
		ResolvedLevel:  string(entry.ResolvedLevel),
		Outcome:        string(entry.Outcome),
		DenyReason:     string(entry.Reason),
		GatedWarning:   entry.GatedWarning,
		RequestID:      entry.RequestID,
		OccurredAt:     entry.OccurredAt.UnixMilli(),
	})
}

// flagTransitions adapts the flag store to authz.FlagTransitionSource.
type flagTransitions struct {
	flags store.FlagStore
}

// Transition implements authz.FlagTransitionSource.
func (s *flagTransitions) Transition(ctx context.Context, flagID string) (*authz.FlagRecord, error) {
	rec, err := s.flags.Get(ctx, flagID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return &authz.FlagRecord{
		FlagID:        rec.FlagID,
		State:         authz.FlagState(rec.State),
		RecommendedBy: rec.RecommendedBy,
		ResolvedBy:    rec.ResolvedBy,
	}, nil
}

// SaveTransition implements authz.FlagTransitionSource.
func (s *flagTransitions) SaveTransition(ctx context.Context, rec *authz.FlagRecord) error {
	return s.flags.Save(ctx, &model.SafetyFlagCancellation{
		FlagID:        rec.FlagID,
		State:         string(rec.State),
		RecommendedBy: rec.RecommendedBy,
		ResolvedBy:    rec.ResolvedBy,
	})
}
