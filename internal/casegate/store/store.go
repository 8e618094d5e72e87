// Package store provides the data access layer for CaseGate.
package store

import (
	"context"

	"github.com/caseworks/casegate/internal/model"
)

// Factory defines the factory interface for creating stores.
type Factory interface {
	Programs() ProgramStore
	Memberships() MembershipStore
	Blocks() BlockStore
	Audit() AuditStore
	Flags() FlagStore
	FieldRules() FieldRuleStore
	AutoMigrate() error
	Close() error
}

// ProgramStore defines program registry storage.
type ProgramStore interface {
	Create(ctx context.Context, program *model.Program) error
	Update(ctx context.Context, program *model.Program) error
	Delete(ctx context.Context, programID string) error
	Get(ctx context.Context, programID string) (*model.Program, error)
	List(ctx context.Context, offset, limit int) (int64, []*model.Program, error)
}

// MembershipStore defines program membership registry storage.
type MembershipStore interface {
	Assign(ctx context.Context, membership *model.ProgramMembership) error
	Remove(ctx context.Context, userID, programID string) error
	Get(ctx context.Context, userID, programID string) (*model.ProgramMembership, error)
	ListByUser(ctx context.Context, userID string) ([]*model.ProgramMembership, error)
	ListByProgram(ctx context.Context, programID string, offset, limit int) (int64, []*model.ProgramMembership, error)
}

// BlockStore defines client access block registry storage.
type BlockStore interface {
	Create(ctx context.Context, block *model.ClientAccessBlock) error
	Delete(ctx context.Context, userID, clientID string) error
	Exists(ctx context.Context, userID, clientID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*model.ClientAccessBlock, error)
}

// AuditStore is the append-only audit sink and its read path. There is
// deliberately no update or delete method; immutability is additionally
// enforced by storage-layer triggers installed at migration time.
type AuditStore interface {
	Insert(ctx context.Context, entry *model.AuditEntry) error
	ListByProgram(ctx context.Context, programID string, offset, limit int) (int64, []*model.AuditEntry, error)
}

// FlagStore persists two-person safety-flag cancellation workflows.
type FlagStore interface {
	Get(ctx context.Context, flagID string) (*model.SafetyFlagCancellation, error)
	Save(ctx context.Context, rec *model.SafetyFlagCancellation) error
}

// FieldRuleStore backs the field-visibility delegate.
type FieldRuleStore interface {
	Upsert(ctx context.Context, rule *model.FieldVisibilityRule) error
	Visible(ctx context.Context, role, programID, fieldName string) (bool, error)
}
