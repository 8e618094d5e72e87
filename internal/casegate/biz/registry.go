package biz

import (
	"context"

	"github.com/caseworks/casegate/internal/casegate/policy"
	"github.com/caseworks/casegate/internal/casegate/store"
	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/authz"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// RegistryService is the write path for the registries the engine reads:
// programs, memberships, client access blocks and field-visibility rules.
// Program and roster changes need program.manage; field-visibility rules are
// deployment configuration and need settings.manage.
type RegistryService struct {
	gateway *authz.Gateway
	factory store.Factory
}

// NewRegistryService creates the registry administration service.
func NewRegistryService(access *AccessService, factory store.Factory) *RegistryService {
	return &RegistryService{
		gateway: access.Gateway(),
		factory: factory,
	}
}

// CreateProgram registers a new program.
func (s *RegistryService) CreateProgram(ctx context.Context, req authz.Request, program *model.Program) error {
	req.Key = policy.KeyProgramManage
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		return s.factory.Programs().Create(ctx, program)
	})
}

// UpdateProgram updates a program's name, description or confidentiality.
func (s *RegistryService) UpdateProgram(ctx context.Context, req authz.Request, program *model.Program) error {
	req.Key = policy.KeyProgramManage
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		return s.factory.Programs().Update(ctx, program)
	})
}

// GetProgram retrieves one program.
func (s *RegistryService) GetProgram(ctx context.Context, req authz.Request, programID string) (*model.Program, error) {
	req.Key = policy.KeyProgramManage

	var program *model.Program
	err := s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		var err error
		program, err = s.factory.Programs().Get(ctx, programID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return program, nil
}

// ListPrograms lists programs with pagination.
func (s *RegistryService) ListPrograms(ctx context.Context, req authz.Request, offset, limit int) (int64, []*model.Program, error) {
	req.Key = policy.KeyProgramManage

	var count int64
	var list []*model.Program
	err := s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		var err error
		count, list, err = s.factory.Programs().List(ctx, offset, limit)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return count, list, nil
}

// AssignMembership assigns or reactivates a role for a user in a program.
func (s *RegistryService) AssignMembership(ctx context.Context, req authz.Request, m *model.ProgramMembership) error {
	if !authz.Role(m.Role).Valid() {
		return errors.ErrInvalidParam.WithMessagef("unknown role %q", m.Role)
	}
	req.Key = policy.KeyProgramManage
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		if m.ProgramID != authz.GlobalContext {
			if _, err := s.factory.Programs().Get(ctx, m.ProgramID); err != nil {
				return err
			}
		}
		return s.factory.Memberships().Assign(ctx, m)
	})
}

// RemoveMembership marks a membership removed. The row stays on record; the
// user simply stops resolving a role in that program on the next evaluation.
func (s *RegistryService) RemoveMembership(ctx context.Context, req authz.Request, userID, programID string) error {
	req.Key = policy.KeyProgramManage
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		return s.factory.Memberships().Remove(ctx, userID, programID)
	})
}

// ListMemberships lists a program's roster with pagination.
func (s *RegistryService) ListMemberships(ctx context.Context, req authz.Request, programID string, offset, limit int) (int64, []*model.ProgramMembership, error) {
	req.Key = policy.KeyProgramManage

	var count int64
	var list []*model.ProgramMembership
	err := s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		var err error
		count, list, err = s.factory.Memberships().ListByProgram(ctx, programID, offset, limit)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return count, list, nil
}

// CreateBlock installs a client access block. Takes effect on the next
// evaluation; no session invalidation is needed because nothing caches scope.
func (s *RegistryService) CreateBlock(ctx context.Context, req authz.Request, block *model.ClientAccessBlock) error {
	req.Key = policy.KeyProgramManage
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		return s.factory.Blocks().Create(ctx, block)
	})
}

// DeleteBlock lifts a client access block.
func (s *RegistryService) DeleteBlock(ctx context.Context, req authz.Request, userID, clientID string) error {
	req.Key = policy.KeyProgramManage
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		return s.factory.Blocks().Delete(ctx, userID, clientID)
	})
}

// UpsertFieldRule creates or replaces a field-visibility rule.
func (s *RegistryService) UpsertFieldRule(ctx context.Context, req authz.Request, rule *model.FieldVisibilityRule) error {
	if !authz.Role(rule.Role).Valid() {
		return errors.ErrInvalidParam.WithMessagef("unknown role %q", rule.Role)
	}
	req.Key = policy.KeySettingsManage
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		return s.factory.FieldRules().Upsert(ctx, rule)
	})
}
