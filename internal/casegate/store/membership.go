package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// memberships is the program membership registry data access layer.
type memberships struct {
	db *gorm.DB
}

func newMemberships(db *gorm.DB) *memberships {
	return &memberships{db: db}
}

// Assign creates a membership, or reactivates a previously removed one for
// the same (user, program) pair.
func (s *memberships) Assign(ctx context.Context, membership *model.ProgramMembership) error {
	existing, err := s.Get(ctx, membership.UserID, membership.ProgramID)
	if err != nil && !errors.IsCode(err, errors.ErrNotFound.Code) {
		return err
	}
	if existing != nil {
		existing.Role = membership.Role
		existing.Status = model.MembershipActive
		if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
			return errors.ErrDatabase.WithCause(err)
		}
		*membership = *existing
		return nil
	}

	membership.Status = model.MembershipActive
	if err := s.db.WithContext(ctx).Create(membership).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("membership already exists")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Remove marks a membership removed. The row stays on record; it stops
// resolving a role on the next evaluation.
func (s *memberships) Remove(ctx context.Context, userID, programID string) error {
	result := s.db.WithContext(ctx).
		Model(&model.ProgramMembership{}).
		Where("user_id = ? AND program_id = ?", userID, programID).
		Update("status", model.MembershipRemoved)
	if result.Error != nil {
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("membership not found")
	}
	return nil
}

// Get retrieves the membership for a (user, program) pair.
func (s *memberships) Get(ctx context.Context, userID, programID string) (*model.ProgramMembership, error) {
	var m model.ProgramMembership
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND program_id = ?", userID, programID).
		First(&m).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound.WithMessage("membership not found")
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &m, nil
}

// ListByUser lists all memberships a user holds.
func (s *memberships) ListByUser(ctx context.Context, userID string) ([]*model.ProgramMembership, error) {
	var list []*model.ProgramMembership
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("program_id").
		Find(&list).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return list, nil
}

// ListByProgram lists a program's memberships with pagination.
func (s *memberships) ListByProgram(ctx context.Context, programID string, offset, limit int) (int64, []*model.ProgramMembership, error) {
	var count int64
	var list []*model.ProgramMembership

	db := s.db.WithContext(ctx).Model(&model.ProgramMembership{}).Where("program_id = ?", programID)
	if err := db.Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	if err := db.Offset(offset).Limit(limit).Order("id").Find(&list).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, list, nil
}
