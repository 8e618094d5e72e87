package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// programs is the program registry data access layer.
type programs struct {
	db *gorm.DB
}

func newPrograms(db *gorm.DB) *programs {
	return &programs{db: db}
}

// Create creates a new program.
func (s *programs) Create(ctx context.Context, program *model.Program) error {
	if err := s.db.WithContext(ctx).Create(program).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("program id already exists")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update updates an existing program.
func (s *programs) Update(ctx context.Context, program *model.Program) error {
	result := s.db.WithContext(ctx).Save(program)
	if result.Error != nil {
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("program not found")
	}
	return nil
}

// Delete deletes a program by its program id.
func (s *programs) Delete(ctx context.Context, programID string) error {
	result := s.db.WithContext(ctx).Where("program_id = ?", programID).Delete(&model.Program{})
	if result.Error != nil {
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("program not found")
	}
	return nil
}

// Get retrieves a program by its program id.
func (s *programs) Get(ctx context.Context, programID string) (*model.Program, error) {
	var program model.Program
	if err := s.db.WithContext(ctx).Where("program_id = ?", programID).First(&program).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound.WithMessage("program not found")
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &program, nil
}

// List lists programs with pagination.
func (s *programs) List(ctx context.Context, offset, limit int) (int64, []*model.Program, error) {
	var count int64
	var list []*model.Program

	db := s.db.WithContext(ctx).Model(&model.Program{})
	if err := db.Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	if err := db.Offset(offset).Limit(limit).Order("id").Find(&list).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, list, nil
}
