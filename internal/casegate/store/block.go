package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// blocks is the client access block registry data access layer.
type blocks struct {
	db *gorm.DB
}

func newBlocks(db *gorm.DB) *blocks {
	return &blocks{db: db}
}

// Create creates a client access block.
func (s *blocks) Create(ctx context.Context, block *model.ClientAccessBlock) error {
	if err := s.db.WithContext(ctx).Create(block).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("block already exists")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Delete removes a client access block.
func (s *blocks) Delete(ctx context.Context, userID, clientID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND client_id = ?", userID, clientID).
		Delete(&model.ClientAccessBlock{})
	if result.Error != nil {
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("block not found")
	}
	return nil
}

// Exists reports whether an active block exists for the (user, client) pair.
func (s *blocks) Exists(ctx context.Context, userID, clientID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.ClientAccessBlock{}).
		Where("user_id = ? AND client_id = ?", userID, clientID).
		Count(&count).Error
	if err != nil {
		return false, errors.ErrDatabase.WithCause(err)
	}
	return count > 0, nil
}

// ListByUser lists all blocks applying to a user.
func (s *blocks) ListByUser(ctx context.Context, userID string) ([]*model.ClientAccessBlock, error) {
	var list []*model.ClientAccessBlock
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return list, nil
}
