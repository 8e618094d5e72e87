package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// flags persists safety-flag cancellation workflows.
type flags struct {
	db *gorm.DB
}

func newFlags(db *gorm.DB) *flags {
	return &flags{db: db}
}

// Get retrieves the workflow record for a flag, or (nil, nil) when no
// cancellation has been recommended.
func (s *flags) Get(ctx context.Context, flagID string) (*model.SafetyFlagCancellation, error) {
	var rec model.SafetyFlagCancellation
	err := s.db.WithContext(ctx).Where("flag_id = ?", flagID).First(&rec).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &rec, nil
}

// Save persists a workflow record, creating or updating by flag id.
func (s *flags) Save(ctx context.Context, rec *model.SafetyFlagCancellation) error {
	existing, err := s.Get(ctx, rec.FlagID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.State = rec.State
		existing.RecommendedBy = rec.RecommendedBy
		existing.ResolvedBy = rec.ResolvedBy
		if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
			return errors.ErrDatabase.WithCause(err)
		}
		*rec = *existing
		return nil
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}
