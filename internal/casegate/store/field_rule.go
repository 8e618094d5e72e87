package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// fieldRules backs the field-visibility delegate consulted for PER_FIELD
// levels.
type fieldRules struct {
	db *gorm.DB
}

func newFieldRules(db *gorm.DB) *fieldRules {
	return &fieldRules{db: db}
}

// Upsert creates or replaces a visibility rule.
func (s *fieldRules) Upsert(ctx context.Context, rule *model.FieldVisibilityRule) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role"}, {Name: "program_id"}, {Name: "field_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"visible"}),
		}).
		Create(rule).Error
	if err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Visible reports whether a rule makes the field visible. Absence of a rule
// reads as hidden.
func (s *fieldRules) Visible(ctx context.Context, role, programID, fieldName string) (bool, error) {
	var rule model.FieldVisibilityRule
	err := s.db.WithContext(ctx).
		Where("role = ? AND program_id = ? AND field_name = ?", role, programID, fieldName).
		First(&rule).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.ErrDatabase.WithCause(err)
	}
	return rule.Visible, nil
}
