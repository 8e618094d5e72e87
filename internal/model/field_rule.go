package model

import (
	"time"

	"gorm.io/gorm"
)

// FieldVisibilityRule backs the field-visibility delegate consulted for
// PER_FIELD matrix levels. Absence of a rule means hidden; visibility is
// always opt-in.
type FieldVisibilityRule struct {
	ID        uint64         `json:"id" gorm:"primaryKey;autoIncrement"`
	Role      string         `json:"role" gorm:"size:32;not null;uniqueIndex:uk_field_rule"`
	ProgramID string         `json:"program_id" gorm:"size:64;not null;uniqueIndex:uk_field_rule"`
	FieldName string         `json:"field_name" gorm:"size:64;not null;uniqueIndex:uk_field_rule"`
	Visible   bool           `json:"visible" gorm:"not null;default:false"`
	CreatedAt int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (r *FieldVisibilityRule) TableName() string {
	return "field_visibility_rules"
}

// BeforeCreate sets the CreatedAt field.
func (r *FieldVisibilityRule) BeforeCreate(tx *gorm.DB) (err error) {
	r.CreatedAt = time.Now().UnixMilli()
	return
}
