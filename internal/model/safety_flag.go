package model

import (
	"time"

	"gorm.io/gorm"
)

// SafetyFlagCancellation is the persisted two-person workflow state for one
// safety flag. Each transition carries the acting user so the audit trail can
// answer "who acted", not just "whether it happened".
type SafetyFlagCancellation struct {
	ID            uint64         `json:"id" gorm:"primaryKey;autoIncrement"`
	FlagID        string         `json:"flag_id" gorm:"size:64;not null;uniqueIndex:uk_flag_id"`
	State         string         `json:"state" gorm:"size:16;not null;index:idx_flag_state"`
	RecommendedBy string         `json:"recommended_by" gorm:"size:64;not null"`
	ResolvedBy    string         `json:"resolved_by" gorm:"size:64"`
	CreatedAt     int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt     int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (f *SafetyFlagCancellation) TableName() string {
	return "safety_flag_cancellations"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (f *SafetyFlagCancellation) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	f.CreatedAt = now
	f.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (f *SafetyFlagCancellation) BeforeUpdate(tx *gorm.DB) (err error) {
	f.UpdatedAt = time.Now().UnixMilli()
	return
}
