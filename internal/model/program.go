// Package model defines the persistence models for CaseGate.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Program represents one organizational service unit with its own client
// roster and staff role assignments.
type Program struct {
	ID           uint64         `json:"id" gorm:"primaryKey;autoIncrement"`
	ProgramID    string         `json:"program_id" gorm:"size:64;not null;uniqueIndex:uk_program_id"`
	Name         string         `json:"name" gorm:"size:128;not null"`
	Description  string         `json:"description" gorm:"size:255"`
	Confidential bool           `json:"confidential" gorm:"not null;default:false"`
	CreatedAt    int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt    int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (p *Program) TableName() string {
	return "programs"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (p *Program) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	p.CreatedAt = now
	p.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (p *Program) BeforeUpdate(tx *gorm.DB) (err error) {
	p.UpdatedAt = time.Now().UnixMilli()
	return
}
