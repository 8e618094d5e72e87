package model

import (
	"time"

	"gorm.io/gorm"
)

// Membership status values. A removed membership stays on record; it simply
// stops resolving a role on the next evaluation.
const (
	MembershipActive  = "active"
	MembershipRemoved = "removed"
)

// ProgramMembership assigns one role to one user within one program. A user
// may hold different roles in different programs simultaneously; there is no
// single "highest role".
type ProgramMembership struct {
	ID        uint64         `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string         `json:"user_id" gorm:"size:64;not null;uniqueIndex:uk_user_program;index:idx_user_id"`
	ProgramID string         `json:"program_id" gorm:"size:64;not null;uniqueIndex:uk_user_program;index:idx_program_id"`
	Role      string         `json:"role" gorm:"size:32;not null"`
	Status    string         `json:"status" gorm:"size:16;not null;default:active;index:idx_status"`
	CreatedAt int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (m *ProgramMembership) TableName() string {
	return "program_memberships"
}

// BeforeCreate sets the CreatedAt and UpdatedAt fields.
func (m *ProgramMembership) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	m.CreatedAt = now
	m.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (m *ProgramMembership) BeforeUpdate(tx *gorm.DB) (err error) {
	m.UpdatedAt = time.Now().UnixMilli()
	return
}
