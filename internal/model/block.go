package model

import (
	"time"

	"gorm.io/gorm"
)

// ClientAccessBlock forces denial for one user against one client's data
// regardless of role or matrix level. Used for conflict-of-interest and
// domestic-violence safety situations.
type ClientAccessBlock struct {
	ID        uint64         `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string         `json:"user_id" gorm:"size:64;not null;uniqueIndex:uk_user_client;index:idx_block_user"`
	ClientID  string         `json:"client_id" gorm:"size:64;not null;uniqueIndex:uk_user_client;index:idx_block_client"`
	Reason    string         `json:"reason" gorm:"size:255;not null"`
	CreatedBy string         `json:"created_by" gorm:"size:64"`
	CreatedAt int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (b *ClientAccessBlock) TableName() string {
	return "client_access_blocks"
}

// BeforeCreate sets the CreatedAt field.
func (b *ClientAccessBlock) BeforeCreate(tx *gorm.DB) (err error) {
	b.CreatedAt = time.Now().UnixMilli()
	return
}
