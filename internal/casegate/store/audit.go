package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// audit is the append-only audit data access layer. No update or delete
// method exists on purpose; the storage triggers installed at migration time
// reject them anyway.
type audit struct {
	db *gorm.DB
}

func newAudit(db *gorm.DB) *audit {
	return &audit{db: db}
}

// Insert appends one audit entry.
func (s *audit) Insert(ctx context.Context, entry *model.AuditEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return errors.ErrAuditWrite.WithCause(err)
	}
	return nil
}

// ListByProgram lists a program's audit entries, newest first.
func (s *audit) ListByProgram(ctx context.Context, programID string, offset, limit int) (int64, []*model.AuditEntry, error) {
	var count int64
	var list []*model.AuditEntry

	db := s.db.WithContext(ctx).Model(&model.AuditEntry{}).Where("program_context = ?", programID)
	if err := db.Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	// ULID primary keys sort by creation time.
	if err := db.Offset(offset).Limit(limit).Order("entry_id DESC").Find(&list).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}
	return count, list, nil
}
