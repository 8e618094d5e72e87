package model

// AuditEntry is one immutable access-decision record. The table is
// append-only: the store layer exposes no update or delete methods, schema
// migration installs triggers rejecting UPDATE and DELETE, and the production
// database grants the writing principal INSERT-only privileges.
//
// No gorm.DeletedAt here: soft deletion is still deletion.
type AuditEntry struct {
	// EntryID is a ULID, so primary-key order is creation order.
	EntryID        string `json:"entry_id" gorm:"primaryKey;size:26"`
	Actor          string `json:"actor" gorm:"size:64;not null;index:idx_audit_actor"`
	PermissionKey  string `json:"permission_key" gorm:"size:64;not null;index:idx_audit_key"`
	ProgramContext string `json:"program_context" gorm:"size:64;not null;index:idx_audit_program"`
	TargetClient   string `json:"target_client" gorm:"size:64"`
	ResolvedLevel  string `json:"resolved_level" gorm:"size:16"`
	Outcome        string `json:"outcome" gorm:"size:8;not null"`
	DenyReason     string `json:"deny_reason" gorm:"size:32"`
	GatedWarning   bool   `json:"gated_warning" gorm:"not null;default:false"`
	RequestID      string `json:"request_id" gorm:"size:64"`
	OccurredAt     int64  `json:"occurred_at" gorm:"not null"`
}

// TableName returns the table name for GORM.
func (e *AuditEntry) TableName() string {
	return "audit_entries"
}
