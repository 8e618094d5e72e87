package store

import (
	"gorm.io/gorm"

	"github.com/caseworks/casegate/internal/model"
)

// datastore implements the Factory interface over a GORM connection.
type datastore struct {
	db *gorm.DB
}

// NewFactory creates a storage factory over an established GORM connection.
func NewFactory(db *gorm.DB) Factory {
	return &datastore{db: db}
}

// Programs returns the program store.
func (ds *datastore) Programs() ProgramStore {
	return newPrograms(ds.db)
}

// Memberships returns the membership store.
func (ds *datastore) Memberships() MembershipStore {
	return newMemberships(ds.db)
}

// Blocks returns the client access block store.
func (ds *datastore) Blocks() BlockStore {
	return newBlocks(ds.db)
}

// Audit returns the audit store.
func (ds *datastore) Audit() AuditStore {
	return newAudit(ds.db)
}

// Flags returns the safety-flag workflow store.
func (ds *datastore) Flags() FlagStore {
	return newFlags(ds.db)
}

// FieldRules returns the field-visibility rule store.
func (ds *datastore) FieldRules() FieldRuleStore {
	return newFieldRules(ds.db)
}

// AutoMigrate migrates the database schema and installs the audit
// immutability triggers.
func (ds *datastore) AutoMigrate() error {
	if err := ds.db.AutoMigrate(
		&model.Program{},
		&model.ProgramMembership{},
		&model.ClientAccessBlock{},
		&model.AuditEntry{},
		&model.SafetyFlagCancellation{},
		&model.FieldVisibilityRule{},
	); err != nil {
		return err
	}
	return installAuditGuards(ds.db)
}

// Close closes the factory and underlying connections.
func (ds *datastore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// installAuditGuards makes audit immutability structural at the storage
// layer: UPDATE and DELETE against audit_entries are rejected by triggers, so
// not even a bug in this codebase can rewrite history. Production
// deployments additionally grant the service principal INSERT-only privileges
// on the table (see configs/casegate.yaml).
func installAuditGuards(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "sqlite":
		stmts := []string{
			`CREATE TRIGGER IF NOT EXISTS audit_entries_no_update
			BEFORE UPDATE ON audit_entries
			BEGIN SELECT RAISE(ABORT, 'audit entries are immutable'); END`,
			`CREATE TRIGGER IF NOT EXISTS audit_entries_no_delete
			BEFORE DELETE ON audit_entries
			BEGIN SELECT RAISE(ABORT, 'audit entries are immutable'); END`,
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	case "mysql":
		stmts := []string{
			`DROP TRIGGER IF EXISTS audit_entries_no_update`,
			`CREATE TRIGGER audit_entries_no_update
			BEFORE UPDATE ON audit_entries FOR EACH ROW
			SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'audit entries are immutable'`,
			`DROP TRIGGER IF EXISTS audit_entries_no_delete`,
			`CREATE TRIGGER audit_entries_no_delete
			BEFORE DELETE ON audit_entries FOR EACH ROW
			SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'audit entries are immutable'`,
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	case "postgres":
		stmts := []string{
			`CREATE OR REPLACE FUNCTION audit_entries_immutable() RETURNS trigger AS $$
			BEGIN RAISE EXCEPTION 'audit entries are immutable'; END;
			$$ LANGUAGE plpgsql`,
			`DROP TRIGGER IF EXISTS audit_entries_no_update ON audit_entries`,
			`CREATE TRIGGER audit_entries_no_update
			BEFORE UPDATE ON audit_entries FOR EACH ROW
			EXECUTE FUNCTION audit_entries_immutable()`,
			`DROP TRIGGER IF EXISTS audit_entries_no_delete ON audit_entries`,
			`CREATE TRIGGER audit_entries_no_delete
			BEFORE DELETE ON audit_entries FOR EACH ROW
			EXECUTE FUNCTION audit_entries_immutable()`,
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
