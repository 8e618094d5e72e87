package policy

import "github.com/caseworks/casegate/pkg/authz"

// Load builds and validates the deployment matrix. The table is total: every
// declared role has an explicit level for every registered key. Validate
// reports every missing or malformed entry at once, and the caller must treat
// any error as fatal before serving traffic.
//
// Levels follow the organization's access rules:
//
//   - front_desk handles intake and scheduling. They can create and look up
//     client records but never read case notes or clinical detail.
//   - direct_service is the working caseworker role. Full client and note
//     access within their own programs; they may raise safety alerts but not
//     cancel them.
//   - program_manager additionally reads program audit trails and cancels
//     alerts. Alert cancellation and data export are GATED: allowed, with a
//     prominent warning entry in the audit trail.
//   - executive sees audit trails and runs exports for oversight, but holds
//     no client-data access of their own.
//   - administrator configures programs and settings. The admin flag grants
//     no client-data access at all; an administrator who also does casework
//     carries a separate membership with one of the service roles.
func Load() (*authz.Matrix, error) {
	m := authz.NewMatrix()

	m.SetRow(authz.RoleFrontDesk, map[authz.Key]authz.Level{
		KeyNoteCreate:         authz.LevelDeny,
		KeyNoteView:           authz.LevelDeny,
		KeyClientCreate:       authz.LevelAllow,
		KeyClientView:         authz.LevelAllow,
		KeyClientViewClinical: authz.LevelDeny,
		KeyPlanView:           authz.LevelDeny,
		KeyPlanEdit:           authz.LevelDeny,
		KeyAlertCreate:        authz.LevelAllow,
		KeyAlertCancel:        authz.LevelDeny,
		KeyAuditView:          authz.LevelDeny,
		KeyProgramManage:      authz.LevelDeny,
		KeySettingsManage:     authz.LevelDeny,
		KeyExportRun:          authz.LevelDeny,
		KeyProfileViewCustom:  authz.LevelPerField,
	})

	m.SetRow(authz.RoleDirectService, map[authz.Key]authz.Level{
		KeyNoteCreate:         authz.LevelAllow,
		KeyNoteView:           authz.LevelAllow,
		KeyClientCreate:       authz.LevelAllow,
		KeyClientView:         authz.LevelAllow,
		KeyClientViewClinical: authz.LevelAllow,
		KeyPlanView:           authz.LevelAllow,
		KeyPlanEdit:           authz.LevelAllow,
		KeyAlertCreate:        authz.LevelAllow,
		KeyAlertCancel:        authz.LevelDeny,
		KeyAuditView:          authz.LevelDeny,
		KeyProgramManage:      authz.LevelDeny,
		KeySettingsManage:     authz.LevelDeny,
		KeyExportRun:          authz.LevelDeny,
		KeyProfileViewCustom:  authz.LevelPerField,
	})

	m.SetRow(authz.RoleProgramManager, map[authz.Key]authz.Level{
		KeyNoteCreate:         authz.LevelAllow,
		KeyNoteView:           authz.LevelAllow,
		KeyClientCreate:       authz.LevelAllow,
		KeyClientView:         authz.LevelAllow,
		KeyClientViewClinical: authz.LevelAllow,
		KeyPlanView:           authz.LevelAllow,
		KeyPlanEdit:           authz.LevelAllow,
		KeyAlertCreate:        authz.LevelAllow,
		KeyAlertCancel:        authz.LevelGated,
		KeyAuditView:          authz.LevelScoped,
		KeyProgramManage:      authz.LevelScoped,
		KeySettingsManage:     authz.LevelDeny,
		KeyExportRun:          authz.LevelGated,
		KeyProfileViewCustom:  authz.LevelAllow,
	})

	m.SetRow(authz.RoleExecutive, map[authz.Key]authz.Level{
		KeyNoteCreate:         authz.LevelDeny,
		KeyNoteView:           authz.LevelDeny,
		KeyClientCreate:       authz.LevelDeny,
		KeyClientView:         authz.LevelDeny,
		KeyClientViewClinical: authz.LevelDeny,
		KeyPlanView:           authz.LevelDeny,
		KeyPlanEdit:           authz.LevelDeny,
		KeyAlertCreate:        authz.LevelDeny,
		KeyAlertCancel:        authz.LevelDeny,
		KeyAuditView:          authz.LevelScoped,
		KeyProgramManage:      authz.LevelDeny,
		KeySettingsManage:     authz.LevelDeny,
		KeyExportRun:          authz.LevelGated,
		KeyProfileViewCustom:  authz.LevelDeny,
	})

	m.SetRow(authz.RoleAdministrator, map[authz.Key]authz.Level{
		KeyNoteCreate:         authz.LevelDeny,
		KeyNoteView:           authz.LevelDeny,
		KeyClientCreate:       authz.LevelDeny,
		KeyClientView:         authz.LevelDeny,
		KeyClientViewClinical: authz.LevelDeny,
		KeyPlanView:           authz.LevelDeny,
		KeyPlanEdit:           authz.LevelDeny,
		KeyAlertCreate:        authz.LevelDeny,
		KeyAlertCancel:        authz.LevelDeny,
		KeyAuditView:          authz.LevelScoped,
		KeyProgramManage:      authz.LevelAllow,
		KeySettingsManage:     authz.LevelAllow,
		KeyExportRun:          authz.LevelDeny,
		KeyProfileViewCustom:  authz.LevelDeny,
	})

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
