// Package policy declares the deployment's permission keys and the fixed
// role/key matrix. Every protected handler names one of these keys; nothing
// outside this package registers keys or writes matrix entries.
package policy

import "github.com/caseworks/casegate/pkg/authz"

// Permission keys. Registration panics on duplicates, so a copy-paste error
// here kills the process at init rather than shipping a silent always-deny.
var (
	KeyNoteCreate = authz.RegisterKey("note.create")
	KeyNoteView   = authz.RegisterKey("note.view")

	KeyClientCreate       = authz.RegisterKey("client.create")
	KeyClientView         = authz.RegisterKey("client.view")
	KeyClientViewClinical = authz.RegisterKey("client.view_clinical")

	KeyPlanView = authz.RegisterKey("plan.view")
	KeyPlanEdit = authz.RegisterKey("plan.edit")

	KeyAlertCreate = authz.RegisterKey("alert.create")
	KeyAlertCancel = authz.RegisterKey("alert.cancel")

	KeyAuditView = authz.RegisterKey("audit.view")

	KeyProgramManage  = authz.RegisterKey("program.manage")
	KeySettingsManage = authz.RegisterKey("settings.manage")

	KeyExportRun = authz.RegisterKey("export.run")

	// Custom profile fields carry per-field visibility rules rather than a
	// single yes/no for the whole profile.
	KeyProfileViewCustom = authz.RegisterKey("profile.view_custom")
)

func init() {
	// Cancelling a safety alert counters creating one; the two-person rule
	// applies to the pair.
	authz.RegisterPair(KeyAlertCreate, KeyAlertCancel)
}
