// Package authz implements the access-isolation engine for CaseGate.
//
// The engine reconciles four independent sources of truth into a single
// fail-closed decision:
//
//   - a fixed role/permission matrix, validated for completeness at startup
//   - per-program role assignment (a user holds a role per program, never a
//     single "highest role")
//   - program confidentiality isolation (confidential programs require an
//     explicit per-session context selection)
//   - per-client access blocks that force denial regardless of role
//
// Every protected operation passes through the Gateway, which evaluates the
// decision, records exactly one audit entry (allow and deny alike), and only
// then releases control to the caller. Any internal fault during evaluation
// resolves to DENY, never to ALLOW.
//
// Callers are never told why a denial occurred. In safety-sensitive contexts
// (domestic violence, conflict of interest) confirming or denying the
// existence of a record is itself a leak; the distinct denial reasons are
// preserved only in the audit trail.
package authz
