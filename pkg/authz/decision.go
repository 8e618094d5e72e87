package authz

import (
	"context"

	"github.com/kart-io/logger"
)

// Outcome is the binary result of a decision as seen by callers.
type Outcome string

const (
	// OutcomeAllow means the operation may proceed.
	OutcomeAllow Outcome = "allow"

	// OutcomeDeny means the operation is denied.
	OutcomeDeny Outcome = "deny"
)

// DenyReason categorizes a denial for the audit trail. Reasons are never
// surfaced to the requester; from the caller's point of view every denial is
// the same generic "not authorized".
type DenyReason string

const (
	// ReasonNone marks an allowed decision.
	ReasonNone DenyReason = ""

	// ReasonNotMember means no active membership resolved a role.
	ReasonNotMember DenyReason = "not_member"

	// ReasonContextMismatch means a confidential program was targeted without
	// the matching session context selection.
	ReasonContextMismatch DenyReason = "context_mismatch"

	// ReasonBlocked means an active client access block applied.
	ReasonBlocked DenyReason = "blocked"

	// ReasonMatrixDeny means the matrix level for (role, key) is DENY.
	ReasonMatrixDeny DenyReason = "matrix_deny"

	// ReasonFieldHidden means the field-visibility table hid the field.
	ReasonFieldHidden DenyReason = "field_hidden"

	// ReasonFault means evaluation failed internally and was resolved to
	// DENY. Logged distinctly from normal denials so operators can triage
	// systemic faults separately from working-as-intended denials.
	ReasonFault DenyReason = "fault"
)

// Decision is the outcome of one access evaluation.
type Decision struct {
	// Outcome is allow or deny.
	Outcome Outcome `json:"outcome"`

	// Role is the role resolved for the program context ("" when none).
	Role Role `json:"role,omitempty"`

	// Level is the matrix level consulted ("" when scope denied first).
	Level Level `json:"level,omitempty"`

	// Scoped marks an allow the caller must further filter to its authorized
	// subset (e.g. own program's clients). The engine grants the right to
	// iterate; it does not iterate data itself.
	Scoped bool `json:"scoped,omitempty"`

	// GatedWarning marks an allow through a GATED entry made before the
	// justification infrastructure exists. Recorded in the audit entry.
	GatedWarning bool `json:"gated_warning,omitempty"`

	// Reason categorizes a denial for the audit trail.
	Reason DenyReason `json:"-"`
}

// Allowed reports whether the operation may proceed.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

func deny(reason DenyReason) Decision {
	return Decision{Outcome: OutcomeDeny, Reason: reason}
}

// Engine combines the role resolver, the scope evaluator and the permission
// matrix into single fail-closed decisions.
type Engine struct {
	matrix   *Matrix
	resolver *RoleResolver
	scope    *ScopeEvaluator
	fields   FieldVisibility
}

// NewEngine assembles the decision engine. fields may be nil when the
// deployment declares no PER_FIELD entries; a PER_FIELD evaluation without a
// delegate denies.
func NewEngine(matrix *Matrix, resolver *RoleResolver, scope *ScopeEvaluator, fields FieldVisibility) *Engine {
	return &Engine{
		matrix:   matrix,
		resolver: resolver,
		scope:    scope,
		fields:   fields,
	}
}

// Check evaluates one request. It never returns an error: every internal
// fault collapses to a DENY with ReasonFault, so a broken registry or session
// store can only ever fail closed.
//
// Two evaluations of an identical request with no intervening registry or
// session change yield the same decision; the engine holds no per-request
// state.
func (e *Engine) Check(ctx context.Context, req Request) Decision {
	role, ok, err := e.resolver.ResolveRole(ctx, req.UserID, req.ProgramID)
	if err != nil {
		return e.fault(req, "role resolution failed", err)
	}
	if !ok {
		return deny(ReasonNotMember)
	}

	// Scope runs before the matrix so a block or context mismatch can never
	// be shadowed by a permissive matrix entry.
	scope, err := e.scope.Evaluate(ctx, req)
	if err != nil {
		return e.fault(req, "scope evaluation failed", err)
	}
	switch scope {
	case ScopeOK:
	case ScopeNotMember:
		return deny(ReasonNotMember)
	case ScopeContextMismatch:
		return deny(ReasonContextMismatch)
	case ScopeBlocked:
		return deny(ReasonBlocked)
	default:
		return e.fault(req, "unknown scope result", nil)
	}

	level, found := e.matrix.Resolve(role, req.Key)
	if !found {
		// Startup validation makes this unreachable for registered keys;
		// treat it as a fault, not a default.
		return e.fault(req, "no matrix entry", nil)
	}

	switch level {
	case LevelDeny:
		d := deny(ReasonMatrixDeny)
		d.Role, d.Level = role, level
		return d
	case LevelAllow:
		return Decision{Outcome: OutcomeAllow, Role: role, Level: level}
	case LevelScoped:
		return Decision{Outcome: OutcomeAllow, Role: role, Level: level, Scoped: true}
	case LevelGated:
		// Allowed with a warning flag until justification capture exists;
		// the audit entry carries the flag either way.
		return Decision{Outcome: OutcomeAllow, Role: role, Level: level, GatedWarning: true}
	case LevelPerField:
		return e.checkField(ctx, req, role)
	default:
		return e.fault(req, "unknown permission level", nil)
	}
}

func (e *Engine) checkField(ctx context.Context, req Request, role Role) Decision {
	if e.fields == nil || req.Field == "" {
		d := deny(ReasonFieldHidden)
		d.Role, d.Level = role, LevelPerField
		return d
	}
	visible, err := e.fields.FieldVisible(ctx, req.UserID, role, req.ProgramID, req.Field)
	if err != nil {
		return e.fault(req, "field visibility lookup failed", err)
	}
	if !visible {
		d := deny(ReasonFieldHidden)
		d.Role, d.Level = role, LevelPerField
		return d
	}
	return Decision{Outcome: OutcomeAllow, Role: role, Level: LevelPerField}
}

// fault logs a systemic evaluation failure and resolves it to DENY. The log
// record is the only place the failure detail survives; the caller sees the
// same generic denial as any other.
func (e *Engine) fault(req Request, msg string, err error) Decision {
	logger.Errorw("access decision fault",
		"detail", msg,
		"error", err,
		"user", req.UserID,
		"key", req.Key.String(),
		"program", req.ProgramID,
	)
	return deny(ReasonFault)
}
