package authz

import (
	"context"
	"time"

	"github.com/kart-io/logger"

	"github.com/caseworks/casegate/pkg/utils/errors"
	"github.com/caseworks/casegate/pkg/utils/id"
)

// Entry is one immutable audit record. Every Enforce call produces exactly
// one, whether the outcome is allow or deny.
type Entry struct {
	// ID is a ULID assigned at decision time.
	ID string

	// Actor is the principal the decision was made for.
	Actor string

	// Key is the permission key that was evaluated.
	Key Key

	// ProgramContext is the explicit program context of the evaluation.
	ProgramContext string

	// TargetClient is the client the operation targeted, when any.
	TargetClient string

	// ResolvedLevel is the matrix level consulted ("" when scope denied
	// before the matrix was reached).
	ResolvedLevel Level

	// Outcome is allow or deny.
	Outcome Outcome

	// Reason is the denial category ("" for allows). Preserved only here;
	// never surfaced to the requester.
	Reason DenyReason

	// GatedWarning marks an allow through a GATED entry.
	GatedWarning bool

	// RequestID correlates the entry with the originating request.
	RequestID string

	// OccurredAt is the decision timestamp.
	OccurredAt time.Time
}

// AuditSink records audit entries. Record must complete before the guarded
// operation runs; implementations are append-only with no update or delete
// path.
type AuditSink interface {
	Record(ctx context.Context, entry *Entry) error
}

// Gateway is the single call site application code may use to guard a
// protected operation. Handlers must not call Check and branch manually;
// routing everything through Enforce keeps enforcement and audit from
// diverging.
type Gateway struct {
	engine *Engine
	sink   AuditSink
}

// NewGateway wraps the decision engine with the audit sink.
func NewGateway(engine *Engine, sink AuditSink) *Gateway {
	return &Gateway{engine: engine, sink: sink}
}

// Check evaluates a request through the decision engine, converting panics
// into fail-closed denials.
func (g *Gateway) Check(ctx context.Context, req Request) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("access evaluation panic",
				"panic", r,
				"user", req.UserID,
				"key", req.Key.String(),
				"program", req.ProgramID,
			)
			d = deny(ReasonFault)
		}
	}()
	return g.engine.Check(ctx, req)
}

// HasPermission is a read-only projection of Check intended for UI affordance
// rendering ("show this button"). It runs the exact same decision path as
// Enforce; it only skips the audit write and the guarded operation.
func (g *Gateway) HasPermission(ctx context.Context, req Request) bool {
	return g.Check(ctx, req).Allowed()
}

// Enforce evaluates the request, records the audit entry, and only then
// invokes fn. On denial fn never runs and the caller receives the generic
// ErrNotAuthorized regardless of root cause. If the audit write fails the
// whole operation fails, allow or deny: availability of the audit subsystem
// is deliberately coupled to every access decision, trading uptime for
// non-repudiation.
func (g *Gateway) Enforce(ctx context.Context, req Request, fn func(context.Context) error) error {
	return g.EnforceScoped(ctx, req, func(ctx context.Context, _ Decision) error {
		return fn(ctx)
	})
}

// EnforceScoped behaves like Enforce but hands the decision to fn so callers
// holding a SCOPED grant can apply the required subset filter.
func (g *Gateway) EnforceScoped(ctx context.Context, req Request, fn func(context.Context, Decision) error) error {
	d := g.Check(ctx, req)

	entry := &Entry{
		ID:             id.NewULID(),
		Actor:          req.UserID,
		Key:            req.Key,
		ProgramContext: req.ProgramID,
		TargetClient:   req.ClientID,
		ResolvedLevel:  d.Level,
		Outcome:        d.Outcome,
		Reason:         d.Reason,
		GatedWarning:   d.GatedWarning,
		RequestID:      req.RequestID,
		OccurredAt:     time.Now().UTC(),
	}
	if err := g.sink.Record(ctx, entry); err != nil {
		logger.Errorw("audit write failed, aborting request",
			"error", err,
			"user", req.UserID,
			"key", req.Key.String(),
		)
		return errors.ErrAuditWrite.WithCause(err)
	}

	if !d.Allowed() {
		return errors.ErrNotAuthorized
	}
	if d.GatedWarning {
		logger.Warnw("gated permission allowed without justification record",
			"user", req.UserID,
			"key", req.Key.String(),
			"program", req.ProgramID,
		)
	}
	return fn(ctx, d)
}
