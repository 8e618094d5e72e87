package biz

import (
	"context"

	"github.com/caseworks/casegate/internal/casegate/store"
	"github.com/caseworks/casegate/pkg/authz"
	"github.com/caseworks/casegate/pkg/session"
)

// AccessService assembles the decision engine and owns the enforcement
// gateway. Every other service borrows the gateway from here; it is the only
// place the engine is constructed.
type AccessService struct {
	gateway *authz.Gateway
}

// NewAccessService wires the engine over the registries, the session context
// store and the validated matrix.
func NewAccessService(factory store.Factory, contexts session.ContextStore, matrix *authz.Matrix) *AccessService {
	src := newRegistrySources(factory)
	engine := authz.NewEngine(
		matrix,
		authz.NewRoleResolver(src),
		authz.NewScopeEvaluator(src, src, src, contextSelector{contexts}),
		src,
	)
	return &AccessService{
		gateway: authz.NewGateway(engine, &auditSink{audit: factory.Audit()}),
	}
}

// Gateway exposes the enforcement gateway to sibling services.
func (s *AccessService) Gateway() *authz.Gateway {
	return s.gateway
}

// HasPermission is the UI-affordance projection: the same decision path as
// enforcement, minus the audit write and the guarded operation. What a user
// sees must never promise more than what enforce will let them do.
func (s *AccessService) HasPermission(ctx context.Context, req authz.Request) bool {
	return s.gateway.HasPermission(ctx, req)
}

// contextSelector narrows session.ContextStore to the engine's read-only
// ContextSelector contract, so the engine cannot write session state.
type contextSelector struct {
	store session.ContextStore
}

func (c contextSelector) SelectedContext(ctx context.Context, sessionID string) (string, error) {
	return c.store.SelectedContext(ctx, sessionID)
}
