package biz

import (
	"context"

	"github.com/caseworks/casegate/internal/casegate/policy"
	"github.com/caseworks/casegate/internal/casegate/store"
	"github.com/caseworks/casegate/internal/model"
	"github.com/caseworks/casegate/pkg/authz"
)

// AuditService is the program-scoped audit read path for compliance
// reporting. Reads go through the gateway with their own permission key, so
// reading the audit trail is itself audited.
type AuditService struct {
	gateway *authz.Gateway
	audit   store.AuditStore
}

// NewAuditService creates the audit query service.
func NewAuditService(access *AccessService, factory store.Factory) *AuditService {
	return &AuditService{
		gateway: access.Gateway(),
		audit:   factory.Audit(),
	}
}

// ListByProgram returns one program's audit entries, newest first. The caller
// needs audit.view in that program; SCOPED grants are already satisfied
// because the query itself is bounded to the named program.
func (s *AuditService) ListByProgram(ctx context.Context, req authz.Request, offset, limit int) (int64, []*model.AuditEntry, error) {
	req.Key = policy.KeyAuditView

	var count int64
	var list []*model.AuditEntry
	err := s.gateway.EnforceScoped(ctx, req, func(ctx context.Context, _ authz.Decision) error {
		var err error
		count, list, err = s.audit.ListByProgram(ctx, req.ProgramID, offset, limit)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return count, list, nil
}
