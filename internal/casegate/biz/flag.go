package biz

import (
	"context"

	"github.com/caseworks/casegate/internal/casegate/policy"
	"github.com/caseworks/casegate/internal/casegate/store"
	"github.com/caseworks/casegate/pkg/authz"
)

// FlagService runs the two-person safety-flag cancellation workflow.
// Recommending needs alert.create; approving or rejecting needs alert.cancel.
// The state machine itself enforces that the approver is not the recommender.
type FlagService struct {
	gateway  *authz.Gateway
	workflow *authz.Workflow
}

// NewFlagService creates the safety-flag workflow service.
func NewFlagService(access *AccessService, factory store.Factory) *FlagService {
	return &FlagService{
		gateway:  access.Gateway(),
		workflow: authz.NewWorkflow(&flagTransitions{flags: factory.Flags()}),
	}
}

// Recommend records that the requesting user recommends cancelling the flag.
func (s *FlagService) Recommend(ctx context.Context, req authz.Request, flagID string) error {
	req.Key = policy.KeyAlertCreate
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		return s.workflow.Recommend(ctx, flagID, req.UserID)
	})
}

// Approve resolves a pending recommendation as approved. The recommender
// approving their own recommendation fails inside the workflow.
func (s *FlagService) Approve(ctx context.Context, req authz.Request, flagID string) error {
	req.Key = policy.KeyAlertCancel
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		return s.workflow.Approve(ctx, flagID, req.UserID)
	})
}

// Reject resolves a pending recommendation as rejected; the flag stays in
// force.
func (s *FlagService) Reject(ctx context.Context, req authz.Request, flagID string) error {
	req.Key = policy.KeyAlertCancel
	return s.gateway.Enforce(ctx, req, func(ctx context.Context) error {
		return s.workflow.Reject(ctx, flagID, req.UserID)
	})
}

// CheckDistinctActor reports whether approver may resolve the pending
// recommendation on the flag. Exposed for callers that want to disable the
// approve affordance up front.
func (s *FlagService) CheckDistinctActor(ctx context.Context, flagID, recommender, approver string) (bool, error) {
	return s.workflow.CheckDistinctActor(ctx, flagID, recommender, approver)
}
