package authz

import (
	"context"

	"github.com/caseworks/casegate/pkg/utils/errors"
)

// FlagState is the state of a safety-flag cancellation workflow. The workflow
// is a small explicit state machine rather than a boolean because a boolean
// cannot express who acted, and the two-person rule is about actors.
type FlagState string

const (
	// FlagRecommended means cancellation has been recommended and awaits a
	// second, distinct actor.
	FlagRecommended FlagState = "recommended"

	// FlagApproved means a distinct actor approved the cancellation.
	FlagApproved FlagState = "approved"

	// FlagRejected means a reviewer rejected the cancellation; the flag
	// stays in force.
	FlagRejected FlagState = "rejected"
)

// FlagRecord is the persisted workflow state for one safety flag, carrying
// the actor identity at each transition for the audit trail.
type FlagRecord struct {
	// FlagID identifies the safety flag under review.
	FlagID string

	// State is the current workflow state.
	State FlagState

	// RecommendedBy is the actor who recommended cancellation.
	RecommendedBy string

	// ResolvedBy is the actor who approved or rejected ("" while pending).
	ResolvedBy string
}

// FlagTransitionSource persists workflow records.
type FlagTransitionSource interface {
	// Transition returns the workflow record for a flag, or (nil, nil) when
	// no cancellation has been recommended.
	Transition(ctx context.Context, flagID string) (*FlagRecord, error)

	// SaveTransition persists a workflow record.
	SaveTransition(ctx context.Context, rec *FlagRecord) error
}

// Workflow implements the recommend -> approved | rejected state machine with
// actor distinctness as a checked invariant.
type Workflow struct {
	flags FlagTransitionSource
}

// NewWorkflow creates a workflow over the given transition store.
func NewWorkflow(flags FlagTransitionSource) *Workflow {
	return &Workflow{flags: flags}
}

// Recommend records that actor recommends cancelling the flag. Only one
// recommendation may be pending per flag.
func (w *Workflow) Recommend(ctx context.Context, flagID, actor string) error {
	if flagID == "" || actor == "" {
		return errors.ErrInvalidParam.WithMessage("flag id and actor are required")
	}
	rec, err := w.flags.Transition(ctx, flagID)
	if err != nil {
		return err
	}
	if rec != nil && rec.State == FlagRecommended {
		return errors.ErrAlreadyExists.WithMessage("cancellation already recommended")
	}
	return w.flags.SaveTransition(ctx, &FlagRecord{
		FlagID:        flagID,
		State:         FlagRecommended,
		RecommendedBy: actor,
	})
}

// Approve transitions a recommended cancellation to approved. The approver
// must differ from the recommender; the recommender approving their own
// recommendation is the exact failure mode the two-person rule exists to
// prevent.
func (w *Workflow) Approve(ctx context.Context, flagID, actor string) error {
	return w.resolve(ctx, flagID, actor, FlagApproved)
}

// Reject transitions a recommended cancellation to rejected. Rejection is
// also restricted to a distinct actor so one person cannot both raise and
// bury a recommendation to manipulate the record.
func (w *Workflow) Reject(ctx context.Context, flagID, actor string) error {
	return w.resolve(ctx, flagID, actor, FlagRejected)
}

func (w *Workflow) resolve(ctx context.Context, flagID, actor string, to FlagState) error {
	if flagID == "" || actor == "" {
		return errors.ErrInvalidParam.WithMessage("flag id and actor are required")
	}
	rec, err := w.flags.Transition(ctx, flagID)
	if err != nil {
		return err
	}
	if rec == nil || rec.State != FlagRecommended {
		return errors.ErrNotFound.WithMessage("no pending cancellation recommendation")
	}
	if rec.RecommendedBy == actor {
		return errors.ErrSameActor
	}
	rec.State = to
	rec.ResolvedBy = actor
	return w.flags.SaveTransition(ctx, rec)
}

// CheckDistinctActor reports whether approver may resolve the recommendation
// that recommender made on the flag. Returns false when the two actors are
// the same principal, or when the stored recommendation was in fact made by
// the would-be approver.
func (w *Workflow) CheckDistinctActor(ctx context.Context, flagID, recommender, approver string) (bool, error) {
	if recommender == approver {
		return false, nil
	}
	rec, err := w.flags.Transition(ctx, flagID)
	if err != nil {
		return false, err
	}
	if rec != nil && rec.RecommendedBy == approver {
		return false, nil
	}
	return true, nil
}
