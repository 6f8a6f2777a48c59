package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// StatusAction is a manual lifecycle change of a goal.
type StatusAction string

const (
	ActionCancel     StatusAction = "cancel"
	ActionComplete   StatusAction = "complete"
	ActionReactivate StatusAction = "reactivate"
)

// ChangeGoalStatusInput represents the input for a goal status change.
type ChangeGoalStatusInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Action StatusAction
}

// ChangeGoalStatusOutput represents the output of a goal status change.
type ChangeGoalStatusOutput struct {
	Goal GoalView
}

// ChangeGoalStatusUseCase cancels, completes or reactivates a goal.
type ChangeGoalStatusUseCase struct {
	goalRepo adapter.GoalRepository
	tracker  *Tracker
	clock    adapter.Clock
}

// NewChangeGoalStatusUseCase creates a new ChangeGoalStatusUseCase instance.
func NewChangeGoalStatusUseCase(goalRepo adapter.GoalRepository, tracker *Tracker, clock adapter.Clock) *ChangeGoalStatusUseCase {
	return &ChangeGoalStatusUseCase{
		goalRepo: goalRepo,
		tracker:  tracker,
		clock:    clock,
	}
}

// Execute applies the status change.
func (uc *ChangeGoalStatusUseCase) Execute(ctx context.Context, input ChangeGoalStatusInput) (*ChangeGoalStatusOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Now()
	var ok bool
	switch input.Action {
	case ActionCancel:
		ok = goal.Cancel()
	case ActionComplete:
		ok = goal.Complete()
	case ActionReactivate:
		ok = goal.Reactivate(today)
	default:
		return nil, fmt.Errorf("unknown goal action %q", input.Action)
	}
	if !ok {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalTransition,
			fmt.Sprintf("cannot %s a goal that is %s", input.Action, goal.Status),
			domainerror.ErrInvalidGoalTransition,
		)
	}

	goal, err = uc.tracker.Save(ctx, goal)
	if err != nil {
		return nil, err
	}

	return &ChangeGoalStatusOutput{Goal: ViewOf(goal, today)}, nil
}

// RefreshGoalInput represents the input for an explicit recompute.
type RefreshGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// RefreshGoalOutput represents the output of an explicit recompute.
type RefreshGoalOutput struct {
	Goal GoalView
}

// RefreshGoalUseCase recomputes one goal on request.
type RefreshGoalUseCase struct {
	goalRepo adapter.GoalRepository
	tracker  *Tracker
	clock    adapter.Clock
}

// NewRefreshGoalUseCase creates a new RefreshGoalUseCase instance.
func NewRefreshGoalUseCase(goalRepo adapter.GoalRepository, tracker *Tracker, clock adapter.Clock) *RefreshGoalUseCase {
	return &RefreshGoalUseCase{
		goalRepo: goalRepo,
		tracker:  tracker,
		clock:    clock,
	}
}

// Execute recomputes the goal. Inactive goals are returned unchanged.
func (uc *RefreshGoalUseCase) Execute(ctx context.Context, input RefreshGoalInput) (*RefreshGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.tracker.Recompute(ctx, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		goal = updated
	}
	return &RefreshGoalOutput{Goal: ViewOf(goal, uc.clock.Now())}, nil
}
