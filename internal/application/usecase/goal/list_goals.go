package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
	Status *entity.GoalStatus
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []GoalView
}

// ListGoalsUseCase lists a user's goals. Active goals are recomputed first so the
// listed amounts are current.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
	tracker  *Tracker
	clock    adapter.Clock
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository, tracker *Tracker, clock adapter.Clock) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
		tracker:  tracker,
		clock:    clock,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	if _, err := uc.tracker.RecomputeActive(ctx, input.UserID); err != nil {
		return nil, err
	}

	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID, input.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	today := uc.clock.Now()
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, ViewOf(g, today))
	}
	return &ListGoalsOutput{Goals: views}, nil
}
