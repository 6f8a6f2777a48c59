package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// GoalView is a goal with the figures derived for display.
type GoalView struct {
	Goal      *entity.Goal
	Progress  decimal.Decimal
	Remaining decimal.Decimal
	IsOverdue bool
	Track     entity.GoalTrack
}

// ViewOf derives the display figures of a goal as of today.
func ViewOf(g *entity.Goal, today time.Time) GoalView {
	v := GoalView{
		Goal:      g,
		Progress:  g.ProgressPercent().Round(2),
		Remaining: g.Remaining(),
		IsOverdue: g.IsOverdue(today),
	}
	if g.IsActive() {
		v.Track = g.Track(today)
	}
	return v
}

// GetGoalInput represents the input for getting a goal.
type GetGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// GetGoalOutput represents the output of getting a goal.
type GetGoalOutput struct {
	Goal GoalView
}

// GetGoalUseCase handles getting a goal by ID.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the goal retrieval.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetGoalOutput{Goal: ViewOf(goal, uc.clock.Now())}, nil
}

// findOwnedGoal loads a goal and reports goals of other users as not found.
func findOwnedGoal(ctx context.Context, repo adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if isNotFound(err) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if goal.UserID != userID {
		return nil, goalNotFound()
	}
	return goal, nil
}

func goalNotFound() error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalNotFound,
		"goal not found",
		domainerror.ErrGoalNotFound,
	)
}
