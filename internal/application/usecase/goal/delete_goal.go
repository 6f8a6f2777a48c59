package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
)

// DeleteGoalInput represents the input for deleting a goal.
type DeleteGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// DeleteGoalUseCase handles goal deletion.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) error {
	if _, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID); err != nil {
		return err
	}

	if err := uc.goalRepo.Delete(ctx, input.GoalID); err != nil {
		if isNotFound(err) {
			return goalNotFound()
		}
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
