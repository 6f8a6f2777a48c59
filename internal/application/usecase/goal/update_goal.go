package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// UpdateGoalInput represents the input for goal update. Nil fields are left unchanged.
type UpdateGoalInput struct {
	GoalID       uuid.UUID
	UserID       uuid.UUID
	Name         *string
	TargetAmount *decimal.Decimal
	EndDate      *time.Time
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal GoalView
}

// UpdateGoalUseCase handles goal updates.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	tracker  *Tracker
	clock    adapter.Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, tracker *Tracker, clock adapter.Clock) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
		tracker:  tracker,
		clock:    clock,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateGoalName(name); err != nil {
			return nil, err
		}
		goal.Name = name
	}

	if input.TargetAmount != nil {
		if err := validateTarget(*input.TargetAmount); err != nil {
			return nil, err
		}
		goal.TargetAmount = *input.TargetAmount
	}

	if input.EndDate != nil {
		if goal.Period != entity.GoalPeriodCustom {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidGoalDates,
				"end date can only be changed for custom goals",
				domainerror.ErrInvalidGoalDates,
			)
		}
		if err := validateEndDate(goal.StartDate, *input.EndDate); err != nil {
			return nil, err
		}
		end := valueobject.DateOf(*input.EndDate)
		goal.EndDate = &end
	}

	goal.UpdatedAt = time.Now().UTC()
	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	// A new target or end date changes progress
	if updated, err := uc.tracker.Recompute(ctx, goal.UserID, goal.ID); err != nil {
		return nil, err
	} else if updated != nil {
		goal = updated
	}

	return &UpdateGoalOutput{Goal: ViewOf(goal, uc.clock.Now())}, nil
}
