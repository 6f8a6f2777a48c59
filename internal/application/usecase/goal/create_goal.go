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

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Type         entity.GoalType
	Period       entity.GoalPeriod
	StartDate    time.Time
	EndDate      *time.Time // Only read for custom periods
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal GoalView
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	tracker  *Tracker
	clock    adapter.Clock
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, tracker *Tracker, clock adapter.Clock) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		tracker:  tracker,
		clock:    clock,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateGoalName(name); err != nil {
		return nil, err
	}
	if err := validateTarget(input.TargetAmount); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalType,
			"goal type must be 'saving' or 'expense_limit'",
			domainerror.ErrInvalidGoalType,
		)
	}
	if !input.Period.IsValid() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalPeriod,
			"period must be 'monthly', 'yearly' or 'custom'",
			domainerror.ErrInvalidGoalPeriod,
		)
	}
	if input.StartDate.IsZero() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"start date is required",
			domainerror.ErrInvalidGoalDates,
		)
	}
	if input.Period == entity.GoalPeriodCustom && input.EndDate != nil {
		if err := validateEndDate(input.StartDate, *input.EndDate); err != nil {
			return nil, err
		}
	}

	goal := entity.NewGoal(
		input.UserID,
		name,
		input.TargetAmount,
		input.Type,
		input.Period,
		input.StartDate,
		input.EndDate,
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	// Bring the new goal up to date with the existing ledger
	if updated, err := uc.tracker.Recompute(ctx, goal.UserID, goal.ID); err != nil {
		return nil, err
	} else if updated != nil {
		goal = updated
	}

	return &CreateGoalOutput{Goal: ViewOf(goal, uc.clock.Now())}, nil
}

func validateGoalName(name string) error {
	if !valueobject.IsValidGoalName(name) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalName,
			"goal name must be 2-100 characters",
			domainerror.ErrInvalidGoalName,
		)
	}
	return nil
}

func validateTarget(amount decimal.Decimal) error {
	if err := valueobject.ValidateAmount(amount); err != nil {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount: "+err.Error(),
			domainerror.ErrInvalidTargetAmount,
		)
	}
	return nil
}

func validateEndDate(start, end time.Time) error {
	if !valueobject.DateOf(end).After(valueobject.DateOf(start)) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalDates,
			"end date must be after start date",
			domainerror.ErrInvalidGoalDates,
		)
	}
	return nil
}
