package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// RecentTransactionLimit caps the transactions listed with goal statistics.
const RecentTransactionLimit = 10

var behindFactor = decimal.RequireFromString("0.8")

// Statistics describes how a goal is progressing.
type Statistics struct {
	Progress                decimal.Decimal
	CurrentAmount           decimal.Decimal
	TargetAmount            decimal.Decimal
	RemainingAmount         decimal.Decimal
	DaysPassed              int
	DaysRemaining           *int
	TotalDays               *int
	DailyAverage            decimal.Decimal
	EstimatedCompletionDate *time.Time
	IsOverdue               bool
	RecentTransactions      []*entity.TransactionWithCategory
}

// GoalQueryInput identifies one goal of a user.
type GoalQueryInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// GoalStatisticsUseCase computes goal statistics.
type GoalStatisticsUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGoalStatisticsUseCase creates a new GoalStatisticsUseCase instance.
func NewGoalStatisticsUseCase(
	goalRepo adapter.GoalRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GoalStatisticsUseCase {
	return &GoalStatisticsUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute computes the statistics of one goal.
func (uc *GoalStatisticsUseCase) Execute(ctx context.Context, input GoalQueryInput) (*Statistics, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	today := valueobject.DateOf(uc.clock.Now())
	stats := statisticsOf(goal, today)

	q := adapter.LedgerQuery(goal.UserID, goal.TrackingRange(today)).
		OrderBy(adapter.OrderDateDesc).
		Page(RecentTransactionLimit, 0)
	if goal.Type == entity.GoalTypeExpenseLimit {
		q = q.OfType(entity.TransactionTypeExpense)
	}
	stats.RecentTransactions, err = uc.transactionRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal transactions: %w", err)
	}
	return stats, nil
}

func statisticsOf(goal *entity.Goal, today time.Time) *Statistics {
	stats := &Statistics{
		Progress:        goal.ProgressPercent().Round(2),
		CurrentAmount:   goal.CurrentAmount,
		TargetAmount:    goal.TargetAmount,
		RemainingAmount: goal.Remaining(),
		DaysPassed:      goal.DaysPassed(today),
		DailyAverage:    decimal.Zero,
		IsOverdue:       goal.IsOverdue(today),
	}
	if goal.EndDate != nil {
		total := goal.TotalDays()
		remaining := valueobject.DaysBetween(today, *goal.EndDate)
		stats.TotalDays = &total
		stats.DaysRemaining = &remaining
	}

	if stats.DaysPassed > 0 {
		stats.DailyAverage = goal.CurrentAmount.Div(decimal.NewFromInt(int64(stats.DaysPassed))).Round(2)
	}
	if stats.DailyAverage.IsPositive() && stats.RemainingAmount.IsPositive() {
		days := stats.RemainingAmount.Div(stats.DailyAverage).IntPart()
		eta := today.AddDate(0, 0, int(days))
		stats.EstimatedCompletionDate = &eta
	}
	return stats
}

// HistoryPoint is the cumulative amount of a goal at one date.
type HistoryPoint struct {
	Date     time.Time
	Amount   decimal.Decimal
	Progress decimal.Decimal
}

// GoalHistoryUseCase computes weekly progress snapshots of a goal.
type GoalHistoryUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGoalHistoryUseCase creates a new GoalHistoryUseCase instance.
func NewGoalHistoryUseCase(
	goalRepo adapter.GoalRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GoalHistoryUseCase {
	return &GoalHistoryUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute returns one point per week from the start date up to the end date or today,
// whichever comes first. Progress is not capped.
func (uc *GoalHistoryUseCase) Execute(ctx context.Context, input GoalQueryInput) ([]HistoryPoint, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	today := valueobject.DateOf(uc.clock.Now())
	last := today
	if goal.EndDate != nil && goal.EndDate.Before(today) {
		last = *goal.EndDate
	}
	points := []HistoryPoint{}
	if last.Before(goal.StartDate) {
		return points, nil
	}

	days, err := uc.transactionRepo.SumByDay(ctx, adapter.LedgerQuery(goal.UserID, valueobject.DateRange{
		Start: goal.StartDate,
		End:   last,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to sum goal history: %w", err)
	}

	amount := decimal.Zero
	i := 0
	for d := goal.StartDate; !d.After(last); d = d.AddDate(0, 0, 7) {
		for ; i < len(days) && !days[i].Date.After(d); i++ {
			if goal.Type == entity.GoalTypeExpenseLimit {
				amount = amount.Add(days[i].Expense)
			} else {
				amount = amount.Add(days[i].Income).Sub(days[i].Expense)
			}
		}
		points = append(points, HistoryPoint{
			Date:     d,
			Amount:   amount,
			Progress: entity.ProgressOf(amount, goal.TargetAmount, false).Round(2),
		})
	}
	return points, nil
}

// Suggestion types.
const (
	SuggestionIncreaseEffort = "increase_effort"
	SuggestionSlightlyBehind = "slightly_behind"
	SuggestionOnTrack        = "on_track"
	SuggestionOverdue        = "overdue"
)

// Suggestion is advice on adjusting a goal.
type Suggestion struct {
	Type    string
	Message string
}

// GoalSuggestionsUseCase advises on one goal.
type GoalSuggestionsUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewGoalSuggestionsUseCase creates a new GoalSuggestionsUseCase instance.
func NewGoalSuggestionsUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *GoalSuggestionsUseCase {
	return &GoalSuggestionsUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute returns the suggestions for an active goal and none for any other status.
func (uc *GoalSuggestionsUseCase) Execute(ctx context.Context, input GoalQueryInput) ([]Suggestion, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}
	return suggestionsFor(goal, valueobject.DateOf(uc.clock.Now())), nil
}

func suggestionsFor(goal *entity.Goal, today time.Time) []Suggestion {
	out := []Suggestion{}
	if !goal.IsActive() {
		return out
	}

	stats := statisticsOf(goal, today)
	if stats.DaysRemaining != nil && *stats.DaysRemaining > 0 {
		expected := goal.ExpectedProgress(today)
		switch {
		case stats.Progress.LessThan(expected.Mul(behindFactor)):
			daily := stats.RemainingAmount.Div(decimal.NewFromInt(int64(*stats.DaysRemaining)))
			out = append(out, Suggestion{
				Type:    SuggestionIncreaseEffort,
				Message: fmt.Sprintf("The goal is behind. Add $%s per day to reach it.", daily.StringFixed(2)),
			})
		case stats.Progress.LessThan(expected):
			out = append(out, Suggestion{
				Type:    SuggestionSlightlyBehind,
				Message: "The goal is slightly behind. Keep going.",
			})
		default:
			out = append(out, Suggestion{
				Type:    SuggestionOnTrack,
				Message: "The goal is on track. Keep it up!",
			})
		}
	}

	if stats.IsOverdue && goal.CurrentAmount.LessThan(goal.TargetAmount) {
		out = append(out, Suggestion{
			Type:    SuggestionOverdue,
			Message: "The goal is past its end date. Adjust the target or extend the deadline.",
		})
	}
	return out
}
