package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/aggregation"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/goal"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/insight"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

const (
	recentDays  = 7
	recentLimit = 10
	// abnormalWindowDays is the trailing window scanned for unusually large expenses.
	abnormalWindowDays = 30
)

// Overview is the dashboard of the current month.
type Overview struct {
	Year          int
	Month         int
	Summary       entity.Summary
	Recent        []*entity.TransactionWithCategory
	Goals         []goal.GoalView
	Insights      []entity.Insight
	Suggestions   []entity.Insight
	CategoryStats entity.CategoryStats
}

// GetOverviewUseCase builds the dashboard overview.
type GetOverviewUseCase struct {
	aggregator *aggregation.Aggregator
	tracker    *goal.Tracker
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(aggregator *aggregation.Aggregator, tracker *goal.Tracker) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		aggregator: aggregator,
		tracker:    tracker,
	}
}

// Execute builds the overview. Active goals are recomputed first.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	today := uc.aggregator.Today()
	year, month := today.Year(), int(today.Month())
	monthRange := valueobject.MonthRange(year, month)

	summary, err := uc.aggregator.MonthlySummary(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	py, pm := valueobject.PreviousMonth(year, month)
	previous, err := uc.aggregator.MonthlySummary(ctx, userID, py, pm)
	if err != nil {
		return nil, err
	}
	stats, err := uc.aggregator.CategoryStats(ctx, userID, monthRange)
	if err != nil {
		return nil, err
	}
	recent, err := uc.aggregator.Recent(ctx, userID, recentDays, recentLimit)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.aggregator.Expenses(ctx, userID, valueobject.DateRange{
		Start: today.AddDate(0, 0, -abnormalWindowDays),
		End:   today,
	})
	if err != nil {
		return nil, err
	}

	goals, err := uc.tracker.RecomputeActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	active := goal.Classify(goals, today)
	activeGoals := make([]*entity.Goal, 0, len(active.Goals))
	for _, v := range active.Goals {
		activeGoals = append(activeGoals, v.Goal)
	}

	return &Overview{
		Year:    year,
		Month:   month,
		Summary: *summary,
		Recent:  recent,
		Goals:   active.Goals,
		Insights: insight.Monthly(insight.MonthlyInput{
			Today:           today,
			Summary:         *summary,
			PreviousExpense: previous.TotalExpense,
			RecentExpenses:  expenses,
			Goals:           activeGoals,
			CategoryStats:   stats,
		}),
		Suggestions: insight.Suggestions(insight.SuggestionInput{
			Summary:       *summary,
			CategoryStats: stats,
			Goals:         active.Counts,
		}),
		CategoryStats: stats,
	}, nil
}
