package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/aggregation"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/insight"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// SpendingMonths is the number of months in a spending report.
const SpendingMonths = 6

// MonthlyStats is one month of ledger statistics.
type MonthlyStats struct {
	Summary       entity.Summary       `json:"summary"`
	CategoryStats entity.CategoryStats `json:"category_stats"`
	DailyStats    []entity.DailyStat   `json:"daily_stats"`
}

// StatsUseCase serves the cached ledger statistics of the dashboard. Every entry is keyed
// by the current date and dropped when the user's ledger changes.
type StatsUseCase struct {
	aggregator *aggregation.Aggregator
	categories adapter.CategoryRepository
	cache      adapter.ReadCache
	ttl        time.Duration
}

// NewStatsUseCase creates a new StatsUseCase instance.
func NewStatsUseCase(
	aggregator *aggregation.Aggregator,
	categories adapter.CategoryRepository,
	cache adapter.ReadCache,
	ttl time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		aggregator: aggregator,
		categories: categories,
		cache:      cache,
		ttl:        ttl,
	}
}

func (uc *StatsUseCase) key(parts ...any) string {
	key := valueobject.FormatDate(uc.aggregator.Today())
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

// QuickStats returns today's and this week's totals.
func (uc *StatsUseCase) QuickStats(ctx context.Context, userID uuid.UUID) (*aggregation.QuickStats, error) {
	return readThrough(ctx, uc.cache, userID, uc.key("quick"), uc.ttl, func() (*aggregation.QuickStats, error) {
		return uc.aggregator.QuickStats(ctx, userID)
	})
}

// Monthly returns the statistics of one month.
func (uc *StatsUseCase) Monthly(ctx context.Context, userID uuid.UUID, year, month int) (*MonthlyStats, error) {
	if err := valueobject.ValidateYearMonth(year, month); err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportPeriod,
			err.Error(),
			domainerror.ErrInvalidReportPeriod,
		)
	}

	return readThrough(ctx, uc.cache, userID, uc.key("monthly", year, month), uc.ttl, func() (*MonthlyStats, error) {
		return uc.monthly(ctx, userID, year, month)
	})
}

func (uc *StatsUseCase) monthly(ctx context.Context, userID uuid.UUID, year, month int) (*MonthlyStats, error) {
	r := valueobject.MonthRange(year, month)
	summary, err := uc.aggregator.MonthlySummary(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	stats, err := uc.aggregator.CategoryStats(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	daily, err := uc.aggregator.DailyStats(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	return &MonthlyStats{Summary: *summary, CategoryStats: stats, DailyStats: daily}, nil
}

// CategoryTrend returns monthly totals of one of the user's categories.
func (uc *StatsUseCase) CategoryTrend(ctx context.Context, userID, categoryID uuid.UUID, months int) ([]adapter.MonthTotal, error) {
	category, err := uc.categories.FindByID(ctx, categoryID)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if err != nil || category.UserID != userID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	if months <= 0 {
		months = aggregation.DefaultTrendMonths
	}

	return readThrough(ctx, uc.cache, userID, uc.key("trend", categoryID, months), uc.ttl, func() ([]adapter.MonthTotal, error) {
		return uc.aggregator.CategoryTrend(ctx, userID, categoryID, months)
	})
}

// SpendingReport summarizes the last six months, oldest first, ending with the current month.
func (uc *StatsUseCase) SpendingReport(ctx context.Context, userID uuid.UUID) (*insight.SpendingReport, error) {
	return readThrough(ctx, uc.cache, userID, uc.key("spending"), uc.ttl, func() (*insight.SpendingReport, error) {
		today := uc.aggregator.Today()
		months := make([]insight.SpendingMonth, 0, SpendingMonths)
		for i := SpendingMonths - 1; i >= 0; i-- {
			y, m := valueobject.ShiftMonth(today.Year(), int(today.Month()), -i)
			summary, err := uc.aggregator.MonthlySummary(ctx, userID, y, m)
			if err != nil {
				return nil, err
			}
			stats, err := uc.aggregator.CategoryStats(ctx, userID, valueobject.MonthRange(y, m))
			if err != nil {
				return nil, err
			}
			months = append(months, insight.SpendingMonth{Year: y, Month: m, Summary: *summary, Categories: stats})
		}
		return insight.Spending(months), nil
	})
}

// AverageDailyExpense returns the mean daily expense of the last days days.
func (uc *StatsUseCase) AverageDailyExpense(ctx context.Context, userID uuid.UUID, days int) (decimal.Decimal, error) {
	if days <= 0 {
		days = aggregation.DefaultAverageDays
	}
	return readThrough(ctx, uc.cache, userID, uc.key("avg", days), uc.ttl, func() (decimal.Decimal, error) {
		return uc.aggregator.AverageDailyExpense(ctx, userID, days)
	})
}
