package aggregation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

const (
	// DefaultTrendMonths is the window CategoryTrend uses when months is not positive.
	DefaultTrendMonths = 6
	// DefaultAverageDays is the window AverageDailyExpense uses when days is not positive.
	DefaultAverageDays = 30
	// DefaultPageSize is the transaction list page size.
	DefaultPageSize = 20
)

// CategoryTrend sums one category per calendar month over the last months×30 days.
func (a *Aggregator) CategoryTrend(ctx context.Context, userID, categoryID uuid.UUID, months int) ([]adapter.MonthTotal, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	start := a.Today().AddDate(0, 0, -30*months)

	q := adapter.TransactionQuery{UserID: userID, StartDate: &start}.InCategory(categoryID)
	trend, err := a.transactions.SumByMonth(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category trend: %w", err)
	}
	return trend, nil
}

// AverageDailyExpense divides the expense total of the last days days by days.
func (a *Aggregator) AverageDailyExpense(ctx context.Context, userID uuid.UUID, days int) (decimal.Decimal, error) {
	if days <= 0 {
		days = DefaultAverageDays
	}
	today := a.Today()
	r := valueobject.DateRange{Start: today.AddDate(0, 0, -days), End: today}

	s, err := a.Summary(ctx, userID, r)
	if err != nil {
		return decimal.Zero, err
	}
	return s.TotalExpense.Div(decimal.NewFromInt(int64(days))).Round(2), nil
}

// PeriodTotals holds income, expense and net of a short period.
type PeriodTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// QuickStats holds today's and this week's totals.
type QuickStats struct {
	Today PeriodTotals `json:"today"`
	Week  PeriodTotals `json:"week"`
}

// QuickStats totals today and the current week. Weeks start on Monday.
func (a *Aggregator) QuickStats(ctx context.Context, userID uuid.UUID) (*QuickStats, error) {
	today := a.Today()

	day, err := a.transactions.Totals(ctx, adapter.TransactionQuery{UserID: userID, StartDate: &today, EndDate: &today})
	if err != nil {
		return nil, fmt.Errorf("failed to sum today's transactions: %w", err)
	}

	weekStart := valueobject.WeekStart(today)
	week, err := a.transactions.Totals(ctx, adapter.TransactionQuery{UserID: userID, StartDate: &weekStart})
	if err != nil {
		return nil, fmt.Errorf("failed to sum this week's transactions: %w", err)
	}

	return &QuickStats{Today: periodTotalsOf(day), Week: periodTotalsOf(week)}, nil
}

func periodTotalsOf(t *adapter.TransactionTotals) PeriodTotals {
	return PeriodTotals{Income: t.IncomeTotal, Expense: t.ExpenseTotal, Net: t.Net()}
}

// Recent lists up to limit transactions dated within the last days days, newest first.
func (a *Aggregator) Recent(ctx context.Context, userID uuid.UUID, days, limit int) ([]*entity.TransactionWithCategory, error) {
	since := a.Today().AddDate(0, 0, -days)
	q := adapter.TransactionQuery{UserID: userID, StartDate: &since}.
		OrderBy(adapter.OrderDateDesc).
		Page(limit, 0)
	rows, err := a.transactions.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return rows, nil
}

// Transactions returns one page of the transactions matching q. Pages start at 1; a
// non-positive limit uses DefaultPageSize.
func (a *Aggregator) Transactions(ctx context.Context, q adapter.TransactionQuery, page, limit int) (*entity.TransactionListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	total, err := a.transactions.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	rows, err := a.transactions.List(ctx, q.Page(limit, (page-1)*limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &entity.TransactionListResult{
		Transactions: rows,
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}
