// Package aggregation computes ledger statistics over calendar date ranges.
package aggregation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// DefaultTopExpenses is the number of expenses TopExpenses returns when n is not positive.
const DefaultTopExpenses = 5

// NoDescription replaces empty descriptions in top expense listings.
const NoDescription = "no description"

// Aggregator reads a user's ledger and derives summaries from it.
type Aggregator struct {
	transactions adapter.TransactionRepository
	clock        adapter.Clock
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(transactions adapter.TransactionRepository, clock adapter.Clock) *Aggregator {
	return &Aggregator{
		transactions: transactions,
		clock:        clock,
	}
}

// Today returns the current calendar date in the clock's timezone.
func (a *Aggregator) Today() time.Time {
	return valueobject.DateOf(a.clock.Now())
}

// Summary totals income and expense over r.
func (a *Aggregator) Summary(ctx context.Context, userID uuid.UUID, r valueobject.DateRange) (*entity.Summary, error) {
	totals, err := a.transactions.Totals(ctx, adapter.LedgerQuery(userID, r))
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions: %w", err)
	}
	s := summaryOf(totals)
	return &s, nil
}

// MonthlySummary totals one calendar month and stamps the period on the result.
func (a *Aggregator) MonthlySummary(ctx context.Context, userID uuid.UUID, year, month int) (*entity.Summary, error) {
	s, err := a.Summary(ctx, userID, valueobject.MonthRange(year, month))
	if err != nil {
		return nil, err
	}
	s.Year, s.Month = year, month
	return s, nil
}

func summaryOf(t *adapter.TransactionTotals) entity.Summary {
	return entity.Summary{
		TotalIncome:  t.IncomeTotal,
		TotalExpense: t.ExpenseTotal,
		NetAmount:    t.Net(),
		IncomeCount:  int(t.IncomeCount),
		ExpenseCount: int(t.ExpenseCount),
		TotalCount:   int(t.IncomeCount + t.ExpenseCount),
	}
}

// CategoryStats groups totals over r by category name. Categories without activity are
// omitted; each list is ordered by amount desc, then name.
func (a *Aggregator) CategoryStats(ctx context.Context, userID uuid.UUID, r valueobject.DateRange) (entity.CategoryStats, error) {
	totals, err := a.transactions.SumByCategory(ctx, adapter.LedgerQuery(userID, r))
	if err != nil {
		return entity.CategoryStats{}, fmt.Errorf("failed to group transactions by category: %w", err)
	}
	return categoryStatsOf(totals), nil
}

func categoryStatsOf(totals []adapter.CategoryTotal) entity.CategoryStats {
	income := map[string]decimal.Decimal{}
	expense := map[string]decimal.Decimal{}
	for _, t := range totals {
		switch t.Type {
		case entity.TransactionTypeIncome:
			income[t.CategoryName] = income[t.CategoryName].Add(t.Total)
		case entity.TransactionTypeExpense:
			expense[t.CategoryName] = expense[t.CategoryName].Add(t.Total)
		}
	}
	return entity.CategoryStats{
		Income:  sortedAmounts(income),
		Expense: sortedAmounts(expense),
	}
}

func sortedAmounts(byName map[string]decimal.Decimal) []entity.CategoryAmount {
	out := make([]entity.CategoryAmount, 0, len(byName))
	for name, amount := range byName {
		if amount.IsZero() {
			continue
		}
		out = append(out, entity.CategoryAmount{Category: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DailyStats returns one entry per day of r, ascending, with zeroes on quiet days.
func (a *Aggregator) DailyStats(ctx context.Context, userID uuid.UUID, r valueobject.DateRange) ([]entity.DailyStat, error) {
	days, err := a.transactions.SumByDay(ctx, adapter.LedgerQuery(userID, r))
	if err != nil {
		return nil, fmt.Errorf("failed to group transactions by day: %w", err)
	}

	byDate := make(map[string]adapter.DayTotal, len(days))
	for _, d := range days {
		byDate[valueobject.FormatDate(d.Date)] = d
	}

	stats := make([]entity.DailyStat, 0, r.Days())
	r.EachDay(func(day time.Time) {
		key := valueobject.FormatDate(day)
		stat := entity.DailyStat{Date: key, Income: decimal.Zero, Expense: decimal.Zero}
		if d, ok := byDate[key]; ok {
			stat.Income, stat.Expense = d.Income, d.Expense
		}
		stats = append(stats, stat)
	})
	return stats, nil
}

// WeekdayStats buckets the expenses of r by weekday, Monday first. Every weekday is present.
func (a *Aggregator) WeekdayStats(ctx context.Context, userID uuid.UUID, r valueobject.DateRange) ([]entity.WeekdayStat, error) {
	expenses, err := a.Expenses(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	stats := make([]entity.WeekdayStat, 7)
	for i := range stats {
		stats[i] = entity.WeekdayStat{
			Weekday: i,
			Label:   entity.WeekdayLabels[i],
			Total:   decimal.Zero,
			Average: decimal.Zero,
		}
	}
	for _, e := range expenses {
		w := valueobject.WeekdayIndex(e.Transaction.Date)
		stats[w].Total = stats[w].Total.Add(e.Transaction.Amount)
		stats[w].Count++
	}
	for i := range stats {
		if stats[i].Count > 0 {
			stats[i].Average = stats[i].Total.Div(decimal.NewFromInt(int64(stats[i].Count))).Round(2)
		}
	}
	return stats, nil
}

// TopExpenses returns the n largest expenses of r. Equal amounts keep insertion order.
func (a *Aggregator) TopExpenses(ctx context.Context, userID uuid.UUID, r valueobject.DateRange, n int) ([]entity.TopExpense, error) {
	if n <= 0 {
		n = DefaultTopExpenses
	}

	q := adapter.LedgerQuery(userID, r).
		OfType(entity.TransactionTypeExpense).
		OrderBy(adapter.OrderAmountDesc).
		Page(n, 0)
	rows, err := a.transactions.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list top expenses: %w", err)
	}

	top := make([]entity.TopExpense, len(rows))
	for i, row := range rows {
		description := row.Transaction.Description
		if description == "" {
			description = NoDescription
		}
		top[i] = entity.TopExpense{
			ID:          row.Transaction.ID,
			Date:        valueobject.FormatDate(row.Transaction.Date),
			Category:    row.CategoryName,
			Amount:      row.Transaction.Amount,
			Description: description,
		}
	}
	return top, nil
}

// Expenses lists every expense of r, oldest first.
func (a *Aggregator) Expenses(ctx context.Context, userID uuid.UUID, r valueobject.DateRange) ([]*entity.TransactionWithCategory, error) {
	q := adapter.LedgerQuery(userID, r).
		OfType(entity.TransactionTypeExpense).
		OrderBy(adapter.OrderDateAsc)
	rows, err := a.transactions.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return rows, nil
}
