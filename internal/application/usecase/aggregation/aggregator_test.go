package aggregation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/sqlitetest"
)

func fixedClock(y int, m time.Month, d int) adapter.Clock {
	return adapter.ClockFunc(func() time.Time {
		return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	})
}

func newAggregator(t *testing.T, clock adapter.Clock) (*Aggregator, *sqlitetest.Ledger) {
	t.Helper()
	db := sqlitetest.Open(t)
	ledger := sqlitetest.NewLedger(t, db, "alice")
	return NewAggregator(persistence.NewTransactionRepository(db), clock), ledger
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAggregator_MonthlySummary(t *testing.T) {
	agg, l := newAggregator(t, fixedClock(2024, 4, 10))
	ctx := context.Background()

	l.Add(t, "Salary", "3000", valueobject.Date(2024, 3, 1), "")
	l.Add(t, "Food", "120.50", valueobject.Date(2024, 3, 15), "")
	l.Add(t, "Housing", "1000", valueobject.Date(2024, 3, 31), "")
	l.Add(t, "Food", "50", valueobject.Date(2024, 2, 29), "")

	s, err := agg.MonthlySummary(ctx, l.User.ID, 2024, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Year != 2024 || s.Month != 3 {
		t.Errorf("expected period 2024-03, got %d-%d", s.Year, s.Month)
	}
	if !s.TotalIncome.Equal(dec("3000")) || !s.TotalExpense.Equal(dec("1120.50")) {
		t.Errorf("unexpected totals: income %s expense %s", s.TotalIncome, s.TotalExpense)
	}
	if !s.NetAmount.Equal(s.TotalIncome.Sub(s.TotalExpense)) {
		t.Errorf("net %s is not income minus expense", s.NetAmount)
	}
	if s.TotalCount != s.IncomeCount+s.ExpenseCount || s.TotalCount != 3 {
		t.Errorf("unexpected counts: %+v", s)
	}

	empty, err := agg.MonthlySummary(ctx, l.User.ID, 2023, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.TotalCount != 0 || !empty.NetAmount.IsZero() {
		t.Errorf("expected an empty summary, got %+v", empty)
	}
}

func TestAggregator_CategoryStats(t *testing.T) {
	agg, l := newAggregator(t, fixedClock(2024, 4, 10))
	ctx := context.Background()

	l.Add(t, "Food", "100", valueobject.Date(2024, 3, 1), "")
	l.Add(t, "Transport", "100", valueobject.Date(2024, 3, 2), "")
	l.Add(t, "Housing", "500", valueobject.Date(2024, 3, 3), "")
	l.Add(t, "Salary", "2000", valueobject.Date(2024, 3, 4), "")

	stats, err := agg.CategoryStats(ctx, l.User.ID, valueobject.MonthRange(2024, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantExpense := []string{"Housing", "Food", "Transport"}
	if len(stats.Expense) != len(wantExpense) {
		t.Fatalf("expected %d expense categories, got %d", len(wantExpense), len(stats.Expense))
	}
	for i, name := range wantExpense {
		if stats.Expense[i].Category != name {
			t.Errorf("position %d: expected %s, got %s", i, name, stats.Expense[i].Category)
		}
	}
	if len(stats.Income) != 1 || stats.Income[0].Category != "Salary" {
		t.Errorf("unexpected income stats: %+v", stats.Income)
	}
	if !stats.TotalExpense().Equal(dec("700")) {
		t.Errorf("expected expense total 700, got %s", stats.TotalExpense())
	}
}

func TestAggregator_DailyStats(t *testing.T) {
	agg, l := newAggregator(t, fixedClock(2024, 4, 10))
	ctx := context.Background()

	l.Add(t, "Food", "10", valueobject.Date(2024, 2, 3), "")
	l.Add(t, "Salary", "99", valueobject.Date(2024, 2, 3), "")
	l.Add(t, "Food", "5", valueobject.Date(2024, 2, 29), "")

	stats, err := agg.DailyStats(ctx, l.User.ID, valueobject.MonthRange(2024, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stats) != 29 {
		t.Fatalf("expected 29 days in February 2024, got %d", len(stats))
	}
	if stats[0].Date != "2024-02-01" || stats[28].Date != "2024-02-29" {
		t.Errorf("unexpected bounds: %s..%s", stats[0].Date, stats[28].Date)
	}
	if !stats[2].Expense.Equal(dec("10")) || !stats[2].Income.Equal(dec("99")) {
		t.Errorf("unexpected 2024-02-03 entry: %+v", stats[2])
	}
	if !stats[1].Income.IsZero() || !stats[1].Expense.IsZero() {
		t.Errorf("expected a zero-filled quiet day, got %+v", stats[1])
	}
}

func TestAggregator_WeekdayStats(t *testing.T) {
	agg, l := newAggregator(t, fixedClock(2024, 4, 10))
	ctx := context.Background()

	// 2024-03-04 is a Monday, 2024-03-10 a Sunday.
	l.Add(t, "Food", "10", valueobject.Date(2024, 3, 4), "")
	l.Add(t, "Food", "20", valueobject.Date(2024, 3, 11), "")
	l.Add(t, "Food", "7", valueobject.Date(2024, 3, 10), "")
	l.Add(t, "Salary", "1000", valueobject.Date(2024, 3, 5), "")

	stats, err := agg.WeekdayStats(ctx, l.User.ID, valueobject.MonthRange(2024, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stats) != 7 {
		t.Fatalf("expected 7 weekdays, got %d", len(stats))
	}

	tests := []struct {
		index   int
		label   string
		total   string
		count   int
		average string
	}{
		{0, "Monday", "30", 2, "15"},
		{1, "Tuesday", "0", 0, "0"},
		{6, "Sunday", "7", 1, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			s := stats[tt.index]
			if s.Label != tt.label || s.Weekday != tt.index {
				t.Errorf("expected %d %s, got %d %s", tt.index, tt.label, s.Weekday, s.Label)
			}
			if !s.Total.Equal(dec(tt.total)) || s.Count != tt.count || !s.Average.Equal(dec(tt.average)) {
				t.Errorf("expected total %s count %d average %s, got %+v", tt.total, tt.count, tt.average, s)
			}
		})
	}
}

func TestAggregator_TopExpenses(t *testing.T) {
	agg, l := newAggregator(t, fixedClock(2024, 4, 10))
	ctx := context.Background()

	for i, amount := range []string{"5", "50", "20", "50", "1", "30", "40"} {
		l.Add(t, "Food", amount, valueobject.Date(2024, 3, i+1), "")
	}
	first := l.Add(t, "Housing", "60", valueobject.Date(2024, 3, 20), "rent")

	top, err := agg.TopExpenses(ctx, l.User.ID, valueobject.MonthRange(2024, 3), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(top) != DefaultTopExpenses {
		t.Fatalf("expected %d expenses, got %d", DefaultTopExpenses, len(top))
	}
	want := []string{"60", "50", "50", "40", "30"}
	for i, w := range want {
		if !top[i].Amount.Equal(dec(w)) {
			t.Errorf("position %d: expected %s, got %s", i, w, top[i].Amount)
		}
	}
	if top[0].ID != first.ID || top[0].Description != "rent" || top[0].Category != "Housing" {
		t.Errorf("unexpected first entry: %+v", top[0])
	}
	if top[1].Description != NoDescription {
		t.Errorf("expected placeholder description, got %q", top[1].Description)
	}
	if top[1].Date != "2024-03-02" || top[2].Date != "2024-03-04" {
		t.Errorf("expected ties in insertion order, got %s then %s", top[1].Date, top[2].Date)
	}
}

func TestAggregator_QuickStatsAndAverages(t *testing.T) {
	// 2024-03-13 is a Wednesday; the week started on 2024-03-11.
	agg, l := newAggregator(t, fixedClock(2024, 3, 13))
	ctx := context.Background()

	l.Add(t, "Food", "10", valueobject.Date(2024, 3, 13), "")
	l.Add(t, "Salary", "100", valueobject.Date(2024, 3, 11), "")
	l.Add(t, "Food", "25", valueobject.Date(2024, 3, 10), "")
	l.Add(t, "Food", "35", valueobject.Date(2024, 2, 20), "")

	stats, err := agg.QuickStats(ctx, l.User.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stats.Today.Expense.Equal(dec("10")) || !stats.Today.Net.Equal(dec("-10")) {
		t.Errorf("unexpected today totals: %+v", stats.Today)
	}
	if !stats.Week.Income.Equal(dec("100")) || !stats.Week.Expense.Equal(dec("10")) || !stats.Week.Net.Equal(dec("90")) {
		t.Errorf("unexpected week totals: %+v", stats.Week)
	}

	avg, err := agg.AverageDailyExpense(ctx, l.User.ID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !avg.Equal(dec("3.5")) {
		t.Errorf("expected average 3.5 over 10 days, got %s", avg)
	}

	recent, err := agg.Recent(ctx, l.User.ID, 7, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("expected 3 recent transactions, got %d", len(recent))
	}
}

func TestAggregator_CategoryTrend(t *testing.T) {
	agg, l := newAggregator(t, fixedClock(2024, 6, 15))
	ctx := context.Background()

	l.Add(t, "Food", "10", valueobject.Date(2024, 4, 1), "")
	l.Add(t, "Food", "15", valueobject.Date(2024, 4, 20), "")
	l.Add(t, "Food", "5", valueobject.Date(2024, 6, 1), "")
	l.Add(t, "Food", "99", valueobject.Date(2023, 1, 1), "too old")
	l.Add(t, "Transport", "70", valueobject.Date(2024, 5, 1), "")

	trend, err := agg.CategoryTrend(ctx, l.User.ID, l.Categories["Food"].ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(trend) != 2 {
		t.Fatalf("expected 2 months, got %+v", trend)
	}
	if trend[0].Month != 4 || !trend[0].Total.Equal(dec("25")) {
		t.Errorf("unexpected April entry: %+v", trend[0])
	}
	if trend[1].Month != 6 || !trend[1].Total.Equal(dec("5")) {
		t.Errorf("unexpected June entry: %+v", trend[1])
	}
}

func TestAggregator_TransactionsPaging(t *testing.T) {
	agg, l := newAggregator(t, fixedClock(2024, 4, 10))
	ctx := context.Background()

	for i := 1; i <= 45; i++ {
		l.Add(t, "Food", "1", valueobject.Date(2024, 3, 1+i%28), "")
	}

	page, err := agg.Transactions(ctx, adapter.TransactionQuery{UserID: l.User.ID}, 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 45 || page.TotalPages != 3 || page.Limit != DefaultPageSize {
		t.Errorf("unexpected paging: total %d pages %d limit %d", page.Total, page.TotalPages, page.Limit)
	}
	if len(page.Transactions) != 5 {
		t.Errorf("expected 5 rows on the last page, got %d", len(page.Transactions))
	}
}
