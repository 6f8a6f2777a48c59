package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/aggregation"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/goal"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/sqlitetest"
)

// memoryCache stores JSON like the Redis cache does.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, userID uuid.UUID, key string, dest any) (bool, error) {
	data, ok := c.entries[userID.String()+key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, userID uuid.UUID, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[userID.String()+key] = data
	return nil
}

func (c *memoryCache) InvalidateUser(context.Context, uuid.UUID) error {
	c.entries = map[string][]byte{}
	return nil
}

type fixture struct {
	ledger     *sqlitetest.Ledger
	aggregator *aggregation.Aggregator
	tracker    *goal.Tracker
	goals      adapter.GoalRepository
	stats      *StatsUseCase
	cache      *memoryCache
}

// newFixture seeds February and March 2026 for Sunday 2026-03-15.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := sqlitetest.Open(t)
	ledger := sqlitetest.NewLedger(t, db, "alice")
	ledger.Add(t, "Food", "100", day(2026, 2, 10), "")
	ledger.Add(t, "Salary", "3000", day(2026, 3, 2), "march salary")
	ledger.Add(t, "Food", "200", day(2026, 3, 5), "groceries")
	ledger.Add(t, "Transport", "50", day(2026, 3, 10), "")

	clock := adapter.ClockFunc(func() time.Time {
		return time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	})
	transactions := persistence.NewTransactionRepository(db)
	aggregator := aggregation.NewAggregator(transactions, clock)
	goals := persistence.NewGoalRepository(db)
	tracker := goal.NewTracker(goals, persistence.NewUserRepository(db), aggregator, nil)
	cache := newMemoryCache()

	return &fixture{
		ledger:     ledger,
		aggregator: aggregator,
		tracker:    tracker,
		goals:      goals,
		stats:      NewStatsUseCase(aggregator, persistence.NewCategoryRepository(db), cache, time.Minute),
		cache:      cache,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return valueobject.Date(y, m, d)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGetOverviewUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.ledger.User.ID
	if err := f.goals.Create(ctx, entity.NewGoal(userID, "Cap", dec("1000"), entity.GoalTypeExpenseLimit, entity.GoalPeriodMonthly, day(2026, 3, 1), nil)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	out, err := NewGetOverviewUseCase(f.aggregator, f.tracker).Execute(ctx, userID)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if out.Year != 2026 || out.Month != 3 {
		t.Errorf("period = %d-%d", out.Year, out.Month)
	}
	if !out.Summary.NetAmount.Equal(dec("2750")) {
		t.Errorf("net = %s, want 2750", out.Summary.NetAmount)
	}
	if len(out.Recent) != 1 || out.Recent[0].CategoryName != "Transport" {
		t.Errorf("recent = %d transactions, want the one within 7 days", len(out.Recent))
	}
	if len(out.Goals) != 1 || !out.Goals[0].Goal.CurrentAmount.Equal(dec("250")) {
		t.Errorf("goals = %+v", out.Goals)
	}
	if len(out.Insights) == 0 || out.Insights[0].Kind != entity.InsightSuccess {
		t.Errorf("insights = %+v", out.Insights)
	}
	if len(out.CategoryStats.Expense) != 2 {
		t.Errorf("expense categories = %d, want 2", len(out.CategoryStats.Expense))
	}
	for _, s := range out.Suggestions {
		if s.Title == "Set a financial goal" {
			t.Errorf("unexpected create-a-goal suggestion with an active goal")
		}
	}
}

func TestStatsUseCase_QuickStatsCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.ledger.User.ID

	first, err := f.stats.QuickStats(ctx, userID)
	if err != nil {
		t.Fatalf("QuickStats() error = %v", err)
	}
	if !first.Week.Expense.Equal(dec("50")) || !first.Today.Net.IsZero() {
		t.Errorf("quick stats = %+v", first)
	}

	f.ledger.Add(t, "Food", "20", day(2026, 3, 15), "")
	cached, _ := f.stats.QuickStats(ctx, userID)
	if !cached.Week.Expense.Equal(dec("50")) {
		t.Errorf("expected the cached week expense, got %s", cached.Week.Expense)
	}

	f.cache.InvalidateUser(ctx, userID)
	fresh, _ := f.stats.QuickStats(ctx, userID)
	if !fresh.Week.Expense.Equal(dec("70")) || !fresh.Today.Expense.Equal(dec("20")) {
		t.Errorf("fresh quick stats = %+v", fresh)
	}
}

func TestStatsUseCase_Monthly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.stats.Monthly(ctx, f.ledger.User.ID, 2026, 2)
	if err != nil {
		t.Fatalf("Monthly() error = %v", err)
	}
	if !out.Summary.TotalExpense.Equal(dec("100")) || len(out.DailyStats) != 28 {
		t.Errorf("monthly = %s expense, %d days", out.Summary.TotalExpense, len(out.DailyStats))
	}

	_, err = f.stats.Monthly(ctx, f.ledger.User.ID, 2026, 0)
	if !errors.Is(err, domainerror.ErrInvalidReportPeriod) {
		t.Errorf("month 0: error = %v", err)
	}
}

func TestStatsUseCase_CategoryTrend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	food := f.ledger.Categories["Food"]

	trend, err := f.stats.CategoryTrend(ctx, f.ledger.User.ID, food.ID, 3)
	if err != nil {
		t.Fatalf("CategoryTrend() error = %v", err)
	}
	if len(trend) != 2 || trend[0].Month != 2 || !trend[1].Total.Equal(dec("200")) {
		t.Errorf("trend = %+v", trend)
	}

	other := sqlitetest.NewLedger(t, f.ledger.DB, "bob")
	_, err = f.stats.CategoryTrend(ctx, other.User.ID, food.ID, 3)
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("foreign category: error = %v", err)
	}
}

func TestStatsUseCase_SpendingAndAverage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	userID := f.ledger.User.ID

	report, err := f.stats.SpendingReport(ctx, userID)
	if err != nil {
		t.Fatalf("SpendingReport() error = %v", err)
	}
	if len(report.Months) != SpendingMonths {
		t.Fatalf("months = %d, want %d", len(report.Months), SpendingMonths)
	}
	if first, last := report.Months[0], report.Months[SpendingMonths-1]; first.Year != 2025 || first.Month != 10 || last.Month != 3 {
		t.Errorf("months span %d-%d..%d-%d", first.Year, first.Month, last.Year, last.Month)
	}
	if !report.AverageMonthlyExpense.Equal(dec("58.33")) {
		t.Errorf("average = %s, want 58.33", report.AverageMonthlyExpense)
	}

	avg, err := f.stats.AverageDailyExpense(ctx, userID, 9)
	if err != nil {
		t.Fatalf("AverageDailyExpense() error = %v", err)
	}
	if !avg.Equal(dec("5.56")) {
		t.Errorf("average daily = %s, want 5.56", avg)
	}
}
