package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/model"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/sqlitetest"
)

func TestReportRepository_Replace(t *testing.T) {
	f := newFixture(t)
	repo := NewReportRepository(f.db)
	ctx := context.Background()

	first := entity.NewMonthlyReport(f.user.ID, 2024, 3, &entity.ReportPayload{
		Summary: entity.Summary{TotalIncome: decimal.NewFromInt(100), NetAmount: decimal.NewFromInt(100), TotalCount: 1},
	})
	if err := repo.Replace(ctx, first); err != nil {
		t.Fatalf("first replace failed: %v", err)
	}

	second := entity.NewMonthlyReport(f.user.ID, 2024, 3, &entity.ReportPayload{
		Summary:  entity.Summary{TotalIncome: decimal.NewFromInt(250), NetAmount: decimal.NewFromInt(250), TotalCount: 2},
		Insights: []entity.Insight{{Kind: entity.InsightSuccess, Message: "ok"}},
	})
	if err := repo.Replace(ctx, second); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}

	reports, err := repo.FindByYear(ctx, f.user.ID, 2024)
	if err != nil {
		t.Fatalf("find by year failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected exactly one report per month, got %d", len(reports))
	}

	got, err := repo.FindByPeriod(ctx, f.user.ID, 2024, 3)
	if err != nil {
		t.Fatalf("find by period failed: %v", err)
	}
	if got.ID != second.ID || !got.TotalIncome.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected the second report, got %+v", got)
	}
	if got.Payload.SchemaVersion != entity.ReportSchemaVersion || len(got.Payload.Insights) != 1 {
		t.Errorf("payload not round-tripped: %+v", got.Payload)
	}
}

func TestReportRepository_LegacyPayload(t *testing.T) {
	f := newFixture(t)
	repo := NewReportRepository(f.db)
	ctx := context.Background()

	legacy := &model.MonthlyReportModel{
		ID:           entity.NewMonthlyReport(f.user.ID, 2023, 1, &entity.ReportPayload{}).ID,
		UserID:       f.user.ID,
		Year:         2023,
		Month:        1,
		TotalIncome:  decimal.NewFromInt(10),
		TotalExpense: decimal.Zero,
		NetAmount:    decimal.NewFromInt(10),
		ReportData:   `{"summary": {"total_income": 10, "net_amount": 10}, "insights": [{"type": "positive", "message": "good"}]}`,
	}
	if err := f.db.Create(legacy).Error; err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}

	got, err := repo.FindByPeriod(ctx, f.user.ID, 2023, 1)
	if err != nil {
		t.Fatalf("find legacy report: %v", err)
	}
	if got.Payload.SchemaVersion != entity.ReportSchemaVersion {
		t.Errorf("expected upgraded payload, got version %d", got.Payload.SchemaVersion)
	}
	if len(got.Payload.Insights) != 1 || got.Payload.Insights[0].Kind != entity.InsightSuccess {
		t.Errorf("unexpected upgraded insights: %+v", got.Payload.Insights)
	}
}

func TestReportRepository_YearsAndDelete(t *testing.T) {
	f := newFixture(t)
	repo := NewReportRepository(f.db)
	ctx := context.Background()

	for _, p := range [][2]int{{2023, 12}, {2024, 1}, {2024, 2}} {
		r := entity.NewMonthlyReport(f.user.ID, p[0], p[1], &entity.ReportPayload{})
		if err := repo.Replace(ctx, r); err != nil {
			t.Fatalf("replace failed: %v", err)
		}
	}

	years, err := repo.FindYears(ctx, f.user.ID)
	if err != nil {
		t.Fatalf("find years failed: %v", err)
	}
	if len(years) != 2 || years[0] != 2024 || years[1] != 2023 {
		t.Errorf("expected [2024 2023], got %v", years)
	}

	all, err := repo.FindByYear(ctx, f.user.ID, 0)
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(all) != 3 || all[0].Month != 2 || all[2].Year != 2023 {
		t.Errorf("unexpected ordering: %d reports", len(all))
	}

	removed, err := repo.DeleteByPeriod(ctx, f.user.ID, 2024, 1)
	if err != nil || !removed {
		t.Fatalf("expected delete to remove a row, got %v %v", removed, err)
	}
	if _, err := repo.FindByPeriod(ctx, f.user.ID, 2024, 1); !errors.Is(err, domainerror.ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
}

func TestGoalRepository_FindOverlapping(t *testing.T) {
	f := newFixture(t)
	repo := NewGoalRepository(f.db)
	ctx := context.Background()

	mk := func(name string, start string, end *string) {
		s, _ := valueobject.ParseDate(start)
		g := entity.NewGoal(f.user.ID, name, decimal.NewFromInt(100), entity.GoalTypeSaving, entity.GoalPeriodCustom, s, nil)
		if end != nil {
			ed, _ := valueobject.ParseDate(*end)
			g.EndDate = &ed
		}
		if err := repo.Create(ctx, g); err != nil {
			t.Fatalf("create goal: %v", err)
		}
	}
	str := func(s string) *string { return &s }

	mk("inside", "2024-03-05", str("2024-03-20"))
	mk("spanning", "2024-01-01", str("2024-12-31"))
	mk("open ended", "2024-02-01", nil)
	mk("ended before", "2024-01-01", str("2024-02-29"))
	mk("starts after", "2024-04-01", nil)

	goals, err := repo.FindOverlapping(ctx, f.user.ID, valueobject.MonthRange(2024, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := map[string]bool{}
	for _, g := range goals {
		names[g.Name] = true
	}
	for _, want := range []string{"inside", "spanning", "open ended"} {
		if !names[want] {
			t.Errorf("expected %q to overlap March", want)
		}
	}
	for _, unwanted := range []string{"ended before", "starts after"} {
		if names[unwanted] {
			t.Errorf("did not expect %q to overlap March", unwanted)
		}
	}
}

func TestGoalRepository_UpdateAndStatusFilter(t *testing.T) {
	f := newFixture(t)
	repo := NewGoalRepository(f.db)
	ctx := context.Background()

	g := entity.NewGoal(f.user.ID, "Save", decimal.NewFromInt(100), entity.GoalTypeSaving, entity.GoalPeriodMonthly, day(2024, 3, 1), nil)
	if err := repo.Create(ctx, g); err != nil {
		t.Fatalf("create: %v", err)
	}
	g.ApplyProgress(decimal.NewFromInt(120))
	if err := repo.Update(ctx, g); err != nil {
		t.Fatalf("update: %v", err)
	}

	active := entity.GoalStatusActive
	activeGoals, err := repo.FindByUser(ctx, f.user.ID, &active)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(activeGoals) != 0 {
		t.Errorf("expected no active goals, got %d", len(activeGoals))
	}

	got, err := repo.FindByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.Status != entity.GoalStatusCompleted || !got.CurrentAmount.Equal(decimal.NewFromInt(120)) {
		t.Errorf("unexpected persisted goal: %+v", got)
	}
	if got.EndDate == nil || !got.EndDate.Equal(day(2024, 3, 31)) {
		t.Errorf("expected end date 2024-03-31, got %v", got.EndDate)
	}
}

func TestUserRepository_CreateSeedsAndDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := NewUserRepository(f.db)
	categories := NewCategoryRepository(f.db)

	seeded, err := categories.FindByUser(ctx, f.user.ID, nil)
	if err != nil {
		t.Fatalf("find categories: %v", err)
	}
	if want := len(entity.DefaultIncomeCategories) + len(entity.DefaultExpenseCategories); len(seeded) != want {
		t.Errorf("expected %d seeded categories, got %d", want, len(seeded))
	}

	f.addTransaction(t, "Food", "10", day(2024, 3, 1), "")
	exists, err := users.ExistsByUsername(ctx, "alice")
	if err != nil || !exists {
		t.Fatalf("expected alice to exist: %v %v", exists, err)
	}

	if err := users.Delete(ctx, f.user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	f.db.Model(&model.TransactionModel{}).Where("user_id = ?", f.user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected transactions to be removed, %d left", count)
	}
	f.db.Model(&model.CategoryModel{}).Where("user_id = ?", f.user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected categories to be removed, %d left", count)
	}
	if _, err := users.FindByEmail(ctx, "alice@example.com"); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCategoryRepository_ExistsByNameAndUsage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewCategoryRepository(f.db)
	food := f.categories["Food"]

	exists, err := repo.ExistsByName(ctx, f.user.ID, "Food", entity.CategoryTypeExpense, nil)
	if err != nil || !exists {
		t.Errorf("expected Food to exist: %v %v", exists, err)
	}
	exists, _ = repo.ExistsByName(ctx, f.user.ID, "Food", entity.CategoryTypeExpense, &food.ID)
	if exists {
		t.Error("expected the excluded category to be ignored")
	}
	exists, _ = repo.ExistsByName(ctx, f.user.ID, "Food", entity.CategoryTypeIncome, nil)
	if exists {
		t.Error("names are unique per type")
	}

	f.addTransaction(t, "Food", "10", day(2024, 3, 1), "")
	n, err := repo.CountTransactions(ctx, food.ID)
	if err != nil || n != 1 {
		t.Errorf("expected 1 referencing transaction, got %d %v", n, err)
	}
}

func TestEmailQueueRepository_ProcessedAtRoundTrip(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := NewEmailQueueRepository(db)
	ctx := context.Background()

	job := entity.NewEmailJob(entity.TemplateGoalAchieved, "alice@example.com", "alice", "Goal achieved: Trip", nil)
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	pending, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if pending.ProcessedAt != nil {
		t.Errorf("expected no processed_at on a pending job, got %v", pending.ProcessedAt)
	}

	job.MarkSent("provider-1")
	if err := repo.Update(ctx, job); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	sent, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get after send failed: %v", err)
	}
	if sent.Status != entity.EmailStatusSent || sent.ProcessedAt == nil {
		t.Fatalf("expected sent job with processed_at, got %+v", sent)
	}
	if d := sent.ProcessedAt.Sub(*job.ProcessedAt); d > time.Second || d < -time.Second {
		t.Errorf("processed_at drifted: stored %v, want %v", sent.ProcessedAt, job.ProcessedAt)
	}

	deleted, err := repo.DeleteOldSentJobs(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted job, got %d", deleted)
	}
}
