package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func summary(income, expense string) entity.Summary {
	in, ex := dec(income), dec(expense)
	return entity.Summary{TotalIncome: in, TotalExpense: ex, NetAmount: in.Sub(ex)}
}

func kinds(insights []entity.Insight) []entity.InsightKind {
	out := make([]entity.InsightKind, len(insights))
	for i, in := range insights {
		out[i] = in.Kind
	}
	return out
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{"both zero", "0", "0", "0"},
		{"from zero", "0", "50", "100"},
		{"increase", "100", "150", "50"},
		{"decrease", "200", "50", "-75"},
		{"negative base", "-100", "-50", "-50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentChange(dec(tt.old), dec(tt.new)); !got.Equal(dec(tt.want)) {
				t.Errorf("PercentChange(%s, %s) = %s, want %s", tt.old, tt.new, got, tt.want)
			}
		})
	}
}

func TestComparePercent(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{"from zero to positive", "0", "10", "100"},
		{"from zero to negative", "0", "-10", "0"},
		{"negative base uses magnitude", "-100", "-50", "50"},
		{"increase", "100", "110", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComparePercent(dec(tt.old), dec(tt.new)); !got.Equal(dec(tt.want)) {
				t.Errorf("ComparePercent(%s, %s) = %s, want %s", tt.old, tt.new, got, tt.want)
			}
		})
	}
}

func TestMonthly_NetAndSavings(t *testing.T) {
	tests := []struct {
		name  string
		sum   entity.Summary
		kinds []entity.InsightKind
	}{
		{"healthy with high savings", summary("1000", "500"), []entity.InsightKind{entity.InsightSuccess, entity.InsightSuccess}},
		{"deficit with low savings", summary("1000", "1200"), []entity.InsightKind{entity.InsightWarning, entity.InsightWarning}},
		{"balanced without income", summary("0", "0"), []entity.InsightKind{entity.InsightInfo}},
		{"middle savings rate adds nothing", summary("1000", "850"), []entity.InsightKind{entity.InsightSuccess}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Monthly(MonthlyInput{Summary: tt.sum, PreviousExpense: decimal.Zero}))
			if len(got) != len(tt.kinds) {
				t.Fatalf("expected %v, got %v", tt.kinds, got)
			}
			for i := range got {
				if got[i] != tt.kinds[i] {
					t.Errorf("expected %v, got %v", tt.kinds, got)
				}
			}
		})
	}
}

func TestMonthly_ExpenseTrend(t *testing.T) {
	tests := []struct {
		name     string
		previous string
		current  string
		want     entity.InsightKind
		found    bool
	}{
		{"rising", "100", "121", entity.InsightWarning, true},
		{"falling", "100", "79", entity.InsightSuccess, true},
		{"exactly twenty percent", "100", "120", "", false},
		{"no previous expense", "0", "500", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := expenseTrend(dec(tt.previous), dec(tt.current))
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if ok && got.Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Kind)
			}
		})
	}
}

func TestMonthly_AbnormalExpense(t *testing.T) {
	expense := func(amount, category string) *entity.TransactionWithCategory {
		return &entity.TransactionWithCategory{
			Transaction:  &entity.Transaction{ID: uuid.New(), Amount: dec(amount)},
			CategoryName: category,
		}
	}

	t.Run("flags the largest outlier", func(t *testing.T) {
		got, ok := abnormalExpense([]*entity.TransactionWithCategory{
			expense("10", "Food"), expense("10", "Food"), expense("10", "Food"),
			expense("10", "Food"), expense("200", "Medical"),
		})
		if !ok {
			t.Fatal("expected an abnormal expense finding")
		}
		if got.Kind != entity.InsightInfo || !strings.Contains(got.Message, "Medical") || !strings.Contains(got.Message, "$200.00") {
			t.Errorf("unexpected finding: %+v", got)
		}
	})

	t.Run("uniform spending", func(t *testing.T) {
		if _, ok := abnormalExpense([]*entity.TransactionWithCategory{expense("10", "Food"), expense("12", "Food")}); ok {
			t.Error("did not expect a finding")
		}
	})

	t.Run("no expenses", func(t *testing.T) {
		if _, ok := abnormalExpense(nil); ok {
			t.Error("did not expect a finding")
		}
	})
}

func TestMonthly_GoalReminders(t *testing.T) {
	today := valueobject.Date(2024, 3, 21)
	mk := func(current string, end *time.Time) *entity.Goal {
		g := entity.NewGoal(uuid.New(), "Trip", dec("100"), entity.GoalTypeSaving, entity.GoalPeriodCustom,
			valueobject.Date(2024, 3, 1), end)
		g.CurrentAmount = dec(current)
		return g
	}
	end := valueobject.Date(2024, 3, 31)

	tests := []struct {
		name  string
		goal  *entity.Goal
		kind  entity.InsightKind
		found bool
	}{
		{"reached", mk("100", &end), entity.InsightSuccess, true},
		{"almost there", mk("85", &end), entity.InsightInfo, true},
		{"far behind", mk("10", &end), entity.InsightWarning, true},
		{"slightly behind", mk("60", &end), "", false},
		{"open ended and low", mk("10", nil), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := goalReminders([]*entity.Goal{tt.goal}, today)
			if (len(got) == 1) != tt.found {
				t.Fatalf("expected found=%v, got %+v", tt.found, got)
			}
			if tt.found && got[0].Kind != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, got[0].Kind)
			}
		})
	}
}

func TestMonthly_Concentration(t *testing.T) {
	stats := entity.CategoryStats{Expense: []entity.CategoryAmount{
		{Category: "Housing", Amount: dec("410")},
		{Category: "Food", Amount: dec("590")},
	}}
	got, ok := concentration(stats)
	if !ok || !strings.Contains(got.Title, "Food") {
		t.Errorf("expected Food to dominate, got %+v", got)
	}

	even := entity.CategoryStats{Expense: []entity.CategoryAmount{
		{Category: "Housing", Amount: dec("40")},
		{Category: "Food", Amount: dec("30")},
		{Category: "Transport", Amount: dec("30")},
	}}
	if _, ok := concentration(even); ok {
		t.Error("did not expect a finding at exactly 40%")
	}
}

func TestReport_SavingsTiers(t *testing.T) {
	tests := []struct {
		name    string
		sum     entity.Summary
		want    entity.InsightKind
		message string
	}{
		{"excellent", summary("1000", "600"), entity.InsightSuccess, "Excellent"},
		{"good", summary("1000", "750"), entity.InsightSuccess, "habit"},
		{"fair", summary("1000", "850"), entity.InsightInfo, "room"},
		{"low", summary("1000", "950"), entity.InsightWarning, "only"},
		{"none", summary("1000", "1100"), entity.InsightWarning, "Nothing was saved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Report(tt.sum, entity.CategoryStats{}, entity.Comparison{})
			last := got[len(got)-1]
			if last.Kind != tt.want || !strings.Contains(last.Message, tt.message) {
				t.Errorf("expected %s containing %q, got %+v", tt.want, tt.message, last)
			}
		})
	}
}

func TestReport_RuleOrder(t *testing.T) {
	cmp := entity.Comparison{MonthOverMonth: entity.ChangeSet{ExpenseChange: dec("35")}}
	stats := entity.CategoryStats{Expense: []entity.CategoryAmount{{Category: "Housing", Amount: dec("900")}}}

	got := Report(summary("1000", "900"), stats, cmp)

	want := []entity.InsightKind{entity.InsightSuccess, entity.InsightWarning, entity.InsightInfo, entity.InsightInfo}
	if k := kinds(got); len(k) != len(want) {
		t.Fatalf("expected %v, got %v", want, k)
	}
	for i, k := range kinds(got) {
		if k != want[i] {
			t.Errorf("rule %d: expected %s, got %s", i, want[i], k)
		}
	}
}

func TestSuggestions(t *testing.T) {
	t.Run("deficit and no goals", func(t *testing.T) {
		got := Suggestions(SuggestionInput{Summary: summary("100", "150")})
		if len(got) != 2 || got[0].Kind != entity.InsightAction || got[1].Kind != entity.InsightInfo {
			t.Errorf("unexpected suggestions: %+v", got)
		}
	})

	t.Run("low savings names the reduction", func(t *testing.T) {
		got := Suggestions(SuggestionInput{
			Summary: summary("1000", "900"),
			Goals:   GoalCounts{Total: 1, OnTrack: 1},
		})
		if len(got) != 1 || got[0].Kind != entity.InsightAction || !strings.Contains(got[0].Message, "$100.00") {
			t.Errorf("unexpected suggestions: %+v", got)
		}
	})

	t.Run("goals behind and overdue", func(t *testing.T) {
		got := Suggestions(SuggestionInput{
			Summary: summary("1000", "500"),
			Goals:   GoalCounts{Total: 4, OnTrack: 1, Behind: 2, Overdue: 1},
		})
		if len(got) != 2 || got[0].Kind != entity.InsightWarning || got[1].Kind != entity.InsightWarning {
			t.Errorf("unexpected suggestions: %+v", got)
		}
	})

	t.Run("heavy categories", func(t *testing.T) {
		got := heavyCategories(entity.CategoryStats{Expense: []entity.CategoryAmount{
			{Category: "Food", Amount: dec("10")},
			{Category: "Housing", Amount: dec("90")},
		}})
		if len(got) != 1 || !strings.Contains(got[0].Title, "Housing") {
			t.Errorf("unexpected suggestions: %+v", got)
		}
	})
}

func TestSpending(t *testing.T) {
	month := func(m int, expense string, cats ...entity.CategoryAmount) SpendingMonth {
		return SpendingMonth{
			Year:       2024,
			Month:      m,
			Summary:    summary("0", expense),
			Categories: entity.CategoryStats{Expense: cats},
		}
	}

	report := Spending([]SpendingMonth{
		month(1, "100", entity.CategoryAmount{Category: "Food", Amount: dec("100")}),
		month(2, "100", entity.CategoryAmount{Category: "Food", Amount: dec("50")}, entity.CategoryAmount{Category: "Travel", Amount: dec("50")}),
		month(3, "160", entity.CategoryAmount{Category: "Food", Amount: dec("60")}, entity.CategoryAmount{Category: "Travel", Amount: dec("100")}),
	})

	if !report.AverageMonthlyExpense.Equal(dec("120")) {
		t.Errorf("expected average 120, got %s", report.AverageMonthlyExpense)
	}
	if report.Trend != TrendIncreasing {
		t.Errorf("expected increasing, got %s", report.Trend)
	}
	if len(report.TopExpenseCategories) != 2 || report.TopExpenseCategories[0].Category != "Travel" {
		t.Fatalf("unexpected top categories: %+v", report.TopExpenseCategories)
	}
	if !report.TopExpenseCategories[0].Average.Equal(dec("75")) {
		t.Errorf("expected Travel to average 75 over the months it appeared, got %s", report.TopExpenseCategories[0].Average)
	}

	if empty := Spending(nil); empty.Trend != TrendStable || !empty.AverageMonthlyExpense.IsZero() {
		t.Errorf("unexpected empty report: %+v", empty)
	}
}
