package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

func d(y int, m time.Month, day int) time.Time {
	return valueobject.Date(y, m, day)
}

func TestNewGoal_EndDate(t *testing.T) {
	custom := d(2024, 6, 30)

	tests := []struct {
		name    string
		period  GoalPeriod
		start   time.Time
		end     *time.Time
		wantEnd *time.Time
	}{
		{"monthly", GoalPeriodMonthly, d(2024, 3, 15), nil, ptr(d(2024, 4, 14))},
		{"monthly clamps on jan 31", GoalPeriodMonthly, d(2024, 1, 31), nil, ptr(d(2024, 2, 28))},
		{"yearly", GoalPeriodYearly, d(2024, 1, 1), nil, ptr(d(2024, 12, 31))},
		{"yearly from leap day", GoalPeriodYearly, d(2024, 2, 29), nil, ptr(d(2025, 2, 27))},
		{"custom keeps end", GoalPeriodCustom, d(2024, 1, 1), &custom, &custom},
		{"custom open ended", GoalPeriodCustom, d(2024, 1, 1), nil, nil},
		{"monthly ignores supplied end", GoalPeriodMonthly, d(2024, 5, 1), &custom, ptr(d(2024, 5, 31))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGoal(uuid.New(), "Goal", decimal.NewFromInt(100), GoalTypeSaving, tt.period, tt.start, tt.end)

			if g.Status != GoalStatusActive {
				t.Errorf("expected active, got %s", g.Status)
			}
			switch {
			case tt.wantEnd == nil && g.EndDate != nil:
				t.Errorf("expected no end date, got %s", valueobject.FormatDate(*g.EndDate))
			case tt.wantEnd != nil && g.EndDate == nil:
				t.Errorf("expected end %s, got none", valueobject.FormatDate(*tt.wantEnd))
			case tt.wantEnd != nil && !g.EndDate.Equal(*tt.wantEnd):
				t.Errorf("expected end %s, got %s", valueobject.FormatDate(*tt.wantEnd), valueobject.FormatDate(*g.EndDate))
			}
		})
	}
}

func TestGoal_ApplyProgress(t *testing.T) {
	tests := []struct {
		name       string
		goalType   GoalType
		current    int64
		wantStatus GoalStatus
	}{
		{"saving below target", GoalTypeSaving, 99, GoalStatusActive},
		{"saving reaches target", GoalTypeSaving, 100, GoalStatusCompleted},
		{"saving exceeds target", GoalTypeSaving, 150, GoalStatusCompleted},
		{"expense limit exceeded stays active", GoalTypeExpenseLimit, 500, GoalStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGoal(uuid.New(), "Goal", decimal.NewFromInt(100), tt.goalType, GoalPeriodMonthly, d(2024, 1, 1), nil)
			g.ApplyProgress(decimal.NewFromInt(tt.current))
			if g.Status != tt.wantStatus {
				t.Errorf("expected %s, got %s", tt.wantStatus, g.Status)
			}
		})
	}
}

func TestGoal_ProgressPercent(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		current string
		want    string
	}{
		{"half", "200", "100", "50"},
		{"capped at 100", "100", "250", "100"},
		{"negative floored at 0", "100", "-40", "0"},
		{"zero target", "0", "50", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{TargetAmount: decimal.RequireFromString(tt.target), CurrentAmount: decimal.RequireFromString(tt.current)}
			if got := g.ProgressPercent(); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if got := ProgressOf(decimal.NewFromInt(250), decimal.NewFromInt(100), false); !got.Equal(decimal.NewFromInt(250)) {
		t.Errorf("uncapped progress: expected 250, got %s", got)
	}
}

func TestGoal_Track(t *testing.T) {
	// 2024-01-01 to 2024-01-31: 30 days total.
	newGoal := func(current int64) *Goal {
		g := NewGoal(uuid.New(), "Goal", decimal.NewFromInt(300), GoalTypeSaving, GoalPeriodMonthly, d(2024, 1, 1), nil)
		g.CurrentAmount = decimal.NewFromInt(current)
		return g
	}

	tests := []struct {
		name    string
		current int64
		today   time.Time
		want    GoalTrack
	}{
		{"ahead", 200, d(2024, 1, 16), GoalTrackOnTrack},
		{"exactly expected", 150, d(2024, 1, 16), GoalTrackOnTrack},
		{"behind", 100, d(2024, 1, 16), GoalTrackBehind},
		{"last day is not overdue", 100, d(2024, 1, 31), GoalTrackBehind},
		{"overdue after end", 100, d(2024, 2, 1), GoalTrackOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newGoal(tt.current).Track(tt.today); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestGoal_ExpectedProgress_OpenEnded(t *testing.T) {
	g := NewGoal(uuid.New(), "Goal", decimal.NewFromInt(100), GoalTypeSaving, GoalPeriodCustom, d(2024, 1, 1), nil)
	if got := g.ExpectedProgress(d(2024, 6, 1)); !got.IsZero() {
		t.Errorf("expected 0 for open-ended goal, got %s", got)
	}
	if g.IsOverdue(d(2030, 1, 1)) {
		t.Error("open-ended goal must never be overdue")
	}
	if r := g.TrackingRange(d(2024, 3, 5)); !r.End.Equal(d(2024, 3, 5)) {
		t.Errorf("expected tracking range to end today, got %s", valueobject.FormatDate(r.End))
	}
}

func TestGoal_Lifecycle(t *testing.T) {
	t.Run("complete only from active", func(t *testing.T) {
		g := NewGoal(uuid.New(), "Goal", decimal.NewFromInt(100), GoalTypeExpenseLimit, GoalPeriodMonthly, d(2024, 1, 1), nil)
		if !g.Complete() {
			t.Fatal("expected active goal to complete")
		}
		if g.Complete() {
			t.Error("completed goal must not complete again")
		}
		if g.Cancel() {
			t.Error("completed goal must not be cancelled")
		}
	})

	t.Run("reactivate only from cancelled", func(t *testing.T) {
		g := NewGoal(uuid.New(), "Goal", decimal.NewFromInt(100), GoalTypeSaving, GoalPeriodMonthly, d(2024, 1, 1), nil)
		if g.Reactivate(d(2024, 5, 10)) {
			t.Fatal("active goal must not be reactivated")
		}
		if !g.Cancel() {
			t.Fatal("expected active goal to cancel")
		}
		if !g.Reactivate(d(2024, 5, 10)) {
			t.Fatal("expected cancelled goal to reactivate")
		}
		if g.Status != GoalStatusActive {
			t.Errorf("expected active, got %s", g.Status)
		}
		if !g.StartDate.Equal(d(2024, 5, 10)) {
			t.Errorf("expected start reset to today, got %s", valueobject.FormatDate(g.StartDate))
		}
		if g.EndDate == nil || !g.EndDate.Equal(d(2024, 6, 9)) {
			t.Errorf("expected end 2024-06-09, got %v", g.EndDate)
		}
	})

	t.Run("reactivate keeps custom end date", func(t *testing.T) {
		end := d(2024, 12, 31)
		g := NewGoal(uuid.New(), "Goal", decimal.NewFromInt(100), GoalTypeSaving, GoalPeriodCustom, d(2024, 1, 1), &end)
		g.Cancel()
		g.Reactivate(d(2024, 5, 10))
		if g.EndDate == nil || !g.EndDate.Equal(end) {
			t.Errorf("expected custom end date to be kept, got %v", g.EndDate)
		}
	})
}

func ptr(t time.Time) *time.Time {
	return &t
}
