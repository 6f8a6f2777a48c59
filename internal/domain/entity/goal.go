package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// GoalType selects how a goal's progress is computed.
type GoalType string

const (
	// GoalTypeSaving tracks net income (income minus expense) towards a target.
	GoalTypeSaving GoalType = "saving"
	// GoalTypeExpenseLimit tracks total expense against a ceiling.
	GoalTypeExpenseLimit GoalType = "expense_limit"
)

// IsValid reports whether the goal type is known.
func (t GoalType) IsValid() bool {
	return t == GoalTypeSaving || t == GoalTypeExpenseLimit
}

// GoalPeriod represents the period type for a goal.
type GoalPeriod string

const (
	GoalPeriodMonthly GoalPeriod = "monthly"
	GoalPeriodYearly  GoalPeriod = "yearly"
	GoalPeriodCustom  GoalPeriod = "custom"
)

// IsValid reports whether the period is known.
func (p GoalPeriod) IsValid() bool {
	return p == GoalPeriodMonthly || p == GoalPeriodYearly || p == GoalPeriodCustom
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// GoalTrack classifies an active goal against the elapsed share of its period.
type GoalTrack string

const (
	GoalTrackOnTrack GoalTrack = "on_track"
	GoalTrackBehind  GoalTrack = "behind"
	GoalTrackOverdue GoalTrack = "overdue"
)

var hundred = decimal.NewFromInt(100)

// Goal represents a saving target or an expense ceiling over a date range.
// CurrentAmount is derived from the ledger and never edited directly.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Type          GoalType
	Period        GoalPeriod
	StartDate     time.Time
	EndDate       *time.Time
	Status        GoalStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates an active goal. For monthly and yearly periods the end date is derived
// from the start date and the endDate argument is ignored.
func NewGoal(
	userID uuid.UUID,
	name string,
	target decimal.Decimal,
	goalType GoalType,
	period GoalPeriod,
	startDate time.Time,
	endDate *time.Time,
) *Goal {
	now := time.Now().UTC()
	start := valueobject.DateOf(startDate)

	g := &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Type:          goalType,
		Period:        period,
		StartDate:     start,
		Status:        GoalStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if period == GoalPeriodCustom {
		if endDate != nil {
			end := valueobject.DateOf(*endDate)
			g.EndDate = &end
		}
	} else {
		g.EndDate = PeriodEndDate(period, start)
	}
	return g
}

// PeriodEndDate derives the inclusive end date for monthly and yearly goals.
// It returns nil for custom periods.
func PeriodEndDate(period GoalPeriod, start time.Time) *time.Time {
	var end time.Time
	switch period {
	case GoalPeriodMonthly:
		end = valueobject.AddMonthsClamped(start, 1).AddDate(0, 0, -1)
	case GoalPeriodYearly:
		end = valueobject.AddMonthsClamped(start, 12).AddDate(0, 0, -1)
	default:
		return nil
	}
	return &end
}

// IsActive reports whether the goal still takes part in recomputation.
func (g *Goal) IsActive() bool {
	return g.Status == GoalStatusActive
}

// TrackingRange is [StartDate, EndDate], or [StartDate, today] for open-ended goals.
func (g *Goal) TrackingRange(today time.Time) valueobject.DateRange {
	end := valueobject.DateOf(today)
	if g.EndDate != nil {
		end = *g.EndDate
	}
	return valueobject.DateRange{Start: g.StartDate, End: end}
}

// ApplyProgress stores a freshly computed amount. Saving goals reaching their target become
// completed; expense-limit goals never complete on their own.
func (g *Goal) ApplyProgress(current decimal.Decimal) {
	g.CurrentAmount = current
	g.UpdatedAt = time.Now().UTC()
	if g.Type == GoalTypeSaving && current.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalStatusCompleted
	}
}

// ProgressPercent is CurrentAmount / TargetAmount × 100 clamped to [0, 100], or 0 when the target is 0.
func (g *Goal) ProgressPercent() decimal.Decimal {
	return ProgressOf(g.CurrentAmount, g.TargetAmount, true)
}

// ProgressOf computes amount / target × 100, 0 when the target is not positive.
// When capped the result is clamped to [0, 100].
func ProgressOf(amount, target decimal.Decimal, capped bool) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	p := amount.Div(target).Mul(hundred)
	if capped {
		if p.GreaterThan(hundred) {
			return hundred
		}
		if p.IsNegative() {
			return decimal.Zero
		}
	}
	return p
}

// Remaining is TargetAmount − CurrentAmount (negative once exceeded).
func (g *Goal) Remaining() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// IsOverdue reports whether an active goal's end date has passed.
func (g *Goal) IsOverdue(today time.Time) bool {
	if g.Status != GoalStatusActive || g.EndDate == nil {
		return false
	}
	return valueobject.DateOf(today).After(*g.EndDate)
}

// DaysPassed is the number of days from StartDate to today.
func (g *Goal) DaysPassed(today time.Time) int {
	return valueobject.DaysBetween(g.StartDate, today)
}

// TotalDays is EndDate − StartDate in days, or -1 for open-ended goals.
func (g *Goal) TotalDays() int {
	if g.EndDate == nil {
		return -1
	}
	return valueobject.DaysBetween(g.StartDate, *g.EndDate)
}

// ExpectedProgress is the elapsed share of the goal period as a percentage.
// It is 0 for open-ended goals and for periods with no length.
func (g *Goal) ExpectedProgress(today time.Time) decimal.Decimal {
	total := g.TotalDays()
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(g.DaysPassed(today))).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred)
}

// Track classifies the goal as overdue, on track or behind.
func (g *Goal) Track(today time.Time) GoalTrack {
	if g.IsOverdue(today) {
		return GoalTrackOverdue
	}
	if g.ProgressPercent().GreaterThanOrEqual(g.ExpectedProgress(today)) {
		return GoalTrackOnTrack
	}
	return GoalTrackBehind
}

// Complete marks an active goal as completed.
func (g *Goal) Complete() bool {
	if g.Status != GoalStatusActive {
		return false
	}
	g.Status = GoalStatusCompleted
	g.UpdatedAt = time.Now().UTC()
	return true
}

// Cancel moves an active goal to cancelled.
func (g *Goal) Cancel() bool {
	if g.Status != GoalStatusActive {
		return false
	}
	g.Status = GoalStatusCancelled
	g.UpdatedAt = time.Now().UTC()
	return true
}

// Reactivate restarts a cancelled goal from today, re-deriving the end date for
// monthly and yearly periods.
func (g *Goal) Reactivate(today time.Time) bool {
	if g.Status != GoalStatusCancelled {
		return false
	}
	g.Status = GoalStatusActive
	g.StartDate = valueobject.DateOf(today)
	if g.Period != GoalPeriodCustom {
		g.EndDate = PeriodEndDate(g.Period, g.StartDate)
	}
	g.UpdatedAt = time.Now().UTC()
	return true
}
