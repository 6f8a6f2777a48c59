package insight

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

var (
	trendThreshold         = decimal.NewFromInt(20)
	lowSavingsRate         = decimal.NewFromInt(10)
	highSavingsRate        = decimal.NewFromInt(30)
	concentrationThreshold = decimal.NewFromInt(40)
	nearGoalProgress       = decimal.NewFromInt(80)
	behindGoalFactor       = decimal.RequireFromString("0.7")
	abnormalFactor         = decimal.NewFromInt(2)
)

// MonthlyInput is the data the dashboard insight rules read.
type MonthlyInput struct {
	Today           time.Time
	Summary         entity.Summary
	PreviousExpense decimal.Decimal
	// RecentExpenses are the expenses of the trailing 30 days.
	RecentExpenses []*entity.TransactionWithCategory
	// Goals are the user's active goals with freshly computed amounts.
	Goals         []*entity.Goal
	CategoryStats entity.CategoryStats
}

// Monthly runs the dashboard rules in order and concatenates their findings.
func Monthly(in MonthlyInput) []entity.Insight {
	insights := []entity.Insight{netBalance(in.Summary)}

	if i, ok := expenseTrend(in.PreviousExpense, in.Summary.TotalExpense); ok {
		insights = append(insights, i)
	}
	if i, ok := abnormalExpense(in.RecentExpenses); ok {
		insights = append(insights, i)
	}
	if i, ok := savingsTier(in.Summary); ok {
		insights = append(insights, i)
	}
	insights = append(insights, goalReminders(in.Goals, in.Today)...)
	if i, ok := concentration(in.CategoryStats); ok {
		insights = append(insights, i)
	}
	return insights
}

func netBalance(s entity.Summary) entity.Insight {
	switch {
	case s.NetAmount.IsPositive():
		return entity.Insight{
			Kind:    entity.InsightSuccess,
			Title:   "Healthy balance",
			Message: fmt.Sprintf("Net income this month is %s.", money(s.NetAmount)),
		}
	case s.NetAmount.IsNegative():
		return entity.Insight{
			Kind:    entity.InsightWarning,
			Title:   "Spending exceeds income",
			Message: fmt.Sprintf("Expenses exceed income by %s this month.", money(s.NetAmount.Abs())),
		}
	default:
		return entity.Insight{
			Kind:    entity.InsightInfo,
			Title:   "Balanced",
			Message: "Income and expenses are balanced this month.",
		}
	}
}

// expenseTrend compares this month's expense to last month's. The change is 0 without a
// previous expense, so no finding is produced then.
func expenseTrend(previous, current decimal.Decimal) (entity.Insight, bool) {
	if !previous.IsPositive() {
		return entity.Insight{}, false
	}
	change := PercentChange(previous, current)
	switch {
	case change.GreaterThan(trendThreshold):
		return entity.Insight{
			Kind:    entity.InsightWarning,
			Title:   "Spending is rising",
			Message: fmt.Sprintf("Expenses rose %s compared with last month.", pct(change)),
		}, true
	case change.LessThan(trendThreshold.Neg()):
		return entity.Insight{
			Kind:    entity.InsightSuccess,
			Title:   "Spending is falling",
			Message: fmt.Sprintf("Expenses fell %s compared with last month.", pct(change.Abs())),
		}, true
	}
	return entity.Insight{}, false
}

// abnormalExpense reports the largest expense above twice the mean of the window.
func abnormalExpense(expenses []*entity.TransactionWithCategory) (entity.Insight, bool) {
	if len(expenses) == 0 {
		return entity.Insight{}, false
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Transaction.Amount)
	}
	limit := total.Div(decimal.NewFromInt(int64(len(expenses)))).Mul(abnormalFactor)

	var largest *entity.TransactionWithCategory
	for _, e := range expenses {
		if !e.Transaction.Amount.GreaterThan(limit) {
			continue
		}
		if largest == nil || e.Transaction.Amount.GreaterThan(largest.Transaction.Amount) {
			largest = e
		}
	}
	if largest == nil {
		return entity.Insight{}, false
	}
	return entity.Insight{
		Kind:  entity.InsightInfo,
		Title: "Large expense detected",
		Message: fmt.Sprintf("A large expense of %s was recorded in %s.",
			money(largest.Transaction.Amount), largest.CategoryName),
	}, true
}

func savingsTier(s entity.Summary) (entity.Insight, bool) {
	rate, ok := SavingsRate(s)
	if !ok {
		return entity.Insight{}, false
	}
	switch {
	case rate.LessThan(lowSavingsRate):
		return entity.Insight{
			Kind:    entity.InsightWarning,
			Title:   "Low savings rate",
			Message: fmt.Sprintf("Your savings rate is only %s. Aim for at least 20%%.", pct(rate)),
		}, true
	case rate.GreaterThanOrEqual(highSavingsRate):
		return entity.Insight{
			Kind:    entity.InsightSuccess,
			Title:   "Excellent savings",
			Message: fmt.Sprintf("Your savings rate reached %s. Keep it up!", pct(rate)),
		}, true
	}
	return entity.Insight{}, false
}

func goalReminders(goals []*entity.Goal, today time.Time) []entity.Insight {
	var reminders []entity.Insight
	for _, g := range goals {
		progress := g.ProgressPercent()
		switch {
		case progress.GreaterThanOrEqual(hundred):
			reminders = append(reminders, entity.Insight{
				Kind:    entity.InsightSuccess,
				Title:   fmt.Sprintf("Goal %q reached", g.Name),
				Message: "Mark it as completed.",
			})
		case progress.GreaterThanOrEqual(nearGoalProgress):
			reminders = append(reminders, entity.Insight{
				Kind:    entity.InsightInfo,
				Title:   fmt.Sprintf("Goal %q is almost reached", g.Name),
				Message: fmt.Sprintf("%s done. One more push!", pct(progress)),
			})
		case g.EndDate != nil && progress.LessThan(g.ExpectedProgress(today).Mul(behindGoalFactor)):
			reminders = append(reminders, entity.Insight{
				Kind:    entity.InsightWarning,
				Title:   fmt.Sprintf("Goal %q is behind schedule", g.Name),
				Message: fmt.Sprintf("Progress is %s. Speed up to stay on track.", pct(progress)),
			})
		}
	}
	return reminders
}

func concentration(stats entity.CategoryStats) (entity.Insight, bool) {
	if len(stats.Expense) == 0 {
		return entity.Insight{}, false
	}
	top := largestCategory(stats.Expense)
	share := Share(top.Amount, stats.TotalExpense())
	if !share.GreaterThan(concentrationThreshold) {
		return entity.Insight{}, false
	}
	return entity.Insight{
		Kind:    entity.InsightWarning,
		Title:   fmt.Sprintf("%s dominates spending", top.Category),
		Message: fmt.Sprintf("%s accounts for %s of this month's expenses.", top.Category, pct(share)),
	}, true
}
