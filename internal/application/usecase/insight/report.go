package insight

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

var goodSavingsRate = decimal.NewFromInt(20)

// Report runs the rule set stored with monthly report snapshots.
func Report(s entity.Summary, stats entity.CategoryStats, cmp entity.Comparison) []entity.Insight {
	insights := []entity.Insight{reportBalance(s)}

	change := cmp.MonthOverMonth.ExpenseChange
	switch {
	case change.GreaterThan(trendThreshold):
		insights = append(insights, entity.Insight{
			Kind:    entity.InsightWarning,
			Message: fmt.Sprintf("Expenses rose %s compared with last month. Keep an eye on them.", pct(change)),
		})
	case change.LessThan(trendThreshold.Neg()):
		insights = append(insights, entity.Insight{
			Kind:    entity.InsightSuccess,
			Message: fmt.Sprintf("Expenses fell %s compared with last month. Well done!", pct(change.Abs())),
		})
	}

	if len(stats.Expense) > 0 {
		top := largestCategory(stats.Expense)
		if share := Share(top.Amount, stats.TotalExpense()); share.GreaterThan(concentrationThreshold) {
			insights = append(insights, entity.Insight{
				Kind:    entity.InsightInfo,
				Message: fmt.Sprintf("%s is the largest expense at %s of the total.", top.Category, pct(share)),
			})
		}
	}

	if rate, ok := SavingsRate(s); ok {
		insights = append(insights, reportSavings(rate))
	}
	return insights
}

func reportBalance(s entity.Summary) entity.Insight {
	switch {
	case s.NetAmount.IsPositive():
		return entity.Insight{
			Kind:    entity.InsightSuccess,
			Message: fmt.Sprintf("Income covered expenses with a net of %s.", money(s.NetAmount)),
		}
	case s.NetAmount.IsNegative():
		return entity.Insight{
			Kind:    entity.InsightWarning,
			Message: fmt.Sprintf("Expenses exceeded income, a deficit of %s.", money(s.NetAmount.Abs())),
		}
	default:
		return entity.Insight{Kind: entity.InsightInfo, Message: "Income and expenses were balanced."}
	}
}

func reportSavings(rate decimal.Decimal) entity.Insight {
	switch {
	case rate.GreaterThanOrEqual(highSavingsRate):
		return entity.Insight{
			Kind:    entity.InsightSuccess,
			Message: fmt.Sprintf("The savings rate reached %s. Excellent!", pct(rate)),
		}
	case rate.GreaterThanOrEqual(goodSavingsRate):
		return entity.Insight{
			Kind:    entity.InsightSuccess,
			Message: fmt.Sprintf("The savings rate was %s. Keep the habit.", pct(rate)),
		}
	case rate.GreaterThanOrEqual(lowSavingsRate):
		return entity.Insight{
			Kind:    entity.InsightInfo,
			Message: fmt.Sprintf("The savings rate was %s. There is room to improve.", pct(rate)),
		}
	case rate.IsPositive():
		return entity.Insight{
			Kind:    entity.InsightWarning,
			Message: fmt.Sprintf("The savings rate was only %s. Consider saving more.", pct(rate)),
		}
	default:
		return entity.Insight{
			Kind:    entity.InsightWarning,
			Message: "Nothing was saved this month. Review expenses and adjust the budget.",
		}
	}
}

// largestCategory returns the entry with the highest amount, the first one on ties.
func largestCategory(amounts []entity.CategoryAmount) entity.CategoryAmount {
	top := amounts[0]
	for _, c := range amounts[1:] {
		if c.Amount.GreaterThan(top.Amount) {
			top = c
		}
	}
	return top
}
