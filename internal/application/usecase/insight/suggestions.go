package insight

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

var targetSavingsShare = decimal.RequireFromString("0.2")

// GoalCounts tallies a user's active goals by track.
type GoalCounts struct {
	Total   int
	OnTrack int
	Behind  int
	Overdue int
}

// SuggestionInput is the data the suggestion rules read.
type SuggestionInput struct {
	Summary       entity.Summary
	CategoryStats entity.CategoryStats
	Goals         GoalCounts
}

// Suggestions proposes actions for the current month.
func Suggestions(in SuggestionInput) []entity.Insight {
	var out []entity.Insight

	if in.Summary.NetAmount.IsNegative() {
		out = append(out, entity.Insight{
			Kind:  entity.InsightAction,
			Title: "Optimize your budget",
			Message: fmt.Sprintf("This month's deficit is %s. Cut non-essential spending or add income.",
				money(in.Summary.NetAmount.Abs())),
		})
	}

	out = append(out, heavyCategories(in.CategoryStats)...)

	if rate, ok := SavingsRate(in.Summary); ok && rate.IsPositive() && rate.LessThan(goodSavingsRate) {
		needed := in.Summary.TotalIncome.Mul(targetSavingsShare).Sub(in.Summary.NetAmount)
		out = append(out, entity.Insight{
			Kind:  entity.InsightAction,
			Title: "Save a little more",
			Message: fmt.Sprintf("Your savings rate is %s. Spend %s less to reach 20%%.",
				pct(rate), money(needed)),
		})
	}

	switch {
	case in.Goals.Total == 0:
		out = append(out, entity.Insight{
			Kind:    entity.InsightInfo,
			Title:   "Set a financial goal",
			Message: "You have no active goals. Create a saving or expense-limit goal.",
		})
	case in.Goals.Behind > in.Goals.OnTrack:
		out = append(out, entity.Insight{
			Kind:    entity.InsightWarning,
			Title:   "Several goals are behind",
			Message: fmt.Sprintf("%d goals are behind schedule. Reconsider their targets.", in.Goals.Behind),
		})
	}
	if in.Goals.Overdue > 0 {
		out = append(out, entity.Insight{
			Kind:    entity.InsightWarning,
			Title:   "Goals are overdue",
			Message: fmt.Sprintf("%d goals are past their end date. Update or cancel them.", in.Goals.Overdue),
		})
	}
	return out
}

// heavyCategories flags each of the three largest expense categories above the concentration threshold.
func heavyCategories(stats entity.CategoryStats) []entity.Insight {
	total := stats.TotalExpense()
	if !total.IsPositive() {
		return nil
	}

	sorted := append([]entity.CategoryAmount(nil), stats.Expense...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount.GreaterThan(sorted[j].Amount) })
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}

	var out []entity.Insight
	for _, c := range sorted {
		share := Share(c.Amount, total)
		if !share.GreaterThan(concentrationThreshold) {
			continue
		}
		out = append(out, entity.Insight{
			Kind:    entity.InsightWarning,
			Title:   fmt.Sprintf("%s takes a large share", c.Category),
			Message: fmt.Sprintf("%s is %s of total expenses. Look for savings there.", c.Category, pct(share)),
		})
	}
	return out
}
