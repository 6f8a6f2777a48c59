package insight

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// Trend labels of a spending report.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

var (
	risingFactor  = decimal.RequireFromString("1.1")
	fallingFactor = decimal.RequireFromString("0.9")
)

// SpendingMonth is one month of a spending report.
type SpendingMonth struct {
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Summary    entity.Summary       `json:"summary"`
	Categories entity.CategoryStats `json:"categories"`
}

// CategoryAverage is a category's mean expense over the months it appeared in.
type CategoryAverage struct {
	Category string          `json:"category"`
	Average  decimal.Decimal `json:"average"`
}

// SpendingReport summarizes several months of spending.
type SpendingReport struct {
	Months                []SpendingMonth   `json:"monthly_data"`
	AverageMonthlyExpense decimal.Decimal   `json:"average_monthly_expense"`
	TopExpenseCategories  []CategoryAverage `json:"top_expense_categories"`
	Trend                 string            `json:"trend"`
}

// Spending builds a report from months ordered oldest to newest. The trend compares the
// newest month against the average.
func Spending(months []SpendingMonth) *SpendingReport {
	report := &SpendingReport{
		Months:                months,
		AverageMonthlyExpense: decimal.Zero,
		TopExpenseCategories:  []CategoryAverage{},
		Trend:                 TrendStable,
	}
	if len(months) == 0 {
		return report
	}

	total := decimal.Zero
	sums := map[string]decimal.Decimal{}
	seen := map[string]int64{}
	for _, m := range months {
		total = total.Add(m.Summary.TotalExpense)
		for _, c := range m.Categories.Expense {
			sums[c.Category] = sums[c.Category].Add(c.Amount)
			seen[c.Category]++
		}
	}
	avg := total.Div(decimal.NewFromInt(int64(len(months)))).Round(2)
	report.AverageMonthlyExpense = avg

	for name, sum := range sums {
		report.TopExpenseCategories = append(report.TopExpenseCategories, CategoryAverage{
			Category: name,
			Average:  sum.Div(decimal.NewFromInt(seen[name])).Round(2),
		})
	}
	sort.Slice(report.TopExpenseCategories, func(i, j int) bool {
		a, b := report.TopExpenseCategories[i], report.TopExpenseCategories[j]
		if c := a.Average.Cmp(b.Average); c != 0 {
			return c > 0
		}
		return a.Category < b.Category
	})
	if len(report.TopExpenseCategories) > 5 {
		report.TopExpenseCategories = report.TopExpenseCategories[:5]
	}

	latest := months[len(months)-1].Summary.TotalExpense
	switch {
	case latest.GreaterThan(avg.Mul(risingFactor)):
		report.Trend = TrendIncreasing
	case latest.LessThan(avg.Mul(fallingFactor)):
		report.Trend = TrendDecreasing
	}
	return report
}
