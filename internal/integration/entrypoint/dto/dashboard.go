package dto

import (
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/dashboard"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// DashboardResponse is the current month overview.
type DashboardResponse struct {
	Year               int                   `json:"year"`
	Month              int                   `json:"month"`
	Summary            entity.Summary        `json:"summary"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
	Goals              []GoalResponse        `json:"goals"`
	Insights           []entity.Insight      `json:"insights"`
	Suggestions        []entity.Insight      `json:"suggestions"`
	CategoryStats      entity.CategoryStats  `json:"category_stats"`
}

// MonthTotalResponse is one month of a category trend.
type MonthTotalResponse struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// CategoryTrendResponse lists monthly totals of one category, oldest first.
type CategoryTrendResponse struct {
	CategoryID string               `json:"category_id"`
	Months     []MonthTotalResponse `json:"months"`
}

// AverageDailyExpenseResponse is the mean daily expense over a trailing window.
type AverageDailyExpenseResponse struct {
	Days    int             `json:"days"`
	Average decimal.Decimal `json:"average"`
}

// ToDashboardResponse converts an overview.
func ToDashboardResponse(o *dashboard.Overview) DashboardResponse {
	return DashboardResponse{
		Year:               o.Year,
		Month:              o.Month,
		Summary:            o.Summary,
		RecentTransactions: ToTransactionResponses(o.Recent),
		Goals:              ToGoalListResponse(o.Goals).Goals,
		Insights:           nonNilInsights(o.Insights),
		Suggestions:        nonNilInsights(o.Suggestions),
		CategoryStats:      o.CategoryStats,
	}
}

// ToCategoryTrendResponse converts monthly totals of a category.
func ToCategoryTrendResponse(categoryID string, totals []adapter.MonthTotal) CategoryTrendResponse {
	months := make([]MonthTotalResponse, len(totals))
	for i, t := range totals {
		months[i] = MonthTotalResponse{Year: t.Year, Month: t.Month, Total: t.Total}
	}
	return CategoryTrendResponse{CategoryID: categoryID, Months: months}
}

func nonNilInsights(in []entity.Insight) []entity.Insight {
	if in == nil {
		return []entity.Insight{}
	}
	return in
}
