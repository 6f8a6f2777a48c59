package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/report"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// GenerateReportRequest represents the request body for report regeneration.
type GenerateReportRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

// ReportResponse represents a stored monthly report.
type ReportResponse struct {
	ID           string                `json:"id"`
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	TotalIncome  decimal.Decimal       `json:"total_income"`
	TotalExpense decimal.Decimal       `json:"total_expense"`
	NetAmount    decimal.Decimal       `json:"net_amount"`
	Data         *entity.ReportPayload `json:"report_data,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ReportListResponse lists the reports of one year.
type ReportListResponse struct {
	Year           int              `json:"year"`
	Reports        []ReportResponse `json:"reports"`
	AvailableYears []int            `json:"available_years"`
}

// DeltasResponse holds income, expense and net deltas.
type DeltasResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CompareResponse compares two months. Missing months are null.
type CompareResponse struct {
	Period1       string          `json:"period1"`
	Period2       string          `json:"period2"`
	Report1       *ReportResponse `json:"report1"`
	Report2       *ReportResponse `json:"report2"`
	Change        *DeltasResponse `json:"change"`
	ChangePercent *DeltasResponse `json:"change_percent"`
}

// YearlySummaryResponse aggregates the stored reports of one year.
type YearlySummaryResponse struct {
	Year              int              `json:"year"`
	TotalIncome       decimal.Decimal  `json:"total_income"`
	TotalExpense      decimal.Decimal  `json:"total_expense"`
	NetAmount         decimal.Decimal  `json:"net_amount"`
	AvgMonthlyIncome  decimal.Decimal  `json:"avg_monthly_income"`
	AvgMonthlyExpense decimal.Decimal  `json:"avg_monthly_expense"`
	MonthsWithData    int              `json:"months_with_data"`
	MaxIncomeMonth    int              `json:"max_income_month"`
	MaxIncomeAmount   decimal.Decimal  `json:"max_income_amount"`
	MaxExpenseMonth   int              `json:"max_expense_month"`
	MaxExpenseAmount  decimal.Decimal  `json:"max_expense_amount"`
	SavingsRate       decimal.Decimal  `json:"savings_rate"`
	Reports           []ReportResponse `json:"reports"`
}

// ToReportResponse converts a report. The payload is included only when withData is set.
func ToReportResponse(r *entity.MonthlyReport, withData bool) ReportResponse {
	response := ReportResponse{
		ID:           r.ID.String(),
		Year:         r.Year,
		Month:        r.Month,
		TotalIncome:  r.TotalIncome,
		TotalExpense: r.TotalExpense,
		NetAmount:    r.NetAmount,
		CreatedAt:    r.CreatedAt,
	}
	if withData {
		response.Data = r.Payload
	}
	return response
}

func toReportResponses(reports []*entity.MonthlyReport) []ReportResponse {
	out := make([]ReportResponse, len(reports))
	for i, r := range reports {
		out[i] = ToReportResponse(r, false)
	}
	return out
}

// ToReportListResponse converts a year listing.
func ToReportListResponse(year int, output *report.ListReportsOutput) ReportListResponse {
	years := output.AvailableYears
	if years == nil {
		years = []int{}
	}
	return ReportListResponse{
		Year:           year,
		Reports:        toReportResponses(output.Reports),
		AvailableYears: years,
	}
}

// ToCompareResponse converts a comparison.
func ToCompareResponse(o *report.CompareOutput) CompareResponse {
	response := CompareResponse{
		Period1: period(o.Year1, o.Month1),
		Period2: period(o.Year2, o.Month2),
	}
	if o.First != nil {
		r := ToReportResponse(o.First, true)
		response.Report1 = &r
	}
	if o.Second != nil {
		r := ToReportResponse(o.Second, true)
		response.Report2 = &r
	}
	response.Change = toDeltas(o.Change)
	response.ChangePercent = toDeltas(o.ChangePercent)
	return response
}

// ToYearlySummaryResponse converts a yearly summary.
func ToYearlySummaryResponse(s *report.YearlySummary) YearlySummaryResponse {
	return YearlySummaryResponse{
		Year:              s.Year,
		TotalIncome:       s.TotalIncome,
		TotalExpense:      s.TotalExpense,
		NetAmount:         s.NetAmount,
		AvgMonthlyIncome:  s.AvgMonthlyIncome,
		AvgMonthlyExpense: s.AvgMonthlyExpense,
		MonthsWithData:    s.MonthsWithData,
		MaxIncomeMonth:    s.MaxIncomeMonth,
		MaxIncomeAmount:   s.MaxIncomeAmount,
		MaxExpenseMonth:   s.MaxExpenseMonth,
		MaxExpenseAmount:  s.MaxExpenseAmount,
		SavingsRate:       s.SavingsRate,
		Reports:           toReportResponses(s.Reports),
	}
}

func toDeltas(d *report.Deltas) *DeltasResponse {
	if d == nil {
		return nil
	}
	return &DeltasResponse{Income: d.Income, Expense: d.Expense, Net: d.Net}
}

func period(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
