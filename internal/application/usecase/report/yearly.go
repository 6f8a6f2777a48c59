package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/aggregation"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// YearlySummary rolls up the stored reports of one year.
type YearlySummary struct {
	Year              int
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	NetAmount         decimal.Decimal
	AvgMonthlyIncome  decimal.Decimal
	AvgMonthlyExpense decimal.Decimal
	MonthsWithData    int
	MaxIncomeMonth    int
	MaxIncomeAmount   decimal.Decimal
	MaxExpenseMonth   int
	MaxExpenseAmount  decimal.Decimal
	SavingsRate       decimal.Decimal
	Reports           []*entity.MonthlyReport
}

// YearInput identifies one year of a user.
type YearInput struct {
	UserID uuid.UUID
	Year   int
}

// YearlySummaryUseCase summarizes a year from its stored reports.
type YearlySummaryUseCase struct {
	reports adapter.ReportRepository
}

// NewYearlySummaryUseCase creates a new YearlySummaryUseCase instance.
func NewYearlySummaryUseCase(reports adapter.ReportRepository) *YearlySummaryUseCase {
	return &YearlySummaryUseCase{reports: reports}
}

// Execute builds the summary. A year without reports is reported as not found.
func (uc *YearlySummaryUseCase) Execute(ctx context.Context, input YearInput) (*YearlySummary, error) {
	if err := validatePeriod(input.Year, 1); err != nil {
		return nil, err
	}

	reports, err := uc.reports.FindByYear(ctx, input.UserID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if len(reports) == 0 {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportNotFound,
			fmt.Sprintf("no reports for %d", input.Year),
			domainerror.ErrReportNotFound,
		)
	}
	return summarizeYear(input.Year, reports), nil
}

// summarizeYear expects reports of a single year; ties for the max months go to the earlier month.
func summarizeYear(year int, reports []*entity.MonthlyReport) *YearlySummary {
	ordered := make([]*entity.MonthlyReport, len(reports))
	for i, r := range reports {
		ordered[len(reports)-1-i] = r
	}

	s := &YearlySummary{
		Year:           year,
		MonthsWithData: len(ordered),
		SavingsRate:    decimal.Zero,
		Reports:        ordered,
	}
	for _, r := range ordered {
		s.TotalIncome = s.TotalIncome.Add(r.TotalIncome)
		s.TotalExpense = s.TotalExpense.Add(r.TotalExpense)
		if s.MaxIncomeMonth == 0 || r.TotalIncome.GreaterThan(s.MaxIncomeAmount) {
			s.MaxIncomeMonth, s.MaxIncomeAmount = r.Month, r.TotalIncome
		}
		if s.MaxExpenseMonth == 0 || r.TotalExpense.GreaterThan(s.MaxExpenseAmount) {
			s.MaxExpenseMonth, s.MaxExpenseAmount = r.Month, r.TotalExpense
		}
	}

	n := decimal.NewFromInt(int64(len(ordered)))
	s.NetAmount = s.TotalIncome.Sub(s.TotalExpense)
	s.AvgMonthlyIncome = s.TotalIncome.Div(n).Round(2)
	s.AvgMonthlyExpense = s.TotalExpense.Div(n).Round(2)
	if s.TotalIncome.IsPositive() {
		s.SavingsRate = s.NetAmount.Div(s.TotalIncome).Mul(hundred).Round(2)
	}
	return s
}

// CategoryBreakdownUseCase totals a year per category straight from the ledger.
type CategoryBreakdownUseCase struct {
	aggregator *aggregation.Aggregator
}

// NewCategoryBreakdownUseCase creates a new CategoryBreakdownUseCase instance.
func NewCategoryBreakdownUseCase(aggregator *aggregation.Aggregator) *CategoryBreakdownUseCase {
	return &CategoryBreakdownUseCase{aggregator: aggregator}
}

// Execute returns the per-category income and expense totals of the year.
func (uc *CategoryBreakdownUseCase) Execute(ctx context.Context, input YearInput) (entity.CategoryStats, error) {
	if err := validatePeriod(input.Year, 1); err != nil {
		return entity.CategoryStats{}, err
	}
	return uc.aggregator.CategoryStats(ctx, input.UserID, valueobject.YearRange(input.Year))
}
