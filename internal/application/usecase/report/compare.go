package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/insight"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// CompareInput names the two months to compare. When any field is zero the current
// month is compared with the previous one.
type CompareInput struct {
	UserID uuid.UUID
	Year1  int
	Month1 int
	Year2  int
	Month2 int
}

// Deltas holds income, expense and net differences.
type Deltas struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// CompareOutput holds both reports and, when both exist, the first minus the second.
type CompareOutput struct {
	Year1, Month1 int
	Year2, Month2 int
	First         *entity.MonthlyReport
	Second        *entity.MonthlyReport
	Change        *Deltas
	ChangePercent *Deltas
}

// CompareReportsUseCase compares two monthly reports.
type CompareReportsUseCase struct {
	reports   adapter.ReportRepository
	generator *Generator
	clock     adapter.Clock
}

// NewCompareReportsUseCase creates a new CompareReportsUseCase instance.
func NewCompareReportsUseCase(reports adapter.ReportRepository, generator *Generator, clock adapter.Clock) *CompareReportsUseCase {
	return &CompareReportsUseCase{
		reports:   reports,
		generator: generator,
		clock:     clock,
	}
}

// Execute loads or generates both reports and compares them. The percentages treat the
// second month as the baseline.
func (uc *CompareReportsUseCase) Execute(ctx context.Context, input CompareInput) (*CompareOutput, error) {
	if input.Year1 == 0 || input.Month1 == 0 || input.Year2 == 0 || input.Month2 == 0 {
		today := uc.clock.Now()
		input.Year1, input.Month1 = today.Year(), int(today.Month())
		input.Year2, input.Month2 = valueobject.PreviousMonth(input.Year1, input.Month1)
	}
	if err := validatePeriod(input.Year1, input.Month1); err != nil {
		return nil, err
	}
	if err := validatePeriod(input.Year2, input.Month2); err != nil {
		return nil, err
	}

	first, err := loadOrGenerate(ctx, uc.reports, uc.generator, input.UserID, input.Year1, input.Month1)
	if err != nil {
		return nil, err
	}
	second, err := loadOrGenerate(ctx, uc.reports, uc.generator, input.UserID, input.Year2, input.Month2)
	if err != nil {
		return nil, err
	}

	out := &CompareOutput{
		Year1: input.Year1, Month1: input.Month1,
		Year2: input.Year2, Month2: input.Month2,
		First:  first,
		Second: second,
	}
	if first == nil || second == nil {
		return out, nil
	}

	out.Change = &Deltas{
		Income:  first.TotalIncome.Sub(second.TotalIncome),
		Expense: first.TotalExpense.Sub(second.TotalExpense),
		Net:     first.NetAmount.Sub(second.NetAmount),
	}
	out.ChangePercent = &Deltas{
		Income:  insight.ComparePercent(second.TotalIncome, first.TotalIncome).Round(2),
		Expense: insight.ComparePercent(second.TotalExpense, first.TotalExpense).Round(2),
		Net:     insight.ComparePercent(second.NetAmount, first.NetAmount).Round(2),
	}
	return out, nil
}
