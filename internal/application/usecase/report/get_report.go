package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// PeriodInput identifies one month of a user.
type PeriodInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// GetReportUseCase returns a stored report, generating it when it does not exist yet.
type GetReportUseCase struct {
	reports   adapter.ReportRepository
	generator *Generator
}

// NewGetReportUseCase creates a new GetReportUseCase instance.
func NewGetReportUseCase(reports adapter.ReportRepository, generator *Generator) *GetReportUseCase {
	return &GetReportUseCase{
		reports:   reports,
		generator: generator,
	}
}

// Execute loads or generates the report. A month without data is reported as not found.
func (uc *GetReportUseCase) Execute(ctx context.Context, input PeriodInput) (*entity.MonthlyReport, error) {
	if err := validatePeriod(input.Year, input.Month); err != nil {
		return nil, err
	}
	report, err := loadOrGenerate(ctx, uc.reports, uc.generator, input.UserID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeNoData,
			fmt.Sprintf("no transactions in %04d-%02d", input.Year, input.Month),
			domainerror.ErrReportNotFound,
		)
	}
	return report, nil
}

// loadOrGenerate returns nil without an error when the month has no data.
func loadOrGenerate(
	ctx context.Context,
	reports adapter.ReportRepository,
	generator *Generator,
	userID uuid.UUID,
	year, month int,
) (*entity.MonthlyReport, error) {
	report, err := reports.FindByPeriod(ctx, userID, year, month)
	if err == nil {
		return report, nil
	}
	if !isReportNotFound(err) {
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return generator.Generate(ctx, userID, year, month)
}

// ListReportsInput represents the input for listing reports. A zero Year lists every year.
type ListReportsInput struct {
	UserID uuid.UUID
	Year   int
}

// ListReportsOutput represents the output of listing reports.
type ListReportsOutput struct {
	Reports        []*entity.MonthlyReport
	AvailableYears []int
}

// ListReportsUseCase lists a user's stored reports.
type ListReportsUseCase struct {
	reports adapter.ReportRepository
}

// NewListReportsUseCase creates a new ListReportsUseCase instance.
func NewListReportsUseCase(reports adapter.ReportRepository) *ListReportsUseCase {
	return &ListReportsUseCase{reports: reports}
}

// Execute lists the reports, newest first, with the years that have reports.
func (uc *ListReportsUseCase) Execute(ctx context.Context, input ListReportsInput) (*ListReportsOutput, error) {
	reports, err := uc.reports.FindByYear(ctx, input.UserID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	years, err := uc.reports.FindYears(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list report years: %w", err)
	}
	return &ListReportsOutput{
		Reports:        reports,
		AvailableYears: years,
	}, nil
}

// GenerateReportUseCase regenerates one month on request.
type GenerateReportUseCase struct {
	generator *Generator
	cache     adapter.ReadCache
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
func NewGenerateReportUseCase(generator *Generator, cache adapter.ReadCache) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		generator: generator,
		cache:     cache,
	}
}

// Execute regenerates the report; a month without data is reported as not found.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input PeriodInput) (*entity.MonthlyReport, error) {
	report, err := uc.generator.Generate(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to invalidate cache: %w", err)
	}
	if report == nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeNoData,
			fmt.Sprintf("no transactions in %04d-%02d", input.Year, input.Month),
			domainerror.ErrReportNotFound,
		)
	}
	return report, nil
}

// DeleteReportUseCase removes one stored report.
type DeleteReportUseCase struct {
	reports adapter.ReportRepository
	cache   adapter.ReadCache
}

// NewDeleteReportUseCase creates a new DeleteReportUseCase instance.
func NewDeleteReportUseCase(reports adapter.ReportRepository, cache adapter.ReadCache) *DeleteReportUseCase {
	return &DeleteReportUseCase{
		reports: reports,
		cache:   cache,
	}
}

// Execute deletes the report.
func (uc *DeleteReportUseCase) Execute(ctx context.Context, input PeriodInput) error {
	if err := validatePeriod(input.Year, input.Month); err != nil {
		return err
	}

	deleted, err := uc.reports.DeleteByPeriod(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if !deleted {
		return reportNotFound(input.Year, input.Month)
	}
	return uc.cache.InvalidateUser(ctx, input.UserID)
}
