package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// ExportInput represents the input for exporting a report.
type ExportInput struct {
	PeriodInput
	Format adapter.ExportFormat
}

// ExportOutput is a rendered document.
type ExportOutput struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportReportUseCase renders a stored report and archives the document.
type ExportReportUseCase struct {
	reports   adapter.ReportRepository
	exporters map[adapter.ExportFormat]adapter.ReportExporter
	archive   adapter.ReportArchive
}

// NewExportReportUseCase creates a new ExportReportUseCase instance. archive may be nil.
func NewExportReportUseCase(reports adapter.ReportRepository, archive adapter.ReportArchive, exporters ...adapter.ReportExporter) *ExportReportUseCase {
	byFormat := make(map[adapter.ExportFormat]adapter.ReportExporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &ExportReportUseCase{
		reports:   reports,
		exporters: byFormat,
		archive:   archive,
	}
}

// Execute renders the report. Only stored reports are exported.
func (uc *ExportReportUseCase) Execute(ctx context.Context, input ExportInput) (*ExportOutput, error) {
	if err := validatePeriod(input.Year, input.Month); err != nil {
		return nil, err
	}

	exporter, ok := uc.exporters[input.Format]
	if !ok {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeUnsupportedExportFormat,
			fmt.Sprintf("format %q is not supported", input.Format),
			domainerror.ErrUnsupportedExportFormat,
		)
	}

	report, err := uc.reports.FindByPeriod(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		if isReportNotFound(err) {
			return nil, reportNotFound(input.Year, input.Month)
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	body, err := exporter.Export(report)
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportInternalError,
			"failed to export report",
			err,
		)
	}

	filename := fmt.Sprintf("report-%04d-%02d.%s", input.Year, input.Month, input.Format)
	if uc.archive != nil {
		key := fmt.Sprintf("%s/%s", input.UserID, filename)
		if err := uc.archive.Put(ctx, key, exporter.ContentType(), body); err != nil {
			slog.Warn("failed to archive report export", "key", key, "error", err)
		}
	}

	return &ExportOutput{
		Filename:    filename,
		ContentType: exporter.ContentType(),
		Body:        body,
	}, nil
}
