// Package export renders stored monthly reports into downloadable documents.
package export

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

type jsonReport struct {
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	TotalIncome  decimal.Decimal       `json:"total_income"`
	TotalExpense decimal.Decimal       `json:"total_expense"`
	NetAmount    decimal.Decimal       `json:"net_amount"`
	GeneratedAt  time.Time             `json:"generated_at"`
	Payload      *entity.ReportPayload `json:"payload"`
}

// JSONExporter writes the report and its payload as indented JSON.
type JSONExporter struct{}

// NewJSONExporter creates a new JSONExporter instance.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Format implements adapter.ReportExporter.
func (JSONExporter) Format() adapter.ExportFormat { return adapter.ExportJSON }

// ContentType implements adapter.ReportExporter.
func (JSONExporter) ContentType() string { return "application/json" }

// Export implements adapter.ReportExporter.
func (JSONExporter) Export(report *entity.MonthlyReport) ([]byte, error) {
	return json.MarshalIndent(jsonReport{
		Year:         report.Year,
		Month:        report.Month,
		TotalIncome:  report.TotalIncome,
		TotalExpense: report.TotalExpense,
		NetAmount:    report.NetAmount,
		GeneratedAt:  report.CreatedAt,
		Payload:      report.Payload,
	}, "", "  ")
}
