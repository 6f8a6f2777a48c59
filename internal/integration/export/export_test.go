package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

func sampleReport() *entity.MonthlyReport {
	payload := &entity.ReportPayload{
		SchemaVersion: entity.ReportSchemaVersion,
		Summary: entity.Summary{
			Year: 2026, Month: 3,
			TotalIncome:  decimal.RequireFromString("3000"),
			TotalExpense: decimal.RequireFromString("250"),
			NetAmount:    decimal.RequireFromString("2750"),
			IncomeCount:  1, ExpenseCount: 2, TotalCount: 3,
		},
		CategoryStats: entity.CategoryStats{
			Income: []entity.CategoryAmount{{Category: "Salary", Amount: decimal.RequireFromString("3000")}},
			Expense: []entity.CategoryAmount{
				{Category: "Food", Amount: decimal.RequireFromString("200")},
				{Category: "Transport", Amount: decimal.RequireFromString("50")},
			},
		},
		Insights: []entity.Insight{{Kind: entity.InsightSuccess, Message: "Surplus this month"}},
	}
	return entity.NewMonthlyReport(uuid.New(), 2026, 3, payload)
}

func TestJSONExporter(t *testing.T) {
	e := NewJSONExporter()
	if e.Format() != adapter.ExportJSON {
		t.Errorf("unexpected format %s", e.Format())
	}

	body, err := e.Export(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got struct {
		Year      int             `json:"year"`
		NetAmount decimal.Decimal `json:"net_amount"`
		Payload   struct {
			SchemaVersion int `json:"schema_version"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Year != 2026 || !got.NetAmount.Equal(decimal.RequireFromString("2750")) {
		t.Errorf("unexpected document %+v", got)
	}
	if got.Payload.SchemaVersion != entity.ReportSchemaVersion {
		t.Errorf("expected schema version %d, got %d", entity.ReportSchemaVersion, got.Payload.SchemaVersion)
	}
}

func TestXLSXExporter(t *testing.T) {
	body, err := NewXLSXExporter().Export(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 7 || sheets[0] != SheetSummary {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	period, err := f.GetCellValue(SheetSummary, "B2")
	if err != nil || period != "2026-03" {
		t.Errorf("expected period 2026-03, got %q (%v)", period, err)
	}

	rows, err := f.GetRows(SheetCategories)
	if err != nil {
		t.Fatalf("failed to read categories: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header and 3 categories, got %d rows", len(rows))
	}
	if rows[2][0] != "expense" || rows[2][1] != "Food" || rows[2][2] != "200" {
		t.Errorf("unexpected category row %v", rows[2])
	}
}

func TestXLSXExporter_EmptyPayload(t *testing.T) {
	report := &entity.MonthlyReport{Year: 2026, Month: 1}
	if _, err := NewXLSXExporter().Export(report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
