package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// Sheet names of an exported workbook.
const (
	SheetSummary    = "Summary"
	SheetCategories = "Categories"
	SheetDaily      = "Daily"
	SheetTop        = "Top Expenses"
	SheetWeekdays   = "Weekdays"
	SheetGoals      = "Goals"
	SheetInsights   = "Insights"
)

// XLSXExporter writes one worksheet per payload section.
type XLSXExporter struct{}

// NewXLSXExporter creates a new XLSXExporter instance.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Format implements adapter.ReportExporter.
func (XLSXExporter) Format() adapter.ExportFormat { return adapter.ExportXLSX }

// ContentType implements adapter.ReportExporter.
func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export implements adapter.ReportExporter.
func (XLSXExporter) Export(report *entity.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	p := report.Payload
	if p == nil {
		p = &entity.ReportPayload{}
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]any
	}{
		{SheetSummary, []string{"Field", "Value"}, summaryRows(report, p)},
		{SheetCategories, []string{"Type", "Category", "Amount"}, categoryRows(p.CategoryStats)},
		{SheetDaily, []string{"Date", "Income", "Expense"}, dailyRows(p.DailyStats)},
		{SheetTop, []string{"Date", "Category", "Amount", "Description"}, topRows(p.TopExpenses)},
		{SheetWeekdays, []string{"Weekday", "Total", "Count", "Average"}, weekdayRows(p.WeekdayStats)},
		{SheetGoals, []string{"Name", "Type", "Target", "Current", "Progress %", "Status"}, goalRows(p.Goals)},
		{SheetInsights, []string{"Kind", "Title", "Message"}, insightRows(p.Insights)},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeTable(f, s.name, s.headers, s.rows); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", last, 16)
}

func summaryRows(report *entity.MonthlyReport, p *entity.ReportPayload) [][]any {
	mom, yoy := p.Comparison.MonthOverMonth, p.Comparison.YearOverYear
	rows := [][]any{
		{"Period", fmt.Sprintf("%04d-%02d", report.Year, report.Month)},
		{"Total income", report.TotalIncome.InexactFloat64()},
		{"Total expense", report.TotalExpense.InexactFloat64()},
		{"Net amount", report.NetAmount.InexactFloat64()},
		{"Income transactions", p.Summary.IncomeCount},
		{"Expense transactions", p.Summary.ExpenseCount},
		{"Income vs previous month %", mom.IncomeChange.InexactFloat64()},
		{"Expense vs previous month %", mom.ExpenseChange.InexactFloat64()},
		{"Income vs last year %", yoy.IncomeChange.InexactFloat64()},
		{"Expense vs last year %", yoy.ExpenseChange.InexactFloat64()},
	}
	if p.Narrative != "" {
		rows = append(rows, []any{"Narrative", p.Narrative})
	}
	return rows
}

func categoryRows(stats entity.CategoryStats) [][]any {
	var rows [][]any
	for _, c := range stats.Income {
		rows = append(rows, []any{"income", c.Category, c.Amount.InexactFloat64()})
	}
	for _, c := range stats.Expense {
		rows = append(rows, []any{"expense", c.Category, c.Amount.InexactFloat64()})
	}
	return rows
}

func dailyRows(days []entity.DailyStat) [][]any {
	rows := make([][]any, 0, len(days))
	for _, d := range days {
		rows = append(rows, []any{d.Date, d.Income.InexactFloat64(), d.Expense.InexactFloat64()})
	}
	return rows
}

func topRows(top []entity.TopExpense) [][]any {
	rows := make([][]any, 0, len(top))
	for _, e := range top {
		rows = append(rows, []any{e.Date, e.Category, e.Amount.InexactFloat64(), e.Description})
	}
	return rows
}

func weekdayRows(days []entity.WeekdayStat) [][]any {
	rows := make([][]any, 0, len(days))
	for _, w := range days {
		rows = append(rows, []any{w.Label, w.Total.InexactFloat64(), w.Count, w.Average.InexactFloat64()})
	}
	return rows
}

func goalRows(goals []entity.GoalSnapshot) [][]any {
	rows := make([][]any, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []any{
			g.Name, string(g.Type), g.TargetAmount.InexactFloat64(), g.CurrentAmount.InexactFloat64(),
			g.Progress.InexactFloat64(), string(g.Status),
		})
	}
	return rows
}

func insightRows(insights []entity.Insight) [][]any {
	rows := make([][]any, 0, len(insights))
	for _, in := range insights {
		rows = append(rows, []any{string(in.Kind), in.Title, in.Message})
	}
	return rows
}
