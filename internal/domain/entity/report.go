package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// ReportSchemaVersion is the payload layout written by this build.
const ReportSchemaVersion = 1

// MonthlyReport is a persisted snapshot of one user's month.
type MonthlyReport struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Year         int
	Month        int
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetAmount    decimal.Decimal
	Payload      *ReportPayload
	CreatedAt    time.Time
}

// NewMonthlyReport builds a report from a payload, copying the headline totals out of its summary.
func NewMonthlyReport(userID uuid.UUID, year, month int, payload *ReportPayload) *MonthlyReport {
	return &MonthlyReport{
		ID:           uuid.New(),
		UserID:       userID,
		Year:         year,
		Month:        month,
		TotalIncome:  payload.Summary.TotalIncome,
		TotalExpense: payload.Summary.TotalExpense,
		NetAmount:    payload.Summary.NetAmount,
		Payload:      payload,
		CreatedAt:    time.Now().UTC(),
	}
}

// Summary holds ledger totals over a date range.
type Summary struct {
	Year         int             `json:"year,omitempty"`
	Month        int             `json:"month,omitempty"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	IncomeCount  int             `json:"income_count"`
	ExpenseCount int             `json:"expense_count"`
	TotalCount   int             `json:"total_count"`
}

// CategoryAmount is the total of one category over a range.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryStats splits per-category totals by transaction type.
type CategoryStats struct {
	Income  []CategoryAmount `json:"income"`
	Expense []CategoryAmount `json:"expense"`
}

// TotalExpense sums the expense categories.
func (s CategoryStats) TotalExpense() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Expense {
		total = total.Add(c.Amount)
	}
	return total
}

// DailyStat is one day of a dense daily series.
type DailyStat struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// WeekdayStat aggregates expenses falling on one weekday. Weekday is 0 for Monday.
type WeekdayStat struct {
	Weekday int             `json:"weekday"`
	Label   string          `json:"label"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Average decimal.Decimal `json:"average"`
}

// TopExpense is a single large expense annotated for display.
type TopExpense struct {
	ID          uuid.UUID       `json:"id"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// GoalSnapshot captures a goal's state at report time.
type GoalSnapshot struct {
	Name          string          `json:"name"`
	Type          GoalType        `json:"type"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Progress      decimal.Decimal `json:"progress"`
	Status        GoalStatus      `json:"status"`
}

// ChangeSet holds percent changes of the headline totals.
type ChangeSet struct {
	IncomeChange  decimal.Decimal `json:"income_change"`
	ExpenseChange decimal.Decimal `json:"expense_change"`
	NetChange     decimal.Decimal `json:"net_change"`
}

// Comparison holds month-over-month and year-over-year changes.
type Comparison struct {
	MonthOverMonth ChangeSet `json:"month_over_month"`
	YearOverYear   ChangeSet `json:"year_over_year"`
}

// ReportPayload is the versioned document stored with each monthly report.
type ReportPayload struct {
	SchemaVersion int            `json:"schema_version"`
	Summary       Summary        `json:"summary"`
	CategoryStats CategoryStats  `json:"category_stats"`
	DailyStats    []DailyStat    `json:"daily_stats"`
	TopExpenses   []TopExpense   `json:"top_expenses"`
	WeekdayStats  []WeekdayStat  `json:"weekday_stats"`
	Goals         []GoalSnapshot `json:"goals"`
	Comparison    Comparison     `json:"comparison"`
	Insights      []Insight      `json:"insights"`
	Narrative     string         `json:"narrative,omitempty"`
}

// legacyPayload is the untyped layout written before schema_version existed: weekdays were
// labels only and insights carried positive/warning/neutral/info in a "type" field.
type legacyPayload struct {
	Summary       Summary        `json:"summary"`
	CategoryStats CategoryStats  `json:"category_stats"`
	DailyStats    []DailyStat    `json:"daily_stats"`
	TopExpenses   []TopExpense   `json:"top_expenses"`
	Goals         []GoalSnapshot `json:"goals"`
	Comparison    Comparison     `json:"comparison"`
	WeekdayStats  []struct {
		Weekday string          `json:"weekday"`
		Total   decimal.Decimal `json:"total"`
		Count   int             `json:"count"`
		Average decimal.Decimal `json:"average"`
	} `json:"weekday_stats"`
	Insights []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"insights"`
}

// WeekdayLabels maps weekday indexes (Monday first) to English names.
var WeekdayLabels = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// EncodeReportPayload serializes a payload, stamping the current schema version.
func EncodeReportPayload(p *ReportPayload) ([]byte, error) {
	if p == nil {
		p = &ReportPayload{}
	}
	p.SchemaVersion = ReportSchemaVersion
	return json.Marshal(p)
}

// DecodeReportPayload parses a stored payload, upgrading legacy documents to the current layout.
func DecodeReportPayload(data []byte) (*ReportPayload, error) {
	var header struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("decoding payload header: %w", err)
	}

	switch header.SchemaVersion {
	case 0:
		return upgradeLegacyPayload(data)
	case ReportSchemaVersion:
		var p ReportPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decoding payload v%d: %w", header.SchemaVersion, err)
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("%w: %d", domainerror.ErrUnsupportedPayloadVersion, header.SchemaVersion)
	}
}

func upgradeLegacyPayload(data []byte) (*ReportPayload, error) {
	var old legacyPayload
	if err := json.Unmarshal(data, &old); err != nil {
		return nil, fmt.Errorf("decoding legacy payload: %w", err)
	}

	p := &ReportPayload{
		SchemaVersion: ReportSchemaVersion,
		Summary:       old.Summary,
		CategoryStats: old.CategoryStats,
		DailyStats:    old.DailyStats,
		TopExpenses:   old.TopExpenses,
		Goals:         old.Goals,
		Comparison:    old.Comparison,
	}

	for i, w := range old.WeekdayStats {
		if i >= len(WeekdayLabels) {
			break
		}
		p.WeekdayStats = append(p.WeekdayStats, WeekdayStat{
			Weekday: i,
			Label:   WeekdayLabels[i],
			Total:   w.Total,
			Count:   w.Count,
			Average: w.Average,
		})
	}

	for _, in := range old.Insights {
		kind := InsightInfo
		switch in.Type {
		case "positive", "success":
			kind = InsightSuccess
		case "warning":
			kind = InsightWarning
		case "action":
			kind = InsightAction
		}
		p.Insights = append(p.Insights, Insight{Kind: kind, Message: in.Message})
	}

	return p, nil
}
