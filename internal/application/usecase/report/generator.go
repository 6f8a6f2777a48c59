// Package report contains monthly report use cases.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/aggregation"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/insight"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// ReportGeneratedEvent is published after a report is stored.
type ReportGeneratedEvent struct {
	ReportID  uuid.UUID       `json:"report_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	NetAmount decimal.Decimal `json:"net_amount"`
}

// Generator builds and stores monthly report snapshots.
type Generator struct {
	aggregator *aggregation.Aggregator
	goals      adapter.GoalRepository
	reports    adapter.ReportRepository
	events     adapter.EventPublisher
	narrator   adapter.ReportNarrator
}

// NewGenerator creates a new Generator instance. narrator may be nil.
func NewGenerator(
	aggregator *aggregation.Aggregator,
	goals adapter.GoalRepository,
	reports adapter.ReportRepository,
	events adapter.EventPublisher,
	narrator adapter.ReportNarrator,
) *Generator {
	return &Generator{
		aggregator: aggregator,
		goals:      goals,
		reports:    reports,
		events:     events,
		narrator:   narrator,
	}
}

// Generate replaces the user's report for the month. A month without transactions has
// its old report removed and yields nil without an error.
func (g *Generator) Generate(ctx context.Context, userID uuid.UUID, year, month int) (*entity.MonthlyReport, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	summary, err := g.aggregator.MonthlySummary(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	if summary.TotalCount == 0 {
		if _, err := g.reports.DeleteByPeriod(ctx, userID, year, month); err != nil {
			return nil, fmt.Errorf("failed to delete stale report: %w", err)
		}
		return nil, nil
	}

	payload, err := g.payload(ctx, userID, year, month, *summary)
	if err != nil {
		return nil, err
	}

	report := entity.NewMonthlyReport(userID, year, month, payload)
	if err := g.reports.Replace(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	event := ReportGeneratedEvent{
		ReportID:  report.ID,
		UserID:    userID,
		Year:      year,
		Month:     month,
		NetAmount: report.NetAmount,
	}
	if err := g.events.Publish(ctx, adapter.EventReportGenerated, event); err != nil {
		slog.Warn("failed to publish report event", "report_id", report.ID, "error", err)
	}
	return report, nil
}

func (g *Generator) payload(ctx context.Context, userID uuid.UUID, year, month int, summary entity.Summary) (*entity.ReportPayload, error) {
	r := valueobject.MonthRange(year, month)

	stats, err := g.aggregator.CategoryStats(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	daily, err := g.aggregator.DailyStats(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	top, err := g.aggregator.TopExpenses(ctx, userID, r, aggregation.DefaultTopExpenses)
	if err != nil {
		return nil, err
	}
	weekdays, err := g.aggregator.WeekdayStats(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	goals, err := g.goalSnapshots(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	cmp, err := g.comparison(ctx, userID, year, month, summary)
	if err != nil {
		return nil, err
	}

	payload := &entity.ReportPayload{
		SchemaVersion: entity.ReportSchemaVersion,
		Summary:       summary,
		CategoryStats: stats,
		DailyStats:    daily,
		TopExpenses:   top,
		WeekdayStats:  weekdays,
		Goals:         goals,
		Comparison:    cmp,
		Insights:      insight.Report(summary, stats, cmp),
	}

	if g.narrator != nil && g.narrator.IsAvailable() {
		text, err := g.narrator.Narrate(ctx, payload)
		if err != nil {
			slog.Warn("report narration failed", "user_id", userID, "year", year, "month", month, "error", err)
		} else {
			payload.Narrative = text
		}
	}
	return payload, nil
}

func (g *Generator) goalSnapshots(ctx context.Context, userID uuid.UUID, r valueobject.DateRange) ([]entity.GoalSnapshot, error) {
	goals, err := g.goals.FindOverlapping(ctx, userID, r)
	if err != nil {
		return nil, fmt.Errorf("failed to find goals for report: %w", err)
	}

	snapshots := make([]entity.GoalSnapshot, 0, len(goals))
	for _, goal := range goals {
		snapshots = append(snapshots, entity.GoalSnapshot{
			Name:          goal.Name,
			Type:          goal.Type,
			TargetAmount:  goal.TargetAmount,
			CurrentAmount: goal.CurrentAmount,
			Progress:      goal.ProgressPercent().Round(2),
			Status:        goal.Status,
		})
	}
	return snapshots, nil
}

// comparison computes month-over-month and year-over-year changes. Net is compared on
// absolute values.
func (g *Generator) comparison(ctx context.Context, userID uuid.UUID, year, month int, current entity.Summary) (entity.Comparison, error) {
	py, pm := valueobject.PreviousMonth(year, month)
	prev, err := g.aggregator.MonthlySummary(ctx, userID, py, pm)
	if err != nil {
		return entity.Comparison{}, err
	}
	lastYear, err := g.aggregator.MonthlySummary(ctx, userID, year-1, month)
	if err != nil {
		return entity.Comparison{}, err
	}
	return entity.Comparison{
		MonthOverMonth: changeSet(*prev, current),
		YearOverYear:   changeSet(*lastYear, current),
	}, nil
}

func changeSet(old, cur entity.Summary) entity.ChangeSet {
	return entity.ChangeSet{
		IncomeChange:  insight.PercentChange(old.TotalIncome, cur.TotalIncome).Round(2),
		ExpenseChange: insight.PercentChange(old.TotalExpense, cur.TotalExpense).Round(2),
		NetChange:     insight.PercentChange(old.NetAmount.Abs(), cur.NetAmount.Abs()).Round(2),
	}
}

func validatePeriod(year, month int) error {
	if err := valueobject.ValidateYearMonth(year, month); err != nil {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportPeriod,
			err.Error(),
			domainerror.ErrInvalidReportPeriod,
		)
	}
	return nil
}

func isReportNotFound(err error) bool {
	return errors.Is(err, domainerror.ErrReportNotFound)
}

func reportNotFound(year, month int) error {
	return domainerror.NewReportError(
		domainerror.ErrCodeReportNotFound,
		fmt.Sprintf("no report for %04d-%02d", year, month),
		domainerror.ErrReportNotFound,
	)
}
