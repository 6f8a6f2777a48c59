package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/goal"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/report"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// Job names.
const (
	JobMonthlyReports = "monthly_reports"
	JobGoalRefresh    = "goal_refresh"
	JobEmailCleanup   = "email_cleanup"
)

// ReportBatch generates one month of reports for every user.
type ReportBatch interface {
	Execute(ctx context.Context, year, month int) (*report.BatchResult, error)
}

// GoalBatch refreshes the active goals of every user.
type GoalBatch interface {
	UpdateAll(ctx context.Context) (*goal.BatchResult, error)
}

// EmailCleaner purges sent e-mail jobs older than a retention window.
type EmailCleaner interface {
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

// MonthlyReportJob generates the previous calendar month relative to clock.
func MonthlyReportJob(spec string, batch ReportBatch, clock adapter.Clock) Job {
	return Job{
		Name: JobMonthlyReports,
		Spec: spec,
		Run: func(ctx context.Context) error {
			now := clock.Now()
			year, month := valueobject.PreviousMonth(now.Year(), int(now.Month()))
			result, err := batch.Execute(ctx, year, month)
			if err != nil {
				return err
			}
			slog.Info("monthly report job done",
				"year", year, "month", month,
				"generated", result.Generated, "empty", result.Empty, "failed", result.Failed)
			return nil
		},
	}
}

// GoalRefreshJob recomputes every active goal.
func GoalRefreshJob(spec string, batch GoalBatch) Job {
	return Job{
		Name: JobGoalRefresh,
		Spec: spec,
		Run: func(ctx context.Context) error {
			result, err := batch.UpdateAll(ctx)
			if err != nil {
				return err
			}
			slog.Info("goal refresh job done", "users", result.Users, "goals", result.Goals, "failed", result.Failed)
			return nil
		},
	}
}

// EmailCleanupJob deletes sent e-mails older than retention.
func EmailCleanupJob(spec string, cleaner EmailCleaner, retention time.Duration) Job {
	return Job{
		Name: JobEmailCleanup,
		Spec: spec,
		Run: func(ctx context.Context) error {
			n, err := cleaner.Cleanup(ctx, retention)
			if err != nil {
				return err
			}
			slog.Info("email cleanup job done", "deleted", n)
			return nil
		},
	}
}
