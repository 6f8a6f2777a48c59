package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// ReportRepository defines the interface for monthly report persistence.
type ReportRepository interface {
	// Replace deletes any report for the same (user, year, month) and inserts report, atomically.
	Replace(ctx context.Context, report *entity.MonthlyReport) error

	// FindByPeriod retrieves the report for one month.
	FindByPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*entity.MonthlyReport, error)

	// FindByYear retrieves a user's reports, year desc then month desc. A zero year returns all years.
	FindByYear(ctx context.Context, userID uuid.UUID, year int) ([]*entity.MonthlyReport, error)

	// FindYears lists the distinct years with reports, newest first.
	FindYears(ctx context.Context, userID uuid.UUID) ([]int, error)

	// DeleteByPeriod removes the report for one month. It reports whether a row was removed.
	DeleteByPeriod(ctx context.Context, userID uuid.UUID, year, month int) (bool, error)
}
