package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// ReadCache stores serialized read models per user. Misses return ok == false without an error.
type ReadCache interface {
	Get(ctx context.Context, userID uuid.UUID, key string, dest any) (ok bool, err error)
	Set(ctx context.Context, userID uuid.UUID, key string, value any, ttl time.Duration) error
	// InvalidateUser drops every cached entry of the user.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

// ExportFormat names a report export encoding.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportXLSX ExportFormat = "xlsx"
)

// ReportExporter renders a report into a downloadable document.
type ReportExporter interface {
	Format() ExportFormat
	ContentType() string
	Export(report *entity.MonthlyReport) ([]byte, error)
}

// ReportArchive keeps a copy of exported documents outside the database.
type ReportArchive interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

// Event names published on the message bus.
const (
	EventReportGenerated = "report.generated"
	EventGoalCompleted   = "goal.completed"
)

// EventPublisher emits domain events.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// ReportNarrator writes a short prose summary for a report payload.
type ReportNarrator interface {
	IsAvailable() bool
	Narrate(ctx context.Context, payload *entity.ReportPayload) (string, error)
}
