package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// EmailQueueRepository defines the interface for email queue persistence operations.
type EmailQueueRepository interface {
	// Create adds a new email job to the queue.
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs retrieves jobs due at now, ordered by scheduled_at.
	GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Update saves changes to an email job.
	Update(ctx context.Context, job *entity.EmailJob) error

	// GetByID retrieves a specific job by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// GetByRecipient retrieves jobs for a specific email address, newest first.
	GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)

	// DeleteOldSentJobs removes sent jobs processed before the cutoff.
	DeleteOldSentJobs(ctx context.Context, before time.Time) (int64, error)
}
