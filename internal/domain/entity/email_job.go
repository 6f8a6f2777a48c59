// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued notification.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names an embedded notification template.
type EmailTemplateType string

const (
	TemplateMonthlyReport EmailTemplateType = "monthly_report"
	TemplateGoalAchieved  EmailTemplateType = "goal_achieved"
)

// emailRetryDelays is indexed by the number of attempts already made.
var emailRetryDelays = []time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is a notification waiting in the outbound queue.
type EmailJob struct {
	ID             uuid.UUID
	UserID         *uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]any
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob queues a notification for immediate delivery with three attempts.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]any) *EmailJob {
	now := time.Now().UTC()
	if data == nil {
		data = map[string]any{}
	}
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    len(emailRetryDelays),
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing claims the job for the current worker pass.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful hand-off to the provider.
func (e *EmailJob) MarkSent(providerID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ProcessedAt = &now
}

// MarkFailed counts a failed attempt. Permanent failures and exhausted jobs become failed;
// anything else goes back to pending with a backoff.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	now := time.Now().UTC()
	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	delay := emailRetryDelays[len(emailRetryDelays)-1]
	if e.Attempts < len(emailRetryDelays) {
		delay = emailRetryDelays[e.Attempts]
	}
	e.ScheduledAt = now.Add(delay)
}

// CanRetry reports whether attempts remain.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// IsReadyToProcess reports whether the job is pending and due at now.
func (e *EmailJob) IsReadyToProcess(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.Before(e.ScheduledAt)
}
