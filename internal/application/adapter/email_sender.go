package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult carries the provider's message ID.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService queues notification e-mails for the background worker.
type EmailService interface {
	QueueMonthlyReportEmail(ctx context.Context, input QueueMonthlyReportInput) error
	QueueGoalAchievedEmail(ctx context.Context, input QueueGoalAchievedInput) error
}

// QueueMonthlyReportInput represents the input for queueing a monthly report email.
type QueueMonthlyReportInput struct {
	UserID       uuid.UUID
	UserEmail    string
	UserName     string
	Year         int
	Month        int
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetAmount    decimal.Decimal
	Highlights   []string
}

// QueueGoalAchievedInput represents the input for queueing a goal achieved email.
type QueueGoalAchievedInput struct {
	UserID       uuid.UUID
	UserEmail    string
	UserName     string
	GoalName     string
	TargetAmount decimal.Decimal
}
