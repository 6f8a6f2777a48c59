// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueMonthlyReportEmail queues the monthly summary sent after a scheduled report run.
func (s *Service) QueueMonthlyReportEmail(ctx context.Context, input adapter.QueueMonthlyReportInput) error {
	period := fmt.Sprintf("%04d-%02d", input.Year, input.Month)
	subject := fmt.Sprintf("Your financial report for %s", period)

	highlights := make([]any, len(input.Highlights))
	for i, h := range input.Highlights {
		highlights[i] = h
	}

	templateData := map[string]any{
		"user_name":     input.UserName,
		"period":        period,
		"total_income":  input.TotalIncome.StringFixed(2),
		"total_expense": input.TotalExpense.StringFixed(2),
		"net_amount":    input.NetAmount.StringFixed(2),
		"highlights":    highlights,
		"report_url":    fmt.Sprintf("%s/reports/%d/%d", s.appBaseURL, input.Year, input.Month),
	}

	return s.enqueue(ctx, input.UserID, entity.TemplateMonthlyReport, input.UserEmail, input.UserName, subject, templateData)
}

// QueueGoalAchievedEmail queues the congratulation sent when a saving goal completes.
func (s *Service) QueueGoalAchievedEmail(ctx context.Context, input adapter.QueueGoalAchievedInput) error {
	subject := fmt.Sprintf("Goal achieved: %s", input.GoalName)

	templateData := map[string]any{
		"user_name":     input.UserName,
		"goal_name":     input.GoalName,
		"target_amount": input.TargetAmount.StringFixed(2),
		"goals_url":     s.appBaseURL + "/goals",
	}

	return s.enqueue(ctx, input.UserID, entity.TemplateGoalAchieved, input.UserEmail, input.UserName, subject, templateData)
}

func (s *Service) enqueue(
	ctx context.Context,
	userID uuid.UUID,
	templateType entity.EmailTemplateType,
	email, name, subject string,
	data map[string]any,
) error {
	job := entity.NewEmailJob(templateType, email, name, subject, data)
	job.UserID = &userID
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email for user %s", templateType, userID),
			fmt.Errorf("%w: %w", domainerror.ErrEmailQueueFailed, err),
		)
	}
	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
