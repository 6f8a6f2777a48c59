package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// maxHighlights caps the insight lines copied into a report e-mail.
const maxHighlights = 3

// BatchResult counts the outcome of generating one month for every user.
type BatchResult struct {
	Users     int
	Generated int
	Empty     int
	Failed    int
}

// GenerateAllUseCase generates one month's report for every user.
type GenerateAllUseCase struct {
	generator *Generator
	users     adapter.UserRepository
	emails    adapter.EmailService
	sendEmail bool
}

// NewGenerateAllUseCase creates a new GenerateAllUseCase instance. When sendEmail is set,
// every generated report queues a monthly_report e-mail.
func NewGenerateAllUseCase(generator *Generator, users adapter.UserRepository, emails adapter.EmailService, sendEmail bool) *GenerateAllUseCase {
	return &GenerateAllUseCase{
		generator: generator,
		users:     users,
		emails:    emails,
		sendEmail: sendEmail,
	}
}

// Execute runs the batch. Users are processed one at a time; a failing user is logged
// and counted without stopping the run.
func (uc *GenerateAllUseCase) Execute(ctx context.Context, year, month int) (*BatchResult, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	users, err := uc.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := &BatchResult{}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Users++

		report, err := uc.generator.Generate(ctx, user.ID, year, month)
		if err != nil {
			result.Failed++
			slog.Error("failed to generate monthly report",
				"user_id", user.ID, "year", year, "month", month, "error", err)
			continue
		}
		if report == nil {
			result.Empty++
			continue
		}
		result.Generated++

		if uc.sendEmail {
			uc.queueEmail(ctx, user, report)
		}
	}

	slog.Info("monthly reports generated",
		"year", year, "month", month,
		"users", result.Users, "generated", result.Generated, "failed", result.Failed)
	return result, nil
}

func (uc *GenerateAllUseCase) queueEmail(ctx context.Context, user *entity.User, report *entity.MonthlyReport) {
	var highlights []string
	if report.Payload != nil {
		for _, in := range report.Payload.Insights {
			if len(highlights) == maxHighlights {
				break
			}
			highlights = append(highlights, in.Message)
		}
	}

	err := uc.emails.QueueMonthlyReportEmail(ctx, adapter.QueueMonthlyReportInput{
		UserID:       user.ID,
		UserEmail:    user.Email,
		UserName:     user.Username,
		Year:         report.Year,
		Month:        report.Month,
		TotalIncome:  report.TotalIncome,
		TotalExpense: report.TotalExpense,
		NetAmount:    report.NetAmount,
		Highlights:   highlights,
	})
	if err != nil {
		slog.Warn("failed to queue monthly report email", "user_id", user.ID, "error", err)
	}
}
