package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/email/templates"
)

// Worker processes the email queue and sends emails.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
	now          func() time.Time
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	defaults := DefaultWorkerConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("email worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// ProcessNow processes one batch of due emails immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}

// Cleanup deletes sent jobs older than the retention window.
func (w *Worker) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	return w.queue.DeleteOldSentJobs(ctx, w.now().Add(-retention))
}

func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.now(), w.batchSize)
	if err != nil {
		slog.Error("failed to get pending email jobs", "error", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	slog.Debug("processing email batch", "count", len(jobs))
	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.processJob(ctx, job)
	}
}

func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("failed to mark job as processing", "error", err)
		return
	}

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("failed to render email template", "error", err)
		// Template errors never succeed on retry
		w.handleFailure(ctx, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("failed to send email", "error", err)

		w.handleFailure(ctx, job, err, errors.Is(err, domainerror.ErrPermanentEmailFailure))
		return
	}

	job.MarkSent(result.ProviderID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("failed to mark job as sent", "error", err)
		return
	}
	logger.Info("email sent", "provider_id", result.ProviderID)
}

func (w *Worker) renderTemplate(job *entity.EmailJob) (html string, text string, err error) {
	var data any
	switch job.TemplateType {
	case entity.TemplateMonthlyReport:
		data = templates.MonthlyReportData{
			UserName:     getString(job.TemplateData, "user_name"),
			Period:       getString(job.TemplateData, "period"),
			TotalIncome:  getString(job.TemplateData, "total_income"),
			TotalExpense: getString(job.TemplateData, "total_expense"),
			NetAmount:    getString(job.TemplateData, "net_amount"),
			Highlights:   getStrings(job.TemplateData, "highlights"),
			ReportURL:    getString(job.TemplateData, "report_url"),
		}
	case entity.TemplateGoalAchieved:
		data = templates.GoalAchievedData{
			UserName:     getString(job.TemplateData, "user_name"),
			GoalName:     getString(job.TemplateData, "goal_name"),
			TargetAmount: getString(job.TemplateData, "target_amount"),
			GoalsURL:     getString(job.TemplateData, "goals_url"),
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}

	return w.renderer.Render(string(job.TemplateType), data)
}

func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("email job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}
	slog.Info("email job scheduled for retry",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"scheduled_at", job.ScheduledAt,
	)
}

func getString(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

// getStrings reads a string list, which comes back as []any after a JSON round trip.
func getStrings(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
