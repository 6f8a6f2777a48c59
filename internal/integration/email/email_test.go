package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/email/templates"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/sqlitetest"
)

type fixture struct {
	queue   adapter.EmailQueueRepository
	service *Service
	sender  *LogSender
	worker  *Worker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	queue := persistence.NewEmailQueueRepository(sqlitetest.Open(t))
	sender := NewLogSender()
	return &fixture{
		queue:   queue,
		service: NewService(queue, "https://app.example.com"),
		sender:  sender,
		worker:  NewWorker(queue, sender, renderer, WorkerConfig{BatchSize: 5}),
	}
}

func (f *fixture) jobs(t *testing.T, email string) []*entity.EmailJob {
	t.Helper()

	jobs, err := f.queue.GetByRecipient(context.Background(), email)
	if err != nil {
		t.Fatalf("failed to load jobs: %v", err)
	}
	return jobs
}

func TestWorker_SendsMonthlyReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.service.QueueMonthlyReportEmail(ctx, adapter.QueueMonthlyReportInput{
		UserID:       uuid.New(),
		UserEmail:    "alice@example.com",
		UserName:     "alice",
		Year:         2026,
		Month:        2,
		TotalIncome:  decimal.RequireFromString("2000"),
		TotalExpense: decimal.RequireFromString("500"),
		NetAmount:    decimal.RequireFromString("1500"),
		Highlights:   []string{"You saved 75% of your income"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.worker.ProcessNow(ctx)

	sent := f.sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sent))
	}
	if sent[0].Subject != "Your financial report for 2026-02" {
		t.Errorf("unexpected subject %q", sent[0].Subject)
	}
	for _, want := range []string{"1500.00", "You saved 75% of your income", "https://app.example.com/reports/2026/2"} {
		if !strings.Contains(sent[0].Text, want) {
			t.Errorf("text body missing %q:\n%s", want, sent[0].Text)
		}
	}
	if !strings.Contains(sent[0].HTML, "<li>You saved 75% of your income</li>") {
		t.Errorf("html body missing highlight:\n%s", sent[0].HTML)
	}

	jobs := f.jobs(t, "alice@example.com")
	if len(jobs) != 1 || jobs[0].Status != entity.EmailStatusSent || jobs[0].ProviderID != "local-1" {
		t.Errorf("unexpected job state %+v", jobs[0])
	}
}

func TestWorker_GoalAchieved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.service.QueueGoalAchievedEmail(ctx, adapter.QueueGoalAchievedInput{
		UserID:       uuid.New(),
		UserEmail:    "bob@example.com",
		UserName:     "bob",
		GoalName:     "Emergency fund",
		TargetAmount: decimal.RequireFromString("1000"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.worker.ProcessNow(ctx)

	sent := f.sender.Sent()
	if len(sent) != 1 || !strings.Contains(sent[0].HTML, "Emergency fund") || !strings.Contains(sent[0].Text, "1000.00") {
		t.Fatalf("unexpected emails %+v", sent)
	}
}

func TestWorker_Retries(t *testing.T) {
	tests := []struct {
		name       string
		permanent  bool
		wantStatus entity.EmailStatus
	}{
		{name: "temporary failure is retried", permanent: false, wantStatus: entity.EmailStatusPending},
		{name: "permanent failure stops", permanent: true, wantStatus: entity.EmailStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			f.sender.FailWith(errors.New("provider down"), tt.permanent)

			err := f.service.QueueGoalAchievedEmail(ctx, adapter.QueueGoalAchievedInput{
				UserID: uuid.New(), UserEmail: "carol@example.com", GoalName: "Trip", TargetAmount: decimal.NewFromInt(10),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			f.worker.ProcessNow(ctx)

			job := f.jobs(t, "carol@example.com")[0]
			if job.Status != tt.wantStatus || job.Attempts != 1 {
				t.Errorf("expected status %s after one attempt, got %s (%d)", tt.wantStatus, job.Status, job.Attempts)
			}
			if tt.wantStatus == entity.EmailStatusPending && !job.ScheduledAt.After(time.Now().UTC()) {
				t.Error("expected retry to be scheduled in the future")
			}
		})
	}
}

func TestWorker_ExhaustsAttempts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sender.FailWith(errors.New("timeout"), false)

	if err := f.service.QueueGoalAchievedEmail(ctx, adapter.QueueGoalAchievedInput{
		UserID: uuid.New(), UserEmail: "dave@example.com", GoalName: "Car", TargetAmount: decimal.NewFromInt(10),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Jump past every backoff
	clock := time.Now().UTC()
	f.worker.now = func() time.Time { return clock }
	for i := 0; i < 3; i++ {
		f.worker.ProcessNow(ctx)
		clock = clock.Add(time.Hour)
	}

	job := f.jobs(t, "dave@example.com")[0]
	if job.Status != entity.EmailStatusFailed || job.Attempts != 3 {
		t.Errorf("expected failed after 3 attempts, got %s (%d)", job.Status, job.Attempts)
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("422 validation_error: invalid to"), true},
		{errors.New("401 missing api key"), true},
		{errors.New("429 rate limit exceeded"), false},
		{errors.New("502 bad gateway"), false},
	}
	for _, tt := range tests {
		if got := isPermanentError(tt.err); got != tt.want {
			t.Errorf("isPermanentError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

type brokenQueue struct {
	adapter.EmailQueueRepository
}

func (brokenQueue) Create(context.Context, *entity.EmailJob) error {
	return errors.New("db down")
}

func TestSendErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name      string
		permanent bool
		want      error
		other     error
	}{
		{name: "temporary", permanent: false, want: domainerror.ErrTemporaryEmailFailure, other: domainerror.ErrPermanentEmailFailure},
		{name: "permanent", permanent: true, want: domainerror.ErrPermanentEmailFailure, other: domainerror.ErrTemporaryEmailFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := NewLogSender()
			cause := errors.New("provider down")
			sender.FailWith(cause, tt.permanent)

			_, err := sender.Send(context.Background(), adapter.SendEmailInput{To: "alice@example.com"})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if errors.Is(err, tt.other) {
				t.Errorf("did not expect %v in %v", tt.other, err)
			}
			if !errors.Is(err, cause) {
				t.Errorf("expected the cause to stay wrapped, got %v", err)
			}
		})
	}
}

func TestService_QueueFailureWrapsSentinel(t *testing.T) {
	service := NewService(brokenQueue{}, "https://app.example.com")

	err := service.QueueGoalAchievedEmail(context.Background(), adapter.QueueGoalAchievedInput{
		UserID:       uuid.New(),
		UserEmail:    "alice@example.com",
		UserName:     "alice",
		GoalName:     "Trip",
		TargetAmount: decimal.NewFromInt(1000),
	})
	if !errors.Is(err, domainerror.ErrEmailQueueFailed) {
		t.Fatalf("expected ErrEmailQueueFailed, got %v", err)
	}

	var emailErr *domainerror.EmailError
	if !errors.As(err, &emailErr) || emailErr.Code != domainerror.ErrCodeEmailQueueFailed {
		t.Errorf("expected EML-010001 email error, got %v", err)
	}
}
