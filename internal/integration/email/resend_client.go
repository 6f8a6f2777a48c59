package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SetBaseURL points the client at another API host, such as a local relay.
func (c *ResendClient) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid resend base url: %w", err)
	}
	c.client.BaseURL = u
	return nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	to := input.To
	if input.Name != "" {
		to = fmt.Sprintf("%s <%s>", input.Name, input.To)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{to},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"resend rejected the email",
				fmt.Errorf("%w: %w", domainerror.ErrPermanentEmailFailure, err),
			)
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"resend send failed",
			fmt.Errorf("%w: %w", domainerror.ErrTemporaryEmailFailure, err),
		)
	}

	return &adapter.SendEmailResult{ProviderID: resp.Id}, nil
}

// permanentPatterns mark provider errors that will fail again on retry:
// 401, 403 and 422 responses. Rate limits and 5xx responses are retried.
var permanentPatterns = []string{
	"401",
	"403",
	"422",
	"unauthorized",
	"forbidden",
	"validation",
	"invalid",
	"bad request",
}

func isPermanentError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range permanentPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// LogSender records e-mails in memory instead of sending them. It is used when no Resend
// key is configured and by tests.
type LogSender struct {
	mu        sync.Mutex
	sent      []adapter.SendEmailInput
	failWith  error
	permanent bool
}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send implements adapter.EmailSender.
func (s *LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		code, sentinel := domainerror.ErrCodeTemporaryEmailFailure, domainerror.ErrTemporaryEmailFailure
		if s.permanent {
			code, sentinel = domainerror.ErrCodePermanentEmailFailure, domainerror.ErrPermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "send failed", fmt.Errorf("%w: %w", sentinel, s.failWith))
	}

	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ProviderID: fmt.Sprintf("local-%d", len(s.sent))}, nil
}

// Sent returns a copy of the recorded e-mails.
func (s *LogSender) Sent() []adapter.SendEmailInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), s.sent...)
}

// FailWith makes subsequent sends fail; nil restores success.
func (s *LogSender) FailWith(err error, permanent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
	s.permanent = permanent
}

// Reset forgets recorded e-mails and failures.
func (s *LogSender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
	s.failWith = nil
	s.permanent = false
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*LogSender)(nil)
)
