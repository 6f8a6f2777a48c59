package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiNarrator writes a short prose summary of a monthly report using Google Gemini.
type GeminiNarrator struct {
	apiKey    string
	modelName string
}

// NewGeminiNarrator creates a new Gemini narrator instance.
func NewGeminiNarrator(apiKey, modelName string) *GeminiNarrator {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiNarrator{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the narrator has an API key.
func (n *GeminiNarrator) IsAvailable() bool {
	return n.apiKey != ""
}

// Narrate asks the model for a three-sentence summary of the payload.
func (n *GeminiNarrator) Narrate(ctx context.Context, payload *entity.ReportPayload) (string, error) {
	if !n.IsAvailable() {
		return "", fmt.Errorf("gemini narrator is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(n.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(n.modelName)
	model.SetTemperature(0.4)
	model.SetMaxOutputTokens(256)

	resp, err := model.GenerateContent(ctx, genai.Text(buildNarrativePrompt(payload)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return narrativeText(resp)
}

func buildNarrativePrompt(p *entity.ReportPayload) string {
	var sb strings.Builder

	sb.WriteString("You write short monthly summaries for a personal finance app. ")
	sb.WriteString("Write at most three plain sentences, no lists, no markdown, no advice beyond the data.\n\n")

	s := p.Summary
	fmt.Fprintf(&sb, "Period: %04d-%02d\n", s.Year, s.Month)
	fmt.Fprintf(&sb, "Income: %s (%d transactions)\n", s.TotalIncome.StringFixed(2), s.IncomeCount)
	fmt.Fprintf(&sb, "Expense: %s (%d transactions)\n", s.TotalExpense.StringFixed(2), s.ExpenseCount)
	fmt.Fprintf(&sb, "Net: %s\n", s.NetAmount.StringFixed(2))

	if len(p.CategoryStats.Expense) > 0 {
		sb.WriteString("Expense by category:\n")
		for _, c := range p.CategoryStats.Expense {
			fmt.Fprintf(&sb, "- %s: %s\n", c.Category, c.Amount.StringFixed(2))
		}
	}

	mom := p.Comparison.MonthOverMonth
	fmt.Fprintf(&sb, "Change vs previous month: income %s%%, expense %s%%\n",
		mom.IncomeChange.StringFixed(2), mom.ExpenseChange.StringFixed(2))

	for _, g := range p.Goals {
		fmt.Fprintf(&sb, "Goal %q (%s): %s%% of %s, %s\n",
			g.Name, g.Type, g.Progress.StringFixed(2), g.TargetAmount.StringFixed(2), g.Status)
	}
	return sb.String()
}

func narrativeText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}
