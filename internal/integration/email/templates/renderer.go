// Package templates renders the embedded notification templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data any) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render text template %s: %w", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// MonthlyReportData contains data for the monthly report email template.
type MonthlyReportData struct {
	UserName     string
	Period       string
	TotalIncome  string
	TotalExpense string
	NetAmount    string
	Highlights   []string
	ReportURL    string
}

// GoalAchievedData contains data for the goal achieved email template.
type GoalAchievedData struct {
	UserName     string
	GoalName     string
	TargetAmount string
	GoalsURL     string
}
