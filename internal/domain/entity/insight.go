package entity

// InsightKind classifies a generated insight or suggestion.
type InsightKind string

const (
	InsightSuccess InsightKind = "success"
	InsightWarning InsightKind = "warning"
	InsightInfo    InsightKind = "info"
	InsightAction  InsightKind = "action"
)

// Insight is a short human-readable observation derived from aggregates.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Title   string      `json:"title,omitempty"`
	Message string      `json:"message"`
}
