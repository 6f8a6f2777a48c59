package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/goal"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// CreateGoalRequest represents the request body for goal creation.
// EndDate is read only for custom periods.
type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required"`
	TargetAmount string  `json:"target_amount" binding:"required"`
	GoalType     string  `json:"goal_type" binding:"required"`
	Period       string  `json:"period"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name         *string `json:"name,omitempty"`
	TargetAmount *string `json:"target_amount,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	GoalType        string          `json:"goal_type"`
	Period          string          `json:"period"`
	Status          string          `json:"status"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Progress        decimal.Decimal `json:"progress"`
	Track           string          `json:"track,omitempty"`
	IsOverdue       bool            `json:"is_overdue"`
	StartDate       string          `json:"start_date"`
	EndDate         *string         `json:"end_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// GoalSummaryResponse counts active goals by track.
type GoalSummaryResponse struct {
	Total   int            `json:"total"`
	OnTrack int            `json:"on_track"`
	Behind  int            `json:"behind"`
	Overdue int            `json:"overdue"`
	Goals   []GoalResponse `json:"goals"`
}

// GoalStatisticsResponse represents the statistics of one goal.
type GoalStatisticsResponse struct {
	Progress                decimal.Decimal       `json:"progress"`
	CurrentAmount           decimal.Decimal       `json:"current_amount"`
	TargetAmount            decimal.Decimal       `json:"target_amount"`
	RemainingAmount         decimal.Decimal       `json:"remaining_amount"`
	DaysPassed              int                   `json:"days_passed"`
	DaysRemaining           *int                  `json:"days_remaining"`
	TotalDays               *int                  `json:"total_days"`
	DailyAverage            decimal.Decimal       `json:"daily_average"`
	EstimatedCompletionDate *string               `json:"estimated_completion_date"`
	IsOverdue               bool                  `json:"is_overdue"`
	RecentTransactions      []TransactionResponse `json:"recent_transactions"`
}

// GoalHistoryPointResponse is one day of cumulative goal progress.
type GoalHistoryPointResponse struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Progress decimal.Decimal `json:"progress"`
}

// GoalSuggestionResponse is one suggestion for a goal.
type GoalSuggestionResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ToGoalResponse converts a goal view to a GoalResponse DTO.
func ToGoalResponse(v goal.GoalView) GoalResponse {
	g := v.Goal
	response := GoalResponse{
		ID:              g.ID.String(),
		Name:            g.Name,
		GoalType:        string(g.Type),
		Period:          string(g.Period),
		Status:          string(g.Status),
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		RemainingAmount: v.Remaining,
		Progress:        v.Progress,
		Track:           string(v.Track),
		IsOverdue:       v.IsOverdue,
		StartDate:       valueobject.FormatDate(g.StartDate),
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
	if g.EndDate != nil {
		end := valueobject.FormatDate(*g.EndDate)
		response.EndDate = &end
	}
	return response
}

// ToGoalListResponse converts goal views to a GoalListResponse.
func ToGoalListResponse(views []goal.GoalView) GoalListResponse {
	goals := make([]GoalResponse, len(views))
	for i, v := range views {
		goals[i] = ToGoalResponse(v)
	}
	return GoalListResponse{Goals: goals}
}

// ToGoalSummaryResponse converts an active summary.
func ToGoalSummaryResponse(s *goal.ActiveSummary) GoalSummaryResponse {
	return GoalSummaryResponse{
		Total:   s.Counts.Total,
		OnTrack: s.Counts.OnTrack,
		Behind:  s.Counts.Behind,
		Overdue: s.Counts.Overdue,
		Goals:   ToGoalListResponse(s.Goals).Goals,
	}
}

// ToGoalStatisticsResponse converts goal statistics.
func ToGoalStatisticsResponse(s *goal.Statistics) GoalStatisticsResponse {
	response := GoalStatisticsResponse{
		Progress:           s.Progress,
		CurrentAmount:      s.CurrentAmount,
		TargetAmount:       s.TargetAmount,
		RemainingAmount:    s.RemainingAmount,
		DaysPassed:         s.DaysPassed,
		DaysRemaining:      s.DaysRemaining,
		TotalDays:          s.TotalDays,
		DailyAverage:       s.DailyAverage,
		IsOverdue:          s.IsOverdue,
		RecentTransactions: ToTransactionResponses(s.RecentTransactions),
	}
	if s.EstimatedCompletionDate != nil {
		d := valueobject.FormatDate(*s.EstimatedCompletionDate)
		response.EstimatedCompletionDate = &d
	}
	return response
}

// ToGoalHistoryResponse converts history points.
func ToGoalHistoryResponse(points []goal.HistoryPoint) []GoalHistoryPointResponse {
	out := make([]GoalHistoryPointResponse, len(points))
	for i, p := range points {
		out[i] = GoalHistoryPointResponse{
			Date:     valueobject.FormatDate(p.Date),
			Amount:   p.Amount,
			Progress: p.Progress,
		}
	}
	return out
}

// ToGoalSuggestionsResponse converts goal suggestions.
func ToGoalSuggestionsResponse(suggestions []goal.Suggestion) []GoalSuggestionResponse {
	out := make([]GoalSuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		out[i] = GoalSuggestionResponse{Type: s.Type, Message: s.Message}
	}
	return out
}
