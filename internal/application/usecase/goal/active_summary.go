package goal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/insight"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// ActiveSummary tallies a user's active goals by track.
type ActiveSummary struct {
	Counts insight.GoalCounts
	Goals  []GoalView
}

// Classify builds the summary of the goals that are still active.
func Classify(goals []*entity.Goal, today time.Time) *ActiveSummary {
	summary := &ActiveSummary{Goals: []GoalView{}}
	for _, g := range goals {
		if !g.IsActive() {
			continue
		}
		v := ViewOf(g, today)
		summary.Goals = append(summary.Goals, v)
		summary.Counts.Total++
		switch v.Track {
		case entity.GoalTrackOverdue:
			summary.Counts.Overdue++
		case entity.GoalTrackOnTrack:
			summary.Counts.OnTrack++
		default:
			summary.Counts.Behind++
		}
	}
	return summary
}

// ActiveSummaryUseCase recomputes and classifies every active goal of a user.
type ActiveSummaryUseCase struct {
	tracker *Tracker
	clock   adapter.Clock
}

// NewActiveSummaryUseCase creates a new ActiveSummaryUseCase instance.
func NewActiveSummaryUseCase(tracker *Tracker, clock adapter.Clock) *ActiveSummaryUseCase {
	return &ActiveSummaryUseCase{
		tracker: tracker,
		clock:   clock,
	}
}

// Execute builds the summary. Goals completed by the recompute are not counted.
func (uc *ActiveSummaryUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ActiveSummary, error) {
	goals, err := uc.tracker.RecomputeActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Classify(goals, uc.clock.Now()), nil
}
