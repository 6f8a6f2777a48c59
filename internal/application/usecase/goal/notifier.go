package goal

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// GoalCompletedEvent is published when a goal completes automatically.
type GoalCompletedEvent struct {
	GoalID       uuid.UUID       `json:"goal_id"`
	UserID       uuid.UUID       `json:"user_id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

// Notifier queues the goal achieved e-mail and publishes a goal.completed event.
// Failures are logged; they never undo the completion.
type Notifier struct {
	users  adapter.UserRepository
	emails adapter.EmailService
	events adapter.EventPublisher
}

// NewNotifier creates a new Notifier instance.
func NewNotifier(users adapter.UserRepository, emails adapter.EmailService, events adapter.EventPublisher) *Notifier {
	return &Notifier{
		users:  users,
		emails: emails,
		events: events,
	}
}

// GoalCompleted implements CompletionNotifier.
func (n *Notifier) GoalCompleted(ctx context.Context, goal *entity.Goal) {
	event := GoalCompletedEvent{
		GoalID:       goal.ID,
		UserID:       goal.UserID,
		Name:         goal.Name,
		TargetAmount: goal.TargetAmount,
	}
	if err := n.events.Publish(ctx, adapter.EventGoalCompleted, event); err != nil {
		slog.Warn("failed to publish goal completion", "goal_id", goal.ID, "error", err)
	}

	user, err := n.users.FindByID(ctx, goal.UserID)
	if err != nil {
		slog.Warn("failed to load goal owner", "goal_id", goal.ID, "error", err)
		return
	}

	err = n.emails.QueueGoalAchievedEmail(ctx, adapter.QueueGoalAchievedInput{
		UserID:       user.ID,
		UserEmail:    user.Email,
		UserName:     user.Username,
		GoalName:     goal.Name,
		TargetAmount: goal.TargetAmount,
	})
	if err != nil {
		slog.Warn("failed to queue goal achieved email", "goal_id", goal.ID, "error", err)
	}
}
