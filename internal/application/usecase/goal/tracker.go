// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/aggregation"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// CompletionNotifier is told about goals that completed automatically.
type CompletionNotifier interface {
	GoalCompleted(ctx context.Context, goal *entity.Goal)
}

// Tracker recomputes goal progress from the ledger.
// Recomputations for the same user are serialized.
type Tracker struct {
	goals      adapter.GoalRepository
	users      adapter.UserRepository
	aggregator *aggregation.Aggregator
	notifier   CompletionNotifier
	locks      userLocks
}

// NewTracker creates a new Tracker instance. notifier may be nil.
func NewTracker(
	goals adapter.GoalRepository,
	users adapter.UserRepository,
	aggregator *aggregation.Aggregator,
	notifier CompletionNotifier,
) *Tracker {
	return &Tracker{
		goals:      goals,
		users:      users,
		aggregator: aggregator,
		notifier:   notifier,
		locks:      userLocks{m: map[uuid.UUID]*userLock{}},
	}
}

// Recompute refreshes one goal. It returns nil without an error when the goal does not
// exist, belongs to another user or is no longer active.
func (t *Tracker) Recompute(ctx context.Context, userID, goalID uuid.UUID) (*entity.Goal, error) {
	unlock := t.locks.lock(userID)
	defer unlock()

	goal, err := t.goals.FindByID(ctx, goalID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if goal.UserID != userID {
		return nil, nil
	}
	return t.recompute(ctx, goal)
}

// Save persists a goal whose status was changed in memory. Active goals have their
// progress recomputed first, so the status change and the new amount land in one write.
func (t *Tracker) Save(ctx context.Context, goal *entity.Goal) (*entity.Goal, error) {
	unlock := t.locks.lock(goal.UserID)
	defer unlock()

	if goal.IsActive() {
		return t.recompute(ctx, goal)
	}
	if err := t.goals.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal status: %w", err)
	}
	return goal, nil
}

// RecomputeActive refreshes every active goal of the user and returns them.
func (t *Tracker) RecomputeActive(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	unlock := t.locks.lock(userID)
	defer unlock()

	active := entity.GoalStatusActive
	goals, err := t.goals.FindByUser(ctx, userID, &active)
	if err != nil {
		return nil, fmt.Errorf("failed to list active goals: %w", err)
	}

	for _, g := range goals {
		if _, err := t.recompute(ctx, g); err != nil {
			return nil, err
		}
	}
	return goals, nil
}

// BatchResult counts the outcome of a run over every user.
type BatchResult struct {
	Users  int
	Goals  int
	Failed int
}

// UpdateAll refreshes the active goals of every user. A failing user is logged and
// counted without stopping the run.
func (t *Tracker) UpdateAll(ctx context.Context) (*BatchResult, error) {
	users, err := t.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := &BatchResult{}
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		goals, err := t.RecomputeActive(ctx, u.ID)
		if err != nil {
			result.Failed++
			slog.Error("failed to update goals", "user_id", u.ID, "error", err)
			continue
		}
		result.Users++
		result.Goals += len(goals)
	}
	return result, nil
}

func (t *Tracker) recompute(ctx context.Context, goal *entity.Goal) (*entity.Goal, error) {
	if !goal.IsActive() {
		return nil, nil
	}

	current, err := t.amountFor(ctx, goal)
	if err != nil {
		return nil, err
	}

	goal.ApplyProgress(current)
	goal.UpdatedAt = time.Now().UTC()
	if err := t.goals.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to save goal progress: %w", err)
	}

	if goal.Status == entity.GoalStatusCompleted {
		slog.Info("goal completed", "goal_id", goal.ID, "user_id", goal.UserID)
		if t.notifier != nil {
			t.notifier.GoalCompleted(ctx, goal)
		}
	}
	return goal, nil
}

// amountFor is net savings for saving goals and total expense for expense limits,
// over the goal's tracking range.
func (t *Tracker) amountFor(ctx context.Context, goal *entity.Goal) (decimal.Decimal, error) {
	s, err := t.aggregator.Summary(ctx, goal.UserID, goal.TrackingRange(t.aggregator.Today()))
	if err != nil {
		return decimal.Zero, err
	}
	if goal.Type == entity.GoalTypeExpenseLimit {
		return s.TotalExpense, nil
	}
	return s.NetAmount, nil
}

// userLocks hands out one mutex per user. An entry lives only while someone holds or
// waits for it.
type userLocks struct {
	mu sync.Mutex
	m  map[uuid.UUID]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func (l *userLocks) lock(userID uuid.UUID) func() {
	l.mu.Lock()
	e, ok := l.m[userID]
	if !ok {
		e = &userLock{}
		l.m[userID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.Lock()
	return func() {
		e.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, userID)
		}
		l.mu.Unlock()
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domainerror.ErrGoalNotFound)
}
