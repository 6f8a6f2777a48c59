package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUser retrieves a user's goals, newest first, optionally filtered by status.
	FindByUser(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error)

	// FindOverlapping retrieves goals whose period intersects r. Open-ended goals overlap any
	// range ending on or after their start date.
	FindOverlapping(ctx context.Context, userID uuid.UUID, r valueobject.DateRange) ([]*entity.Goal, error)

	// Update persists a goal inside one database transaction.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
