package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves a user's categories ordered by type and name, optionally filtered by type.
	FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// ExistsByName checks the (user, name, type) uniqueness rule, ignoring excludeID when set.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, categoryType entity.CategoryType, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountTransactions counts the transactions referencing a category.
	CountTransactions(ctx context.Context, id uuid.UUID) (int64, error)
}
