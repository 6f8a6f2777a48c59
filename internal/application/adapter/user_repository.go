// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create stores a new user together with its seed categories in one transaction.
	Create(ctx context.Context, user *entity.User, categories []*entity.Category) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a user by their username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindAll returns every user, oldest first. Used by batch jobs.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// Delete removes a user and everything the user owns.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
