// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
	Type   entity.CategoryType
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'income' or 'expense'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	if err := ensureUnique(ctx, uc.categoryRepo, input.UserID, name, input.Type, nil); err != nil {
		return nil, err
	}

	category := entity.NewCategory(input.UserID, name, input.Type, false)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func ensureUnique(
	ctx context.Context,
	repo adapter.CategoryRepository,
	userID uuid.UUID,
	name string,
	t entity.CategoryType,
	excludeID *uuid.UUID,
) error {
	exists, err := repo.ExistsByName(ctx, userID, name, t, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			fmt.Sprintf("an %s category named %q already exists", t, name),
			domainerror.ErrCategoryNameExists,
		)
	}
	return nil
}

func validateName(name string) error {
	if !valueobject.IsValidCategoryName(name) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryName,
			"category name must be 1-50 characters",
			domainerror.ErrInvalidCategoryName,
		)
	}
	return nil
}

// findOwnedCategory loads a category and reports categories of other users as not found.
func findOwnedCategory(ctx context.Context, repo adapter.CategoryRepository, id, userID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if err != nil || category.UserID != userID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return category, nil
}
