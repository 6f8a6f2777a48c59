package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// RenameCategoryInput represents the input for renaming a category.
type RenameCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
	Name       string
}

// RenameCategoryUseCase renames a category. The type never changes.
type RenameCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	cache        adapter.ReadCache
}

// NewRenameCategoryUseCase creates a new RenameCategoryUseCase instance.
func NewRenameCategoryUseCase(categoryRepo adapter.CategoryRepository, cache adapter.ReadCache) *RenameCategoryUseCase {
	return &RenameCategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute performs the rename.
func (uc *RenameCategoryUseCase) Execute(ctx context.Context, input RenameCategoryInput) (*entity.Category, error) {
	category, err := findOwnedCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if name == category.Name {
		return category, nil
	}
	if err := ensureUnique(ctx, uc.categoryRepo, input.UserID, name, category.Type, &category.ID); err != nil {
		return nil, err
	}

	category.Name = name
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	// Cached statistics group by category name
	if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return category, nil
}
