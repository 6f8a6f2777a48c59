package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
	Type   *entity.CategoryType
}

// ListCategoriesUseCase lists a user's categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute lists the categories ordered by type and name.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) ([]*entity.Category, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'income' or 'expense'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID, input.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
