package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute deletes a category that is neither a default nor referenced by transactions.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := findOwnedCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return err
	}

	if category.IsDefault {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeDefaultCategoryDelete,
			"default categories cannot be deleted",
			domainerror.ErrDefaultCategoryDelete,
		)
	}

	count, err := uc.categoryRepo.CountTransactions(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("failed to count category transactions: %w", err)
	}
	if count > 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("category is used by %d transactions", count),
			domainerror.ErrCategoryInUse,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
