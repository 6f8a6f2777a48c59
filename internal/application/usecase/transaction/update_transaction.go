package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// UpdateTransactionInput represents the input for a partial transaction update.
// The type of a transaction never changes.
type UpdateTransactionInput struct {
	TransactionRef
	CategoryID  *uuid.UUID
	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	effects         writeEffects
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ReadCache,
	goals GoalRecomputer,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		effects:         writeEffects{cache: cache, goals: goals},
	}
}

// Execute performs the update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*entity.TransactionWithCategory, error) {
	// Find the existing transaction
	row, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionRef)
	if err != nil {
		return nil, err
	}
	transaction := row.Transaction

	if input.CategoryID != nil && *input.CategoryID != transaction.CategoryID {
		category, err := findCategoryFor(ctx, uc.categoryRepo, *input.CategoryID, input.UserID, transaction.Type)
		if err != nil {
			return nil, err
		}
		transaction.CategoryID = category.ID
		row.CategoryName = category.Name
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		transaction.Amount = *input.Amount
	}
	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
		transaction.Date = valueobject.DateOf(*input.Date)
	}
	if input.Description != nil {
		description, err := cleanDescription(*input.Description)
		if err != nil {
			return nil, err
		}
		transaction.Description = description
	}

	transaction.UpdatedAt = time.Now().UTC()
	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	uc.effects.apply(ctx, input.UserID)
	return row, nil
}
