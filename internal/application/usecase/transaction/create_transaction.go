// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 200

// GoalRecomputer refreshes a user's active goals after the ledger changed.
type GoalRecomputer interface {
	RecomputeActive(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)
}

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	effects         writeEffects
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ReadCache,
	goals GoalRecomputer,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		effects:         writeEffects{cache: cache, goals: goals},
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*entity.TransactionWithCategory, error) {
	if input.CategoryID == uuid.Nil || input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"category_id, type, amount and date are required",
			nil,
		)
	}
	if !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}
	description, err := cleanDescription(input.Description)
	if err != nil {
		return nil, err
	}

	category, err := findCategoryFor(ctx, uc.categoryRepo, input.CategoryID, input.UserID, input.Type)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		category.ID,
		input.Amount,
		input.Type,
		valueobject.DateOf(input.Date),
		description,
	)
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	uc.effects.apply(ctx, input.UserID)
	return &entity.TransactionWithCategory{Transaction: transaction, CategoryName: category.Name}, nil
}

// writeEffects runs after every committed ledger write. Failures are logged because the
// write itself already succeeded.
type writeEffects struct {
	cache adapter.ReadCache
	goals GoalRecomputer
}

func (e writeEffects) apply(ctx context.Context, userID uuid.UUID) {
	if err := e.cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("failed to invalidate read cache", "user_id", userID, "error", err)
	}
	if _, err := e.goals.RecomputeActive(ctx, userID); err != nil {
		slog.Error("failed to recompute goals", "user_id", userID, "error", err)
	}
}

// findCategoryFor loads a category the user owns and checks it accepts the transaction type.
func findCategoryFor(
	ctx context.Context,
	repo adapter.CategoryRepository,
	categoryID, userID uuid.UUID,
	transactionType entity.TransactionType,
) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if err != nil || category.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}

	if !transactionType.Matches(category.Type) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTypeMismatch,
			fmt.Sprintf("category %q is an %s category", category.Name, category.Type),
			domainerror.ErrCategoryTypeMismatch,
		)
	}
	return category, nil
}

func validateAmount(amount decimal.Decimal) error {
	if err := valueobject.ValidateAmount(amount); err != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			err.Error(),
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

// validateDate accepts future dates for planned entries.
func validateDate(date time.Time) error {
	if err := valueobject.ValidateDate(date, time.Time{}, true); err != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			err.Error(),
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

func cleanDescription(s string) (string, error) {
	s = valueobject.SanitizeText(s, 0)
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return s, nil
}
