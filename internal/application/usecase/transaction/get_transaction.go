package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
)

// TransactionRef identifies one transaction of a user.
type TransactionRef struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// GetTransactionUseCase loads a single transaction.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute returns the transaction with its category name.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, ref TransactionRef) (*entity.TransactionWithCategory, error) {
	return findOwnedTransaction(ctx, uc.transactionRepo, ref)
}

// findOwnedTransaction reports transactions of other users as not found.
func findOwnedTransaction(ctx context.Context, repo adapter.TransactionRepository, ref TransactionRef) (*entity.TransactionWithCategory, error) {
	row, err := repo.FindByID(ctx, ref.TransactionID)
	if err != nil && !errors.Is(err, domainerror.ErrTransactionNotFound) {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if err != nil || row.Transaction.UserID != ref.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return row, nil
}
