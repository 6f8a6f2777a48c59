package transaction

import (
	"context"
	"fmt"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
)

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	effects         writeEffects
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.ReadCache,
	goals GoalRecomputer,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		effects:         writeEffects{cache: cache, goals: goals},
	}
}

// Execute deletes the transaction.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, ref TransactionRef) error {
	row, err := findOwnedTransaction(ctx, uc.transactionRepo, ref)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, row.Transaction.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	uc.effects.apply(ctx, ref.UserID)
	return nil
}
