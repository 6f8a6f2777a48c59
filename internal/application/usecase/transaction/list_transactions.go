package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/aggregation"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// MaxPageSize caps the limit of a transaction page.
const MaxPageSize = 100

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID     uuid.UUID
	Type       *entity.TransactionType
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
	Page       int
	Limit      int
}

// ListTransactionsUseCase lists a user's transactions, newest first.
type ListTransactionsUseCase struct {
	aggregator *aggregation.Aggregator
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(aggregator *aggregation.Aggregator) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{aggregator: aggregator}
}

// Execute returns one page of matching transactions with the total count.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*entity.TransactionListResult, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"start_date must not be after end_date",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	q := adapter.TransactionQuery{
		UserID:     input.UserID,
		Type:       input.Type,
		CategoryID: input.CategoryID,
		StartDate:  dateOnly(input.StartDate),
		EndDate:    dateOnly(input.EndDate),
		Search:     valueobject.SanitizeText(input.Search, 100),
		Order:      adapter.OrderDateDesc,
	}

	limit := input.Limit
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return uc.aggregator.Transactions(ctx, q, input.Page, limit)
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := valueobject.DateOf(*t)
	return &d
}
