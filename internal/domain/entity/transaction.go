package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the type is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Matches reports whether a category of the given type may hold this transaction type.
func (t TransactionType) Matches(c CategoryType) bool {
	return string(t) == string(c)
}

// Transaction is a single income or expense entry. Amount is always positive;
// Type carries the direction.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Type        TransactionType
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	categoryID uuid.UUID,
	amount decimal.Decimal,
	transactionType TransactionType,
	date time.Time,
	description string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Type:        transactionType,
		Date:        date,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithCategory represents a transaction with its associated category name.
type TransactionWithCategory struct {
	Transaction  *Transaction
	CategoryName string
}

// TransactionListResult represents one page of a filtered transaction list.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
