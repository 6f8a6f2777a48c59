package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// TransactionOrder selects the ordering of listed transactions.
type TransactionOrder string

const (
	// OrderDateDesc sorts newest first: date desc, created_at desc.
	OrderDateDesc TransactionOrder = "date_desc"
	// OrderDateAsc sorts oldest first: date asc, created_at asc.
	OrderDateAsc TransactionOrder = "date_asc"
	// OrderAmountDesc sorts largest first with created_at then id as tie-breakers.
	OrderAmountDesc TransactionOrder = "amount_desc"
)

// TransactionQuery describes one read of a user's ledger. Every ledger read is expressed
// through it; zero-valued fields do not filter.
type TransactionQuery struct {
	UserID     uuid.UUID
	Type       *entity.TransactionType
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
	Limit      int
	Offset     int
	Order      TransactionOrder
}

// LedgerQuery starts a query over the closed range r for one user.
func LedgerQuery(userID uuid.UUID, r valueobject.DateRange) TransactionQuery {
	start, end := r.Start, r.End
	return TransactionQuery{UserID: userID, StartDate: &start, EndDate: &end}
}

// OfType returns a copy restricted to one transaction type.
func (q TransactionQuery) OfType(t entity.TransactionType) TransactionQuery {
	q.Type = &t
	return q
}

// InCategory returns a copy restricted to one category.
func (q TransactionQuery) InCategory(id uuid.UUID) TransactionQuery {
	q.CategoryID = &id
	return q
}

// Page returns a copy limited to one page.
func (q TransactionQuery) Page(limit, offset int) TransactionQuery {
	q.Limit, q.Offset = limit, offset
	return q
}

// OrderBy returns a copy with the given ordering.
func (q TransactionQuery) OrderBy(o TransactionOrder) TransactionQuery {
	q.Order = o
	return q
}

// TransactionTotals holds income and expense sums and counts.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	IncomeCount  int64
	ExpenseCount int64
}

// Net is income minus expense.
func (t TransactionTotals) Net() decimal.Decimal {
	return t.IncomeTotal.Sub(t.ExpenseTotal)
}

// CategoryTotal is a per-category sum.
type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Type         entity.TransactionType
	Total        decimal.Decimal
	Count        int64
}

// DayTotal holds income and expense sums for one calendar day.
type DayTotal struct {
	Date    time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthTotal is a sum over one calendar month.
type MonthTotal struct {
	Year  int
	Month int
	Total decimal.Decimal
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction with its category name.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the transactions matching q, annotated with category names.
	List(ctx context.Context, q TransactionQuery) ([]*entity.TransactionWithCategory, error)

	// Count counts the transactions matching q, ignoring its paging.
	Count(ctx context.Context, q TransactionQuery) (int64, error)

	// Totals sums income and expense over the transactions matching q.
	Totals(ctx context.Context, q TransactionQuery) (*TransactionTotals, error)

	// SumByCategory groups the transactions matching q by category.
	SumByCategory(ctx context.Context, q TransactionQuery) ([]CategoryTotal, error)

	// SumByDay groups the transactions matching q by date, ascending. Days without activity are absent.
	SumByDay(ctx context.Context, q TransactionQuery) ([]DayTotal, error)

	// SumByMonth groups the transactions matching q by calendar month, ascending.
	SumByMonth(ctx context.Context, q TransactionQuery) ([]MonthTotal, error)
}
