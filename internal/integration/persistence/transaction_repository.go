package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// applyTransactionQuery is the only place ledger filters, ordering and paging turn into SQL.
// Columns are qualified so the result can be joined with categories.
func applyTransactionQuery(db *gorm.DB, q adapter.TransactionQuery) *gorm.DB {
	db = db.Where("transactions.user_id = ?", q.UserID)

	if q.Type != nil {
		db = db.Where("transactions.type = ?", string(*q.Type))
	}
	if q.CategoryID != nil {
		db = db.Where("transactions.category_id = ?", *q.CategoryID)
	}
	if q.StartDate != nil {
		db = db.Where("transactions.date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		db = db.Where("transactions.date <= ?", *q.EndDate)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		db = db.Where("LOWER(transactions.description) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	switch q.Order {
	case adapter.OrderDateDesc:
		db = db.Order("transactions.date DESC").Order("transactions.created_at DESC")
	case adapter.OrderDateAsc:
		db = db.Order("transactions.date ASC").Order("transactions.created_at ASC")
	case adapter.OrderAmountDesc:
		db = db.Order("transactions.amount DESC").
			Order("transactions.created_at ASC").
			Order("transactions.id ASC")
	}

	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	return db
}

// filtersOnly drops ordering and paging, for aggregate reads.
func filtersOnly(q adapter.TransactionQuery) adapter.TransactionQuery {
	q.Order = ""
	q.Limit, q.Offset = 0, 0
	return q
}

func (r *transactionRepository) ledger(ctx context.Context, q adapter.TransactionQuery) *gorm.DB {
	return applyTransactionQuery(r.db.WithContext(ctx).Table("transactions"), q)
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if err := r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error; err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}
	return nil
}

// FindByID retrieves a transaction with its category name.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	var row model.TransactionWithCategoryRow
	result := r.db.WithContext(ctx).
		Table("transactions").
		Select("transactions.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.id = ?", id).
		Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return row.ToEntity(), nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(model.TransactionFromEntity(transaction)).Error
}

// Delete removes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// List returns the transactions matching q, newest first unless q orders otherwise.
func (r *transactionRepository) List(ctx context.Context, q adapter.TransactionQuery) ([]*entity.TransactionWithCategory, error) {
	if q.Order == "" {
		q.Order = adapter.OrderDateDesc
	}

	var rows []model.TransactionWithCategoryRow
	result := r.ledger(ctx, q).
		Select("transactions.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("listing transactions: %w", result.Error)
	}

	transactions := make([]*entity.TransactionWithCategory, len(rows))
	for i := range rows {
		transactions[i] = rows[i].ToEntity()
	}
	return transactions, nil
}

// Count counts the transactions matching q, ignoring its paging.
func (r *transactionRepository) Count(ctx context.Context, q adapter.TransactionQuery) (int64, error) {
	var total int64
	if err := r.ledger(ctx, filtersOnly(q)).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return total, nil
}

// Totals sums income and expense over the transactions matching q.
func (r *transactionRepository) Totals(ctx context.Context, q adapter.TransactionQuery) (*adapter.TransactionTotals, error) {
	var rows []struct {
		Type  string          `gorm:"column:type"`
		Total decimal.Decimal `gorm:"column:total"`
		Count int64           `gorm:"column:count"`
	}

	err := r.ledger(ctx, filtersOnly(q)).
		Select("transactions.type AS type, COALESCE(SUM(transactions.amount), 0) AS total, COUNT(*) AS count").
		Group("transactions.type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summing transactions: %w", err)
	}

	totals := &adapter.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	for _, row := range rows {
		switch entity.TransactionType(row.Type) {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = row.Total.Round(2)
			totals.IncomeCount = row.Count
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = row.Total.Round(2)
			totals.ExpenseCount = row.Count
		}
	}
	return totals, nil
}

// SumByCategory groups the transactions matching q by category.
func (r *transactionRepository) SumByCategory(ctx context.Context, q adapter.TransactionQuery) ([]adapter.CategoryTotal, error) {
	var rows []struct {
		CategoryID   uuid.UUID       `gorm:"column:category_id"`
		CategoryName string          `gorm:"column:category_name"`
		Type         string          `gorm:"column:type"`
		Total        decimal.Decimal `gorm:"column:total"`
		Count        int64           `gorm:"column:count"`
	}

	err := r.ledger(ctx, filtersOnly(q)).
		Select(`transactions.category_id AS category_id,
			categories.name AS category_name,
			transactions.type AS type,
			COALESCE(SUM(transactions.amount), 0) AS total,
			COUNT(*) AS count`).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Group("transactions.category_id, categories.name, transactions.type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("grouping transactions by category: %w", err)
	}

	totals := make([]adapter.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = adapter.CategoryTotal{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Type:         entity.TransactionType(row.Type),
			Total:        row.Total.Round(2),
			Count:        row.Count,
		}
	}
	return totals, nil
}

// SumByDay groups the transactions matching q by date, ascending.
func (r *transactionRepository) SumByDay(ctx context.Context, q adapter.TransactionQuery) ([]adapter.DayTotal, error) {
	var rows []struct {
		Day     string          `gorm:"column:day"`
		Income  decimal.Decimal `gorm:"column:income"`
		Expense decimal.Decimal `gorm:"column:expense"`
	}

	err := r.ledger(ctx, filtersOnly(q)).
		Select(`transactions.date AS day,
			COALESCE(SUM(CASE WHEN transactions.type = ? THEN transactions.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN transactions.type = ? THEN transactions.amount ELSE 0 END), 0) AS expense`,
			string(entity.TransactionTypeIncome), string(entity.TransactionTypeExpense)).
		Group("transactions.date").
		Order("transactions.date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("grouping transactions by day: %w", err)
	}

	totals := make([]adapter.DayTotal, len(rows))
	for i, row := range rows {
		day, err := parseDay(row.Day)
		if err != nil {
			return nil, fmt.Errorf("grouping transactions by day: %w", err)
		}
		totals[i] = adapter.DayTotal{
			Date:    day,
			Income:  row.Income.Round(2),
			Expense: row.Expense.Round(2),
		}
	}
	return totals, nil
}

// SumByMonth groups the transactions matching q by calendar month, ascending.
func (r *transactionRepository) SumByMonth(ctx context.Context, q adapter.TransactionQuery) ([]adapter.MonthTotal, error) {
	yearExpr, monthExpr := monthParts(r.db)

	var rows []struct {
		Year  int             `gorm:"column:year"`
		Month int             `gorm:"column:month"`
		Total decimal.Decimal `gorm:"column:total"`
	}

	err := r.ledger(ctx, filtersOnly(q)).
		Select(fmt.Sprintf("%s AS year, %s AS month, COALESCE(SUM(transactions.amount), 0) AS total", yearExpr, monthExpr)).
		Group(yearExpr + ", " + monthExpr).
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("grouping transactions by month: %w", err)
	}

	totals := make([]adapter.MonthTotal, len(rows))
	for i, row := range rows {
		totals[i] = adapter.MonthTotal{Year: row.Year, Month: row.Month, Total: row.Total.Round(2)}
	}
	return totals, nil
}

// parseDay reads a grouped DATE column. Drivers hand it back either as
// YYYY-MM-DD text or as a time rendered in RFC 3339; both start with the date.
func parseDay(s string) (time.Time, error) {
	if len(s) < len(valueobject.DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date value %q", s)
	}
	return valueobject.ParseDate(s[:len(valueobject.DateLayout)])
}

// monthParts returns the year and month extraction expressions for the connected dialect.
func monthParts(db *gorm.DB) (string, string) {
	if db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%Y', transactions.date) AS INTEGER)", "CAST(strftime('%m', transactions.date) AS INTEGER)"
	}
	return "CAST(EXTRACT(YEAR FROM transactions.date) AS INTEGER)", "CAST(EXTRACT(MONTH FROM transactions.date) AS INTEGER)"
}
