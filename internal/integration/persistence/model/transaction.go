package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_date"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null"`
	Date        time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date"`
	Description string          `gorm:"type:varchar(200)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		CategoryID:  m.CategoryID,
		Amount:      m.Amount,
		Type:        entity.TransactionType(m.Type),
		Date:        m.Date.UTC(),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          t.ID,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Date:        t.Date,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TransactionWithCategoryRow is a transaction joined with its category name.
type TransactionWithCategoryRow struct {
	TransactionModel
	CategoryName string `gorm:"column:category_name"`
}

// ToEntity converts the joined row to a domain entity.
func (r *TransactionWithCategoryRow) ToEntity() *entity.TransactionWithCategory {
	return &entity.TransactionWithCategory{
		Transaction:  r.TransactionModel.ToEntity(),
		CategoryName: r.CategoryName,
	}
}
