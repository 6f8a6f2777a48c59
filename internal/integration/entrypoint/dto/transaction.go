package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount is a decimal string such as "12.50".
type CreateTransactionRequest struct {
	CategoryID  string `json:"category_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// Absent fields are left unchanged.
type UpdateTransactionRequest struct {
	CategoryID  *string `json:"category_id,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// ToTransactionResponse converts a transaction and its category name to a response DTO.
func ToTransactionResponse(t *entity.TransactionWithCategory) TransactionResponse {
	tx := t.Transaction
	return TransactionResponse{
		ID:           tx.ID.String(),
		CategoryID:   tx.CategoryID.String(),
		CategoryName: t.CategoryName,
		Type:         string(tx.Type),
		Amount:       tx.Amount,
		Date:         valueobject.FormatDate(tx.Date),
		Description:  tx.Description,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(items []*entity.TransactionWithCategory) []TransactionResponse {
	out := make([]TransactionResponse, len(items))
	for i, t := range items {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

// ToTransactionListResponse converts a paginated result.
func ToTransactionListResponse(result *entity.TransactionListResult) TransactionListResponse {
	return TransactionListResponse{
		Transactions: ToTransactionResponses(result.Transactions),
		Pagination: TransactionPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
