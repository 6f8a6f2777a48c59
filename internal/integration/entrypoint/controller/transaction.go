package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/transaction"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests.
// Filters: type, category_id, start_date, end_date, search. Paging: page, limit.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}
	if t := ctx.Query("type"); t != "" {
		txType := entity.TransactionType(t)
		input.Type = &txType
	}
	if raw := ctx.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(ctx, "Invalid category ID format", string(domainerror.ErrCodeTxnCategoryNotFound))
			return
		}
		input.CategoryID = &id
	}

	var err error
	if input.StartDate, err = parseOptionalDate(ctx.Query("start_date")); err != nil {
		badRequest(ctx, "Invalid start_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}
	if input.EndDate, err = parseOptionalDate(ctx.Query("end_date")); err != nil {
		badRequest(ctx, "Invalid end_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}

	if input.Page, ok = queryInt(ctx, "page", 1); !ok {
		return
	}
	if input.Limit, ok = queryInt(ctx, "limit", 0); !ok {
		return
	}

	result, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(result))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	ref, ok := transactionRef(ctx)
	if !ok {
		return
	}

	tx, err := c.getUseCase.Execute(ctx.Request.Context(), ref)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		badRequest(ctx, "Invalid category ID format", string(domainerror.ErrCodeTxnCategoryNotFound))
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		badRequest(ctx, "Invalid amount", string(domainerror.ErrCodeInvalidTransactionAmount))
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil || date == nil {
		badRequest(ctx, "Invalid date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}

	tx, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        entity.TransactionType(req.Type),
		Amount:      amount,
		Date:        *date,
		Description: req.Description,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	ref, ok := transactionRef(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionRef: ref,
		Description:    req.Description,
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			badRequest(ctx, "Invalid category ID format", string(domainerror.ErrCodeTxnCategoryNotFound))
			return
		}
		input.CategoryID = &id
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			badRequest(ctx, "Invalid amount", string(domainerror.ErrCodeInvalidTransactionAmount))
			return
		}
		input.Amount = &amount
	}
	if req.Date != nil {
		date, err := parseOptionalDate(*req.Date)
		if err != nil || date == nil {
			badRequest(ctx, "Invalid date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
			return
		}
		input.Date = date
	}

	tx, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	ref, ok := transactionRef(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), ref); err != nil {
		handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func transactionRef(ctx *gin.Context) (transaction.TransactionRef, bool) {
	userID, ok := requireUser(ctx)
	if !ok {
		return transaction.TransactionRef{}, false
	}
	id, ok := pathUUID(ctx, "id", "transaction")
	if !ok {
		return transaction.TransactionRef{}, false
	}
	return transaction.TransactionRef{TransactionID: id, UserID: userID}, true
}
