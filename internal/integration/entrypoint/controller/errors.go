// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/dto"
)

// handleError writes the response for a use case error. Domain errors keep their code;
// anything else is logged and reported as an internal error.
func handleError(ctx *gin.Context, err error) {
	var (
		authErr *domainerror.AuthError
		catErr  *domainerror.CategoryError
		txnErr  *domainerror.TransactionError
		goalErr *domainerror.GoalError
		rptErr  *domainerror.ReportError
	)

	switch {
	case errors.As(err, &authErr):
		writeError(ctx, statusForAuthError(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.As(err, &catErr):
		writeError(ctx, statusForCategoryError(catErr.Code), catErr.Message, string(catErr.Code))
	case errors.As(err, &txnErr):
		writeError(ctx, statusForTransactionError(txnErr.Code), txnErr.Message, string(txnErr.Code))
	case errors.As(err, &goalErr):
		writeError(ctx, statusForGoalError(goalErr.Code), goalErr.Message, string(goalErr.Code))
	case errors.As(err, &rptErr):
		status := statusForReportError(rptErr.Code)
		if status == http.StatusInternalServerError {
			logInternal(ctx, err)
		}
		writeError(ctx, status, rptErr.Message, string(rptErr.Code))
	default:
		logInternal(ctx, err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func logInternal(ctx *gin.Context, err error) {
	slog.Error("request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
}

func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists,
		domainerror.ErrCodeUsernameExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidUsername,
		domainerror.ErrCodeInvalidConfirmation:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func statusForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidCategoryName,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeMissingCategoryFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeDefaultCategoryDelete,
		domainerror.ErrCodeCategoryInUse:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeCategoryTypeMismatch:
		return http.StatusBadRequest
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func statusForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidGoalName,
		domainerror.ErrCodeInvalidGoalType,
		domainerror.ErrCodeInvalidGoalPeriod,
		domainerror.ErrCodeInvalidGoalDates,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidGoalTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func statusForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidReportPeriod,
		domainerror.ErrCodeUnsupportedExportFormat:
		return http.StatusBadRequest
	case domainerror.ErrCodeReportNotFound,
		domainerror.ErrCodeNoData:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
