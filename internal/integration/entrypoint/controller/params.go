package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/dto"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/middleware"
)

// requireUser returns the authenticated user ID, writing a 401 when it is missing.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		writeError(ctx, http.StatusUnauthorized, "User not authenticated", string(domainerror.ErrCodeMissingToken))
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path parameter, writing a 400 when it is malformed.
func pathUUID(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid "+label+" ID format", "")
		return uuid.Nil, false
	}
	return id, true
}

// pathInt parses an integer path parameter.
func pathInt(ctx *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid "+name, string(domainerror.ErrCodeInvalidReportPeriod))
		return 0, false
	}
	return n, true
}

// queryInt parses an optional integer query parameter; def is returned when it is absent.
func queryInt(ctx *gin.Context, name string, def int) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid query parameter "+name, "")
		return 0, false
	}
	return n, true
}

// parseAmount parses a money string. Scale and range are checked by the use cases.
func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}

// parseOptionalDate parses a YYYY-MM-DD string; nil is returned for an empty string.
func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := valueobject.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message, Code: code})
}
