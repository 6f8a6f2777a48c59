package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/auth"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/dto"
)

// UserController handles the current user's profile endpoints.
type UserController struct {
	profileUseCase       *auth.GetProfileUseCase
	deleteAccountUseCase *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	profileUseCase *auth.GetProfileUseCase,
	deleteAccountUseCase *auth.DeleteAccountUseCase,
) *UserController {
	return &UserController{
		profileUseCase:       profileUseCase,
		deleteAccountUseCase: deleteAccountUseCase,
	}
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	user, err := c.profileUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteAccount handles DELETE /users/me requests. The password confirms the deletion.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingFields))
		return
	}

	err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:   userID,
		Password: req.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
