package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/category"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	renameUseCase *category.RenameCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	renameUseCase *category.RenameCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		renameUseCase: renameUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests. An optional ?type= filters by income or expense.
func (c *CategoryController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := category.ListCategoriesInput{UserID: userID}
	if t := ctx.Query("type"); t != "" {
		catType := entity.CategoryType(t)
		input.Type = &catType
	}

	categories, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	cat, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		UserID: userID,
		Name:   req.Name,
		Type:   entity.CategoryType(req.Type),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

// Rename handles PATCH /categories/:id requests.
func (c *CategoryController) Rename(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	categoryID, ok := pathUUID(ctx, "id", "category")
	if !ok {
		return
	}

	var req dto.RenameCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	cat, err := c.renameUseCase.Execute(ctx.Request.Context(), category.RenameCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
		Name:       req.Name,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	categoryID, ok := pathUUID(ctx, "id", "category")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: categoryID,
		UserID:     userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
