package dto

import (
	"time"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// RenameCategoryRequest represents the request body for renaming a category.
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Type:      string(cat.Type),
		IsDefault: cat.IsDefault,
		CreatedAt: cat.CreatedAt,
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = ToCategoryResponse(c)
	}
	return CategoryListResponse{Categories: out}
}
