package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name_type"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_user_name_type"`
	Type      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_categories_user_name_type"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Type:      entity.CategoryType(m.Type),
		IsDefault: m.IsDefault,
		CreatedAt: m.CreatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(c *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      string(c.Type),
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
	}
}
