package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(model.CategoryFromEntity(category)).Error
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByUser retrieves a user's categories ordered by type then name.
func (r *categoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}

	var categoryModels []model.CategoryModel
	if err := query.Order("type ASC, name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// ExistsByName checks the (user, name, type) uniqueness rule.
func (r *categoryRepository) ExistsByName(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	categoryType entity.CategoryType,
	excludeID *uuid.UUID,
) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, string(categoryType))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(model.CategoryFromEntity(category)).Error
}

// Delete removes a category from the database.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// CountTransactions counts the transactions referencing a category.
func (r *categoryRepository) CountTransactions(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}
