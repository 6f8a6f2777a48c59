// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/model"
)

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create stores the user and its seed categories in one transaction.
func (r *userRepository) Create(ctx context.Context, user *entity.User, categories []*entity.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.UserFromEntity(user)).Error; err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		if len(categories) == 0 {
			return nil
		}

		models := make([]*model.CategoryModel, len(categories))
		for i, c := range categories {
			models[i] = model.CategoryFromEntity(c)
		}
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("seeding categories: %w", err)
		}
		return nil
	})
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where(query, arg).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a user by their email address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByUsername retrieves a user by their username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindAll returns every user, oldest first.
func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var userModels []model.UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = userModels[i].ToEntity()
	}
	return users, nil
}

// Delete removes the user and every row it owns.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&model.EmailQueueModel{},
			&model.MonthlyReportModel{},
			&model.GoalModel{},
			&model.TransactionModel{},
			&model.CategoryModel{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("deleting owned rows: %w", err)
			}
		}

		result := tx.Delete(&model.UserModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrUserNotFound
		}
		return nil
	})
}

func (r *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.UserModel{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// ExistsByUsername checks if a user with the given username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}
