package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(model.GoalFromEntity(goal)).Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUser retrieves a user's goals, newest first.
func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var goalModels []model.GoalModel
	if err := query.Order("created_at DESC").Find(&goalModels).Error; err != nil {
		return nil, err
	}
	return toGoals(goalModels), nil
}

// FindOverlapping retrieves goals whose period intersects r.
func (r *goalRepository) FindOverlapping(ctx context.Context, userID uuid.UUID, dr valueobject.DateRange) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("start_date <= ?", dr.End).
		Where("(end_date IS NULL OR end_date >= ?)", dr.Start).
		Order("created_at ASC").
		Find(&goalModels).Error
	if err != nil {
		return nil, err
	}
	return toGoals(goalModels), nil
}

// Update persists the goal inside one database transaction.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(model.GoalFromEntity(goal))
		if result.Error != nil {
			return result.Error
		}
		return nil
	})
}

// Delete removes a goal from the database.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

func toGoals(goalModels []model.GoalModel) []*entity.Goal {
	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals
}
