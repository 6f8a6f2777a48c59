package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_goals_user_status"`
	Name          string          `gorm:"type:varchar(100);not null"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GoalType      string          `gorm:"type:varchar(20);not null"`
	Period        string          `gorm:"type:varchar(20);not null;default:'monthly'"`
	StartDate     time.Time       `gorm:"type:date;not null"`
	EndDate       *time.Time      `gorm:"type:date"`
	Status        string          `gorm:"type:varchar(20);not null;default:'active';index:idx_goals_user_status"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var endDate *time.Time
	if m.EndDate != nil {
		end := m.EndDate.UTC()
		endDate = &end
	}

	return &entity.Goal{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		Type:          entity.GoalType(m.GoalType),
		Period:        entity.GoalPeriod(m.Period),
		StartDate:     m.StartDate.UTC(),
		EndDate:       endDate,
		Status:        entity.GoalStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:            goal.ID,
		UserID:        goal.UserID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount.Round(2),
		GoalType:      string(goal.Type),
		Period:        string(goal.Period),
		StartDate:     goal.StartDate,
		EndDate:       goal.EndDate,
		Status:        string(goal.Status),
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
	}
}
