package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table in the database.
type EmailQueueModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         *uuid.UUID `gorm:"type:uuid;index"`
	TemplateType   string     `gorm:"type:varchar(50);not null"`
	RecipientEmail string     `gorm:"type:varchar(255);not null;index"`
	RecipientName  string     `gorm:"type:varchar(255)"`
	Subject        string     `gorm:"type:varchar(500);not null"`
	TemplateData   string     `gorm:"type:jsonb;not null;default:'{}'"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due"`
	Attempts       int        `gorm:"not null;default:0"`
	MaxAttempts    int        `gorm:"not null;default:3"`
	LastError      string     `gorm:"type:text"`
	ProviderID     string     `gorm:"type:varchar(100)"`
	CreatedAt      time.Time  `gorm:"not null"`
	ScheduledAt    time.Time  `gorm:"not null;index:idx_email_queue_due"`
	ProcessedAt    *time.Time
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts an EmailQueueModel to a domain EmailJob entity.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := map[string]any{}
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &data); err != nil {
			slog.Warn("Failed to unmarshal email template data", "error", err, "id", m.ID)
		}
	}

	return &entity.EmailJob{
		ID:             m.ID,
		UserID:         m.UserID,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		TemplateData:   data,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ProviderID:     m.ProviderID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ProcessedAt:    m.ProcessedAt,
	}
}

// EmailQueueModelFromEntity creates an EmailQueueModel from a domain EmailJob entity.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	data, err := json.Marshal(job.TemplateData)
	if err != nil {
		slog.Error("Failed to marshal email template data", "error", err, "job_id", job.ID)
		data = []byte("{}")
	}

	return &EmailQueueModel{
		ID:             job.ID,
		UserID:         job.UserID,
		TemplateType:   string(job.TemplateType),
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		TemplateData:   string(data),
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ProviderID:     job.ProviderID,
		CreatedAt:      job.CreatedAt,
		ScheduledAt:    job.ScheduledAt,
		ProcessedAt:    job.ProcessedAt,
	}
}

// AllModels lists every persisted model, in dependency order.
func AllModels() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&TransactionModel{},
		&GoalModel{},
		&MonthlyReportModel{},
		&EmailQueueModel{},
	}
}
