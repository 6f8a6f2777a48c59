package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
	domainerror "github.com/HACO8888/Financial-Management-System/internal/domain/error"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Create adds a new email job to the queue.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to create email job", err)
	}
	return nil
}

// GetPendingJobs retrieves jobs due at now.
func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.EmailStatusPending).
		Where("scheduled_at <= ?", now).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toEmailJobs(models), nil
}

// Update saves changes to an email job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

// GetByID retrieves a specific job by its ID.
func (r *emailQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	var emailModel model.EmailQueueModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&emailModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEmailJobNotFound
		}
		return nil, result.Error
	}
	return emailModel.ToEntity(), nil
}

// GetByRecipient retrieves jobs for a specific email address.
func (r *emailQueueRepository) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toEmailJobs(models), nil
}

// DeleteOldSentJobs removes sent jobs processed before the cutoff.
func (r *emailQueueRepository) DeleteOldSentJobs(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ?", entity.EmailStatusSent).
		Where("processed_at < ?", before).
		Delete(&model.EmailQueueModel{})
	return result.RowsAffected, result.Error
}

func toEmailJobs(models []model.EmailQueueModel) []*entity.EmailJob {
	jobs := make([]*entity.EmailJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
	}
	return jobs
}
