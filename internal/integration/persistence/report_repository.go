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

// reportRepository implements the adapter.ReportRepository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new monthly report repository instance.
func NewReportRepository(db *gorm.DB) adapter.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// Replace swaps the stored report for (user, year, month) atomically.
func (r *reportRepository) Replace(ctx context.Context, report *entity.MonthlyReport) error {
	reportModel, err := model.MonthlyReportFromEntity(report)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND year = ? AND month = ?", report.UserID, report.Year, report.Month).
			Delete(&model.MonthlyReportModel{}).Error; err != nil {
			return fmt.Errorf("deleting previous report: %w", err)
		}
		if err := tx.Create(reportModel).Error; err != nil {
			return fmt.Errorf("inserting report: %w", err)
		}
		return nil
	})
}

// FindByPeriod retrieves the report for one month.
func (r *reportRepository) FindByPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*entity.MonthlyReport, error) {
	var reportModel model.MonthlyReportModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&reportModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReportNotFound
		}
		return nil, result.Error
	}
	return reportModel.ToEntity()
}

// FindByYear retrieves a user's reports, newest first.
func (r *reportRepository) FindByYear(ctx context.Context, userID uuid.UUID, year int) ([]*entity.MonthlyReport, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if year != 0 {
		query = query.Where("year = ?", year)
	}

	var reportModels []model.MonthlyReportModel
	if err := query.Order("year DESC, month DESC").Find(&reportModels).Error; err != nil {
		return nil, err
	}

	reports := make([]*entity.MonthlyReport, 0, len(reportModels))
	for i := range reportModels {
		report, err := reportModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// FindYears lists the distinct years with reports, newest first.
func (r *reportRepository) FindYears(ctx context.Context, userID uuid.UUID) ([]int, error) {
	var years []int
	err := r.db.WithContext(ctx).
		Model(&model.MonthlyReportModel{}).
		Where("user_id = ?", userID).
		Distinct("year").
		Order("year DESC").
		Pluck("year", &years).Error
	return years, err
}

// DeleteByPeriod removes the report for one month.
func (r *reportRepository) DeleteByPeriod(ctx context.Context, userID uuid.UUID, year, month int) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Delete(&model.MonthlyReportModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
