package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HACO8888/Financial-Management-System/internal/domain/entity"
)

// MonthlyReportModel represents the monthly_reports table in the database.
type MonthlyReportModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_reports_period"`
	Year         int             `gorm:"not null;uniqueIndex:idx_monthly_reports_period"`
	Month        int             `gorm:"not null;uniqueIndex:idx_monthly_reports_period"`
	TotalIncome  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalExpense decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	NetAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReportData   string          `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MonthlyReportModel.
func (MonthlyReportModel) TableName() string {
	return "monthly_reports"
}

// ToEntity converts a MonthlyReportModel to a domain MonthlyReport, upgrading older payloads.
func (m *MonthlyReportModel) ToEntity() (*entity.MonthlyReport, error) {
	payload, err := entity.DecodeReportPayload([]byte(m.ReportData))
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", m.ID, err)
	}

	return &entity.MonthlyReport{
		ID:           m.ID,
		UserID:       m.UserID,
		Year:         m.Year,
		Month:        m.Month,
		TotalIncome:  m.TotalIncome,
		TotalExpense: m.TotalExpense,
		NetAmount:    m.NetAmount,
		Payload:      payload,
		CreatedAt:    m.CreatedAt,
	}, nil
}

// MonthlyReportFromEntity creates a MonthlyReportModel from a domain MonthlyReport.
func MonthlyReportFromEntity(r *entity.MonthlyReport) (*MonthlyReportModel, error) {
	data, err := entity.EncodeReportPayload(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("encoding report payload: %w", err)
	}

	return &MonthlyReportModel{
		ID:           r.ID,
		UserID:       r.UserID,
		Year:         r.Year,
		Month:        r.Month,
		TotalIncome:  r.TotalIncome,
		TotalExpense: r.TotalExpense,
		NetAmount:    r.NetAmount,
		ReportData:   string(data),
		CreatedAt:    r.CreatedAt,
	}, nil
}
