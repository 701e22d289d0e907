package attendance

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"attendance-backend/internal/apperr"
	"attendance-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MonthSettingsInput struct {
	Month     string `json:"month"`
	Year      string `json:"year"`
	Sundays   int    `json:"sundays"`
	Saturdays int    `json:"saturdays"`
}

// monthKey: ("2", "2026") -> ("02", "2026")
func monthKey(monthStr, yearStr string) (string, string, error) {
	year, month, err := ParseMonthYear(monthStr, yearStr)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("%02d", int(month)), strconv.Itoa(year), nil
}

// GetMonthSettings: kayıt yoksa sıfır sayaçlarla döner
func (s *Service) GetMonthSettings(ctx context.Context, monthStr, yearStr string) (*models.MonthSettings, error) {
	month, year, err := monthKey(monthStr, yearStr)
	if err != nil {
		return nil, err
	}

	var ms models.MonthSettings
	err = s.db.WithContext(ctx).Where("month = ? AND year = ?", month, year).First(&ms).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.MonthSettings{Month: month, Year: year}, nil
	}
	if err != nil {
		return nil, apperr.Internal("ay ayarları okunamadı", err)
	}
	return &ms, nil
}

// SaveMonthSettings: (month, year) anahtarına göre upsert
func (s *Service) SaveMonthSettings(ctx context.Context, in MonthSettingsInput) (*models.MonthSettings, error) {
	month, year, err := monthKey(in.Month, in.Year)
	if err != nil {
		return nil, err
	}
	ms := models.MonthSettings{
		Month:     month,
		Year:      year,
		Sundays:   in.Sundays,
		Saturdays: in.Saturdays,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"sundays", "saturdays"}),
	}).Create(&ms).Error; err != nil {
		return nil, apperr.Internal("ay ayarları kaydedilemedi", err)
	}

	return s.GetMonthSettings(ctx, month, year)
}
