package repository

import (
	"context"
	"time"

	"bgv-casetracker-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HolidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

func (r *HolidayRepository) List(ctx context.Context) ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := r.db.WithContext(ctx).Order("date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *HolidayRepository) Dates(ctx context.Context) ([]time.Time, error) {
	holidays, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	return dates, nil
}

// Create ignores duplicates on the date column.
func (r *HolidayRepository) Create(ctx context.Context, h *models.Holiday) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(h).Error
}
