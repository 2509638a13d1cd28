package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bgv-casetracker-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyConfigRepository struct {
	db *gorm.DB
}

func NewCompanyConfigRepository(db *gorm.DB) *CompanyConfigRepository {
	return &CompanyConfigRepository{db: db}
}

func (r *CompanyConfigRepository) Active(ctx context.Context) (*models.WeekendConfig, error) {
	var cfg models.WeekendConfig
	err := r.db.WithContext(ctx).First(&cfg, "active = ?", true).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WeekdayNames returns the active weekend weekday names. No configured row
// means no weekends, which the calculator accepts.
func (r *CompanyConfigRepository) WeekdayNames(ctx context.Context) ([]string, error) {
	cfg, err := r.Active(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(cfg.Weekdays, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SetActive replaces the active weekend configuration in one transaction.
func (r *CompanyConfigRepository) SetActive(ctx context.Context, weekdays []string) (*models.WeekendConfig, error) {
	raw, err := json.Marshal(weekdays)
	if err != nil {
		return nil, err
	}
	cfg := &models.WeekendConfig{
		ID:        uuid.New(),
		Weekdays:  raw,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.WeekendConfig{}).
			Where("active = ?", true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(cfg).Error
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
