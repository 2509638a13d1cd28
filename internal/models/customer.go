package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"index"`
	TATDays   int       `gorm:"column:tat_days"`
	Active    bool      `gorm:"index"`
	CreatedAt time.Time
}
