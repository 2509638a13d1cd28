package models

import (
	"time"

	"github.com/google/uuid"
)

type Branch struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"index"`
	Name       string
	Email      string
	CreatedAt  time.Time
}
