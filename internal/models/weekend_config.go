package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WeekendConfig stores the company-wide non-working weekdays. Exactly one
// row is active at a time; Weekdays is a JSON array of lower-cased English
// weekday names.
type WeekendConfig struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Weekdays  datatypes.JSON `gorm:"column:weekdays"`
	Active    bool           `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
