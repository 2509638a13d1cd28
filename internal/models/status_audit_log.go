package models

import (
	"time"

	"github.com/google/uuid"
)

type StatusAuditLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CaseID         uuid.UUID `gorm:"index"`
	PreviousStatus string
	NewStatus      string
	PreviousColor  string
	NewColor       string
	PerformedBy    string
	Reason         string
	CreatedAt      time.Time
}
