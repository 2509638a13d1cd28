package models

import (
	"time"

	"github.com/google/uuid"
)

// Coarse workflow states stored on Case.Status.
const (
	CaseStatusWIP       = "wip"
	CaseStatusCompleted = "completed"
	CaseStatusClosed    = "closed"
)

type Case struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID      uuid.UUID `gorm:"index"`
	CustomerID    uuid.UUID `gorm:"index"`
	ApplicantName string
	Services      string
	Status        string    `gorm:"index"`
	CreatedAt     time.Time `gorm:"index"`
}
