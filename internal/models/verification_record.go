package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VerificationRecord is the one-per-case tracker row carrying the
// fine-grained workflow status. FinalVerificationStatus is only set once
// OverallStatus reaches "completed".
type VerificationRecord struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CaseID                  uuid.UUID `gorm:"uniqueIndex"`
	OverallStatus           string    `gorm:"index"`
	FinalVerificationStatus string
	ReportDate              *time.Time `gorm:"index"`
	IsVerify                string     // QC sign-off, "yes"/"no"
	IsReportDownloaded      *bool
	ReportMeta              datatypes.JSON
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
