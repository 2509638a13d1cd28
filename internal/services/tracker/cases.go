package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bgv-casetracker-backend/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidStatus = errors.New("invalid status value")

type CreateCaseInput struct {
	BranchID      uuid.UUID
	CustomerID    uuid.UUID
	ApplicantName string
	Services      string
}

// CreateCase opens a new application: a wip case plus its initiated
// verification record.
func (s *Service) CreateCase(ctx context.Context, in CreateCaseInput) (*models.Case, error) {
	c := &models.Case{
		ID:            uuid.New(),
		BranchID:      in.BranchID,
		CustomerID:    in.CustomerID,
		ApplicantName: in.ApplicantName,
		Services:      in.Services,
		Status:        models.CaseStatusWIP,
		CreatedAt:     s.now(),
	}
	rec := &models.VerificationRecord{
		ID:            uuid.New(),
		CaseID:        c.ID,
		OverallStatus: StatusInitiated,
		IsVerify:      "no",
		CreatedAt:     c.CreatedAt,
	}
	if err := s.store.CreateCase(ctx, c, rec); err != nil {
		return nil, err
	}
	s.log.Info("case created",
		zap.String("case_id", c.ID.String()),
		zap.String("customer_id", c.CustomerID.String()))
	return c, nil
}

type UpdateStatusInput struct {
	OverallStatus           string
	FinalVerificationStatus string
	ReportDate              *time.Time
	IsVerify                string
	MarkDownloaded          *bool
	PerformedBy             string
	Reason                  string
}

// UpdateStatus moves a verification record to a new workflow state and
// appends the audit row. A final color is only accepted together with the
// completed status; completing without a report date stamps today.
func (s *Service) UpdateStatus(ctx context.Context, caseID uuid.UUID, in UpdateStatusInput) (*models.VerificationRecord, error) {
	status := strings.ToLower(strings.TrimSpace(in.OverallStatus))
	if !IsValidOverallStatus(status) {
		return nil, fmt.Errorf("%w: overall status %q", ErrInvalidStatus, in.OverallStatus)
	}
	color := strings.ToLower(strings.TrimSpace(in.FinalVerificationStatus))
	if color != "" {
		if status != StatusCompleted {
			return nil, fmt.Errorf("%w: final color %q requires completed status", ErrInvalidStatus, color)
		}
		if !IsValidColor(color) {
			return nil, fmt.Errorf("%w: final color %q", ErrInvalidStatus, in.FinalVerificationStatus)
		}
	}

	rec, err := s.store.RecordByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	entry := &models.StatusAuditLog{
		ID:             uuid.New(),
		CaseID:         caseID,
		PreviousStatus: rec.OverallStatus,
		PreviousColor:  rec.FinalVerificationStatus,
		NewStatus:      status,
		NewColor:       color,
		PerformedBy:    in.PerformedBy,
		Reason:         in.Reason,
		CreatedAt:      s.now(),
	}

	rec.OverallStatus = status
	rec.FinalVerificationStatus = color
	if in.ReportDate != nil {
		rec.ReportDate = in.ReportDate
	}
	if status == StatusCompleted && rec.ReportDate == nil {
		now := s.now()
		rec.ReportDate = &now
	}
	if v := strings.ToLower(strings.TrimSpace(in.IsVerify)); v != "" {
		rec.IsVerify = v
	}
	if in.MarkDownloaded != nil {
		rec.IsReportDownloaded = in.MarkDownloaded
	}
	rec.UpdatedAt = s.now()

	caseStatus := models.CaseStatusWIP
	if status == StatusCompleted {
		caseStatus = models.CaseStatusCompleted
	}
	if err := s.store.SaveRecord(ctx, rec, caseStatus); err != nil {
		return nil, err
	}
	if err := s.store.AppendAudit(ctx, entry); err != nil {
		s.log.Error("audit write failed",
			zap.String("case_id", caseID.String()), zap.Error(err))
		return nil, err
	}

	s.log.Info("status updated",
		zap.String("case_id", caseID.String()),
		zap.String("from", entry.PreviousStatus),
		zap.String("to", status))
	return rec, nil
}
