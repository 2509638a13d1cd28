package repository

import (
	"context"
	"strings"

	"bgv-casetracker-backend/internal/models"
	"bgv-casetracker-backend/internal/services/tracker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// Expose DB if needed
func (r *CaseRepository) DB() *gorm.DB {
	return r.db
}

// scoped is the base joined query every count/list runs on: cases joined to
// their verification record and owning customer, inactive customers
// soft-filtered out.
func (r *CaseRepository) scoped(ctx context.Context, scope tracker.Scope) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Case{}).
		Joins("JOIN verification_records ON verification_records.case_id = cases.id").
		Joins("JOIN customers ON customers.id = cases.customer_id").
		Where("customers.active = ?", true)
	if scope.CustomerID != nil {
		q = q.Where("cases.customer_id = ?", *scope.CustomerID)
	}
	if scope.BranchID != nil {
		q = q.Where("cases.branch_id = ?", *scope.BranchID)
	}
	return q
}

func (r *CaseRepository) Count(ctx context.Context, scope tracker.Scope, p tracker.Predicate, w tracker.MonthWindow) (int64, error) {
	q := r.scoped(ctx, scope)
	if p != nil {
		cond, args := p.SQL(w)
		q = q.Where(cond, args...)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

const listColumns = "cases.id AS case_id, cases.branch_id, cases.customer_id, " +
	"cases.applicant_name, cases.services, cases.status AS case_status, cases.created_at, " +
	"verification_records.overall_status, " +
	"verification_records.final_verification_status AS final_status, " +
	"verification_records.is_verify, " +
	"verification_records.is_report_downloaded AS report_downloaded, " +
	"verification_records.report_date, " +
	"customers.tat_days"

func (r *CaseRepository) List(ctx context.Context, scope tracker.Scope, p tracker.Predicate, explicitStatus string, w tracker.MonthWindow) ([]tracker.CaseRecord, error) {
	q := r.scoped(ctx, scope).Select(listColumns)
	if p != nil {
		cond, args := p.SQL(w)
		q = q.Where(cond, args...)
	}
	if explicitStatus != "" {
		q = q.Where("LOWER(cases.status) = ?", strings.ToLower(explicitStatus))
	}
	var recs []tracker.CaseRecord
	err := q.Order("cases.created_at DESC").Scan(&recs).Error
	return recs, err
}

func (r *CaseRepository) CreateCase(ctx context.Context, c *models.Case, rec *models.VerificationRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
}

func (r *CaseRepository) RecordByCaseID(ctx context.Context, caseID uuid.UUID) (*models.VerificationRecord, error) {
	var rec models.VerificationRecord
	if err := r.db.WithContext(ctx).First(&rec, "case_id = ?", caseID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveRecord persists the record and keeps the parent case's coarse status
// in step with it.
func (r *CaseRepository) SaveRecord(ctx context.Context, rec *models.VerificationRecord, caseStatus string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		return tx.Model(&models.Case{}).
			Where("id = ?", rec.CaseID).
			Update("status", caseStatus).Error
	})
}

func (r *CaseRepository) AppendAudit(ctx context.Context, entry *models.StatusAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
