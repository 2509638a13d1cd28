package handler

import (
	"errors"
	"net/http"
	"time"

	"bgv-casetracker-backend/internal/services/tracker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TrackerHandler struct {
	service *tracker.Service
	log     *zap.Logger
}

func NewTrackerHandler(service *tracker.Service, logger *zap.Logger) *TrackerHandler {
	return &TrackerHandler{service: service, log: logger}
}

// scopeFromQuery resolves the optional customer_id / branch_id query params
// into an aggregation scope.
func scopeFromQuery(c *gin.Context) (tracker.Scope, bool) {
	var scope tracker.Scope
	if v := c.Query("customer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return scope, false
		}
		scope.CustomerID = &id
	}
	if v := c.Query("branch_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch_id"})
			return scope, false
		}
		scope.BranchID = &id
	}
	return scope, true
}

func (h *TrackerHandler) DashboardFilters(c *gin.Context) {
	scope, ok := scopeFromQuery(c)
	if !ok {
		return
	}

	counts, err := h.service.Aggregate(c.Request.Context(), scope)
	if err != nil {
		var agg *tracker.PartialAggregationError
		if errors.As(err, &agg) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  "aggregation failed",
				"bucket": agg.Bucket,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"filters": counts})
}

func (h *TrackerHandler) ListCases(c *gin.Context) {
	scope, ok := scopeFromQuery(c)
	if !ok {
		return
	}

	cases, err := h.service.ListCases(
		c.Request.Context(), scope, c.Query("bucket"), c.Query("status"))
	if err != nil {
		if errors.Is(err, tracker.ErrUnknownBucket) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cases": cases, "count": len(cases)})
}

func (h *TrackerHandler) CreateCase(c *gin.Context) {
	var payload struct {
		BranchID      string `json:"branch_id" binding:"required"`
		CustomerID    string `json:"customer_id" binding:"required"`
		ApplicantName string `json:"applicant_name" binding:"required"`
		Services      string `json:"services"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	branchID, err := uuid.Parse(payload.BranchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch_id"})
		return
	}
	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
		return
	}

	created, err := h.service.CreateCase(c.Request.Context(), tracker.CreateCaseInput{
		BranchID:      branchID,
		CustomerID:    customerID,
		ApplicantName: payload.ApplicantName,
		Services:      payload.Services,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "case created", "case": created})
}

func (h *TrackerHandler) UpdateStatus(c *gin.Context) {
	caseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case ID"})
		return
	}

	var payload struct {
		OverallStatus           string `json:"overall_status" binding:"required"`
		FinalVerificationStatus string `json:"final_verification_status"`
		ReportDate              string `json:"report_date"` // "2006-01-02"
		IsVerify                string `json:"is_verify"`
		MarkDownloaded          *bool  `json:"mark_downloaded"`
		PerformedBy             string `json:"performed_by"`
		Reason                  string `json:"reason"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	in := tracker.UpdateStatusInput{
		OverallStatus:           payload.OverallStatus,
		FinalVerificationStatus: payload.FinalVerificationStatus,
		IsVerify:                payload.IsVerify,
		MarkDownloaded:          payload.MarkDownloaded,
		PerformedBy:             payload.PerformedBy,
		Reason:                  payload.Reason,
	}
	if payload.ReportDate != "" {
		d, err := time.Parse("2006-01-02", payload.ReportDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report_date, want YYYY-MM-DD"})
			return
		}
		in.ReportDate = &d
	}

	rec, err := h.service.UpdateStatus(c.Request.Context(), caseID, in)
	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated", "record": rec})
}
