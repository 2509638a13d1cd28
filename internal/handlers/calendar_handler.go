package handler

import (
	"errors"
	"net/http"
	"time"

	"bgv-casetracker-backend/internal/models"
	"bgv-casetracker-backend/internal/repository"
	"bgv-casetracker-backend/internal/services/tracker"
	"bgv-casetracker-backend/internal/services/workdays"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CalendarHandler struct {
	holidays *repository.HolidayRepository
	config   *repository.CompanyConfigRepository
	service  *tracker.Service
	log      *zap.Logger
}

func NewCalendarHandler(
	holidays *repository.HolidayRepository,
	config *repository.CompanyConfigRepository,
	service *tracker.Service,
	logger *zap.Logger,
) *CalendarHandler {
	return &CalendarHandler{holidays: holidays, config: config, service: service, log: logger}
}

func (h *CalendarHandler) ListHolidays(c *gin.Context) {
	holidays, err := h.holidays.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"holidays": holidays})
}

func (h *CalendarHandler) CreateHoliday(c *gin.Context) {
	var payload struct {
		Date  string `json:"date" binding:"required"` // "2006-01-02"
		Title string `json:"title" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	d, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	holiday := &models.Holiday{
		ID:        uuid.New(),
		Date:      workdays.Truncate(d),
		Title:     payload.Title,
		CreatedAt: time.Now(),
	}
	if err := h.holidays.Create(c.Request.Context(), holiday); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.service.InvalidateCalendar()
	c.JSON(http.StatusCreated, gin.H{"message": "holiday added", "holiday": holiday})
}

func (h *CalendarHandler) GetWeekends(c *gin.Context) {
	names, err := h.config.WeekdayNames(c.Request.Context())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"weekends": names})
}

func (h *CalendarHandler) UpdateWeekends(c *gin.Context) {
	var payload struct {
		Weekdays []string `json:"weekdays" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	// Reject unknown names and all-seven-day sets before persisting.
	if _, err := workdays.NewCalendar(nil, payload.Weekdays); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.config.SetActive(c.Request.Context(), payload.Weekdays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.service.InvalidateCalendar()
	h.log.Info("weekend configuration replaced", zap.Strings("weekdays", payload.Weekdays))
	c.JSON(http.StatusOK, gin.H{"message": "weekend configuration updated", "config": cfg})
}
