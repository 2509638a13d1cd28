package handler

import (
	"net/http"
	"time"

	"bgv-casetracker-backend/internal/models"
	"bgv-casetracker-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler covers customer and branch intake.
type AdminHandler struct {
	customers *repository.CustomerRepository
	log       *zap.Logger
}

func NewAdminHandler(customers *repository.CustomerRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{customers: customers, log: logger}
}

func (h *AdminHandler) CreateCustomer(c *gin.Context) {
	var payload struct {
		Name    string `json:"name" binding:"required"`
		TATDays int    `json:"tat_days" binding:"required,min=1"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	customer := &models.Customer{
		ID:        uuid.New(),
		Name:      payload.Name,
		TATDays:   payload.TATDays,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := h.customers.Create(c.Request.Context(), customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "customer created", "customer": customer})
}

func (h *AdminHandler) CreateBranch(c *gin.Context) {
	var payload struct {
		CustomerID string `json:"customer_id" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
		return
	}

	branch := &models.Branch{
		ID:         uuid.New(),
		CustomerID: customerID,
		Name:       payload.Name,
		Email:      payload.Email,
		CreatedAt:  time.Now(),
	}
	if err := h.customers.CreateBranch(c.Request.Context(), branch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "branch created", "branch": branch})
}

func (h *AdminHandler) SetCustomerActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer ID"})
		return
	}
	var payload struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.customers.SetActive(c.Request.Context(), id, *payload.Active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("customer active flag changed",
		zap.String("customer_id", id.String()), zap.Bool("active", *payload.Active))
	c.JSON(http.StatusOK, gin.H{"message": "customer updated"})
}
