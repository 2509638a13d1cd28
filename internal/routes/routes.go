package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bgv-casetracker-backend/internal/config"
	handler "bgv-casetracker-backend/internal/handlers"
	"bgv-casetracker-backend/internal/repository"
	"bgv-casetracker-backend/internal/services/tracker"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.Logger, cfg config.Config) {
	caseRepo := repository.NewCaseRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	configRepo := repository.NewCompanyConfigRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	calendarStore := repository.NewCalendarStore(holidayRepo, configRepo)

	trackerService := tracker.NewService(
		caseRepo,
		caseRepo,
		calendarStore,
		logger,
		cfg.CalendarCacheTTL,
	)

	trackerHandler := handler.NewTrackerHandler(trackerService, logger)
	calendarHandler := handler.NewCalendarHandler(holidayRepo, configRepo, trackerService, logger)
	adminHandler := handler.NewAdminHandler(customerRepo, logger)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Dashboard
	api.GET("/dashboard/filters", trackerHandler.DashboardFilters)

	// Case routes
	cases := api.Group("/cases")
	cases.GET("", trackerHandler.ListCases)
	cases.POST("", trackerHandler.CreateCase)
	cases.PUT("/:id/status", trackerHandler.UpdateStatus)

	// Working-day calendar administration
	calendar := api.Group("/calendar")
	calendar.GET("/holidays", calendarHandler.ListHolidays)
	calendar.POST("/holidays", calendarHandler.CreateHoliday)
	calendar.GET("/weekends", calendarHandler.GetWeekends)
	calendar.PUT("/weekends", calendarHandler.UpdateWeekends)

	// Customer/branch intake
	customers := api.Group("/customers")
	{
		customers.POST("", adminHandler.CreateCustomer)
		customers.PUT("/:id/active", adminHandler.SetCustomerActive)
	}
	api.POST("/branches", adminHandler.CreateBranch)
}
