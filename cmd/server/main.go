package main

import (
	"log"
	"time"

	"bgv-casetracker-backend/internal/config"
	"bgv-casetracker-backend/internal/models"
	"bgv-casetracker-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg := config.Load()
	logger := config.NewLogger()
	defer logger.Sync()

	db := config.InitDB(cfg)

	db.AutoMigrate(
		&models.Customer{},
		&models.Branch{},
		&models.Case{},
		&models.VerificationRecord{},
		&models.Holiday{},
		&models.WeekendConfig{},
		&models.StatusAuditLog{},
	)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, logger, cfg)

	r.Run(":" + cfg.Port)
}
