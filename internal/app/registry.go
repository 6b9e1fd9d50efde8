package app

import (
	"database/sql"

	"transparency/internal/dashboard"
	"transparency/internal/fee"
	"transparency/internal/messaging/kafka"
	"transparency/internal/middleware"
	"transparency/internal/remittance"
	"transparency/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Repositories ---
	feeRepo := fee.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	remittanceRepo := remittance.NewRepository(db, gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	feeService := fee.NewService(feeRepo)
	reportService := report.NewService(reportRepo, feeRepo)
	dashboardService := dashboard.NewService(dashboardRepo)
	remittanceService := remittance.NewService(
		db,
		remittanceRepo,
		feeRepo,
		outboxRepo,
		zap.L().Named("remittance.service"),
	)

	// --- Handlers ---
	feeHandler := fee.NewHandler(feeService)
	reportHandler := report.NewHandler(reportService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	remittanceHandler := remittance.NewHandlerWithRedis(remittanceService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		fee.RegisterRoutes(api, feeHandler)
		report.RegisterRoutes(api, reportHandler)
		dashboard.RegisterRoutes(api, dashboardHandler)
		remittance.RegisterRoutes(api, remittanceHandler, rdb)
	}

	return nil
}
