package router

import (
	"github.com/gin-gonic/gin"

	"taxrecon/internal/config"
	"taxrecon/internal/handler"
	"taxrecon/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	reconH *handler.ReconcileHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.Upload.MaxFileSizeBytes()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSec, cfg.RateLimit.Burst))

	// Reconciliation routes
	recon := v1.Group("/reconcile")
	recon.POST("", reconH.Reconcile)
	recon.POST("/export/csv", reconH.ExportCSV)
	recon.POST("/export/xlsx", reconH.ExportXLSX)

	return r
}
