package api

import (
	"github.com/gin-gonic/gin"
	"github.com/nithin2k5/Arbeit/internal/api/handler"
	"github.com/nithin2k5/Arbeit/internal/api/middleware"
	"github.com/nithin2k5/Arbeit/internal/config"
	"github.com/nithin2k5/Arbeit/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	applicationService *service.ApplicationService,
	scannerService *service.ScannerService,
	geminiService *service.GeminiService,
	serverCfg *config.ServerConfig,
) *gin.Engine {
	// Set Gin mode
	switch serverCfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  serverCfg.CORS.AllowedOrigins,
		AllowAllOrigins: serverCfg.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	applicationHandler := handler.NewApplicationHandler(applicationService)
	scannerHandler := handler.NewScannerHandler(scannerService, geminiService, applicationService)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Applications
		v1.POST("/applications", applicationHandler.Submit)
		v1.GET("/applications", applicationHandler.List)
		v1.GET("/applications/:id", applicationHandler.Get)
		v1.PUT("/applications/:id/status", applicationHandler.UpdateStatus)
		v1.GET("/applications/:id/resume", applicationHandler.DownloadResume)
		v1.POST("/applications/:id/analyze", scannerHandler.AnalyzeApplication)

		// Per-job and per-applicant views
		v1.GET("/jobs/:jobId/applications", applicationHandler.ListByJob)
		v1.GET("/applicants/:applicantId/applications", applicationHandler.ListByApplicant)

		// Resume scanner and career guidance
		v1.POST("/scanner/analyze", scannerHandler.AnalyzeText)
		v1.POST("/career/roadmap", scannerHandler.GenerateRoadmap)
		v1.POST("/career/project-plan", scannerHandler.GenerateProjectPlan)
	}

	return r
}
