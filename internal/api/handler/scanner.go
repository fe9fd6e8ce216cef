package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nithin2k5/Arbeit/internal/logger"
	"github.com/nithin2k5/Arbeit/internal/service"
)

// ScannerHandler handles resume analysis and career guidance endpoints.
type ScannerHandler struct {
	scanner      *service.ScannerService
	gemini       *service.GeminiService
	applications *service.ApplicationService
}

// NewScannerHandler creates a new scanner handler.
// Parameters:
//   - scanner: resume analysis service.
//   - gemini: generative model client.
//   - applications: application service for stored-resume lookups.
// Returns:
//   - *ScannerHandler: initialized handler.
func NewScannerHandler(scanner *service.ScannerService, gemini *service.GeminiService, applications *service.ApplicationService) *ScannerHandler {
	return &ScannerHandler{
		scanner:      scanner,
		gemini:       gemini,
		applications: applications,
	}
}

type analyzeTextRequest struct {
	ResumeText string `json:"resumeText" binding:"required"`
}

// AnalyzeText handles POST /api/v1/scanner/analyze.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ScannerHandler) AnalyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Resume text is required",
		})
		return
	}

	analysis, err := h.scanner.AnalyzeText(c.Request.Context(), req.ResumeText)
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to analyze resume text: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to analyze resume",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis": analysis,
		"model":    h.gemini.GetModel(),
	})
}

// AnalyzeApplication handles POST /api/v1/applications/:id/analyze.
// Runs the stored resume of an application through the scanner.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ScannerHandler) AnalyzeApplication(c *gin.Context) {
	id := c.Param("id")

	resume, err := h.applications.GetResume(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Application not found",
			})
		case errors.Is(err, service.ErrResumeNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No resume on file for this application",
			})
		default:
			logger.CtxError(c.Request.Context(), "Failed to load resume for analysis: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to analyze resume",
			})
		}
		return
	}

	analysis, err := h.scanner.AnalyzeFile(c.Request.Context(), resume.Data, resume.FileName)
	if err != nil {
		if errors.Is(err, service.ErrResumeNotAnalyzable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Resume format is not supported for analysis",
			})
			return
		}
		logger.CtxError(c.Request.Context(), "Failed to analyze stored resume: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to analyze resume",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applicationId": id,
		"analysis":      analysis,
		"model":         h.gemini.GetModel(),
	})
}

type roadmapRequest struct {
	DreamRole     string `json:"dreamRole" binding:"required"`
	CurrentSkills string `json:"currentSkills"`
}

// GenerateRoadmap handles POST /api/v1/career/roadmap.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ScannerHandler) GenerateRoadmap(c *gin.Context) {
	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dream role is required",
		})
		return
	}

	roadmap, err := h.gemini.GenerateRoadmap(c.Request.Context(), req.DreamRole, req.CurrentSkills)
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to generate roadmap: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate roadmap",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roadmap": roadmap,
		"model":   h.gemini.GetModel(),
	})
}

type projectPlanRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// GenerateProjectPlan handles POST /api/v1/career/project-plan.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ScannerHandler) GenerateProjectPlan(c *gin.Context) {
	var req projectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Project title is required",
		})
		return
	}

	plan, err := h.gemini.GenerateProjectPlan(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to generate project plan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate project plan",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":  plan,
		"model": h.gemini.GetModel(),
	})
}
