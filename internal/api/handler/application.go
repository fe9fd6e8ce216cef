package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nithin2k5/Arbeit/internal/domain"
	"github.com/nithin2k5/Arbeit/internal/logger"
	"github.com/nithin2k5/Arbeit/internal/service"
)

// ApplicationHandler handles application submission and review endpoints.
type ApplicationHandler struct {
	applications *service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
// Parameters:
//   - applications: application service instance.
// Returns:
//   - *ApplicationHandler: initialized handler.
func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
	}
}

// Submit handles POST /api/v1/applications.
// Accepts multipart form data with applicant fields and an optional
// resume file part.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ApplicationHandler) Submit(c *gin.Context) {
	req := &service.SubmitRequest{
		JobID:           c.PostForm("jobId"),
		FullName:        c.PostForm("fullName"),
		Email:           c.PostForm("email"),
		Phone:           c.PostForm("phone"),
		CoverLetter:     c.PostForm("coverLetter"),
		Experience:      c.PostForm("experience"),
		CurrentCompany:  c.PostForm("currentCompany"),
		CurrentJobTitle: c.PostForm("currentJobTitle"),
		Education:       c.PostForm("education"),
		LinkedinURL:     c.PostForm("linkedinUrl"),
		PortfolioURL:    c.PostForm("portfolioUrl"),
	}

	if req.JobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Job ID is required",
		})
		return
	}
	if req.FullName == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Full name and email are required",
		})
		return
	}

	file, header, err := c.Request.FormFile("resume")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Failed to read resume file",
			})
			return
		}
		req.Resume = data
		req.ResumeFileName = header.Filename
		req.ResumeContentType = header.Header.Get("Content-Type")
	}

	result, err := h.applications.Submit(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotAvailable):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found or no longer accepting applications",
			})
		case errors.Is(err, service.ErrDuplicateApplication):
			c.JSON(http.StatusConflict, gin.H{
				"error": "You have already applied for this job",
			})
		default:
			logger.CtxError(c.Request.Context(), "Failed to submit application: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to submit application",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// List handles GET /api/v1/applications.
// Supports an optional status query parameter.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ApplicationHandler) List(c *gin.Context) {
	var (
		apps []domain.Application
		err  error
	)

	if status := c.Query("status"); status != "" {
		apps, err = h.applications.ListByStatus(c.Request.Context(), domain.ApplicationStatus(status))
	} else {
		apps, err = h.applications.ListAll(c.Request.Context())
	}
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to list applications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list applications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}

// Get handles GET /api/v1/applications/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ApplicationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Application ID is required",
		})
		return
	}

	app, err := h.applications.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Application not found",
			})
			return
		}
		logger.CtxError(c.Request.Context(), "Failed to get application: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get application",
		})
		return
	}

	c.JSON(http.StatusOK, app)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /api/v1/applications/:id/status.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Status is required",
		})
		return
	}

	app, err := h.applications.SetStatus(c.Request.Context(), id, domain.ApplicationStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Application not found",
			})
			return
		}
		logger.CtxError(c.Request.Context(), "Failed to update application status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update application status",
		})
		return
	}

	c.JSON(http.StatusOK, app)
}

// DownloadResume handles GET /api/v1/applications/:id/resume.
// Streams the stored resume back with its original file name.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes binary response).
func (h *ApplicationHandler) DownloadResume(c *gin.Context) {
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
			logger.CtxError(c.Request.Context(), "Failed to download resume: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to download resume",
			})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.FileName))
	c.Data(http.StatusOK, resume.ContentType, resume.Data)
}

// ListByJob handles GET /api/v1/jobs/:jobId/applications.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Job ID is required",
		})
		return
	}

	apps, err := h.applications.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to list applications for job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list applications for job",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}

// ListByApplicant handles GET /api/v1/applicants/:applicantId/applications.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ApplicationHandler) ListByApplicant(c *gin.Context) {
	applicantID := c.Param("applicantId")
	if applicantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Applicant ID is required",
		})
		return
	}

	apps, err := h.applications.ListByApplicant(c.Request.Context(), applicantID)
	if err != nil {
		logger.CtxError(c.Request.Context(), "Failed to list applications for applicant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list applications for applicant",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        len(apps),
	})
}
