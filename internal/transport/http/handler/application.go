package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udanya23/job-portal/internal/domain"
	"github.com/udanya23/job-portal/internal/transport/http/middleware"
	"github.com/udanya23/job-portal/internal/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type applicationUsecaser interface {
	Apply(ctx context.Context, jobID string, applicant primitive.ObjectID) (*domain.Application, error)
	MyApplications(ctx context.Context, applicant primitive.ObjectID) ([]usecase.ApplicationWithJob, error)
	ApplicantsForJob(ctx context.Context, jobID string, recruiter primitive.ObjectID) ([]usecase.ApplicationWithApplicant, error)
}

type ApplicationHandler struct {
	apps   applicationUsecaser
	logger *slog.Logger
}

func NewApplicationHandler(apps applicationUsecaser, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, logger: logger.With("component", "application_handler")}
}

type applyRequest struct {
	JobID string `json:"jobId" binding:"required"`
}

// POST /api/applications/apply — job seekers only.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims.Role != domain.RoleJobSeeker {
		c.JSON(http.StatusForbidden, gin.H{"message": errJobSeekerOnly})
		return
	}
	applicantID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
		return
	}

	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	app, err := h.apps.Apply(c.Request.Context(), req.JobID, applicantID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errJobNotFound})
		case errors.Is(err, domain.ErrDuplicateApplication):
			c.JSON(http.StatusBadRequest, gin.H{"message": errAlreadyApplied})
		default:
			h.logger.Error("apply", "job_id", req.JobID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, app)
}

// GET /api/applications/my-applications — job seekers only.
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims.Role != domain.RoleJobSeeker {
		c.JSON(http.StatusForbidden, gin.H{"message": errUnauthorized})
		return
	}
	applicantID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
		return
	}

	apps, err := h.apps.MyApplications(c.Request.Context(), applicantID)
	if err != nil {
		h.logger.Error("my applications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, apps)
}

// GET /api/applications/job/:jobId — recruiters only, and only for jobs
// they own. Non-ownership and a missing job answer identically.
func (h *ApplicationHandler) ApplicantsForJob(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims.Role != domain.RoleRecruiter {
		c.JSON(http.StatusForbidden, gin.H{"message": errUnauthorized})
		return
	}
	recruiterID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
		return
	}

	apps, err := h.apps.ApplicantsForJob(c.Request.Context(), c.Param("jobId"), recruiterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotJobOwner) {
			c.JSON(http.StatusForbidden, gin.H{"message": errUnauthorized})
			return
		}
		h.logger.Error("applicants for job", "job_id", c.Param("jobId"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, apps)
}
