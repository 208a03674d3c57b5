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

type jobUsecaser interface {
	CreateJob(ctx context.Context, in usecase.CreateJobInput) (*domain.Job, error)
	List(ctx context.Context) ([]usecase.JobWithRecruiter, error)
	GetByID(ctx context.Context, id string) (*usecase.JobWithRecruiter, error)
}

type JobHandler struct {
	jobs   jobUsecaser
	logger *slog.Logger
}

func NewJobHandler(jobs jobUsecaser, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger.With("component", "job_handler")}
}

// GET /api/jobs
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list jobs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GET /api/jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	job, err := h.jobs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errJobNotFound})
			return
		}
		h.logger.Error("get job", "job_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, job)
}

type createJobRequest struct {
	Title        string   `json:"title"        binding:"required"`
	Description  string   `json:"description"  binding:"required"`
	CompanyName  string   `json:"companyName"  binding:"required"`
	Location     string   `json:"location"     binding:"required"`
	Salary       string   `json:"salary"`
	Requirements []string `json:"requirements"`
}

// POST /api/jobs — recruiters only; the owner comes from the session
// claims, never the request body.
func (h *JobHandler) Create(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims.Role != domain.RoleRecruiter {
		c.JSON(http.StatusForbidden, gin.H{"message": errRecruiterOnly})
		return
	}
	recruiterID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	job, err := h.jobs.CreateJob(c.Request.Context(), usecase.CreateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		CompanyName:  req.CompanyName,
		Location:     req.Location,
		Salary:       req.Salary,
		Requirements: req.Requirements,
		Recruiter:    recruiterID,
	})
	if err != nil {
		h.logger.Error("create job", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, job)
}
