package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udanya23/job-portal/internal/transport/http/handler"
	"github.com/udanya23/job-portal/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, jobHandler *handler.JobHandler, appHandler *handler.ApplicationHandler, jwtKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Job Portal API is running"})
	})

	auth := r.Group("/api/auth")
	auth.POST("/send-otp", authHandler.SendOTP)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/verify-reset-otp", authHandler.VerifyResetOTP)
	auth.POST("/reset-password", authHandler.ResetPassword)

	authMW := middleware.Auth(jwtKey)

	jobs := r.Group("/api/jobs")
	jobs.GET("", jobHandler.List)
	jobs.GET("/:id", jobHandler.GetByID)
	jobs.POST("", authMW, jobHandler.Create)

	apps := r.Group("/api/applications", authMW)
	apps.POST("/apply", appHandler.Apply)
	apps.GET("/my-applications", appHandler.MyApplications)
	apps.GET("/job/:jobId", appHandler.ApplicantsForJob)

	r.GET("/api/protected/profile", authMW, authHandler.Profile)

	return r
}
