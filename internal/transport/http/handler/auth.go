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
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	SendOTP(ctx context.Context, email string, role domain.Role) error
	VerifyOTP(ctx context.Context, email, otp string, role domain.Role) error
	Register(ctx context.Context, in usecase.RegisterInput) error
	Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) (*domain.User, error)
	VerifyResetOTP(ctx context.Context, email, otp string, role domain.Role) error
	ResetPassword(ctx context.Context, email, otp, newPassword string, role domain.Role) error
}

type AuthHandler struct {
	auth   authUsecaser
	logger *slog.Logger
}

func NewAuthHandler(auth authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger.With("component", "auth_handler"),
	}
}

// userResponse is the public projection of a user. The password hash and
// OTP state never leave the server.
type userResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	MobileNumber   string `json:"mobileNumber,omitempty"`
	Address        string `json:"address,omitempty"`
	Gender         string `json:"gender,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	CompanyAddress string `json:"companyAddress,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		MobileNumber:   u.MobileNumber,
		Address:        u.Address,
		Gender:         u.Gender,
		CompanyName:    u.CompanyName,
		CompanyAddress: u.CompanyAddress,
	}
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"  binding:"required"`
}

// POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidRole})
		return
	}

	if err := h.auth.SendOTP(c.Request.Context(), req.Email, role); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			c.JSON(http.StatusConflict, gin.H{"message": errAlreadyRegistered})
			return
		}
		h.logger.Error("send otp", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errOTPDelivery})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully to your email"})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp"   binding:"required"`
	Role  string `json:"role"  binding:"required"`
}

// POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidRole})
		return
	}

	if err := h.auth.VerifyOTP(c.Request.Context(), req.Email, req.OTP, role); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"message": errOTPInvalid})
		default:
			h.logger.Error("verify otp", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
}

type registerRequest struct {
	Email        string `json:"email"        binding:"required,email"`
	Password     string `json:"password"     binding:"required,min=6"`
	Role         string `json:"role"         binding:"required"`
	Name         string `json:"name"         binding:"required"`
	MobileNumber string `json:"mobileNumber" binding:"required"`

	Address string `json:"address" binding:"required_if=Role jobseeker"`
	Gender  string `json:"gender"  binding:"required_if=Role jobseeker,omitempty,oneof=Male Female Other"`

	CompanyName    string `json:"companyName"    binding:"required_if=Role recruiter"`
	CompanyAddress string `json:"companyAddress" binding:"required_if=Role recruiter"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidRole})
		return
	}

	err = h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Role:           role,
		Name:           req.Name,
		MobileNumber:   req.MobileNumber,
		Address:        req.Address,
		Gender:         req.Gender,
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotVerified) {
			c.JSON(http.StatusBadRequest, gin.H{"message": errVerifyEmailFirst})
			return
		}
		h.logger.Error("register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"     binding:"required"`
}

// POST /api/auth/login
// Unknown email and wrong password produce the same 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidRole})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": errInvalidCredentials})
		case errors.Is(err, domain.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"message": errNotVerifiedLogin})
		default:
			h.logger.Error("login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    toUserResponse(user),
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/auth/forgot-password
// Replies with the role the email matched so the client can continue the
// reset flow without asking the user.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.auth.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errEmailNotFound})
			return
		}
		h.logger.Error("forgot password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errOTPDelivery})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent successfully to your email",
		"email":   user.Email,
		"role":    user.Role,
	})
}

type verifyResetOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp"   binding:"required"`
	Role  string `json:"role"  binding:"required"`
}

// POST /api/auth/verify-reset-otp
func (h *AuthHandler) VerifyResetOTP(c *gin.Context) {
	var req verifyResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidRole})
		return
	}

	if err := h.auth.VerifyResetOTP(c.Request.Context(), req.Email, req.OTP, role); err != nil {
		h.respondResetError(c, err, "verify reset otp")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"       binding:"required,email"`
	OTP         string `json:"otp"         binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
	Role        string `json:"role"        binding:"required"`
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidRole})
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword, role); err != nil {
		h.respondResetError(c, err, "reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

func (h *AuthHandler) respondResetError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
	case errors.Is(err, domain.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": errOTPInvalid})
	default:
		h.logger.Error(op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
	}
}

// GET /api/protected/profile
// Echoes the session claims — a smoke test for the access guard.
func (h *AuthHandler) Profile(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Protected data accessed successfully",
		"user": gin.H{
			"id":    claims.ID,
			"email": claims.Email,
			"role":  claims.Role,
			"name":  claims.Name,
		},
	})
}
