package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/udanya23/job-portal/internal/domain"
	"github.com/udanya23/job-portal/internal/transport/http/middleware"
	"github.com/udanya23/job-portal/internal/usecase"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	testJWTKey = []byte("test-jwt-secret-at-least-32-chars!!")
)

// signToken mints a session token the way the login flow does.
func signToken(t *testing.T, claims domain.Claims) string {
	t.Helper()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testJWTKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

type fakeAuth struct {
	sendOTP        func(ctx context.Context, email string, role domain.Role) error
	verifyOTP      func(ctx context.Context, email, otp string, role domain.Role) error
	register       func(ctx context.Context, in usecase.RegisterInput) error
	login          func(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	forgotPassword func(ctx context.Context, email string) (*domain.User, error)
	verifyResetOTP func(ctx context.Context, email, otp string, role domain.Role) error
	resetPassword  func(ctx context.Context, email, otp, newPassword string, role domain.Role) error
}

func (f *fakeAuth) SendOTP(ctx context.Context, email string, role domain.Role) error {
	return f.sendOTP(ctx, email, role)
}

func (f *fakeAuth) VerifyOTP(ctx context.Context, email, otp string, role domain.Role) error {
	return f.verifyOTP(ctx, email, otp, role)
}

func (f *fakeAuth) Register(ctx context.Context, in usecase.RegisterInput) error {
	return f.register(ctx, in)
}

func (f *fakeAuth) Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
	return f.login(ctx, email, password, role)
}

func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) (*domain.User, error) {
	return f.forgotPassword(ctx, email)
}

func (f *fakeAuth) VerifyResetOTP(ctx context.Context, email, otp string, role domain.Role) error {
	return f.verifyResetOTP(ctx, email, otp, role)
}

func (f *fakeAuth) ResetPassword(ctx context.Context, email, otp, newPassword string, role domain.Role) error {
	return f.resetPassword(ctx, email, otp, newPassword, role)
}

func newAuthRouter(fake *fakeAuth) *gin.Engine {
	h := NewAuthHandler(fake, testLogger)
	r := gin.New()
	auth := r.Group("/api/auth")
	{
		auth.POST("/send-otp", h.SendOTP)
		auth.POST("/verify-otp", h.VerifyOTP)
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/verify-reset-otp", h.VerifyResetOTP)
		auth.POST("/reset-password", h.ResetPassword)
	}
	r.GET("/api/protected/profile", middleware.Auth(testJWTKey), h.Profile)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSendOTP_OK(t *testing.T) {
	var gotEmail string
	var gotRole domain.Role
	r := newAuthRouter(&fakeAuth{
		sendOTP: func(_ context.Context, email string, role domain.Role) error {
			gotEmail, gotRole = email, role
			return nil
		},
	})

	rec := postJSON(r, "/api/auth/send-otp", `{"email":"a@b.com","role":"jobseeker"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotEmail != "a@b.com" || gotRole != domain.RoleJobSeeker {
		t.Errorf("usecase got (%q, %q)", gotEmail, gotRole)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "OTP sent successfully to your email" {
		t.Errorf("message = %q", msg)
	}
}

func TestSendOTP_InvalidRole(t *testing.T) {
	r := newAuthRouter(&fakeAuth{})
	rec := postJSON(r, "/api/auth/send-otp", `{"email":"a@b.com","role":"admin"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != errInvalidRole {
		t.Errorf("message = %q, want %q", msg, errInvalidRole)
	}
}

func TestSendOTP_MissingEmail(t *testing.T) {
	r := newAuthRouter(&fakeAuth{})
	rec := postJSON(r, "/api/auth/send-otp", `{"role":"jobseeker"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSendOTP_AlreadyRegistered(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		sendOTP: func(_ context.Context, _ string, _ domain.Role) error {
			return domain.ErrAlreadyRegistered
		},
	})
	rec := postJSON(r, "/api/auth/send-otp", `{"email":"a@b.com","role":"jobseeker"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != errAlreadyRegistered {
		t.Errorf("message = %q, want %q", msg, errAlreadyRegistered)
	}
}

func TestSendOTP_DeliveryFailure(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		sendOTP: func(_ context.Context, _ string, _ domain.Role) error {
			return errors.New("smtp down")
		},
	})
	rec := postJSON(r, "/api/auth/send-otp", `{"email":"a@b.com","role":"jobseeker"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != errOTPDelivery {
		t.Errorf("message = %q, want %q", msg, errOTPDelivery)
	}
}

func TestVerifyOTP_InvalidCode(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		verifyOTP: func(_ context.Context, _, _ string, _ domain.Role) error {
			return domain.ErrOTPInvalid
		},
	})
	rec := postJSON(r, "/api/auth/verify-otp", `{"email":"a@b.com","otp":"12345","role":"jobseeker"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != errOTPInvalid {
		t.Errorf("message = %q, want %q", msg, errOTPInvalid)
	}
}

func TestVerifyOTP_UnknownUser(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		verifyOTP: func(_ context.Context, _, _ string, _ domain.Role) error {
			return domain.ErrUserNotFound
		},
	})
	rec := postJSON(r, "/api/auth/verify-otp", `{"email":"a@b.com","otp":"12345","role":"jobseeker"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != errUserNotFound {
		t.Errorf("message = %q, want %q", msg, errUserNotFound)
	}
}

func TestRegister_NotVerified(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		register: func(_ context.Context, _ usecase.RegisterInput) error {
			return domain.ErrNotVerified
		},
	})
	body := `{"email":"a@b.com","password":"secret1","role":"jobseeker","name":"A","mobileNumber":"1","address":"x","gender":"Other"}`
	rec := postJSON(r, "/api/auth/register", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != errVerifyEmailFirst {
		t.Errorf("message = %q, want %q", msg, errVerifyEmailFirst)
	}
}

func TestRegister_JobSeekerMissingAddress(t *testing.T) {
	r := newAuthRouter(&fakeAuth{})
	body := `{"email":"a@b.com","password":"secret1","role":"jobseeker","name":"A","mobileNumber":"1"}`
	rec := postJSON(r, "/api/auth/register", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegister_RecruiterMissingCompany(t *testing.T) {
	r := newAuthRouter(&fakeAuth{})
	body := `{"email":"a@b.com","password":"secret1","role":"recruiter","name":"R","mobileNumber":"1"}`
	rec := postJSON(r, "/api/auth/register", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	r := newAuthRouter(&fakeAuth{})
	body := `{"email":"a@b.com","password":"abc","role":"jobseeker","name":"A","mobileNumber":"1","address":"x","gender":"Other"}`
	rec := postJSON(r, "/api/auth/register", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegister_Created(t *testing.T) {
	var got usecase.RegisterInput
	r := newAuthRouter(&fakeAuth{
		register: func(_ context.Context, in usecase.RegisterInput) error {
			got = in
			return nil
		},
	})
	body := `{"email":"a@b.com","password":"secret1","role":"recruiter","name":"R","mobileNumber":"1","companyName":"Acme","companyAddress":"HQ"}`
	rec := postJSON(r, "/api/auth/register", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got.CompanyName != "Acme" || got.Role != domain.RoleRecruiter {
		t.Errorf("usecase input = %+v", got)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		login: func(_ context.Context, _, _ string, _ domain.Role) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})
	rec := postJSON(r, "/api/auth/login", `{"email":"a@b.com","password":"wrong","role":"jobseeker"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != errInvalidCredentials {
		t.Errorf("message = %q, want %q", msg, errInvalidCredentials)
	}
}

func TestLogin_NotVerified(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		login: func(_ context.Context, _, _ string, _ domain.Role) (string, *domain.User, error) {
			return "", nil, domain.ErrNotVerified
		},
	})
	rec := postJSON(r, "/api/auth/login", `{"email":"a@b.com","password":"secret1","role":"jobseeker"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestLogin_OK_NeverLeaksPasswordHash(t *testing.T) {
	user := &domain.User{
		ID:           primitive.NewObjectID(),
		Role:         domain.RoleJobSeeker,
		Name:         "A",
		Email:        "a@b.com",
		PasswordHash: "$2a$10$secrethash",
		IsVerified:   true,
	}
	r := newAuthRouter(&fakeAuth{
		login: func(_ context.Context, _, _ string, _ domain.Role) (string, *domain.User, error) {
			return "tok123", user, nil
		},
	})
	rec := postJSON(r, "/api/auth/login", `{"email":"a@b.com","password":"secret1","role":"jobseeker"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["token"] != "tok123" {
		t.Errorf("token = %v", body["token"])
	}
	if strings.Contains(rec.Body.String(), "secrethash") {
		t.Error("response leaks the password hash")
	}
	respUser, _ := body["user"].(map[string]any)
	if respUser["email"] != "a@b.com" || respUser["role"] != "jobseeker" {
		t.Errorf("user = %v", respUser)
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		forgotPassword: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrEmailNotFound
		},
	})
	rec := postJSON(r, "/api/auth/forgot-password", `{"email":"a@b.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != errEmailNotFound {
		t.Errorf("message = %q, want %q", msg, errEmailNotFound)
	}
}

func TestForgotPassword_EchoesMatchedRole(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		forgotPassword: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{Email: email, Role: domain.RoleRecruiter}, nil
		},
	})
	rec := postJSON(r, "/api/auth/forgot-password", `{"email":"a@b.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["role"] != "recruiter" || body["email"] != "a@b.com" {
		t.Errorf("body = %v", body)
	}
}

func TestVerifyResetOTP_Invalid(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		verifyResetOTP: func(_ context.Context, _, _ string, _ domain.Role) error {
			return domain.ErrOTPInvalid
		},
	})
	rec := postJSON(r, "/api/auth/verify-reset-otp", `{"email":"a@b.com","otp":"12345","role":"jobseeker"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestResetPassword_OK(t *testing.T) {
	var gotNew string
	r := newAuthRouter(&fakeAuth{
		resetPassword: func(_ context.Context, _, _, newPassword string, _ domain.Role) error {
			gotNew = newPassword
			return nil
		},
	})
	rec := postJSON(r, "/api/auth/reset-password", `{"email":"a@b.com","otp":"12345","newPassword":"newsecret","role":"jobseeker"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotNew != "newsecret" {
		t.Errorf("new password = %q", gotNew)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Password reset successful" {
		t.Errorf("message = %q", msg)
	}
}

func TestResetPassword_UnknownUser(t *testing.T) {
	r := newAuthRouter(&fakeAuth{
		resetPassword: func(_ context.Context, _, _, _ string, _ domain.Role) error {
			return domain.ErrUserNotFound
		},
	})
	rec := postJSON(r, "/api/auth/reset-password", `{"email":"a@b.com","otp":"12345","newPassword":"newsecret","role":"jobseeker"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestProfile_EchoesClaims(t *testing.T) {
	r := newAuthRouter(&fakeAuth{})
	token := signToken(t, domain.Claims{
		ID: primitive.NewObjectID().Hex(), Email: "a@b.com", Role: domain.RoleJobSeeker, Name: "A",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/protected/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	user, _ := decodeBody(t, rec)["user"].(map[string]any)
	if user["email"] != "a@b.com" || user["name"] != "A" {
		t.Errorf("user = %v", user)
	}
}
