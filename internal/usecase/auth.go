package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/udanya23/job-portal/internal/domain"
	"github.com/udanya23/job-portal/internal/email"
	"github.com/udanya23/job-portal/internal/metrics"
	"github.com/udanya23/job-portal/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultOTPTTL     = 10 * time.Minute
	defaultSessionTTL = 7 * 24 * time.Hour
	bcryptCost        = 10
)

type AuthUsecase struct {
	users      repository.UserRepository
	email      email.Sender
	jwtKey     []byte
	otpTTL     time.Duration
	sessionTTL time.Duration
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, jwtKey []byte) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		email:      emailSender,
		jwtKey:     jwtKey,
		otpTTL:     defaultOTPTTL,
		sessionTTL: defaultSessionTTL,
	}
}

// generateOTP draws a 5-digit decimal code uniformly from [10000, 99999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+10000, 10), nil
}

// SendOTP issues a registration OTP for (email, role). If no user exists
// yet, a pending placeholder record is created; the unique email index
// resolves the race between two concurrent first requests.
func (u *AuthUsecase) SendOTP(ctx context.Context, emailAddr string, role domain.Role) error {
	otp, err := generateOTP()
	if err != nil {
		return err
	}
	expires := time.Now().Add(u.otpTTL)

	user, err := u.users.FindByEmail(ctx, role, emailAddr)
	switch {
	case err == nil:
		if user.IsVerified {
			return domain.ErrAlreadyRegistered
		}
		user.VerificationOTP = &otp
		user.OTPExpires = &expires
		if err := u.users.Update(ctx, user); err != nil {
			return fmt.Errorf("store otp: %w", err)
		}
	case errors.Is(err, domain.ErrUserNotFound):
		placeholder := &domain.User{
			Email:           emailAddr,
			Role:            role,
			Status:          domain.StatusPending,
			VerificationOTP: &otp,
			OTPExpires:      &expires,
			CreatedAt:       time.Now().UTC(),
		}
		if err := u.users.Insert(ctx, placeholder); err != nil {
			return fmt.Errorf("create pending user: %w", err)
		}
	default:
		return fmt.Errorf("find user: %w", err)
	}

	subject, body := email.OTPBody(otp, "Email Verification")
	if err := u.email.Send(ctx, emailAddr, subject, body); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}

	metrics.OTPIssuedTotal.WithLabelValues("registration").Inc()
	return nil
}

// VerifyOTP checks the registration code and marks the user verified. The
// code is single-use: it is cleared here, so a second verify needs a fresh
// send-otp round trip.
func (u *AuthUsecase) VerifyOTP(ctx context.Context, emailAddr, otp string, role domain.Role) error {
	user, err := u.users.FindByEmail(ctx, role, emailAddr)
	if err != nil {
		return err
	}

	if !otpMatches(user.VerificationOTP, user.OTPExpires, otp) {
		metrics.OTPVerifiedTotal.WithLabelValues("registration", "rejected").Inc()
		return domain.ErrOTPInvalid
	}

	user.IsVerified = true
	user.Status = domain.StatusVerified
	user.VerificationOTP = nil
	user.OTPExpires = nil
	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	metrics.OTPVerifiedTotal.WithLabelValues("registration", "accepted").Inc()
	return nil
}

type RegisterInput struct {
	Email        string
	Password     string
	Role         domain.Role
	Name         string
	MobileNumber string

	// Job seeker fields.
	Address string
	Gender  string

	// Recruiter fields.
	CompanyName    string
	CompanyAddress string
}

// Register turns a verified placeholder into a full account. Calling it
// again simply overwrites the profile; the verified flag stays true.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) error {
	user, err := u.users.FindByEmail(ctx, in.Role, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrNotVerified
		}
		return err
	}
	if !user.IsVerified {
		return domain.ErrNotVerified
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.Name = in.Name
	user.PasswordHash = string(hash)
	user.MobileNumber = in.MobileNumber
	switch in.Role {
	case domain.RoleJobSeeker:
		user.Address = in.Address
		user.Gender = in.Gender
	case domain.RoleRecruiter:
		user.CompanyName = in.CompanyName
		user.CompanyAddress = in.CompanyAddress
	}
	user.VerificationOTP = nil
	user.OTPExpires = nil
	user.Status = domain.StatusRegistered

	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store registration: %w", err)
	}
	return nil
}

// Login authenticates (email, password, role) and mints a session token.
// Unknown email and wrong password fail identically so callers cannot probe
// which emails are registered.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string, role domain.Role) (string, *domain.User, error) {
	user, err := u.users.FindByEmail(ctx, role, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsVerified {
		metrics.LoginsTotal.WithLabelValues("unverified").Inc()
		return "", nil, domain.ErrNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := domain.Claims{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.sessionTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtKey)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("accepted").Inc()
	return signed, user, nil
}

// ForgotPassword locates the account for the email (job seekers checked
// before recruiters), issues a reset OTP, and mails it. The matched user is
// returned so the caller can tell the client which role to continue with.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, emailAddr string) (*domain.User, error) {
	user, err := u.users.FindByEmailAnyRole(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(u.otpTTL)
	user.ResetPasswordOTP = &otp
	user.ResetPasswordExpires = &expires
	if err := u.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("store reset otp: %w", err)
	}

	subject, body := email.OTPBody(otp, "Password Reset")
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		return nil, fmt.Errorf("send reset otp: %w", err)
	}

	metrics.OTPIssuedTotal.WithLabelValues("reset").Inc()
	return user, nil
}

// VerifyResetOTP re-validates the reset code without consuming it; the code
// must still hold at ResetPassword, which validates once more.
func (u *AuthUsecase) VerifyResetOTP(ctx context.Context, emailAddr, otp string, role domain.Role) error {
	user, err := u.users.FindByEmail(ctx, role, emailAddr)
	if err != nil {
		return err
	}
	if !otpMatches(user.ResetPasswordOTP, user.ResetPasswordExpires, otp) {
		metrics.OTPVerifiedTotal.WithLabelValues("reset", "rejected").Inc()
		return domain.ErrOTPInvalid
	}
	metrics.OTPVerifiedTotal.WithLabelValues("reset", "accepted").Inc()
	return nil
}

// ResetPassword validates the reset code a final time, stores the new
// password hash, and retires both reset fields.
func (u *AuthUsecase) ResetPassword(ctx context.Context, emailAddr, otp, newPassword string, role domain.Role) error {
	user, err := u.users.FindByEmail(ctx, role, emailAddr)
	if err != nil {
		return err
	}
	if !otpMatches(user.ResetPasswordOTP, user.ResetPasswordExpires, otp) {
		return domain.ErrOTPInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.ResetPasswordOTP = nil
	user.ResetPasswordExpires = nil

	if err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}
	return nil
}

// otpMatches requires both a byte-for-byte code match and an unexpired
// deadline; either missing field rejects.
func otpMatches(stored *string, expires *time.Time, supplied string) bool {
	if stored == nil || expires == nil {
		return false
	}
	return *stored == supplied && time.Now().Before(*expires)
}
