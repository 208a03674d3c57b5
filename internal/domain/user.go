package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailNotFound      = errors.New("email not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrAlreadyRegistered  = errors.New("email already registered and verified")
	ErrOTPInvalid         = errors.New("otp is invalid or expired")
	ErrNotVerified        = errors.New("email not verified")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Role selects which collection a user lives in. The set is closed:
// anything other than the two constants fails ParseRole.
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleRecruiter Role = "recruiter"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleJobSeeker, RoleRecruiter:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// Status tracks the signup lifecycle of a user record. A record is created
// in StatusPending the first time an OTP is requested for its email, moves
// to StatusVerified once the OTP is confirmed, and to StatusRegistered when
// the full profile is submitted.
type Status string

const (
	StatusPending    Status = "pending"
	StatusVerified   Status = "verified"
	StatusRegistered Status = "registered"
)

// User is a principal of either role. Role-specific fields are only
// populated for the matching role; OTP fields are pointers so that clearing
// them removes the keys from the stored document entirely.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Role         Role               `bson:"-" json:"role"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	MobileNumber string             `bson:"mobileNumber,omitempty" json:"mobileNumber,omitempty"`

	// Job seeker only.
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Gender  string `bson:"gender,omitempty" json:"gender,omitempty"`

	// Recruiter only.
	CompanyName    string `bson:"companyName,omitempty" json:"companyName,omitempty"`
	CompanyAddress string `bson:"companyAddress,omitempty" json:"companyAddress,omitempty"`

	VerificationOTP      *string    `bson:"verificationOtp,omitempty" json:"-"`
	OTPExpires           *time.Time `bson:"otpExpires,omitempty" json:"-"`
	ResetPasswordOTP     *string    `bson:"resetPasswordOtp,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`

	IsVerified bool      `bson:"isVerified" json:"isVerified"`
	Status     Status    `bson:"status" json:"-"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
