package user

import (
	"net/http"
	"time"

	"github.com/turfbook/ground-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrNotVerified        = apperror.New(http.StatusUnauthorized, "please verify your email before logging in")
	ErrAlreadyVerified    = apperror.New(http.StatusBadRequest, "email is already verified")
	ErrInvalidToken       = apperror.New(http.StatusBadRequest, "invalid or expired token")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidEmail       = apperror.New(http.StatusBadRequest, "a valid email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password must be at least 6 characters")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account on the platform.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Avatar       *string
	Verified     bool

	VerificationToken   *string
	VerificationExpires *time.Time
	ResetToken          *string
	ResetExpires        *time.Time

	CreatedAt time.Time
}
