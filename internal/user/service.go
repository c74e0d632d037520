package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/turfbook/ground-booking-backend/internal/auth"
	"github.com/turfbook/ground-booking-backend/internal/notify"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
	minPasswordLength    = 6
)

// Service defines business logic related to users and account lifecycle.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	VerifyEmail(ctx context.Context, token string) (*User, error)
	ResendVerification(ctx context.Context, email string) error
	// ForgotPassword issues a reset token. An unknown email is NOT reported
	// as an error to avoid account probing.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	mailer notify.Mailer
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, mailer notify.Mailer) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		mailer: mailer,
	}
}

func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	cleanName := strings.TrimSpace(name)
	if cleanName == "" {
		return nil, ErrNameRequired
	}

	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || !strings.Contains(cleanEmail, "@") {
		return nil, ErrInvalidEmail
	}

	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := newSecureToken()
	if err != nil {
		return nil, err
	}
	expires := time.Now().UTC().Add(verificationTokenTTL)

	u := &User{
		Name:                cleanName,
		Email:               cleanEmail,
		PasswordHash:        hash,
		Role:                RoleUser,
		Verified:            false,
		VerificationToken:   &token,
		VerificationExpires: &expires,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailAlreadyUsed) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Best effort: registration succeeds even if the email cannot be sent;
	// the user can request a new verification link.
	if err := s.mailer.SendVerificationEmail(ctx, u.Email, u.Name, token); err != nil {
		log.Printf("failed to send verification email to %s: %v", u.Email, err)
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.Verified {
		return nil, ErrNotVerified
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) VerifyEmail(ctx context.Context, token string) (*User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidToken
	}

	u, err := s.repo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up verification token: %w", err)
	}

	if err := s.repo.MarkVerified(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}

	u.Verified = true
	u.VerificationToken = nil
	u.VerificationExpires = nil
	return u, nil
}

func (s *service) ResendVerification(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	if u.Verified {
		return ErrAlreadyVerified
	}

	token, err := newSecureToken()
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(verificationTokenTTL)

	if err := s.repo.SetVerificationToken(ctx, u.ID, token, expires); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	return s.mailer.SendVerificationEmail(ctx, u.Email, u.Name, token)
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Pretend success for unknown accounts.
			return nil
		}
		return fmt.Errorf("failed to fetch user by email: %w", err)
	}

	token, err := newSecureToken()
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(resetTokenTTL)

	if err := s.repo.SetResetToken(ctx, u.ID, token, expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	return s.mailer.SendPasswordResetEmail(ctx, u.Email, u.Name, token)
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidToken
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	u, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// newSecureToken returns a 32-byte random token as hex.
func newSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
