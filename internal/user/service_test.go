package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turfbook/ground-booking-backend/internal/notify"
)

type memoryRepo struct {
	nextID int
	users  map[string]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*User)}
}

func (r *memoryRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByVerificationToken(ctx context.Context, token string) (*User, error) {
	now := time.Now()
	for _, u := range r.users {
		if u.VerificationToken != nil && *u.VerificationToken == token &&
			u.VerificationExpires != nil && u.VerificationExpires.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) GetByResetToken(ctx context.Context, token string) (*User, error) {
	now := time.Now()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetExpires != nil && u.ResetExpires.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.VerificationToken = &token
	u.VerificationExpires = &expires
	return nil
}

func (r *memoryRepo) MarkVerified(ctx context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Verified = true
	u.VerificationToken = nil
	u.VerificationExpires = nil
	return nil
}

func (r *memoryRepo) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.ResetToken = &token
	u.ResetExpires = &expires
	return nil
}

func (r *memoryRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetExpires = nil
	return nil
}

// plainHasher keeps tests free of bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// capturingMailer records the tokens handed to it.
type capturingMailer struct {
	verificationTokens []string
	resetTokens        []string
}

func (m *capturingMailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	m.verificationTokens = append(m.verificationTokens, token)
	return nil
}

func (m *capturingMailer) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	m.resetTokens = append(m.resetTokens, token)
	return nil
}

func (m *capturingMailer) SendBookingReceipt(ctx context.Context, to string, ev notify.BookingConfirmedEvent) error {
	return nil
}

func newTestService() (Service, *memoryRepo, *capturingMailer) {
	repo := newMemoryRepo()
	mailer := &capturingMailer{}
	return NewService(repo, plainHasher{}, mailer), repo, mailer
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unverified user and sends token", func(t *testing.T) {
		svc, _, mailer := newTestService()

		u, err := svc.Register(ctx, "Asha", "Asha@Example.com ", "secret1")
		require.NoError(t, err)

		assert.Equal(t, "asha@example.com", u.Email)
		assert.Equal(t, RoleUser, u.Role)
		assert.False(t, u.Verified)
		require.Len(t, mailer.verificationTokens, 1)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Register(ctx, " ", "a@b.com", "secret1")
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = svc.Register(ctx, "Asha", "not-an-email", "secret1")
		assert.ErrorIs(t, err, ErrInvalidEmail)

		_, err = svc.Register(ctx, "Asha", "a@b.com", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Register(ctx, "Asha", "a@b.com", "secret1")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Asha Again", "A@B.com", "secret2")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestLoginAndVerification(t *testing.T) {
	ctx := context.Background()
	svc, _, mailer := newTestService()

	_, err := svc.Register(ctx, "Asha", "a@b.com", "secret1")
	require.NoError(t, err)

	t.Run("unverified user cannot log in", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@b.com", "secret1")
		assert.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("wrong password is a credential error even when unverified", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@b.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("verify then log in", func(t *testing.T) {
		u, err := svc.VerifyEmail(ctx, mailer.verificationTokens[0])
		require.NoError(t, err)
		assert.True(t, u.Verified)

		got, err := svc.Login(ctx, "a@b.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("bogus token", func(t *testing.T) {
		_, err := svc.VerifyEmail(ctx, "bogus")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "missing@b.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	svc, _, mailer := newTestService()

	_, err := svc.Register(ctx, "Asha", "a@b.com", "secret1")
	require.NoError(t, err)
	_, err = svc.VerifyEmail(ctx, mailer.verificationTokens[0])
	require.NoError(t, err)

	t.Run("unknown email pretends success", func(t *testing.T) {
		assert.NoError(t, svc.ForgotPassword(ctx, "missing@b.com"))
		assert.Empty(t, mailer.resetTokens)
	})

	t.Run("full reset flow", func(t *testing.T) {
		require.NoError(t, svc.ForgotPassword(ctx, "a@b.com"))
		require.Len(t, mailer.resetTokens, 1)

		require.NoError(t, svc.ResetPassword(ctx, mailer.resetTokens[0], "newsecret"))

		_, err := svc.Login(ctx, "a@b.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "a@b.com", "newsecret")
		assert.NoError(t, err)
	})

	t.Run("reset token is single use", func(t *testing.T) {
		err := svc.ResetPassword(ctx, mailer.resetTokens[0], "another-pass")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("short new password", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "whatever", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}
