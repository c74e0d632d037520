package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error

	// GetByVerificationToken returns the user holding an unexpired verification token.
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	// GetByResetToken returns the user holding an unexpired password reset token.
	GetByResetToken(ctx context.Context, token string) (*User, error)

	SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error
	MarkVerified(ctx context.Context, id string) error
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	// UpdatePassword replaces the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{
		pool: pool,
	}
}

const userColumns = `
	id, name, email, password_hash, role, avatar, verified,
	verification_token, verification_expires, reset_token, reset_expires, created_at
`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Avatar,
		&u.Verified,
		&u.VerificationToken,
		&u.VerificationExpires,
		&u.ResetToken,
		&u.ResetExpires,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user failed: %w", err)
	}
	return &u, nil
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM public.users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM public.users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxUserRepository) Create(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO public.users (name, email, password_hash, role, verified, verification_token, verification_expires)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.Verified,
		u.VerificationToken,
		u.VerificationExpires,
	).Scan(&u.ID, &u.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create user failed: %w", err)
	}

	return nil
}

func (r *pgxUserRepository) GetByVerificationToken(ctx context.Context, token string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM public.users
		WHERE verification_token = $1 AND verification_expires > now()
	`
	return scanUser(r.pool.QueryRow(ctx, query, token))
}

func (r *pgxUserRepository) GetByResetToken(ctx context.Context, token string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM public.users
		WHERE reset_token = $1 AND reset_expires > now()
	`
	return scanUser(r.pool.QueryRow(ctx, query, token))
}

func (r *pgxUserRepository) SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error {
	const query = `
		UPDATE public.users
		SET verification_token = $1, verification_expires = $2
		WHERE id = $3
	`

	ct, err := r.pool.Exec(ctx, query, token, expires, id)
	if err != nil {
		return fmt.Errorf("set verification token failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) MarkVerified(ctx context.Context, id string) error {
	const query = `
		UPDATE public.users
		SET verified = true, verification_token = NULL, verification_expires = NULL
		WHERE id = $1
	`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark verified failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	const query = `
		UPDATE public.users
		SET reset_token = $1, reset_expires = $2
		WHERE id = $3
	`

	ct, err := r.pool.Exec(ctx, query, token, expires, id)
	if err != nil {
		return fmt.Errorf("set reset token failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
		UPDATE public.users
		SET password_hash = $1, reset_token = NULL, reset_expires = NULL
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
