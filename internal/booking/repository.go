package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the booking after re-checking for slot conflicts.
	// The conflict check and the insert run in one transaction holding an
	// advisory lock on (ground, date), so concurrent creates for the same
	// ground and day are serialized: at most one of two overlapping
	// requests can commit. A non-empty return value lists the conflicting
	// slots; in that case nothing was written.
	Create(ctx context.Context, b *Booking) ([]string, error)

	GetByID(ctx context.Context, id string) (*Booking, error)

	// BookedSlots returns the union of time slots across all confirmed
	// bookings for the ground on the given day.
	BookedSlots(ctx context.Context, groundID string, date time.Time) ([]string, error)

	// FindConflicting returns the subset of slots already held by confirmed
	// bookings for the ground on the given day. Read-only.
	FindConflicting(ctx context.Context, groundID string, date time.Time, slots []string) ([]string, error)

	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.ground_id", "g.name", "g.city",
	"b.user_id", "u.name", "u.email",
	"b.date", "b.time_slots", "b.status", "b.total_amount",
	"b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.GroundID, &b.GroundName, &b.GroundCity,
		&b.UserID, &b.UserName, &b.UserEmail,
		&b.Date, &b.TimeSlots, &b.Status, &b.TotalAmount,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) ([]string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize check-then-insert per (ground, date). The lock is released
	// automatically at commit/rollback.
	const lockQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	if _, err := tx.Exec(ctx, lockQuery, lockKey(b.GroundID, b.Date)); err != nil {
		return nil, fmt.Errorf("acquire booking lock failed: %w", err)
	}

	conflicts, err := findConflicting(ctx, tx, b.GroundID, b.Date, b.TimeSlots)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("ground_id", "user_id", "date", "time_slots", "status", "total_amount").
		Values(b.GroundID, b.UserID, b.Date, b.TimeSlots, b.Status, b.TotalAmount).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create booking failed: %w", err)
	}
	return nil, nil
}

// lockKey builds the advisory-lock key for a ground and calendar day. The
// key is a plain string parameter; hashing happens server-side in
// hashtextextended.
func lockKey(groundID string, date time.Time) string {
	return groundID + ":" + date.Format("2006-01-02")
}

// querier abstracts pool vs transaction for the conflict lookup.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func findConflicting(ctx context.Context, q querier, groundID string, date time.Time, slots []string) ([]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("time_slots").
		From("public.bookings").
		Where(squirrel.Eq{"ground_id": groundID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": StatusConfirmed}).
		Where("time_slots && ?", slots).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build conflict query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("conflict query failed: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var ts []string
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scan conflict slots failed: %w", err)
		}
		existing = append(existing, ts...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("conflict query failed: %w", err)
	}

	return IntersectSlots(slots, existing), nil
}

func (r *pgxRepository) FindConflicting(ctx context.Context, groundID string, date time.Time, slots []string) ([]string, error) {
	return findConflicting(ctx, r.pool, groundID, date, slots)
}

func (r *pgxRepository) BookedSlots(ctx context.Context, groundID string, date time.Time) ([]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("time_slots").
		From("public.bookings").
		Where(squirrel.Eq{"ground_id": groundID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": StatusConfirmed}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booked slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("booked slots query failed: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var ts []string
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scan booked slots failed: %w", err)
		}
		slots = append(slots, ts...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("booked slots query failed: %w", err)
	}

	return slots, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.grounds g ON b.ground_id = g.id").
		Join("public.users u ON b.user_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	return scanBooking(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.grounds g ON b.ground_id = g.id").
		Join("public.users u ON b.user_id = u.id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list user bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, bookingColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).
		From("public.bookings b").
		Join("public.grounds g ON b.ground_id = g.id").
		Join("public.users u ON b.user_id = u.id")

	if filter.Status != "" && filter.Status != "all" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"u.name": pattern},
			squirrel.ILike{"g.name": pattern},
		})
	}

	query = query.OrderBy("b.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}

	return bookings, total, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
