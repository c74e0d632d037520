package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
	RecentBookings(ctx context.Context, since time.Time, limit int) ([]RecentBooking, error)
	BookingTrend(ctx context.Context, since time.Time) ([]DayPoint, error)
	TopGrounds(ctx context.Context, since time.Time, limit int) ([]GroundRevenue, error)
	// NewUsers counts customer accounts created since the given time.
	NewUsers(ctx context.Context, since time.Time) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Overview(ctx context.Context) (*Overview, error) {
	const query = `
		SELECT
			(SELECT count(*) FROM public.bookings),
			(SELECT count(*) FROM public.bookings WHERE status = 'confirmed' AND date >= current_date),
			(SELECT count(*) FROM public.grounds),
			(SELECT count(*) FROM public.users WHERE role = 'user'),
			(SELECT coalesce(sum(total_amount), 0) FROM public.bookings WHERE status = 'confirmed')`

	var o Overview
	if err := r.pool.QueryRow(ctx, query).Scan(
		&o.TotalBookings,
		&o.UpcomingBookings,
		&o.TotalGrounds,
		&o.TotalUsers,
		&o.TotalRevenue,
	); err != nil {
		return nil, fmt.Errorf("query overview failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) NewUsers(ctx context.Context, since time.Time) (int64, error) {
	const query = `SELECT count(*) FROM public.users WHERE role = 'user' AND created_at >= $1`

	var n int64
	if err := r.pool.QueryRow(ctx, query, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("query new users failed: %w", err)
	}
	return n, nil
}

func (r *pgxRepository) RecentBookings(ctx context.Context, since time.Time, limit int) ([]RecentBooking, error) {
	const query = `
		SELECT b.id, u.name, g.name, b.date, cardinality(b.time_slots), b.total_amount, b.status, b.created_at
		FROM public.bookings b
		JOIN public.users u ON u.id = b.user_id
		JOIN public.grounds g ON g.id = b.ground_id
		WHERE b.created_at >= $1
		ORDER BY b.created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent bookings failed: %w", err)
	}
	defer rows.Close()

	var items []RecentBooking
	for rows.Next() {
		var rb RecentBooking
		if err := rows.Scan(&rb.ID, &rb.UserName, &rb.GroundName, &rb.Date, &rb.SlotCount, &rb.Total, &rb.Status, &rb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent booking failed: %w", err)
		}
		items = append(items, rb)
	}
	return items, rows.Err()
}

func (r *pgxRepository) BookingTrend(ctx context.Context, since time.Time) ([]DayPoint, error) {
	const query = `
		SELECT date_trunc('day', created_at) AS day,
		       count(*),
		       coalesce(sum(total_amount) FILTER (WHERE status = 'confirmed'), 0)
		FROM public.bookings
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query booking trend failed: %w", err)
	}
	defer rows.Close()

	var points []DayPoint
	for rows.Next() {
		var p DayPoint
		if err := rows.Scan(&p.Day, &p.Bookings, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan trend point failed: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *pgxRepository) TopGrounds(ctx context.Context, since time.Time, limit int) ([]GroundRevenue, error) {
	const query = `
		SELECT g.id, g.name, count(*), coalesce(sum(b.total_amount), 0)
		FROM public.bookings b
		JOIN public.grounds g ON g.id = b.ground_id
		WHERE b.status = 'confirmed' AND b.created_at >= $1
		GROUP BY g.id, g.name
		ORDER BY sum(b.total_amount) DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query top grounds failed: %w", err)
	}
	defer rows.Close()

	var items []GroundRevenue
	for rows.Next() {
		var gr GroundRevenue
		if err := rows.Scan(&gr.GroundID, &gr.GroundName, &gr.Bookings, &gr.Revenue); err != nil {
			return nil, fmt.Errorf("scan ground revenue failed: %w", err)
		}
		items = append(items, gr)
	}
	return items, rows.Err()
}
