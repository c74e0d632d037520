package ground

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, g *Ground) error
	GetByID(ctx context.Context, id string) (*Ground, error)
	// List returns grounds newest first. When activeOnly is true, inactive
	// grounds are filtered out.
	List(ctx context.Context, activeOnly bool) ([]*Ground, error)
	Update(ctx context.Context, g *Ground) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var groundColumns = []string{
	"g.id", "g.name", "g.description", "g.price",
	"g.opening_time", "g.closing_time", "g.is_24x7",
	"g.address", "g.city", "g.state", "g.pincode", "g.landmark",
	"g.gallery", "g.cover", "g.created_by", "u.name",
	"g.is_active", "g.created_at", "g.updated_at",
}

func scanGround(row pgx.Row) (*Ground, error) {
	var g Ground
	if err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.Price,
		&g.OpeningTime, &g.ClosingTime, &g.Is24x7,
		&g.Location.Address, &g.Location.City, &g.Location.State, &g.Location.Pincode, &g.Location.Landmark,
		&g.Gallery, &g.Cover, &g.CreatedBy, &g.CreatedByName,
		&g.IsActive, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan ground failed: %w", err)
	}
	return &g, nil
}

func (r *pgxRepository) Create(ctx context.Context, g *Ground) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.grounds").
		Columns(
			"name", "description", "price",
			"opening_time", "closing_time", "is_24x7",
			"address", "city", "state", "pincode", "landmark",
			"gallery", "cover", "created_by", "is_active",
		).
		Values(
			g.Name, g.Description, g.Price,
			g.OpeningTime, g.ClosingTime, g.Is24x7,
			g.Location.Address, g.Location.City, g.Location.State, g.Location.Pincode, g.Location.Landmark,
			g.Gallery, g.Cover, g.CreatedBy, g.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create ground query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Ground, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(groundColumns...).
		From("public.grounds g").
		LeftJoin("public.users u ON g.created_by = u.id").
		Where(squirrel.Eq{"g.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get ground query failed: %w", err)
	}

	return scanGround(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, activeOnly bool) ([]*Ground, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(groundColumns...).
		From("public.grounds g").
		LeftJoin("public.users u ON g.created_by = u.id").
		OrderBy("g.created_at DESC")

	if activeOnly {
		query = query.Where(squirrel.Eq{"g.is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list grounds query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list grounds failed: %w", err)
	}
	defer rows.Close()

	var grounds []*Ground
	for rows.Next() {
		g, err := scanGround(rows)
		if err != nil {
			return nil, err
		}
		grounds = append(grounds, g)
	}

	return grounds, nil
}

func (r *pgxRepository) Update(ctx context.Context, g *Ground) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.grounds").
		Set("name", g.Name).
		Set("description", g.Description).
		Set("price", g.Price).
		Set("opening_time", g.OpeningTime).
		Set("closing_time", g.ClosingTime).
		Set("is_24x7", g.Is24x7).
		Set("address", g.Location.Address).
		Set("city", g.Location.City).
		Set("state", g.Location.State).
		Set("pincode", g.Location.Pincode).
		Set("landmark", g.Location.Landmark).
		Set("gallery", g.Gallery).
		Set("cover", g.Cover).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": g.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update ground query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update ground failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetActive(ctx context.Context, id string, active bool) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.grounds").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set active query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set ground active failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.grounds").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete ground query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete ground failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
