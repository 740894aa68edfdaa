package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spicehouse/storefront-api/internal/domains/catalog/domain"
	"github.com/spicehouse/storefront-api/internal/domains/catalog/ports"
	"github.com/spicehouse/storefront-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the menu catalog in PostgreSQL through a pgx pool.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgx-backed catalog repository. The caller owns the
// pool lifecycle.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Migrate applies the catalog schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS menu_items (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL,
			category TEXT NOT NULL,
			image_url TEXT NOT NULL,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

const menuItemColumns = "id, name, description, price, category, image_url, available, created_at, updated_at"

// Create inserts a new catalog entry.
func (r *Repository) Create(ctx context.Context, item *domain.MenuItem) (*projection.Projection[*domain.MenuItem], error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price, category, image_url, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+menuItemColumns,
		item.Name, item.Description, item.Price, string(item.Category), item.ImageURL, item.Available,
	)
	return scanMenuItem(row)
}

// Update replaces an existing catalog entry.
func (r *Repository) Update(ctx context.Context, item *domain.MenuItem) (*projection.Projection[*domain.MenuItem], error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, category = $5, image_url = $6, available = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+menuItemColumns,
		item.ID, item.Name, item.Description, item.Price, string(item.Category), item.ImageURL, item.Available,
	)
	result, err := scanMenuItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	return result, err
}

// GetByID fetches one catalog entry.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.MenuItem], error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`,
		id,
	)
	result, err := scanMenuItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	return result, err
}

// List returns the menu ordered by category then id, optionally filtered.
func (r *Repository) List(ctx context.Context, category domain.Category) ([]*projection.Projection[*domain.MenuItem], error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items ORDER BY category, id`
	args := []any{}
	if category != "" {
		query = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE category = $1 ORDER BY id`
		args = append(args, string(category))
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*projection.Projection[*domain.MenuItem]
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Delete removes a catalog entry.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func scanMenuItem(row pgx.Row) (*projection.Projection[*domain.MenuItem], error) {
	var (
		item     domain.MenuItem
		category string
		metadata projection.Metadata
	)
	if err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &category,
		&item.ImageURL, &item.Available, &metadata.CreatedAt, &metadata.UpdatedAt,
	); err != nil {
		return nil, err
	}
	item.Category = domain.Category(category)
	return &projection.Projection[*domain.MenuItem]{Entity: &item, Metadata: metadata}, nil
}
