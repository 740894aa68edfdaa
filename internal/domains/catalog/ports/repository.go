package ports

import (
	"context"
	"errors"

	"github.com/spicehouse/storefront-api/internal/domains/catalog/domain"
	"github.com/spicehouse/storefront-api/internal/shared/projection"
)

// ErrNotFound signals the menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// Repository persists the menu catalog.
type Repository interface {
	Create(ctx context.Context, item *domain.MenuItem) (*projection.Projection[*domain.MenuItem], error)
	Update(ctx context.Context, item *domain.MenuItem) (*projection.Projection[*domain.MenuItem], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.MenuItem], error)
	// List returns items, optionally filtered by category. An empty category
	// returns the full menu.
	List(ctx context.Context, category domain.Category) ([]*projection.Projection[*domain.MenuItem], error)
	Delete(ctx context.Context, id int64) error
}
