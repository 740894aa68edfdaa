package types

import (
	"github.com/spicehouse/storefront-api/internal/domains/catalog/domain"
	"github.com/spicehouse/storefront-api/internal/shared/projection"
)

// MenuItemProjection transports a menu item with persistence metadata.
type MenuItemProjection = projection.Projection[*domain.MenuItem]

// MenuItemInput carries a create or update request for a catalog entry.
// Available is a pointer so updates can distinguish "leave as is" from an
// explicit false.
type MenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Available   *bool
}
