package mapper

import (
	"time"

	"github.com/spicehouse/storefront-api/internal/domains/catalog/application/types"
)

// MenuItemRequest captures an inbound create/update payload.
type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category" binding:"required"`
	ImageURL    string  `json:"imageUrl"`
	Available   *bool   `json:"available"`
}

// MenuItem is the HTTP representation of a catalog entry.
type MenuItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToMenuItemInput maps a transport request into the application command.
func ToMenuItemInput(payload MenuItemRequest) types.MenuItemInput {
	return types.MenuItemInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		ImageURL:    payload.ImageURL,
		Available:   payload.Available,
	}
}

// FromProjection maps a menu item projection into its transport shape.
func FromProjection(p *types.MenuItemProjection) MenuItem {
	return MenuItem{
		ID:          p.Entity.ID,
		Name:        p.Entity.Name,
		Description: p.Entity.Description,
		Price:       p.Entity.Price,
		Category:    string(p.Entity.Category),
		ImageURL:    p.Entity.ImageURL,
		Available:   p.Entity.Available,
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps a slice of projections preserving order.
func FromProjectionList(list []*types.MenuItemProjection) []MenuItem {
	items := make([]MenuItem, 0, len(list))
	for _, p := range list {
		items = append(items, FromProjection(p))
	}
	return items
}
