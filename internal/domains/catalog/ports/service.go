package ports

import (
	"context"

	"github.com/spicehouse/storefront-api/internal/domains/catalog/application/types"
)

// Service exposes the menu catalog use cases.
type Service interface {
	CreateMenuItem(ctx context.Context, input types.MenuItemInput) (*types.MenuItemProjection, error)
	UpdateMenuItem(ctx context.Context, id int64, input types.MenuItemInput) (*types.MenuItemProjection, error)
	GetMenuItem(ctx context.Context, id int64) (*types.MenuItemProjection, error)
	ListMenu(ctx context.Context, category string) ([]*types.MenuItemProjection, error)
	DeleteMenuItem(ctx context.Context, id int64) error
}
