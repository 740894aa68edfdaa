package ports

import (
	"context"

	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
)

// Service exposes the ordering use cases to transports and workflows.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementProjection, error)
	FindOrdersByPhone(ctx context.Context, input types.PhoneQuery) ([]*types.OrderProjection, error)
	GetOrderByID(ctx context.Context, input types.OrderIdentifier) (*types.PlacementProjection, error)
	UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*types.OrderProjection, error)
}
