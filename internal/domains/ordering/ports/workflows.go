package ports

import (
	"context"

	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
)

// WorkflowOrchestrator runs the order placement flow, either inline or through
// a durable workflow engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementProjection, error)
}
