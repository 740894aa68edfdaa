package ports

import (
	"context"

	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
)

// EventPublisher announces committed placements to downstream consumers
// (kitchen displays, notification fan-out). Publishing is best effort: a
// failed publish never unwinds a committed order.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, placement *types.PlacementProjection) error
}
