package events

import (
	"context"

	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
)

var _ ports.EventPublisher = NoopPublisher{}

// NoopPublisher discards placement events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) OrderPlaced(context.Context, *types.PlacementProjection) error { return nil }
