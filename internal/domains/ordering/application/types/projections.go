package types

import (
	"github.com/spicehouse/storefront-api/internal/domains/ordering/domain"
	"github.com/spicehouse/storefront-api/internal/shared/projection"
)

// OrderProjection transports an order aggregate with persistence metadata.
type OrderProjection = projection.Projection[*domain.Order]

// CustomerProjection transports a customer with persistence metadata.
type CustomerProjection = projection.Projection[*domain.Customer]

// PlacementProjection is the result of a successful placement: the created
// order plus the (new or reused) customer.
type PlacementProjection struct {
	Order    *OrderProjection
	Customer *CustomerProjection
}
