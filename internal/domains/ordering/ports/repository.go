package ports

import (
	"context"
	"errors"
	"time"

	"github.com/spicehouse/storefront-api/internal/domains/ordering/domain"
	"github.com/spicehouse/storefront-api/internal/shared/projection"
)

var (
	// ErrNotFound signals a missing order.
	ErrNotFound = errors.New("order not found")
	// ErrCustomerNotFound signals that no customer owns the queried phone.
	ErrCustomerNotFound = errors.New("customer not found")
)

// OrderWithCustomer pairs an order with the customer who placed it.
type OrderWithCustomer struct {
	Order    *projection.Projection[*domain.Order]
	Customer *projection.Projection[*domain.Customer]
}

// Repository persists the customer directory and the order ledger. They share
// one backing store so PlaceOrder can cover both inside a single transaction.
type Repository interface {
	// PlaceOrder atomically finds-or-creates the customer for the
	// placement's phone (renaming an existing customer when the submitted
	// name differs) and inserts the pending order. Nothing persists when
	// any step fails.
	PlaceOrder(ctx context.Context, placement domain.Placement) (*OrderWithCustomer, error)
	// GetOrderByID loads an order and its customer.
	GetOrderByID(ctx context.Context, id int64) (*OrderWithCustomer, error)
	// FindOrdersByPhone returns all orders owned by the customer with the
	// given phone, newest-created-first. ErrCustomerNotFound when no
	// customer owns the phone.
	FindOrdersByPhone(ctx context.Context, phone string) ([]*projection.Projection[*domain.Order], error)
	// UpdateOrderStatus performs the single-row status write.
	UpdateOrderStatus(ctx context.Context, id int64, status domain.Status, pickupTime *time.Time) (*projection.Projection[*domain.Order], error)
}
