package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spicehouse/storefront-api/internal/domains/ordering/domain"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
	"github.com/spicehouse/storefront-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory ledger plus customer directory used for tests
// and local development. The single mutex stands in for the transaction
// boundary of the real store.
type Repository struct {
	mu             sync.RWMutex
	customers      map[int64]*storedCustomer
	orders         map[int64]*storedOrder
	nextCustomerID int64
	nextOrderID    int64
	now            func() time.Time
	failPlacement  error
}

type storedCustomer struct {
	customer *domain.Customer
	metadata projection.Metadata
}

type storedOrder struct {
	order    *domain.Order
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		customers:      map[int64]*storedCustomer{},
		orders:         map[int64]*storedOrder{},
		nextCustomerID: 1,
		nextOrderID:    1,
		now:            time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// FailPlacementsWith makes subsequent PlaceOrder calls fail mid-unit,
// simulating a store fault. Nothing is persisted for failed placements.
func (r *Repository) FailPlacementsWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failPlacement = err
}

// CustomerCount reports stored customers, used by rollback assertions.
func (r *Repository) CustomerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.customers)
}

// OrderCount reports stored orders, used by rollback assertions.
func (r *Repository) OrderCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

// PlaceOrder mirrors the transactional find-or-create + insert unit.
func (r *Repository) PlaceOrder(_ context.Context, placement domain.Placement) (*ports.OrderWithCustomer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failPlacement != nil {
		return nil, r.failPlacement
	}

	timestamp := r.now()
	entry := r.findByPhone(placement.CustomerPhone)
	if entry == nil {
		customer, err := domain.NewCustomer(placement.CustomerName, placement.CustomerPhone)
		if err != nil {
			return nil, err
		}
		customer.ID = r.nextCustomerID
		r.nextCustomerID++
		entry = &storedCustomer{
			customer: customer,
			metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
		}
		r.customers[customer.ID] = entry
	} else if entry.customer.Name != placement.CustomerName {
		if err := entry.customer.Rename(placement.CustomerName); err != nil {
			return nil, err
		}
		entry.metadata.UpdatedAt = timestamp
	}

	order := placement.NewOrder(entry.customer.ID)
	order.ID = r.nextOrderID
	r.nextOrderID++
	stored := &storedOrder{
		order:    order,
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	r.orders[order.ID] = stored

	return &ports.OrderWithCustomer{
		Order:    orderCopy(stored),
		Customer: customerCopy(entry),
	}, nil
}

// GetOrderByID fetches an order and its owning customer.
func (r *Repository) GetOrderByID(_ context.Context, id int64) (*ports.OrderWithCustomer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	result := &ports.OrderWithCustomer{Order: orderCopy(stored)}
	if owner, ok := r.customers[stored.order.CustomerID]; ok {
		result.Customer = customerCopy(owner)
	}
	return result, nil
}

// FindOrdersByPhone returns the customer's orders newest-created-first.
func (r *Repository) FindOrdersByPhone(_ context.Context, phone string) ([]*projection.Projection[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry := r.findByPhone(phone)
	if entry == nil {
		return nil, ports.ErrCustomerNotFound
	}
	var list []*projection.Projection[*domain.Order]
	for _, stored := range r.orders {
		if stored.order.CustomerID == entry.customer.ID {
			list = append(list, orderCopy(stored))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Metadata.CreatedAt.Equal(list[j].Metadata.CreatedAt) {
			return list[i].Metadata.CreatedAt.After(list[j].Metadata.CreatedAt)
		}
		return list[i].Entity.ID > list[j].Entity.ID
	})
	return list, nil
}

// UpdateOrderStatus applies the single-row status write.
func (r *Repository) UpdateOrderStatus(_ context.Context, id int64, status domain.Status, pickupTime *time.Time) (*projection.Projection[*domain.Order], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	stored.order.Status = status
	if pickupTime != nil {
		pickup := *pickupTime
		stored.order.PickupTime = &pickup
	}
	stored.metadata.UpdatedAt = r.now()
	return orderCopy(stored), nil
}

func (r *Repository) findByPhone(phone string) *storedCustomer {
	for _, entry := range r.customers {
		if entry.customer.Phone == phone {
			return entry
		}
	}
	return nil
}

func orderCopy(stored *storedOrder) *projection.Projection[*domain.Order] {
	return &projection.Projection[*domain.Order]{
		Entity:   stored.order.Clone(),
		Metadata: stored.metadata,
	}
}

func customerCopy(stored *storedCustomer) *projection.Projection[*domain.Customer] {
	clone := *stored.customer
	return &projection.Projection[*domain.Customer]{
		Entity:   &clone,
		Metadata: stored.metadata,
	}
}
