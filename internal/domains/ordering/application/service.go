package application

import (
	"context"
	"strings"
	"time"

	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/domain"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
)

// Service orchestrates the ordering bounded context use cases: order
// placement, history lookup, and status transitions.
type Service struct {
	repo   ports.Repository
	ledger ports.AvailabilityProbe
	events ports.EventPublisher
	policy domain.TransitionPolicy
	now    func() time.Time
}

// Option customizes service construction.
type Option func(*Service)

// WithEventPublisher wires a post-commit publisher for placements.
func WithEventPublisher(pub ports.EventPublisher) Option {
	return func(s *Service) {
		s.events = pub
	}
}

// WithTransitionPolicy overrides the default strict status policy.
func WithTransitionPolicy(policy domain.TransitionPolicy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the ordering service with its dependencies. The
// availability probe is consulted on every placement so catalog browsing
// keeps working while ordering is degraded.
func NewService(repo ports.Repository, ledger ports.AvailabilityProbe, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		ledger: ledger,
		policy: domain.StrictTransitions,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder validates the request, checks the availability gate, then runs
// the find-or-create-customer plus create-order unit atomically.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementProjection, error) {
	placement, err := domain.NewPlacement(
		input.CustomerName,
		input.CustomerPhone,
		toLineItems(input.Items),
		input.TotalAmount,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if s.ledger == nil || !s.ledger.OrderLedgerAvailable() {
		return nil, ErrLedgerUnavailable
	}
	result, err := s.repo.PlaceOrder(ctx, placement)
	if err != nil {
		return nil, mapError(err)
	}
	projection := &types.PlacementProjection{Order: result.Order, Customer: result.Customer}
	if s.events != nil {
		// Best effort: the order is committed, the publisher logs its own failures.
		_ = s.events.OrderPlaced(ctx, projection)
	}
	return projection, nil
}

// FindOrdersByPhone returns the caller's order history, newest first.
func (s *Service) FindOrdersByPhone(ctx context.Context, input types.PhoneQuery) ([]*types.OrderProjection, error) {
	if strings.TrimSpace(input.Phone) == "" {
		return nil, mapError(domain.ErrEmptyCustomerPhone)
	}
	orders, err := s.repo.FindOrdersByPhone(ctx, input.Phone)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// GetOrderByID loads a single order together with its customer.
func (s *Service) GetOrderByID(ctx context.Context, input types.OrderIdentifier) (*types.PlacementProjection, error) {
	result, err := s.repo.GetOrderByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &types.PlacementProjection{Order: result.Order, Customer: result.Customer}, nil
}

// UpdateOrderStatus applies a status transition under the configured policy.
// Completing an order stamps the pickup time.
func (s *Service) UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*types.OrderProjection, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	current, err := s.repo.GetOrderByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	order := current.Order.Entity.Clone()
	if err := order.TransitionTo(status, s.now(), s.policy); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.repo.UpdateOrderStatus(ctx, input.ID, order.Status, order.PickupTime)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func toLineItems(items []types.LineItemInput) []domain.LineItem {
	result := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		result = append(result, domain.LineItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return result
}

var _ ports.Service = (*Service)(nil)
