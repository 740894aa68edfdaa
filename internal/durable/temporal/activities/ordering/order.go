package ordering

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/spicehouse/storefront-api/internal/domains/ordering/application"
	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
	orderingports "github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
)

// PersistOrderActivityName runs the full placement unit against the ledger.
const PersistOrderActivityName = "ordering.activities.PersistOrder"

// InvalidOrderInputErrorType tags validation failures crossing the activity
// boundary so the workflow starter can map them back to a client error.
const InvalidOrderInputErrorType = "InvalidOrderInput"

// Activities groups activities that operate on the ordering bounded context.
type Activities struct {
	service orderingports.Service
}

// NewActivities wires the ordering service into the Temporal activities bundle.
func NewActivities(service orderingports.Service) *Activities {
	return &Activities{service: service}
}

// PersistOrder places an order and returns the placement projection. Validation
// failures never heal on retry, so they are marked non-retryable; an
// unavailable ledger stays retryable because the gate may open between
// attempts.
func (a *Activities) PersistOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized")
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "customerPhone", input.CustomerPhone)
	projection, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PersistOrder activity failed", "customerPhone", input.CustomerPhone, "error", err)
		if errors.Is(err, application.ErrInvalidInput) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), InvalidOrderInputErrorType, err)
		}
		return nil, err
	}
	logger.Info("PersistOrder activity completed",
		"orderId", projection.Order.Entity.ID,
		"customerId", projection.Order.Entity.CustomerID)
	return projection, nil
}
