package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
	orderactivities "github.com/spicehouse/storefront-api/internal/durable/temporal/activities/ordering"
)

// RunOrderPlacementSequence executes the single transactional activity that
// places an order. The whole placement stays inside one activity so the
// customer upsert and the order insert keep their shared transaction.
func RunOrderPlacementSequence(ctx workflow.Context, input types.PlaceOrderInput) (*types.PlacementProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "customerPhone", input.CustomerPhone)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var projection types.PlacementProjection
	err := workflow.ExecuteActivity(ctx, orderactivities.PersistOrderActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("order placement sequence failed", "customerPhone", input.CustomerPhone, "error", err)
		return nil, err
	}
	if projection.Order != nil {
		logger.Info("order placement sequence completed", "orderId", projection.Order.Entity.ID)
	} else {
		logger.Info("order placement sequence completed")
	}
	return &projection, nil
}
