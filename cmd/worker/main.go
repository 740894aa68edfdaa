package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/spicehouse/storefront-api/internal/app/api"
	orderingavailability "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/availability"
	orderingevents "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/events"
	orderingobs "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/observability"
	orderingpostgres "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/persistence/postgres"
	orderingapp "github.com/spicehouse/storefront-api/internal/domains/ordering/application"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/domain"
	orderingports "github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
	orderactivities "github.com/spicehouse/storefront-api/internal/durable/temporal/activities/ordering"
	orderworkflows "github.com/spicehouse/storefront-api/internal/durable/temporal/workflows/ordering"
	"github.com/spicehouse/storefront-api/internal/platform/availability"
	"github.com/spicehouse/storefront-api/internal/platform/migrations"
	platformobservability "github.com/spicehouse/storefront-api/internal/platform/observability"
	platformpostgres "github.com/spicehouse/storefront-api/internal/platform/postgres"
)

// The worker executes placement activities, so unlike the API it refuses to
// start without a reachable order ledger.
func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := api.LoadConfig()

	if cfg.LedgerDSN == "" {
		logger.Error("ORDER_LEDGER_DSN is required for the worker")
		os.Exit(1)
	}
	db, err := platformpostgres.Connect(ctx, cfg.LedgerDSN)
	if err != nil {
		logger.Error("failed to connect to order ledger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer platformpostgres.Close(db)
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to migrate order ledger schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ledgerGate := availability.NewGate()
	ledgerGate.MarkReady()

	publisher, cleanupPublisher := buildEventPublisher(cfg, logger)
	defer cleanupPublisher()

	policy := domain.StrictTransitions
	if cfg.FreeStatusTransitions {
		policy = domain.FreeTransitions
	}
	orderService := orderingobs.New(
		orderingapp.NewService(
			orderingpostgres.NewRepository(db),
			orderingavailability.NewProbe(ledgerGate),
			orderingapp.WithEventPublisher(publisher),
			orderingapp.WithTransitionPolicy(policy),
		),
		orderingobs.WithLogger(logger),
		orderingobs.WithTracer(instruments.Tracer("internal.ordering.application")),
		orderingobs.WithMeter(instruments.Meter("internal.ordering.application")),
	)
	orderActivities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault(cfg.TemporalAddress, client.DefaultHostPort),
		Namespace: envOrDefault(cfg.TemporalNamespace, client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildEventPublisher(cfg api.Config, logger *slog.Logger) (orderingports.EventPublisher, func()) {
	if cfg.RabbitURL == "" {
		return orderingevents.NoopPublisher{}, func() {}
	}
	publisher, err := orderingevents.NewRabbitPublisher(cfg.RabbitURL, orderingevents.WithLogger(logger))
	if err != nil {
		logger.Warn("RabbitMQ unavailable, placement events disabled", slog.String("error", err.Error()))
		return orderingevents.NoopPublisher{}, func() {}
	}
	return publisher, func() { _ = publisher.Close() }
}

func envOrDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
