package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	storefrontserver "github.com/spicehouse/storefront-api/go"

	catalogmemory "github.com/spicehouse/storefront-api/internal/domains/catalog/adapters/memory"
	catalogpgx "github.com/spicehouse/storefront-api/internal/domains/catalog/adapters/persistence/pgx"
	catalogapp "github.com/spicehouse/storefront-api/internal/domains/catalog/application"
	catalogports "github.com/spicehouse/storefront-api/internal/domains/catalog/ports"

	orderingavailability "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/availability"
	orderingevents "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/events"
	orderingmemory "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/memory"
	orderingobs "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/observability"
	orderingpostgres "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/persistence/postgres"
	orderingworkflows "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/workflows"
	orderingapp "github.com/spicehouse/storefront-api/internal/domains/ordering/application"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/domain"
	orderingports "github.com/spicehouse/storefront-api/internal/domains/ordering/ports"

	"github.com/spicehouse/storefront-api/internal/platform/availability"
	"github.com/spicehouse/storefront-api/internal/platform/catalogdb"
	"github.com/spicehouse/storefront-api/internal/platform/migrations"
	platformobservability "github.com/spicehouse/storefront-api/internal/platform/observability"
	platformpostgres "github.com/spicehouse/storefront-api/internal/platform/postgres"
)

// Run boots the storefront HTTP API. The menu catalog must be reachable at
// startup, but the order ledger connects in the background: the API serves
// menu traffic immediately and opens the ordering gate once the ledger store
// is up and migrated.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := LoadConfig()

	catalogGate := availability.NewGate()
	catalogService, cleanupCatalog, err := buildCatalogService(ctx, cfg, logger, catalogGate)
	if err != nil {
		return err
	}
	defer cleanupCatalog()

	ledgerGate := availability.NewGate()
	orderRepo, cleanupLedger := buildOrderRepository(ctx, cfg, logger, ledgerGate)
	defer cleanupLedger()

	publisher, cleanupPublisher := buildEventPublisher(cfg, logger)
	defer cleanupPublisher()

	policy := domain.StrictTransitions
	if cfg.FreeStatusTransitions {
		policy = domain.FreeTransitions
	}
	coreOrderService := orderingapp.NewService(
		orderRepo,
		orderingavailability.NewProbe(ledgerGate),
		orderingapp.WithEventPublisher(publisher),
		orderingapp.WithTransitionPolicy(policy),
	)
	orderService := orderingobs.New(
		coreOrderService,
		orderingobs.WithLogger(logger),
		orderingobs.WithTracer(instruments.Tracer("internal.ordering.application")),
		orderingobs.WithMeter(instruments.Meter("internal.ordering.application")),
	)

	var orderWorkflows orderingports.WorkflowOrchestrator = orderingworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline PlaceOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = orderingworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", effectiveNamespace(cfg)))
	}

	handlers := storefrontserver.ApiHandleFunctions{
		OrdersAPI: storefrontserver.NewOrdersAPI(orderService, orderWorkflows),
		MenuAPI:   storefrontserver.NewMenuAPI(catalogService),
		StatusAPI: storefrontserver.NewStatusAPI(catalogGate, ledgerGate),
	}

	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName))
	router := storefrontserver.NewRouterWithGinEngine(engine, handlers)
	addr := ":" + cfg.Port
	logger.Info("Storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildCatalogService wires the menu catalog. A missing DSN falls back to the
// in-memory catalog; a configured DSN that fails is a startup error, because
// a storefront without a menu serves nothing at all.
func buildCatalogService(ctx context.Context, cfg Config, logger *slog.Logger, gate *availability.Gate) (catalogports.Service, func(), error) {
	if strings.TrimSpace(cfg.CatalogDSN) == "" {
		logger.Warn("CATALOG_DSN not set, falling back to in-memory menu catalog")
		gate.MarkReady()
		return catalogapp.NewService(catalogmemory.NewRepository()), func() {}, nil
	}
	pool, err := catalogdb.Connect(ctx, cfg.CatalogDSN)
	if err != nil {
		gate.MarkFailed(err)
		return nil, func() {}, fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	if err := catalogpgx.Migrate(ctx, pool); err != nil {
		pool.Close()
		gate.MarkFailed(err)
		return nil, func() {}, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	logger.Info("menu catalog configured with postgres")
	gate.MarkReady()
	return catalogapp.NewService(catalogpgx.NewRepository(pool)), pool.Close, nil
}

// buildOrderRepository wires the order ledger. With a DSN configured the
// repository starts unbound and a background goroutine retries the connection
// until it succeeds; the gate opens only after migrations run. Placements are
// rejected with a retryable error until then.
func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger, gate *availability.Gate) (orderingports.Repository, func()) {
	if strings.TrimSpace(cfg.LedgerDSN) == "" {
		logger.Warn("ORDER_LEDGER_DSN not set, falling back to in-memory order ledger")
		gate.MarkReady()
		return orderingmemory.NewRepository(), func() {}
	}
	repo := orderingpostgres.NewRepository(nil)
	connectCtx, cancel := context.WithCancel(ctx)
	go connectLedger(connectCtx, cfg, logger, gate, repo)
	cleanup := func() {
		cancel()
		platformpostgres.Close(repo.DB())
	}
	return repo, cleanup
}

func connectLedger(ctx context.Context, cfg Config, logger *slog.Logger, gate *availability.Gate, repo *orderingpostgres.Repository) {
	for {
		db, err := platformpostgres.Connect(ctx, cfg.LedgerDSN)
		if err == nil {
			if err = migrations.Run(db); err != nil {
				platformpostgres.Close(db)
			} else {
				repo.Bind(db)
				gate.MarkReady()
				logger.Info("order ledger connected, ordering enabled")
				return
			}
		}
		gate.MarkFailed(err)
		logger.Warn("order ledger unavailable, serving menu only",
			slog.String("error", err.Error()),
			slog.Duration("retryIn", cfg.LedgerRetryInterval))
		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.LedgerRetryInterval):
		}
	}
}

func buildEventPublisher(cfg Config, logger *slog.Logger) (orderingports.EventPublisher, func()) {
	if strings.TrimSpace(cfg.RabbitURL) == "" {
		return orderingevents.NoopPublisher{}, func() {}
	}
	publisher, err := orderingevents.NewRabbitPublisher(cfg.RabbitURL, orderingevents.WithLogger(logger))
	if err != nil {
		logger.Warn("RabbitMQ unavailable, placement events disabled", slog.String("error", err.Error()))
		return orderingevents.NoopPublisher{}, func() {}
	}
	logger.Info("placement events configured with RabbitMQ")
	return publisher, func() { _ = publisher.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	address := cfg.TemporalAddress
	if address == "" {
		address = client.DefaultHostPort
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  address,
		Namespace: effectiveNamespaceFrom(cfg.TemporalNamespace),
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveNamespace(cfg Config) string {
	return effectiveNamespaceFrom(cfg.TemporalNamespace)
}

func effectiveNamespaceFrom(namespace string) string {
	if namespace != "" {
		return namespace
	}
	return client.DefaultNamespace
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
