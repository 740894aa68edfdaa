package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
	orderingports "github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
)

const tracerName = "github.com/spicehouse/storefront-api/internal/domains/ordering/adapters/observability/service"

// Service decorates the ordering service with tracing, logging, and metrics.
type Service struct {
	inner   orderingports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core ordering service.
func New(inner orderingports.Service, opts ...Option) orderingports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*types.PlacementProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.PlaceOrder",
		trace.WithAttributes(
			attribute.String("customer.phone", input.CustomerPhone),
			attribute.Int("order.item_count", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "placing order",
		slog.String("customer.phone", input.CustomerPhone),
		slog.Int("order.item_count", len(input.Items)))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("customer.phone", input.CustomerPhone))
	}
	s.metrics.recordPlaced(ctx)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", result.Order.Entity.ID),
		slog.Int64("customer.id", result.Customer.Entity.ID),
		slog.Float64("order.total_amount", result.Order.Entity.TotalAmount))
	return result, nil
}

func (s *Service) FindOrdersByPhone(ctx context.Context, input types.PhoneQuery) ([]*types.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.FindOrdersByPhone",
		trace.WithAttributes(attribute.String("customer.phone", input.Phone)))
	defer span.End()

	s.logInfo(ctx, "loading order history", slog.String("customer.phone", input.Phone))
	result, err := s.inner.FindOrdersByPhone(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order history", slog.String("customer.phone", input.Phone))
	}
	s.metrics.recordLookup(ctx)
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, input types.OrderIdentifier) (*types.PlacementProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.GetOrderByID",
		trace.WithAttributes(attribute.Int64("order.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "loading order", slog.Int64("order.id", input.ID))
	result, err := s.inner.GetOrderByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", input.ID))
	}
	s.metrics.recordLookup(ctx)
	return result, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, input types.UpdateStatusInput) (*types.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderingService.UpdateOrderStatus",
		trace.WithAttributes(attribute.Int64("order.id", input.ID), attribute.String("order.status", input.Status)))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.Int64("order.id", input.ID), slog.String("order.status", input.Status))
	result, err := s.inner.UpdateOrderStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.Int64("order.id", input.ID))
	}
	s.metrics.recordStatusChange(ctx, string(result.Entity.Status))
	s.logInfo(ctx, "order status updated",
		slog.Int64("order.id", result.Entity.ID),
		slog.String("order.status", string(result.Entity.Status)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced  metric.Int64Counter
	statusChanges metric.Int64Counter
	lookups       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("ordering.service.orders_placed", metric.WithDescription("Number of orders placed"))
	statusChanges, _ := m.Int64Counter("ordering.service.status_changes", metric.WithDescription("Number of order status transitions"))
	lookups, _ := m.Int64Counter("ordering.service.lookups", metric.WithDescription("Number of order lookups"))
	return serviceMetrics{ordersPlaced: ordersPlaced, statusChanges: statusChanges, lookups: lookups}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordStatusChange(ctx context.Context, status string) {
	if m.statusChanges != nil {
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", status)))
	}
}

func (m serviceMetrics) recordLookup(ctx context.Context) {
	if m.lookups != nil {
		m.lookups.Add(ctx, 1)
	}
}

var _ orderingports.Service = (*Service)(nil)
