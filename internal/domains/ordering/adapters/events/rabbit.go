package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
)

// QueueOrderPlaced is the queue downstream consumers (kitchen display,
// notification fan-out) read from.
const QueueOrderPlaced = "order_placed"

var _ ports.EventPublisher = (*RabbitPublisher)(nil)

// RabbitPublisher announces committed placements on RabbitMQ. Publish
// failures are logged and swallowed: the order is already committed, so the
// HTTP response must not depend on the broker.
type RabbitPublisher struct {
	conn   *amqp.Connection
	logger *slog.Logger
}

// Option customizes publisher construction.
type Option func(*RabbitPublisher)

// WithLogger wires a structured logger for publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *RabbitPublisher) {
		p.logger = logger
	}
}

// NewRabbitPublisher dials the broker and declares the placement queue.
func NewRabbitPublisher(url string, opts ...Option) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	p := &RabbitPublisher{conn: conn}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if _, err := ch.QueueDeclare(QueueOrderPlaced, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

// Close releases the broker connection.
func (p *RabbitPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

type orderPlacedMessage struct {
	OrderID       int64     `json:"orderId"`
	CustomerID    int64     `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	TotalAmount   float64   `json:"totalAmount"`
	ItemCount     int       `json:"itemCount"`
	PlacedAt      time.Time `json:"placedAt"`
}

// OrderPlaced publishes a compact placement announcement.
func (p *RabbitPublisher) OrderPlaced(ctx context.Context, placement *types.PlacementProjection) error {
	if placement == nil || placement.Order == nil {
		return nil
	}
	message := orderPlacedMessage{
		OrderID:     placement.Order.Entity.ID,
		CustomerID:  placement.Order.Entity.CustomerID,
		TotalAmount: placement.Order.Entity.TotalAmount,
		ItemCount:   len(placement.Order.Entity.Items),
		PlacedAt:    placement.Order.Metadata.CreatedAt,
	}
	if placement.Customer != nil {
		message.CustomerName = placement.Customer.Entity.Name
		message.CustomerPhone = placement.Customer.Entity.Phone
	}
	body, err := json.Marshal(message)
	if err != nil {
		return p.logFailure(ctx, message.OrderID, err)
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return p.logFailure(ctx, message.OrderID, err)
	}
	defer ch.Close()
	err = ch.PublishWithContext(ctx,
		"",               // exchange
		QueueOrderPlaced, // routing key
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return p.logFailure(ctx, message.OrderID, err)
	}
	return nil
}

func (p *RabbitPublisher) logFailure(ctx context.Context, orderID int64, err error) error {
	if p.logger != nil {
		p.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish order placement",
			slog.Int64("order.id", orderID),
			slog.String("error", err.Error()))
	}
	return err
}
