package mapper

import (
	"time"

	types "github.com/spicehouse/storefront-api/internal/domains/ordering/application/types"
)

// LineItem is the HTTP representation of one cart line.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// PlaceOrderRequest captures an inbound placement payload. TotalAmount is a
// pointer so a missing field is distinguishable from an explicit zero.
type PlaceOrderRequest struct {
	CustomerName string     `json:"customerName" binding:"required"`
	PhoneNumber  string     `json:"phoneNumber" binding:"required"`
	Items        []LineItem `json:"items" binding:"required"`
	TotalAmount  *float64   `json:"totalAmount" binding:"required"`
}

// UpdateOrderRequest captures a status transition payload.
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// Customer is the HTTP representation of an order's owner.
type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// Order is the HTTP representation of a placed order.
type Order struct {
	ID          int64      `json:"id"`
	CustomerID  int64      `json:"customerId"`
	Items       []LineItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	Status      string     `json:"status"`
	PickupTime  *time.Time `json:"pickupTime,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PlacementResponse is returned after a successful placement.
type PlacementResponse struct {
	Message  string    `json:"message"`
	Order    Order     `json:"order"`
	Customer *Customer `json:"customer,omitempty"`
}

// ToPlaceOrderInput maps a transport request into the application command.
func ToPlaceOrderInput(payload PlaceOrderRequest) types.PlaceOrderInput {
	items := make([]types.LineItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, types.LineItemInput{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	input := types.PlaceOrderInput{
		CustomerName:  payload.CustomerName,
		CustomerPhone: payload.PhoneNumber,
		Items:         items,
	}
	if payload.TotalAmount != nil {
		input.TotalAmount = *payload.TotalAmount
	}
	return input
}

// FromOrderProjection maps an order projection into its transport shape.
func FromOrderProjection(p *types.OrderProjection) Order {
	order := Order{
		ID:          p.Entity.ID,
		CustomerID:  p.Entity.CustomerID,
		Items:       make([]LineItem, 0, len(p.Entity.Items)),
		TotalAmount: p.Entity.TotalAmount,
		Status:      string(p.Entity.Status),
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
	for _, item := range p.Entity.Items {
		order.Items = append(order.Items, LineItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	if p.Entity.PickupTime != nil {
		pickup := *p.Entity.PickupTime
		order.PickupTime = &pickup
	}
	return order
}

// FromOrderProjectionList maps a slice of projections preserving order.
func FromOrderProjectionList(list []*types.OrderProjection) []Order {
	orders := make([]Order, 0, len(list))
	for _, p := range list {
		orders = append(orders, FromOrderProjection(p))
	}
	return orders
}

// FromCustomerProjection maps a customer projection into its transport shape.
func FromCustomerProjection(p *types.CustomerProjection) *Customer {
	if p == nil {
		return nil
	}
	return &Customer{
		ID:          p.Entity.ID,
		Name:        p.Entity.Name,
		PhoneNumber: p.Entity.Phone,
	}
}

// FromPlacement maps a placement result into the creation response.
func FromPlacement(p *types.PlacementProjection) PlacementResponse {
	return PlacementResponse{
		Message:  "Order placed successfully",
		Order:    FromOrderProjection(p.Order),
		Customer: FromCustomerProjection(p.Customer),
	}
}
