package domain

import (
	"errors"
	"math"
	"time"
)

// Status represents the lifecycle state of a placed order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a raw status string against the known lifecycle values.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return Status(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

// TransitionPolicy decides which status transitions are legal.
type TransitionPolicy int

const (
	// StrictTransitions only allows pending -> completed and
	// pending -> cancelled; terminal states are frozen.
	StrictTransitions TransitionPolicy = iota
	// FreeTransitions allows any valid status at any time, matching the
	// unrestricted behavior of the original storefront.
	FreeTransitions
)

// LineItem is a snapshot of a menu item at order-creation time. Orders keep
// copies of name/price/quantity so later catalog edits never rewrite history.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is the aggregate owned by the order ledger. Orders are never deleted,
// only status-transitioned.
type Order struct {
	ID          int64
	CustomerID  int64
	Items       []LineItem
	TotalAmount float64
	Status      Status
	PickupTime  *time.Time
}

var (
	ErrNoItems              = errors.New("at least one line item is required")
	ErrEmptyItemName        = errors.New("line item name is required")
	ErrInvalidItemPrice     = errors.New("line item price must be greater or equal to zero")
	ErrInvalidItemQuantity  = errors.New("line item quantity must be greater than zero")
	ErrNegativeTotal        = errors.New("total amount must be greater or equal to zero")
	ErrTotalMismatch        = errors.New("total amount does not match the sum of line items")
	ErrInvalidStatus        = errors.New("unknown order status")
	ErrTransitionNotAllowed = errors.New("order status transition not allowed")
)

// totalTolerance absorbs float rounding when comparing the submitted total
// against the recomputed one.
const totalTolerance = 0.01

// Placement is the validated unit of work for placing an order: the customer
// identity plus the order content, persisted together atomically.
type Placement struct {
	CustomerName  string
	CustomerPhone string
	Items         []LineItem
	TotalAmount   float64
}

// NewPlacement validates a placement request. The submitted total is checked
// against the recomputed sum of price by quantity rather than trusted as-is.
func NewPlacement(customerName, customerPhone string, items []LineItem, totalAmount float64) (Placement, error) {
	if _, err := NewCustomer(customerName, customerPhone); err != nil {
		return Placement{}, err
	}
	if len(items) == 0 {
		return Placement{}, ErrNoItems
	}
	var computed float64
	for _, item := range items {
		if item.Name == "" {
			return Placement{}, ErrEmptyItemName
		}
		if item.Price < 0 {
			return Placement{}, ErrInvalidItemPrice
		}
		if item.Quantity <= 0 {
			return Placement{}, ErrInvalidItemQuantity
		}
		computed += item.Price * float64(item.Quantity)
	}
	if totalAmount < 0 {
		return Placement{}, ErrNegativeTotal
	}
	if math.Abs(computed-totalAmount) > totalTolerance {
		return Placement{}, ErrTotalMismatch
	}
	return Placement{
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Items:         append([]LineItem{}, items...),
		TotalAmount:   totalAmount,
	}, nil
}

// NewOrder builds the pending order for a placement once the owning customer
// is known.
func (p Placement) NewOrder(customerID int64) *Order {
	return &Order{
		CustomerID:  customerID,
		Items:       append([]LineItem{}, p.Items...),
		TotalAmount: p.TotalAmount,
		Status:      StatusPending,
	}
}

// ItemNames lists the snapshot names, used for denormalized search columns.
func (p Placement) ItemNames() []string {
	names := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		names = append(names, item.Name)
	}
	return names
}

// TransitionTo moves the order to a new status under the given policy.
// Reaching completed stamps the pickup time.
func (o *Order) TransitionTo(status Status, now time.Time, policy TransitionPolicy) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	if policy == StrictTransitions && o.Status != StatusPending && o.Status != status {
		return ErrTransitionNotAllowed
	}
	o.Status = status
	if status == StatusCompleted {
		pickup := now
		o.PickupTime = &pickup
	}
	return nil
}

// Clone returns a deep copy so repository callers never share item slices.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if len(o.Items) > 0 {
		clone.Items = append([]LineItem{}, o.Items...)
	}
	if o.PickupTime != nil {
		pickup := *o.PickupTime
		clone.PickupTime = &pickup
	}
	return &clone
}
