package types

// LineItemInput carries one cart line as submitted by the client.
type LineItemInput struct {
	Name     string
	Price    float64
	Quantity int
}

// PlaceOrderInput is the full placement request: contact info plus the cart.
type PlaceOrderInput struct {
	CustomerName  string
	CustomerPhone string
	Items         []LineItemInput
	TotalAmount   float64
}

// OrderIdentifier addresses a single order.
type OrderIdentifier struct {
	ID int64
}

// PhoneQuery addresses a customer's order history.
type PhoneQuery struct {
	Phone string
}

// UpdateStatusInput carries a requested status transition. Status is kept raw
// here; the service validates it against the lifecycle enumeration.
type UpdateStatusInput struct {
	ID     int64
	Status string
}
