package domain

import (
	"errors"
	"strings"
)

// Customer identifies who placed an order. The phone number is the effective
// identity key: the first order from a number creates the customer, later
// orders reuse it. The phone never changes once created; the name follows the
// most recent order.
type Customer struct {
	ID    int64
	Name  string
	Phone string
}

var (
	ErrEmptyCustomerName  = errors.New("customer name is required")
	ErrEmptyCustomerPhone = errors.New("customer phone is required")
)

// NewCustomer validates the identity invariants and builds a Customer.
func NewCustomer(name, phone string) (*Customer, error) {
	c := &Customer{}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(phone) == "" {
		return nil, ErrEmptyCustomerPhone
	}
	c.Phone = phone
	return c, nil
}

// Rename updates the customer's display name (last write wins across orders).
func (c *Customer) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCustomerName
	}
	c.Name = name
	return nil
}
