package application

import (
	"errors"
	"fmt"

	"github.com/spicehouse/storefront-api/internal/domains/ordering/domain"
	"github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	// No I/O was attempted.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrLedgerUnavailable signals the order ledger's store is not
	// reachable. No I/O was attempted; retrying later may succeed.
	ErrLedgerUnavailable = errors.New("order ledger unavailable")
	// ErrPersistence signals the store rejected the operation after it was
	// attempted. The transaction was rolled back, so resubmission is safe.
	ErrPersistence = errors.New("order persistence failed")
	// ErrTransitionDenied signals a status change the configured policy
	// forbids, e.g. reopening a completed order.
	ErrTransitionDenied = errors.New("order status transition denied")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyCustomerName),
		errors.Is(err, domain.ErrEmptyCustomerPhone),
		errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrEmptyItemName),
		errors.Is(err, domain.ErrInvalidItemPrice),
		errors.Is(err, domain.ErrInvalidItemQuantity),
		errors.Is(err, domain.ErrNegativeTotal),
		errors.Is(err, domain.ErrTotalMismatch),
		errors.Is(err, domain.ErrInvalidStatus):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrTransitionNotAllowed):
		return fmt.Errorf("%w: %w", ErrTransitionDenied, err)
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrCustomerNotFound):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
