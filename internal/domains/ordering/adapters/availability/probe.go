package availability

import (
	"github.com/spicehouse/storefront-api/internal/domains/ordering/ports"
	"github.com/spicehouse/storefront-api/internal/platform/availability"
)

var _ ports.AvailabilityProbe = (*Probe)(nil)

// Probe adapts the platform availability gate to the ordering port.
type Probe struct {
	gate *availability.Gate
}

// NewProbe wraps the ledger gate.
func NewProbe(gate *availability.Gate) *Probe {
	return &Probe{gate: gate}
}

// OrderLedgerAvailable reports whether the order ledger store is usable.
func (p *Probe) OrderLedgerAvailable() bool {
	return p != nil && p.gate != nil && p.gate.Ready()
}
