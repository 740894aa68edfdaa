package ports

// AvailabilityProbe reports whether the order ledger's backing store is
// currently reachable. The placement service consults it on every call so a
// gate that opens mid-process takes effect without a restart.
type AvailabilityProbe interface {
	OrderLedgerAvailable() bool
}
