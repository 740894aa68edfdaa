package availability

import (
	"sync/atomic"
	"time"
)

// Snapshot is a point-in-time view of a dependency's availability.
type Snapshot struct {
	Connected bool
	LastError string
	Since     time.Time
}

// Gate tracks whether a backing dependency is usable. It starts closed and is
// flipped by the startup goroutine once the dependency connects; readers are
// request handlers, so all access is lock-free.
type Gate struct {
	state atomic.Pointer[Snapshot]
	now   func() time.Time
}

// NewGate returns a closed gate.
func NewGate() *Gate {
	g := &Gate{now: time.Now}
	g.state.Store(&Snapshot{Connected: false, Since: g.now()})
	return g
}

// WithClock overrides the time source for deterministic testing.
func (g *Gate) WithClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// MarkReady opens the gate.
func (g *Gate) MarkReady() {
	g.state.Store(&Snapshot{Connected: true, Since: g.now()})
}

// MarkFailed records a connection failure. The gate stays (or becomes) closed.
func (g *Gate) MarkFailed(err error) {
	snapshot := &Snapshot{Connected: false, Since: g.now()}
	if err != nil {
		snapshot.LastError = err.Error()
	}
	g.state.Store(snapshot)
}

// Ready reports whether the dependency is usable.
func (g *Gate) Ready() bool {
	return g.state.Load().Connected
}

// Snapshot returns the current availability view.
func (g *Gate) Snapshot() Snapshot {
	return *g.state.Load()
}
