package service

import "sync"

// Dispatcher implements last-issued-wins request sequencing. Each
// consumer (one dashboard widget, typically) draws a monotonically
// increasing sequence number per invocation; when a result comes back,
// only the number most recently issued for that consumer is accepted,
// so a superseded invocation's result can never be applied after a
// newer one — regardless of arrival order.
type Dispatcher struct {
	mu     sync.Mutex
	latest map[string]uint64
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{latest: make(map[string]uint64)}
}

// Next issues the sequence number for a new invocation by consumer,
// superseding all previously issued numbers for it.
func (d *Dispatcher) Next(consumer string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.latest[consumer]++
	return d.latest[consumer]
}

// Accept reports whether a completed invocation's result may be
// applied: true only when seq is still the latest issued for consumer.
func (d *Dispatcher) Accept(consumer string, seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq == d.latest[consumer]
}
