package ledgerflow

import (
	"sync"

	"github.com/kelsonhasi/ledgerflow/metrics"
)

// Aggregator is the pair of shared, mutex-protected, append-only sinks that
// the dispatcher and every worker write into: one for completed snapshots,
// one for rule-violation and adapter errors. Neither sink de-duplicates or
// reorders; snapshots land in worker-completion order, errors in
// observation order.
type Aggregator struct {
	mu        sync.Mutex
	snapshots []Snapshot
	errs      []error
	metrics   *metrics.Collector
}

// NewAggregator returns an empty aggregator. m may be nil, in which case no
// metrics are recorded.
func NewAggregator(m *metrics.Collector) *Aggregator {
	return &Aggregator{metrics: m}
}

// AddSnapshot appends a completed worker's snapshot. Safe for concurrent
// use by multiple workers.
func (a *Aggregator) AddSnapshot(s Snapshot) {
	a.mu.Lock()
	a.snapshots = append(a.snapshots, s)
	a.mu.Unlock()
}

// AddError appends a rule violation or adapter error. Safe for concurrent
// use by multiple workers and the dispatcher.
func (a *Aggregator) AddError(err error) {
	a.mu.Lock()
	a.errs = append(a.errs, err)
	a.mu.Unlock()
	if a.metrics != nil {
		a.metrics.Errors.Inc(1)
	}
}

// Snapshots returns a copy of the snapshots collected so far.
func (a *Aggregator) Snapshots() []Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Snapshot, len(a.snapshots))
	copy(out, a.snapshots)
	return out
}

// Errors returns a copy of the errors collected so far, in observation
// order.
func (a *Aggregator) Errors() []error {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]error, len(a.errs))
	copy(out, a.errs)
	return out
}
