// Package metrics tracks operational counters for one batch run, using the
// teacher's own declared (if previously unused) rcrowley/go-metrics
// dependency.
package metrics

import (
	"io"
	"sync"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

// Collector groups the counters one run of the engine reports.
type Collector struct {
	registry       gometrics.Registry
	Processed      gometrics.Counter
	Errors         gometrics.Counter
	WorkersSpawned gometrics.Counter
	BatchDuration  gometrics.Timer

	mu        sync.Mutex
	latencies []int64
}

// NewCollector registers a fresh set of counters in their own registry, so
// concurrent runs (as in tests) never share state through a package-level
// default registry.
func NewCollector() *Collector {
	r := gometrics.NewRegistry()
	return &Collector{
		registry:       r,
		Processed:      gometrics.NewRegisteredCounter("transactions.processed", r),
		Errors:         gometrics.NewRegisteredCounter("transactions.errors", r),
		WorkersSpawned: gometrics.NewRegisteredCounter("workers.spawned", r),
		BatchDuration:  gometrics.NewRegisteredTimer("batch.duration", r),
	}
}

// WriteJSON dumps every registered metric once, in rcrowley/go-metrics's
// own JSON shape.
func (c *Collector) WriteJSON(w io.Writer) {
	gometrics.WriteJSONOnce(c.registry, w)
}

// RecordLatency appends one worker's spawn-to-completion duration to the
// collector's latency sample set.
func (c *Collector) RecordLatency(d time.Duration) {
	c.mu.Lock()
	c.latencies = append(c.latencies, int64(d))
	c.mu.Unlock()
}

// LatencySummary returns the median, mean and p95 of every latency recorded
// so far. It returns zero values if nothing has been recorded.
func (c *Collector) LatencySummary() (median, mean, p95 time.Duration) {
	c.mu.Lock()
	samples := make([]int64, len(c.latencies))
	copy(samples, c.latencies)
	c.mu.Unlock()

	if len(samples) == 0 {
		return 0, 0, 0
	}
	mean = time.Duration(meanNanos(samples))
	median = time.Duration(percentileNanos(samples, 0.5))
	p95 = time.Duration(percentileNanos(samples, 0.95))
	return median, mean, p95
}
