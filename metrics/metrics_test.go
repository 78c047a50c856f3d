package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatencySummaryEmpty(t *testing.T) {
	c := NewCollector()
	median, mean, p95 := c.LatencySummary()
	assert.Zero(t, median)
	assert.Zero(t, mean)
	assert.Zero(t, p95)
}

func TestLatencySummaryOddCount(t *testing.T) {
	c := NewCollector()
	for _, ms := range []int{10, 30, 20} {
		c.RecordLatency(time.Duration(ms) * time.Millisecond)
	}
	median, mean, _ := c.LatencySummary()
	assert.Equal(t, 20*time.Millisecond, median)
	assert.Equal(t, 20*time.Millisecond, mean)
}

func TestLatencySummaryEvenCount(t *testing.T) {
	c := NewCollector()
	for _, ms := range []int{10, 20, 30, 40} {
		c.RecordLatency(time.Duration(ms) * time.Millisecond)
	}
	median, _, p95 := c.LatencySummary()
	assert.Equal(t, 25*time.Millisecond, median)
	// p95 interpolates between the 3rd (30ms) and 4th (40ms) ranked samples.
	assert.InDelta(t, float64(38500*time.Microsecond), float64(p95), float64(time.Microsecond))
}

func TestRecordLatencyConcurrentSafe(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordLatency(time.Millisecond)
		}()
	}
	wg.Wait()

	c.mu.Lock()
	n := len(c.latencies)
	c.mu.Unlock()
	require.Equal(t, 50, n)
}
