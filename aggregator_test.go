package ledgerflow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregatorConcurrentWrites(t *testing.T) {
	agg := NewAggregator(nil)

	var wg sync.WaitGroup
	for c := CustomerID(0); c < 20; c++ {
		wg.Add(1)
		go func(c CustomerID) {
			defer wg.Done()
			agg.AddSnapshot(Snapshot{Customer: c})
			agg.AddError(&NonExistingTransaction{Tx: TxID(c)})
		}(c)
	}
	wg.Wait()

	assert.Len(t, agg.Snapshots(), 20)
	assert.Len(t, agg.Errors(), 20)
}

func TestAggregatorSnapshotsAreCopies(t *testing.T) {
	agg := NewAggregator(nil)
	agg.AddSnapshot(Snapshot{Customer: 1})

	snaps := agg.Snapshots()
	snaps[0].Customer = 99

	assert.Equal(t, CustomerID(1), agg.Snapshots()[0].Customer, "mutating the returned slice must not affect aggregator state")
}
