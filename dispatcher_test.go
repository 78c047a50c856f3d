package ledgerflow

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherEndToEnd(t *testing.T) {
	agg := NewAggregator(nil)
	d := NewDispatcher(agg, 1, nil)

	txs := make(chan Transaction)
	go func() {
		defer close(txs)
		txs <- dep(1, 1, 1.0)
		txs <- dep(2, 2, 2.0)
		txs <- dep(1, 3, 2.0)
		txs <- wdr(1, 4, 1.5)
		txs <- wdr(2, 5, 3.0)
	}()

	d.Run(txs)

	snapshots := agg.Snapshots()
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Customer < snapshots[j].Customer })

	require.Len(t, snapshots, 2)
	assertSnapshot(t, snapshots[0], 1, 1.5, 0, 1.5, false)
	assertSnapshot(t, snapshots[1], 2, 2.0, 0, 2.0, false)

	errs := agg.Errors()
	require.Len(t, errs, 1, "want exactly one InsufficientFunds")
	insuff, ok := errs[0].(*InsufficientFunds)
	require.True(t, ok, "errs[0] = %T, want *InsufficientFunds", errs[0])
	require.Equal(t, TxID(5), insuff.Tx)
}

func TestDispatcherSpawnsOneWorkerPerCustomer(t *testing.T) {
	agg := NewAggregator(nil)
	d := NewDispatcher(agg, 4, nil)

	txs := make(chan Transaction)
	go func() {
		defer close(txs)
		for c := CustomerID(0); c < 10; c++ {
			txs <- dep(c, TxID(c), 1.0)
		}
	}()

	d.Run(txs)

	snapshots := agg.Snapshots()
	require.Len(t, snapshots, 10)

	seen := make(map[CustomerID]bool)
	for _, s := range snapshots {
		require.False(t, seen[s.Customer], "customer %d snapshotted more than once", s.Customer)
		seen[s.Customer] = true
	}
}

func TestDispatcherPoolSmallerThanCustomerCount(t *testing.T) {
	agg := NewAggregator(nil)
	d := NewDispatcher(agg, 1, nil)

	const n = 50
	txs := make(chan Transaction)
	go func() {
		defer close(txs)
		for c := CustomerID(0); c < n; c++ {
			txs <- dep(c, TxID(c), 1.0)
		}
	}()

	d.Run(txs)

	require.Len(t, agg.Snapshots(), n, "pool saturation must not drop customers")
}
