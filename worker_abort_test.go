package ledgerflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestWorkerAbortsOnBrokenInvariant simulates a future rule-table bug by
// forcing a worker's own balance into an impossible state, then checks that
// Run recovers instead of crashing: it reports WorkerTerminated, skips the
// snapshot, and closes its mailbox so anything still queued for it fails
// fast.
func TestWorkerAbortsOnBrokenInvariant(t *testing.T) {
	agg := NewAggregator(nil)
	w := NewWorker(1, agg)
	w.held = -1 // a state the rule table itself can never produce

	mb := NewMailbox()
	// A zero-amount deposit is itself rule-valid (no error recorded) but
	// leaves held unchanged, so checkInvariants trips right after it.
	mb.Push(dep(1, 1, 0))

	done := make(chan struct{})
	go func() {
		w.Run(mb)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the invariant broke")
	}

	errs := agg.Errors()
	require.Len(t, errs, 1, "want exactly one WorkerTerminated")
	_, ok := errs[0].(*WorkerTerminated)
	require.True(t, ok, "errs[0] = %T, want *WorkerTerminated", errs[0])
	require.Empty(t, agg.Snapshots(), "no snapshot should be emitted for an aborted worker")

	// The mailbox must now be closed: anything the dispatcher still had in
	// flight for this customer is rejected instead of silently buffering
	// forever. This is exactly the signal Dispatcher.Run's own Push check
	// turns into an EnqueueFailed error for whatever arrives next.
	require.False(t, mb.Push(dep(1, 100, 1)), "Push() after worker abort should fail")
}
