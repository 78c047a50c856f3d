package ledgerflow

import (
	"sync"

	"github.com/phf/go-queue/queue"
)

// Mailbox is an unbounded single-producer/single-consumer queue of
// transactions. Go channels are fixed-capacity, so a per-customer queue that
// must never apply backpressure to the dispatcher is built instead on top of
// phf/go-queue's ring buffer guarded by a condition variable.
type Mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    *queue.Queue
	closed bool
}

// NewMailbox constructs an empty, open mailbox.
func NewMailbox() *Mailbox {
	m := &Mailbox{buf: queue.New()}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Push enqueues tx for the consumer. It never blocks and never fails while
// the mailbox is open; pushing to a closed mailbox is a no-op and reported
// to the caller so it can be surfaced as an EnqueueFailed error.
func (m *Mailbox) Push(tx Transaction) (ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}
	m.buf.PushBack(tx)
	m.cond.Signal()
	return true
}

// Close signals that no further transactions will be pushed. The consumer
// drains whatever remains buffered before Next reports exhaustion.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.cond.Broadcast()
}

// Next blocks until a transaction is available or the mailbox is closed and
// drained, in which case ok is false.
func (m *Mailbox) Next() (tx Transaction, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.buf.Len() == 0 && !m.closed {
		m.cond.Wait()
	}
	if m.buf.Len() == 0 {
		return Transaction{}, false
	}
	return m.buf.PopFront().(Transaction), true
}
