package ledgerflow

import (
	"runtime"
	"time"

	"github.com/kelsonhasi/ledgerflow/log"
	"github.com/kelsonhasi/ledgerflow/metrics"
)

// Dispatcher reads an ordered sequence of transactions, demultiplexes it by
// customer into per-customer mailboxes, and spawns one ledger Worker per
// distinct customer on first sighting. It is the single producer for every
// mailbox it creates.
type Dispatcher struct {
	pool      *pool
	agg       *Aggregator
	mailboxes map[CustomerID]*Mailbox
	log       log.Logger
	metrics   *metrics.Collector
}

// NewDispatcher constructs a dispatcher whose worker pool is bounded to
// poolSize concurrent customers; poolSize <= 0 defaults to the logical CPU
// count. m may be nil, in which case no metrics are recorded.
func NewDispatcher(agg *Aggregator, poolSize int, m *metrics.Collector) *Dispatcher {
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}
	return &Dispatcher{
		pool:      newPool(poolSize),
		agg:       agg,
		mailboxes: make(map[CustomerID]*Mailbox),
		log:       log.Dispatch(),
		metrics:   m,
	}
}

// Run consumes txs in order, routing each to its customer's mailbox and
// spawning a worker the first time a customer id is seen. It returns once
// txs is closed, all mailboxes are closed, and every worker has finished
// (emitting its snapshot, or reporting WorkerTerminated if it aborted).
func (d *Dispatcher) Run(txs <-chan Transaction) {
	for tx := range txs {
		mb, exists := d.mailboxes[tx.Customer]
		if !exists {
			mb = NewMailbox()
			d.mailboxes[tx.Customer] = mb
			d.log.Info().Uint32("customer", uint32(tx.Customer)).Msg("spawning worker")
			worker := NewWorker(tx.Customer, d.agg)
			if d.metrics != nil {
				d.metrics.WorkersSpawned.Inc(1)
			}
			d.pool.submit(func() {
				start := time.Now()
				worker.Run(mb)
				if d.metrics != nil {
					d.metrics.RecordLatency(time.Since(start))
				}
			})
		}

		if ok := mb.Push(tx); !ok {
			d.log.Warn().Uint32("customer", uint32(tx.Customer)).Msg("enqueue failed: mailbox closed")
			d.agg.AddError(&EnqueueFailed{Customer: tx.Customer, Tx: tx.Tx})
			continue
		}
		if d.metrics != nil {
			d.metrics.Processed.Inc(1)
		}
	}

	for _, mb := range d.mailboxes {
		mb.Close()
	}
	d.pool.join()
}
