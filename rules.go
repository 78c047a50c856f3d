package ledgerflow

import (
	"fmt"

	"github.com/kelsonhasi/ledgerflow/log"
)

// Worker is the per-customer ledger replicator. It owns its balances and
// transaction-status map exclusively; nothing about a Worker is shared
// across goroutines except through the Aggregator it reports to.
type Worker struct {
	id        CustomerID
	available Amount
	held      Amount
	locked    bool
	statuses  map[TxID]entry

	agg *Aggregator
	log log.Logger
}

// NewWorker constructs a worker for the given customer, reporting snapshots
// and rule violations to agg.
func NewWorker(id CustomerID, agg *Aggregator) *Worker {
	return &Worker{
		id:       id,
		statuses: make(map[TxID]entry),
		agg:      agg,
		log:      log.Worker(uint32(id)),
	}
}

// Run consumes transactions from in until it is closed, applying each to
// the decision table in rule order, then emits exactly one snapshot. If a
// balance invariant breaks partway through, Run aborts instead: it closes in
// itself so the dispatcher's remaining in-flight sends for this customer
// fail fast with EnqueueFailed, and reports the break without a snapshot,
// since the worker's state can no longer be trusted.
func (w *Worker) Run(in *Mailbox) {
	defer func() {
		if r := recover(); r != nil {
			w.agg.AddError(&WorkerTerminated{Customer: w.id, Detail: fmt.Sprint(r)})
			in.Close()
			w.log.Error().Interface("panic", r).Msg("worker aborted")
		}
	}()

	for {
		tx, ok := in.Next()
		if !ok {
			break
		}
		w.apply(tx)
		w.checkInvariants()
	}
	w.agg.AddSnapshot(w.snapshot())
	w.log.Debug().Msg("worker terminated")
}

// checkInvariants panics if held funds have gone negative, which the rule
// table above makes unreachable: held only grows by a disputed deposit's
// amount and shrinks by that same amount on resolve or chargeback. It exists
// as a last line of defense against a future rule change breaking that
// guarantee. Available is not checked: disputing a deposit whose funds were
// already withdrawn legitimately drives it negative.
func (w *Worker) checkInvariants() {
	if w.held < 0 {
		panic(fmt.Sprintf("balance invariant broken: available=%s held=%s", w.available, w.held))
	}
}

// apply evaluates the per-transaction decision table top-down; rows are
// checked in a fixed order because later rows assume earlier guards were
// false.
func (w *Worker) apply(tx Transaction) {
	if tx.Customer != w.id {
		w.agg.AddError(&WrongCustomer{Expected: w.id, Actual: tx.Customer})
		return
	}

	switch tx.Kind {
	case Deposit:
		w.applyDeposit(tx)
	case Withdrawal:
		w.applyWithdrawal(tx)
	case Dispute:
		w.applyDispute(tx)
	case Resolve:
		w.applyResolve(tx)
	case Chargeback:
		w.applyChargeback(tx)
	}
}

func (w *Worker) applyDeposit(tx Transaction) {
	if _, seen := w.statuses[tx.Tx]; seen {
		w.agg.AddError(&DuplicatedTransaction{Tx: tx.Tx})
		return
	}

	if tx.Amount >= 0 {
		w.available += tx.Amount
		w.statuses[tx.Tx] = entry{status: Deposited, amount: tx.Amount}
		return
	}

	w.statuses[tx.Tx] = entry{status: FailedDeposit}
	w.agg.AddError(&NegativeAmount{Amount: tx.Amount, Tx: tx.Tx})
}

func (w *Worker) applyWithdrawal(tx Transaction) {
	if _, seen := w.statuses[tx.Tx]; seen {
		w.agg.AddError(&DuplicatedTransaction{Tx: tx.Tx})
		return
	}

	switch {
	case !w.locked && tx.Amount >= 0 && tx.Amount <= w.available:
		w.available -= tx.Amount
		w.statuses[tx.Tx] = entry{status: Withdrew, amount: -tx.Amount}
	case !w.locked && tx.Amount < 0:
		w.statuses[tx.Tx] = entry{status: FailedWithdrawal}
		w.agg.AddError(&NegativeAmount{Amount: tx.Amount, Tx: tx.Tx})
	case !w.locked:
		w.statuses[tx.Tx] = entry{status: FailedWithdrawal}
		w.agg.AddError(&InsufficientFunds{Amount: tx.Amount, Tx: tx.Tx, Available: w.available})
	default:
		w.statuses[tx.Tx] = entry{status: FailedWithdrawal}
		w.agg.AddError(&CustomerFrozen{Customer: tx.Customer, Tx: tx.Tx})
	}
}

func (w *Worker) applyDispute(tx Transaction) {
	e, ok := w.statuses[tx.Tx]
	switch {
	case ok && (e.status == Deposited || e.status == Resolved):
		w.held += e.amount
		w.available -= e.amount
		w.statuses[tx.Tx] = entry{status: OnDispute, amount: e.amount}
	case ok:
		w.agg.AddError(&InvalidDisputeStart{Tx: tx.Tx, Status: e.status})
	default:
		w.agg.AddError(&NonExistingTransaction{Tx: tx.Tx})
	}
}

func (w *Worker) applyResolve(tx Transaction) {
	e, ok := w.statuses[tx.Tx]
	switch {
	case ok && e.status == OnDispute:
		w.held -= e.amount
		w.available += e.amount
		w.statuses[tx.Tx] = entry{status: Resolved, amount: e.amount}
	case ok:
		w.agg.AddError(&InvalidResolve{Tx: tx.Tx, Status: e.status})
	default:
		w.agg.AddError(&NonExistingTransaction{Tx: tx.Tx})
	}
}

func (w *Worker) applyChargeback(tx Transaction) {
	e, ok := w.statuses[tx.Tx]
	switch {
	case ok && e.status == OnDispute:
		w.held -= e.amount
		w.locked = true
		w.statuses[tx.Tx] = entry{status: Chargedback, amount: e.amount}
	case ok:
		w.agg.AddError(&InvalidChargeback{Tx: tx.Tx, Status: e.status})
	default:
		w.agg.AddError(&NonExistingTransaction{Tx: tx.Tx})
	}
}

// snapshot emits {available, held, total, locked}. Every amount entered the
// worker pre-rounded via Round or ParseAmount, and Amount arithmetic is
// exact int64 addition, so available, held and their sum are already exact
// multiples of 1/10000; rounding at emission is therefore an identity under
// this representation rather than a no-op assumed by convenience.
func (w *Worker) snapshot() Snapshot {
	return Snapshot{
		Customer:  w.id,
		Available: w.available,
		Held:      w.held,
		Total:     w.available + w.held,
		Locked:    w.locked,
	}
}
