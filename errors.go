package ledgerflow

import "fmt"

// WrongCustomer records a transaction that reached a worker for a customer
// other than the one it was addressed to.
type WrongCustomer struct {
	Expected, Actual CustomerID
}

func (e *WrongCustomer) Error() string {
	return fmt.Sprintf("builder expected transactions for customer %d, but got one for customer %d", e.Expected, e.Actual)
}

// DuplicatedTransaction records a deposit/withdrawal tx id reused within a
// customer's stream.
type DuplicatedTransaction struct {
	Tx TxID
}

func (e *DuplicatedTransaction) Error() string {
	return fmt.Sprintf("transaction %d not unique", e.Tx)
}

// NegativeAmount records a deposit or withdrawal carrying a negative amount.
type NegativeAmount struct {
	Amount Amount
	Tx     TxID
}

func (e *NegativeAmount) Error() string {
	return fmt.Sprintf("negative amount %s in transaction %d", e.Amount, e.Tx)
}

// InsufficientFunds records a withdrawal exceeding available funds.
type InsufficientFunds struct {
	Amount    Amount
	Tx        TxID
	Available Amount
}

func (e *InsufficientFunds) Error() string {
	return fmt.Sprintf("not enough funds to withdraw %s during transaction %d, with available funds %s", e.Amount, e.Tx, e.Available)
}

// CustomerFrozen records a withdrawal attempted against a locked account.
type CustomerFrozen struct {
	Customer CustomerID
	Tx       TxID
}

func (e *CustomerFrozen) Error() string {
	return fmt.Sprintf("customer %d is frozen and cannot perform withdrawal transaction %d", e.Customer, e.Tx)
}

// NonExistingTransaction records a dispute/resolve/chargeback referencing a
// tx id never seen for this customer.
type NonExistingTransaction struct {
	Tx TxID
}

func (e *NonExistingTransaction) Error() string {
	return fmt.Sprintf("transaction %d could not complete", e.Tx)
}

// InvalidDisputeStart records a dispute whose referenced tx is not in a
// disputable status.
type InvalidDisputeStart struct {
	Tx     TxID
	Status Status
}

func (e *InvalidDisputeStart) Error() string {
	return fmt.Sprintf("cannot start a dispute on transaction %d while being on status %s", e.Tx, e.Status)
}

// InvalidResolve records a resolve whose referenced tx is not under dispute.
type InvalidResolve struct {
	Tx     TxID
	Status Status
}

func (e *InvalidResolve) Error() string {
	return fmt.Sprintf("cannot resolve a dispute on transaction %d while being on status %s", e.Tx, e.Status)
}

// InvalidChargeback records a chargeback whose referenced tx is not under
// dispute.
type InvalidChargeback struct {
	Tx     TxID
	Status Status
}

func (e *InvalidChargeback) Error() string {
	return fmt.Sprintf("cannot chargeback a dispute on transaction %d while being on status %s", e.Tx, e.Status)
}

// InvalidTransactionType is raised by the parsing adapter for an
// unrecognized transaction type column.
type InvalidTransactionType struct {
	Raw string
}

func (e *InvalidTransactionType) Error() string {
	return fmt.Sprintf("invalid transaction type %q", e.Raw)
}

// EnqueueFailed records a transaction the dispatcher could not hand to a
// worker because the worker's mailbox had already been closed.
type EnqueueFailed struct {
	Customer CustomerID
	Tx       TxID
}

func (e *EnqueueFailed) Error() string {
	return fmt.Sprintf("could not enqueue transaction %d for customer %d: worker already terminated", e.Tx, e.Customer)
}

// WorkerTerminated records a worker that aborted mid-stream after detecting
// a broken balance invariant, instead of running to completion. No snapshot
// is emitted for the customer; any transaction still in flight for it fails
// with EnqueueFailed once its mailbox is found closed.
type WorkerTerminated struct {
	Customer CustomerID
	Detail   string
}

func (e *WorkerTerminated) Error() string {
	return fmt.Sprintf("worker for customer %d terminated unexpectedly: %s", e.Customer, e.Detail)
}
