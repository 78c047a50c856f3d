// Package ledgerflow replays a stream of per-customer transactions against
// sharded, concurrently-running account ledgers and collects the resulting
// snapshots.
package ledgerflow

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CustomerID identifies the account a transaction belongs to.
type CustomerID uint32

// TxID identifies a transaction, expected unique per customer over a batch.
type TxID uint32

// Amount is a monetary quantity stored as ticks of 1/10000, so that all
// arithmetic on it is exact integer arithmetic rather than floating point.
type Amount int64

// Round normalizes x to four fractional digits using half-away-from-zero
// rounding.
func Round(x float64) Amount {
	scaled := x * 10000
	if scaled >= 0 {
		return Amount(math.Floor(scaled + 0.5))
	}
	return Amount(math.Ceil(scaled - 0.5))
}

// ParseAmount parses a decimal string directly into ticks, rounding any
// digits past the fourth fractional place half-away-from-zero. It never
// routes through float64, so it does not inherit binary-float representation
// error for inputs like "1.123123".
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("ledgerflow: empty amount")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, errors.Errorf("ledgerflow: invalid amount %q", s)
	}

	whole, err := strconv.ParseInt(intPart, 10, 63)
	if err != nil {
		return 0, errors.Wrapf(err, "ledgerflow: invalid amount %q", s)
	}

	var frac int64
	if len(fracPart) > 0 {
		kept := fracPart
		roundUp := false
		if len(kept) > 4 {
			roundUp = kept[4] >= '5'
			kept = kept[:4]
		}
		for len(kept) < 4 {
			kept += "0"
		}
		frac, err = strconv.ParseInt(kept, 10, 32)
		if err != nil {
			return 0, errors.Wrapf(err, "ledgerflow: invalid amount %q", s)
		}
		if roundUp {
			frac++
		}
	}

	ticks := whole*10000 + frac
	if neg {
		ticks = -ticks
	}
	return Amount(ticks), nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Float64 returns the amount as a floating point value of the given ticks.
func (a Amount) Float64() float64 {
	return float64(a) / 10000
}

// String renders the amount with up to four fractional digits, trimming
// trailing zeros but keeping at least one digit after the point.
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	whole, frac := v/10000, v%10000
	s := fmt.Sprintf("%s%d.%04d", sign, whole, frac)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// Kind distinguishes the five transaction variants.
type Kind uint8

const (
	Deposit Kind = iota
	Withdrawal
	Dispute
	Resolve
	Chargeback
)

func (k Kind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case Dispute:
		return "dispute"
	case Resolve:
		return "resolve"
	case Chargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Transaction is a tagged variant over the five transaction kinds. Dispute,
// Resolve and Chargeback carry no Amount.
type Transaction struct {
	Kind     Kind
	Customer CustomerID
	Tx       TxID
	Amount   Amount
}

// Client returns the customer a transaction is addressed to. This is the
// one operation the dispatcher needs to route a record.
func (t Transaction) Client() CustomerID {
	return t.Customer
}

// Status is the per-tx lifecycle state recorded by a ledger worker.
type Status uint8

const (
	noStatus Status = iota
	Deposited
	Withdrew
	FailedDeposit
	FailedWithdrawal
	OnDispute
	Resolved
	Chargedback
)

func (s Status) String() string {
	switch s {
	case Deposited:
		return "Deposited"
	case Withdrew:
		return "Withdrew"
	case FailedDeposit:
		return "FailedDeposit"
	case FailedWithdrawal:
		return "FailedWithdrawal"
	case OnDispute:
		return "OnDispute"
	case Resolved:
		return "Resolved"
	case Chargedback:
		return "Chargeback"
	default:
		return "None"
	}
}

// entry is the (status, signed amount) pair recorded for a tx: +amount for
// a deposit, -amount for a withdrawal.
type entry struct {
	status Status
	amount Amount
}

// Snapshot is the externally visible result of replaying one customer's
// transactions to completion.
type Snapshot struct {
	Customer  CustomerID
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}
