// Package csv adapts the wire CSV formats documented in the core's external
// interfaces to and from ledgerflow.Transaction / ledgerflow.Snapshot. The
// core itself never imports this package; it consumes and produces plain
// Go values.
package csv

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/kelsonhasi/ledgerflow"
	"github.com/kelsonhasi/ledgerflow/log"
	"github.com/pkg/errors"
)

// ReadTransactions parses r as `type, client, tx, amount` CSV and streams
// parsed transactions on the returned channel, closing it once r is
// exhausted. Malformed rows are reported to agg and skipped rather than
// aborting the read, matching the core's own no-transaction-aborts-the-
// batch failure semantics.
func ReadTransactions(r io.Reader, agg *ledgerflow.Aggregator) <-chan ledgerflow.Transaction {
	out := make(chan ledgerflow.Transaction)
	lg := log.Adapter()

	go func() {
		defer close(out)

		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true

		if _, err := cr.Read(); err != nil {
			if err != io.EOF {
				agg.AddError(errors.Wrap(err, "ledgerflow/csv: failed to read header"))
			}
			return
		}

		for {
			record, err := cr.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				agg.AddError(errors.Wrap(err, "ledgerflow/csv: failed to read record"))
				continue
			}

			tx, err := parseRecord(record)
			if err != nil {
				lg.Warn().Err(err).Msg("skipping malformed record")
				agg.AddError(err)
				continue
			}
			out <- tx
		}
	}()

	return out
}

func parseRecord(record []string) (ledgerflow.Transaction, error) {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	if len(record) < 3 {
		return ledgerflow.Transaction{}, &ledgerflow.InvalidTransactionType{Raw: strings.Join(record, ",")}
	}

	var kind ledgerflow.Kind
	switch strings.ToLower(record[0]) {
	case "deposit":
		kind = ledgerflow.Deposit
	case "withdrawal":
		kind = ledgerflow.Withdrawal
	case "dispute":
		kind = ledgerflow.Dispute
	case "resolve":
		kind = ledgerflow.Resolve
	case "chargeback":
		kind = ledgerflow.Chargeback
	default:
		return ledgerflow.Transaction{}, &ledgerflow.InvalidTransactionType{Raw: record[0]}
	}

	client, err := strconv.ParseUint(record[1], 10, 32)
	if err != nil {
		return ledgerflow.Transaction{}, errors.Wrapf(err, "ledgerflow/csv: invalid client %q", record[1])
	}
	txID, err := strconv.ParseUint(record[2], 10, 32)
	if err != nil {
		return ledgerflow.Transaction{}, errors.Wrapf(err, "ledgerflow/csv: invalid tx %q", record[2])
	}

	t := ledgerflow.Transaction{
		Kind:     kind,
		Customer: ledgerflow.CustomerID(client),
		Tx:       ledgerflow.TxID(txID),
	}

	if kind == ledgerflow.Deposit || kind == ledgerflow.Withdrawal {
		if len(record) < 4 || record[3] == "" {
			return ledgerflow.Transaction{}, errors.Errorf("ledgerflow/csv: %s transaction %d missing amount", kind, txID)
		}
		amt, err := ledgerflow.ParseAmount(record[3])
		if err != nil {
			return ledgerflow.Transaction{}, errors.Wrapf(err, "ledgerflow/csv: invalid amount for transaction %d", txID)
		}
		t.Amount = amt
	}

	return t, nil
}
