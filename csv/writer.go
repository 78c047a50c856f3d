package csv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/btree"
	"github.com/kelsonhasi/ledgerflow"
)

// bySnapshot orders snapshots by customer id for btree insertion.
type bySnapshot ledgerflow.Snapshot

func (a bySnapshot) Less(than btree.Item) bool {
	return a.Customer < than.(bySnapshot).Customer
}

// WriteSnapshots serializes snapshots as `client,available,held,total,
// locked` CSV. The aggregator makes no ordering guarantee across
// customers; when sorted is true, rows are emitted in ascending
// customer-id order via a btree instead of worker-completion order.
func WriteSnapshots(w io.Writer, snapshots []ledgerflow.Snapshot, sorted bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	ordered := snapshots
	if sorted {
		tr := btree.New(32)
		for _, s := range snapshots {
			tr.ReplaceOrInsert(bySnapshot(s))
		}
		ordered = make([]ledgerflow.Snapshot, 0, tr.Len())
		tr.Ascend(func(i btree.Item) bool {
			ordered = append(ordered, ledgerflow.Snapshot(i.(bySnapshot)))
			return true
		})
	}

	for _, s := range ordered {
		row := []string{
			fmt.Sprintf("%d", s.Customer),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			fmt.Sprintf("%t", s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteErrors renders one accumulated error per line, in observation order.
// colored selects whether ANSI red is applied; the caller decides. ledgerctl
// passes its color setting (the -no-color flag or config) and, when colored,
// a mattn/go-colorable stderr; it does not probe whether w is a terminal.
func WriteErrors(w io.Writer, errs []error, colored bool) {
	red := color.New(color.FgRed)
	if colored {
		red.EnableColor()
	} else {
		red.DisableColor()
	}
	for _, err := range errs {
		red.Fprintln(w, err.Error())
	}
}
