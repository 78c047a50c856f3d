package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kelsonhasi/ledgerflow"
	"github.com/spf13/pflag"
)

// runInspector drops into a line-oriented REPL over a finished batch's
// snapshots and errors. It never reopens the batch itself: the result set
// is static by the time this runs.
func runInspector(agg *ledgerflow.Aggregator) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "ledgerctl> ",
		HistoryFile: "/tmp/ledgerctl_history",
	})
	if err != nil {
		fmt.Println("inspector: failed to start:", err)
		return
	}
	defer rl.Close()

	snapshots := agg.Snapshots()
	errs := agg.Errors()

	fmt.Println("interactive inspector: snapshot, list, errors, quit")

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return
		case "list":
			for _, s := range snapshots {
				printSnapshot(s)
			}
		case "errors":
			for _, e := range errs {
				fmt.Println(e.Error())
			}
		case "snapshot":
			fs := pflag.NewFlagSet("snapshot", pflag.ContinueOnError)
			customer := fs.Uint32("customer", 0, "customer id to look up")
			if err := fs.Parse(fields[1:]); err != nil {
				fmt.Println(err)
				continue
			}
			found := false
			for _, s := range snapshots {
				if uint32(s.Customer) == *customer {
					printSnapshot(s)
					found = true
				}
			}
			if !found {
				fmt.Println("no snapshot for customer", *customer)
			}
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func printSnapshot(s ledgerflow.Snapshot) {
	fmt.Printf("client=%d available=%s held=%s total=%s locked=%s\n",
		s.Customer, s.Available, s.Held, s.Total, strconv.FormatBool(s.Locked))
}
