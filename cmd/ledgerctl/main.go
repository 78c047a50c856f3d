// Command ledgerctl replays a CSV batch of customer transactions against
// sharded per-customer ledgers and prints the resulting account snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/kelsonhasi/ledgerflow"
	"github.com/kelsonhasi/ledgerflow/config"
	"github.com/kelsonhasi/ledgerflow/csv"
	"github.com/kelsonhasi/ledgerflow/log"
	"github.com/kelsonhasi/ledgerflow/metrics"
	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

func main() {
	app := cli.NewApp()

	app.Name = "ledgerctl"
	app.Usage = "replay a CSV batch of transactions against sharded customer ledgers"
	app.Version = "0.1.0"
	app.ArgsUsage = "<input.csv>"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Load defaults from a YAML config file at `PATH`.",
		},
		cli.UintFlag{
			Name:  "workers, w",
			Usage: "Bound the worker pool to `N` concurrent customers (default: logical CPU count).",
		},
		cli.BoolFlag{
			Name:  "sorted",
			Usage: "Emit output snapshots sorted by ascending customer id.",
		},
		cli.BoolFlag{
			Name:  "always-zero",
			Usage: "Always exit 0, even if errors occurred (default: exit 1 on any error).",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored error output.",
		},
		cli.BoolFlag{
			Name:  "metrics",
			Usage: "Dump operational counters to stderr after the batch completes.",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "Set the log level: debug, info, warn, error.",
		},
		cli.BoolFlag{
			Name:  "inspect, i",
			Usage: "Drop into an interactive inspector after the batch completes.",
		},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log.SetLevel(c.String("log-level"))

	if c.NArg() != 1 {
		return cli.NewExitError("usage: ledgerctl [options] <input.csv>", 2)
	}
	inputPath := c.Args().Get(0)

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("workers") {
		cfg.Workers = int(c.Uint("workers"))
	}
	if c.IsSet("sorted") {
		cfg.Sorted = c.Bool("sorted")
	}
	if c.IsSet("always-zero") {
		cfg.ExitPolicy = config.ExitAlwaysZero
	}
	if c.IsSet("no-color") {
		cfg.Color = !c.Bool("no-color")
	}
	if c.IsSet("metrics") {
		cfg.Metrics = c.Bool("metrics")
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return errors.Wrapf(err, "ledgerctl: failed to open %s", inputPath)
	}
	defer file.Close()

	var collector *metrics.Collector
	if cfg.Metrics {
		collector = metrics.NewCollector()
	}

	agg := ledgerflow.NewAggregator(collector)
	dispatcher := ledgerflow.NewDispatcher(agg, cfg.Workers, collector)
	txs := csv.ReadTransactions(file, agg)

	if collector != nil {
		collector.BatchDuration.Time(func() { dispatcher.Run(txs) })
	} else {
		dispatcher.Run(txs)
	}

	snapshots := agg.Snapshots()
	errs := agg.Errors()

	if err := csv.WriteSnapshots(os.Stdout, snapshots, cfg.Sorted); err != nil {
		return errors.Wrap(err, "ledgerctl: failed to write snapshots")
	}

	if len(errs) > 0 {
		if cfg.Color {
			csv.WriteErrors(colorable.NewColorableStderr(), errs, true)
		} else {
			csv.WriteErrors(os.Stderr, errs, false)
		}
	}

	if collector != nil {
		collector.WriteJSON(os.Stderr)
		median, mean, p95 := collector.LatencySummary()
		fmt.Fprintf(os.Stderr, "worker latency: median=%s mean=%s p95=%s\n", median, mean, p95)
	}

	if c.Bool("inspect") {
		runInspector(agg)
	}

	if cfg.ExitPolicy == config.ExitOneOnError && len(errs) > 0 {
		return cli.NewExitError("", 1)
	}
	return nil
}
