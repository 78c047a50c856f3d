// Package config resolves the CLI's runtime options from built-in
// defaults, an optional YAML file, and (by the caller layering on top)
// command-line flags.
package config

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ExitPolicy controls the CLI's exit code after a batch completes.
// ExitOneOnError is the default; ExitAlwaysZero is exposed for callers that
// prefer to always exit 0 and inspect stderr for errors instead.
type ExitPolicy string

const (
	ExitAlwaysZero ExitPolicy = "always-zero"
	ExitOneOnError ExitPolicy = "exit-one-on-error"
)

// Config holds the options the CLI entrypoint resolves before running a
// batch.
type Config struct {
	Workers    int
	ExitPolicy ExitPolicy
	Sorted     bool
	Color      bool
	Metrics    bool
}

// Default returns the configuration used when neither a config file nor
// flags override anything.
func Default() Config {
	return Config{
		Workers:    runtime.NumCPU(),
		ExitPolicy: ExitOneOnError,
		Sorted:     false,
		Color:      true,
	}
}

// Load merges Default with an optional YAML file at path. An empty path is
// not an error; it returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, errors.Wrapf(err, "ledgerflow/config: failed to read %s", path)
	}

	if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}
	if v.IsSet("exit_policy") {
		cfg.ExitPolicy = ExitPolicy(v.GetString("exit_policy"))
	}
	if v.IsSet("sorted") {
		cfg.Sorted = v.GetBool("sorted")
	}
	if v.IsSet("color") {
		cfg.Color = v.GetBool("color")
	}
	if v.IsSet("metrics") {
		cfg.Metrics = v.GetBool("metrics")
	}

	return cfg, nil
}
