// Package config centralizes engine settings: solver selection,
// numeric mode and iteration budgets, loadable from command-line flags
// with environment-variable overrides.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Method    string
	Rational  bool
	Behavior  bool
	StopAfter int
	LogLevel  string

	MaxPivots      int
	MaxIters       int
	NumTries       int
	Seed           uint64
	GridResolution int

	// Args holds the positional arguments left after flag parsing,
	// normally the game file path.
	Args []string
}

// Load parses flags from args and merges EQUILIB_* environment
// variables over the flag defaults.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("equilib", pflag.ContinueOnError)
	fs.String("method", "enummixed",
		"solver: enumpure, enummixed, lcp, lp, liap, simpdiv, ipa, gnm, or all")
	fs.Bool("rational", false, "use exact rational arithmetic where the solver supports it")
	fs.Bool("behavior", false, "solve extensive games in behavior strategies")
	fs.Int("stop-after", 0, "stop after this many equilibria (0 = no limit)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Int("max-pivots", 0, "pivot budget for the pivoting solvers (0 = default)")
	fs.Int("max-iters", 0, "iteration budget for the iterative solvers (0 = default)")
	fs.Int("num-tries", 0, "restarts for the function minimization solver (0 = default)")
	fs.Uint64("seed", 0, "random seed for restart perturbations")
	fs.Int("grid", 0, "initial grid resolution for the subdivision solver (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("equilib")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	c.Method = v.GetString("method")
	c.Rational = v.GetBool("rational")
	c.Behavior = v.GetBool("behavior")
	c.StopAfter = v.GetInt("stop-after")
	c.LogLevel = v.GetString("log-level")
	c.MaxPivots = v.GetInt("max-pivots")
	c.MaxIters = v.GetInt("max-iters")
	c.NumTries = v.GetInt("num-tries")
	c.Seed = v.GetUint64("seed")
	c.GridResolution = v.GetInt("grid")
	c.Args = fs.Args()
	return nil
}
