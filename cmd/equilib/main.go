// Command equilib computes Nash equilibria of games in the .efg and
// .nfg text formats.
//
//	equilib --method lcp --rational game.efg
//	equilib --method all --behavior game.efg
//
// Each equilibrium is printed on one line, prefixed with the method
// that found it. --method all runs every applicable solver
// concurrently over the same game.
package main

import (
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/equilib/equilib/config"
	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/gamefile"
	"github.com/equilib/equilib/nash"
	"github.com/equilib/equilib/value"
)

var allMethods = []string{"enumpure", "enummixed", "lcp", "lp", "liap", "simpdiv", "ipa", "gnm"}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if len(cfg.Args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: equilib [flags] <game file>")
		os.Exit(2)
	}

	g, err := gamefile.ReadGameFile(cfg.Args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load game")
	}

	methods := []string{cfg.Method}
	if cfg.Method == "all" {
		methods = allMethods
	}

	var mu sync.Mutex
	lines := make(map[string][]string, len(methods))
	var eg errgroup.Group
	for _, method := range methods {
		method := method
		eg.Go(func() error {
			out, err := runMethod(method, g, cfg)
			if err != nil {
				if cfg.Method == "all" {
					log.Warn().Err(err).Str("method", method).Msg("skipping method")
					return nil
				}
				return err
			}
			mu.Lock()
			lines[method] = out
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}

	for _, method := range methods {
		for _, l := range lines[method] {
			fmt.Printf("%s: %s\n", method, l)
		}
	}
}

func runMethod(method string, g game.Game, cfg *config.Config) ([]string, error) {
	if cfg.Rational {
		var ar value.Rational
		return solve[*big.Rat](method, g, ar, cfg)
	}
	return solve[float64](method, g, value.NewDouble(), cfg)
}

// tree returns the extensive form, required by the behavior-mode and
// agent-form solvers.
func tree(g game.Game) (*game.Tree, error) {
	t, ok := g.(*game.Tree)
	if !ok {
		return nil, fmt.Errorf("behavior mode requires an extensive-form game")
	}
	return t, nil
}

func solve[T any](method string, g game.Game, ar value.Arith[T], cfg *config.Config) ([]string, error) {
	if cfg.Behavior {
		switch method {
		case "enumpure", "lcp", "lp", "liap":
		default:
			return nil, fmt.Errorf("method %q does not support behavior mode", method)
		}
	}
	switch method {
	case "enumpure":
		if cfg.Behavior {
			t, err := tree(g)
			if err != nil {
				return nil, err
			}
			rs, err := nash.EnumPureAgentSolve(t, ar, nash.EnumPureParams{StopAfter: cfg.StopAfter})
			if err != nil {
				return nil, err
			}
			return behaviorLines(rs), nil
		}
		rs, err := nash.EnumPureSolve(g, ar, nash.EnumPureParams{StopAfter: cfg.StopAfter})
		if err != nil {
			return nil, err
		}
		return mixedLines(rs), nil

	case "enummixed":
		rs, err := nash.EnumMixedSolve(g, ar, nash.EnumMixedParams{StopAfter: cfg.StopAfter})
		if err != nil {
			return nil, err
		}
		return mixedLines(rs), nil

	case "lcp":
		params := nash.LcpParams{MaxPivots: cfg.MaxPivots}
		if cfg.Behavior {
			t, err := tree(g)
			if err != nil {
				return nil, err
			}
			rs, err := nash.LcpBehaviorSolve(t, ar, params)
			if err != nil {
				return nil, err
			}
			return behaviorLines(rs), nil
		}
		rs, err := nash.LcpSolve(g, ar, params)
		if err != nil {
			return nil, err
		}
		return mixedLines(rs), nil

	case "lp":
		params := nash.LpParams{MaxPivots: cfg.MaxPivots}
		if cfg.Behavior {
			t, err := tree(g)
			if err != nil {
				return nil, err
			}
			rs, err := nash.LpBehaviorSolve(t, ar, params)
			if err != nil {
				return nil, err
			}
			return behaviorLines(rs), nil
		}
		rs, err := nash.LpSolve(g, ar, params)
		if err != nil {
			return nil, err
		}
		return mixedLines(rs), nil

	case "liap":
		params := nash.LiapParams{
			MaxIters:  cfg.MaxIters,
			NumTries:  cfg.NumTries,
			Seed:      cfg.Seed,
			StopAfter: cfg.StopAfter,
		}
		if cfg.Behavior {
			t, err := tree(g)
			if err != nil {
				return nil, err
			}
			rs, err := nash.LiapBehaviorSolve(t, params)
			if err != nil {
				return nil, err
			}
			return behaviorLines(rs), nil
		}
		rs, err := nash.LiapSolve(g, params)
		if err != nil {
			return nil, err
		}
		return mixedLines(rs), nil

	case "simpdiv":
		rs, err := nash.SimpdivSolve(g, ar, nash.SimpdivParams{
			GridResolution: cfg.GridResolution,
			MaxIters:       cfg.MaxIters,
		})
		if err != nil {
			return nil, err
		}
		return mixedLines(rs), nil

	case "ipa":
		rs, err := nash.IpaSolve(g, nash.IpaParams{
			MaxIters:  cfg.MaxIters,
			MaxPivots: cfg.MaxPivots,
		})
		if err != nil {
			return nil, err
		}
		return mixedLines(rs), nil

	case "gnm":
		rs, err := nash.GnmSolve(g, nash.GnmParams{
			MaxPivots: cfg.MaxPivots,
			MaxIters:  cfg.MaxIters,
		})
		if err != nil {
			return nil, err
		}
		return mixedLines(rs), nil
	}
	return nil, fmt.Errorf("unknown method %q", method)
}

func mixedLines[T any](rs *nash.ResultSet[*game.MixedStrategyProfile[T]]) []string {
	out := make([]string, 0, rs.Len())
	for _, p := range rs.Profiles() {
		out = append(out, p.String())
	}
	return out
}

func behaviorLines[T any](rs *nash.ResultSet[*game.MixedBehaviorProfile[T]]) []string {
	out := make([]string, 0, rs.Len())
	for _, p := range rs.Profiles() {
		out = append(out, p.String())
	}
	return out
}
