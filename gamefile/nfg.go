package gamefile

import (
	"math/big"

	"github.com/equilib/equilib/game"
)

// The strategic-form format: a prologue line
//
//	NFG 1 R "title" { "player" ... }
//
// then either a brace list of strategy counts or a nested brace list
// of strategy names, an optional quoted comment, and the payoffs.
// Payoffs come either as a flat list of numbers (one cell after
// another, the first player's strategy varying fastest, each cell
// listing one payoff per player) or as a brace list of named outcomes
// followed by one outcome index per cell, 0 meaning all-zero payoffs.

func parseNFG(lx *lexer) (*game.Strategic, error) {
	if _, err := lx.expect(tokWord, `"NFG"`); err != nil {
		return nil, err
	}
	ver, vt, err := lx.integer()
	if err != nil {
		return nil, err
	}
	if ver != 1 {
		return nil, errAt(vt, "unsupported strategic-form version %d", ver)
	}
	mode, err := lx.expect(tokWord, "a payoff mode")
	if err != nil {
		return nil, err
	}
	if mode.text != "R" && mode.text != "D" {
		return nil, errAt(mode, "unknown payoff mode %q", mode.text)
	}
	title, err := lx.text()
	if err != nil {
		return nil, err
	}
	if _, err := lx.expect(tokLBrace, `"{"`); err != nil {
		return nil, err
	}
	var players []string
	for {
		t, err := lx.next()
		if err != nil {
			return nil, err
		}
		if t.kind == tokRBrace {
			break
		}
		if t.kind != tokText {
			return nil, errAt(t, "expected a player name, got %q", t.text)
		}
		players = append(players, t.text)
	}

	strategyLabels, err := strategyLists(lx, len(players))
	if err != nil {
		return nil, err
	}
	g := game.NewStrategic(title, players, strategyLabels)

	if t, err := lx.peek(); err != nil {
		return nil, err
	} else if t.kind == tokText {
		lx.next() // comment, discarded
	}

	t, err := lx.peek()
	if err != nil {
		return nil, err
	}
	if t.kind == tokLBrace {
		err = outcomePayoffs(lx, g)
	} else {
		err = flatPayoffs(lx, g)
	}
	if err != nil {
		return nil, err
	}
	if t, err := lx.next(); err != nil {
		return nil, err
	} else if t.kind != tokEOF {
		return nil, errAt(t, "unexpected %q after the payoffs", t.text)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// strategyLists reads either { 3 2 } or { { "a" "b" "c" } { "x" "y" } }.
func strategyLists(lx *lexer, numPlayers int) ([][]string, error) {
	open, err := lx.expect(tokLBrace, `"{"`)
	if err != nil {
		return nil, err
	}
	first, err := lx.peek()
	if err != nil {
		return nil, err
	}

	labels := make([][]string, 0, numPlayers)
	if first.kind == tokWord {
		for {
			t, err := lx.peek()
			if err != nil {
				return nil, err
			}
			if t.kind == tokRBrace {
				lx.next()
				break
			}
			n, nt, err := lx.integer()
			if err != nil {
				return nil, err
			}
			if n <= 0 {
				return nil, errAt(nt, "strategy count must be positive, got %d", n)
			}
			labels = append(labels, make([]string, n))
		}
	} else {
		for {
			t, err := lx.next()
			if err != nil {
				return nil, err
			}
			if t.kind == tokRBrace {
				break
			}
			if t.kind != tokLBrace {
				return nil, errAt(t, "expected a strategy list, got %q", t.text)
			}
			var row []string
			for {
				t, err := lx.next()
				if err != nil {
					return nil, err
				}
				if t.kind == tokRBrace {
					break
				}
				if t.kind != tokText {
					return nil, errAt(t, "expected a strategy name, got %q", t.text)
				}
				row = append(row, t.text)
			}
			labels = append(labels, row)
		}
	}
	if len(labels) != numPlayers {
		return nil, errAt(open, "%d strategy lists for %d players", len(labels), numPlayers)
	}
	return labels, nil
}

// flatPayoffs reads NumProfiles cells of one number per player.
func flatPayoffs(lx *lexer, g *game.Strategic) error {
	for flat := 0; flat < g.NumProfiles(); flat++ {
		profile := g.ProfileAt(flat)
		for pl := 0; pl < g.NumPlayers(); pl++ {
			v, _, err := lx.rational()
			if err != nil {
				return err
			}
			g.SetPayoff(profile, pl, v)
		}
	}
	return nil
}

// outcomePayoffs reads { { "name" v, v } ... } then one outcome index
// per cell.
func outcomePayoffs(lx *lexer, g *game.Strategic) error {
	if _, err := lx.expect(tokLBrace, `"{"`); err != nil {
		return err
	}
	var outcomes [][]*big.Rat
	for {
		t, err := lx.next()
		if err != nil {
			return err
		}
		if t.kind == tokRBrace {
			break
		}
		if t.kind != tokLBrace {
			return errAt(t, "expected an outcome, got %q", t.text)
		}
		if _, err := lx.text(); err != nil {
			return err
		}
		var payoffs []*big.Rat
		for {
			t, err := lx.peek()
			if err != nil {
				return err
			}
			if t.kind == tokRBrace {
				lx.next()
				break
			}
			if t.kind == tokComma {
				lx.next()
				continue
			}
			v, _, err := lx.rational()
			if err != nil {
				return err
			}
			payoffs = append(payoffs, v)
		}
		if len(payoffs) != g.NumPlayers() {
			return errAt(t, "outcome has %d payoffs for %d players", len(payoffs), g.NumPlayers())
		}
		outcomes = append(outcomes, payoffs)
	}

	zero := make([]*big.Rat, g.NumPlayers())
	for pl := range zero {
		zero[pl] = new(big.Rat)
	}
	for flat := 0; flat < g.NumProfiles(); flat++ {
		idx, it, err := lx.integer()
		if err != nil {
			return err
		}
		cell := zero
		if idx != 0 {
			if idx < 1 || idx > len(outcomes) {
				return errAt(it, "outcome index %d out of range", idx)
			}
			cell = outcomes[idx-1]
		}
		profile := g.ProfileAt(flat)
		for pl, v := range cell {
			g.SetPayoff(profile, pl, v)
		}
	}
	return nil
}
