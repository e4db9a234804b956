package game

import (
	"math/big"
)

// Game is the read-only query surface shared by both representations.
// Solvers that work on the strategic form depend only on this
// interface; behavior-form solvers additionally require a *Tree.
// Implementations are immutable once validated, so a single game may
// be read concurrently by any number of solver invocations.
type Game interface {
	Title() string
	NumPlayers() int
	Players() []*Player
	// IsConstSum reports whether the players' payoffs sum to the same
	// constant in every cell.
	IsConstSum() bool
	// Strategic returns the strategic-form view of the game. For a
	// Strategic game it is the receiver itself; for a Tree it is the
	// strategic form derived from the tree.
	Strategic() *Strategic
}

// Strategic is a finite game in strategic (payoff-table) form. Payoffs
// are stored as exact rationals regardless of the numeric mode a
// solver later runs in; kernels convert on demand.
//
// Build one with NewStrategic, fill in every cell with SetPayoff, then
// call Validate. After a successful Validate the game must be treated
// as immutable.
type Strategic struct {
	title   string
	players []*Player
	dims    []int
	// payoffs[flat][pl]; flat index has player 0's strategy varying
	// fastest, matching the NFG file payoff order.
	payoffs  [][]*big.Rat
	constSum bool
	// tree is the game tree this strategic form was derived from, nil
	// for native strategic games.
	tree *Tree
}

// Tree returns the extensive form this game was derived from, or nil
// for a native strategic-form game.
func (g *Strategic) Tree() *Tree { return g.tree }

// NewStrategic creates an empty strategic game. strategyLabels must
// have one non-empty slice per player; labels may be blank strings.
func NewStrategic(title string, playerLabels []string, strategyLabels [][]string) *Strategic {
	g := &Strategic{title: title}
	ncells := 1
	for i, pl := range playerLabels {
		p := &Player{index: i, label: pl}
		for j, sl := range strategyLabels[i] {
			p.strategies = append(p.strategies, &Strategy{player: p, index: j, label: sl})
		}
		g.players = append(g.players, p)
		g.dims = append(g.dims, len(p.strategies))
		ncells *= len(p.strategies)
	}
	g.payoffs = make([][]*big.Rat, ncells)
	for i := range g.payoffs {
		g.payoffs[i] = make([]*big.Rat, len(g.players))
	}
	return g
}

func (g *Strategic) Title() string      { return g.title }
func (g *Strategic) NumPlayers() int    { return len(g.players) }
func (g *Strategic) Players() []*Player { return g.players }
func (g *Strategic) IsConstSum() bool   { return g.constSum }

func (g *Strategic) Strategic() *Strategic { return g }

// Dims returns the number of strategies per player.
func (g *Strategic) Dims() []int {
	d := make([]int, len(g.dims))
	copy(d, g.dims)
	return d
}

// NumProfiles is the number of pure strategy profiles.
func (g *Strategic) NumProfiles() int { return len(g.payoffs) }

func (g *Strategic) flatIndex(profile []int) int {
	idx, mult := 0, 1
	for pl, s := range profile {
		idx += s * mult
		mult *= g.dims[pl]
	}
	return idx
}

// ProfileAt decodes the flat cell index back into a pure profile. The
// inverse of the internal flat indexing; used for cell iteration.
func (g *Strategic) ProfileAt(flat int) []int {
	profile := make([]int, len(g.dims))
	for pl, d := range g.dims {
		profile[pl] = flat % d
		flat /= d
	}
	return profile
}

// SetPayoff sets player pl's payoff for the pure profile. The value is
// copied.
func (g *Strategic) SetPayoff(profile []int, pl int, v *big.Rat) {
	g.payoffs[g.flatIndex(profile)][pl] = new(big.Rat).Set(v)
}

// Payoff returns player pl's payoff for the pure profile, one strategy
// index per player. The returned value must not be mutated.
func (g *Strategic) Payoff(profile []int, pl int) *big.Rat {
	return g.payoffs[g.flatIndex(profile)][pl]
}

func (g *Strategic) payoffFlat(flat, pl int) *big.Rat { return g.payoffs[flat][pl] }

// Validate checks that every payoff cell has been filled for every
// player and freezes derived structure (the constant-sum property).
// Returns an error wrapping ErrInvalidGame on the first inconsistency.
func (g *Strategic) Validate() error {
	if len(g.players) == 0 {
		return invalidf("game has no players")
	}
	for pl, d := range g.dims {
		if d == 0 {
			return invalidf("player %d has no strategies", pl+1)
		}
	}
	var sum *big.Rat
	g.constSum = true
	for flat, cell := range g.payoffs {
		cellSum := new(big.Rat)
		for pl, v := range cell {
			if v == nil {
				return invalidf("missing payoff for player %d in cell %v", pl+1, g.ProfileAt(flat))
			}
			cellSum.Add(cellSum, v)
		}
		if sum == nil {
			sum = cellSum
		} else if sum.Cmp(cellSum) != 0 {
			g.constSum = false
		}
	}
	return nil
}
