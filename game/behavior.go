package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/equilib/equilib/value"
)

// MixedBehaviorProfile assigns a probability to every action at every
// personal infoset of a game tree, over the numeric kernel T. Entries
// are indexed by the infoset's global index and the action index.
type MixedBehaviorProfile[T any] struct {
	t     *Tree
	ar    value.Arith[T]
	probs [][]T
}

// NewMixedBehaviorProfile returns the centroid profile, uniform at
// every infoset.
func NewMixedBehaviorProfile[T any](t *Tree, ar value.Arith[T]) *MixedBehaviorProfile[T] {
	probs := make([][]T, len(t.infosets))
	for gi, is := range t.infosets {
		probs[gi] = make([]T, len(is.actions))
		u := ar.Div(ar.One(), ar.FromInt(int64(len(is.actions))))
		for a := range probs[gi] {
			probs[gi][a] = u
		}
	}
	return &MixedBehaviorProfile[T]{t: t, ar: ar, probs: probs}
}

// NewMixedBehaviorProfileData builds a profile from a nested table,
// one row per infoset in player-major order. Each row must sum to one
// under the kernel's equality.
func NewMixedBehaviorProfileData[T any](t *Tree, ar value.Arith[T], data [][]T) (*MixedBehaviorProfile[T], error) {
	if len(data) != len(t.infosets) {
		return nil, fmt.Errorf("profile: %d rows for %d infosets", len(data), len(t.infosets))
	}
	probs := make([][]T, len(data))
	for gi, row := range data {
		is := t.infosets[gi]
		if len(row) != len(is.actions) {
			return nil, fmt.Errorf("profile: infoset %d has %d actions, got %d probabilities",
				gi, len(is.actions), len(row))
		}
		sum := ar.Zero()
		probs[gi] = make([]T, len(row))
		for a, v := range row {
			if ar.Sign(v) < 0 {
				return nil, fmt.Errorf("profile: negative probability %s", ar.String(v))
			}
			probs[gi][a] = v
			sum = ar.Add(sum, v)
		}
		if !ar.Equal(sum, ar.One()) {
			return nil, fmt.Errorf("profile: infoset %d probabilities sum to %s, not 1",
				gi, ar.String(sum))
		}
	}
	return &MixedBehaviorProfile[T]{t: t, ar: ar, probs: probs}, nil
}

func (b *MixedBehaviorProfile[T]) Tree() *Tree { return b.t }

func (b *MixedBehaviorProfile[T]) Prob(gindex, act int) T { return b.probs[gindex][act] }

// SetProb overwrites a single entry without re-validating the
// per-infoset sum.
func (b *MixedBehaviorProfile[T]) SetProb(gindex, act int, v T) { b.probs[gindex][act] = v }

func (b *MixedBehaviorProfile[T]) Clone() *MixedBehaviorProfile[T] {
	probs := make([][]T, len(b.probs))
	for gi, row := range b.probs {
		probs[gi] = append([]T(nil), row...)
	}
	return &MixedBehaviorProfile[T]{t: b.t, ar: b.ar, probs: probs}
}

// Payoff is the expected payoff to player pl under the profile.
func (b *MixedBehaviorProfile[T]) Payoff(pl int) T {
	return b.payoffNode(b.t.root, pl, nil, 0)
}

// ActionValue is the expected payoff to the infoset's player when the
// behavior at that single infoset is replaced by the pure action act,
// everything else unchanged. This is the agent-form deviation payoff.
func (b *MixedBehaviorProfile[T]) ActionValue(is *Infoset, act int) T {
	return b.payoffNode(b.t.root, is.player.index, is, act)
}

func (b *MixedBehaviorProfile[T]) payoffNode(n *Node, pl int, override *Infoset, oact int) T {
	ar := b.ar
	val := ar.Zero()
	if n.outcome != nil {
		val = ar.FromRat(n.outcome.payoffs[pl])
	}
	if n.IsTerminal() {
		return val
	}
	is := n.infoset
	for i, c := range n.children {
		var p T
		switch {
		case is.player.IsChance():
			p = ar.FromRat(is.actions[i].prob)
		case is == override:
			if i != oact {
				continue
			}
			p = ar.One()
		default:
			p = b.probs[is.gindex][i]
		}
		if ar.IsZero(p) {
			continue
		}
		val = ar.Add(val, ar.Mul(p, b.payoffNode(c, pl, override, oact)))
	}
	return val
}

// Regret is the gain of the best single-infoset pure deviation for
// player pl over the profile payoff; non-positive at an agent-form
// equilibrium.
func (b *MixedBehaviorProfile[T]) Regret(pl int) T {
	ar := b.ar
	base := b.Payoff(pl)
	var best T
	first := true
	for _, is := range b.t.players[pl].infosets {
		for a := range is.actions {
			d := ar.Sub(b.ActionValue(is, a), base)
			if first || ar.Cmp(d, best) > 0 {
				best = d
				first = false
			}
		}
	}
	if first {
		return ar.Zero()
	}
	return best
}

// MaxRegret is the largest regret over all players.
func (b *MixedBehaviorProfile[T]) MaxRegret() T {
	ar := b.ar
	best := b.Regret(0)
	for pl := 1; pl < len(b.t.players); pl++ {
		r := b.Regret(pl)
		if ar.Cmp(r, best) > 0 {
			best = r
		}
	}
	return best
}

// LiapValue is the agent-form Lyapunov function: the squared positive
// parts of all single-infoset deviation gains.
func (b *MixedBehaviorProfile[T]) LiapValue() T {
	ar := b.ar
	total := ar.Zero()
	for pl := range b.t.players {
		base := b.Payoff(pl)
		for _, is := range b.t.players[pl].infosets {
			for a := range is.actions {
				d := ar.Sub(b.ActionValue(is, a), base)
				if ar.Sign(d) > 0 {
					total = ar.Add(total, ar.Mul(d, d))
				}
			}
		}
	}
	return total
}

// Equal reports entrywise equality under the kernel.
func (b *MixedBehaviorProfile[T]) Equal(o *MixedBehaviorProfile[T]) bool {
	if o == nil || len(b.probs) != len(o.probs) {
		return false
	}
	for gi := range b.probs {
		if len(b.probs[gi]) != len(o.probs[gi]) {
			return false
		}
		for a := range b.probs[gi] {
			if !b.ar.Equal(b.probs[gi][a], o.probs[gi][a]) {
				return false
			}
		}
	}
	return true
}

func (b *MixedBehaviorProfile[T]) String() string {
	rows := lo.Map(b.probs, func(row []T, _ int) string {
		return "[" + strings.Join(lo.Map(row, func(v T, _ int) string {
			return b.ar.String(v)
		}), ", ") + "]"
	})
	return "[" + strings.Join(rows, ", ") + "]"
}

// ToMixed translates the behavior profile into the realization-
// equivalent mixed strategy profile over the derived strategic form:
// each strategy's probability is the product of its action
// probabilities over the player's infosets.
func (b *MixedBehaviorProfile[T]) ToMixed() *MixedStrategyProfile[T] {
	ar := b.ar
	m := NewMixedStrategyProfile(b.t.strategic, ar)
	for _, p := range b.t.players {
		for _, s := range p.strategies {
			pr := ar.One()
			for i, is := range p.infosets {
				pr = ar.Mul(pr, b.probs[is.gindex][s.choices[i]])
			}
			m.SetProb(p.index, s.index, pr)
		}
	}
	return m
}
