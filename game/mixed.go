package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/equilib/equilib/value"
)

// MixedStrategyProfile assigns a probability to every strategy of
// every player, over the numeric kernel T. It is an independent value
// object: it reads the game but the game holds no reference to it.
type MixedStrategyProfile[T any] struct {
	g     *Strategic
	ar    value.Arith[T]
	probs [][]T
}

// NewMixedStrategyProfile returns the centroid profile, uniform over
// each player's strategies.
func NewMixedStrategyProfile[T any](g Game, ar value.Arith[T]) *MixedStrategyProfile[T] {
	s := g.Strategic()
	probs := make([][]T, s.NumPlayers())
	for pl, d := range s.dims {
		probs[pl] = make([]T, d)
		u := ar.Div(ar.One(), ar.FromInt(int64(d)))
		for i := range probs[pl] {
			probs[pl][i] = u
		}
	}
	return &MixedStrategyProfile[T]{g: s, ar: ar, probs: probs}
}

// NewMixedStrategyProfileData builds a profile from a nested
// probability table, one row per player. Each row must sum to one
// under the kernel's equality.
func NewMixedStrategyProfileData[T any](g Game, ar value.Arith[T], data [][]T) (*MixedStrategyProfile[T], error) {
	s := g.Strategic()
	if len(data) != s.NumPlayers() {
		return nil, fmt.Errorf("profile: %d rows for %d players", len(data), s.NumPlayers())
	}
	probs := make([][]T, len(data))
	for pl, row := range data {
		if len(row) != s.dims[pl] {
			return nil, fmt.Errorf("profile: player %d has %d strategies, got %d probabilities",
				pl+1, s.dims[pl], len(row))
		}
		sum := ar.Zero()
		probs[pl] = make([]T, len(row))
		for i, v := range row {
			if ar.Sign(v) < 0 {
				return nil, fmt.Errorf("profile: negative probability %s", ar.String(v))
			}
			probs[pl][i] = v
			sum = ar.Add(sum, v)
		}
		if !ar.Equal(sum, ar.One()) {
			return nil, fmt.Errorf("profile: player %d probabilities sum to %s, not 1",
				pl+1, ar.String(sum))
		}
	}
	return &MixedStrategyProfile[T]{g: s, ar: ar, probs: probs}, nil
}

func (m *MixedStrategyProfile[T]) Game() *Strategic { return m.g }

func (m *MixedStrategyProfile[T]) Prob(pl, st int) T { return m.probs[pl][st] }

// SetProb overwrites a single entry. Solvers use this while iterating;
// it does not re-validate the sum-to-one invariant.
func (m *MixedStrategyProfile[T]) SetProb(pl, st int, v T) { m.probs[pl][st] = v }

func (m *MixedStrategyProfile[T]) Clone() *MixedStrategyProfile[T] {
	probs := make([][]T, len(m.probs))
	for pl, row := range m.probs {
		probs[pl] = append([]T(nil), row...)
	}
	return &MixedStrategyProfile[T]{g: m.g, ar: m.ar, probs: probs}
}

// Payoff is the expected payoff to player pl under the profile.
func (m *MixedStrategyProfile[T]) Payoff(pl int) T {
	ar := m.ar
	total := ar.Zero()
	dims := m.g.dims
	profile := make([]int, len(dims))
	for flat := 0; flat < m.g.NumProfiles(); flat++ {
		rem := flat
		for p, d := range dims {
			profile[p] = rem % d
			rem /= d
		}
		w := ar.One()
		zero := false
		for p := range dims {
			pr := m.probs[p][profile[p]]
			if ar.IsZero(pr) {
				zero = true
				break
			}
			w = ar.Mul(w, pr)
		}
		if zero {
			continue
		}
		total = ar.Add(total, ar.Mul(w, ar.FromRat(m.g.payoffFlat(flat, pl))))
	}
	return total
}

// StrategyValue is the expected payoff to player pl if pl deviates to
// the pure strategy st while everyone else follows the profile.
func (m *MixedStrategyProfile[T]) StrategyValue(pl, st int) T {
	ar := m.ar
	total := ar.Zero()
	dims := m.g.dims
	profile := make([]int, len(dims))
	for flat := 0; flat < m.g.NumProfiles(); flat++ {
		rem := flat
		for p, d := range dims {
			profile[p] = rem % d
			rem /= d
		}
		if profile[pl] != st {
			continue
		}
		w := ar.One()
		zero := false
		for p := range dims {
			if p == pl {
				continue
			}
			pr := m.probs[p][profile[p]]
			if ar.IsZero(pr) {
				zero = true
				break
			}
			w = ar.Mul(w, pr)
		}
		if zero {
			continue
		}
		total = ar.Add(total, ar.Mul(w, ar.FromRat(m.g.payoffFlat(flat, pl))))
	}
	return total
}

// Regret is the gain of player pl's best pure deviation over the
// profile payoff; non-positive at an equilibrium.
func (m *MixedStrategyProfile[T]) Regret(pl int) T {
	ar := m.ar
	base := m.Payoff(pl)
	best := ar.Sub(m.StrategyValue(pl, 0), base)
	for st := 1; st < m.g.dims[pl]; st++ {
		d := ar.Sub(m.StrategyValue(pl, st), base)
		if ar.Cmp(d, best) > 0 {
			best = d
		}
	}
	return best
}

// MaxRegret is the largest regret over all players; zero (or negative)
// exactly when the profile is a Nash equilibrium.
func (m *MixedStrategyProfile[T]) MaxRegret() T {
	ar := m.ar
	best := m.Regret(0)
	for pl := 1; pl < m.g.NumPlayers(); pl++ {
		r := m.Regret(pl)
		if ar.Cmp(r, best) > 0 {
			best = r
		}
	}
	return best
}

// LiapValue is the Lyapunov function of the profile: the sum over all
// players and strategies of the squared positive part of the gain from
// deviating to that strategy. Zero exactly at a Nash equilibrium.
func (m *MixedStrategyProfile[T]) LiapValue() T {
	ar := m.ar
	total := ar.Zero()
	for pl := range m.probs {
		base := m.Payoff(pl)
		for st := 0; st < m.g.dims[pl]; st++ {
			d := ar.Sub(m.StrategyValue(pl, st), base)
			if ar.Sign(d) > 0 {
				total = ar.Add(total, ar.Mul(d, d))
			}
		}
	}
	return total
}

// Equal reports entrywise equality under the kernel: exact in rational
// mode, within epsilon in double mode.
func (m *MixedStrategyProfile[T]) Equal(o *MixedStrategyProfile[T]) bool {
	if o == nil || len(m.probs) != len(o.probs) {
		return false
	}
	for pl := range m.probs {
		if len(m.probs[pl]) != len(o.probs[pl]) {
			return false
		}
		for st := range m.probs[pl] {
			if !m.ar.Equal(m.probs[pl][st], o.probs[pl][st]) {
				return false
			}
		}
	}
	return true
}

func (m *MixedStrategyProfile[T]) String() string {
	rows := lo.Map(m.probs, func(row []T, _ int) string {
		return "[" + strings.Join(lo.Map(row, func(v T, _ int) string {
			return m.ar.String(v)
		}), ", ") + "]"
	})
	return "[" + strings.Join(rows, ", ") + "]"
}

// ToBehavior translates the mixed profile into a realization-
// equivalent behavior profile on the tree the game was derived from.
// Requires perfect recall. At infosets the profile never reaches, the
// action distribution is uniform.
func (m *MixedStrategyProfile[T]) ToBehavior() (*MixedBehaviorProfile[T], error) {
	t := m.g.tree
	if t == nil {
		return nil, fmt.Errorf("profile: game has no extensive form")
	}
	if !t.IsPerfectRecall() {
		return nil, fmt.Errorf("profile: behavior translation requires perfect recall")
	}
	ar := m.ar
	b := NewMixedBehaviorProfile(t, ar)
	for _, is := range t.infosets {
		pl := is.player
		hist := ownHistory(is)
		denom := ar.Zero()
		numers := make([]T, len(is.actions))
		for i := range numers {
			numers[i] = ar.Zero()
		}
		for _, s := range pl.strategies {
			if !consistentWith(s, hist) {
				continue
			}
			pr := m.probs[pl.index][s.index]
			denom = ar.Add(denom, pr)
			numers[s.choices[is.index]] = ar.Add(numers[s.choices[is.index]], pr)
		}
		if ar.IsZero(denom) {
			u := ar.Div(ar.One(), ar.FromInt(int64(len(is.actions))))
			for a := range is.actions {
				b.SetProb(is.gindex, a, u)
			}
			continue
		}
		for a := range is.actions {
			b.SetProb(is.gindex, a, ar.Div(numers[a], denom))
		}
	}
	return b, nil
}

func consistentWith(s *Strategy, hist []actionStep) bool {
	for _, step := range hist {
		if s.choices[step.infoset.index] != step.action {
			return false
		}
	}
	return true
}
