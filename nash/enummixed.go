package nash

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

// EnumMixedParams controls mixed-equilibrium enumeration. StopAfter
// limits the number of equilibria reported; zero means report all.
type EnumMixedParams struct {
	StopAfter int
}

// EnumMixedSolve enumerates the extreme equilibria of a two-player
// strategic game. The vertices of the two best-response polytopes are
// visited combinatorially: for every pair of equal-size supports the
// indifference systems are solved exactly and the candidate kept if it
// is feasible and unbeaten off-support. Supports are visited in
// lexicographic order by increasing size, so the result order is
// deterministic; under the double kernel near-duplicate vertices merge
// through the result set's tolerance equality.
func EnumMixedSolve[T any](g game.Game, ar value.Arith[T], params EnumMixedParams) (*ResultSet[*game.MixedStrategyProfile[T]], error) {
	s := g.Strategic()
	if s.NumPlayers() != 2 {
		return nil, unsupportedf("enummixed requires a 2-player game, have %d players", s.NumPlayers())
	}
	a, b := bimatrix(ar, s)
	m, n := len(a), len(a[0])
	rs := NewResultSet[*game.MixedStrategyProfile[T]]()

	maxK := m
	if n < maxK {
		maxK = n
	}
	for k := 1; k <= maxK; k++ {
		for _, supp1 := range combin.Combinations(m, k) {
			for _, supp2 := range combin.Combinations(n, k) {
				x, y, ok := trySupport(ar, a, b, supp1, supp2)
				if !ok {
					continue
				}
				p, err := game.NewMixedStrategyProfileData(s, ar, [][]T{x, y})
				if err != nil {
					log.Warn().Err(err).Ints("supp1", supp1).Ints("supp2", supp2).
						Msg("discarding support solution")
					continue
				}
				if rs.Append(p) {
					log.Debug().Ints("supp1", supp1).Ints("supp2", supp2).
						Msg("extreme equilibrium")
				}
				if params.StopAfter > 0 && rs.Len() >= params.StopAfter {
					return rs, nil
				}
			}
		}
	}
	return rs, nil
}
