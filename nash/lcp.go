package nash

import (
	"github.com/rs/zerolog/log"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

const defaultMaxPivots = 10000

// LcpParams controls the complementary-pivoting solvers. DropLabel is
// the label removed to start the pivot path (0 by default, player 1's
// first strategy); changing it may reach a different equilibrium of a
// game with several. MaxPivots bounds the pivot path.
type LcpParams struct {
	DropLabel int
	MaxPivots int
}

func (p *LcpParams) setDefaults() {
	if p.MaxPivots <= 0 {
		p.MaxPivots = defaultMaxPivots
	}
}

// LcpSolve computes one equilibrium of a two-player strategic game by
// complementary pivoting on its linear complementarity formulation.
// The lexicographic ratio test with smallest-index tie-break makes the
// pivot path, and therefore the result, deterministic; in the rational
// kernel every pivot is exact.
func LcpSolve[T any](g game.Game, ar value.Arith[T], params LcpParams) (*ResultSet[*game.MixedStrategyProfile[T]], error) {
	params.setDefaults()
	s := g.Strategic()
	if s.NumPlayers() != 2 {
		return nil, unsupportedf("lcp requires a 2-player game, have %d players", s.NumPlayers())
	}
	rs := NewResultSet[*game.MixedStrategyProfile[T]]()
	a, b := bimatrix(ar, s)
	x, y, ok := lemkeHowson(ar, a, b, params.DropLabel, params.MaxPivots)
	if !ok {
		return rs, nil
	}
	p, err := game.NewMixedStrategyProfileData(s, ar, [][]T{x, y})
	if err != nil {
		return nil, err
	}
	if ar.Sign(p.MaxRegret()) > 0 {
		log.Warn().Str("profile", p.String()).
			Msg("pivot path ended off-equilibrium, discarding")
		return rs, nil
	}
	rs.Append(p)
	return rs, nil
}

// LcpBehaviorSolve computes one equilibrium of a two-player game tree
// and reports it as a behavior profile. The pivot path runs on the
// tree's reduced strategic form; the mixed equilibrium is then
// translated to the realization-equivalent behavior profile, which
// requires perfect recall.
func LcpBehaviorSolve[T any](t *game.Tree, ar value.Arith[T], params LcpParams) (*ResultSet[*game.MixedBehaviorProfile[T]], error) {
	if t.NumPlayers() != 2 {
		return nil, unsupportedf("lcp requires a 2-player game, have %d players", t.NumPlayers())
	}
	if !t.IsPerfectRecall() {
		return nil, unsupportedf("behavior-form lcp requires perfect recall")
	}
	mixed, err := LcpSolve(t, ar, params)
	if err != nil {
		return nil, err
	}
	rs := NewResultSet[*game.MixedBehaviorProfile[T]]()
	for _, m := range mixed.Profiles() {
		b, err := m.ToBehavior()
		if err != nil {
			return nil, err
		}
		if ar.Sign(b.MaxRegret()) > 0 {
			log.Warn().Str("profile", b.String()).
				Msg("behavior translation off-equilibrium, discarding")
			continue
		}
		rs.Append(b)
	}
	return rs, nil
}
