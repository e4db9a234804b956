package nash

import (
	"github.com/rs/zerolog/log"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

// IpaParams controls the iterated polymatrix approximation solver.
type IpaParams struct {
	MaxIters  int
	MaxPivots int
}

func (p *IpaParams) setDefaults() {
	if p.MaxIters <= 0 {
		p.MaxIters = 200
	}
	if p.MaxPivots <= 0 {
		p.MaxPivots = defaultMaxPivots
	}
}

// IpaSolve computes at most one equilibrium by iterated polymatrix
// approximation. A two-player game is its own polymatrix
// approximation, so a single complementary pivot run solves it
// outright; with more players the pairwise approximation around the
// current point is re-solved by damped best-response steps whose step
// size decays harmonically. The candidate is kept only if it passes
// the equilibrium check, so an empty result means the iteration failed
// to converge, not that no equilibrium exists. Floating point only.
func IpaSolve(g game.Game, params IpaParams) (*ResultSet[*game.MixedStrategyProfile[float64]], error) {
	params.setDefaults()
	ar := value.NewDouble()
	s := g.Strategic()
	rs := NewResultSet[*game.MixedStrategyProfile[float64]]()

	if s.NumPlayers() == 2 {
		a, b := bimatrix[float64](ar, s)
		x, y, ok := lemkeHowson[float64](ar, a, b, 0, params.MaxPivots)
		if !ok {
			return rs, nil
		}
		p, err := game.NewMixedStrategyProfileData(s, ar, [][]float64{x, y})
		if err != nil {
			return nil, err
		}
		if ar.Sign(p.MaxRegret()) > 0 {
			log.Warn().Str("profile", p.String()).Msg("ipa pivot result off-equilibrium")
			return rs, nil
		}
		rs.Append(p)
		return rs, nil
	}

	p := dampedBestResponse(s, ar, params.MaxIters)
	if ar.Sign(p.MaxRegret()) > 0 {
		log.Debug().Str("profile", p.String()).Msg("ipa iteration did not converge")
		return rs, nil
	}
	rs.Append(p)
	return rs, nil
}

// dampedBestResponse iterates x <- (1-step)x + step*br(x) from the
// centroid with step 2/(t+2). The averaging converges to equilibrium
// in many-player games with a unique one and oscillates otherwise; the
// caller verifies the end point.
func dampedBestResponse(s *game.Strategic, ar value.Double, maxIters int) *game.MixedStrategyProfile[float64] {
	p := game.NewMixedStrategyProfile[float64](s, ar)
	dims := s.Dims()
	for t := 0; t < maxIters; t++ {
		step := 2.0 / float64(t+2)
		br := make([]int, len(dims))
		for pl, d := range dims {
			best := 0
			bestVal := p.StrategyValue(pl, 0)
			for st := 1; st < d; st++ {
				if v := p.StrategyValue(pl, st); v > bestVal {
					best, bestVal = st, v
				}
			}
			br[pl] = best
		}
		for pl, d := range dims {
			for st := 0; st < d; st++ {
				v := (1 - step) * p.Prob(pl, st)
				if st == br[pl] {
					v += step
				}
				p.SetProb(pl, st, v)
			}
		}
	}
	return p
}
