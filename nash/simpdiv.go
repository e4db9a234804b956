package nash

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

// SimpdivParams controls the simplicial subdivision solver.
// GridResolution is the initial grid denominator, MaxRefines the
// number of mesh halvings, MaxIters the move budget per mesh.
type SimpdivParams struct {
	GridResolution int
	MaxRefines     int
	MaxIters       int
}

func (p *SimpdivParams) setDefaults() {
	if p.GridResolution < 2 {
		p.GridResolution = 2
	}
	if p.MaxRefines <= 0 {
		p.MaxRefines = 16
	}
	if p.MaxIters <= 0 {
		p.MaxIters = 1000
	}
}

// SimpdivSolve searches for one equilibrium by subdivision of the
// strategy simplices. Profiles are restricted to the grid with
// denominator d; the profile walks between adjacent grid points,
// always taking the single-unit probability transfer that most lowers
// the Lyapunov function, until no transfer improves. At each rest
// point of a 2-player game the supports the grid point suggests are
// handed to the exact indifference solver, which turns a good grid
// approximation into an exact equilibrium; otherwise the mesh is
// halved and the walk continues. At most one equilibrium is reported.
func SimpdivSolve[T any](g game.Game, ar value.Arith[T], params SimpdivParams) (*ResultSet[*game.MixedStrategyProfile[T]], error) {
	params.setDefaults()
	s := g.Strategic()
	rs := NewResultSet[*game.MixedStrategyProfile[T]]()
	dims := s.Dims()

	d := params.GridResolution
	counts := make([][]int, len(dims))
	for pl, m := range dims {
		counts[pl] = make([]int, m)
		base, rem := d/m, d%m
		for i := range counts[pl] {
			counts[pl][i] = base
			if i < rem {
				counts[pl][i]++
			}
		}
	}

	accept := func(p *game.MixedStrategyProfile[T]) bool {
		if ar.Sign(p.MaxRegret()) > 0 {
			return false
		}
		rs.Append(p)
		return true
	}

	for refine := 0; refine <= params.MaxRefines; refine++ {
		p, err := gridProfile(s, ar, counts, d)
		if err != nil {
			return nil, err
		}
		if accept(p) {
			return rs, nil
		}
		if s.NumPlayers() == 2 {
			if q, ok := simpdivPolish(s, ar, p, counts); ok && accept(q) {
				return rs, nil
			}
		}

		cur := p.LiapValue()
		for it := 0; it < params.MaxIters; it++ {
			bestPl, bestFrom, bestTo := -1, 0, 0
			bestVal := cur
			for pl := range counts {
				for from := range counts[pl] {
					if counts[pl][from] == 0 {
						continue
					}
					for to := range counts[pl] {
						if to == from {
							continue
						}
						counts[pl][from]--
						counts[pl][to]++
						q, err := gridProfile(s, ar, counts, d)
						counts[pl][from]++
						counts[pl][to]--
						if err != nil {
							return nil, err
						}
						if v := q.LiapValue(); ar.Cmp(v, bestVal) < 0 {
							bestPl, bestFrom, bestTo = pl, from, to
							bestVal = v
						}
					}
				}
			}
			if bestPl < 0 {
				break
			}
			counts[bestPl][bestFrom]--
			counts[bestPl][bestTo]++
			cur = bestVal
			p, err = gridProfile(s, ar, counts, d)
			if err != nil {
				return nil, err
			}
			if accept(p) {
				return rs, nil
			}
		}

		if s.NumPlayers() == 2 {
			if q, ok := simpdivPolish(s, ar, p, counts); ok && accept(q) {
				return rs, nil
			}
		}
		d *= 2
		for pl := range counts {
			for i := range counts[pl] {
				counts[pl][i] *= 2
			}
		}
	}
	log.Warn().Int("grid", d).Msg("subdivision budget exhausted without convergence")
	return rs, nil
}

// gridProfile builds the profile with probabilities counts/d. Each
// player's counts must sum to d.
func gridProfile[T any](s *game.Strategic, ar value.Arith[T], counts [][]int, d int) (*game.MixedStrategyProfile[T], error) {
	data := make([][]T, len(counts))
	den := ar.FromInt(int64(d))
	for pl, row := range counts {
		data[pl] = make([]T, len(row))
		for st, c := range row {
			data[pl][st] = ar.Div(ar.FromInt(int64(c)), den)
		}
	}
	return game.NewMixedStrategyProfileData(s, ar, data)
}

// simpdivPolish tries to convert a grid point of a 2-player game into
// an exact equilibrium. The candidate supports are the strategies the
// grid point plays; a size mismatch is made up with the smaller side's
// best remaining replies against the grid point.
func simpdivPolish[T any](s *game.Strategic, ar value.Arith[T], p *game.MixedStrategyProfile[T], counts [][]int) (*game.MixedStrategyProfile[T], bool) {
	a, b := bimatrix(ar, s)
	supp := make([][]int, 2)
	for pl := 0; pl < 2; pl++ {
		for st, c := range counts[pl] {
			if c > 0 {
				supp[pl] = append(supp[pl], st)
			}
		}
	}
	for len(supp[0]) != len(supp[1]) {
		small := 0
		if len(supp[1]) < len(supp[0]) {
			small = 1
		}
		best := -1
		var bestVal T
		for st := 0; st < s.Dims()[small]; st++ {
			if contains(supp[small], st) {
				continue
			}
			v := p.StrategyValue(small, st)
			if best < 0 || ar.Cmp(v, bestVal) > 0 {
				best, bestVal = st, v
			}
		}
		if best < 0 {
			return nil, false
		}
		supp[small] = append(supp[small], best)
		sort.Ints(supp[small])
	}
	x, y, ok := trySupport(ar, a, b, supp[0], supp[1])
	if !ok {
		return nil, false
	}
	q, err := game.NewMixedStrategyProfileData(s, ar, [][]T{x, y})
	if err != nil {
		return nil, false
	}
	return q, true
}
