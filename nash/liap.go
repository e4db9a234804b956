package nash

import (
	"encoding/binary"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

// LiapParams controls Lyapunov function minimization. MaxIters bounds
// the conjugate-gradient iterations per start, NumTries the number of
// starts (the first is the centroid, later ones random), Tol the
// Lyapunov value below which a minimum counts as an equilibrium, and
// Seed the generator for the random restarts.
type LiapParams struct {
	MaxIters  int
	NumTries  int
	Tol       float64
	Seed      uint64
	StopAfter int
}

func (p *LiapParams) setDefaults() {
	if p.MaxIters <= 0 {
		p.MaxIters = 20
	}
	if p.NumTries <= 0 {
		p.NumTries = 1
	}
	if p.Tol <= 0 {
		p.Tol = 1e-10
	}
}

const liapPenaltyWeight = 100.0

// LiapSolve searches for equilibria by minimizing the profile's
// Lyapunov function, which is zero exactly at equilibria. The function
// has local minima that are not equilibria, so a descent that stalls
// above Tol is discarded rather than reported; an empty result set
// means no start converged, not that the game has no equilibrium.
// Raising MaxIters and NumTries widens the search. Floating point
// only.
func LiapSolve(g game.Game, params LiapParams) (*ResultSet[*game.MixedStrategyProfile[float64]], error) {
	params.setDefaults()
	ar := value.NewDouble()
	s := g.Strategic()
	rs := NewResultSet[*game.MixedStrategyProfile[float64]]()
	dims := s.Dims()
	nvars := 0
	for _, d := range dims {
		nvars += d
	}

	prof := game.NewMixedStrategyProfile[float64](s, ar)
	blocks := make([][]float64, len(dims))
	for pl, d := range dims {
		blocks[pl] = make([]float64, d)
	}
	obj := func(v []float64) float64 {
		pen := liapProject(v, blocks)
		for pl, blk := range blocks {
			for st, p := range blk {
				prof.SetProb(pl, st, p)
			}
		}
		return prof.LiapValue() + liapPenaltyWeight*pen
	}

	rng := liapRNG(params.Seed)
	for try := 0; try < params.NumTries; try++ {
		x0 := liapStart(rng, dims, nvars, try)
		xmin, fmin := cgMin(obj, x0, params.MaxIters, params.Tol)
		obj(xmin) // leave prof at the projected minimum
		if fmin > params.Tol || ar.Sign(prof.MaxRegret()) > 0 {
			log.Debug().Int("try", try).Float64("liap", fmin).
				Msg("descent stalled above tolerance")
			continue
		}
		rs.Append(prof.Clone())
		if params.StopAfter > 0 && rs.Len() >= params.StopAfter {
			break
		}
	}
	return rs, nil
}

// LiapBehaviorSolve minimizes the agent-form Lyapunov function over
// behavior profiles of the game tree. Same convergence caveats as
// LiapSolve.
func LiapBehaviorSolve(t *game.Tree, params LiapParams) (*ResultSet[*game.MixedBehaviorProfile[float64]], error) {
	params.setDefaults()
	ar := value.NewDouble()
	rs := NewResultSet[*game.MixedBehaviorProfile[float64]]()
	infosets := t.Infosets()
	if len(infosets) == 0 {
		return nil, unsupportedf("game tree has no decision points")
	}
	dims := make([]int, len(infosets))
	nvars := 0
	for gi, is := range infosets {
		dims[gi] = is.NumActions()
		nvars += is.NumActions()
	}

	prof := game.NewMixedBehaviorProfile[float64](t, ar)
	blocks := make([][]float64, len(dims))
	for gi, d := range dims {
		blocks[gi] = make([]float64, d)
	}
	obj := func(v []float64) float64 {
		pen := liapProject(v, blocks)
		for gi, blk := range blocks {
			for a, p := range blk {
				prof.SetProb(gi, a, p)
			}
		}
		return prof.LiapValue() + liapPenaltyWeight*pen
	}

	rng := liapRNG(params.Seed)
	for try := 0; try < params.NumTries; try++ {
		x0 := liapStart(rng, dims, nvars, try)
		xmin, fmin := cgMin(obj, x0, params.MaxIters, params.Tol)
		obj(xmin)
		if fmin > params.Tol || ar.Sign(prof.MaxRegret()) > 0 {
			log.Debug().Int("try", try).Float64("liap", fmin).
				Msg("descent stalled above tolerance")
			continue
		}
		rs.Append(prof.Clone())
		if params.StopAfter > 0 && rs.Len() >= params.StopAfter {
			break
		}
	}
	return rs, nil
}

// liapProject clamps negatives to zero and renormalizes each block to
// sum one, writing the result into blocks, and returns the penalty for
// the violations it repaired. Keeping the objective defined on all of
// R^n lets the unconstrained minimizer run free while still being
// anchored to the simplex product.
func liapProject(v []float64, blocks [][]float64) float64 {
	pen := 0.0
	off := 0
	for _, blk := range blocks {
		sum := 0.0
		for i := range blk {
			w := v[off+i]
			if w < 0 {
				pen += w * w
				w = 0
			}
			blk[i] = w
			sum += w
		}
		pen += (sum - 1) * (sum - 1)
		if sum > 0 {
			for i := range blk {
				blk[i] /= sum
			}
		} else {
			u := 1.0 / float64(len(blk))
			for i := range blk {
				blk[i] = u
			}
		}
		off += len(blk)
	}
	return pen
}

// liapStart returns the centroid on the first try and a random point
// in the simplex product afterwards.
func liapStart(rng *frand.RNG, dims []int, nvars, try int) []float64 {
	x := make([]float64, nvars)
	off := 0
	for _, d := range dims {
		if try == 0 {
			u := 1.0 / float64(d)
			for i := 0; i < d; i++ {
				x[off+i] = u
			}
		} else {
			sum := 0.0
			for i := 0; i < d; i++ {
				x[off+i] = rng.Float64()
				sum += x[off+i]
			}
			for i := 0; i < d; i++ {
				x[off+i] /= sum
			}
		}
		off += d
	}
	return x
}

func liapRNG(seed uint64) *frand.RNG {
	b := make([]byte, 32)
	binary.LittleEndian.PutUint64(b, seed)
	return frand.NewCustom(b, 1024, 12)
}
