package nash

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

// GnmParams controls the global Newton continuation solver. The game
// is perturbed by a bonus of size lambda on each player's first
// strategy, solved, and re-solved as lambda decays toward zero; the
// final candidate is corrected on its support and verified.
type GnmParams struct {
	LambdaInit float64
	Decay      float64
	Steps      int
	MaxPivots  int
	MaxIters   int
}

func (p *GnmParams) setDefaults() {
	if p.LambdaInit <= 0 {
		p.LambdaInit = 1
	}
	if p.Decay <= 0 || p.Decay >= 1 {
		p.Decay = 0.5
	}
	if p.Steps <= 0 {
		p.Steps = 10
	}
	if p.MaxPivots <= 0 {
		p.MaxPivots = defaultMaxPivots
	}
	if p.MaxIters <= 0 {
		p.MaxIters = 200
	}
}

// Support membership threshold for the final correction step. Looser
// than the kernel epsilon: continuation endpoints carry accumulated
// float error that the corrector is there to remove.
const gnmSupportEps = 1e-4

// GnmSolve computes at most one equilibrium by a global Newton style
// continuation: the unique equilibrium of a heavily perturbed game is
// traced back to the unperturbed game by solving a sequence of
// decreasingly perturbed games, and the endpoint is polished by a
// Newton correction on its support before the equilibrium check.
// Floating point only.
func GnmSolve(g game.Game, params GnmParams) (*ResultSet[*game.MixedStrategyProfile[float64]], error) {
	params.setDefaults()
	ar := value.NewDouble()
	s := g.Strategic()
	rs := NewResultSet[*game.MixedStrategyProfile[float64]]()

	if s.NumPlayers() != 2 {
		p := dampedBestResponse(s, ar, params.MaxIters)
		if ar.Sign(p.MaxRegret()) > 0 {
			log.Debug().Str("profile", p.String()).Msg("gnm iteration did not converge")
			return rs, nil
		}
		rs.Append(p)
		return rs, nil
	}

	a, b := bimatrix[float64](ar, s)
	m, n := len(a), len(a[0])
	var x, y []float64
	lambda := params.LambdaInit
	for step := 0; step < params.Steps; step++ {
		ap := make([][]float64, m)
		bp := make([][]float64, m)
		for i := 0; i < m; i++ {
			ap[i] = append([]float64(nil), a[i]...)
			bp[i] = append([]float64(nil), b[i]...)
			bp[i][0] += lambda
		}
		for j := 0; j < n; j++ {
			ap[0][j] += lambda
		}
		xs, ys, ok := lemkeHowson[float64](ar, ap, bp, 0, params.MaxPivots)
		if ok {
			x, y = xs, ys
		}
		lambda *= params.Decay
	}
	if x == nil {
		log.Warn().Msg("gnm continuation produced no candidate")
		return rs, nil
	}

	if cx, cy, ok := gnmCorrect(a, b, x, y); ok {
		x, y = cx, cy
	}
	p, err := game.NewMixedStrategyProfileData(s, ar, [][]float64{x, y})
	if err != nil {
		return nil, err
	}
	if ar.Sign(p.MaxRegret()) > 0 {
		log.Debug().Str("profile", p.String()).Msg("gnm endpoint off-equilibrium")
		return rs, nil
	}
	rs.Append(p)
	return rs, nil
}

// gnmCorrect solves the indifference conditions on the candidate's
// supports by dense linear algebra, replacing the continuation
// endpoint with the exact-in-floats solution. Fails (and leaves the
// caller with the raw endpoint) if the supports are mismatched, the
// systems are singular, or a corrected probability leaves the simplex.
func gnmCorrect(a, b [][]float64, x, y []float64) ([]float64, []float64, bool) {
	var supp1, supp2 []int
	for i, v := range x {
		if v > gnmSupportEps {
			supp1 = append(supp1, i)
		}
	}
	for j, v := range y {
		if v > gnmSupportEps {
			supp2 = append(supp2, j)
		}
	}
	if len(supp1) != len(supp2) || len(supp1) == 0 {
		return nil, nil, false
	}
	k := len(supp1)

	ySupp, ok := solveIndifference(func(i, j int) float64 { return a[supp1[i]][supp2[j]] }, k)
	if !ok {
		return nil, nil, false
	}
	xSupp, ok := solveIndifference(func(j, i int) float64 { return b[supp1[i]][supp2[j]] }, k)
	if !ok {
		return nil, nil, false
	}
	for i := 0; i < k; i++ {
		if xSupp[i] < 0 || ySupp[i] < 0 {
			return nil, nil, false
		}
	}

	cx := make([]float64, len(x))
	cy := make([]float64, len(y))
	for i, s := range supp1 {
		cx[s] = xSupp[i]
	}
	for j, s := range supp2 {
		cy[s] = ySupp[j]
	}
	return cx, cy, true
}

// solveIndifference solves for the opponent mix q with payoff(i, q)
// equal across all k own support rows and sum(q) = 1.
func solveIndifference(payoff func(i, j int) float64, k int) ([]float64, bool) {
	dim := k + 1
	m := mat.NewDense(dim, dim, nil)
	rhs := mat.NewVecDense(dim, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			m.Set(i, j, payoff(i, j))
		}
		m.Set(i, k, -1)
	}
	for j := 0; j < k; j++ {
		m.Set(k, j, 1)
	}
	rhs.SetVec(k, 1)

	var sol mat.VecDense
	if err := sol.SolveVec(m, rhs); err != nil {
		return nil, false
	}
	q := make([]float64, k)
	for j := 0; j < k; j++ {
		q[j] = sol.AtVec(j)
	}
	return q, true
}
