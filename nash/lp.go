package nash

import (
	"github.com/rs/zerolog/log"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

// LpParams controls the linear-programming solver. MaxPivots bounds
// each simplex run.
type LpParams struct {
	MaxPivots int
}

func (p *LpParams) setDefaults() {
	if p.MaxPivots <= 0 {
		p.MaxPivots = defaultMaxPivots
	}
}

// LpSolve computes one equilibrium of a two-player constant-sum
// strategic game by solving each player's maximin linear program with
// the simplex method. A maximin pair of a constant-sum game is an
// equilibrium, so the two solutions combine directly. Bland's rule
// keeps the pivot sequence deterministic.
func LpSolve[T any](g game.Game, ar value.Arith[T], params LpParams) (*ResultSet[*game.MixedStrategyProfile[T]], error) {
	params.setDefaults()
	s := g.Strategic()
	if s.NumPlayers() != 2 {
		return nil, unsupportedf("lp requires a 2-player game, have %d players", s.NumPlayers())
	}
	if !s.IsConstSum() {
		return nil, unsupportedf("lp requires a constant-sum game")
	}
	rs := NewResultSet[*game.MixedStrategyProfile[T]]()
	a, _ := bimatrix(ar, s)
	ap := shiftPositive(ar, a)
	m, n := len(ap), len(ap[0])

	x, ok := maximinRow(ar, ap, m, n, params.MaxPivots)
	if !ok {
		log.Warn().Msg("lp: row player program infeasible")
		return rs, nil
	}
	y, ok := maximinCol(ar, ap, m, n, params.MaxPivots)
	if !ok {
		log.Warn().Msg("lp: column player program infeasible")
		return rs, nil
	}

	p, err := game.NewMixedStrategyProfileData(s, ar, [][]T{x, y})
	if err != nil {
		return nil, err
	}
	if ar.Sign(p.MaxRegret()) > 0 {
		log.Warn().Str("profile", p.String()).
			Msg("lp solution off-equilibrium, discarding")
		return rs, nil
	}
	rs.Append(p)
	return rs, nil
}

// maximinRow solves max_x min_j x^T A e_j over the simplex: variables
// are x, the split game value v = v+ - v-, and one surplus per column.
func maximinRow[T any](ar value.Arith[T], ap [][]T, m, n, maxPivots int) ([]T, bool) {
	ncols := m + 2 + n
	rows := make([][]T, n+1)
	rhs := make([]T, n+1)
	for j := 0; j < n; j++ {
		row := make([]T, ncols)
		for i := 0; i < m; i++ {
			row[i] = ap[i][j]
		}
		row[m] = ar.Neg(ar.One())
		row[m+1] = ar.One()
		for k := 0; k < n; k++ {
			row[m+2+k] = ar.Zero()
		}
		row[m+2+j] = ar.Neg(ar.One())
		rows[j] = row
		rhs[j] = ar.Zero()
	}
	last := make([]T, ncols)
	for i := 0; i < m; i++ {
		last[i] = ar.One()
	}
	for k := m; k < ncols; k++ {
		last[k] = ar.Zero()
	}
	rows[n] = last
	rhs[n] = ar.One()

	c := make([]T, ncols)
	for k := range c {
		c[k] = ar.Zero()
	}
	c[m] = ar.Neg(ar.One())
	c[m+1] = ar.One()

	sol, ok := simplexSolve(ar, rows, rhs, c, maxPivots)
	if !ok {
		return nil, false
	}
	return sol[:m], true
}

// maximinCol solves the column player's guarantee: min_y max_i e_i^T A y.
func maximinCol[T any](ar value.Arith[T], ap [][]T, m, n, maxPivots int) ([]T, bool) {
	ncols := n + 2 + m
	rows := make([][]T, m+1)
	rhs := make([]T, m+1)
	for i := 0; i < m; i++ {
		row := make([]T, ncols)
		for j := 0; j < n; j++ {
			row[j] = ap[i][j]
		}
		row[n] = ar.Neg(ar.One())
		row[n+1] = ar.One()
		for k := 0; k < m; k++ {
			row[n+2+k] = ar.Zero()
		}
		row[n+2+i] = ar.One()
		rows[i] = row
		rhs[i] = ar.Zero()
	}
	last := make([]T, ncols)
	for j := 0; j < n; j++ {
		last[j] = ar.One()
	}
	for k := n; k < ncols; k++ {
		last[k] = ar.Zero()
	}
	rows[m] = last
	rhs[m] = ar.One()

	c := make([]T, ncols)
	for k := range c {
		c[k] = ar.Zero()
	}
	c[n] = ar.One()
	c[n+1] = ar.Neg(ar.One())

	sol, ok := simplexSolve(ar, rows, rhs, c, maxPivots)
	if !ok {
		return nil, false
	}
	return sol[:n], true
}

// LpBehaviorSolve computes one equilibrium of a two-player
// constant-sum game tree and reports it as a behavior profile, via the
// reduced strategic form and the realization-equivalent translation.
func LpBehaviorSolve[T any](t *game.Tree, ar value.Arith[T], params LpParams) (*ResultSet[*game.MixedBehaviorProfile[T]], error) {
	if t.NumPlayers() != 2 {
		return nil, unsupportedf("lp requires a 2-player game, have %d players", t.NumPlayers())
	}
	if !t.IsPerfectRecall() {
		return nil, unsupportedf("behavior-form lp requires perfect recall")
	}
	mixed, err := LpSolve(t, ar, params)
	if err != nil {
		return nil, err
	}
	rs := NewResultSet[*game.MixedBehaviorProfile[T]]()
	for _, m := range mixed.Profiles() {
		b, err := m.ToBehavior()
		if err != nil {
			return nil, err
		}
		rs.Append(b)
	}
	return rs, nil
}
