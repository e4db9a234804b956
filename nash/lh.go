package nash

import (
	"github.com/rs/zerolog/log"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

// This file implements complementary pivoting on the linear
// complementarity formulation of a two-player game (Lemke–Howson).
// Labels 0..m-1 are player 1's strategies, m..m+n-1 player 2's. The
// algorithm walks the pair of best-response polyhedra
//
//	P = {x >= 0 : B'^T x <= 1}   Q = {y >= 0 : A' y <= 1}
//
// with A', B' shifted strictly positive, starting from the origin with
// one label dropped, until the dropped label is picked back up. The
// ratio test is lexicographic with a smallest-row-index final
// tie-break, so the pivot path is deterministic and finite even on
// degenerate games.

type lhTableau[T any] struct {
	ar       value.Arith[T]
	rows     int
	nvars    int
	a        [][]T // rows x (nvars+1), last column is the RHS
	basis    []int // variable index basic in each row
	labelOf  []int // variable index -> label
	colOfLab map[int]int
}

func newLHTableau[T any](ar value.Arith[T], rows, nvars int) *lhTableau[T] {
	t := &lhTableau[T]{
		ar: ar, rows: rows, nvars: nvars,
		labelOf:  make([]int, nvars),
		colOfLab: make(map[int]int, nvars),
		basis:    make([]int, rows),
	}
	t.a = make([][]T, rows)
	for i := range t.a {
		t.a[i] = make([]T, nvars+1)
		for j := range t.a[i] {
			t.a[i][j] = ar.Zero()
		}
	}
	return t
}

func (t *lhTableau[T]) setLabel(varIdx, label int) {
	t.labelOf[varIdx] = label
	t.colOfLab[label] = varIdx
}

func (t *lhTableau[T]) pivot(row, col int) {
	ar := t.ar
	inv := t.a[row][col]
	for j := 0; j <= t.nvars; j++ {
		t.a[row][j] = ar.Div(t.a[row][j], inv)
	}
	for i := 0; i < t.rows; i++ {
		if i == row || ar.IsZero(t.a[i][col]) {
			continue
		}
		f := t.a[i][col]
		for j := 0; j <= t.nvars; j++ {
			t.a[i][j] = ar.Sub(t.a[i][j], ar.Mul(f, t.a[row][j]))
		}
	}
	t.basis[row] = col
}

// enter brings the variable at column col into the basis, choosing the
// leaving row by the lexicographic minimum ratio rule. Returns the
// variable that left, or -1 if the column is unbounded.
func (t *lhTableau[T]) enter(col int) int {
	ar := t.ar
	row := -1
	for i := 0; i < t.rows; i++ {
		if ar.Sign(t.a[i][col]) <= 0 {
			continue
		}
		if row < 0 {
			row = i
			continue
		}
		if t.lexLess(i, row, col) {
			row = i
		}
	}
	if row < 0 {
		return -1
	}
	leaving := t.basis[row]
	t.pivot(row, col)
	return leaving
}

// lexLess reports whether row i has a lexicographically smaller ratio
// vector than row j for entering column col. The comparison starts
// with the RHS ratio and continues through the initial slack columns
// (0..rows-1), which together always break the tie; identical rows
// fall back to the smaller row index.
func (t *lhTableau[T]) lexLess(i, j, col int) bool {
	ar := t.ar
	ri := func(c int) T { return ar.Div(t.a[i][c], t.a[i][col]) }
	rj := func(c int) T { return ar.Div(t.a[j][c], t.a[j][col]) }
	if c := ar.Cmp(ri(t.nvars), rj(t.nvars)); c != 0 {
		return c < 0
	}
	for k := 0; k < t.rows; k++ {
		if c := ar.Cmp(ri(k), rj(k)); c != 0 {
			return c < 0
		}
	}
	return i < j
}

// basicValue returns the current value of variable varIdx, zero when
// nonbasic.
func (t *lhTableau[T]) basicValue(varIdx int) T {
	for row, b := range t.basis {
		if b == varIdx {
			return t.a[row][t.nvars]
		}
	}
	return t.ar.Zero()
}

// bimatrix extracts the two payoff matrices of a 2-player strategic
// game under the kernel.
func bimatrix[T any](ar value.Arith[T], g *game.Strategic) (a, b [][]T) {
	dims := g.Dims()
	m, n := dims[0], dims[1]
	a = make([][]T, m)
	b = make([][]T, m)
	for i := 0; i < m; i++ {
		a[i] = make([]T, n)
		b[i] = make([]T, n)
		for j := 0; j < n; j++ {
			a[i][j] = ar.FromRat(g.Payoff([]int{i, j}, 0))
			b[i][j] = ar.FromRat(g.Payoff([]int{i, j}, 1))
		}
	}
	return a, b
}

// shiftPositive returns a copy of the matrix with a constant added so
// every entry is at least one. Adding a constant to one player's
// payoffs does not change the equilibria.
func shiftPositive[T any](ar value.Arith[T], m [][]T) [][]T {
	min := m[0][0]
	for _, row := range m {
		for _, v := range row {
			if ar.Cmp(v, min) < 0 {
				min = v
			}
		}
	}
	shift := ar.Sub(ar.One(), min)
	out := make([][]T, len(m))
	for i, row := range m {
		out[i] = make([]T, len(row))
		for j, v := range row {
			out[i][j] = ar.Add(v, shift)
		}
	}
	return out
}

// lemkeHowson runs the complementary pivot path that starts by
// dropping the given label (0 <= drop < m+n) and returns the
// equilibrium it terminates at. ok is false if the pivot budget is
// exhausted or the path ends on an unbounded ray, which cannot happen
// on a well-formed bimatrix game.
func lemkeHowson[T any](ar value.Arith[T], a, b [][]T, drop, maxPivots int) (x, y []T, ok bool) {
	m, n := len(a), len(a[0])
	ap := shiftPositive(ar, a)
	bp := shiftPositive(ar, b)

	// Q-tableau: rows are player 1 strategies; variables are the m
	// slacks (labels 0..m-1) then the n entries of y (labels m..m+n-1).
	tq := newLHTableau(ar, m, m+n)
	for i := 0; i < m; i++ {
		tq.setLabel(i, i)
		tq.a[i][i] = ar.One()
		for j := 0; j < n; j++ {
			tq.a[i][m+j] = ap[i][j]
		}
		tq.a[i][m+n] = ar.One()
		tq.basis[i] = i
	}
	for j := 0; j < n; j++ {
		tq.setLabel(m+j, m+j)
	}

	// P-tableau: rows are player 2 strategies; variables are the n
	// slacks (labels m..m+n-1) then the m entries of x (labels 0..m-1).
	tp := newLHTableau(ar, n, m+n)
	for j := 0; j < n; j++ {
		tp.setLabel(j, m+j)
		tp.a[j][j] = ar.One()
		for i := 0; i < m; i++ {
			tp.a[j][n+i] = bp[i][j]
		}
		tp.a[j][m+n] = ar.One()
		tp.basis[j] = j
	}
	for i := 0; i < m; i++ {
		tp.setLabel(n+i, i)
	}

	// Each label owns exactly one variable in each tableau (a decision
	// variable in one, a slack in the other). Dropping label k first
	// enters k's decision variable; afterwards the leaving variable's
	// complement always lives in the opposite tableau, so the walk
	// alternates tableaus until the dropped label is picked back up.
	cur, other := tp, tq
	if drop >= m {
		cur, other = tq, tp
	}
	label := drop
	for piv := 0; piv < maxPivots; piv++ {
		left := cur.enter(cur.colOfLab[label])
		if left < 0 {
			log.Debug().Int("drop", drop).Msg("lemke-howson ray termination")
			return nil, nil, false
		}
		label = cur.labelOf[left]
		if label == drop {
			x, y, ok = lhExtract(ar, tp, tq, m, n)
			return x, y, ok
		}
		cur, other = other, cur
	}
	log.Debug().Int("drop", drop).Int("maxPivots", maxPivots).
		Msg("lemke-howson pivot budget exhausted")
	return nil, nil, false
}

func lhExtract[T any](ar value.Arith[T], tp, tq *lhTableau[T], m, n int) (x, y []T, ok bool) {
	x = make([]T, m)
	sumX := ar.Zero()
	for i := 0; i < m; i++ {
		x[i] = tp.basicValue(n + i)
		sumX = ar.Add(sumX, x[i])
	}
	y = make([]T, n)
	sumY := ar.Zero()
	for j := 0; j < n; j++ {
		y[j] = tq.basicValue(m + j)
		sumY = ar.Add(sumY, y[j])
	}
	if ar.IsZero(sumX) || ar.IsZero(sumY) {
		return nil, nil, false
	}
	for i := range x {
		x[i] = ar.Div(x[i], sumX)
	}
	for j := range y {
		y[j] = ar.Div(y[j], sumY)
	}
	return x, y, true
}
