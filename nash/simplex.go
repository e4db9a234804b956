package nash

import "github.com/equilib/equilib/value"

// simplexSolve minimizes c·x subject to A x = b, x >= 0, by two-phase
// primal simplex with Bland's smallest-index rule for both the
// entering and the leaving variable. Bland's rule makes the pivot
// sequence deterministic and cycle-free in both kernels, which is what
// the lp solver's determinism contract relies on. Returns ok=false if
// the program is infeasible or unbounded.
func simplexSolve[T any](ar value.Arith[T], a [][]T, b []T, c []T, maxPivots int) ([]T, bool) {
	m, n := len(a), len(c)
	// Working tableau with one artificial variable per row.
	t := make([][]T, m)
	basis := make([]int, m)
	for i := 0; i < m; i++ {
		t[i] = make([]T, n+m+1)
		// Kernels never mutate values, so rows can share scalars with
		// the caller.
		neg := ar.Sign(b[i]) < 0
		for j := 0; j < n; j++ {
			if neg {
				t[i][j] = ar.Neg(a[i][j])
			} else {
				t[i][j] = a[i][j]
			}
		}
		for j := n; j < n+m; j++ {
			t[i][j] = ar.Zero()
		}
		t[i][n+i] = ar.One()
		if neg {
			t[i][n+m] = ar.Neg(b[i])
		} else {
			t[i][n+m] = b[i]
		}
		basis[i] = n + i
	}

	pivot := func(row, col int) {
		inv := t[row][col]
		for j := 0; j <= n+m; j++ {
			t[row][j] = ar.Div(t[row][j], inv)
		}
		for i := 0; i < m; i++ {
			if i == row || ar.IsZero(t[i][col]) {
				continue
			}
			f := t[i][col]
			for j := 0; j <= n+m; j++ {
				t[i][j] = ar.Sub(t[i][j], ar.Mul(f, t[row][j]))
			}
		}
		basis[row] = col
	}

	// phase runs simplex iterations for the given cost vector over the
	// first ncols columns. Returns false if unbounded or out of budget.
	phase := func(cost []T, ncols int) bool {
		for piv := 0; piv < maxPivots; piv++ {
			entering := -1
			for j := 0; j < ncols; j++ {
				rc := cost[j]
				for i := 0; i < m; i++ {
					rc = ar.Sub(rc, ar.Mul(cost[basis[i]], t[i][j]))
				}
				if ar.Sign(rc) < 0 {
					entering = j
					break
				}
			}
			if entering < 0 {
				return true
			}
			row := -1
			for i := 0; i < m; i++ {
				if ar.Sign(t[i][entering]) <= 0 {
					continue
				}
				if row < 0 {
					row = i
					continue
				}
				ri := ar.Div(t[i][n+m], t[i][entering])
				rr := ar.Div(t[row][n+m], t[row][entering])
				switch ar.Cmp(ri, rr) {
				case -1:
					row = i
				case 0:
					if basis[i] < basis[row] {
						row = i
					}
				}
			}
			if row < 0 {
				return false
			}
			pivot(row, entering)
		}
		return false
	}

	// Phase 1: drive the artificials to zero.
	cost1 := make([]T, n+m)
	for j := 0; j < n; j++ {
		cost1[j] = ar.Zero()
	}
	for j := n; j < n+m; j++ {
		cost1[j] = ar.One()
	}
	if !phase(cost1, n+m) {
		return nil, false
	}
	obj := ar.Zero()
	for i := 0; i < m; i++ {
		obj = ar.Add(obj, ar.Mul(cost1[basis[i]], t[i][n+m]))
	}
	if ar.Sign(obj) > 0 {
		return nil, false
	}
	// Pivot lingering artificials out of the basis where possible;
	// rows that cannot be cleared are redundant constraints and their
	// artificial stays basic at zero.
	for i := 0; i < m; i++ {
		if basis[i] < n {
			continue
		}
		for j := 0; j < n; j++ {
			if !ar.IsZero(t[i][j]) {
				pivot(i, j)
				break
			}
		}
	}

	// Phase 2 over the original columns only.
	cost2 := make([]T, n+m)
	copy(cost2, c)
	for j := n; j < n+m; j++ {
		cost2[j] = ar.Zero()
	}
	if !phase(cost2, n) {
		return nil, false
	}

	x := make([]T, n)
	for j := range x {
		x[j] = ar.Zero()
	}
	for i, bv := range basis {
		if bv < n {
			x[bv] = t[i][n+m]
		}
	}
	return x, true
}
