package nash

import "github.com/equilib/equilib/value"

// solveLinear solves the square system a·x = b by Gaussian elimination
// with partial (largest absolute value) pivoting, which is exact under
// the rational kernel and stable under the double kernel. a and b are
// not modified. Returns ok=false when the system is singular under the
// kernel's zero test.
func solveLinear[T any](ar value.Arith[T], a [][]T, b []T) ([]T, bool) {
	n := len(a)
	m := make([][]T, n)
	for i := range m {
		m[i] = append([]T(nil), a[i]...)
		m[i] = append(m[i], b[i])
	}
	for col := 0; col < n; col++ {
		pivot := -1
		var best T
		for row := col; row < n; row++ {
			v := ar.Abs(m[row][col])
			if ar.Sign(v) != 0 && (pivot < 0 || ar.Cmp(v, best) > 0) {
				pivot, best = row, v
			}
		}
		if pivot < 0 {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		inv := m[col][col]
		for j := col; j <= n; j++ {
			m[col][j] = ar.Div(m[col][j], inv)
		}
		for row := 0; row < n; row++ {
			if row == col || ar.IsZero(m[row][col]) {
				continue
			}
			f := m[row][col]
			for j := col; j <= n; j++ {
				m[row][j] = ar.Sub(m[row][j], ar.Mul(f, m[col][j]))
			}
		}
	}
	x := make([]T, n)
	for i := range x {
		x[i] = m[i][n]
	}
	return x, true
}
