package nash

import "github.com/equilib/equilib/value"

// trySupport attempts to construct an equilibrium of the bimatrix game
// (a, b) in which player 1 mixes exactly over supp1 and player 2
// exactly over supp2. The candidate is the solution of the two
// indifference systems; it is accepted only if every support
// probability is strictly positive and no strategy outside a support
// does better than the support's common value. In the rational kernel
// all checks are exact.
func trySupport[T any](ar value.Arith[T], a, b [][]T, supp1, supp2 []int) (x, y []T, ok bool) {
	k := len(supp1)
	if k == 0 || len(supp2) != k {
		return nil, nil, false
	}

	ySupp, u, ok := indifferenceSolve(ar, func(i, j int) T { return a[supp1[i]][supp2[j]] }, k)
	if !ok {
		return nil, nil, false
	}
	xSupp, v, ok := indifferenceSolve(ar, func(j, i int) T { return b[supp1[i]][supp2[j]] }, k)
	if !ok {
		return nil, nil, false
	}

	x = expand(ar, len(a), supp1, xSupp)
	y = expand(ar, len(a[0]), supp2, ySupp)

	// Off-support strategies must not beat the support value.
	for i := range a {
		if contains(supp1, i) {
			continue
		}
		val := ar.Zero()
		for jj, j := range supp2 {
			val = ar.Add(val, ar.Mul(a[i][j], ySupp[jj]))
		}
		if ar.Cmp(val, u) > 0 {
			return nil, nil, false
		}
	}
	for j := range a[0] {
		if contains(supp2, j) {
			continue
		}
		val := ar.Zero()
		for ii, i := range supp1 {
			val = ar.Add(val, ar.Mul(b[i][j], xSupp[ii]))
		}
		if ar.Cmp(val, v) > 0 {
			return nil, nil, false
		}
	}
	return x, y, true
}

// indifferenceSolve finds the opponent mix q (dimension k) and common
// value u with sum(q)=1 and payoff(i, q)=u for every own support row
// i, where payoff(i, j) is the payoff of own support row i against
// opponent support column j. Requires all q entries strictly positive.
func indifferenceSolve[T any](ar value.Arith[T], payoff func(i, j int) T, k int) (q []T, u T, ok bool) {
	n := k + 1
	m := make([][]T, n)
	rhs := make([]T, n)
	for i := 0; i < k; i++ {
		m[i] = make([]T, n)
		for j := 0; j < k; j++ {
			m[i][j] = payoff(i, j)
		}
		m[i][k] = ar.Neg(ar.One())
		rhs[i] = ar.Zero()
	}
	m[k] = make([]T, n)
	for j := 0; j < k; j++ {
		m[k][j] = ar.One()
	}
	m[k][k] = ar.Zero()
	rhs[k] = ar.One()

	sol, ok := solveLinear(ar, m, rhs)
	if !ok {
		return nil, u, false
	}
	for j := 0; j < k; j++ {
		if ar.Sign(sol[j]) <= 0 {
			return nil, u, false
		}
	}
	return sol[:k], sol[k], true
}

func expand[T any](ar value.Arith[T], n int, supp []int, vals []T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = ar.Zero()
	}
	for i, s := range supp {
		out[s] = vals[i]
	}
	return out
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
