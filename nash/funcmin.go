package nash

import "math"

const (
	gradStep = 1e-6
	armijoC  = 1e-4
)

// numGrad fills g with the central-difference gradient of f at x. x is
// restored before returning.
func numGrad(f func([]float64) float64, x, g []float64) {
	for i := range x {
		orig := x[i]
		x[i] = orig + gradStep
		fp := f(x)
		x[i] = orig - gradStep
		fm := f(x)
		x[i] = orig
		g[i] = (fp - fm) / (2 * gradStep)
	}
}

// cgMin minimizes f by Polak-Ribiere conjugate gradients with
// numerical gradients and a backtracking Armijo line search. The
// direction resets to steepest descent whenever the conjugate update
// would lose the descent property. Returns the best point found and
// its value after at most maxIters iterations, or earlier when the
// gradient norm falls below tol.
func cgMin(f func([]float64) float64, x0 []float64, maxIters int, tol float64) ([]float64, float64) {
	n := len(x0)
	x := append([]float64(nil), x0...)
	fx := f(x)
	g := make([]float64, n)
	gPrev := make([]float64, n)
	d := make([]float64, n)
	trial := make([]float64, n)
	numGrad(f, x, g)
	for i := range d {
		d[i] = -g[i]
	}
	for it := 0; it < maxIters; it++ {
		gnorm := 0.0
		for _, v := range g {
			gnorm += v * v
		}
		if math.Sqrt(gnorm) < tol {
			break
		}
		dg := 0.0
		for i := range d {
			dg += d[i] * g[i]
		}
		if dg >= 0 {
			for i := range d {
				d[i] = -g[i]
			}
			dg = -gnorm
		}
		step := 1.0
		improved := false
		for ls := 0; ls < 40; ls++ {
			for i := range trial {
				trial[i] = x[i] + step*d[i]
			}
			ft := f(trial)
			if ft <= fx+armijoC*step*dg {
				copy(x, trial)
				fx = ft
				improved = true
				break
			}
			step /= 2
		}
		if !improved {
			break
		}
		copy(gPrev, g)
		numGrad(f, x, g)
		num, den := 0.0, 0.0
		for i := range g {
			num += g[i] * (g[i] - gPrev[i])
			den += gPrev[i] * gPrev[i]
		}
		beta := 0.0
		if den > 0 {
			beta = num / den
		}
		if beta < 0 {
			beta = 0
		}
		for i := range d {
			d[i] = beta*d[i] - g[i]
		}
	}
	return x, fx
}
