// Package value provides the numeric kernel used throughout the solver
// engine. All solver code is written once, generic over a scalar type T,
// and instantiated at two kernels: Rational (exact arbitrary-precision
// arithmetic over *big.Rat) and Double (float64 with a fixed epsilon for
// equality and sign tests). Cross-kernel equality is not defined.
package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Arith is a stateless arithmetic kernel over the scalar type T.
// Implementations must never mutate their arguments; every operation
// returns a fresh value. Within a kernel, Cmp, Equal, IsZero and Sign
// are mutually consistent.
type Arith[T any] interface {
	Zero() T
	One() T
	FromInt(n int64) T
	FromRat(r *big.Rat) T
	// Rat converts v to an exact rational. For Double this is the exact
	// binary expansion of the float, not a "nice" decimal.
	Rat(v T) *big.Rat
	// Parse accepts integer ("3"), rational ("1/3", "-2/5") and, for
	// Double, decimal ("0.25") literals.
	Parse(s string) (T, error)

	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Div(a, b T) T
	Neg(a T) T
	Abs(a T) T

	Cmp(a, b T) int
	Equal(a, b T) bool
	IsZero(a T) bool
	Sign(a T) int

	Float64(v T) float64
	String(v T) string
}

// Rational is the exact kernel. big.Rat keeps values in lowest terms,
// so equality is deterministic representation equality.
type Rational struct{}

func (Rational) Zero() *big.Rat           { return new(big.Rat) }
func (Rational) One() *big.Rat            { return big.NewRat(1, 1) }
func (Rational) FromInt(n int64) *big.Rat { return big.NewRat(n, 1) }

func (Rational) FromRat(r *big.Rat) *big.Rat { return new(big.Rat).Set(r) }
func (Rational) Rat(v *big.Rat) *big.Rat     { return new(big.Rat).Set(v) }

func (Rational) Parse(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("value: cannot parse %q as a rational", s)
	}
	return r, nil
}

func (Rational) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (Rational) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (Rational) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

// Div panics on division by zero. Exact arithmetic cannot produce a
// zero pivot on a valid game, so this is an internal invariant
// violation, not a recoverable error.
func (Rational) Div(a, b *big.Rat) *big.Rat { return new(big.Rat).Quo(a, b) }

func (Rational) Neg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }
func (Rational) Abs(a *big.Rat) *big.Rat { return new(big.Rat).Abs(a) }

func (Rational) Cmp(a, b *big.Rat) int    { return a.Cmp(b) }
func (Rational) Equal(a, b *big.Rat) bool { return a.Cmp(b) == 0 }
func (Rational) IsZero(a *big.Rat) bool   { return a.Sign() == 0 }
func (Rational) Sign(a *big.Rat) int      { return a.Sign() }

func (Rational) Float64(v *big.Rat) float64 {
	f, _ := v.Float64()
	return f
}

func (Rational) String(v *big.Rat) string { return v.RatString() }

// DefaultEps is the tolerance used by the Double kernel for equality,
// zero and sign tests unless the caller overrides it.
const DefaultEps = 1e-8

// Double is the floating-point kernel. Equal, IsZero, Sign and Cmp are
// tolerance-aware; everything else is plain float64 arithmetic.
type Double struct {
	Eps float64
}

// NewDouble returns a Double kernel with the default epsilon.
func NewDouble() Double { return Double{Eps: DefaultEps} }

func (Double) Zero() float64           { return 0 }
func (Double) One() float64            { return 1 }
func (Double) FromInt(n int64) float64 { return float64(n) }

func (Double) FromRat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}

func (Double) Rat(v float64) *big.Rat {
	r := new(big.Rat).SetFloat64(v)
	if r == nil {
		panic(fmt.Sprintf("value: non-finite float %v has no rational form", v))
	}
	return r
}

func (Double) Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return 0, fmt.Errorf("value: cannot parse %q as a number", s)
		}
		f, _ := r.Float64()
		return f, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("value: cannot parse %q as a number", s)
	}
	return f, nil
}

func (Double) Add(a, b float64) float64 { return a + b }
func (Double) Sub(a, b float64) float64 { return a - b }
func (Double) Mul(a, b float64) float64 { return a * b }
func (Double) Div(a, b float64) float64 { return a / b }
func (Double) Neg(a float64) float64    { return -a }
func (Double) Abs(a float64) float64    { return math.Abs(a) }

func (d Double) Cmp(a, b float64) int {
	if math.Abs(a-b) <= d.Eps {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func (d Double) Equal(a, b float64) bool { return math.Abs(a-b) <= d.Eps }
func (d Double) IsZero(a float64) bool   { return math.Abs(a) <= d.Eps }

func (d Double) Sign(a float64) int {
	if math.Abs(a) <= d.Eps {
		return 0
	}
	if a < 0 {
		return -1
	}
	return 1
}

func (Double) Float64(v float64) float64 { return v }

func (Double) String(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
