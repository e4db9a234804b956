package value

import (
	"math/big"
	"testing"

	"github.com/matryer/is"
)

func TestRationalReduced(t *testing.T) {
	is := is.New(t)
	var ar Rational

	v, err := ar.Parse("2/4")
	is.NoErr(err)
	is.Equal(ar.String(v), "1/2")

	w := ar.Add(big.NewRat(1, 6), big.NewRat(1, 3))
	is.Equal(ar.String(w), "1/2")
	is.True(ar.Equal(v, w))
}

func TestRationalArithmetic(t *testing.T) {
	is := is.New(t)
	var ar Rational

	third := big.NewRat(1, 3)
	twoThirds := ar.Add(third, third)
	is.Equal(ar.String(twoThirds), "2/3")
	is.True(ar.Equal(ar.Sub(ar.One(), third), twoThirds))
	is.Equal(ar.String(ar.Mul(twoThirds, big.NewRat(1, 2))), "1/3")
	is.Equal(ar.String(ar.Div(third, twoThirds)), "1/2")
	is.Equal(ar.Sign(ar.Neg(third)), -1)
	is.True(ar.IsZero(ar.Sub(third, third)))
}

func TestRationalDoesNotAliasArguments(t *testing.T) {
	is := is.New(t)
	var ar Rational

	a := big.NewRat(1, 2)
	b := big.NewRat(1, 2)
	sum := ar.Add(a, b)
	is.Equal(ar.String(sum), "1")
	// Inputs survive untouched.
	is.Equal(a.RatString(), "1/2")
	is.Equal(b.RatString(), "1/2")
}

func TestRationalParseErrors(t *testing.T) {
	var ar Rational
	for _, in := range []string{"", "x", "1/", "one third"} {
		if _, err := ar.Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestDoubleEpsilonEquality(t *testing.T) {
	is := is.New(t)
	ar := NewDouble()

	a := 0.1 + 0.2
	is.True(ar.Equal(a, 0.3))
	is.Equal(ar.Cmp(a, 0.3), 0)
	is.True(ar.IsZero(ar.Sub(a, 0.3)))
	is.Equal(ar.Sign(1e-12), 0)
	is.Equal(ar.Sign(-0.5), -1)
	is.Equal(ar.Cmp(0.25, 0.5), -1)
}

func TestDoubleParse(t *testing.T) {
	is := is.New(t)
	ar := NewDouble()

	v, err := ar.Parse("1/4")
	is.NoErr(err)
	is.Equal(v, 0.25)

	v, err = ar.Parse("0.125")
	is.NoErr(err)
	is.Equal(v, 0.125)

	_, err = ar.Parse("nope")
	is.True(err != nil)
}

func TestKernelsRoundTripRat(t *testing.T) {
	is := is.New(t)
	var rat Rational
	dbl := NewDouble()

	r := big.NewRat(-7, 3)
	is.Equal(rat.Rat(rat.FromRat(r)).RatString(), "-7/3")
	is.True(dbl.Equal(dbl.FromRat(r), -7.0/3.0))
}
