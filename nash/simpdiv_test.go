package nash

import (
	"testing"

	"github.com/matryer/is"

	"github.com/equilib/equilib/value"
)

func TestSimpdivPokerExact(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := pokerTree(t).Strategic()

	rs, err := SimpdivSolve(g, ar, SimpdivParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	is.True(rs.At(0).Equal(pokerEquilibrium(t, g)))
}

// The centroid is a grid point at the default resolution and already
// the equilibrium, so the walk accepts it without refining.
func TestSimpdivMatchingPennies(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := matchingPennies(t)

	rs, err := SimpdivSolve(g, ar, SimpdivParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	is.Equal(ar.String(rs.At(0).Prob(0, 0)), "1/2")
	is.Equal(ar.String(rs.At(0).Prob(1, 0)), "1/2")
}

func TestSimpdivCoordinationFindsOne(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := coordination(t)

	rs, err := SimpdivSolve(g, ar, SimpdivParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	is.True(ar.Sign(rs.At(0).MaxRegret()) <= 0)
}
