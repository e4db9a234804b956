package nash

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/equilib/equilib/value"
)

func TestLpPokerExact(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := pokerTree(t).Strategic()

	rs, err := LpSolve(g, ar, LpParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	is.True(rs.At(0).Equal(pokerEquilibrium(t, g)))
}

func TestLpPokerBehavior(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	tr := pokerTree(t)

	rs, err := LpBehaviorSolve(tr, ar, LpParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)

	b := rs.At(0)
	is.Equal(ar.String(b.Prob(0, 0)), "1")
	is.Equal(ar.String(b.Prob(0, 1)), "0")
	is.Equal(ar.String(b.Prob(1, 0)), "1/3")
	is.Equal(ar.String(b.Prob(1, 1)), "2/3")
	is.Equal(ar.String(b.Prob(2, 0)), "2/3")
	is.Equal(ar.String(b.Prob(2, 1)), "1/3")
}

func TestLpPokerDouble(t *testing.T) {
	is := is.New(t)
	ar := value.NewDouble()
	g := pokerTree(t).Strategic()

	rs, err := LpSolve[float64](g, ar, LpParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	p := rs.At(0)
	is.True(ar.Equal(p.Prob(0, 0), 1.0/3))
	is.True(ar.Equal(p.Prob(1, 0), 2.0/3))
}

func TestLpMatchingPennies(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := matchingPennies(t)

	rs, err := LpSolve(g, ar, LpParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	is.Equal(ar.String(rs.At(0).Prob(0, 0)), "1/2")
	is.Equal(ar.String(rs.At(0).Prob(1, 0)), "1/2")
}

func TestLpRejectsNonConstSum(t *testing.T) {
	var ar value.Rational
	g := coordination(t)

	_, err := LpSolve(g, ar, LpParams{})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("want ErrUnsupported, got %v", err)
	}
}
