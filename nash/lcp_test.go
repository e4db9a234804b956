package nash

import (
	"errors"
	"math/big"
	"testing"

	"github.com/matryer/is"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

func TestLcpPokerExact(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := pokerTree(t).Strategic()

	rs, err := LcpSolve(g, ar, LcpParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	is.True(rs.At(0).Equal(pokerEquilibrium(t, g)))
}

func TestLcpPokerBehavior(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	tr := pokerTree(t)

	rs, err := LcpBehaviorSolve(tr, ar, LcpParams{})
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

func TestLcpPokerDouble(t *testing.T) {
	is := is.New(t)
	ar := value.NewDouble()
	g := pokerTree(t).Strategic()

	rs, err := LcpSolve[float64](g, ar, LcpParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	is.True(ar.Sign(rs.At(0).MaxRegret()) <= 0)
}

func TestLcpMatchingPennies(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := matchingPennies(t)

	rs, err := LcpSolve(g, ar, LcpParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	p := rs.At(0)
	half := "1/2"
	is.Equal(ar.String(p.Prob(0, 0)), half)
	is.Equal(ar.String(p.Prob(0, 1)), half)
	is.Equal(ar.String(p.Prob(1, 0)), half)
	is.Equal(ar.String(p.Prob(1, 1)), half)
}

func TestLcpDeterministic(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := pokerTree(t).Strategic()

	first, err := LcpSolve(g, ar, LcpParams{})
	is.NoErr(err)
	second, err := LcpSolve(g, ar, LcpParams{})
	is.NoErr(err)
	is.Equal(first.Len(), second.Len())
	is.True(first.At(0).Equal(second.At(0)))
}

func TestLcpRejectsThreePlayers(t *testing.T) {
	var ar value.Rational
	g := game.NewStrategic("three", []string{"a", "b", "c"},
		[][]string{{"x", "y"}, {"x", "y"}, {"x", "y"}})
	for flat := 0; flat < g.NumProfiles(); flat++ {
		for pl := 0; pl < 3; pl++ {
			g.SetPayoff(g.ProfileAt(flat), pl, new(big.Rat))
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}

	_, err := LcpSolve(g, ar, LcpParams{})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("want ErrUnsupported, got %v", err)
	}
}
