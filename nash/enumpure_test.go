package nash

import (
	"testing"

	"github.com/matryer/is"

	"github.com/equilib/equilib/value"
)

func TestEnumPureNoEquilibrium(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := pokerTree(t).Strategic()

	rs, err := EnumPureSolve(g, ar, EnumPureParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 0)
}

func TestEnumPureAgentNoEquilibrium(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	tr := pokerTree(t)

	rs, err := EnumPureAgentSolve(tr, ar, EnumPureParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 0)
}

func TestEnumPureCoordination(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := coordination(t)

	rs, err := EnumPureSolve(g, ar, EnumPureParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 2)

	// Enumeration order: (A, A) before (B, B).
	is.Equal(ar.String(rs.At(0).Prob(0, 0)), "1")
	is.Equal(ar.String(rs.At(0).Prob(1, 0)), "1")
	is.Equal(ar.String(rs.At(1).Prob(0, 1)), "1")
	is.Equal(ar.String(rs.At(1).Prob(1, 1)), "1")
}

func TestEnumPureStopAfter(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := coordination(t)

	rs, err := EnumPureSolve(g, ar, EnumPureParams{StopAfter: 1})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
}
