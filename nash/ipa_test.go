package nash

import (
	"testing"

	"github.com/matryer/is"

	"github.com/equilib/equilib/value"
)

func TestIpaPoker(t *testing.T) {
	is := is.New(t)
	ar := value.NewDouble()
	g := pokerTree(t).Strategic()

	rs, err := IpaSolve(g, IpaParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	p := rs.At(0)
	is.True(ar.Sign(p.MaxRegret()) <= 0)
	is.True(ar.Equal(p.Prob(0, 0), 1.0/3))
	is.True(ar.Equal(p.Prob(1, 0), 2.0/3))
}

func TestIpaMatchingPennies(t *testing.T) {
	is := is.New(t)
	ar := value.NewDouble()
	g := matchingPennies(t)

	rs, err := IpaSolve(g, IpaParams{})
	is.NoErr(err)
	is.Equal(rs.Len(), 1)
	is.True(ar.Equal(rs.At(0).Prob(0, 0), 0.5))
}
