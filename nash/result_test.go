package nash

import (
	"testing"

	"github.com/matryer/is"
)

func TestResultSetDedup(t *testing.T) {
	is := is.New(t)
	rs := NewResultSet[*equalProfile]()

	a := &equalProfile{id: 1}
	b := &equalProfile{id: 1}
	c := &equalProfile{id: 2}
	is.True(rs.Append(a))
	is.True(!rs.Append(b))
	is.True(rs.Append(c))
	is.Equal(rs.Len(), 2)
	is.Equal(rs.At(0), a)
	is.Equal(rs.At(1), c)
}

type equalProfile struct{ id int }

func (e *equalProfile) Equal(o *equalProfile) bool { return o != nil && e.id == o.id }
