package nash

// ResultSet is an ordered collection of equilibrium profiles. Order is
// insertion order, which each solver keeps stable for identical
// inputs; Append drops profiles equal (under the profile's kernel) to
// one already present.
type ResultSet[P interface{ Equal(P) bool }] struct {
	profiles []P
}

func NewResultSet[P interface{ Equal(P) bool }]() *ResultSet[P] {
	return &ResultSet[P]{}
}

// Append adds p unless an equal profile is already present. Reports
// whether p was added.
func (r *ResultSet[P]) Append(p P) bool {
	for _, q := range r.profiles {
		if q.Equal(p) {
			return false
		}
	}
	r.profiles = append(r.profiles, p)
	return true
}

func (r *ResultSet[P]) Len() int { return len(r.profiles) }

func (r *ResultSet[P]) At(i int) P { return r.profiles[i] }

// Profiles returns the backing slice; callers must not mutate it.
func (r *ResultSet[P]) Profiles() []P { return r.profiles }
