package nash

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

// EnumPureParams controls pure-strategy enumeration. StopAfter limits
// the number of equilibria reported; zero means report all.
type EnumPureParams struct {
	StopAfter int
}

// EnumPureSolve enumerates every pure strategy profile of the
// strategic form and keeps those where no player has a profitable
// pure deviation. Result order is cartesian enumeration order. Games
// with no pure equilibrium yield an empty set; that is a definitive
// answer for this solver, unlike the iterative methods.
func EnumPureSolve[T any](g game.Game, ar value.Arith[T], params EnumPureParams) (*ResultSet[*game.MixedStrategyProfile[T]], error) {
	s := g.Strategic()
	rs := NewResultSet[*game.MixedStrategyProfile[T]]()
	dims := s.Dims()

	gen := combin.NewCartesianGenerator(dims)
	var profile []int
	for gen.Next() {
		profile = gen.Product(profile)
		if !isPureNash(ar, s, profile) {
			continue
		}
		p, err := pureProfile(s, ar, profile)
		if err != nil {
			return nil, err
		}
		log.Debug().Ints("profile", profile).Msg("pure equilibrium")
		rs.Append(p)
		if params.StopAfter > 0 && rs.Len() >= params.StopAfter {
			break
		}
	}
	return rs, nil
}

func isPureNash[T any](ar value.Arith[T], s *game.Strategic, profile []int) bool {
	dev := append([]int(nil), profile...)
	for pl := 0; pl < s.NumPlayers(); pl++ {
		base := ar.FromRat(s.Payoff(profile, pl))
		for st := 0; st < s.Dims()[pl]; st++ {
			if st == profile[pl] {
				continue
			}
			dev[pl] = st
			if ar.Cmp(ar.FromRat(s.Payoff(dev, pl)), base) > 0 {
				return false
			}
		}
		dev[pl] = profile[pl]
	}
	return true
}

func pureProfile[T any](s *game.Strategic, ar value.Arith[T], profile []int) (*game.MixedStrategyProfile[T], error) {
	data := make([][]T, s.NumPlayers())
	for pl, d := range s.Dims() {
		data[pl] = make([]T, d)
		for st := range data[pl] {
			if st == profile[pl] {
				data[pl][st] = ar.One()
			} else {
				data[pl][st] = ar.Zero()
			}
		}
	}
	return game.NewMixedStrategyProfileData(s, ar, data)
}

// EnumPureAgentSolve enumerates pure behavior profiles of the game
// tree (one action per infoset) and keeps those satisfying the
// agent-form Nash condition: no single infoset has a profitable
// action change.
func EnumPureAgentSolve[T any](t *game.Tree, ar value.Arith[T], params EnumPureParams) (*ResultSet[*game.MixedBehaviorProfile[T]], error) {
	rs := NewResultSet[*game.MixedBehaviorProfile[T]]()
	infosets := t.Infosets()
	if len(infosets) == 0 {
		return nil, unsupportedf("game tree has no decision points")
	}
	dims := make([]int, len(infosets))
	for gi, is := range infosets {
		dims[gi] = is.NumActions()
	}

	gen := combin.NewCartesianGenerator(dims)
	var choice []int
	for gen.Next() {
		choice = gen.Product(choice)
		b := game.NewMixedBehaviorProfile(t, ar)
		for gi, is := range infosets {
			for a := 0; a < is.NumActions(); a++ {
				if a == choice[gi] {
					b.SetProb(gi, a, ar.One())
				} else {
					b.SetProb(gi, a, ar.Zero())
				}
			}
		}
		if ar.Sign(b.MaxRegret()) > 0 {
			continue
		}
		log.Debug().Ints("choices", choice).Msg("pure agent equilibrium")
		rs.Append(b)
		if params.StopAfter > 0 && rs.Len() >= params.StopAfter {
			break
		}
	}
	return rs, nil
}
