package nash

import (
	"math/big"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/equilib/equilib/game"
	"github.com/equilib/equilib/value"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func rats(vals ...int64) []*big.Rat {
	out := make([]*big.Rat, len(vals))
	for i, v := range vals {
		out[i] = big.NewRat(v, 1)
	}
	return out
}

// pokerTree builds Myerson's simple poker example: chance deals RED or
// BLACK to player 1, who may RAISE or FOLD; after a raise player 2,
// not seeing the card, may MEET or PASS. Its unique equilibrium mixes
// [1/3, 2/3, 0, 0] against [2/3, 1/3] in the reduced strategic form.
func pokerTree(t *testing.T) *game.Tree {
	t.Helper()
	tr := game.NewTree("Simple poker game", []string{"RED", "BLUE"})
	deal := tr.NewChanceInfoset("DEAL", []string{"RED", "BLACK"},
		[]*big.Rat{big.NewRat(1, 2), big.NewRat(1, 2)})
	isRed := tr.NewInfoset(0, "RED", []string{"RAISE", "FOLD"})
	isBlack := tr.NewInfoset(0, "BLACK", []string{"RAISE", "FOLD"})
	isBlue := tr.NewInfoset(1, "RAISED", []string{"MEET", "PASS"})

	root := tr.Root()
	root.SetInfoset(deal)

	red := root.Child(0)
	red.SetInfoset(isRed)
	redRaise := red.Child(0)
	redRaise.SetInfoset(isBlue)
	redRaise.Child(0).SetOutcome(tr.NewOutcome("", rats(2, -2)))
	redRaise.Child(1).SetOutcome(tr.NewOutcome("", rats(1, -1)))
	red.Child(1).SetOutcome(tr.NewOutcome("", rats(1, -1)))

	black := root.Child(1)
	black.SetInfoset(isBlack)
	blackRaise := black.Child(0)
	blackRaise.SetInfoset(isBlue)
	blackRaise.Child(0).SetOutcome(tr.NewOutcome("", rats(-2, 2)))
	blackRaise.Child(1).SetOutcome(tr.NewOutcome("", rats(1, -1)))
	black.Child(1).SetOutcome(tr.NewOutcome("", rats(-1, 1)))

	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
	return tr
}

// pokerEquilibrium is the game's unique equilibrium as an exact
// rational profile.
func pokerEquilibrium(t *testing.T, g *game.Strategic) *game.MixedStrategyProfile[*big.Rat] {
	t.Helper()
	var ar value.Rational
	p, err := game.NewMixedStrategyProfileData(g, ar, [][]*big.Rat{
		{big.NewRat(1, 3), big.NewRat(2, 3), new(big.Rat), new(big.Rat)},
		{big.NewRat(2, 3), big.NewRat(1, 3)},
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// matchingPennies has the unique equilibrium with both players mixing
// half and half.
func matchingPennies(t *testing.T) *game.Strategic {
	t.Helper()
	g := game.NewStrategic("Matching pennies",
		[]string{"Odd", "Even"}, [][]string{{"H", "T"}, {"H", "T"}})
	one := big.NewRat(1, 1)
	neg := big.NewRat(-1, 1)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if i == j {
				g.SetPayoff([]int{i, j}, 0, one)
				g.SetPayoff([]int{i, j}, 1, neg)
			} else {
				g.SetPayoff([]int{i, j}, 0, neg)
				g.SetPayoff([]int{i, j}, 1, one)
			}
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	return g
}

// coordination has pure equilibria at (A, A) and (B, B) and one mixed
// equilibrium; it is not constant-sum.
func coordination(t *testing.T) *game.Strategic {
	t.Helper()
	g := game.NewStrategic("Coordination",
		[]string{"Row", "Col"}, [][]string{{"A", "B"}, {"A", "B"}})
	zero := new(big.Rat)
	two := big.NewRat(2, 1)
	one := big.NewRat(1, 1)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v := zero
			if i == 0 && j == 0 {
				v = two
			} else if i == 1 && j == 1 {
				v = one
			}
			g.SetPayoff([]int{i, j}, 0, v)
			g.SetPayoff([]int{i, j}, 1, v)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	return g
}
