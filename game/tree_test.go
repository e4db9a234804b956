package game

import (
	"math/big"
	"testing"

	"github.com/matryer/is"

	"github.com/equilib/equilib/value"
)

func rats(vals ...int64) []*big.Rat {
	out := make([]*big.Rat, len(vals))
	for i, v := range vals {
		out[i] = big.NewRat(v, 1)
	}
	return out
}

// pokerTree builds Myerson's simple poker example: chance deals RED or
// BLACK to player 1, who may RAISE or FOLD; after a raise player 2,
// not seeing the card, may MEET or PASS.
func pokerTree(t *testing.T) *Tree {
	t.Helper()
	tr := NewTree("Simple poker game", []string{"RED", "BLUE"})
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

func TestTreeStructure(t *testing.T) {
	is := is.New(t)
	tr := pokerTree(t)

	is.Equal(tr.NumPlayers(), 2)
	is.Equal(len(tr.Infosets()), 3)
	is.Equal(tr.NumActions(), 6)
	is.True(tr.IsPerfectRecall())
	is.True(tr.IsConstSum())

	// Player-major infoset order with stable global indices.
	is.Equal(tr.Infosets()[0].Label(), "RED")
	is.Equal(tr.Infosets()[1].Label(), "BLACK")
	is.Equal(tr.Infosets()[2].Label(), "RAISED")
	for gi, iset := range tr.Infosets() {
		is.Equal(iset.GlobalIndex(), gi)
	}
}

func TestTreeToStrategic(t *testing.T) {
	is := is.New(t)
	g := pokerTree(t).Strategic()

	is.Equal(g.Dims(), []int{4, 2})
	is.Equal(g.Players()[0].Strategies()[0].Label(), "11")
	is.Equal(g.Players()[0].Strategies()[1].Label(), "12")

	// Chance-weighted payoffs of the reduced strategic form.
	is.Equal(g.Payoff([]int{0, 0}, 0).RatString(), "0")
	is.Equal(g.Payoff([]int{0, 1}, 0).RatString(), "1")
	is.Equal(g.Payoff([]int{1, 0}, 0).RatString(), "1/2")
	is.Equal(g.Payoff([]int{1, 1}, 0).RatString(), "0")
	is.Equal(g.Payoff([]int{2, 0}, 0).RatString(), "-1/2")
	is.Equal(g.Payoff([]int{3, 1}, 0).RatString(), "0")
	is.Equal(g.Payoff([]int{1, 0}, 1).RatString(), "-1/2")
}

func TestTreeValidateBadChance(t *testing.T) {
	tr := NewTree("bad", []string{"a", "b"})
	deal := tr.NewChanceInfoset("", []string{"l", "r"},
		[]*big.Rat{big.NewRat(1, 2), big.NewRat(1, 3)})
	tr.Root().SetInfoset(deal)
	tr.Root().Child(0).SetOutcome(tr.NewOutcome("", rats(0, 0)))
	tr.Root().Child(1).SetOutcome(tr.NewOutcome("", rats(0, 0)))
	err := tr.Validate()
	if err == nil {
		t.Fatal("expected validation error for bad chance probabilities")
	}
}

func TestTreeValidateBadOutcomeArity(t *testing.T) {
	tr := NewTree("bad", []string{"a", "b"})
	move := tr.NewInfoset(0, "", []string{"l", "r"})
	tr.Root().SetInfoset(move)
	tr.Root().Child(0).SetOutcome(tr.NewOutcome("", rats(1)))
	tr.Root().Child(1).SetOutcome(tr.NewOutcome("", rats(0, 0)))
	err := tr.Validate()
	if err == nil {
		t.Fatal("expected validation error for payoff arity")
	}
}

func TestMixedProfilePayoffAtEquilibrium(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	g := pokerTree(t).Strategic()

	m, err := NewMixedStrategyProfileData(g, ar, [][]*big.Rat{
		{big.NewRat(1, 3), big.NewRat(2, 3), new(big.Rat), new(big.Rat)},
		{big.NewRat(2, 3), big.NewRat(1, 3)},
	})
	is.NoErr(err)

	is.Equal(ar.String(m.Payoff(0)), "1/3")
	is.Equal(ar.String(m.Payoff(1)), "-1/3")
	// No profitable deviation at the equilibrium.
	is.True(ar.Sign(m.MaxRegret()) <= 0)
	is.True(ar.IsZero(m.LiapValue()))
}

func TestMixedProfileSumValidation(t *testing.T) {
	var ar value.Rational
	g := pokerTree(t).Strategic()

	_, err := NewMixedStrategyProfileData(g, ar, [][]*big.Rat{
		{big.NewRat(1, 2), big.NewRat(1, 3), new(big.Rat), new(big.Rat)},
		{big.NewRat(2, 3), big.NewRat(1, 3)},
	})
	if err == nil {
		t.Fatal("expected sum-to-one validation error")
	}
}

func TestBehaviorProfileAtEquilibrium(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	tr := pokerTree(t)

	b, err := NewMixedBehaviorProfileData(tr, ar, [][]*big.Rat{
		{big.NewRat(1, 1), new(big.Rat)},
		{big.NewRat(1, 3), big.NewRat(2, 3)},
		{big.NewRat(2, 3), big.NewRat(1, 3)},
	})
	is.NoErr(err)

	is.Equal(ar.String(b.Payoff(0)), "1/3")
	is.True(ar.Sign(b.MaxRegret()) <= 0)
	is.True(ar.IsZero(b.LiapValue()))
}

func TestMixedBehaviorTranslation(t *testing.T) {
	is := is.New(t)
	var ar value.Rational
	tr := pokerTree(t)

	m, err := NewMixedStrategyProfileData(tr.Strategic(), ar, [][]*big.Rat{
		{big.NewRat(1, 3), big.NewRat(2, 3), new(big.Rat), new(big.Rat)},
		{big.NewRat(2, 3), big.NewRat(1, 3)},
	})
	is.NoErr(err)

	b, err := m.ToBehavior()
	is.NoErr(err)
	is.Equal(ar.String(b.Prob(0, 0)), "1")
	is.Equal(ar.String(b.Prob(0, 1)), "0")
	is.Equal(ar.String(b.Prob(1, 0)), "1/3")
	is.Equal(ar.String(b.Prob(1, 1)), "2/3")
	is.Equal(ar.String(b.Prob(2, 0)), "2/3")
	is.Equal(ar.String(b.Prob(2, 1)), "1/3")

	// Round trip back to the mixed representation.
	back := b.ToMixed()
	is.True(back.Equal(m))
}

func TestStrategicValidateMissingPayoff(t *testing.T) {
	g := NewStrategic("partial", []string{"a", "b"}, [][]string{{"x", "y"}, {"l", "r"}})
	g.SetPayoff([]int{0, 0}, 0, big.NewRat(1, 1))
	err := g.Validate()
	if err == nil {
		t.Fatal("expected validation error for missing payoffs")
	}
}
