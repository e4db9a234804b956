package gamefile

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilib/equilib/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// payoffTable renders every cell of the strategic form for comparison.
func payoffTable(g *game.Strategic) [][]string {
	out := make([][]string, g.NumProfiles())
	for flat := 0; flat < g.NumProfiles(); flat++ {
		profile := g.ProfileAt(flat)
		row := make([]string, g.NumPlayers())
		for pl := range row {
			row[pl] = g.Payoff(profile, pl).RatString()
		}
		out[flat] = row
	}
	return out
}

func TestReadPokerEFG(t *testing.T) {
	g, err := ReadGameFile("testdata/poker.efg")
	require.NoError(t, err)

	tr, ok := g.(*game.Tree)
	require.True(t, ok, "expected an extensive-form game")
	assert.Equal(t, "Simple poker game, Myerson (1991)", tr.Title())
	assert.True(t, tr.IsPerfectRecall())
	assert.True(t, tr.IsConstSum())
	require.Len(t, tr.Infosets(), 3)
	assert.Equal(t, "RED", tr.Infosets()[0].Label())
	assert.Equal(t, "BLACK", tr.Infosets()[1].Label())
	assert.Equal(t, "RAISED", tr.Infosets()[2].Label())

	s := tr.Strategic()
	assert.Equal(t, []int{4, 2}, s.Dims())
	assert.Equal(t, "11", s.Players()[0].Strategies()[0].Label())
	assert.Equal(t, "0", s.Payoff([]int{0, 0}, 0).RatString())
	assert.Equal(t, "1/2", s.Payoff([]int{1, 0}, 0).RatString())
	assert.Equal(t, "-1/2", s.Payoff([]int{2, 0}, 0).RatString())
	assert.Equal(t, "1", s.Payoff([]int{0, 1}, 0).RatString())
}

func TestReadPokerNFG(t *testing.T) {
	g, err := ReadGameFile("testdata/poker.nfg")
	require.NoError(t, err)

	s, ok := g.(*game.Strategic)
	require.True(t, ok, "expected a strategic-form game")
	assert.Equal(t, []int{4, 2}, s.Dims())
	assert.Equal(t, "MEET", s.Players()[1].Strategies()[0].Label())
	assert.True(t, s.IsConstSum())
}

// The .nfg fixture is the reduced strategic form of the .efg fixture.
func TestPokerFormatsAgree(t *testing.T) {
	ge, err := ReadGameFile("testdata/poker.efg")
	require.NoError(t, err)
	gn, err := ReadGameFile("testdata/poker.nfg")
	require.NoError(t, err)

	diff := cmp.Diff(payoffTable(ge.Strategic()), payoffTable(gn.Strategic()))
	assert.Empty(t, diff)
}

func TestRoundTripEFG(t *testing.T) {
	f, err := os.Open("testdata/poker.efg")
	require.NoError(t, err)
	defer f.Close()
	tr, err := ReadEFG(f)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteEFG(&buf, tr))
	back, err := ReadEFG(&buf)
	require.NoError(t, err)

	assert.Equal(t, tr.Title(), back.Title())
	assert.Empty(t, cmp.Diff(payoffTable(tr.Strategic()), payoffTable(back.Strategic())))
}

func TestRoundTripNFG(t *testing.T) {
	f, err := os.Open("testdata/poker.nfg")
	require.NoError(t, err)
	defer f.Close()
	s, err := ReadNFG(f)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteNFG(&buf, s))
	back, err := ReadNFG(&buf)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(payoffTable(s), payoffTable(back)))
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ReadGame(strings.NewReader(`EFG 2 X "bad mode" { "a" "b" }`))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
	assert.Contains(t, perr.Error(), "payoff mode")
}

func TestParseErrorUnterminatedString(t *testing.T) {
	_, err := ReadGame(strings.NewReader("EFG 2 R \"unterminated"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseErrorUnknownPrologue(t *testing.T) {
	_, err := ReadGame(strings.NewReader("XYZ 1 R"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseErrorUndefinedInfoset(t *testing.T) {
	src := `EFG 2 R "x" { "a" "b" }
p "" 1 1 0
`
	_, err := ReadGame(strings.NewReader(src))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}

func TestEFGBadChanceProbs(t *testing.T) {
	src := `EFG 2 R "x" { "a" "b" }
c "" 1 "" { "l" 1/2 "r" 1/3 } 0
t "" 1 "" { 0, 0 }
t "" 2 "" { 0, 0 }
`
	_, err := ReadGame(strings.NewReader(src))
	require.Error(t, err)
	assert.True(t, errors.Is(err, game.ErrInvalidGame))
}

func TestEFGOutcomeArity(t *testing.T) {
	src := `EFG 2 R "x" { "a" "b" }
p "" 1 1 "" { "l" "r" } 0
t "" 1 "" { 1 }
t "" 2 "" { 0, 0 }
`
	_, err := ReadGame(strings.NewReader(src))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
}

func TestNFGTruncatedPayoffs(t *testing.T) {
	src := `NFG 1 R "x" { "a" "b" } { 2 2 }
1 2 3
`
	_, err := ReadGame(strings.NewReader(src))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
