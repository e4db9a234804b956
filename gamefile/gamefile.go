// Package gamefile reads and writes games in the standard extensive
// (.efg) and strategic (.nfg) text formats. Payoffs are kept as exact
// rationals; decimal literals are converted without rounding.
package gamefile

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/equilib/equilib/game"
)

// ReadGame parses a game from r, detecting the format from the first
// token of the prologue. Syntax errors are reported as *ParseError
// with line and column; structural errors wrap game.ErrInvalidGame.
func ReadGame(r io.Reader) (game.Game, error) {
	lx := newLexer(r)
	t, err := lx.peek()
	if err != nil {
		return nil, err
	}
	switch t.text {
	case "EFG":
		return parseEFG(lx)
	case "NFG":
		return parseNFG(lx)
	}
	return nil, errAt(t, "unrecognized game file prologue %q", t.text)
}

// ReadGameFile reads a game from the named file.
func ReadGameFile(path string) (game.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := ReadGame(f)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Str("title", g.Title()).Msg("loaded game")
	return g, nil
}

// ReadEFG parses an extensive-form game.
func ReadEFG(r io.Reader) (*game.Tree, error) {
	return parseEFG(newLexer(r))
}

// ReadNFG parses a strategic-form game.
func ReadNFG(r io.Reader) (*game.Strategic, error) {
	return parseNFG(newLexer(r))
}
