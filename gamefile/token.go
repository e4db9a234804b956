package gamefile

import (
	"bufio"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokWord
	tokText
	tokLBrace
	tokRBrace
	tokComma
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

// lexer splits a game file into bare words, quoted strings and
// punctuation, tracking line and column for error reporting. Both file
// formats share this token alphabet.
type lexer struct {
	r      *bufio.Reader
	line   int
	col    int
	peeked *token
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), line: 1}
}

func (lx *lexer) readRune() (rune, bool, error) {
	c, _, err := lx.r.ReadRune()
	if err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if c == '\n' {
		lx.line++
		lx.col = 0
	} else {
		lx.col++
	}
	return c, true, nil
}

// unread pushes back a delimiter rune. Never called with a newline, so
// the position arithmetic stays simple.
func (lx *lexer) unread() {
	_ = lx.r.UnreadRune()
	lx.col--
}

func (lx *lexer) next() (token, error) {
	if lx.peeked != nil {
		t := *lx.peeked
		lx.peeked = nil
		return t, nil
	}
	for {
		c, ok, err := lx.readRune()
		if err != nil {
			return token{}, err
		}
		if !ok {
			return token{kind: tokEOF, line: lx.line, col: lx.col}, nil
		}
		if unicode.IsSpace(c) {
			continue
		}
		line, col := lx.line, lx.col
		switch c {
		case '{':
			return token{kind: tokLBrace, text: "{", line: line, col: col}, nil
		case '}':
			return token{kind: tokRBrace, text: "}", line: line, col: col}, nil
		case ',':
			return token{kind: tokComma, text: ",", line: line, col: col}, nil
		case '"':
			var sb strings.Builder
			for {
				c, ok, err := lx.readRune()
				if err != nil {
					return token{}, err
				}
				if !ok {
					return token{}, &ParseError{Line: line, Col: col, Msg: "unterminated string"}
				}
				if c == '"' {
					break
				}
				sb.WriteRune(c)
			}
			return token{kind: tokText, text: sb.String(), line: line, col: col}, nil
		default:
			var sb strings.Builder
			sb.WriteRune(c)
			for {
				c, ok, err := lx.readRune()
				if err != nil {
					return token{}, err
				}
				if !ok {
					break
				}
				if unicode.IsSpace(c) {
					break
				}
				if c == '{' || c == '}' || c == ',' || c == '"' {
					lx.unread()
					break
				}
				sb.WriteRune(c)
			}
			return token{kind: tokWord, text: sb.String(), line: line, col: col}, nil
		}
	}
}

func (lx *lexer) peek() (token, error) {
	if lx.peeked == nil {
		t, err := lx.next()
		if err != nil {
			return token{}, err
		}
		lx.peeked = &t
	}
	return *lx.peeked, nil
}

func (lx *lexer) expect(kind tokenKind, what string) (token, error) {
	t, err := lx.next()
	if err != nil {
		return token{}, err
	}
	if t.kind != kind {
		return token{}, errAt(t, "expected %s, got %q", what, t.text)
	}
	return t, nil
}

func (lx *lexer) text() (string, error) {
	t, err := lx.expect(tokText, "a quoted string")
	if err != nil {
		return "", err
	}
	return t.text, nil
}

func (lx *lexer) integer() (int, token, error) {
	t, err := lx.expect(tokWord, "an integer")
	if err != nil {
		return 0, token{}, err
	}
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, t, errAt(t, "expected an integer, got %q", t.text)
	}
	return n, t, nil
}

// rational accepts integer, fraction and decimal literals.
func (lx *lexer) rational() (*big.Rat, token, error) {
	t, err := lx.expect(tokWord, "a number")
	if err != nil {
		return nil, token{}, err
	}
	r, ok := new(big.Rat).SetString(t.text)
	if !ok {
		return nil, t, errAt(t, "expected a number, got %q", t.text)
	}
	return r, t, nil
}
