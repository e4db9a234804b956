package gamefile

import (
	"math/big"

	"github.com/equilib/equilib/game"
)

// The extensive-form format: a prologue line
//
//	EFG 2 R "title" { "player" ... }
//
// optionally followed by a quoted comment, then one line per tree node
// in preorder. Chance nodes start with c, personal decision nodes with
// p, terminals with t. Infoset and outcome numbers are 1-based and
// scoped to the file; number 0 means "no outcome". An infoset's action
// list must appear at its first use and may be repeated afterwards.

type efgParser struct {
	lx         *lexer
	tree       *game.Tree
	chanceSets map[int]*game.Infoset
	playerSets []map[int]*game.Infoset
	outcomes   map[int]*game.Outcome
}

func parseEFG(lx *lexer) (*game.Tree, error) {
	if _, err := lx.expect(tokWord, `"EFG"`); err != nil {
		return nil, err
	}
	ver, vt, err := lx.integer()
	if err != nil {
		return nil, err
	}
	if ver != 2 {
		return nil, errAt(vt, "unsupported extensive-form version %d", ver)
	}
	mode, err := lx.expect(tokWord, "a payoff mode")
	if err != nil {
		return nil, err
	}
	if mode.text != "R" && mode.text != "D" {
		return nil, errAt(mode, "unknown payoff mode %q", mode.text)
	}
	title, err := lx.text()
	if err != nil {
		return nil, err
	}
	if _, err := lx.expect(tokLBrace, `"{"`); err != nil {
		return nil, err
	}
	var players []string
	for {
		t, err := lx.next()
		if err != nil {
			return nil, err
		}
		if t.kind == tokRBrace {
			break
		}
		if t.kind != tokText {
			return nil, errAt(t, "expected a player name, got %q", t.text)
		}
		players = append(players, t.text)
	}
	if len(players) == 0 {
		return nil, errAt(token{line: 1, col: 1}, "game has no players")
	}

	tree := game.NewTree(title, players)
	if t, err := lx.peek(); err != nil {
		return nil, err
	} else if t.kind == tokText {
		tree.SetComment(t.text)
		lx.next()
	}

	p := &efgParser{
		lx:         lx,
		tree:       tree,
		chanceSets: make(map[int]*game.Infoset),
		playerSets: make([]map[int]*game.Infoset, len(players)),
		outcomes:   make(map[int]*game.Outcome),
	}
	for i := range p.playerSets {
		p.playerSets[i] = make(map[int]*game.Infoset)
	}
	if err := p.node(tree.Root()); err != nil {
		return nil, err
	}
	if t, err := lx.next(); err != nil {
		return nil, err
	} else if t.kind != tokEOF {
		return nil, errAt(t, "unexpected %q after the last node", t.text)
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

func (p *efgParser) node(n *game.Node) error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	if t.kind != tokWord {
		return errAt(t, "expected a node type, got %q", t.text)
	}
	switch t.text {
	case "c":
		return p.chanceNode(n)
	case "p":
		return p.personalNode(n)
	case "t":
		return p.terminalNode(n)
	}
	return errAt(t, "unknown node type %q", t.text)
}

func (p *efgParser) chanceNode(n *game.Node) error {
	name, err := p.lx.text()
	if err != nil {
		return err
	}
	n.SetLabel(name)
	num, numTok, err := p.lx.integer()
	if err != nil {
		return err
	}
	label, err := p.optionalText()
	if err != nil {
		return err
	}

	is := p.chanceSets[num]
	if t, err := p.lx.peek(); err != nil {
		return err
	} else if t.kind == tokLBrace {
		labels, probs, err := p.chanceActions()
		if err != nil {
			return err
		}
		if is == nil {
			is = p.tree.NewChanceInfoset(label, labels, probs)
			p.chanceSets[num] = is
		} else if len(labels) != is.NumActions() {
			return errAt(t, "chance infoset %d redefined with %d actions, had %d",
				num, len(labels), is.NumActions())
		}
	}
	if is == nil {
		return errAt(numTok, "chance infoset %d used before its actions are given", num)
	}
	n.SetInfoset(is)
	if err := p.outcome(n); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := p.node(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *efgParser) personalNode(n *game.Node) error {
	name, err := p.lx.text()
	if err != nil {
		return err
	}
	n.SetLabel(name)
	pl, plTok, err := p.lx.integer()
	if err != nil {
		return err
	}
	if pl < 1 || pl > p.tree.NumPlayers() {
		return errAt(plTok, "player %d out of range", pl)
	}
	num, numTok, err := p.lx.integer()
	if err != nil {
		return err
	}
	label, err := p.optionalText()
	if err != nil {
		return err
	}

	is := p.playerSets[pl-1][num]
	if t, err := p.lx.peek(); err != nil {
		return err
	} else if t.kind == tokLBrace {
		labels, err := p.actionLabels()
		if err != nil {
			return err
		}
		if is == nil {
			is = p.tree.NewInfoset(pl-1, label, labels)
			p.playerSets[pl-1][num] = is
		} else if len(labels) != is.NumActions() {
			return errAt(t, "infoset %d of player %d redefined with %d actions, had %d",
				num, pl, len(labels), is.NumActions())
		}
	}
	if is == nil {
		return errAt(numTok, "infoset %d of player %d used before its actions are given", num, pl)
	}
	n.SetInfoset(is)
	if err := p.outcome(n); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := p.node(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *efgParser) terminalNode(n *game.Node) error {
	name, err := p.lx.text()
	if err != nil {
		return err
	}
	n.SetLabel(name)
	return p.outcome(n)
}

// outcome reads an outcome reference: 0 for none, or a number whose
// first occurrence carries a name and a payoff list.
func (p *efgParser) outcome(n *game.Node) error {
	num, numTok, err := p.lx.integer()
	if err != nil {
		return err
	}
	if num == 0 {
		return nil
	}
	if o := p.outcomes[num]; o != nil {
		n.SetOutcome(o)
		return nil
	}
	name, err := p.lx.text()
	if err != nil {
		return err
	}
	payoffs, err := p.payoffList()
	if err != nil {
		return err
	}
	if len(payoffs) != p.tree.NumPlayers() {
		return errAt(numTok, "outcome %d has %d payoffs for %d players",
			num, len(payoffs), p.tree.NumPlayers())
	}
	o := p.tree.NewOutcome(name, payoffs)
	p.outcomes[num] = o
	n.SetOutcome(o)
	return nil
}

func (p *efgParser) optionalText() (string, error) {
	t, err := p.lx.peek()
	if err != nil {
		return "", err
	}
	if t.kind != tokText {
		return "", nil
	}
	p.lx.next()
	return t.text, nil
}

// chanceActions reads { "label" prob "label" prob ... }.
func (p *efgParser) chanceActions() ([]string, []*big.Rat, error) {
	if _, err := p.lx.expect(tokLBrace, `"{"`); err != nil {
		return nil, nil, err
	}
	var labels []string
	var probs []*big.Rat
	for {
		t, err := p.lx.next()
		if err != nil {
			return nil, nil, err
		}
		if t.kind == tokRBrace {
			return labels, probs, nil
		}
		if t.kind != tokText {
			return nil, nil, errAt(t, "expected an action name, got %q", t.text)
		}
		pr, _, err := p.lx.rational()
		if err != nil {
			return nil, nil, err
		}
		labels = append(labels, t.text)
		probs = append(probs, pr)
	}
}

// actionLabels reads { "label" "label" ... }.
func (p *efgParser) actionLabels() ([]string, error) {
	if _, err := p.lx.expect(tokLBrace, `"{"`); err != nil {
		return nil, err
	}
	var labels []string
	for {
		t, err := p.lx.next()
		if err != nil {
			return nil, err
		}
		if t.kind == tokRBrace {
			return labels, nil
		}
		if t.kind != tokText {
			return nil, errAt(t, "expected an action name, got %q", t.text)
		}
		labels = append(labels, t.text)
	}
}

// payoffList reads { v, v, ... } with optional commas.
func (p *efgParser) payoffList() ([]*big.Rat, error) {
	if _, err := p.lx.expect(tokLBrace, `"{"`); err != nil {
		return nil, err
	}
	var payoffs []*big.Rat
	for {
		t, err := p.lx.peek()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokRBrace:
			p.lx.next()
			return payoffs, nil
		case tokComma:
			p.lx.next()
		case tokWord:
			v, _, err := p.lx.rational()
			if err != nil {
				return nil, err
			}
			payoffs = append(payoffs, v)
		default:
			return nil, errAt(t, "expected a payoff, got %q", t.text)
		}
	}
}
