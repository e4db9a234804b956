package game

import (
	"math/big"
	"strconv"
	"strings"
)

// Infoset is a set of decision nodes its owning player cannot tell
// apart, with an ordered list of actions available at each of them.
// Chance "infosets" belong to the chance player and carry a
// probability on every action.
type Infoset struct {
	player  *Player
	index   int
	gindex  int
	label   string
	actions []*Action
	members []*Node
}

func (is *Infoset) Player() *Player { return is.player }

// Index is the infoset's position within its player's infoset list.
func (is *Infoset) Index() int { return is.index }

// GlobalIndex is the infoset's position in the game-wide, player-major
// ordering used by behavior profiles. Assigned by Tree.Validate.
func (is *Infoset) GlobalIndex() int { return is.gindex }

func (is *Infoset) Label() string      { return is.label }
func (is *Infoset) Actions() []*Action { return is.actions }
func (is *Infoset) NumActions() int    { return len(is.actions) }

// Members returns the nodes grouped into this infoset, in tree
// preorder.
func (is *Infoset) Members() []*Node { return is.members }

// Action is one labeled move at an infoset. Chance actions carry their
// probability.
type Action struct {
	infoset *Infoset
	index   int
	label   string
	prob    *big.Rat
}

func (a *Action) Infoset() *Infoset { return a.infoset }
func (a *Action) Index() int        { return a.index }
func (a *Action) Label() string     { return a.label }

// Prob is the chance probability of this action; nil for personal
// actions.
func (a *Action) Prob() *big.Rat { return a.prob }

// Outcome is a payoff vector attached to a node. Payoffs on interior
// nodes accumulate along the path to a terminal, as in the EFG format.
type Outcome struct {
	index   int
	label   string
	payoffs []*big.Rat
}

func (o *Outcome) Index() int          { return o.index }
func (o *Outcome) Label() string       { return o.label }
func (o *Outcome) Payoffs() []*big.Rat { return o.payoffs }

// Node is a node of the game tree. A node with no infoset is terminal.
type Node struct {
	label      string
	parent     *Node
	childIndex int
	children   []*Node
	infoset    *Infoset
	outcome    *Outcome
}

func (n *Node) Label() string     { return n.label }
func (n *Node) SetLabel(l string) { n.label = l }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) Child(i int) *Node { return n.children[i] }
func (n *Node) Infoset() *Infoset { return n.infoset }
func (n *Node) Outcome() *Outcome { return n.outcome }
func (n *Node) IsTerminal() bool  { return n.infoset == nil }

// SetInfoset places the node in an infoset and allocates one child
// slot per action. Children start out terminal and are configured by
// further SetInfoset / SetOutcome calls.
func (n *Node) SetInfoset(is *Infoset) {
	n.infoset = is
	is.members = append(is.members, n)
	n.children = make([]*Node, len(is.actions))
	for i := range n.children {
		n.children[i] = &Node{parent: n, childIndex: i}
	}
}

func (n *Node) SetOutcome(o *Outcome) { n.outcome = o }

// Tree is a finite extensive-form game. Build it with NewTree,
// NewInfoset/NewChanceInfoset/NewOutcome and Node.SetInfoset/
// SetOutcome, then call Validate, which also derives the strategic
// form. After a successful Validate the tree is immutable.
type Tree struct {
	title         string
	comment       string
	players       []*Player
	chance        *Player
	root          *Node
	outcomes      []*Outcome
	infosets      []*Infoset
	strategic     *Strategic
	perfectRecall bool
}

// NewTree creates a game tree with the given players and a bare root
// node.
func NewTree(title string, playerLabels []string) *Tree {
	t := &Tree{
		title:  title,
		chance: &Player{index: -1, label: "Chance"},
		root:   &Node{},
	}
	for i, pl := range playerLabels {
		t.players = append(t.players, &Player{index: i, label: pl})
	}
	return t
}

func (t *Tree) Title() string      { return t.title }
func (t *Tree) NumPlayers() int    { return len(t.players) }
func (t *Tree) Players() []*Player { return t.players }
func (t *Tree) Chance() *Player    { return t.chance }
func (t *Tree) Root() *Node        { return t.root }

func (t *Tree) Comment() string     { return t.comment }
func (t *Tree) SetComment(c string) { t.comment = c }

// IsConstSum reports whether the derived strategic form is
// constant-sum. Only valid after Validate.
func (t *Tree) IsConstSum() bool { return t.strategic.IsConstSum() }

// IsPerfectRecall reports whether every player remembers their own
// past moves. Only valid after Validate. Mixed/behavior profile
// translation assumes perfect recall.
func (t *Tree) IsPerfectRecall() bool { return t.perfectRecall }

// Strategic returns the strategic form derived from the tree: one
// strategy per combination of the player's infoset actions, payoffs
// weighted by chance. Only valid after Validate.
func (t *Tree) Strategic() *Strategic { return t.strategic }

// Infosets returns all personal infosets in the player-major order
// used by behavior profiles. Only valid after Validate.
func (t *Tree) Infosets() []*Infoset { return t.infosets }

// NumActions is the total action count over all personal infosets.
func (t *Tree) NumActions() int {
	n := 0
	for _, is := range t.infosets {
		n += len(is.actions)
	}
	return n
}

func (t *Tree) Outcomes() []*Outcome { return t.outcomes }

// NewInfoset creates an infoset for player pl with the given actions
// and appends it to the player's infoset list.
func (t *Tree) NewInfoset(pl int, label string, actionLabels []string) *Infoset {
	p := t.players[pl]
	is := &Infoset{player: p, index: len(p.infosets), label: label}
	for i, al := range actionLabels {
		is.actions = append(is.actions, &Action{infoset: is, index: i, label: al})
	}
	p.infosets = append(p.infosets, is)
	return is
}

// NewChanceInfoset creates a chance infoset; probs must be the same
// length as actionLabels.
func (t *Tree) NewChanceInfoset(label string, actionLabels []string, probs []*big.Rat) *Infoset {
	p := t.chance
	is := &Infoset{player: p, index: len(p.infosets), label: label}
	for i, al := range actionLabels {
		is.actions = append(is.actions, &Action{
			infoset: is, index: i, label: al, prob: new(big.Rat).Set(probs[i]),
		})
	}
	p.infosets = append(p.infosets, is)
	return is
}

// NewOutcome creates an outcome with one payoff per player.
func (t *Tree) NewOutcome(label string, payoffs []*big.Rat) *Outcome {
	o := &Outcome{index: len(t.outcomes), label: label}
	for _, v := range payoffs {
		o.payoffs = append(o.payoffs, new(big.Rat).Set(v))
	}
	t.outcomes = append(t.outcomes, o)
	return o
}

// Validate checks the structural invariants of the tree, derives the
// strategic form and assigns global infoset indices. Returns an error
// wrapping ErrInvalidGame on the first inconsistency.
func (t *Tree) Validate() error {
	if len(t.players) == 0 {
		return invalidf("game has no players")
	}
	if err := t.validateNode(t.root); err != nil {
		return err
	}
	for _, p := range t.players {
		for _, is := range p.infosets {
			if len(is.members) == 0 {
				return invalidf("infoset %q of %s has no members", is.label, p)
			}
			if len(is.actions) == 0 {
				return invalidf("infoset %q of %s has no actions", is.label, p)
			}
		}
	}
	for _, is := range t.chance.infosets {
		sum := new(big.Rat)
		for _, a := range is.actions {
			if a.prob.Sign() < 0 {
				return invalidf("negative chance probability %s", a.prob.RatString())
			}
			sum.Add(sum, a.prob)
		}
		if sum.Cmp(big.NewRat(1, 1)) != 0 {
			return invalidf("chance probabilities sum to %s, not 1", sum.RatString())
		}
	}

	t.infosets = t.infosets[:0]
	for _, p := range t.players {
		for _, is := range p.infosets {
			is.gindex = len(t.infosets)
			t.infosets = append(t.infosets, is)
		}
	}
	t.perfectRecall = t.checkPerfectRecall()
	t.buildStrategies()
	return t.buildStrategic()
}

func (t *Tree) validateNode(n *Node) error {
	if n.outcome != nil && len(n.outcome.payoffs) != len(t.players) {
		return invalidf("outcome %q has %d payoffs for %d players",
			n.outcome.label, len(n.outcome.payoffs), len(t.players))
	}
	for _, c := range n.children {
		if err := t.validateNode(c); err != nil {
			return err
		}
	}
	return nil
}

// ownHistory returns the player's own (infoset, action index) pairs on
// the path from the root to any member of is, outermost first. Under
// perfect recall this is the same for every member.
func ownHistory(is *Infoset) []actionStep {
	var steps []actionStep
	for n := is.members[0]; n.parent != nil; n = n.parent {
		pis := n.parent.infoset
		if pis != nil && pis.player == is.player {
			steps = append(steps, actionStep{pis, n.childIndex})
		}
	}
	// Reverse into root-first order.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}

type actionStep struct {
	infoset *Infoset
	action  int
}

func historyOf(member *Node, pl *Player) []actionStep {
	var steps []actionStep
	for n := member; n.parent != nil; n = n.parent {
		pis := n.parent.infoset
		if pis != nil && pis.player == pl {
			steps = append(steps, actionStep{pis, n.childIndex})
		}
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}

func (t *Tree) checkPerfectRecall() bool {
	for _, is := range t.infosets {
		base := historyOf(is.members[0], is.player)
		for _, m := range is.members[1:] {
			h := historyOf(m, is.player)
			if len(h) != len(base) {
				return false
			}
			for i := range h {
				if h[i] != base[i] {
					return false
				}
			}
		}
	}
	return true
}

// buildStrategies assigns each player the cartesian product of action
// choices over the player's infosets, with the last infoset's choice
// varying fastest. Labels are 1-based action numbers, one digit group
// per infoset, the conventional reduced-form naming.
func (t *Tree) buildStrategies() {
	for _, p := range t.players {
		n := 1
		for _, is := range p.infosets {
			n *= len(is.actions)
		}
		p.strategies = p.strategies[:0]
		for idx := 0; idx < n; idx++ {
			choices := make([]int, len(p.infosets))
			rem := idx
			for i := len(p.infosets) - 1; i >= 0; i-- {
				na := len(p.infosets[i].actions)
				choices[i] = rem % na
				rem /= na
			}
			var sb strings.Builder
			for _, c := range choices {
				sb.WriteString(strconv.Itoa(c + 1))
			}
			p.strategies = append(p.strategies, &Strategy{
				player: p, index: idx, label: sb.String(), choices: choices,
			})
		}
	}
}

func (t *Tree) buildStrategic() error {
	playerLabels := make([]string, len(t.players))
	strategyLabels := make([][]string, len(t.players))
	for i, p := range t.players {
		playerLabels[i] = p.label
		for _, s := range p.strategies {
			strategyLabels[i] = append(strategyLabels[i], s.label)
		}
	}
	g := NewStrategic(t.title, playerLabels, strategyLabels)
	g.tree = t

	profile := make([]int, len(t.players))
	var fill func(pl int) error
	fill = func(pl int) error {
		if pl == len(t.players) {
			payoffs := t.purePayoffs(profile)
			for i, v := range payoffs {
				g.SetPayoff(profile, i, v)
			}
			return nil
		}
		for s := 0; s < len(t.players[pl].strategies); s++ {
			profile[pl] = s
			if err := fill(pl + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := fill(0); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	t.strategic = g
	return nil
}

// purePayoffs computes the chance-weighted payoff vector of the pure
// strategy profile, one strategy index per player.
func (t *Tree) purePayoffs(profile []int) []*big.Rat {
	acc := make([]*big.Rat, len(t.players))
	for i := range acc {
		acc[i] = new(big.Rat)
	}
	var walk func(n *Node, weight *big.Rat)
	walk = func(n *Node, weight *big.Rat) {
		if n.outcome != nil {
			for i, v := range n.outcome.payoffs {
				acc[i].Add(acc[i], new(big.Rat).Mul(weight, v))
			}
		}
		if n.IsTerminal() {
			return
		}
		if n.infoset.player.IsChance() {
			for i, a := range n.infoset.actions {
				walk(n.children[i], new(big.Rat).Mul(weight, a.prob))
			}
			return
		}
		p := n.infoset.player
		s := p.strategies[profile[p.index]]
		walk(n.children[s.choices[n.infoset.index]], weight)
	}
	walk(t.root, big.NewRat(1, 1))
	return acc
}
