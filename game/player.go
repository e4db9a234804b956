package game

import "fmt"

// Player is a participant in a game. In strategic form a player owns a
// list of strategies; in extensive form it additionally owns the
// information sets at which it moves. The chance player has index -1
// and no strategies.
type Player struct {
	index      int
	label      string
	strategies []*Strategy
	infosets   []*Infoset
}

func (p *Player) Index() int    { return p.index }
func (p *Player) Label() string { return p.label }

// IsChance reports whether this is the chance player of a game tree.
func (p *Player) IsChance() bool { return p.index < 0 }

// Strategies returns the player's strategies in index order. Indices
// are assigned at construction and stable for the lifetime of the
// game; profiles use them as array positions.
func (p *Player) Strategies() []*Strategy { return p.strategies }

func (p *Player) NumStrategies() int { return len(p.strategies) }

// Infosets returns the player's information sets in order of
// appearance. Empty for players of a native strategic-form game.
func (p *Player) Infosets() []*Infoset { return p.infosets }

func (p *Player) String() string {
	if p.label != "" {
		return p.label
	}
	return fmt.Sprintf("player %d", p.index+1)
}

// Strategy is one pure strategy of a player. For strategies derived
// from a game tree, choices records the chosen action index at each of
// the player's information sets.
type Strategy struct {
	player  *Player
	index   int
	label   string
	choices []int
}

func (s *Strategy) Player() *Player { return s.player }
func (s *Strategy) Index() int      { return s.index }
func (s *Strategy) Label() string   { return s.label }

// Choice returns the action index this strategy selects at the
// player's i-th information set. Only meaningful for tree-derived
// strategies.
func (s *Strategy) Choice(i int) int { return s.choices[i] }
