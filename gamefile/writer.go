package gamefile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/equilib/equilib/game"
)

// WriteEFG writes the tree in the extensive-form text format that
// ReadEFG accepts, nodes in preorder. Outcome definitions appear at
// their first use, as the reader expects.
func WriteEFG(w io.Writer, t *game.Tree) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "EFG 2 R %q {", t.Title())
	for _, p := range t.Players() {
		fmt.Fprintf(bw, " %q", p.Label())
	}
	fmt.Fprintf(bw, " }\n%q\n\n", t.Comment())

	seenOutcome := make(map[*game.Outcome]bool)
	writeOutcome := func(n *game.Node) {
		o := n.Outcome()
		if o == nil {
			fmt.Fprint(bw, " 0\n")
			return
		}
		fmt.Fprintf(bw, " %d", o.Index()+1)
		if !seenOutcome[o] {
			seenOutcome[o] = true
			fmt.Fprintf(bw, " %q {", o.Label())
			for i, v := range o.Payoffs() {
				if i > 0 {
					fmt.Fprint(bw, ",")
				}
				fmt.Fprintf(bw, " %s", v.RatString())
			}
			fmt.Fprint(bw, " }")
		}
		fmt.Fprint(bw, "\n")
	}
	var walk func(n *game.Node)
	walk = func(n *game.Node) {
		is := n.Infoset()
		switch {
		case n.IsTerminal():
			fmt.Fprintf(bw, "t %q", n.Label())
		case is.Player().IsChance():
			fmt.Fprintf(bw, "c %q %d %q {", n.Label(), is.Index()+1, is.Label())
			for _, a := range is.Actions() {
				fmt.Fprintf(bw, " %q %s", a.Label(), a.Prob().RatString())
			}
			fmt.Fprint(bw, " }")
		default:
			fmt.Fprintf(bw, "p %q %d %d %q {",
				n.Label(), is.Player().Index()+1, is.Index()+1, is.Label())
			for _, a := range is.Actions() {
				fmt.Fprintf(bw, " %q", a.Label())
			}
			fmt.Fprint(bw, " }")
		}
		writeOutcome(n)
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(t.Root())
	return bw.Flush()
}

// WriteNFG writes the strategic form in the text format that ReadNFG
// accepts, using the flat payoff list.
func WriteNFG(w io.Writer, g *game.Strategic) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NFG 1 R %q {", g.Title())
	for _, p := range g.Players() {
		fmt.Fprintf(bw, " %q", p.Label())
	}
	fmt.Fprint(bw, " }\n\n{")
	for _, p := range g.Players() {
		fmt.Fprint(bw, " {")
		for _, s := range p.Strategies() {
			fmt.Fprintf(bw, " %q", s.Label())
		}
		fmt.Fprint(bw, " }")
	}
	fmt.Fprint(bw, " }\n\n")
	first := true
	for flat := 0; flat < g.NumProfiles(); flat++ {
		profile := g.ProfileAt(flat)
		for pl := 0; pl < g.NumPlayers(); pl++ {
			if !first {
				fmt.Fprint(bw, " ")
			}
			first = false
			fmt.Fprint(bw, g.Payoff(profile, pl).RatString())
		}
	}
	fmt.Fprint(bw, "\n")
	return bw.Flush()
}
