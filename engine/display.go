package engine

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minaorangina/dreidel/maze"
	"github.com/minaorangina/dreidel/protocol"
)

const (
	welcomeText       = "Welcome to the dreidel maze! Race to the menorah.\n"
	setupPromptText   = "Enter 2-4 player names, separated by commas: "
	difficultyText    = "Choose a maze [sparse/medium/dense]: "
	inputMethodText   = "Spin in the app or with a real dreidel? [digital/manual]: "
	drawPromptText    = "Press enter (or s) to spin the dreidel, r to reset, q to quit: "
	symbolPromptText  = "Which symbol did your dreidel land on? [nun/gimel/hei/pei, r, q]: "
	choosePromptText  = "Where to? Enter a node number %v [r, q]: "
	playAgainText     = "Play again? [y/n] "
	retryYesNoText    = "Invalid choice. Please enter \"y\" for \"yes\" or \"n\" for \"no\"\n"
	invalidChoiceText = "That's not something you can do right now.\n"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// BoardText lists every node with its label, its neighbours and whoever is
// standing on it.
func BoardText(s protocol.Snapshot) string {
	if len(s.Nodes) == 0 {
		return ""
	}

	occupants := map[int][]string{}
	for _, p := range s.Players {
		occupants[p.NodeID] = append(occupants[p.NodeID], p.Name)
	}

	nodes := append([]protocol.Node{}, s.Nodes...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	var b strings.Builder
	for _, n := range nodes {
		marker := " "
		if s.IsLegalDestination(n.ID) {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s%3d %-6s", marker, n.ID, nodeName(n.Label))
		fmt.Fprintf(&b, " -> %v", n.Neighbours)
		if names := occupants[n.ID]; len(names) > 0 {
			fmt.Fprintf(&b, "  [%s]", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PlayersText shows who is playing, marking whose turn it is
func PlayersText(s protocol.Snapshot) string {
	var b strings.Builder
	for i, p := range s.Players {
		marker := "  "
		if i == s.ActivePlayer && s.Winner == nil {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s (%s) on %d\n", marker, p.Name, p.Colour, p.NodeID)
	}
	return b.String()
}

func nodeName(l maze.Label) string {
	switch l {
	case maze.Start:
		return "START"
	case maze.End:
		return "END"
	}
	return l.Title() + " " + l.Glyph()
}
