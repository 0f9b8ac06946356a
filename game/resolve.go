package game

import (
	"github.com/minaorangina/dreidel/maze"
)

// Resolution is the result of checking a drawn symbol against the
// neighbours of a node.
type Resolution struct {
	Symbol       maze.Label
	Destinations []int
	Outcome      Outcome
	// NearEnd is set when the node has an END neighbour, whether or not
	// the symbol was good enough to reach it.
	NearEnd bool
}

// HasDestination reports whether nodeID is a legal destination.
func (r Resolution) HasDestination(nodeID int) bool {
	for _, id := range r.Destinations {
		if id == nodeID {
			return true
		}
	}
	return false
}

// ResolveMoves works out where a player standing on nodeID may go with the
// given symbol. A neighbour is a legal destination if its label matches the
// symbol, or if it is an END node and the symbol is a winning one.
//
// It never fails: an unknown node, or a label that is not a drawable
// symbol, just has no moves.
func ResolveMoves(symbol maze.Label, nodeID int, m *maze.Maze) Resolution {
	res := Resolution{
		Symbol:       symbol,
		Destinations: []int{},
		Outcome:      NoMoves,
	}
	if m == nil {
		return res
	}

	res.NearEnd = m.AdjacentToEnd(nodeID)
	if !symbol.IsSymbol() {
		return res
	}

	reachesEnd := false
	// neighbours are sorted, so destinations are too
	for _, id := range m.Neighbours(nodeID) {
		neighbour, ok := m.Node(id)
		if !ok {
			continue
		}

		switch {
		case neighbour.Label == maze.End && symbol.IsWinning():
			reachesEnd = true
			res.Destinations = append(res.Destinations, id)
		case neighbour.Label == symbol:
			res.Destinations = append(res.Destinations, id)
		}
	}

	switch {
	case len(res.Destinations) == 0:
		res.Outcome = NoMoves
	case reachesEnd:
		res.Outcome = WinAvailable
	default:
		res.Outcome = AwaitingChoice
	}

	return res
}
