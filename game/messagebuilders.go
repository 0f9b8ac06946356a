package game

import (
	"fmt"

	"github.com/minaorangina/dreidel/maze"
	"github.com/minaorangina/dreidel/protocol"
)

const (
	spinningText      = "The dreidel is spinning..."
	settlingText      = "The dreidel is slowing down..."
	turnText          = "%s's turn"
	nearEndTurnText   = "%s's turn - Hei or Pei needed to win!"
	spunText          = "Spun %s (%s). "
	soCloseText       = "So close! Only Hei or Pei can enter the menorah."
	nowhereToMoveText = "Nowhere to move. Try again next turn."
	winAvailableText  = "A winning spin! Enter the menorah!"
	chooseMoveText    = "Choose where to move."
	winnerText        = "%s reached the menorah and wins!"
)

// TurnMessage greets the player about to act, warning them when only a
// winning symbol will do.
func TurnMessage(p Player, m *maze.Maze) string {
	if m != nil && m.AdjacentToEnd(p.NodeID) {
		return fmt.Sprintf(nearEndTurnText, p.Name)
	}
	return fmt.Sprintf(turnText, p.Name)
}

// ResolutionMessage describes what a draw allows
func ResolutionMessage(res Resolution) string {
	msg := fmt.Sprintf(spunText, res.Symbol.Title(), res.Symbol.Glyph())

	switch res.Outcome {
	case NoMoves:
		if res.NearEnd && !res.Symbol.IsWinning() {
			return msg + soCloseText
		}
		return msg + nowhereToMoveText
	case WinAvailable:
		return msg + winAvailableText
	default:
		return msg + chooseMoveText
	}
}

// StatusMessage is derived from the current state every time it is asked
// for; it is never stored.
func (g *Game) StatusMessage() string {
	switch g.phase {
	case Finished:
		if w, ok := g.Winner(); ok {
			return fmt.Sprintf(winnerText, w.Name)
		}
		return ""
	case Playing:
	default:
		return ""
	}

	switch g.step {
	case Drawing:
		return spinningText
	case Settling:
		return settlingText
	case Resolved:
		return ResolutionMessage(*g.resolution)
	}

	p, _ := g.CurrentPlayer()
	return TurnMessage(p, g.maze)
}

// Snapshot builds the read model handed to renderers
func (g *Game) Snapshot() protocol.Snapshot {
	s := protocol.Snapshot{
		Phase:             g.phase.String(),
		Nodes:             []protocol.Node{},
		Players:           []protocol.Player{},
		LegalDestinations: []int{},
		Turn:              g.turn,
		StatusMessage:     g.StatusMessage(),
	}
	if g.phase == Setup {
		return s
	}

	s.Difficulty = g.difficulty.String()
	s.InputMethod = g.input.String()
	s.ActivePlayer = g.currentIdx
	s.IsDrawInProgress = g.IsDrawInProgress()

	if g.phase == Playing {
		s.Step = g.step.String()
	}

	for _, n := range g.maze.Nodes() {
		s.Nodes = append(s.Nodes, buildNode(n))
	}
	for _, p := range g.players {
		s.Players = append(s.Players, buildPlayer(p))
	}

	if symbol, ok := g.DrawnSymbol(); ok {
		s.DrawnSymbol = &symbol
	}
	if res, ok := g.Resolution(); ok {
		s.LegalDestinations = res.Destinations
		s.Outcome = res.Outcome.String()
	}
	if w, ok := g.Winner(); ok {
		winner := buildPlayer(w)
		s.Winner = &winner
	}

	return s
}

func buildNode(n maze.Node) protocol.Node {
	return protocol.Node{
		ID:         n.ID,
		Label:      n.Label,
		Glyph:      n.Label.Glyph(),
		X:          n.X,
		Y:          n.Y,
		Neighbours: n.Neighbours,
	}
}

func buildPlayer(p Player) protocol.Player {
	return protocol.Player{
		ID:     p.ID,
		Name:   p.Name,
		Colour: string(p.Colour),
		NodeID: p.NodeID,
	}
}
