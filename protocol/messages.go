package protocol

import (
	"github.com/minaorangina/dreidel/maze"
)

// InboundMessage is an intent sent by a client to a game session
type InboundMessage struct {
	Command     Cmd      `json:"command"`
	Names       []string `json:"names,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	InputMethod string   `json:"input_method,omitempty"`
	Symbol      string   `json:"symbol,omitempty"`
	NodeID      int      `json:"node_id"`
}

// OutboundMessage is sent by a game session to its clients
type OutboundMessage struct {
	Command Cmd       `json:"command"`
	State   *Snapshot `json:"state,omitempty"`
	Error   string    `json:"error,omitempty"`
}

type Node struct {
	ID         int        `json:"id"`
	Label      maze.Label `json:"label"`
	Glyph      string     `json:"glyph,omitempty"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Neighbours []int      `json:"neighbours"`
}

type Player struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Colour string `json:"colour"`
	NodeID int    `json:"node_id"`
}

// Snapshot is everything a renderer needs to draw a game. It is a copy:
// changing it has no effect on the game.
type Snapshot struct {
	GameID            string      `json:"game_id"`
	Version           uint64      `json:"version"`
	Phase             string      `json:"phase"`
	Step              string      `json:"step,omitempty"`
	Difficulty        string      `json:"difficulty,omitempty"`
	InputMethod       string      `json:"input_method,omitempty"`
	Nodes             []Node      `json:"nodes"`
	Players           []Player    `json:"players"`
	ActivePlayer      int         `json:"active_player"`
	DrawnSymbol       *maze.Label `json:"drawn_symbol,omitempty"`
	LegalDestinations []int       `json:"legal_destinations"`
	IsDrawInProgress  bool        `json:"is_draw_in_progress"`
	Outcome           string      `json:"outcome,omitempty"`
	Winner            *Player     `json:"winner,omitempty"`
	Turn              int         `json:"turn"`
	StatusMessage     string      `json:"status_message"`
}

// ActivePlayerInfo returns the player whose turn it is, if there is one.
func (s Snapshot) ActivePlayerInfo() (Player, bool) {
	if s.ActivePlayer < 0 || s.ActivePlayer >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.ActivePlayer], true
}

// IsLegalDestination reports whether nodeID can be moved to right now.
func (s Snapshot) IsLegalDestination(nodeID int) bool {
	for _, id := range s.LegalDestinations {
		if id == nodeID {
			return true
		}
	}
	return false
}
