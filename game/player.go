package game

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 10

// Colour is an opaque token renderers map to a player's colour
type Colour string

const (
	Blue   Colour = "blue"
	Red    Colour = "red"
	Green  Colour = "green"
	Yellow Colour = "yellow"
)

var playerColours = []Colour{Blue, Red, Green, Yellow}

// Player is a player and where they are on the board
type Player struct {
	ID     int
	Name   string
	Colour Colour
	NodeID int
}

// newPlayers places everyone on the start node, in turn order
func newPlayers(names []string, start int) []Player {
	ps := make([]Player, 0, len(names))
	for i, name := range names {
		ps = append(ps, Player{
			ID:     i,
			Name:   playerName(i, name),
			Colour: playerColours[i%len(playerColours)],
			NodeID: start,
		})
	}
	return ps
}

// playerName trims and shortens a name, falling back to "Player N"
func playerName(idx int, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("Player %d", idx+1)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:maxNameLength]))
	}
	return name
}
