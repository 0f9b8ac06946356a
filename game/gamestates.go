package game

import (
	"fmt"
	"strings"
)

// Phase is the lifecycle of a game
type Phase int

const (
	Setup Phase = iota
	Playing
	Finished
)

var phaseNames = map[Phase]string{
	Setup:    "setup",
	Playing:  "playing",
	Finished: "finished",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Step is where the active player is within their turn. It is only
// meaningful while the game is Playing.
type Step int

const (
	// Idle: nothing drawn yet this turn
	Idle Step = iota
	// Drawing: the dreidel is spinning, symbol hidden
	Drawing
	// Settling: the dreidel has stopped and shows its symbol
	Settling
	// Resolved: legal destinations are known
	Resolved
)

var stepNames = map[Step]string{
	Idle:     "idle",
	Drawing:  "drawing",
	Settling: "settling",
	Resolved: "resolved",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// InputMethod is how symbols enter the game: spun by the game itself, or
// spun on a real dreidel and typed in.
type InputMethod int

const (
	Digital InputMethod = iota
	Manual
)

var inputMethodNames = map[InputMethod]string{
	Digital: "digital",
	Manual:  "manual",
}

var nameToInputMethod = map[string]InputMethod{
	"digital":  Digital,
	"manual":   Manual,
	"physical": Manual,
}

func (m InputMethod) String() string {
	if name, ok := inputMethodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("input(%d)", int(m))
}

// ParseInputMethod accepts "digital", "manual" or its alias "physical".
func ParseInputMethod(s string) (InputMethod, error) {
	m, ok := nameToInputMethod[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownInputMethod, s)
	}
	return m, nil
}

// Outcome classifies a resolved draw
type Outcome int

const (
	NoMoves Outcome = iota
	AwaitingChoice
	WinAvailable
)

var outcomeNames = map[Outcome]string{
	NoMoves:        "no_moves",
	AwaitingChoice: "awaiting_choice",
	WinAvailable:   "win_available",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}
