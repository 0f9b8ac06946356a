package protocol

import "fmt"

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	// intents, from a client to a session
	StartGame
	RequestDraw
	SubmitSymbol
	ChooseDestination
	Reset
	// from a session to its clients
	State
	Error
)

var CmdNames = map[Cmd]string{
	Null:              "Null",
	StartGame:         "StartGame",
	RequestDraw:       "RequestDraw",
	SubmitSymbol:      "SubmitSymbol",
	ChooseDestination: "ChooseDestination",
	Reset:             "Reset",
	State:             "State",
	Error:             "Error",
}

var NameToCmd = map[string]Cmd{
	"Null":              Null,
	"StartGame":         StartGame,
	"RequestDraw":       RequestDraw,
	"SubmitSymbol":      SubmitSymbol,
	"ChooseDestination": ChooseDestination,
	"Reset":             Reset,
	"State":             State,
	"Error":             Error,
}

func (c Cmd) String() string {
	if name, ok := CmdNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cmd(%d)", int(c))
}

func (c Cmd) MarshalText() ([]byte, error) {
	if _, ok := CmdNames[c]; !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Cmd) UnmarshalText(text []byte) error {
	cmd, ok := NameToCmd[string(text)]
	if !ok {
		return fmt.Errorf("unknown command %q", string(text))
	}
	*c = cmd
	return nil
}
