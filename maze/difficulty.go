package maze

import (
	"fmt"
	"strings"
)

// Difficulty selects one of the hand-authored maze layouts.
type Difficulty int

const (
	// Sparse has few nodes and lots of ways forward.
	Sparse Difficulty = iota
	// Medium zig-zags through two hubs.
	Medium
	// Dense is a grid with diagonal shortcuts.
	Dense
)

var difficultyNames = map[Difficulty]string{
	Sparse: "sparse",
	Medium: "medium",
	Dense:  "dense",
}

var nameToDifficulty = map[string]Difficulty{
	"sparse": Sparse,
	"easy":   Sparse,
	"medium": Medium,
	"dense":  Dense,
	"hard":   Dense,
}

// Difficulties lists every tier, easiest first.
var Difficulties = []Difficulty{Sparse, Medium, Dense}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty accepts a tier name ("sparse", "medium", "dense") or one
// of the aliases "easy" and "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	d, ok := nameToDifficulty[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if _, ok := difficultyNames[d]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
