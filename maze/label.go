package maze

import (
	"fmt"
	"strings"
)

// Label is what is written on a maze node: one of the four dreidel
// symbols, or the start and end markers.
type Label int

const (
	Nun Label = iota
	Gimel
	Hei
	Pei
	Start
	End
)

var labelNames = map[Label]string{
	Nun:   "nun",
	Gimel: "gimel",
	Hei:   "hei",
	Pei:   "pei",
	Start: "start",
	End:   "end",
}

var nameToLabel = map[string]Label{
	"nun":   Nun,
	"gimel": Gimel,
	"hei":   Hei,
	"pei":   Pei,
	"start": Start,
	"end":   End,
}

var glyphs = map[Label]string{
	Nun:   "נ",
	Gimel: "ג",
	Hei:   "ה",
	Pei:   "פ",
}

// Symbols are the faces of the dreidel, in the order they are drawn from.
var Symbols = []Label{Nun, Gimel, Hei, Pei}

func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("label(%d)", int(l))
}

// Title is the display name, e.g. "Hei".
func (l Label) Title() string {
	name := l.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Glyph returns the Hebrew letter for a symbol, or the empty string for
// start and end.
func (l Label) Glyph() string {
	return glyphs[l]
}

// IsSymbol reports whether the label can come up on a spin.
func (l Label) IsSymbol() bool {
	return l >= Nun && l <= Pei
}

// IsWinning reports whether the symbol unlocks an END node.
func (l Label) IsWinning() bool {
	return l == Hei || l == Pei
}

// ParseLabel accepts the lower-case name of a label, case-insensitively.
func ParseLabel(s string) (Label, error) {
	l, ok := nameToLabel[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
	}
	return l, nil
}

// ParseSymbol is ParseLabel restricted to drawable symbols.
func ParseSymbol(s string) (Label, error) {
	l, err := ParseLabel(s)
	if err != nil {
		return 0, err
	}
	if !l.IsSymbol() {
		return 0, fmt.Errorf("%w: %q", ErrNotSymbol, s)
	}
	return l, nil
}

func (l Label) MarshalText() ([]byte, error) {
	if _, ok := labelNames[l]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLabel, int(l))
	}
	return []byte(l.String()), nil
}

func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
