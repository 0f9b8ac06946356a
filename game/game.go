package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/minaorangina/dreidel/maze"
)

var (
	ErrTooFewPlayers      = errors.New("minimum of 2 players required")
	ErrTooManyPlayers     = errors.New("maximum of 4 players allowed")
	ErrUnknownInputMethod = errors.New("unknown input method")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrGameNotPlaying     = errors.New("game is not in progress")
	ErrGameOver           = errors.New("game is already over")
	ErrWrongInputMethod   = errors.New("not allowed with this input method")
	ErrDrawInProgress     = errors.New("the dreidel is already spinning")
	ErrNoDrawInProgress   = errors.New("the dreidel is not spinning")
	ErrAlreadyResolved    = errors.New("a symbol has already been drawn this turn")
	ErrNotResolved        = errors.New("no symbol has been drawn this turn")
	ErrMovesPending       = errors.New("player must choose a destination")
	ErrNotDrawable        = errors.New("symbol cannot be drawn")
	ErrInvalidMove        = errors.New("invalid move")
)

const (
	minPlayers = 2
	maxPlayers = 4
)

// MazeFactory builds the board for a new game
type MazeFactory func(maze.Difficulty, maze.RNG) (*maze.Maze, error)

// Game is the turn state machine. It is not safe for concurrent use: one
// owner drives it and every transition either succeeds completely or
// returns an error and changes nothing.
type Game struct {
	rng     maze.RNG
	newMaze MazeFactory

	phase      Phase
	step       Step
	difficulty maze.Difficulty
	input      InputMethod
	maze       *maze.Maze
	players    []Player
	currentIdx int
	drawn      maze.Label
	resolution *Resolution
	winnerIdx  int
	turn       int
}

type GameOpts struct {
	// RNG draws maze symbols and digital spins. Defaults to a time-seeded
	// source.
	RNG maze.RNG
	// MazeFactory defaults to maze.Generate.
	MazeFactory MazeFactory
}

// NewGame constructs a game waiting in Setup
func NewGame(opts GameOpts) *Game {
	g := &Game{
		rng:       opts.RNG,
		newMaze:   opts.MazeFactory,
		winnerIdx: -1,
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.newMaze == nil {
		g.newMaze = maze.Generate
	}
	return g
}

// Start sets the players on the START node of a freshly generated maze.
func (g *Game) Start(names []string, difficulty maze.Difficulty, input InputMethod) error {
	if g.phase != Setup {
		return ErrGameAlreadyStarted
	}
	if len(names) < minPlayers {
		return ErrTooFewPlayers
	}
	if len(names) > maxPlayers {
		return ErrTooManyPlayers
	}
	if _, ok := inputMethodNames[input]; !ok {
		return ErrUnknownInputMethod
	}

	m, err := g.newMaze(difficulty, g.rng)
	if err != nil {
		return err
	}

	g.maze = m
	g.difficulty = difficulty
	g.input = input
	g.players = newPlayers(names, m.Start())
	g.currentIdx = 0
	g.turn = 0
	g.winnerIdx = -1
	g.clearDraw()
	g.phase = Playing

	return nil
}

// RequestDraw spins the dreidel. The symbol is chosen now but stays hidden
// until Settle.
func (g *Game) RequestDraw() (maze.Label, error) {
	if err := g.checkPlaying(); err != nil {
		return 0, err
	}
	if g.input != Digital {
		return 0, ErrWrongInputMethod
	}

	switch g.step {
	case Drawing, Settling:
		return 0, ErrDrawInProgress
	case Resolved:
		if len(g.resolution.Destinations) > 0 {
			return 0, ErrMovesPending
		}
		return 0, ErrAlreadyResolved
	}

	g.drawn = maze.RandomSymbol(g.rng)
	g.step = Drawing
	return g.drawn, nil
}

// Settle stops the spin and shows the drawn symbol
func (g *Game) Settle() error {
	if err := g.checkPlaying(); err != nil {
		return err
	}
	if g.step != Drawing {
		return ErrNoDrawInProgress
	}

	g.step = Settling
	return nil
}

// ResolveDraw works out the moves for the spun symbol
func (g *Game) ResolveDraw() (Resolution, error) {
	if err := g.checkPlaying(); err != nil {
		return Resolution{}, err
	}
	if g.step != Drawing && g.step != Settling {
		return Resolution{}, ErrNoDrawInProgress
	}

	return g.resolve(g.drawn), nil
}

// SubmitSymbol takes a symbol spun on a real dreidel
func (g *Game) SubmitSymbol(symbol maze.Label) (Resolution, error) {
	if err := g.checkPlaying(); err != nil {
		return Resolution{}, err
	}
	if g.input != Manual {
		return Resolution{}, ErrWrongInputMethod
	}
	if !symbol.IsSymbol() {
		return Resolution{}, ErrNotDrawable
	}
	if g.step != Idle {
		return Resolution{}, ErrAlreadyResolved
	}

	g.drawn = symbol
	return g.resolve(symbol), nil
}

func (g *Game) resolve(symbol maze.Label) Resolution {
	current := g.players[g.currentIdx]
	res := ResolveMoves(symbol, current.NodeID, g.maze)
	g.resolution = &res
	g.step = Resolved
	return res
}

// Advance passes the turn on when the draw left the player with nowhere to
// go. It costs the player exactly one turn.
func (g *Game) Advance() error {
	if err := g.checkPlaying(); err != nil {
		return err
	}
	if g.step != Resolved {
		return ErrNotResolved
	}
	if len(g.resolution.Destinations) > 0 {
		return ErrMovesPending
	}

	g.endTurn()
	return nil
}

// ChooseMove moves the active player to one of the legal destinations.
// Reaching an END node wins the game.
func (g *Game) ChooseMove(nodeID int) error {
	if err := g.checkPlaying(); err != nil {
		return err
	}
	if g.step != Resolved || !g.resolution.HasDestination(nodeID) {
		return ErrInvalidMove
	}

	target, ok := g.maze.Node(nodeID)
	if !ok {
		return ErrInvalidMove
	}

	g.players[g.currentIdx].NodeID = nodeID

	if target.Label == maze.End {
		g.winnerIdx = g.currentIdx
		g.phase = Finished
		g.clearDraw()
		return nil
	}

	g.endTurn()
	return nil
}

// Reset throws everything away and goes back to Setup
func (g *Game) Reset() {
	g.phase = Setup
	g.maze = nil
	g.players = nil
	g.currentIdx = 0
	g.winnerIdx = -1
	g.turn = 0
	g.clearDraw()
}

func (g *Game) endTurn() {
	g.clearDraw()
	g.currentIdx = (g.currentIdx + 1) % len(g.players)
	g.turn++
}

func (g *Game) clearDraw() {
	g.step = Idle
	g.drawn = 0
	g.resolution = nil
}

func (g *Game) checkPlaying() error {
	switch g.phase {
	case Playing:
		return nil
	case Finished:
		return ErrGameOver
	default:
		return ErrGameNotPlaying
	}
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) Step() Step {
	return g.step
}

// Turn counts the turns completed since Start
func (g *Game) Turn() int {
	return g.turn
}

func (g *Game) InputMethod() InputMethod {
	return g.input
}

func (g *Game) Difficulty() maze.Difficulty {
	return g.difficulty
}

// Maze is nil outside of a game. Mazes are immutable, so it is safe to keep.
func (g *Game) Maze() *maze.Maze {
	return g.maze
}

// Players returns a copy of the players in turn order
func (g *Game) Players() []Player {
	return append([]Player(nil), g.players...)
}

// CurrentPlayer is the player whose turn it is
func (g *Game) CurrentPlayer() (Player, bool) {
	if g.phase != Playing || len(g.players) == 0 {
		return Player{}, false
	}
	return g.players[g.currentIdx], true
}

// CurrentTurnIdx is the index of the active player
func (g *Game) CurrentTurnIdx() int {
	return g.currentIdx
}

func (g *Game) Winner() (Player, bool) {
	if g.phase != Finished || g.winnerIdx < 0 {
		return Player{}, false
	}
	return g.players[g.winnerIdx], true
}

// DrawnSymbol is the symbol showing on the dreidel, once it has stopped
func (g *Game) DrawnSymbol() (maze.Label, bool) {
	if g.phase != Playing || (g.step != Settling && g.step != Resolved) {
		return 0, false
	}
	return g.drawn, true
}

// Resolution is the result of this turn's draw, if there has been one
func (g *Game) Resolution() (Resolution, bool) {
	if g.resolution == nil {
		return Resolution{}, false
	}
	res := *g.resolution
	res.Destinations = append([]int{}, res.Destinations...)
	return res, true
}

// IsDrawInProgress is true while the dreidel spins
func (g *Game) IsDrawInProgress() bool {
	return g.phase == Playing && g.step == Drawing
}
