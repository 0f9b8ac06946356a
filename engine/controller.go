package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minaorangina/dreidel/game"
	"github.com/minaorangina/dreidel/maze"
	"github.com/minaorangina/dreidel/protocol"
	"github.com/sirupsen/logrus"
)

var (
	// ErrIntentIgnored wraps every intent that was not valid in the state it
	// arrived in. The game is left untouched.
	ErrIntentIgnored = errors.New("intent ignored")
	ErrClosed        = errors.New("session closed")
)

type ControllerOpts struct {
	GameID  string
	Game    *game.Game
	Clock   Clock
	Timings Timings
	Logger  *logrus.Entry
}

// Controller drives one game session. It turns player intents into game
// transitions, paces the automatic steps of a turn with timers, and tells
// its observers about every change.
type Controller struct {
	id      string
	game    *game.Game
	clock   Clock
	timings Timings
	log     *logrus.Entry

	mu sync.Mutex
	// generation changes on start, reset and close. A timer scheduled under
	// an older generation does nothing when it fires.
	generation uint64
	version    uint64
	timers     map[uint64]Timer
	nextTimer  uint64
	observers  map[uint64]func(protocol.Snapshot)
	nextObs    uint64
	closed     bool
}

func NewController(opts ControllerOpts) *Controller {
	g := opts.Game
	if g == nil {
		g = game.NewGame(game.GameOpts{})
	}
	clock := opts.Clock
	if clock == nil {
		clock = RealClock()
	}
	timings := opts.Timings
	if timings == (Timings{}) {
		timings = DefaultTimings()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Controller{
		id:        opts.GameID,
		game:      g,
		clock:     clock,
		timings:   timings,
		log:       log.WithField("game_id", opts.GameID),
		timers:    map[uint64]Timer{},
		observers: map[uint64]func(protocol.Snapshot){},
	}
}

func (c *Controller) ID() string {
	return c.id
}

// Snapshot returns the current read model
func (c *Controller) Snapshot() protocol.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned func removes it again.
func (c *Controller) Subscribe(fn func(protocol.Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// StartGame leaves setup with a fresh maze and the players on START
func (c *Controller) StartGame(names []string, difficulty maze.Difficulty, input game.InputMethod) error {
	return c.apply(protocol.StartGame, func() error {
		if err := c.game.Start(names, difficulty, input); err != nil {
			return err
		}
		c.restart()
		c.log.WithFields(logrus.Fields{
			"players":      len(names),
			"difficulty":   difficulty,
			"input_method": input,
		}).Info("game started")
		return nil
	})
}

// RequestDigitalDraw spins the dreidel. The symbol is shown once the spin
// delay has passed, and the moves it allows once the settle delay has too.
func (c *Controller) RequestDigitalDraw() error {
	return c.apply(protocol.RequestDraw, func() error {
		symbol, err := c.game.RequestDraw()
		if err != nil {
			return err
		}
		c.log.WithField("symbol", symbol).Debug("dreidel spinning")
		c.schedule(c.timings.Spin, c.settle)
		return nil
	})
}

// SubmitManualSymbol resolves the symbol shown by a physical dreidel
func (c *Controller) SubmitManualSymbol(symbol maze.Label) error {
	return c.apply(protocol.SubmitSymbol, func() error {
		res, err := c.game.SubmitSymbol(symbol)
		if err != nil {
			return err
		}
		c.afterResolution(res, c.timings.NoMoveManual)
		return nil
	})
}

// ChooseDestination moves the current player to one of the legal
// destinations.
func (c *Controller) ChooseDestination(nodeID int) error {
	return c.apply(protocol.ChooseDestination, func() error {
		p, _ := c.game.CurrentPlayer()
		if err := c.game.ChooseMove(nodeID); err != nil {
			return err
		}

		entry := c.log.WithFields(logrus.Fields{"player": p.Name, "node_id": nodeID})
		if w, ok := c.game.Winner(); ok {
			entry.WithField("turn", c.game.Turn()).Infof("%s wins", w.Name)
		} else {
			entry.Debug("player moved")
		}
		return nil
	})
}

// ResetToSetup abandons the current game. It is accepted in every state.
func (c *Controller) ResetToSetup() error {
	return c.apply(protocol.Reset, func() error {
		c.game.Reset()
		c.restart()
		c.log.Info("game reset")
		return nil
	})
}

// Receive dispatches an intent sent over the wire
func (c *Controller) Receive(msg protocol.InboundMessage) error {
	switch msg.Command {
	case protocol.StartGame:
		difficulty, err := maze.ParseDifficulty(msg.Difficulty)
		if err != nil {
			return c.ignore(msg.Command, err)
		}
		input, err := game.ParseInputMethod(msg.InputMethod)
		if err != nil {
			return c.ignore(msg.Command, err)
		}
		return c.StartGame(msg.Names, difficulty, input)

	case protocol.RequestDraw:
		return c.RequestDigitalDraw()

	case protocol.SubmitSymbol:
		symbol, err := maze.ParseSymbol(msg.Symbol)
		if err != nil {
			return c.ignore(msg.Command, err)
		}
		return c.SubmitManualSymbol(symbol)

	case protocol.ChooseDestination:
		return c.ChooseDestination(msg.NodeID)

	case protocol.Reset:
		return c.ResetToSetup()
	}

	return c.ignore(msg.Command, fmt.Errorf("unexpected command %s", msg.Command))
}

// Close stops every pending timer and drops all observers
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.restart()
	c.observers = map[uint64]func(protocol.Snapshot){}
	c.log.Debug("session closed")
}

// apply runs an intent under the lock and notifies observers if it
// changed anything.
func (c *Controller) apply(cmd protocol.Cmd, fn func() error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return c.ignore(cmd, ErrClosed)
	}
	if err := fn(); err != nil {
		c.mu.Unlock()
		return c.ignore(cmd, err)
	}
	snapshot, observers := c.changed()
	c.mu.Unlock()

	notify(snapshot, observers)
	return nil
}

func (c *Controller) ignore(cmd protocol.Cmd, err error) error {
	c.log.WithError(err).WithField("command", cmd).Debug("intent ignored")
	return fmt.Errorf("%w: %s: %w", ErrIntentIgnored, cmd, err)
}

func (c *Controller) settle() {
	if err := c.game.Settle(); err != nil {
		c.log.WithError(err).Warn("could not settle draw")
		return
	}
	c.schedule(c.timings.Settle, c.resolve)
}

func (c *Controller) resolve() {
	res, err := c.game.ResolveDraw()
	if err != nil {
		c.log.WithError(err).Warn("could not resolve draw")
		return
	}
	c.afterResolution(res, c.timings.NoMoveDigital)
}

func (c *Controller) afterResolution(res game.Resolution, noMoveDelay time.Duration) {
	c.log.WithFields(logrus.Fields{
		"symbol":       res.Symbol,
		"outcome":      res.Outcome,
		"destinations": res.Destinations,
	}).Debug("draw resolved")

	if res.Outcome == game.NoMoves {
		c.schedule(noMoveDelay, c.advance)
	}
}

func (c *Controller) advance() {
	if err := c.game.Advance(); err != nil {
		c.log.WithError(err).Warn("could not advance turn")
	}
}

// schedule runs fn after d unless the session has moved on by then. Must be
// called with the lock held.
func (c *Controller) schedule(d time.Duration, fn func()) {
	generation, turn := c.generation, c.game.Turn()
	id := c.nextTimer
	c.nextTimer++

	c.timers[id] = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		delete(c.timers, id)
		if generation != c.generation || c.game.Phase() != game.Playing || c.game.Turn() != turn {
			c.mu.Unlock()
			c.log.WithField("turn", turn).Debug("stale timer ignored")
			return
		}
		fn()
		snapshot, observers := c.changed()
		c.mu.Unlock()

		notify(snapshot, observers)
	})
}

// restart invalidates every pending timer. Must be called with the lock
// held.
func (c *Controller) restart() {
	c.generation++
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}

// changed bumps the version and collects what observers need. Must be
// called with the lock held.
func (c *Controller) changed() (protocol.Snapshot, []func(protocol.Snapshot)) {
	c.version++
	observers := make([]func(protocol.Snapshot), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	return c.snapshot(), observers
}

func (c *Controller) snapshot() protocol.Snapshot {
	s := c.game.Snapshot()
	s.GameID = c.id
	s.Version = c.version
	return s
}

func notify(s protocol.Snapshot, observers []func(protocol.Snapshot)) {
	for _, fn := range observers {
		fn(s)
	}
}

// pendingTimers is the number of scheduled steps that have not fired
func (c *Controller) pendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
