package engine

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minaorangina/dreidel/game"
	utils "github.com/minaorangina/dreidel/internal"
	"github.com/minaorangina/dreidel/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer can be read while a terminal is still writing to it
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) count(text string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), text)
}

func TestTerminalManualGame(t *testing.T) {
	t.Log("Given two players sharing a keyboard with a real dreidel")
	input := strings.Join([]string{
		"Ada, Grace",
		"sparse",
		"manual",
		"nun",     // Ada
		"7",       // not allowed
		"5",       // Ada moves
		"dreidel", // not a symbol
		"gimel",   // Grace
		"7",
		"hei", // Ada, next to END
		"9",
		"maybe",
		"n",
	}, "\n") + "\n"

	out := &bytes.Buffer{}
	c := newTestController(t, newFakeClock())
	term := NewTerminal(c, strings.NewReader(input), out)

	t.Log("When they play to the end")
	utils.AssertNoError(t, term.Play(context.Background()))

	t.Log("Then Ada wins")
	s := c.Snapshot()
	assert.Equal(t, "finished", s.Phase)
	assert.Equal(t, "Ada", s.Winner.Name)

	text := out.String()
	assert.Contains(t, text, welcomeText)
	assert.Contains(t, text, "Ada's turn - Hei or Pei needed to win!")
	assert.Contains(t, text, "Spun Hei (ה). A winning spin! Enter the menorah!")
	assert.Contains(t, text, invalidChoiceText)
	assert.Contains(t, text, "Ada reached the menorah and wins!")
	assert.Contains(t, text, retryYesNoText)
}

func TestTerminalRunsOutOfInput(t *testing.T) {
	out := &bytes.Buffer{}
	c := newTestController(t, newFakeClock())
	term := NewTerminal(c, strings.NewReader("Ada,Grace\nhard\n"), out)

	utils.AssertNoError(t, term.Play(context.Background()))
	assert.Equal(t, "setup", c.Snapshot().Phase)
}

func TestTerminalStopsWhenCancelled(t *testing.T) {
	c := newTestController(t, newFakeClock())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTerminal(c, strings.NewReader(""), &bytes.Buffer{}).Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminalCommands(t *testing.T) {
	t.Run("r goes back to setup", func(t *testing.T) {
		out := &bytes.Buffer{}
		c := newTestController(t, newFakeClock())
		input := "Ada,Grace\nmedium\nmanual\nnun\nr\nAda,Grace,Hedy\ndense\nmanual\nq\n"

		utils.AssertNoError(t, NewTerminal(c, strings.NewReader(input), out).Play(context.Background()))

		s := c.Snapshot()
		assert.Equal(t, "playing", s.Phase)
		assert.Len(t, s.Players, 3)
		assert.Equal(t, 0, s.Turn)
	})

	t.Run("q quits mid-turn", func(t *testing.T) {
		c := newTestController(t, newFakeClock())
		input := "Ada,Grace\nsparse\ndigital\nq\n"

		utils.AssertNoError(t, NewTerminal(c, strings.NewReader(input), &bytes.Buffer{}).Play(context.Background()))
		assert.Equal(t, "idle", c.Snapshot().Step)
	})

	t.Run("playing again goes back to setup", func(t *testing.T) {
		out := &bytes.Buffer{}
		c := newTestController(t, newFakeClock())
		input := "Ada,Grace\nsparse\nmanual\nnun\n5\ngimel\n7\nhei\n9\ny\n"

		utils.AssertNoError(t, NewTerminal(c, strings.NewReader(input), out).Play(context.Background()))

		assert.Equal(t, "setup", c.Snapshot().Phase)
		assert.Contains(t, out.String(), "Ada reached the menorah and wins!")
		assert.NotContains(t, out.String(), invalidChoiceText)
	})
}

func TestTerminalDigitalGame(t *testing.T) {
	t.Log("Given two players spinning in the app, where every spin lands on Hei")
	clock := newFakeClock()
	c := newTestController(t, clock, maze.Hei)
	out := &lockedBuffer{}
	input := "Ada,Grace\nsparse\ndigital\n\ns\nq\n"

	done := make(chan error, 1)
	go func() {
		done <- NewTerminal(c, strings.NewReader(input), out).Play(context.Background())
	}()

	const (
		spinning = "The dreidel is spinning..."
		settling = "The dreidel is slowing down..."
		noMoves  = "Spun Hei (ה). Nowhere to move. Try again next turn."
	)
	shown := func(text string, times int) {
		t.Helper()
		require.Eventually(t, func() bool { return out.count(text) >= times }, time.Second, time.Millisecond, text)
	}

	t.Log("When each of them spins and has nowhere to go")
	timings := DefaultTimings()
	for spin := 1; spin <= 2; spin++ {
		shown(spinning, spin)
		clock.Advance(timings.Spin)
		shown(settling, spin)
		clock.Advance(timings.Settle)
		shown(noMoves, spin)
		clock.Advance(timings.NoMoveDigital)
	}

	utils.Within(t, controllerTestTimeout, func() {
		utils.AssertNoError(t, <-done)
	})

	t.Log("Then every change is shown once and the turn passes on by itself")
	assert.Equal(t, 2, out.count(spinning))
	assert.Equal(t, 2, out.count(settling))
	assert.Equal(t, 2, out.count(noMoves))
	assert.Equal(t, 2, out.count("Ada's turn"))
	assert.Equal(t, 1, out.count("Grace's turn"))
	assert.Equal(t, 2, c.Snapshot().Turn)
}

func TestTerminalWaitSkipsShownChanges(t *testing.T) {
	c := startedController(t, newFakeClock(), game.Manual)
	term := NewTerminal(c, strings.NewReader(""), &bytes.Buffer{})
	unsubscribe := c.Subscribe(term.queue)
	defer unsubscribe()

	t.Log("Given more changes than the terminal queues")
	for i := 0; i < cap(term.updates); i++ {
		utils.AssertNoError(t, c.ResetToSetup())
		utils.AssertNoError(t, c.StartGame([]string{"Ada", "Grace"}, maze.Sparse, game.Manual))
	}
	latest := c.Snapshot().Version

	t.Log("Then the latest change is still queued")
	ctx, cancel := context.WithTimeout(context.Background(), controllerTestTimeout)
	defer cancel()
	utils.AssertNoError(t, term.wait(ctx, latest-1))

	t.Log("And changes already shown do not end the wait")
	shortCtx, shortCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer shortCancel()
	assert.ErrorIs(t, term.wait(shortCtx, latest), context.DeadlineExceeded)

	t.Log("And a new change does")
	utils.AssertNoError(t, c.ResetToSetup())
	utils.AssertNoError(t, term.wait(ctx, latest))
}
