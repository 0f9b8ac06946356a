package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minaorangina/dreidel/game"
	"github.com/minaorangina/dreidel/maze"
	"github.com/minaorangina/dreidel/protocol"
)

var errQuit = errors.New("quit")

type conn struct {
	In  io.Reader
	Out io.Writer
}

// Terminal plays a session from a text console, with everyone sharing the
// same keyboard.
type Terminal struct {
	conn    *conn
	reader  *bufio.Reader
	ctrl    *Controller
	updates chan protocol.Snapshot
}

func NewTerminal(ctrl *Controller, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		conn:    &conn{In: in, Out: out},
		reader:  bufio.NewReader(in),
		ctrl:    ctrl,
		updates: make(chan protocol.Snapshot, 16),
	}
}

// Play runs games until the players stop or the input runs out
func (t *Terminal) Play(ctx context.Context) error {
	unsubscribe := t.ctrl.Subscribe(t.queue)
	defer unsubscribe()

	SendText(t.conn.Out, welcomeText)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s := t.ctrl.Snapshot()
		var err error

		switch {
		case s.Phase == game.Setup.String():
			err = t.setup()

		case s.Phase == game.Finished.String():
			var again bool
			SendText(t.conn.Out, "\n%s\n", s.StatusMessage)
			again, err = t.askYesNo(playAgainText)
			if err == nil && !again {
				return nil
			}
			if err == nil {
				t.report(t.ctrl.ResetToSetup())
			}

		case s.Step == game.Idle.String():
			SendText(t.conn.Out, "\n%s%s\n", PlayersText(s), s.StatusMessage)
			err = t.draw(s)

		case s.Step == game.Resolved.String() && len(s.LegalDestinations) > 0:
			SendText(t.conn.Out, "%s\n%s", s.StatusMessage, BoardText(s))
			err = t.choose(s)

		default:
			SendText(t.conn.Out, "%s\n", s.StatusMessage)
			err = t.wait(ctx, s.Version)
		}

		if errors.Is(err, io.EOF) || errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (t *Terminal) setup() error {
	line, err := t.prompt(setupPromptText)
	if err != nil {
		return err
	}
	names := strings.Split(line, ",")

	line, err = t.prompt(difficultyText)
	if err != nil {
		return err
	}
	difficulty, err := maze.ParseDifficulty(line)
	if err != nil {
		SendText(t.conn.Out, "%s\n", err)
		return nil
	}

	line, err = t.prompt(inputMethodText)
	if err != nil {
		return err
	}
	input, err := game.ParseInputMethod(line)
	if err != nil {
		SendText(t.conn.Out, "%s\n", err)
		return nil
	}

	if err := t.ctrl.StartGame(names, difficulty, input); err != nil {
		SendText(t.conn.Out, "%s\n", err)
	}
	return nil
}

func (t *Terminal) draw(s protocol.Snapshot) error {
	if s.InputMethod == game.Digital.String() {
		line, err := t.prompt(drawPromptText)
		if handled, err := t.command(line, err); handled {
			return err
		}
		t.report(t.ctrl.RequestDigitalDraw())
		return nil
	}

	line, err := t.prompt(symbolPromptText)
	if handled, err := t.command(line, err); handled {
		return err
	}
	symbol, err := maze.ParseSymbol(line)
	if err != nil {
		SendText(t.conn.Out, "%s\n", err)
		return nil
	}
	t.report(t.ctrl.SubmitManualSymbol(symbol))
	return nil
}

func (t *Terminal) choose(s protocol.Snapshot) error {
	line, err := t.prompt(fmt.Sprintf(choosePromptText, s.LegalDestinations))
	if handled, err := t.command(line, err); handled {
		return err
	}
	id, err := strconv.Atoi(line)
	if err != nil {
		SendText(t.conn.Out, invalidChoiceText)
		return nil
	}
	t.report(t.ctrl.ChooseDestination(id))
	return nil
}

// queue keeps the newest snapshots, dropping the oldest when full
func (t *Terminal) queue(s protocol.Snapshot) {
	for {
		select {
		case t.updates <- s:
			return
		default:
		}

		select {
		case <-t.updates:
		default:
		}
	}
}

// wait blocks until the session moves past version on its own. Snapshots
// from changes the terminal has already shown are skipped.
func (t *Terminal) wait(ctx context.Context, version uint64) error {
	for {
		select {
		case s := <-t.updates:
			if s.Version > version {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// command handles the keys that work at any prompt during play: r goes back
// to setup and q quits.
func (t *Terminal) command(line string, err error) (bool, error) {
	if err != nil {
		return true, err
	}
	switch strings.ToLower(line) {
	case "q":
		return true, errQuit
	case "r":
		t.report(t.ctrl.ResetToSetup())
		return true, nil
	}
	return false, nil
}

func (t *Terminal) askYesNo(question string) (bool, error) {
	for {
		answer, err := t.prompt(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		SendText(t.conn.Out, retryYesNoText)
	}
}

func (t *Terminal) prompt(text string) (string, error) {
	SendText(t.conn.Out, text)
	line, err := t.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) report(err error) {
	if err != nil {
		SendText(t.conn.Out, invalidChoiceText)
	}
}
