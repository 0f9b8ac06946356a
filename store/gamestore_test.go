package store

import (
	"regexp"
	"sync"
	"testing"

	"github.com/minaorangina/dreidel/engine"
	utils "github.com/minaorangina/dreidel/internal"
	"github.com/stretchr/testify/assert"
)

func newGame(id string) *engine.Controller {
	return engine.NewController(engine.ControllerOpts{GameID: id})
}

func TestInMemoryGameStore(t *testing.T) {
	t.Run("Constructor prevents nil struct members", func(t *testing.T) {
		str := NewInMemoryGameStore()
		if str.games == nil {
			t.Error("games was nil")
		}
		if str.rng == nil {
			t.Error("rng was nil")
		}
	})

	t.Run("prevents duplicate game IDs", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := newGame("ABCDEF")

		err := str.AddGame(ge)
		utils.AssertNoError(t, err)

		err = str.AddGame(newGame("ABCDEF"))
		utils.AssertErrorIs(t, err, ErrDuplicateGameID)

		found, ok := str.FindGame("ABCDEF")
		utils.AssertTrue(t, ok)
		assert.Same(t, ge, found)
	})

	t.Run("Handles a non-existent game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		game, ok := str.FindGame("fake-id")

		assert.False(t, ok)
		assert.Nil(t, game)

		_, err := str.RemoveGame("fake-id")
		utils.AssertErrorIs(t, err, ErrUnknownGameID)
	})

	t.Run("Can remove a game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		utils.AssertNoError(t, str.AddGame(newGame("QWERTY")))
		utils.AssertNoError(t, str.AddGame(newGame("ASDFGH")))

		removed, err := str.RemoveGame("QWERTY")
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, removed.ID(), "QWERTY")
		utils.AssertEqual(t, str.Len(), 1)

		_, ok := str.FindGame("QWERTY")
		assert.False(t, ok)
	})
}

func TestNewGameID(t *testing.T) {
	str := NewInMemoryGameStore()
	pattern := regexp.MustCompile(`^[A-Z]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := str.NewGameID()
		utils.AssertNoError(t, err)
		assert.Regexp(t, pattern, id)

		utils.AssertNoError(t, str.AddGame(newGame(id)))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestConcurrentAccess(t *testing.T) {
	str := NewInMemoryGameStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := str.NewGameID()
			if err != nil {
				return
			}
			str.AddGame(newGame(id))
			str.FindGame(id)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, str.Len(), 20)
	assert.Greater(t, str.Len(), 0)
}
