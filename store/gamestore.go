package store

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/minaorangina/dreidel/engine"
)

var (
	ErrUnknownGameID   = errors.New("unknown game ID")
	ErrDuplicateGameID = errors.New("game ID already in use")
	ErrNoFreeGameID    = errors.New("could not find a free game ID")
)

const (
	gameIDLength   = 6
	gameIDAttempts = 10
)

var letters = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

type GameStore interface {
	FindGame(gameID string) (*engine.Controller, bool)
	AddGame(game *engine.Controller) error
	RemoveGame(gameID string) (*engine.Controller, error)
	NewGameID() (string, error)
	Len() int
}

// InMemoryGameStore maps game id to game session
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]*engine.Controller
	rng   *rand.Rand
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string]*engine.Controller{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) (*engine.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[gameID]
	return game, ok
}

func (s *InMemoryGameStore) AddGame(game *engine.Controller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[game.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, game.ID())
	}

	s.games[game.ID()] = game
	return nil
}

// RemoveGame takes a session out of the store. Closing it is up to the
// caller.
func (s *InMemoryGameStore) RemoveGame(gameID string) (*engine.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}
	delete(s.games, gameID)
	return game, nil
}

func (s *InMemoryGameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// NewGameID returns six upper-case letters not used by any game in the
// store right now.
func (s *InMemoryGameStore) NewGameID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < gameIDAttempts; i++ {
		code := make([]byte, gameIDLength)
		for j := range code {
			code[j] = letters[s.rng.Intn(len(letters))]
		}
		if _, taken := s.games[string(code)]; !taken {
			return string(code), nil
		}
	}
	return "", ErrNoFreeGameID
}
