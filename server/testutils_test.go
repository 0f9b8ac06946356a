package server

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/minaorangina/dreidel/game"
	utils "github.com/minaorangina/dreidel/internal"
	"github.com/minaorangina/dreidel/maze"
	"github.com/minaorangina/dreidel/protocol"
	"github.com/minaorangina/dreidel/store"
	"github.com/sirupsen/logrus"
)

// forkMaze: START(0) forks to Nun(5) and Gimel(7), both of which lead to
// END(9).
func forkMaze(t *testing.T) *maze.Maze {
	t.Helper()

	m, err := maze.New(maze.Sparse, []maze.Node{
		{ID: 0, Label: maze.Start, Neighbours: []int{5, 7}},
		{ID: 5, Label: maze.Nun, Neighbours: []int{0, 9}},
		{ID: 7, Label: maze.Gimel, Neighbours: []int{0, 9}},
		{ID: 9, Label: maze.End, Neighbours: []int{5, 7}},
	})
	utils.AssertNoError(t, err)
	return m
}

func newTestServer(t *testing.T, origins ...string) *GameServer {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	m := forkMaze(t)

	s := NewServer(ServerOpts{
		Store:          store.NewInMemoryGameStore(),
		Logger:         logger,
		AllowedOrigins: origins,
		NewGame: func() *game.Game {
			return game.NewGame(game.GameOpts{
				MazeFactory: func(maze.Difficulty, maze.RNG) (*maze.Maze, error) {
					return m, nil
				},
			})
		},
	})
	t.Cleanup(func() { s.Close() })
	return s
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newRequest(method, path string, body []byte) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, http.NoBody)
	}
	return httptest.NewRequest(method, path, bytes.NewBuffer(body))
}

func serve(s *GameServer, r *http.Request) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	s.ServeHTTP(response, r)
	return response
}

// createGame makes a new game on s and returns its id
func createGame(t *testing.T, s *GameServer) string {
	t.Helper()

	response := serve(s, newRequest(http.MethodPost, "/games", nil))
	assertStatus(t, response.Code, http.StatusCreated)

	var got NewGameRes
	utils.AssertNoError(t, json.Unmarshal(response.Body.Bytes(), &got))
	return got.GameID
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func decodeSnapshot(t *testing.T, body *bytes.Buffer) protocol.Snapshot {
	t.Helper()

	var got protocol.Snapshot
	if err := json.Unmarshal(body.Bytes(), &got); err != nil {
		t.Fatalf("Could not unmarshal json: %s", err.Error())
	}
	return got
}
