package game

import (
	"testing"

	utils "github.com/minaorangina/dreidel/internal"
	"github.com/minaorangina/dreidel/maze"
)

var (
	twoPlayers   = func() []string { return []string{"Ada", "Grace"} }
	threePlayers = func() []string { return []string{"Ada", "Grace", "Hedy"} }
	fourPlayers  = func() []string { return []string{"Ada", "Grace", "Hedy", "Katherine"} }
)

// forkMaze: START(0) forks to Nun(5) and Gimel(7), both of which lead to
// END(9).
//
//	    5
//	  /   \
//	0       9
//	  \   /
//	    7
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

// loopMaze keeps Nun players shuffling between nodes 1 and 2; only a Pei
// from node 2 gets anywhere near the END.
//
//	0 - 1 - 2 - 3 - 4
func loopMaze(t *testing.T) *maze.Maze {
	t.Helper()

	m, err := maze.New(maze.Medium, []maze.Node{
		{ID: 0, Label: maze.Start, Neighbours: []int{1}},
		{ID: 1, Label: maze.Nun, Neighbours: []int{0, 2}},
		{ID: 2, Label: maze.Nun, Neighbours: []int{1, 3}},
		{ID: 3, Label: maze.Pei, Neighbours: []int{2, 4}},
		{ID: 4, Label: maze.End, Neighbours: []int{3}},
	})
	utils.AssertNoError(t, err)
	return m
}

func fixedMaze(m *maze.Maze) MazeFactory {
	return func(maze.Difficulty, maze.RNG) (*maze.Maze, error) {
		return m, nil
	}
}

// startedGame is a game in progress on the given maze. Digital draws come
// from rngValues.
func startedGame(t *testing.T, m *maze.Maze, names []string, input InputMethod, rngValues ...int) *Game {
	t.Helper()

	g := NewGame(GameOpts{
		RNG:         utils.NewScriptedRNG(rngValues...),
		MazeFactory: fixedMaze(m),
	})
	utils.AssertNoError(t, g.Start(names, maze.Sparse, input))
	return g
}

// rngFor returns the scripted value that draws symbol
func rngFor(symbol maze.Label) int {
	for i, s := range maze.Symbols {
		if s == symbol {
			return i
		}
	}
	return -1
}
