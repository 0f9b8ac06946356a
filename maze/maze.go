package maze

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownDifficulty    = errors.New("unknown difficulty")
	ErrUnknownLabel         = errors.New("unknown label")
	ErrNotSymbol            = errors.New("label is not a dreidel symbol")
	ErrDuplicateNode        = errors.New("duplicate node id")
	ErrUnknownNeighbour     = errors.New("neighbour does not exist")
	ErrSelfConnection       = errors.New("node is connected to itself")
	ErrAsymmetricConnection = errors.New("connection is not symmetric")
	ErrStartCount           = errors.New("maze must have exactly one start node")
	ErrNoEnd                = errors.New("maze must have at least one end node")
	ErrUnreachableNode      = errors.New("node is unreachable from start")
)

// Node is a location on the board. X and Y are percentages of the board's
// width and height.
type Node struct {
	ID         int
	Label      Label
	X, Y       float64
	Neighbours []int
}

// Maze is an immutable graph of nodes. Accessors hand out copies.
type Maze struct {
	difficulty Difficulty
	nodes      []Node
	index      map[int]int
	start      int
}

// New builds a maze from explicit nodes, e.g. for tests or custom boards.
// Neighbour lists are sorted and de-duplicated before validation.
func New(difficulty Difficulty, nodes []Node) (*Maze, error) {
	m := &Maze{
		difficulty: difficulty,
		nodes:      make([]Node, 0, len(nodes)),
		index:      map[int]int{},
	}

	for _, n := range nodes {
		if _, exists := m.index[n.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNode, n.ID)
		}
		n.Neighbours = uniqueSorted(n.Neighbours)
		m.index[n.ID] = len(m.nodes)
		m.nodes = append(m.nodes, n)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks the graph invariants every maze must satisfy: one start,
// at least one end, symmetric connections, no self-loops, and every node
// reachable from the start.
func (m *Maze) Validate() error {
	starts, ends := 0, 0
	for _, n := range m.nodes {
		switch n.Label {
		case Start:
			starts++
			m.start = n.ID
		case End:
			ends++
		}

		for _, id := range n.Neighbours {
			if id == n.ID {
				return fmt.Errorf("%w: %d", ErrSelfConnection, n.ID)
			}
			other, ok := m.lookup(id)
			if !ok {
				return fmt.Errorf("%w: %d -> %d", ErrUnknownNeighbour, n.ID, id)
			}
			if !containsInt(other.Neighbours, n.ID) {
				return fmt.Errorf("%w: %d -> %d", ErrAsymmetricConnection, n.ID, id)
			}
		}
	}

	if starts != 1 {
		return fmt.Errorf("%w: found %d", ErrStartCount, starts)
	}
	if ends == 0 {
		return ErrNoEnd
	}

	reached := m.reachableFrom(m.start)
	for _, n := range m.nodes {
		if _, ok := reached[n.ID]; !ok {
			return fmt.Errorf("%w: %d", ErrUnreachableNode, n.ID)
		}
	}

	return nil
}

func (m *Maze) Difficulty() Difficulty {
	return m.difficulty
}

// Len is the number of nodes.
func (m *Maze) Len() int {
	return len(m.nodes)
}

// Start returns the id of the START node.
func (m *Maze) Start() int {
	return m.start
}

// Node returns a copy of the node with the given id.
func (m *Maze) Node(id int) (Node, bool) {
	n, ok := m.lookup(id)
	if !ok {
		return Node{}, false
	}
	return copyNode(*n), true
}

// Nodes returns copies of all nodes in id order of construction.
func (m *Maze) Nodes() []Node {
	nodes := make([]Node, 0, len(m.nodes))
	for _, n := range m.nodes {
		nodes = append(nodes, copyNode(n))
	}
	return nodes
}

// Neighbours returns the sorted neighbour ids of a node, or nil for an
// unknown id.
func (m *Maze) Neighbours(id int) []int {
	n, ok := m.lookup(id)
	if !ok {
		return nil
	}
	return append([]int(nil), n.Neighbours...)
}

// AdjacentToEnd reports whether the node has an END neighbour.
func (m *Maze) AdjacentToEnd(id int) bool {
	n, ok := m.lookup(id)
	if !ok {
		return false
	}
	for _, nid := range n.Neighbours {
		if other, ok := m.lookup(nid); ok && other.Label == End {
			return true
		}
	}
	return false
}

func (m *Maze) lookup(id int) (*Node, bool) {
	i, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return &m.nodes[i], true
}

func (m *Maze) reachableFrom(id int) map[int]struct{} {
	visited := map[int]struct{}{id: {}}
	queue := []int{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		n, ok := m.lookup(current)
		if !ok {
			continue
		}
		for _, next := range n.Neighbours {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return visited
}

func copyNode(n Node) Node {
	n.Neighbours = append([]int(nil), n.Neighbours...)
	return n
}

func uniqueSorted(ids []int) []int {
	set := map[int]struct{}{}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s := make([]int, 0, len(set))
	for id := range set {
		s = append(s, id)
	}
	sort.Ints(s)
	return s
}

func containsInt(haystack []int, needle int) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
