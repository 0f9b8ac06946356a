package maze

import "fmt"

// RNG is the source of randomness for symbol draws. *rand.Rand satisfies it.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// RandomSymbol draws one of the four dreidel symbols uniformly.
func RandomSymbol(rng RNG) Label {
	return Symbols[rng.Intn(len(Symbols))]
}

type point struct {
	x, y float64
}

type edge [2]int

// builder lays out nodes in id order and wires undirected edges.
type builder struct {
	rng   RNG
	nodes []Node
}

func (b *builder) add(label Label, p point) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{ID: id, Label: label, X: p.x, Y: p.y})
	return id
}

func (b *builder) addSymbol(p point) int {
	return b.add(RandomSymbol(b.rng), p)
}

func (b *builder) connect(id1, id2 int) {
	n1, n2 := &b.nodes[id1], &b.nodes[id2]
	if !containsInt(n1.Neighbours, id2) {
		n1.Neighbours = append(n1.Neighbours, id2)
	}
	if !containsInt(n2.Neighbours, id1) {
		n2.Neighbours = append(n2.Neighbours, id1)
	}
}

func (b *builder) connectAll(edges []edge) {
	for _, e := range edges {
		b.connect(e[0], e[1])
	}
}

var (
	startPoint = point{5, 50}
	endPoint   = point{95, 50}
)

// Generate lays out the template for the given difficulty and labels every
// intermediate node with a random symbol. Layout and connections depend only
// on the difficulty.
func Generate(difficulty Difficulty, rng RNG) (*Maze, error) {
	b := &builder{rng: rng}

	switch difficulty {
	case Sparse:
		buildSparse(b)
	case Medium:
		buildMedium(b)
	case Dense:
		buildDense(b)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(difficulty))
	}

	return New(difficulty, b.nodes)
}

// buildSparse has three columns of play with lane switching everywhere, so
// it is hard to get stuck.
func buildSparse(b *builder) {
	b.add(Start, startPoint)
	for _, p := range []point{
		{25, 20}, {25, 50}, {25, 80},
		{50, 20}, {50, 50}, {50, 80},
		{75, 35}, {75, 65},
	} {
		b.addSymbol(p)
	}
	b.add(End, endPoint)

	b.connectAll([]edge{
		{0, 1}, {0, 2}, {0, 3},
		// lanes
		{1, 2}, {2, 3},
		{4, 5}, {5, 6},
		// forward
		{1, 4}, {1, 5},
		{2, 4}, {2, 5}, {2, 6},
		{3, 5}, {3, 6},
		{4, 7}, {5, 7}, {5, 8}, {6, 8},
		{7, 9}, {8, 9},
	})
}

// buildMedium zig-zags through two diamond-shaped rings joined by hubs.
func buildMedium(b *builder) {
	b.add(Start, startPoint)
	for _, p := range []point{
		{20, 25}, {20, 75}, // ring 1
		{35, 50},           // hub 1
		{50, 15}, {50, 85}, // ring 2
		{65, 50},           // hub 2
		{80, 30}, {80, 70}, // approach
	} {
		b.addSymbol(p)
	}
	b.add(End, endPoint)

	b.connectAll([]edge{
		{0, 1}, {0, 2},
		{1, 3}, {2, 3}, {1, 2},
		{3, 4}, {3, 5},
		{4, 6}, {5, 6},
		// outer ring skips the hub
		{4, 7}, {5, 8},
		{6, 7}, {6, 8},
		{7, 9}, {8, 9},
	})
}

const (
	denseCols = 3
	denseRows = 4
)

// buildDense is a grid of symbols where every cell also links diagonally
// forward.
func buildDense(b *builder) {
	start := b.add(Start, startPoint)

	gridStart := len(b.nodes)
	for c := 0; c < denseCols; c++ {
		for r := 0; r < denseRows; r++ {
			b.addSymbol(point{20 + float64(c)*20, 15 + float64(r)*23})
		}
	}
	end := b.add(End, endPoint)

	cell := func(c, r int) int {
		return gridStart + c*denseRows + r
	}

	for r := 0; r < denseRows; r++ {
		b.connect(start, cell(0, r))
	}

	for c := 0; c < denseCols; c++ {
		for r := 0; r < denseRows; r++ {
			current := cell(c, r)
			if r < denseRows-1 {
				b.connect(current, cell(c, r+1))
			}
			if c < denseCols-1 {
				b.connect(current, cell(c+1, r))
				if r > 0 {
					b.connect(current, cell(c+1, r-1))
				}
				if r < denseRows-1 {
					b.connect(current, cell(c+1, r+1))
				}
			}
		}
	}

	for r := 0; r < denseRows; r++ {
		b.connect(cell(denseCols-1, r), end)
	}
}
