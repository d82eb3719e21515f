package mines

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Grid is the content of a board: where the mines are and what every other
// square shows once opened. A Grid never changes after it is built and may
// be read from several goroutines.
type Grid struct {
	width, height int
	cells         []Cell
}

// NewGrid places p.MineCount mines uniformly at random and derives hints.
func NewGrid(p GameParams, r *rand.Rand) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	mines := make([]bool, p.Width*p.Height)

	/*
	 * Write down the list of possible mine locations, then pick n off
	 * the list at random.
	 */
	candidates := make([]int, len(mines))
	for i := range candidates {
		candidates[i] = i
	}
	k := len(candidates)
	for range p.MineCount {
		i := r.IntN(k)
		mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	return newGrid(p.Width, p.Height, mines), nil
}

// GridFromMines builds a grid with a fixed mine placement.
func GridFromMines(width, height int, mines []Coord) (*Grid, error) {
	p := GameParams{Width: width, Height: height, MineCount: len(mines)}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	grid := make([]bool, width*height)
	for _, c := range mines {
		if !p.InBounds(c) {
			return nil, fmt.Errorf("%w: mine at %s is out of bounds", ErrInvalidConfig, c)
		}
		i := c.Y*width + c.X
		if grid[i] {
			return nil, fmt.Errorf("%w: duplicate mine at %s", ErrInvalidConfig, c)
		}
		grid[i] = true
	}
	return newGrid(width, height, grid), nil
}

func newGrid(width, height int, mines []bool) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for i, mine := range mines {
		if mine {
			g.cells[i] = Mine
		}
	}
	for i := range g.cells {
		if g.cells[i] == Mine {
			continue
		}
		v := 0
		for _, n := range g.Neighbors(g.coord(i)) {
			if g.cells[g.index(n)] == Mine {
				v++
			}
		}
		g.cells[i] = Cell(v)
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(c Coord) bool {
	return 0 <= c.X && c.X < g.width && 0 <= c.Y && c.Y < g.height
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.width + c.X
}

func (g *Grid) coord(i int) Coord {
	return Coord{X: i % g.width, Y: i / g.width}
}

// At returns the content of an in-bounds cell. It panics on coordinates
// outside the grid; check with InBounds first.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("mines: %s outside %dx%d grid", c, g.width, g.height))
	}
	return g.cells[g.index(c)]
}

// Neighbors lists the up to 8 in-bounds cells touching c, row by row.
func (g *Grid) Neighbors(c Coord) []Coord {
	ns := make([]Coord, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := Coord{X: c.X + dx, Y: c.Y + dy}
			if (dx != 0 || dy != 0) && g.InBounds(n) {
				ns = append(ns, n)
			}
		}
	}
	return ns
}

func (g *Grid) Mines() []Coord {
	var mines []Coord
	for i, cell := range g.cells {
		if cell == Mine {
			mines = append(mines, g.coord(i))
		}
	}
	return mines
}

func (g *Grid) MineCount() (count int) {
	for _, cell := range g.cells {
		if cell == Mine {
			count++
		}
	}
	return
}

// withoutMinesAround returns a copy of g in which every mine inside the
// 3x3 block centred on c has been moved to a random free square outside
// that block. It returns g itself when the block holds no mines.
func (g *Grid) withoutMinesAround(c Coord, r *rand.Rand) *Grid {
	block := make(map[Coord]bool, 9)
	block[c] = true
	for _, n := range g.Neighbors(c) {
		block[n] = true
	}

	mines := make([]bool, len(g.cells))
	var moved []Coord
	for i, cell := range g.cells {
		if cell != Mine {
			continue
		}
		if block[g.coord(i)] {
			moved = append(moved, g.coord(i))
		} else {
			mines[i] = true
		}
	}
	if len(moved) == 0 {
		return g
	}

	candidates := make([]int, 0, len(g.cells))
	for i := range g.cells {
		if !mines[i] && !block[g.coord(i)] {
			candidates = append(candidates, i)
		}
	}
	k := len(candidates)
	for _, from := range moved {
		i := r.IntN(k)
		mines[candidates[i]] = true
		Log.Debug("relocated mine away from first click",
			"click", c, "from", from, "to", g.coord(candidates[i]))
		k--
		candidates[i] = candidates[k]
	}

	return newGrid(g.width, g.height, mines)
}

// String renders the grid one row per line: '*' for mines, digits for
// hints and '.' for empty squares.
func (g *Grid) String() string {
	var b strings.Builder
	fmt.Fprint(&b, "   ")
	for x := range g.width {
		fmt.Fprintf(&b, "%d ", x%10)
	}
	fmt.Fprint(&b, "\n")
	for y := range g.height {
		fmt.Fprintf(&b, "%2d ", y)
		for x := range g.width {
			fmt.Fprint(&b, g.cells[y*g.width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
