package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gridTests = []struct {
	name   string
	params GameParams
}{
	{"1x1(0)", GameParams{Width: 1, Height: 1, MineCount: 0}},
	{"1x1(1)", GameParams{Width: 1, Height: 1, MineCount: 1}},
	{"9x9(10)", GameParams{Width: 9, Height: 9, MineCount: 10}},
	{"9x9(81)", GameParams{Width: 9, Height: 9, MineCount: 81}},
	{"16x16(40)", GameParams{Width: 16, Height: 16, MineCount: 40}},
	{"30x16(99)", GameParams{Width: 30, Height: 16, MineCount: 99}},
	{"30x16(170)", GameParams{Width: 30, Height: 16, MineCount: 170}},
	{"7x1(3)", GameParams{Width: 7, Height: 1, MineCount: 3}},
}

func bruteForceHint(g *Grid, c Coord) int {
	count := 0
	for y := c.Y - 1; y <= c.Y+1; y++ {
		for x := c.X - 1; x <= c.X+1; x++ {
			n := Coord{x, y}
			if n == c || x < 0 || y < 0 || x >= g.Width() || y >= g.Height() {
				continue
			}
			if g.At(n).IsMine() {
				count++
			}
		}
	}
	return count
}

func TestNewGrid(t *testing.T) {
	t.Parallel()

	for _, test := range gridTests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for range 20 {
				g, err := NewGrid(test.params, r)
				require.NoError(t, err)

				assert.Equal(t, test.params.MineCount, g.MineCount())
				assert.Len(t, g.Mines(), test.params.MineCount)

				for y := range g.Height() {
					for x := range g.Width() {
						c := Coord{x, y}
						if g.At(c).IsMine() {
							continue
						}
						assert.Equal(t, bruteForceHint(g, c), g.At(c).Hint(), "hint at %s", c)
					}
				}
			}
		})
	}
}

func TestNewGridIsDeterministicForSeed(t *testing.T) {
	params := GameParams{Width: 16, Height: 16, MineCount: 40, Seed: seeded(42)}

	a, err := NewGrid(params, NewRand(params))
	require.NoError(t, err)
	b, err := NewGrid(params, NewRand(params))
	require.NoError(t, err)

	assert.Equal(t, a.Mines(), b.Mines())
	assert.Equal(t, a.String(), b.String())
}

func TestNewGridInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
	}{
		{"zero width", GameParams{Width: 0, Height: 5, MineCount: 0}},
		{"zero height", GameParams{Width: 5, Height: 0, MineCount: 0}},
		{"negative mines", GameParams{Width: 5, Height: 5, MineCount: -1}},
		{"too many mines", GameParams{Width: 3, Height: 3, MineCount: 10}},
		{"safe start reserve", GameParams{Width: 3, Height: 3, MineCount: 1, SafeStart: true}},
		{"safe start reserve 4x4", GameParams{Width: 4, Height: 4, MineCount: 8, SafeStart: true}},
		{"area overflows int", GameParams{Width: 1 << 32, Height: 1 << 32, MineCount: 0}},
		{"area over limit", GameParams{Width: 100000, Height: 100000, MineCount: 0}},
		{"one row too many", GameParams{Width: MaxCells + 1, Height: 1, MineCount: 0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := NewGrid(test.params, rand.New(rand.NewPCG(1, 2)))
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, g)
		})
	}
}

func TestGridFromMines(t *testing.T) {
	g := mustGrid(t, 3, 3, Coord{2, 2})
	assert.Equal(t, Mine, g.At(Coord{2, 2}))
	assert.Equal(t, Cell(1), g.At(Coord{1, 1}))
	assert.Equal(t, Empty, g.At(Coord{0, 0}))

	_, err := GridFromMines(3, 3, []Coord{{1, 1}, {1, 1}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = GridFromMines(3, 3, []Coord{{3, 0}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNeighbors(t *testing.T) {
	g := mustGrid(t, 4, 3)

	tests := []struct {
		c    Coord
		want []Coord
	}{
		{Coord{0, 0}, []Coord{{1, 0}, {0, 1}, {1, 1}}},
		{Coord{3, 2}, []Coord{{2, 1}, {3, 1}, {2, 2}}},
		{Coord{1, 0}, []Coord{{0, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}},
		{Coord{1, 1}, []Coord{
			{0, 0}, {1, 0}, {2, 0},
			{0, 1}, {2, 1},
			{0, 2}, {1, 2}, {2, 2},
		}},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, g.Neighbors(test.c), "neighbors of %s", test.c)
	}

	assert.Empty(t, mustGrid(t, 1, 1).Neighbors(Coord{0, 0}))
}

func TestWithoutMinesAroundKeepsOriginal(t *testing.T) {
	g := mustGrid(t, 5, 5, Coord{2, 2}, Coord{1, 1}, Coord{4, 4})
	moved := g.withoutMinesAround(Coord{2, 2}, rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, Mine, g.At(Coord{2, 2}), "original grid must not change")
	assert.Equal(t, 3, moved.MineCount())
	assert.Equal(t, Mine, moved.At(Coord{4, 4}))
	for _, c := range append(moved.Neighbors(Coord{2, 2}), Coord{2, 2}) {
		assert.False(t, moved.At(c).IsMine(), "mine left at %s", c)
	}

	untouched := mustGrid(t, 5, 5, Coord{4, 4})
	assert.Same(t, untouched, untouched.withoutMinesAround(Coord{0, 0}, rand.New(rand.NewPCG(1, 2))))
}

func TestGridString(t *testing.T) {
	g := mustGrid(t, 3, 3, Coord{2, 2})
	want := "   0 1 2 \n" +
		" 0 . . . \n" +
		" 1 . 1 1 \n" +
		" 2 . 1 * \n"
	assert.Equal(t, want, g.String())
}

func TestCoordCompare(t *testing.T) {
	assert.Equal(t, 0, Coord{1, 1}.Compare(Coord{1, 1}))
	assert.Equal(t, -1, Coord{5, 0}.Compare(Coord{0, 1}))
	assert.Equal(t, 1, Coord{2, 1}.Compare(Coord{1, 1}))
}
