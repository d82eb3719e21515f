package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allCoords(width, height int) []Coord {
	cs := make([]Coord, 0, width*height)
	for y := range height {
		for x := range width {
			cs = append(cs, Coord{x, y})
		}
	}
	return cs
}

func TestRevealEmptyBoard(t *testing.T) {
	b, err := NewBoard(GameParams{Width: 4, Height: 4, MineCount: 0}, nil)
	require.NoError(t, err)

	for _, c := range allCoords(4, 4) {
		require.Equal(t, Empty, b.Grid().At(c))
	}

	res, err := b.Reveal(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, RevealUncovered, res.Outcome)
	assert.ElementsMatch(t, allCoords(4, 4), res.Uncovered)
	assert.True(t, b.Won())
	assert.False(t, b.Lost())
}

func TestRevealWinsWithOneFlood(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{2, 2}), false)

	res, err := b.Reveal(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, RevealUncovered, res.Outcome)
	assert.Len(t, res.Uncovered, 8)
	assert.NotContains(t, res.Uncovered, Coord{2, 2})
	assert.True(t, b.Won())
	assert.False(t, b.Lost())
	assert.Equal(t, Covered, b.State().At(Coord{2, 2}))
}

func TestRevealHintStopsFlood(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{2, 2}), false)

	res, err := b.Reveal(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []Coord{{1, 1}}, res.Uncovered)
	assert.False(t, b.Won())
}

func TestRevealHitMine(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{1, 1}), false)
	_, err := b.ToggleFlag(Coord{0, 1})
	require.NoError(t, err)

	res, err := b.Reveal(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, RevealHitMine, res.Outcome)
	assert.Equal(t, Coord{1, 1}, res.Exploded)
	assert.Empty(t, res.Uncovered)
	assert.True(t, b.Lost())
	assert.False(t, b.Won())
	assert.Equal(t, Uncovered, b.State().At(Coord{1, 1}))

	exploded, ok := b.Exploded()
	assert.True(t, ok)
	assert.Equal(t, Coord{1, 1}, exploded)

	res, err = b.Reveal(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, RevealGameOver, res.Outcome)
	assert.True(t, b.Lost(), "loss is sticky")
	assert.Equal(t, Covered, b.State().At(Coord{0, 0}))

	res, err = b.Reveal(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, RevealAlreadyUncovered, res.Outcome)

	res, err = b.Reveal(Coord{0, 1})
	require.NoError(t, err)
	assert.Equal(t, RevealFlagged, res.Outcome)
	assert.Equal(t, Flagged, b.State().At(Coord{0, 1}))
}

func TestRevealAlreadyUncovered(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{2, 2}), false)

	_, err := b.Reveal(Coord{1, 1})
	require.NoError(t, err)
	before := b.State()

	res, err := b.Reveal(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, RevealAlreadyUncovered, res.Outcome)
	assert.Empty(t, res.Uncovered)
	assert.Equal(t, before, b.State())
}

func TestRevealFlagged(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{2, 2}), false)

	outcome, err := b.ToggleFlag(Coord{0, 0})
	require.NoError(t, err)
	require.Equal(t, FlagPlaced, outcome)
	before := b.State()

	res, err := b.Reveal(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, RevealFlagged, res.Outcome)
	assert.Equal(t, before, b.State())
}

func TestFloodFillDoesNotCrossFlags(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 5, 3), false)
	for y := range 3 {
		_, err := b.ToggleFlag(Coord{2, y})
		require.NoError(t, err)
	}

	res, err := b.Reveal(Coord{0, 0})
	require.NoError(t, err)
	assert.ElementsMatch(t, []Coord{
		{0, 0}, {1, 0},
		{0, 1}, {1, 1},
		{0, 2}, {1, 2},
	}, res.Uncovered)

	state := b.State()
	for y := range 3 {
		assert.Equal(t, Flagged, state.At(Coord{2, y}))
		assert.Equal(t, Covered, state.At(Coord{3, y}))
		assert.Equal(t, Covered, state.At(Coord{4, y}))
	}
	assert.False(t, b.Won())
}

func TestNoSquareIsUncoveredTwice(t *testing.T) {
	t.Parallel()

	for seed := range uint64(25) {
		params := GameParams{Width: 16, Height: 16, MineCount: 40, Seed: seeded(seed)}
		b, err := NewBoard(params, nil)
		require.NoError(t, err)

		pick := rand.New(rand.NewPCG(seed, 7))
		seen := make(map[Coord]bool)
		for !b.Over() {
			c := Coord{pick.IntN(16), pick.IntN(16)}
			res, err := b.Reveal(c)
			require.NoError(t, err)
			switch res.Outcome {
			case RevealHitMine:
				require.False(t, seen[res.Exploded])
				seen[res.Exploded] = true
			case RevealUncovered:
				for _, u := range res.Uncovered {
					require.False(t, seen[u], "%s uncovered twice", u)
					seen[u] = true
				}
			}
		}

		assert.LessOrEqual(t, len(seen), 16*16)
		assert.Equal(t, len(seen), b.State().Count(Uncovered))
		if b.Won() {
			assert.Equal(t, 16*16-40, len(seen))
		}
	}
}

func TestSafeStartRelocatesMineUnderFirstClick(t *testing.T) {
	grid := mustGrid(t, 5, 5, Coord{2, 2})
	b := mustBoard(t, grid, true)

	res, err := b.Reveal(Coord{2, 2})
	require.NoError(t, err)
	assert.Equal(t, RevealUncovered, res.Outcome)
	assert.False(t, b.Lost())

	assert.Equal(t, Empty, b.Grid().At(Coord{2, 2}))
	assert.Equal(t, 1, b.Grid().MineCount())
	for _, n := range b.Grid().Neighbors(Coord{2, 2}) {
		assert.False(t, b.Grid().At(n).IsMine(), "mine next to first click at %s", n)
	}
	assert.Equal(t, Mine, grid.At(Coord{2, 2}), "source grid must not change")
}

func TestSafeStartNeverHitsMine(t *testing.T) {
	t.Parallel()

	tests := []GameParams{
		{Width: 9, Height: 9, MineCount: 10, SafeStart: true},
		{Width: 9, Height: 9, MineCount: 72, SafeStart: true},
		{Width: 4, Height: 4, MineCount: 7, SafeStart: true},
		{Width: 30, Height: 16, MineCount: 99, SafeStart: true},
	}
	for _, params := range tests {
		t.Run(params.String(), func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for _, c := range allCoords(params.Width, params.Height) {
				b, err := NewBoard(params, r)
				require.NoError(t, err)

				res, err := b.Reveal(c)
				require.NoError(t, err)
				require.Equal(t, RevealUncovered, res.Outcome, "first click at %s", c)
				require.Equal(t, Empty, b.Grid().At(c))
				require.Equal(t, params.MineCount, b.Grid().MineCount())
			}
		})
	}
}

func TestToggleFlagTwice(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{2, 2}), false)

	outcome, err := b.ToggleFlag(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, FlagPlaced, outcome)
	assert.Equal(t, 0, b.FlagsLeft())

	outcome, err = b.ToggleFlag(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, FlagRemoved, outcome)
	assert.Equal(t, 1, b.FlagsLeft())

	assert.Equal(t, Covered, b.State().At(Coord{1, 1}))
}

func TestToggleFlagOnUncoveredIsRejected(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{2, 2}), false)

	_, err := b.Reveal(Coord{1, 1})
	require.NoError(t, err)

	outcome, err := b.ToggleFlag(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, FlagRejected, outcome)
	assert.Equal(t, Uncovered, b.State().At(Coord{1, 1}))
}

func TestInvalidCoordinate(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 2, Coord{2, 1}), false)

	for _, c := range []Coord{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
		_, err := b.Reveal(c)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)

		_, err = b.ToggleFlag(c)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)

		_, err = b.Chord(c)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	}
	assert.Equal(t, 6, b.State().Count(Covered))
}

func TestChord(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{0, 0}), false)

	_, err := b.Reveal(Coord{1, 1})
	require.NoError(t, err)

	res, err := b.Chord(Coord{1, 1})
	require.NoError(t, err)
	assert.Empty(t, res.Uncovered, "chord without enough flags opens nothing")

	_, err = b.ToggleFlag(Coord{0, 0})
	require.NoError(t, err)

	res, err = b.Chord(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, RevealUncovered, res.Outcome)
	assert.ElementsMatch(t, []Coord{
		{1, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2},
	}, res.Uncovered)
	assert.True(t, b.Won())
}

func TestChordWithWrongFlagHitsMine(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{0, 0}), false)

	_, err := b.Reveal(Coord{1, 1})
	require.NoError(t, err)
	_, err = b.ToggleFlag(Coord{2, 2})
	require.NoError(t, err)

	res, err := b.Chord(Coord{1, 1})
	require.NoError(t, err)
	assert.Equal(t, RevealHitMine, res.Outcome)
	assert.Equal(t, Coord{0, 0}, res.Exploded)
	assert.True(t, b.Lost())
}

func TestForfeit(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{2, 2}), false)

	b.Forfeit()
	assert.True(t, b.Lost())
	_, ok := b.Exploded()
	assert.False(t, ok)

	outcome, err := b.ToggleFlag(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, FlagRejected, outcome)
}

func TestPlayerGrid(t *testing.T) {
	b := mustBoard(t, mustGrid(t, 3, 3, Coord{2, 2}, Coord{2, 0}), false)

	_, err := b.ToggleFlag(Coord{0, 2})
	require.NoError(t, err)
	_, err = b.ToggleFlag(Coord{2, 0})
	require.NoError(t, err)
	_, err = b.Reveal(Coord{1, 1})
	require.NoError(t, err)

	assert.Equal(t, PlayerGrid{
		Unknown, Unknown, Flag,
		Unknown, 2, Unknown,
		Flag, Unknown, Unknown,
	}, b.PlayerGrid())

	_, err = b.Reveal(Coord{2, 2})
	require.NoError(t, err)

	assert.Equal(t, PlayerGrid{
		0, 1, CorrectFlag,
		0, 2, 2,
		WrongFlag, 1, ExplodedMine,
	}, b.PlayerGrid())
}

func TestRevealStateAtOutOfBounds(t *testing.T) {
	s := NewRevealState(3, 2)
	s.set(Coord{0, 1}, Flagged)

	assert.Equal(t, Flagged, s.At(Coord{0, 1}))
	for _, c := range []Coord{{3, 0}, {-1, 1}, {0, 2}, {2, -1}} {
		assert.Panics(t, func() { s.At(c) }, "%s", c)
	}
}
