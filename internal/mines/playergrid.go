package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// PlayerCell is what a player may see of a square.
type PlayerCell int8

const (
	Unknown       PlayerCell = -2
	Flag          PlayerCell = -1
	CorrectFlag   PlayerCell = 64 // post-game-over
	ExplodedMine  PlayerCell = 65
	WrongFlag     PlayerCell = 66
	UnflaggedMine PlayerCell = 67
	// 0-8 for an open square with given number of mined neighbors
)

func (s PlayerCell) String() string {
	switch s {
	case Unknown:
		return " "
	case Flag, CorrectFlag:
		return "F"
	case WrongFlag:
		return "X"
	case ExplodedMine, UnflaggedMine:
		return "*"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type PlayerGrid []PlayerCell

func (g PlayerGrid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// PlayerGrid renders the player's knowledge of the board. While the game
// is running covered squares are Unknown or Flag; once it is over every
// mine and every flag is shown for what it is.
func (b *Board) PlayerGrid() PlayerGrid {
	over := b.Over()
	grid := make(PlayerGrid, len(b.grid.cells))
	for i, cell := range b.grid.cells {
		status := b.state.cells[i]
		switch {
		case status == Uncovered && cell == Mine:
			grid[i] = ExplodedMine
		case status == Uncovered:
			grid[i] = PlayerCell(cell)
		case !over && status == Flagged:
			grid[i] = Flag
		case !over:
			grid[i] = Unknown
		case status == Flagged && cell == Mine:
			grid[i] = CorrectFlag
		case status == Flagged:
			grid[i] = WrongFlag
		case cell == Mine:
			grid[i] = UnflaggedMine
		default:
			grid[i] = PlayerCell(cell)
		}
	}
	return grid
}
