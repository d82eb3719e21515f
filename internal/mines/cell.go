package mines

import "strconv"

// Cell is the immutable content of a grid square: a mine, or the number
// of mines among its neighbours (0 means empty).
type Cell int8

const (
	Mine  Cell = -1
	Empty Cell = 0
)

func (c Cell) IsMine() bool {
	return c == Mine
}

// Hint returns the neighbouring mine count, or -1 for a mine.
func (c Cell) Hint() int {
	return int(c)
}

func (c Cell) String() string {
	switch {
	case c == Mine:
		return "*"
	case c == Empty:
		return "."
	case 1 <= c && c <= 8:
		return strconv.Itoa(int(c))
	default:
		return "!"
	}
}
