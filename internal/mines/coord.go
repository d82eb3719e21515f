package mines

import "fmt"

// Coord addresses a single cell of a grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Compare orders coordinates row by row.
func (c Coord) Compare(o Coord) int {
	if c.Y < o.Y {
		return -1
	}
	if c.Y > o.Y {
		return 1
	}
	if c.X < o.X {
		return -1
	}
	if c.X > o.X {
		return 1
	}
	return 0
}
