package mines

import (
	"fmt"
	"slices"
)

type Status uint8

const (
	Covered Status = iota
	Uncovered
	Flagged
)

func (s Status) String() string {
	switch s {
	case Covered:
		return "covered"
	case Uncovered:
		return "uncovered"
	case Flagged:
		return "flagged"
	default:
		return "unknown"
	}
}

// RevealState records what the player has done to every square. It is kept
// apart from the Grid so one grid can back several play sessions.
type RevealState struct {
	width, height int
	cells         []Status
}

func NewRevealState(width, height int) *RevealState {
	return &RevealState{
		width:  width,
		height: height,
		cells:  make([]Status, width*height),
	}
}

// At panics on coordinates outside the board, like Grid.At.
func (s *RevealState) At(c Coord) Status {
	if c.X < 0 || c.X >= s.width || c.Y < 0 || c.Y >= s.height {
		panic(fmt.Sprintf("mines: %s outside %dx%d reveal state", c, s.width, s.height))
	}
	return s.cells[c.Y*s.width+c.X]
}

func (s *RevealState) set(c Coord, status Status) {
	s.cells[c.Y*s.width+c.X] = status
}

func (s *RevealState) Count(status Status) (count int) {
	for _, st := range s.cells {
		if st == status {
			count++
		}
	}
	return
}

// Clone returns a snapshot that later moves do not affect.
func (s *RevealState) Clone() *RevealState {
	return &RevealState{
		width:  s.width,
		height: s.height,
		cells:  slices.Clone(s.cells),
	}
}
