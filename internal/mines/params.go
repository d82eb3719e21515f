package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"strings"
)

// MaxCells bounds the area of any board.
const MaxCells = 1 << 20

type GameParams struct {
	Width, Height, MineCount int
	SafeStart                bool
	Seed                     *uint64
}

func (p GameParams) Unpack() (w int, h int, mc int, s bool) {
	return p.Width, p.Height, p.MineCount, p.SafeStart
}

// String encodes the board shape as "width:height:mines:safe", the format
// accepted by ParseGameParams. The seed is not part of it.
func (p GameParams) String() string {
	s := 0
	if p.SafeStart {
		s = 1
	}
	return fmt.Sprintf("%d:%d:%d:%d", p.Width, p.Height, p.MineCount, s)
}

func ParseGameParams(str string) (*GameParams, error) {
	p := &GameParams{}
	s := 0
	fields := strings.Split(str, ":")
	if len(fields) == 3 {
		fields = append(fields, "0")
	}
	n, err := fmt.Sscanf(
		strings.Join(fields, " "), "%d %d %d %d",
		&p.Width, &p.Height, &p.MineCount, &s,
	)
	if n != 4 || err != nil || (s != 0 && s != 1) {
		return nil, fmt.Errorf(
			`%w: cannot parse "%s" as width:height:mines[:safe]`,
			ErrInvalidConfig, str,
		)
	}
	p.SafeStart = s == 1
	return p, p.Validate()
}

func (p GameParams) InBounds(c Coord) bool {
	return 0 <= c.X && c.X < p.Width && 0 <= c.Y && c.Y < p.Height
}

// Capacity is the largest mine count the params admit. With a safe start
// the whole 3x3 block around the first click has to stay clear.
func (p GameParams) Capacity() int {
	capacity := p.Width * p.Height
	if p.SafeStart {
		capacity -= min(3, p.Width) * min(3, p.Height)
	}
	return capacity
}

func (p GameParams) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf(
			"%w: cannot create a %dx%d board", ErrInvalidConfig, p.Width, p.Height,
		)
	case p.Width > MaxCells/p.Height:
		return fmt.Errorf(
			"%w: a %dx%d board exceeds %d cells",
			ErrInvalidConfig, p.Width, p.Height, MaxCells,
		)
	case p.MineCount < 0:
		return fmt.Errorf(
			"%w: negative mine count %d", ErrInvalidConfig, p.MineCount,
		)
	case p.MineCount > p.Capacity():
		return fmt.Errorf(
			"%w: not enough room for %d mines on a %dx%d board (at most %d)",
			ErrInvalidConfig, p.MineCount, p.Width, p.Height, p.Capacity(),
		)
	}
	return nil
}

// NewRand returns the random source for a board built from p: seeded from
// p.Seed when set, from a fresh random seed otherwise.
func NewRand(p GameParams) *rand.Rand {
	if p.Seed != nil {
		return rand.New(rand.NewPCG(*p.Seed, *p.Seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}
