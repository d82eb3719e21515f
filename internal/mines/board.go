package mines

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

type RevealOutcome uint8

const (
	RevealUncovered RevealOutcome = iota
	RevealAlreadyUncovered
	RevealFlagged
	RevealHitMine
	RevealGameOver
)

func (o RevealOutcome) String() string {
	switch o {
	case RevealUncovered:
		return "uncovered"
	case RevealAlreadyUncovered:
		return "already_uncovered"
	case RevealFlagged:
		return "flagged"
	case RevealHitMine:
		return "hit_mine"
	case RevealGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// RevealResult describes what a reveal did. Uncovered lists every safe
// square that went from covered to uncovered during the call, each once.
// Exploded is only meaningful when Outcome is RevealHitMine.
type RevealResult struct {
	Outcome   RevealOutcome
	Uncovered []Coord
	Exploded  Coord
}

type FlagOutcome uint8

const (
	FlagPlaced FlagOutcome = iota
	FlagRemoved
	FlagRejected
)

func (o FlagOutcome) String() string {
	switch o {
	case FlagPlaced:
		return "flagged"
	case FlagRemoved:
		return "unflagged"
	case FlagRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Board is one play session: a Grid plus the player's RevealState. It is
// not safe for concurrent use; callers serialise access.
type Board struct {
	params GameParams
	grid   *Grid
	state  *RevealState
	rnd    *rand.Rand

	started        bool
	dead, hitMine  bool
	exploded       Coord
	flags          int
	uncoveredSafe  int
	safeCellsTotal int
}

// NewBoard builds a fresh grid from p. A nil r is replaced by NewRand(p).
func NewBoard(p GameParams, r *rand.Rand) (*Board, error) {
	if r == nil {
		r = NewRand(p)
	}
	grid, err := NewGrid(p, r)
	if err != nil {
		return nil, err
	}
	return newBoard(p, grid, r), nil
}

// NewBoardFromGrid starts a session on an existing grid. The grid itself is
// never modified, so it may back any number of boards.
func NewBoardFromGrid(grid *Grid, safeStart bool, r *rand.Rand) (*Board, error) {
	p := GameParams{
		Width:     grid.width,
		Height:    grid.height,
		MineCount: grid.MineCount(),
		SafeStart: safeStart,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand(p)
	}
	return newBoard(p, grid, r), nil
}

func newBoard(p GameParams, grid *Grid, r *rand.Rand) *Board {
	return &Board{
		params:         p,
		grid:           grid,
		state:          NewRevealState(grid.width, grid.height),
		rnd:            r,
		safeCellsTotal: len(grid.cells) - p.MineCount,
	}
}

func (b *Board) Params() GameParams { return b.params }

// Grid returns the current content. Before the first reveal of a safe-start
// board the mines may still move.
func (b *Board) Grid() *Grid { return b.grid }

// State returns a snapshot of the player's progress.
func (b *Board) State() *RevealState { return b.state.Clone() }

func (b *Board) Won() bool  { return !b.dead && b.uncoveredSafe == b.safeCellsTotal }
func (b *Board) Lost() bool { return b.dead }
func (b *Board) Over() bool { return b.Won() || b.Lost() }

// Exploded reports the mine that ended the game, if any.
func (b *Board) Exploded() (Coord, bool) {
	return b.exploded, b.hitMine
}

func (b *Board) FlagsLeft() int {
	return b.params.MineCount - b.flags
}

func (b *Board) checkBounds(c Coord) error {
	if !b.grid.InBounds(c) {
		return fmt.Errorf(
			"%w: %s on a %dx%d board",
			ErrInvalidCoordinate, c, b.grid.width, b.grid.height,
		)
	}
	return nil
}

// Reveal opens the square at c. Uncovered and flagged squares report
// RevealAlreadyUncovered and RevealFlagged whether or not the game is over;
// a covered square on a finished board reports RevealGameOver.
func (b *Board) Reveal(c Coord) (RevealResult, error) {
	if err := b.checkBounds(c); err != nil {
		return RevealResult{}, err
	}
	switch b.state.At(c) {
	case Uncovered:
		return RevealResult{Outcome: RevealAlreadyUncovered}, nil
	case Flagged:
		return RevealResult{Outcome: RevealFlagged}, nil
	}
	if b.Over() {
		return RevealResult{Outcome: RevealGameOver}, nil
	}

	if !b.started {
		b.started = true
		if b.params.SafeStart {
			b.grid = b.grid.withoutMinesAround(c, b.rnd)
		}
	}

	return b.open(c), nil
}

// open uncovers a covered square, flooding outwards through empty squares.
func (b *Board) open(c Coord) RevealResult {
	if b.grid.At(c) == Mine {
		/*
		 * The player has landed on a mine. Expose the mine that killed
		 * them, but not the rest.
		 */
		b.state.set(c, Uncovered)
		b.dead = true
		b.hitMine = true
		b.exploded = c
		return RevealResult{Outcome: RevealHitMine, Exploded: c}
	}

	visited := make([]bool, len(b.grid.cells))
	visited[b.grid.index(c)] = true
	queue := []Coord{c}
	var uncovered []Coord

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		b.state.set(cur, Uncovered)
		uncovered = append(uncovered, cur)

		if b.grid.At(cur) != Empty {
			continue
		}
		for _, n := range b.grid.Neighbors(cur) {
			i := b.grid.index(n)
			// flags are never crossed
			if visited[i] || b.state.At(n) != Covered {
				continue
			}
			visited[i] = true
			queue = append(queue, n)
		}
	}

	b.uncoveredSafe += len(uncovered)
	return RevealResult{Outcome: RevealUncovered, Uncovered: uncovered}
}

// ToggleFlag flags a covered square or clears a flag. Uncovered squares
// and every square of a finished board are left alone with FlagRejected.
func (b *Board) ToggleFlag(c Coord) (FlagOutcome, error) {
	if err := b.checkBounds(c); err != nil {
		return FlagRejected, err
	}
	if b.Over() {
		return FlagRejected, nil
	}
	switch b.state.At(c) {
	case Covered:
		b.state.set(c, Flagged)
		b.flags++
		return FlagPlaced, nil
	case Flagged:
		b.state.set(c, Covered)
		b.flags--
		return FlagRemoved, nil
	default:
		return FlagRejected, nil
	}
}

// Chord opens every covered neighbour of an uncovered hint square once the
// player has flagged as many neighbours as the hint shows.
func (b *Board) Chord(c Coord) (RevealResult, error) {
	if err := b.checkBounds(c); err != nil {
		return RevealResult{}, err
	}
	if b.Over() {
		return RevealResult{Outcome: RevealGameOver}, nil
	}
	hint := b.grid.At(c)
	if b.state.At(c) != Uncovered || hint == Empty {
		return RevealResult{Outcome: RevealUncovered}, nil
	}

	var covered []Coord
	flags := 0
	for _, n := range b.grid.Neighbors(c) {
		switch b.state.At(n) {
		case Flagged:
			flags++
		case Covered:
			covered = append(covered, n)
		}
	}
	result := RevealResult{Outcome: RevealUncovered}
	if flags != hint.Hint() {
		return result, nil
	}

	for _, n := range covered {
		// an earlier neighbour's cascade may already have opened it
		if b.state.At(n) != Covered {
			continue
		}
		if b.Won() {
			break
		}
		r := b.open(n)
		result.Uncovered = append(result.Uncovered, r.Uncovered...)
		if r.Outcome == RevealHitMine {
			result.Outcome = RevealHitMine
			result.Exploded = r.Exploded
			return result, nil
		}
	}
	return result, nil
}

// Forfeit ends an unfinished game as lost.
func (b *Board) Forfeit() {
	if !b.Over() {
		b.dead = true
	}
}
