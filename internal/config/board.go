package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Board struct {
	Presets   mines.Presets
	SafeStart bool
	// SessionTTL is how long an idle game session is kept in memory.
	SessionTTL time.Duration
	// MaxCells caps the area of boards players may request. Zero leaves
	// only mines.MaxCells.
	MaxCells int
}

func NewBoard() (*Board, error) {
	presets := mines.DefaultPresets()
	if path, ok := os.LookupEnv("BOARD_PRESETS_FILE"); ok {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("unable to open presets file: %w", err)
		}
		defer f.Close()
		presets, err = mines.LoadPresets(f)
		if err != nil {
			return nil, fmt.Errorf("unable to load presets from %s: %w", path, err)
		}
	}

	safeStart := true
	if s, ok := os.LookupEnv("BOARD_SAFE_START"); ok {
		safeStart = s != "0"
	}

	ttl := time.Hour
	if s, ok := os.LookupEnv("SESSION_TTL"); ok {
		var err error
		ttl, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
		}
	}

	maxCells := 100 * 100
	if s, ok := os.LookupEnv("BOARD_MAX_CELLS"); ok {
		var err error
		maxCells, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("unable to parse BOARD_MAX_CELLS: %w", err)
		}
		if maxCells <= 0 || maxCells > mines.MaxCells {
			return nil, fmt.Errorf(
				"BOARD_MAX_CELLS must be in 1..%d, got %d", mines.MaxCells, maxCells,
			)
		}
	}
	for _, p := range presets {
		if p.Width*p.Height > maxCells {
			return nil, fmt.Errorf(
				"preset %q has more than BOARD_MAX_CELLS=%d cells", p.Name, maxCells,
			)
		}
	}

	board := &Board{
		Presets:    presets,
		SafeStart:  safeStart,
		SessionTTL: ttl,
		MaxCells:   maxCells,
	}

	return board, nil
}
