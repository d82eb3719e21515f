package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type openList []mines.Coord

func (o *openList) String() string {
	parts := make([]string, len(*o))
	for i, c := range *o {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func (o *openList) Set(value string) error {
	x, y, ok := strings.Cut(value, ",")
	if !ok {
		return fmt.Errorf("expected x,y, got %q", value)
	}
	cx, err := strconv.Atoi(strings.TrimSpace(x))
	if err != nil {
		return err
	}
	cy, err := strconv.Atoi(strings.TrimSpace(y))
	if err != nil {
		return err
	}
	*o = append(*o, mines.Coord{X: cx, Y: cy})
	return nil
}

var (
	presetName  string
	paramsStr   string
	seed        uint64
	presetsPath string
	noSafeStart bool
	verbose     bool
	opens       openList
)

func init() {
	flag.StringVar(&presetName, "preset", "", "preset name (overridden by -params)")
	flag.StringVar(&paramsStr, "params", "", "board as width:height:mines[:safe_start]")
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	flag.StringVar(&presetsPath, "presets", "", "path to a presets yaml file")
	flag.BoolVar(&noSafeStart, "unsafe", false, "disable safe start")
	flag.BoolVar(&verbose, "v", false, "log mine relocation")
	flag.Var(&opens, "open", "reveal x,y after generation (repeatable)")
}

func resolveParams() (mines.GameParams, error) {
	if paramsStr != "" {
		p, err := mines.ParseGameParams(paramsStr)
		if err != nil {
			return mines.GameParams{}, err
		}
		return *p, nil
	}

	presets := mines.DefaultPresets()
	if presetsPath != "" {
		f, err := os.Open(presetsPath)
		if err != nil {
			return mines.GameParams{}, err
		}
		defer f.Close()
		if presets, err = mines.LoadPresets(f); err != nil {
			return mines.GameParams{}, err
		}
	}
	name := presetName
	if name == "" {
		name = "beginner"
	}
	preset, ok := presets.Get(name)
	if !ok {
		return mines.GameParams{}, fmt.Errorf("unknown preset %q", name)
	}
	return preset.Params(!noSafeStart), nil
}

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	mines.Log = logger

	params, err := resolveParams()
	if err != nil {
		logger.Error("invalid board", slog.Any("error", err))
		os.Exit(2)
	}
	if seed != 0 {
		params.Seed = &seed
	}

	board, err := mines.NewBoard(params, nil)
	if err != nil {
		logger.Error("unable to create board", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("generated board", slog.String("params", params.String()))
	fmt.Print(board.Grid())

	if len(opens) == 0 {
		return
	}
	for _, c := range opens {
		res, err := board.Reveal(c)
		if err != nil {
			logger.Error("reveal failed", slog.String("at", c.String()), slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("revealed",
			slog.String("at", c.String()),
			slog.String("outcome", res.Outcome.String()),
			slog.Int("uncovered", len(res.Uncovered)))
	}

	fmt.Println()
	fmt.Print(board.Grid())
	fmt.Println()
	fmt.Print(board.PlayerGrid().ToString(params.Width))
	switch {
	case board.Won():
		fmt.Println("won")
	case board.Lost():
		fmt.Println("lost")
	}
}
