package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type NewGameDTO struct {
	Preset    string  `schema:"preset"`
	Width     int     `schema:"width"`
	Height    int     `schema:"height"`
	MineCount int     `schema:"mine_count"`
	Seed      *uint64 `schema:"seed"`
	SafeStart *bool   `schema:"safe_start"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Params resolves the requested board. A preset wins over explicit sizes;
// safe start falls back to the server default.
func (dto NewGameDTO) Params(board *config.Board) (mines.GameParams, error) {
	safeStart := board.SafeStart
	if dto.SafeStart != nil {
		safeStart = *dto.SafeStart
	}

	var params mines.GameParams
	if dto.Preset != "" {
		preset, ok := board.Presets.Get(dto.Preset)
		if !ok {
			return params, fmt.Errorf("%w: unknown preset %q", mines.ErrInvalidConfig, dto.Preset)
		}
		params = preset.Params(safeStart)
	} else {
		params = mines.GameParams{
			Width:     dto.Width,
			Height:    dto.Height,
			MineCount: dto.MineCount,
			SafeStart: safeStart,
		}
	}
	params.Seed = dto.Seed

	if err := params.Validate(); err != nil {
		return params, err
	}
	if board.MaxCells > 0 && params.Width*params.Height > board.MaxCells {
		return params, fmt.Errorf(
			"%w: boards are limited to %d cells", mines.ErrInvalidConfig, board.MaxCells,
		)
	}
	return params, nil
}

type Position struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (mines.Coord, error) {
	var pos Position
	if err := decoder.Decode(&pos, src); err != nil {
		return mines.Coord{}, err
	}
	return mines.Coord{X: pos.X, Y: pos.Y}, nil
}

type GameMove uint8

const (
	Open GameMove = iota + 1
	Flag
	Chord
)

func (m GameMove) String() string {
	switch m {
	case Open:
		return "open"
	case Flag:
		return "flag"
	case Chord:
		return "chord"
	default:
		return "unknown"
	}
}

var ErrBadMove = fmt.Errorf("move must be one of 'open', 'flag', 'chord'")

func ParseGameMove(s string) (GameMove, error) {
	switch strings.ToLower(s) {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	case "chord":
		return Chord, nil
	default:
		return 0, ErrBadMove
	}
}

type GameSessionDTO struct {
	GameSessionId string           `json:"game_session_id"`
	Grid          mines.PlayerGrid `json:"grid"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	MineCount     int              `json:"mine_count"`
	SafeStart     bool             `json:"safe_start"`
	Dead          bool             `json:"dead"`
	Won           bool             `json:"won"`
	FlagsLeft     int              `json:"flags_left"`
	StartedAt     int64            `json:"started_at"`
	EndedAt       *int64           `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(s session.Snapshot) *GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(s.Id, 10),
		Grid:          s.Grid,
		Width:         s.Params.Width,
		Height:        s.Params.Height,
		MineCount:     s.Params.MineCount,
		SafeStart:     s.Params.SafeStart,
		Dead:          s.Dead,
		Won:           s.Won,
		FlagsLeft:     s.FlagsLeft,
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}

type NewGameResponseDTO struct {
	*GameSessionDTO
	Token string `json:"token"`
}

type MoveDTO struct {
	Move      string          `json:"move"`
	Outcome   string          `json:"outcome"`
	Uncovered []mines.Coord   `json:"uncovered"`
	Exploded  *mines.Coord    `json:"exploded,omitempty"`
	Session   *GameSessionDTO `json:"session"`
}
