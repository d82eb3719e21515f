package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrUnauthorized = errors.New("missing or invalid session token")
)

type GameHandler struct {
	logger *slog.Logger
	store  *session.Store
	repo   *repository.Queries
	tokens *config.Tokens
	ws     *config.WebSocket
	board  *config.Board
}

// NewGameHandler wires the game routes. repo may be nil, in which case
// finished games are not recorded and highscores are unavailable.
func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	repo *repository.Queries,
	tokens *config.Tokens,
	ws *config.WebSocket,
	board *config.Board,
) *GameHandler {
	handler := &GameHandler{
		logger: logger,
		store:  store,
		repo:   repo,
		tokens: tokens,
		ws:     ws,
		board:  board,
	}

	return handler
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	params, err := dto.Params(g.board)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	board, err := mines.NewBoard(params, nil)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s := g.store.Create(board)
	token, err := g.tokens.Sign(g.store.InstanceId, s.Id)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to sign session token", "error", err)
		return
	}

	g.logger.Debug("created game session",
		slog.Int64("id", s.Id), slog.String("params", params.String()))

	SendJSONOrLog(w, g.logger, NewGameResponseDTO{
		GameSessionDTO: NewGameSessionDTO(s.Snapshot()),
		Token:          token,
	})
}

func (g GameHandler) sessionFromPath(r *http.Request) (*session.Session, int, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("invalid game session id")
	}
	s, err := g.store.Get(id)
	if err != nil {
		return nil, http.StatusNotFound, err
	}
	return s, http.StatusOK, nil
}

// authorize checks that the request carries a token issued for s by this
// process.
func (g GameHandler) authorize(r *http.Request, s *session.Session) error {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return ErrUnauthorized
	}
	claims, err := g.tokens.Parse(token)
	if err != nil ||
		claims.InstanceId != g.store.InstanceId ||
		claims.GameSessionId != s.Id {
		return ErrUnauthorized
	}
	return nil
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, status, err := g.sessionFromPath(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, status, err)
		return
	}

	SendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()))
}

func applyMove(b *mines.Board, move GameMove, pos mines.Coord) (MoveDTO, error) {
	dto := MoveDTO{Move: move.String(), Uncovered: []mines.Coord{}}
	if b.Over() {
		return dto, ErrGameOver
	}

	var (
		res mines.RevealResult
		err error
	)
	switch move {
	case Open:
		res, err = b.Reveal(pos)
	case Chord:
		res, err = b.Chord(pos)
	case Flag:
		var outcome mines.FlagOutcome
		outcome, err = b.ToggleFlag(pos)
		dto.Outcome = outcome.String()
		return dto, err
	}
	if err != nil {
		return dto, err
	}

	dto.Outcome = res.Outcome.String()
	if res.Uncovered != nil {
		dto.Uncovered = res.Uncovered
	}
	if res.Outcome == mines.RevealHitMine {
		exploded := res.Exploded
		dto.Exploded = &exploded
	}
	return dto, nil
}

func moveStatus(err error) int {
	switch {
	case errors.Is(err, ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, mines.ErrInvalidCoordinate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, status, err := g.sessionFromPath(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, status, err)
		return
	}

	if err := g.authorize(r, s); err != nil {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, err)
		return
	}

	var dto MoveDTO
	err = s.Do(func(b *mines.Board) (err error) {
		dto, err = applyMove(b, move, pos)
		return err
	})
	if err != nil {
		SendErrorOrLog(w, g.logger, moveStatus(err), err)
		return
	}

	snapshot := s.Snapshot()
	g.recordIfWon(r.Context(), snapshot)

	dto.Session = NewGameSessionDTO(snapshot)
	SendJSONOrLog(w, g.logger, dto)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, status, err := g.sessionFromPath(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, status, err)
		return
	}

	if err := g.authorize(r, s); err != nil {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, err)
		return
	}

	_ = s.Do(func(b *mines.Board) error {
		b.Forfeit()
		return nil
	})

	SendJSONOrLog(w, g.logger, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) Presets(w http.ResponseWriter, r *http.Request) {
	SendJSONOrLog(w, g.logger, g.board.Presets)
}

// recordIfWon stores a won game. Storing is best effort: failures are
// logged and never reach the player.
func (g GameHandler) recordIfWon(ctx context.Context, s session.Snapshot) {
	if g.repo == nil || !s.Won || s.EndedAt == nil {
		return
	}
	_, err := g.repo.CreateRecord(ctx, repository.CreateRecordParams{
		GameSessionId: s.Id,
		InstanceId:    g.store.InstanceId,
		Params:        s.Params,
		StartedAt:     s.StartedAt,
		EndedAt:       *s.EndedAt,
	})
	if errors.Is(err, repository.ErrDuplicateRecord) {
		g.logger.Debug("game session already recorded", slog.Int64("id", s.Id))
		return
	}
	if err != nil {
		g.logger.Error("unable to store record", slog.Int64("id", s.Id), slog.Any("error", err))
	}
}
