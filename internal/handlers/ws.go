package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsChord   wsCommand = "c"
	wsForfeit wsCommand = "r"
)

var ErrUnknownCommand = errors.New("unknown command")

func parseXY(args []string) (mines.Coord, error) {
	if len(args) != 2 {
		return mines.Coord{}, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return mines.Coord{}, errors.New("first argument must be an int")
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return mines.Coord{}, errors.New("second argument must be an int")
	}
	return mines.Coord{X: x, Y: y}, nil
}

// execute applies one command line such as "o 3 4" to the board.
func execute(b *mines.Board, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]

	var move GameMove
	switch cmd {
	case wsNoop:
		return nil
	case wsForfeit:
		b.Forfeit()
		return nil
	case wsOpen:
		move = Open
	case wsFlag:
		move = Flag
	case wsChord:
		move = Chord
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}

	pos, err := parseXY(args)
	if err != nil {
		return err
	}
	_, err = applyMove(b, move, pos)
	return err
}

// executeAll runs the newline-separated commands of one frame, stopping at
// the first error or once the game is over.
func executeAll(b *mines.Board, message string) error {
	for _, line := range strings.Split(strings.TrimSpace(message), "\n") {
		if err := execute(b, strings.TrimSpace(line)); err != nil {
			return err
		}
		if b.Over() {
			break
		}
	}
	return nil
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, status, err := g.sessionFromPath(r)
	if err != nil {
		SendErrorOrLog(w, g.logger, status, err)
		return
	}

	if err := g.authorize(r, s); err != nil {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.ReadLimit)

	err = g.wsRunGameLoop(r.Context(), conn, s)
	if err != nil && !websocket.IsCloseError(
		err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
	) {
		g.logger.Warn("websocket game loop ended", slog.Int64("id", s.Id), slog.Any("error", err))
	}
}

func (g GameHandler) wsRunGameLoop(
	ctx context.Context, conn *websocket.Conn, s *session.Session,
) error {
	if err := conn.WriteJSON(NewGameSessionDTO(s.Snapshot())); err != nil {
		return err
	}
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		err = s.Do(func(b *mines.Board) error {
			return executeAll(b, string(buf))
		})
		if err != nil {
			if err := conn.WriteJSON(wrapError(err)); err != nil {
				return err
			}
			continue
		}

		snapshot := s.Snapshot()
		g.recordIfWon(ctx, snapshot)

		if err := conn.WriteJSON(NewGameSessionDTO(snapshot)); err != nil {
			return err
		}
	}
}
