package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// ErrDuplicateRecord is returned when a session has already been recorded.
var ErrDuplicateRecord = errors.New("record already exists")

type Record struct {
	RecordId      int64
	GameSessionId int64
	InstanceId    string
	Width         int
	Height        int
	MineCount     int
	SafeStart     bool
	StartedAt     time.Time
	EndedAt       time.Time
	CreatedAt     time.Time
}

type CreateRecordParams struct {
	GameSessionId int64
	InstanceId    string
	Params        mines.GameParams
	StartedAt     time.Time
	EndedAt       time.Time
}

func (q Queries) CreateRecord(ctx context.Context, params CreateRecordParams) (*Record, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO record (
			game_session_id, instance_id, width, height, mine_count,
			safe_start, started_at, ended_at
		)
		VALUES (
			@game_session_id, @instance_id, @width, @height, @mine_count,
			@safe_start, @started_at, @ended_at
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"game_session_id": params.GameSessionId,
			"instance_id":     params.InstanceId,
			"width":           params.Params.Width,
			"height":          params.Params.Height,
			"mine_count":      params.Params.MineCount,
			"safe_start":      params.Params.SafeStart,
			"started_at":      params.StartedAt,
			"ended_at":        params.EndedAt,
		},
	)
	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Record])
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, ErrDuplicateRecord
	}
	return record, err
}

type Highscore struct {
	GameSessionId int64   `json:"game_session_id"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MineCount     int     `json:"mine_count"`
	SafeStart     bool    `json:"safe_start"`
	PlaytimeMs    float64 `json:"playtime_ms"`
	EndedAt       int64   `json:"ended_at"`
}

type HighscoreFilter struct {
	Params *mines.GameParams
	Limit  int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Params != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mine_count",
			"safe_start = @safe_start",
		)
		args["width"] = f.Params.Width
		args["height"] = f.Params.Height
		args["mine_count"] = f.Params.MineCount
		args["safe_start"] = f.Params.SafeStart
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetHighscores(ctx context.Context, filter HighscoreFilter) ([]Highscore, error) {
	query := `
	SELECT
		game_session_id,
		width,
		height,
		mine_count,
		safe_start,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms,
		(extract('epoch' from ended_at) * 1000)::bigint ended_at
	FROM record`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY playtime_ms"

	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
