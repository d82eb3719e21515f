// Package session keeps running games in memory. Every board is guarded by
// its own mutex, so moves on one session are applied one at a time while
// different sessions proceed independently.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

type Session struct {
	Id        int64
	StartedAt time.Time

	mu       sync.Mutex
	board    *mines.Board
	endedAt  *time.Time
	lastSeen time.Time
}

// Do runs f with exclusive access to the board. When the board finishes
// during f the session end time is stamped.
func (s *Session) Do(f func(b *mines.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
	err := f(s.board)
	if s.endedAt == nil && s.board.Over() {
		ended := time.Now().UTC()
		s.endedAt = &ended
	}
	return err
}

// EndedAt is nil while the game is running.
func (s *Session) EndedAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Store struct {
	// InstanceId tells records of this process apart from records written
	// by earlier runs, whose session ids started from 1 as well.
	InstanceId string

	logger *slog.Logger
	ttl    time.Duration

	mu       sync.Mutex
	nextId   int64
	sessions map[int64]*Session
}

func NewStore(logger *slog.Logger, ttl time.Duration) *Store {
	return &Store{
		InstanceId: uuid.NewString(),
		logger:     logger,
		ttl:        ttl,
		nextId:     1,
		sessions:   make(map[int64]*Session),
	}
}

func (st *Store) Create(board *mines.Board) *Session {
	now := time.Now().UTC()

	st.mu.Lock()
	defer st.mu.Unlock()

	s := &Session{
		Id:        st.nextId,
		StartedAt: now,
		board:     board,
		lastSeen:  now,
	}
	st.sessions[s.Id] = s
	st.nextId++
	return s
}

func (st *Store) Get(id int64) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep forgets sessions that have not been touched for longer than the
// store's TTL and returns how many were dropped.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	dropped := 0
	for id, s := range st.sessions {
		if now.Sub(s.idleSince()) > st.ttl {
			delete(st.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps periodically until ctx is done.
func (st *Store) Run(ctx context.Context) error {
	interval := max(st.ttl/4, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := st.Sweep(now); n > 0 {
				st.logger.Debug("dropped idle game sessions",
					slog.Int("count", n), slog.Int("remaining", st.Len()))
			}
		}
	}
}

// Snapshot is a consistent copy of a session taken under its lock.
type Snapshot struct {
	Id        int64
	Params    mines.GameParams
	Grid      mines.PlayerGrid
	Dead, Won bool
	FlagsLeft int
	StartedAt time.Time
	EndedAt   *time.Time
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Id:        s.Id,
		Params:    s.board.Params(),
		Grid:      s.board.PlayerGrid(),
		Dead:      s.board.Lost(),
		Won:       s.board.Won(),
		FlagsLeft: s.board.FlagsLeft(),
		StartedAt: s.StartedAt,
		EndedAt:   s.endedAt,
	}
}
