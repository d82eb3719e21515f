package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/repository"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	migrations fs.FS

	repo   *repository.Queries
	store  *session.Store
	tokens *config.Tokens
	ws     *config.WebSocket
	board  *config.Board
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	app := &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}

	return app
}

// setup reads configuration and connects to the database when one is
// configured. Without a database the server still plays games.
func (a *App) setup(ctx context.Context) error {
	board, err := config.NewBoard()
	if err != nil {
		return fmt.Errorf("unable to read board config: %w", err)
	}
	a.board = board

	tokens, err := config.NewTokens()
	if err != nil {
		return fmt.Errorf("unable to read session token config: %w", err)
	}
	a.tokens = tokens

	ws, err := config.NewWebSocket()
	if err != nil {
		return fmt.Errorf("unable to read ws config: %w", err)
	}
	a.ws = ws

	a.store = session.NewStore(a.logger, board.SessionTTL)

	if !config.DatabaseConfigured() {
		a.logger.Warn("no database configured, finished games will not be recorded")
		return nil
	}
	db, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.repo = repository.New(db)

	return nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.logger),
		middleware.Cors(),
		middleware.Logging(a.logger),
	)
}

func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}

	a.loadRoutes()

	addr := config.Port()
	server := &http.Server{
		Addr:         addr,
		Handler:      a.Handler(),
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.store.Run(gCtx)
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
