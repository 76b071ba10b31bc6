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

	"github.com/vancomm/minesweeper-server/internal/config"
	"github.com/vancomm/minesweeper-server/internal/database"
	"github.com/vancomm/minesweeper-server/internal/middleware"
	"github.com/vancomm/minesweeper-server/internal/repository"
	"github.com/vancomm/minesweeper-server/internal/service"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	config     *config.App
	store      service.Store
	jwt        *config.JWT
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	router := http.NewServeMux()

	app := &App{
		logger:     logger,
		router:     router,
		migrations: migrations,
	}

	return app
}

func (a *App) openStore(ctx context.Context) (func(), error) {
	switch a.config.Storage {
	case config.StorageMemory:
		a.logger.Warn("using in-memory storage, games are lost on exit")
		a.store = repository.NewMemory(time.Now)
		return func() {}, nil
	case config.StoragePostgres:
		db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		a.store = repository.New(db)
		return db.Close, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", a.config.Storage)
	}
}

// Handler registers the routes and wraps them in the middleware chain.
func (a *App) Handler() http.Handler {
	a.loadRoutes()

	var h http.Handler = a.router
	if a.config.BasePath != "" {
		h = http.StripPrefix(a.config.BasePath, h)
	}
	return middleware.Wrap(
		h,
		middleware.Auth(a.logger, a.jwt),
		middleware.Cors(),
		middleware.Logging(a.logger),
	)
}

func (a *App) Start(ctx context.Context) error {
	cfg, err := config.NewApp()
	if err != nil {
		return err
	}
	a.config = cfg

	closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}
	a.jwt = jwt

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", a.config.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		a.logger.Info("shutting down")
		return server.Shutdown(ctx)
	})

	return g.Wait()
}
