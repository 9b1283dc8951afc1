// Package server initializes and runs the TodoVault API server. It wires
// the Postgres-backed services to the HTTP endpoint and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/server/config"
	"github.com/todovault/todovault/internal/server/httpapi"
	"github.com/todovault/todovault/internal/server/images"
	"github.com/todovault/todovault/internal/server/shared/db"
	"github.com/todovault/todovault/internal/server/todos"
	"github.com/todovault/todovault/internal/server/users"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	userService  *users.Service
	todoService  *todos.Service
	imageService *images.Service
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(m.Users(), c)
	ts := todos.NewService(m.Todos())
	is := images.NewService(c)

	return &App{config: c, logger: logger, userService: us, todoService: ts, imageService: is}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger,
		app.userService, app.todoService, app.imageService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
