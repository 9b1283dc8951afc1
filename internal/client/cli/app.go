// Package cli implements the interactive TodoVault client: a small REPL
// over the session and task services, working against either the embedded
// sqlite store or the remote HTTP API.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/todovault/todovault/internal/client/api"
	"github.com/todovault/todovault/internal/client/config"
	"github.com/todovault/todovault/internal/client/localauth"
	"github.com/todovault/todovault/internal/client/repositories/settings"
	todorepo "github.com/todovault/todovault/internal/client/repositories/todos"
	userrepo "github.com/todovault/todovault/internal/client/repositories/users"
	"github.com/todovault/todovault/internal/client/session"
	"github.com/todovault/todovault/internal/client/store"
	"github.com/todovault/todovault/internal/client/tasks"
	"github.com/todovault/todovault/internal/filex"
	"github.com/todovault/todovault/internal/logging"
)

// dataDirName is where a bare database filename is placed, relative to the
// working directory.
const dataDirName = "data"

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	session *session.Service
	tasks   *tasks.Service
	admin   *session.Admin
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(sl)

	dbPath, err := resolveDatabasePath(c.DatabasePath)
	if err != nil {
		return nil, err
	}

	db, err := store.InitDatabase(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	settingsRepo := settings.NewSQLiteRepository(db)

	var auth session.Authenticator
	var taskStore tasks.Store
	var admin *session.Admin

	switch c.Backend {
	case config.BackendRemote:
		client := api.NewClient(ctx, c.ServerEndpointAddr, settingsRepo)
		auth = client
		taskStore = client
	default:
		auth = localauth.NewService(db)
		taskStore = todorepo.NewSQLiteRepository(db)
	}

	sessions := session.NewService(auth, settingsRepo, logger)
	taskService := tasks.NewService(taskStore, logger)

	// maintenance commands work directly on local rows, so they exist
	// only for the embedded backend
	if c.AdminEnabled && c.Backend != config.BackendRemote {
		admin = session.NewAdmin(userrepo.NewSQLiteRepository(db), todorepo.NewSQLiteRepository(db), sessions)
	}

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		session: sessions,
		tasks:   taskService,
		admin:   admin,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// resolveDatabasePath keeps explicit paths and :memory: as given; a bare
// filename lands in the data subdirectory, created on first run.
func resolveDatabasePath(path string) (string, error) {
	if path == ":memory:" || filepath.Dir(path) != "." {
		return path, nil
	}
	dir, err := filex.EnsureSubDir(dataDirName)
	if err != nil {
		return "", fmt.Errorf("error preparing data directory: %w", err)
	}
	return filepath.Join(dir, path), nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) adminEnabled() bool {
	return a.admin != nil
}

// Run restores any persisted session, then drops into the REPL. The
// database handle is closed on the way out.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.session.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err.Error())
	}
	if user := a.session.CurrentUser(); user != nil {
		if err := a.tasks.SetUser(ctx, user); err != nil {
			a.logger.Warn(ctx, "task load failed", "error", err.Error())
		}
	}

	a.Root(ctx)
}
