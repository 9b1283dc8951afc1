// Package db wires the server's repositories to a shared database handle
// and runs schema migrations on startup.
package db

import (
	"context"
	"database/sql"

	"github.com/todovault/todovault/internal/server/todos"
	"github.com/todovault/todovault/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Todos() todos.Repository
}
