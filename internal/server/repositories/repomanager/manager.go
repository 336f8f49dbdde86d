package repomanager

import (
	"context"
	"database/sql"

	"github.com/dpetrovs/todomood/internal/dbx"
	"github.com/dpetrovs/todomood/internal/server/repositories/moods"
	"github.com/dpetrovs/todomood/internal/server/repositories/todos"
	"github.com/dpetrovs/todomood/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to the given
// DBTX, so the same repository code runs against *sql.DB and *sql.Tx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
	Moods(db dbx.DBTX) moods.Repository
}
