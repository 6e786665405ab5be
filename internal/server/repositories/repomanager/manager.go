package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/growflow/internal/dbx"
	"github.com/dmitrijs2005/growflow/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/growflow/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either a *sql.DB or a *sql.Tx,
// so a service can run several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
