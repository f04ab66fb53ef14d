package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/coordinators"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/events"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/registrations"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/roles"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so that the same
// code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Roles(db dbx.DBTX) roles.Repository
	Events(db dbx.DBTX) events.Repository
	Registrations(db dbx.DBTX) registrations.Repository
	Coordinators(db dbx.DBTX) coordinators.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
