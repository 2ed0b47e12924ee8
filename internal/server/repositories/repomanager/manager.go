package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkalvans/cinetrack/internal/dbx"
	"github.com/mkalvans/cinetrack/internal/server/repositories/credentials"
	"github.com/mkalvans/cinetrack/internal/server/repositories/favorites"
	"github.com/mkalvans/cinetrack/internal/server/repositories/progress"
	"github.com/mkalvans/cinetrack/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	Progress(db dbx.DBTX) progress.Repository
	Favorites(db dbx.DBTX) favorites.Repository
}
