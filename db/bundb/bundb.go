package bundb

import (
	"context"
	"database/sql"
	"fmt"

	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
	"github.com/rosterhq/roster-import/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewBunDB opens a Postgres connection pool, verifies it, and wraps it in a
// bun.DB with the module models registered.
func NewBunDB(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(&importdb.Player{})
	db.RegisterModel(&importdb.ImportAudit{})
	db.RegisterModel(&importdb.ImportRowAudit{})

	return db, nil
}
