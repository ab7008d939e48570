package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"testing"
	"time"

	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
	importmigrations "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories/migrations"
	"github.com/rosterhq/roster-import/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// TestEnvironment owns one Postgres container and a migrated bun.DB shared by
// every test in a package.
type TestEnvironment struct {
	Ctx       context.Context
	DB        *bun.DB
	container *postgres.PostgresContainer
}

// NewTestEnvironment starts Postgres, connects, and applies migrations.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	t.Helper()

	ctx := context.Background()

	container, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres: %w", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.RegisterModel(&importdb.Player{})
	db.RegisterModel(&importdb.ImportAudit{})
	db.RegisterModel(&importdb.ImportRowAudit{})

	migrator := migrate.NewMigrator(db, importmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestEnvironment{
		Ctx:       ctx,
		DB:        db,
		container: container,
	}, nil
}

// Reset truncates every table so a test starts from a clean slate.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	_, err := env.DB.ExecContext(ctx,
		"TRUNCATE TABLE import_row_audits, import_audits, players")
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// Close shuts down the database and the container.
func (env *TestEnvironment) Close() {
	if env.DB != nil {
		if err := env.DB.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}
	if env.container != nil {
		if err := env.container.Terminate(context.Background()); err != nil {
			log.Printf("failed to terminate postgres container: %v", err)
		}
	}
}
