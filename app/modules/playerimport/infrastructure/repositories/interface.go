package importdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for import persistence. Every method takes
// an optional bun.IDB so callers can run several operations inside one
// transaction; nil falls back to the repository's default connection.
type Repository interface {
	// ListPlayersByClub returns all players currently stored for a club.
	ListPlayersByClub(ctx context.Context, db bun.IDB, clubID uuid.UUID) ([]*Player, error)

	// InsertPlayers bulk-inserts new player records.
	InsertPlayers(ctx context.Context, db bun.IDB, players []*Player) error

	// CreateImportAudit persists a new import audit header.
	CreateImportAudit(ctx context.Context, db bun.IDB, audit *ImportAudit) error

	// UpdateImportAudit updates an existing import audit header.
	UpdateImportAudit(ctx context.Context, db bun.IDB, audit *ImportAudit) error

	// InsertRowAudits bulk-inserts row-level audit records.
	InsertRowAudits(ctx context.Context, db bun.IDB, rows []*ImportRowAudit) error

	// GetImportAudit retrieves an audit with its row entries, scoped to the
	// club that owns it.
	GetImportAudit(ctx context.Context, db bun.IDB, clubID, importID uuid.UUID) (*ImportAudit, error)
}
