package importdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new import repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// ListPlayersByClub returns all players currently stored for a club.
func (r *Impl) ListPlayersByClub(ctx context.Context, db bun.IDB, clubID uuid.UUID) ([]*Player, error) {
	db = r.resolveDB(db)
	var players []*Player
	err := db.NewSelect().
		Model(&players).
		Where("club_id = ?", clubID).
		Order("last_name", "first_name").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for club: %w", err)
	}
	return players, nil
}

// InsertPlayers bulk-inserts new player records in one statement.
func (r *Impl) InsertPlayers(ctx context.Context, db bun.IDB, players []*Player) error {
	if len(players) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(&players).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert players: %w", err)
	}
	return nil
}

// CreateImportAudit persists a new import audit header.
func (r *Impl) CreateImportAudit(ctx context.Context, db bun.IDB, audit *ImportAudit) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(audit).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create import audit: %w", err)
	}
	return nil
}

// UpdateImportAudit updates an existing import audit header.
func (r *Impl) UpdateImportAudit(ctx context.Context, db bun.IDB, audit *ImportAudit) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model(audit).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update import audit: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertRowAudits bulk-inserts row-level audit records.
func (r *Impl) InsertRowAudits(ctx context.Context, db bun.IDB, rowAudits []*ImportRowAudit) error {
	if len(rowAudits) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(&rowAudits).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert row audits: %w", err)
	}
	return nil
}

// GetImportAudit retrieves an audit with its row entries, scoped to the club
// that owns it.
func (r *Impl) GetImportAudit(ctx context.Context, db bun.IDB, clubID, importID uuid.UUID) (*ImportAudit, error) {
	db = r.resolveDB(db)
	audit := new(ImportAudit)
	err := db.NewSelect().
		Model(audit).
		Relation("Rows", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("row_number")
		}).
		Where("ia.id = ?", importID).
		Where("ia.club_id = ?", clubID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get import audit: %w", err)
	}
	return audit, nil
}
