package importdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	ListPlayersByClubFn func(ctx context.Context, db bun.IDB, clubID uuid.UUID) ([]*Player, error)
	InsertPlayersFn     func(ctx context.Context, db bun.IDB, players []*Player) error
	CreateImportAuditFn func(ctx context.Context, db bun.IDB, audit *ImportAudit) error
	UpdateImportAuditFn func(ctx context.Context, db bun.IDB, audit *ImportAudit) error
	InsertRowAuditsFn   func(ctx context.Context, db bun.IDB, rows []*ImportRowAudit) error
	GetImportAuditFn    func(ctx context.Context, db bun.IDB, clubID, importID uuid.UUID) (*ImportAudit, error)
}

func (f *FakeRepository) ListPlayersByClub(ctx context.Context, db bun.IDB, clubID uuid.UUID) ([]*Player, error) {
	if f.ListPlayersByClubFn != nil {
		return f.ListPlayersByClubFn(ctx, db, clubID)
	}
	return nil, nil
}

func (f *FakeRepository) InsertPlayers(ctx context.Context, db bun.IDB, players []*Player) error {
	if f.InsertPlayersFn != nil {
		return f.InsertPlayersFn(ctx, db, players)
	}
	return nil
}

func (f *FakeRepository) CreateImportAudit(ctx context.Context, db bun.IDB, audit *ImportAudit) error {
	if f.CreateImportAuditFn != nil {
		return f.CreateImportAuditFn(ctx, db, audit)
	}
	return nil
}

func (f *FakeRepository) UpdateImportAudit(ctx context.Context, db bun.IDB, audit *ImportAudit) error {
	if f.UpdateImportAuditFn != nil {
		return f.UpdateImportAuditFn(ctx, db, audit)
	}
	return nil
}

func (f *FakeRepository) InsertRowAudits(ctx context.Context, db bun.IDB, rows []*ImportRowAudit) error {
	if f.InsertRowAuditsFn != nil {
		return f.InsertRowAuditsFn(ctx, db, rows)
	}
	return nil
}

func (f *FakeRepository) GetImportAudit(ctx context.Context, db bun.IDB, clubID, importID uuid.UUID) (*ImportAudit, error) {
	if f.GetImportAuditFn != nil {
		return f.GetImportAuditFn(ctx, db, clubID, importID)
	}
	return nil, ErrNotFound
}
