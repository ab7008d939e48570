package importservice

import (
	"context"

	"github.com/google/uuid"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
)

// Service defines the import orchestrator surface. Callers arrive already
// authenticated and authorized for the club; this layer only sequences
// parsing, validation, duplicate detection, and the commit transaction.
type Service interface {
	// ValidateUpload reads an uploaded file, resolves columns, parses and
	// validates rows, and runs duplicate detection. It never writes.
	ValidateUpload(ctx context.Context, clubID uuid.UUID, fileName string, fileData []byte) (*importdomain.ValidationSummary, error)

	// Revalidate re-runs validation and duplicate detection over
	// caller-supplied, possibly edited rows without re-reading any file.
	Revalidate(ctx context.Context, clubID uuid.UUID, rows []*importdomain.ImportRow) (*importdomain.ValidationSummary, error)

	// Commit persists marked rows as players, all-or-nothing, together with
	// a durable audit trail of the attempt.
	Commit(ctx context.Context, clubID, actingUser uuid.UUID, fileName string, rows []*importdomain.ImportRow) (*importdomain.ImportResult, error)

	// GetImport returns one import audit with its row entries, scoped to
	// the owning club.
	GetImport(ctx context.Context, clubID, importID uuid.UUID) (*importdb.ImportAudit, error)

	// GenerateTemplate produces a downloadable file with the canonical
	// headers and one example row.
	GenerateTemplate(format string) (*Template, error)
}
