package importservice

import (
	"context"

	"github.com/google/uuid"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
	"github.com/rosterhq/roster-import/internal/results"
	"github.com/uptrace/bun"
)

// GetImport returns one import audit with its row entries. Lookups are scoped
// to the club, so an import belonging to another club reads as not found.
func (s *ImportService) GetImport(ctx context.Context, clubID, importID uuid.UUID) (*importdb.ImportAudit, error) {
	getTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*importdb.ImportAudit, error], error) {
		audit, err := s.repo.GetImportAudit(ctx, db, clubID, importID)
		if err != nil {
			return results.OperationResult[*importdb.ImportAudit, error]{}, err
		}
		return results.SuccessResult[*importdb.ImportAudit, error](audit), nil
	}

	result, err := withTelemetry(s, ctx, "GetImport", importID.String(), func(ctx context.Context) (results.OperationResult[*importdb.ImportAudit, error], error) {
		return runInTx(s, ctx, getTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}
