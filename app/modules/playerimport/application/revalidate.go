package importservice

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	"github.com/rosterhq/roster-import/internal/results"
	"github.com/uptrace/bun"
)

// Revalidate re-runs every check over caller-supplied rows. Client-side edits
// arrive with stale errors, warnings, and duplicate flags; all of them are
// recomputed from scratch so the caller can never smuggle a row past
// validation by clearing its error list.
func (s *ImportService) Revalidate(ctx context.Context, clubID uuid.UUID, rows []*importdomain.ImportRow) (*importdomain.ValidationSummary, error) {
	revalidateTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*importdomain.ValidationSummary, error], error) {
		return s.revalidateLogic(ctx, db, clubID, rows)
	}

	result, err := withTelemetry(s, ctx, "Revalidate", clubID.String(), func(ctx context.Context) (results.OperationResult[*importdomain.ValidationSummary, error], error) {
		return runInTx(s, ctx, revalidateTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// revalidateLogic contains the core logic.
func (s *ImportService) revalidateLogic(ctx context.Context, db bun.IDB, clubID uuid.UUID, rows []*importdomain.ImportRow) (results.OperationResult[*importdomain.ValidationSummary, error], error) {
	if len(rows) > s.limits.MaxRows {
		return results.FailureResult[*importdomain.ValidationSummary, error](
			fmt.Errorf("%w: limit is %d rows", ErrTooManyRows, s.limits.MaxRows),
		), nil
	}

	// Duplicate detection is order-sensitive; restore file order regardless
	// of how the caller shuffled the rows.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].RowNumber < rows[j].RowNumber })

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return results.OperationResult[*importdomain.ValidationSummary, error]{}, err
		}
		row.ClearResults()
	}

	if err := s.runChecks(ctx, db, clubID, rows); err != nil {
		return results.OperationResult[*importdomain.ValidationSummary, error]{}, err
	}

	// An edit that invalidated a row also unmarks it; marking valid rows
	// back on stays a caller decision.
	for _, row := range rows {
		row.IsMarkedForImport = row.IsMarkedForImport && row.IsValid()
	}

	summary := importdomain.BuildSummary(rows, nil, nil)
	s.recordRowMetrics(ctx, summary)

	s.logger.InfoContext(ctx, "Rows revalidated",
		slog.Int("total_rows", summary.TotalRows),
		slog.Int("valid_rows", summary.ValidCount),
		slog.Int("error_rows", summary.ErrorCount),
	)

	return results.SuccessResult[*importdomain.ValidationSummary, error](summary), nil
}
