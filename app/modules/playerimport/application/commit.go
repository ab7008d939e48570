package importservice

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
	"github.com/rosterhq/roster-import/internal/results"
	"github.com/uptrace/bun"
)

// Commit persists marked rows as players, all-or-nothing. Every submitted row
// is re-validated server-side first; client validity flags are never trusted.
// If any row fails validation, no players are written, but the audit header
// and one row audit per submitted row are still recorded, and the commit is
// rejected with ErrCommitRejected.
//
// The audit header is created in PROCESSING before the transaction so the
// attempt is durable even if the transaction itself fails; every exit path
// moves it to a terminal status.
func (s *ImportService) Commit(ctx context.Context, clubID, actingUser uuid.UUID, fileName string, rows []*importdomain.ImportRow) (*importdomain.ImportResult, error) {
	result, err := withTelemetry(s, ctx, "CommitImport", clubID.String(), func(ctx context.Context) (results.OperationResult[*importdomain.ImportResult, error], error) {
		return s.commitLogic(ctx, clubID, actingUser, fileName, rows)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// commitLogic contains the core logic. It manages the transaction itself
// rather than going through runInTx because the audit header must straddle
// the transaction boundary.
func (s *ImportService) commitLogic(ctx context.Context, clubID, actingUser uuid.UUID, fileName string, rows []*importdomain.ImportRow) (results.OperationResult[*importdomain.ImportResult, error], error) {
	fail := results.FailureResult[*importdomain.ImportResult, error]

	if len(rows) == 0 {
		return fail(fmt.Errorf("%w: no rows submitted", ErrCommitRejected)), nil
	}
	if len(rows) > s.limits.MaxRows {
		return fail(fmt.Errorf("%w: limit is %d rows", ErrTooManyRows, s.limits.MaxRows)), nil
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].RowNumber < rows[j].RowNumber })

	for _, row := range rows {
		row.ClearResults()
		s.validator.Validate(row)
	}
	markInFileDuplicates(rows)

	invalidCount := 0
	markedCount := 0
	for _, row := range rows {
		if !row.IsValid() {
			invalidCount++
			continue
		}
		if row.IsMarkedForImport {
			markedCount++
		}
	}

	audit := &importdb.ImportAudit{
		ID:        uuid.New(),
		ClubID:    clubID,
		FileName:  fileName,
		Status:    importdb.ImportStatusProcessing,
		TotalRows: len(rows),
		CreatedBy: actingUser,
	}
	if err := s.repo.CreateImportAudit(ctx, nil, audit); err != nil {
		return results.OperationResult[*importdomain.ImportResult, error]{}, err
	}

	txErr := s.runCommitTx(ctx, func(ctx context.Context, db bun.IDB) error {
		return s.writeCommit(ctx, db, audit, actingUser, rows, invalidCount, markedCount)
	})
	if txErr != nil {
		s.failAudit(ctx, audit, txErr)
		s.recordCommitOutcome(ctx, "failed")
		return results.OperationResult[*importdomain.ImportResult, error]{}, txErr
	}

	if invalidCount > 0 {
		s.logger.WarnContext(ctx, "Import commit rejected",
			slog.String("import_id", audit.ID.String()),
			slog.Int("invalid_rows", invalidCount),
			slog.Int("total_rows", len(rows)),
		)
		s.recordCommitOutcome(ctx, "rejected")
		return fail(fmt.Errorf("%w: %d of %d rows failed validation", ErrCommitRejected, invalidCount, len(rows))), nil
	}

	s.logger.InfoContext(ctx, "Import committed",
		slog.String("import_id", audit.ID.String()),
		slog.Int("created_players", markedCount),
		slog.Int("skipped_rows", len(rows)-markedCount),
	)
	s.recordCommitOutcome(ctx, "completed")

	return results.SuccessResult[*importdomain.ImportResult, error](&importdomain.ImportResult{
		ImportID:     audit.ID.String(),
		CreatedCount: markedCount,
		SkippedCount: len(rows) - markedCount,
		FailedCount:  0,
	}), nil
}

// writeCommit performs the single transaction of a commit: players (only when
// every row is valid), the row audits, and the header's terminal update.
func (s *ImportService) writeCommit(ctx context.Context, db bun.IDB, audit *importdb.ImportAudit, actingUser uuid.UUID, rows []*importdomain.ImportRow, invalidCount, markedCount int) error {
	anyInvalid := invalidCount > 0

	players := make([]*importdb.Player, 0, markedCount)
	rowAudits := make([]*importdb.ImportRowAudit, 0, len(rows))

	for _, row := range rows {
		rowAudit := &importdb.ImportRowAudit{
			ID:        uuid.New(),
			ImportID:  audit.ID,
			RowNumber: row.RowNumber,
			RawData:   importdb.TruncateRawData(rawDataFor(row)),
		}

		switch {
		case !row.IsValid():
			rowAudit.ErrorMessage = strings.Join(row.Errors, "; ")
		case !row.IsMarkedForImport:
			rowAudit.ErrorMessage = "row not marked for import"
		case anyInvalid:
			rowAudit.ErrorMessage = "import rejected because other rows failed validation"
		default:
			player := playerFromRow(row, audit.ClubID, actingUser)
			players = append(players, player)
			rowAudit.Success = true
			rowAudit.PlayerID = &player.ID
		}

		rowAudits = append(rowAudits, rowAudit)
	}

	if len(players) > 0 {
		if err := s.repo.InsertPlayers(ctx, db, players); err != nil {
			return err
		}
	}
	if err := s.repo.InsertRowAudits(ctx, db, rowAudits); err != nil {
		return err
	}

	now := time.Now().UTC()
	audit.Status = importdb.ImportStatusCompleted
	audit.CompletedAt = &now
	if anyInvalid {
		audit.SuccessfulRows = 0
		audit.FailedRows = invalidCount
		audit.ErrorMessage = fmt.Sprintf("%d of %d rows failed validation; no players were imported", invalidCount, len(rows))
	} else {
		audit.SuccessfulRows = markedCount
		audit.FailedRows = 0
	}
	return s.repo.UpdateImportAudit(ctx, db, audit)
}

// runCommitTx runs fn inside a transaction, or directly when no database is
// configured (fakes in tests).
func (s *ImportService) runCommitTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

// failAudit best-effort moves the header out of PROCESSING after a
// transaction error. Its own failure is logged, not propagated; the caller
// already has the original error.
func (s *ImportService) failAudit(ctx context.Context, audit *importdb.ImportAudit, cause error) {
	now := time.Now().UTC()
	audit.Status = importdb.ImportStatusFailed
	audit.CompletedAt = &now
	audit.ErrorMessage = cause.Error()

	if err := s.repo.UpdateImportAudit(context.WithoutCancel(ctx), nil, audit); err != nil {
		s.logger.ErrorContext(ctx, "Failed to mark import audit as failed",
			slog.String("import_id", audit.ID.String()),
			slog.Any("error", err),
		)
	}
}

func (s *ImportService) recordCommitOutcome(ctx context.Context, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordCommitOutcome(ctx, outcome)
}

// playerFromRow builds the persisted player for a valid, marked row. Validity
// is established before this is called, so the required pointers are set.
func playerFromRow(row *importdomain.ImportRow, clubID, actingUser uuid.UUID) *importdb.Player {
	return &importdb.Player{
		ID:             uuid.New(),
		ClubID:         clubID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		DateOfBirth:    *row.DateOfBirth,
		Gender:         string(*row.Gender),
		GraduationYear: *row.GraduationYear,
		JerseyNumber:   row.JerseyNumber,
		TryoutNumber:   row.TryoutNumber,
		CreatedBy:      actingUser,
	}
}

// rawDataFor reconstructs the audit snapshot of a row. Rows that came through
// the file reader keep their original cells; rows recreated client-side fall
// back to the typed fields.
func rawDataFor(row *importdomain.ImportRow) string {
	if len(row.RawCells) > 0 {
		return strings.Join(row.RawCells, ",")
	}

	parts := []string{row.FirstName, row.LastName}
	if row.DateOfBirth != nil {
		parts = append(parts, row.DateOfBirth.Format("2006-01-02"))
	}
	if row.Gender != nil {
		parts = append(parts, string(*row.Gender))
	}
	return strings.Join(parts, ",")
}
