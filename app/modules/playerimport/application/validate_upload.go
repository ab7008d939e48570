package importservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rosterhq/roster-import/app/modules/playerimport/application/readers"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	"github.com/rosterhq/roster-import/internal/results"
	"github.com/uptrace/bun"
)

// ValidateUpload reads an uploaded file and produces a ValidationSummary.
// Format problems, the empty-file case, and cap violations come back as
// domain failures; missing required columns come back as data on the summary
// so the caller can fix headers and resubmit.
func (s *ImportService) ValidateUpload(ctx context.Context, clubID uuid.UUID, fileName string, fileData []byte) (*importdomain.ValidationSummary, error) {
	validateTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*importdomain.ValidationSummary, error], error) {
		return s.validateUploadLogic(ctx, db, clubID, fileName, fileData)
	}

	result, err := withTelemetry(s, ctx, "ValidateUpload", clubID.String(), func(ctx context.Context) (results.OperationResult[*importdomain.ValidationSummary, error], error) {
		return runInTx(s, ctx, validateTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// validateUploadLogic contains the core logic.
func (s *ImportService) validateUploadLogic(ctx context.Context, db bun.IDB, clubID uuid.UUID, fileName string, fileData []byte) (results.OperationResult[*importdomain.ValidationSummary, error], error) {
	fail := results.FailureResult[*importdomain.ValidationSummary, error]

	if int64(len(fileData)) > s.limits.MaxFileBytes {
		return fail(fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.limits.MaxFileBytes)), nil
	}

	reader, err := readers.ForFile(fileName)
	if err != nil {
		return fail(err), nil
	}

	sheet, err := reader.Read(fileData)
	if err != nil {
		return fail(err), nil
	}

	if len(sheet.Rows) > s.limits.MaxRows {
		return fail(fmt.Errorf("%w: limit is %d rows", ErrTooManyRows, s.limits.MaxRows)), nil
	}

	mapping, missing := importdomain.ResolveColumns(sheet.Headers)
	if len(missing) > 0 {
		s.logger.WarnContext(ctx, "Upload is missing required columns",
			slog.String("file_name", fileName),
			slog.Any("missing", missing),
		)
		// Row parsing is not attempted; the caller re-maps headers and
		// resubmits.
		return results.SuccessResult[*importdomain.ValidationSummary, error](
			importdomain.BuildSummary(nil, mapping, missing),
		), nil
	}

	rows, err := s.parseRows(ctx, sheet, mapping)
	if err != nil {
		return results.OperationResult[*importdomain.ValidationSummary, error]{}, err
	}

	if err := s.runChecks(ctx, db, clubID, rows); err != nil {
		return results.OperationResult[*importdomain.ValidationSummary, error]{}, err
	}

	// Valid rows default to marked; invalid rows are never marked by the
	// system.
	for _, row := range rows {
		row.IsMarkedForImport = row.IsValid()
	}

	summary := importdomain.BuildSummary(rows, mapping, nil)
	s.recordRowMetrics(ctx, summary)

	s.logger.InfoContext(ctx, "Upload validated",
		slog.String("file_name", fileName),
		slog.Int("total_rows", summary.TotalRows),
		slog.Int("valid_rows", summary.ValidCount),
		slog.Int("error_rows", summary.ErrorCount),
	)

	return results.SuccessResult[*importdomain.ValidationSummary, error](summary), nil
}

// parseRows converts sheet data into candidate rows, applying the blank-row
// filter and checking for cancellation between rows.
func (s *ImportService) parseRows(ctx context.Context, sheet *readers.SheetData, mapping importdomain.ColumnMapping) ([]*importdomain.ImportRow, error) {
	rows := make([]*importdomain.ImportRow, 0, len(sheet.Rows))
	rowNumber := 0
	for _, cells := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := s.parser.ParseRow(cells, mapping, rowNumber+1)
		if row == nil {
			continue
		}
		rowNumber++
		rows = append(rows, row)
	}
	return rows, nil
}

// runChecks validates every row, then runs both duplicate passes. Rows are
// expected to be in ascending row-number order.
func (s *ImportService) runChecks(ctx context.Context, db bun.IDB, clubID uuid.UUID, rows []*importdomain.ImportRow) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.validator.Validate(row)
	}

	markInFileDuplicates(rows)

	return s.markDatabaseDuplicates(ctx, db, clubID, rows)
}

func (s *ImportService) recordRowMetrics(ctx context.Context, summary *importdomain.ValidationSummary) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordRowsProcessed(ctx, "valid", summary.ValidCount)
	s.metrics.RecordRowsProcessed(ctx, "invalid", summary.ErrorCount)
}
