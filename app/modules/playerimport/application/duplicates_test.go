package importservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func namedRow(rowNumber int, first, last string, dob time.Time) *importdomain.ImportRow {
	return &importdomain.ImportRow{
		RowNumber:   rowNumber,
		FirstName:   first,
		LastName:    last,
		DateOfBirth: &dob,
	}
}

func TestMarkInFileDuplicates(t *testing.T) {
	dob := time.Date(2010, time.May, 15, 0, 0, 0, 0, time.UTC)
	otherDOB := time.Date(2011, time.June, 16, 0, 0, 0, 0, time.UTC)

	t.Run("earliest row is never flagged", func(t *testing.T) {
		rows := []*importdomain.ImportRow{
			namedRow(1, "John", "Doe", dob),
			namedRow(2, "Jane", "Doe", otherDOB),
			namedRow(3, "john", "DOE", dob),
		}

		markInFileDuplicates(rows)

		require.False(t, rows[0].IsDuplicateInFile)
		require.False(t, rows[1].IsDuplicateInFile)
		require.True(t, rows[2].IsDuplicateInFile)
		require.Contains(t, rows[2].Warnings, "Duplicate of row 1 in this file")
	})

	t.Run("triplicate flags both later rows", func(t *testing.T) {
		rows := []*importdomain.ImportRow{
			namedRow(1, "John", "Doe", dob),
			namedRow(2, "John", "Doe", dob),
			namedRow(3, "John", "Doe", dob),
		}

		markInFileDuplicates(rows)

		require.False(t, rows[0].IsDuplicateInFile)
		require.True(t, rows[1].IsDuplicateInFile)
		require.True(t, rows[2].IsDuplicateInFile)
		// Both later rows point at the first occurrence.
		require.Contains(t, rows[2].Warnings, "Duplicate of row 1 in this file")
	})

	t.Run("rows without a natural key are exempt", func(t *testing.T) {
		a := &importdomain.ImportRow{RowNumber: 1, FirstName: "John"}
		b := &importdomain.ImportRow{RowNumber: 2, FirstName: "John"}

		markInFileDuplicates([]*importdomain.ImportRow{a, b})

		require.False(t, a.IsDuplicateInFile)
		require.False(t, b.IsDuplicateInFile)
	})
}

func TestMarkDatabaseDuplicates(t *testing.T) {
	dob := time.Date(2010, time.May, 15, 0, 0, 0, 0, time.UTC)
	clubID := uuid.New()

	t.Run("matches stored players case-insensitively", func(t *testing.T) {
		repo := &importdb.FakeRepository{
			ListPlayersByClubFn: func(ctx context.Context, db bun.IDB, gotClubID uuid.UUID) ([]*importdb.Player, error) {
				require.Equal(t, clubID, gotClubID)
				return []*importdb.Player{
					{FirstName: "JOHN", LastName: "doe", DateOfBirth: dob},
				}, nil
			},
		}
		service := NewImportService(repo, nil, nil, nil, nil, Limits{})

		rows := []*importdomain.ImportRow{
			namedRow(1, "John", "Doe", dob),
			namedRow(2, "Jane", "Doe", dob),
		}

		require.NoError(t, service.markDatabaseDuplicates(context.Background(), nil, clubID, rows))

		require.True(t, rows[0].IsDuplicateInDatabase)
		require.Contains(t, rows[0].Warnings, "A player with the same name and date of birth already exists in this club")
		require.False(t, rows[1].IsDuplicateInDatabase)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		wantErr := errors.New("connection refused")
		repo := &importdb.FakeRepository{
			ListPlayersByClubFn: func(ctx context.Context, db bun.IDB, clubID uuid.UUID) ([]*importdb.Player, error) {
				return nil, wantErr
			},
		}
		service := NewImportService(repo, nil, nil, nil, nil, Limits{})

		err := service.markDatabaseDuplicates(context.Background(), nil, clubID, []*importdomain.ImportRow{namedRow(1, "John", "Doe", dob)})
		require.ErrorIs(t, err, wantErr)
	})
}
