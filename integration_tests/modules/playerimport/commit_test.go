package playerimportintegrationtests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	importservice "github.com/rosterhq/roster-import/app/modules/playerimport/application"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
)

func TestCommit_PersistsPlayersAndAuditTrail(t *testing.T) {
	deps := SetupTestImportService(t)
	clubID := uuid.New()
	actingUser := uuid.New()

	rows := []*importdomain.ImportRow{
		deps.Generator.GenerateImportRow(1),
		deps.Generator.GenerateImportRow(2),
	}

	result, err := deps.Service.Commit(deps.Ctx, clubID, actingUser, "roster.csv", rows)
	require.NoError(t, err)
	require.Equal(t, 2, result.CreatedCount)
	require.Equal(t, 0, result.SkippedCount)

	players, err := deps.Repo.ListPlayersByClub(deps.Ctx, nil, clubID)
	require.NoError(t, err)
	require.Len(t, players, 2)
	for _, p := range players {
		require.Equal(t, actingUser, p.CreatedBy)
	}

	importID, err := uuid.Parse(result.ImportID)
	require.NoError(t, err)
	audit, err := deps.Repo.GetImportAudit(deps.Ctx, nil, clubID, importID)
	require.NoError(t, err)
	require.Equal(t, importdb.ImportStatusCompleted, audit.Status)
	require.Equal(t, 2, audit.SuccessfulRows)
	require.Len(t, audit.Rows, 2)
	for _, ra := range audit.Rows {
		require.True(t, ra.Success)
		require.NotNil(t, ra.PlayerID)
	}
}

func TestCommit_RejectedImportWritesNoPlayers(t *testing.T) {
	deps := SetupTestImportService(t)
	clubID := uuid.New()
	actingUser := uuid.New()

	good := deps.Generator.GenerateImportRow(1)
	bad := deps.Generator.GenerateImportRow(2)
	bad.LastName = ""

	_, err := deps.Service.Commit(deps.Ctx, clubID, actingUser, "roster.csv", []*importdomain.ImportRow{good, bad})
	require.ErrorIs(t, err, importservice.ErrCommitRejected)

	// All-or-nothing: no players were written.
	players, listErr := deps.Repo.ListPlayersByClub(deps.Ctx, nil, clubID)
	require.NoError(t, listErr)
	require.Empty(t, players)

	// The attempt itself is still fully recorded.
	var audits []*importdb.ImportAudit
	require.NoError(t, deps.BunDB.NewSelect().
		Model(&audits).
		Where("club_id = ?", clubID).
		Scan(deps.Ctx))
	require.Len(t, audits, 1)
	require.Equal(t, importdb.ImportStatusCompleted, audits[0].Status)
	require.Equal(t, 1, audits[0].FailedRows)

	audit, err := deps.Repo.GetImportAudit(deps.Ctx, nil, clubID, audits[0].ID)
	require.NoError(t, err)
	require.Len(t, audit.Rows, 2)
	for _, ra := range audit.Rows {
		require.False(t, ra.Success)
	}
}

func TestValidateUpload_SeesCommittedPlayersAsDuplicates(t *testing.T) {
	deps := SetupTestImportService(t)
	clubID := uuid.New()
	actingUser := uuid.New()

	row := deps.Generator.GenerateImportRow(1)
	_, err := deps.Service.Commit(deps.Ctx, clubID, actingUser, "roster.csv", []*importdomain.ImportRow{row})
	require.NoError(t, err)

	csvData := "First Name,Last Name,DOB,Gender\n" +
		row.FirstName + "," + row.LastName + "," + row.DateOfBirth.Format("2006-01-02") + "," + string(*row.Gender)

	summary, err := deps.Service.ValidateUpload(deps.Ctx, clubID, "again.csv", []byte(csvData))
	require.NoError(t, err)
	require.Equal(t, 1, summary.TotalRows)
	require.True(t, summary.Rows[0].IsDuplicateInDatabase)
	require.True(t, summary.Rows[0].IsValid())
}
