package playerimportintegrationtests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
)

func TestRepository_PlayersScopedByClub(t *testing.T) {
	deps := SetupTestImportService(t)
	actingUser := uuid.New()
	clubA := uuid.New()
	clubB := uuid.New()

	playersA := []*importdb.Player{
		deps.Generator.GeneratePlayer(clubA, actingUser),
		deps.Generator.GeneratePlayer(clubA, actingUser),
	}
	playersB := []*importdb.Player{
		deps.Generator.GeneratePlayer(clubB, actingUser),
	}

	require.NoError(t, deps.Repo.InsertPlayers(deps.Ctx, nil, playersA))
	require.NoError(t, deps.Repo.InsertPlayers(deps.Ctx, nil, playersB))

	gotA, err := deps.Repo.ListPlayersByClub(deps.Ctx, nil, clubA)
	require.NoError(t, err)
	require.Len(t, gotA, 2)
	for _, p := range gotA {
		require.Equal(t, clubA, p.ClubID)
	}

	gotB, err := deps.Repo.ListPlayersByClub(deps.Ctx, nil, clubB)
	require.NoError(t, err)
	require.Len(t, gotB, 1)

	empty, err := deps.Repo.ListPlayersByClub(deps.Ctx, nil, uuid.New())
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestRepository_ImportAuditLifecycle(t *testing.T) {
	deps := SetupTestImportService(t)
	clubID := uuid.New()
	actingUser := uuid.New()

	audit := &importdb.ImportAudit{
		ID:        uuid.New(),
		ClubID:    clubID,
		FileName:  "roster.csv",
		Status:    importdb.ImportStatusProcessing,
		TotalRows: 2,
		CreatedBy: actingUser,
	}
	require.NoError(t, deps.Repo.CreateImportAudit(deps.Ctx, nil, audit))

	rowAudits := []*importdb.ImportRowAudit{
		{ID: uuid.New(), ImportID: audit.ID, RowNumber: 2, Success: false, ErrorMessage: "Last name is required", RawData: "Jane,,2011-06-16,F"},
		{ID: uuid.New(), ImportID: audit.ID, RowNumber: 1, Success: false, ErrorMessage: "import rejected because other rows failed validation", RawData: "John,Doe,2010-05-15,M"},
	}
	require.NoError(t, deps.Repo.InsertRowAudits(deps.Ctx, nil, rowAudits))

	now := time.Now().UTC()
	audit.Status = importdb.ImportStatusCompleted
	audit.FailedRows = 1
	audit.CompletedAt = &now
	require.NoError(t, deps.Repo.UpdateImportAudit(deps.Ctx, nil, audit))

	got, err := deps.Repo.GetImportAudit(deps.Ctx, nil, clubID, audit.ID)
	require.NoError(t, err)
	require.Equal(t, importdb.ImportStatusCompleted, got.Status)
	require.Equal(t, 1, got.FailedRows)
	require.NotNil(t, got.CompletedAt)

	// Row entries come back ordered by row number.
	require.Len(t, got.Rows, 2)
	require.Equal(t, 1, got.Rows[0].RowNumber)
	require.Equal(t, 2, got.Rows[1].RowNumber)
}

func TestRepository_GetImportAuditScoping(t *testing.T) {
	deps := SetupTestImportService(t)
	clubID := uuid.New()

	audit := &importdb.ImportAudit{
		ID:        uuid.New(),
		ClubID:    clubID,
		FileName:  "roster.csv",
		Status:    importdb.ImportStatusProcessing,
		CreatedBy: uuid.New(),
	}
	require.NoError(t, deps.Repo.CreateImportAudit(deps.Ctx, nil, audit))

	// Another club cannot read the audit.
	_, err := deps.Repo.GetImportAudit(deps.Ctx, nil, uuid.New(), audit.ID)
	require.ErrorIs(t, err, importdb.ErrNotFound)

	_, err = deps.Repo.GetImportAudit(deps.Ctx, nil, clubID, uuid.New())
	require.ErrorIs(t, err, importdb.ErrNotFound)
}

func TestRepository_UpdateMissingAudit(t *testing.T) {
	deps := SetupTestImportService(t)

	audit := &importdb.ImportAudit{
		ID:        uuid.New(),
		ClubID:    uuid.New(),
		FileName:  "roster.csv",
		Status:    importdb.ImportStatusFailed,
		CreatedBy: uuid.New(),
	}
	err := deps.Repo.UpdateImportAudit(deps.Ctx, nil, audit)
	require.ErrorIs(t, err, importdb.ErrNotFound)
}
