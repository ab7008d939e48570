package importservice

import (
	"context"

	"github.com/google/uuid"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	"github.com/uptrace/bun"
)

// markInFileDuplicates flags rows whose natural key collides with an earlier
// row of the same file. The pass must run in ascending row-number order: the
// earliest row with a given key is never flagged.
func markInFileDuplicates(rows []*importdomain.ImportRow) {
	firstSeen := make(map[string]int, len(rows))

	for _, row := range rows {
		key, ok := row.NaturalKey()
		if !ok {
			continue
		}
		if earlier, seen := firstSeen[key]; seen {
			row.IsDuplicateInFile = true
			row.AddWarning("Duplicate of row %d in this file", earlier)
			continue
		}
		firstSeen[key] = row.RowNumber
	}
}

// markDatabaseDuplicates flags rows matching players already stored for the
// club. This is a point-in-time read: concurrent imports can both pass it,
// which is why the match is advisory, never blocking.
func (s *ImportService) markDatabaseDuplicates(ctx context.Context, db bun.IDB, clubID uuid.UUID, rows []*importdomain.ImportRow) error {
	players, err := s.repo.ListPlayersByClub(ctx, db, clubID)
	if err != nil {
		return err
	}

	existing := make(map[string]struct{}, len(players))
	for _, player := range players {
		key := importdomain.PlayerNaturalKey(player.FirstName, player.LastName, player.DateOfBirth)
		existing[key] = struct{}{}
	}

	for _, row := range rows {
		key, ok := row.NaturalKey()
		if !ok {
			continue
		}
		if _, found := existing[key]; found {
			row.IsDuplicateInDatabase = true
			row.AddWarning("A player with the same name and date of birth already exists in this club")
		}
	}
	return nil
}
