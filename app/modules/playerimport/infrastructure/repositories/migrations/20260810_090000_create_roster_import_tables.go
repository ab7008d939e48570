package importmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players and import audit tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					club_id UUID NOT NULL,
					first_name VARCHAR(100) NOT NULL,
					last_name VARCHAR(100) NOT NULL,
					date_of_birth DATE NOT NULL,
					gender VARCHAR(1) NOT NULL,
					graduation_year INT NOT NULL,
					jersey_number INT,
					tryout_number INT,
					created_by UUID NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_players_club_id ON players(club_id);
				CREATE INDEX IF NOT EXISTS idx_players_natural_key
					ON players(club_id, UPPER(first_name), UPPER(last_name), date_of_birth);
			`); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS import_audits (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					club_id UUID NOT NULL,
					file_name VARCHAR(255) NOT NULL,
					status VARCHAR(20) NOT NULL,
					total_rows INT NOT NULL DEFAULT 0,
					successful_rows INT NOT NULL DEFAULT 0,
					failed_rows INT NOT NULL DEFAULT 0,
					error_message TEXT,
					completed_at TIMESTAMPTZ,
					created_by UUID NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_import_audits_club_id ON import_audits(club_id);
			`); err != nil {
				return fmt.Errorf("failed to create import_audits table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS import_row_audits (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					import_id UUID NOT NULL REFERENCES import_audits(id),
					row_number INT NOT NULL,
					success BOOLEAN NOT NULL,
					error_message TEXT,
					player_id UUID REFERENCES players(id),
					raw_data VARCHAR(500),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_import_row_audits_import_id
					ON import_row_audits(import_id);
			`); err != nil {
				return fmt.Errorf("failed to create import_row_audits table: %w", err)
			}

			return nil
		})
	}, nil)
}
