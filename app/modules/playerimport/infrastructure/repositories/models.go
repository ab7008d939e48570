package importdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ImportStatus is the lifecycle state of one import attempt.
type ImportStatus string

const (
	ImportStatusProcessing ImportStatus = "PROCESSING"
	ImportStatusCompleted  ImportStatus = "COMPLETED"
	ImportStatusFailed     ImportStatus = "FAILED"
)

// MaxRawDataLength caps the raw cell data stored on a row audit.
const MaxRawDataLength = 500

// Player is a roster member of a club.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	ClubID         uuid.UUID `bun:"club_id,notnull,type:uuid"`
	FirstName      string    `bun:"first_name,notnull"`
	LastName       string    `bun:"last_name,notnull"`
	DateOfBirth    time.Time `bun:"date_of_birth,notnull,type:date"`
	Gender         string    `bun:"gender,notnull"`
	GraduationYear int       `bun:"graduation_year,notnull"`
	JerseyNumber   *int      `bun:"jersey_number,nullzero"`
	TryoutNumber   *int      `bun:"tryout_number,nullzero"`
	CreatedBy      uuid.UUID `bun:"created_by,notnull,type:uuid"`
	CreatedAt      time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// ImportAudit is the durable record of one import attempt. It is created in
// PROCESSING at the start of a commit, moved exactly once to a terminal
// status, and never deleted by this subsystem.
type ImportAudit struct {
	bun.BaseModel `bun:"table:import_audits,alias:ia"`

	ID             uuid.UUID    `bun:"id,pk,type:uuid"`
	ClubID         uuid.UUID    `bun:"club_id,notnull,type:uuid"`
	FileName       string       `bun:"file_name,notnull"`
	Status         ImportStatus `bun:"status,notnull"`
	TotalRows      int          `bun:"total_rows,notnull,default:0"`
	SuccessfulRows int          `bun:"successful_rows,notnull,default:0"`
	FailedRows     int          `bun:"failed_rows,notnull,default:0"`
	ErrorMessage   string       `bun:"error_message,nullzero"`
	CompletedAt    *time.Time   `bun:"completed_at,nullzero"`
	CreatedBy      uuid.UUID    `bun:"created_by,notnull,type:uuid"`
	CreatedAt      time.Time    `bun:",nullzero,notnull,default:current_timestamp"`

	Rows []*ImportRowAudit `bun:"rel:has-many,join:id=import_id"`
}

// ImportRowAudit captures the outcome of one input row of a commit attempt.
// Written once, immutable thereafter.
type ImportRowAudit struct {
	bun.BaseModel `bun:"table:import_row_audits,alias:ira"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid"`
	ImportID     uuid.UUID  `bun:"import_id,notnull,type:uuid"`
	RowNumber    int        `bun:"row_number,notnull"`
	Success      bool       `bun:"success,notnull"`
	ErrorMessage string     `bun:"error_message,nullzero"`
	PlayerID     *uuid.UUID `bun:"player_id,nullzero,type:uuid"`
	RawData      string     `bun:"raw_data,nullzero"`
	CreatedAt    time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
}

// TruncateRawData clips raw cell data to the storage cap.
func TruncateRawData(raw string) string {
	if len(raw) <= MaxRawDataLength {
		return raw
	}
	return raw[:MaxRawDataLength]
}
