package importservice

import (
	"time"
	"unicode/utf8"

	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
)

const (
	maxNameLength         = 100
	minGraduationYear     = 2000
	graduationYearHorizon = 25
	maxJerseyNumber       = 999
	maxTryoutNumber       = 9999
)

// Validator applies required-field and range rules to candidate rows. Rules
// are per-row and order-independent; no rule throws, every failure appends a
// human-readable message.
type Validator struct {
	now func() time.Time
}

// NewValidator creates a validator using the wall clock.
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// Validate appends errors and warnings to the row in place. It is idempotent
// only after ClearResults; callers re-validating a row must clear it first.
func (v *Validator) Validate(row *importdomain.ImportRow) {
	// Length limits count characters, not bytes, so accented names are not
	// penalized for their encoding.
	if row.FirstName == "" {
		row.AddError("First name is required")
	} else if utf8.RuneCountInString(row.FirstName) > maxNameLength {
		row.AddError("First name exceeds %d characters", maxNameLength)
	}

	if row.LastName == "" {
		row.AddError("Last name is required")
	} else if utf8.RuneCountInString(row.LastName) > maxNameLength {
		row.AddError("Last name exceeds %d characters", maxNameLength)
	}

	if row.DateOfBirth == nil {
		row.AddError("Date of birth is required or could not be parsed")
	}

	if row.Gender == nil {
		row.AddError("Gender is required (M, F, or O)")
	}

	// The upper bound moves with the clock, so it is evaluated here rather
	// than fixed at startup.
	maxGraduationYear := v.now().Year() + graduationYearHorizon
	if row.GraduationYear == nil {
		row.AddError("Graduation year is required")
	} else if *row.GraduationYear < minGraduationYear || *row.GraduationYear > maxGraduationYear {
		row.AddError("Graduation year must be between %d and %d", minGraduationYear, maxGraduationYear)
	}

	if row.IsGraduationYearComputed && row.GraduationYear != nil {
		row.AddWarning("Graduation year %d was computed from the date of birth", *row.GraduationYear)
	}

	if row.JerseyNumber != nil && (*row.JerseyNumber < 0 || *row.JerseyNumber > maxJerseyNumber) {
		row.AddError("Jersey number must be between 0 and %d", maxJerseyNumber)
	}

	if row.TryoutNumber != nil && (*row.TryoutNumber < 0 || *row.TryoutNumber > maxTryoutNumber) {
		row.AddError("Tryout number must be between 0 and %d", maxTryoutNumber)
	}
}
