package importdomain

import (
	"fmt"
	"strings"
	"time"
)

// Gender is the normalized gender value stored on a player record.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// ParseGender maps a raw cell to a Gender. Anything outside the recognized
// spellings yields no value rather than an error.
func ParseGender(raw string) (Gender, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M", "MALE":
		return GenderMale, true
	case "F", "FEMALE":
		return GenderFemale, true
	case "O", "OTHER":
		return GenderOther, true
	}
	return "", false
}

// ImportRow is one candidate player record parsed from an upload. Rows are
// transient: they live for the duration of a validate/revalidate/commit call
// and are never persisted directly.
type ImportRow struct {
	// RowNumber is 1-based and sequential among non-blank rows, not the raw
	// file line number.
	RowNumber int `json:"rowNumber"`

	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Gender         *Gender    `json:"gender,omitempty"`
	GraduationYear *int       `json:"graduationYear,omitempty"`
	JerseyNumber   *int       `json:"jerseyNumber,omitempty"`
	TryoutNumber   *int       `json:"tryoutNumber,omitempty"`

	// IsGraduationYearComputed marks a graduation year derived from the date
	// of birth rather than supplied in the file.
	IsGraduationYearComputed bool `json:"isGraduationYearComputed"`

	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	IsDuplicateInFile     bool `json:"isDuplicateInFile"`
	IsDuplicateInDatabase bool `json:"isDuplicateInDatabase"`

	// IsMarkedForImport records caller intent. The commit path never trusts
	// it alone: a row is persisted only when marked and independently valid.
	IsMarkedForImport bool `json:"isMarkedForImport"`

	// RawCells preserves the original cell data for the audit trail.
	RawCells []string `json:"rawCells,omitempty"`
}

// IsValid reports whether the row has no validation errors.
func (r *ImportRow) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError appends a validation error message.
func (r *ImportRow) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarning appends an advisory message.
func (r *ImportRow) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ClearResults drops prior validation output so the row can be re-validated.
// Callers must invoke this before running validation a second time.
func (r *ImportRow) ClearResults() {
	r.Errors = nil
	r.Warnings = nil
	r.IsDuplicateInFile = false
	r.IsDuplicateInDatabase = false
}

// NaturalKey returns the duplicate-detection key for the row. Rows missing
// first name, last name, or date of birth have no key and are exempt from
// duplicate checking.
func (r *ImportRow) NaturalKey() (string, bool) {
	if r.FirstName == "" || r.LastName == "" || r.DateOfBirth == nil {
		return "", false
	}
	return PlayerNaturalKey(r.FirstName, r.LastName, *r.DateOfBirth), true
}

// PlayerNaturalKey builds the (first, last, DOB) key shared by candidate rows
// and stored players.
func PlayerNaturalKey(firstName, lastName string, dob time.Time) string {
	return strings.ToUpper(strings.TrimSpace(firstName)) + "|" +
		strings.ToUpper(strings.TrimSpace(lastName)) + "|" +
		dob.Format("2006-01-02")
}

// GraduationYearFromDOB derives a graduation year from a date of birth using
// the September 1 academic-year cutoff: players born before the cutoff
// graduate the year they turn 18, later births shift one year out.
func GraduationYearFromDOB(dob time.Time) int {
	year := dob.Year() + 18
	if dob.Month() >= time.September {
		year++
	}
	return year
}

// ValidationSummary aggregates per-row outcomes for one validate or
// revalidate pass. It is derived entirely from the row list and holds no
// independent state.
type ValidationSummary struct {
	Rows                   []*ImportRow     `json:"rows"`
	ColumnMapping          ColumnMapping    `json:"columnMapping,omitempty"`
	MissingRequiredColumns []CanonicalField `json:"missingRequiredColumns,omitempty"`

	TotalRows                int `json:"totalRows"`
	ValidCount               int `json:"validCount"`
	ErrorCount               int `json:"errorCount"`
	WarningCount             int `json:"warningCount"`
	DuplicateInFileCount     int `json:"duplicateInFileCount"`
	DuplicateInDatabaseCount int `json:"duplicateInDatabaseCount"`
}

// BuildSummary computes aggregate counts over rows.
func BuildSummary(rows []*ImportRow, mapping ColumnMapping, missing []CanonicalField) *ValidationSummary {
	summary := &ValidationSummary{
		Rows:                   rows,
		ColumnMapping:          mapping,
		MissingRequiredColumns: missing,
		TotalRows:              len(rows),
	}
	for _, row := range rows {
		if row.IsValid() {
			summary.ValidCount++
		} else {
			summary.ErrorCount++
		}
		if len(row.Warnings) > 0 {
			summary.WarningCount++
		}
		if row.IsDuplicateInFile {
			summary.DuplicateInFileCount++
		}
		if row.IsDuplicateInDatabase {
			summary.DuplicateInDatabaseCount++
		}
	}
	return summary
}

// ImportResult is the caller-visible outcome of a commit.
type ImportResult struct {
	ImportID     string `json:"importId"`
	CreatedCount int    `json:"createdCount"`
	SkippedCount int    `json:"skippedCount"`
	FailedCount  int    `json:"failedCount"`
}
