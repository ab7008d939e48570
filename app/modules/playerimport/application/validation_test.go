package importservice

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
)

func fixedClockValidator(year int) *Validator {
	return &Validator{now: func() time.Time {
		return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	}}
}

func validRow() *importdomain.ImportRow {
	dob := time.Date(2010, time.May, 15, 0, 0, 0, 0, time.UTC)
	gender := importdomain.GenderFemale
	grad := 2028
	return &importdomain.ImportRow{
		RowNumber:      1,
		FirstName:      "Jordan",
		LastName:       "Smith",
		DateOfBirth:    &dob,
		Gender:         &gender,
		GraduationYear: &grad,
	}
}

func TestValidator_Validate(t *testing.T) {
	validator := fixedClockValidator(2026)

	tests := []struct {
		name      string
		mutate    func(row *importdomain.ImportRow)
		wantError string
	}{
		{
			name:   "valid row has no errors",
			mutate: func(row *importdomain.ImportRow) {},
		},
		{
			name:      "missing first name",
			mutate:    func(row *importdomain.ImportRow) { row.FirstName = "" },
			wantError: "First name is required",
		},
		{
			name:      "first name too long",
			mutate:    func(row *importdomain.ImportRow) { row.FirstName = strings.Repeat("a", 101) },
			wantError: "First name exceeds 100 characters",
		},
		{
			// 60 characters but 120 bytes; the limit counts characters.
			name:   "accented name within limit",
			mutate: func(row *importdomain.ImportRow) { row.FirstName = strings.Repeat("é", 60) },
		},
		{
			name:      "accented name over limit",
			mutate:    func(row *importdomain.ImportRow) { row.LastName = strings.Repeat("é", 101) },
			wantError: "Last name exceeds 100 characters",
		},
		{
			name:      "missing last name",
			mutate:    func(row *importdomain.ImportRow) { row.LastName = "" },
			wantError: "Last name is required",
		},
		{
			name:      "missing date of birth",
			mutate:    func(row *importdomain.ImportRow) { row.DateOfBirth = nil },
			wantError: "Date of birth is required or could not be parsed",
		},
		{
			name:      "missing gender",
			mutate:    func(row *importdomain.ImportRow) { row.Gender = nil },
			wantError: "Gender is required (M, F, or O)",
		},
		{
			name: "missing graduation year",
			mutate: func(row *importdomain.ImportRow) {
				row.GraduationYear = nil
				row.DateOfBirth = nil
			},
			wantError: "Graduation year is required",
		},
		{
			name:      "graduation year below range",
			mutate:    func(row *importdomain.ImportRow) { row.GraduationYear = intPtr(1999) },
			wantError: "Graduation year must be between 2000 and 2051",
		},
		{
			name:      "graduation year above horizon",
			mutate:    func(row *importdomain.ImportRow) { row.GraduationYear = intPtr(2052) },
			wantError: "Graduation year must be between 2000 and 2051",
		},
		{
			name:      "jersey number negative",
			mutate:    func(row *importdomain.ImportRow) { row.JerseyNumber = intPtr(-1) },
			wantError: "Jersey number must be between 0 and 999",
		},
		{
			name:      "jersey number too large",
			mutate:    func(row *importdomain.ImportRow) { row.JerseyNumber = intPtr(1000) },
			wantError: "Jersey number must be between 0 and 999",
		},
		{
			name:      "tryout number too large",
			mutate:    func(row *importdomain.ImportRow) { row.TryoutNumber = intPtr(10000) },
			wantError: "Tryout number must be between 0 and 9999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.mutate(row)
			validator.Validate(row)
			if tt.wantError == "" {
				require.Empty(t, row.Errors)
				return
			}
			require.Contains(t, row.Errors, tt.wantError)
		})
	}
}

func TestValidator_Validate_BoundaryValues(t *testing.T) {
	validator := fixedClockValidator(2026)

	row := validRow()
	row.GraduationYear = intPtr(2000)
	row.JerseyNumber = intPtr(0)
	row.TryoutNumber = intPtr(9999)
	validator.Validate(row)
	require.Empty(t, row.Errors)

	row = validRow()
	row.GraduationYear = intPtr(2051)
	row.JerseyNumber = intPtr(999)
	row.TryoutNumber = intPtr(0)
	validator.Validate(row)
	require.Empty(t, row.Errors)
}

func TestValidator_Validate_CollectsAllErrors(t *testing.T) {
	validator := fixedClockValidator(2026)

	row := &importdomain.ImportRow{RowNumber: 1}
	validator.Validate(row)

	require.Len(t, row.Errors, 5)
	require.False(t, row.IsValid())
}

func TestValidator_Validate_ComputedGraduationYearWarning(t *testing.T) {
	validator := fixedClockValidator(2026)

	row := validRow()
	row.IsGraduationYearComputed = true
	validator.Validate(row)

	require.Empty(t, row.Errors)
	require.Contains(t, row.Warnings, "Graduation year 2028 was computed from the date of birth")
}

func TestValidator_Validate_IdempotentAfterClear(t *testing.T) {
	validator := fixedClockValidator(2026)

	row := validRow()
	row.FirstName = ""
	row.JerseyNumber = intPtr(5000)
	row.IsGraduationYearComputed = true

	validator.Validate(row)
	first := append([]string(nil), row.Errors...)
	firstWarnings := append([]string(nil), row.Warnings...)

	row.ClearResults()
	validator.Validate(row)

	require.Empty(t, cmp.Diff(first, row.Errors))
	require.Empty(t, cmp.Diff(firstWarnings, row.Warnings))
}
