package importservice

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
)

// dateFormats is the ordered fallback chain for date-of-birth cells. ISO
// first, then common US and EU slash/dash variants. Go layouts accept
// non-padded day and month digits, so one layout per separator order covers
// both "01/02/2006" and "1/2/2006".
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"01-02-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// RowParser converts raw row cells into typed candidate records.
type RowParser struct {
	when *when.Parser
	now  func() time.Time
}

// NewRowParser creates a row parser with the natural-language date fallback
// initialized.
func NewRowParser() *RowParser {
	w := when.New(nil)
	w.Add(en.All...)
	return &RowParser{when: w, now: time.Now}
}

// ParseRow converts one raw row into an ImportRow. It returns nil for blank
// rows: first name, last name, date of birth, and gender all absent. Blank
// rows are filtered before any validation, so optional-only cells never keep
// a row alive.
func (p *RowParser) ParseRow(cells []string, mapping importdomain.ColumnMapping, rowNumber int) *importdomain.ImportRow {
	firstName := p.cell(cells, mapping, importdomain.FieldFirstName)
	lastName := p.cell(cells, mapping, importdomain.FieldLastName)
	dob := p.parseDate(p.cell(cells, mapping, importdomain.FieldDateOfBirth))

	var gender *importdomain.Gender
	if g, ok := importdomain.ParseGender(p.cell(cells, mapping, importdomain.FieldGender)); ok {
		gender = &g
	}

	if firstName == "" && lastName == "" && dob == nil && gender == nil {
		return nil
	}

	row := &importdomain.ImportRow{
		RowNumber:   rowNumber,
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dob,
		Gender:      gender,
		RawCells:    cells,
	}

	row.GraduationYear = parseOptionalInt(p.cell(cells, mapping, importdomain.FieldGraduationYear))
	row.JerseyNumber = parseOptionalInt(p.cell(cells, mapping, importdomain.FieldJerseyNumber))
	row.TryoutNumber = parseOptionalInt(p.cell(cells, mapping, importdomain.FieldTryoutNumber))

	if row.GraduationYear == nil && row.DateOfBirth != nil {
		year := importdomain.GraduationYearFromDOB(*row.DateOfBirth)
		row.GraduationYear = &year
		row.IsGraduationYearComputed = true
	}

	return row
}

// cell returns the trimmed cell bound to a field, or "" when the field has
// no column or the row is short.
func (p *RowParser) cell(cells []string, mapping importdomain.ColumnMapping, field importdomain.CanonicalField) string {
	binding, ok := mapping[field]
	if !ok || binding.Index < 0 || binding.Index >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[binding.Index])
}

// parseDate walks the explicit format chain, then falls back to a
// natural-language parse. Unparseable input yields nil, never an error.
func (p *RowParser) parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}

	if r, err := p.when.Parse(raw, p.now()); err == nil && r != nil {
		t := time.Date(r.Time.Year(), r.Time.Month(), r.Time.Day(), 0, 0, 0, 0, time.UTC)
		return &t
	}

	return nil
}

// parseOptionalInt coerces numeric or numeric-string cells, accepting
// spreadsheet float renderings of whole numbers ("23.0"). Anything else
// yields nil.
func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return &n
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) {
		n := int(f)
		return &n
	}

	return nil
}
