package importdomain

import "strings"

// CanonicalField identifies one attribute of the player import schema.
type CanonicalField string

const (
	FieldFirstName      CanonicalField = "FirstName"
	FieldLastName       CanonicalField = "LastName"
	FieldDateOfBirth    CanonicalField = "DateOfBirth"
	FieldGender         CanonicalField = "Gender"
	FieldGraduationYear CanonicalField = "GraduationYear"
	FieldJerseyNumber   CanonicalField = "JerseyNumber"
	FieldTryoutNumber   CanonicalField = "TryoutNumber"
)

// RequiredFields are the canonical fields a header row must bind for parsing
// to proceed.
var RequiredFields = []CanonicalField{
	FieldFirstName,
	FieldLastName,
	FieldDateOfBirth,
	FieldGender,
}

// AllFields lists every canonical field in template column order.
var AllFields = []CanonicalField{
	FieldFirstName,
	FieldLastName,
	FieldDateOfBirth,
	FieldGender,
	FieldGraduationYear,
	FieldJerseyNumber,
	FieldTryoutNumber,
}

// DisplayName returns the header spelling used in generated templates.
func (f CanonicalField) DisplayName() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldDateOfBirth:
		return "Date Of Birth"
	case FieldGender:
		return "Gender"
	case FieldGraduationYear:
		return "Graduation Year"
	case FieldJerseyNumber:
		return "Jersey Number"
	case FieldTryoutNumber:
		return "Tryout Number"
	}
	return string(f)
}

// IsRequired reports whether the field must be present in an uploaded file.
func (f CanonicalField) IsRequired() bool {
	for _, rf := range RequiredFields {
		if f == rf {
			return true
		}
	}
	return false
}

// fieldAliases maps each canonical field to its recognized header spellings.
// Lookups go through normalizeHeader, so entries here only need one spelling
// per distinct normalized form. Keep the table data-driven: new aliases are
// additions, not logic changes.
var fieldAliases = map[CanonicalField][]string{
	FieldFirstName: {
		"first name", "firstname", "first", "fname", "given name", "player first name",
	},
	FieldLastName: {
		"last name", "lastname", "last", "lname", "surname", "family name", "player last name",
	},
	FieldDateOfBirth: {
		"date of birth", "dateofbirth", "dob", "birthday", "birth date", "birthdate", "born",
	},
	FieldGender: {
		"gender", "sex",
	},
	FieldGraduationYear: {
		"graduation year", "grad year", "graduation", "grad", "class of", "class year",
	},
	FieldJerseyNumber: {
		"jersey number", "jersey", "jersey #", "uniform number", "number",
	},
	FieldTryoutNumber: {
		"tryout number", "tryout", "tryout #", "pinnie number", "pinnie",
	},
}

// aliasIndex is the precomputed normalized-alias lookup table. Immutable after
// init, safe for concurrent use without locking.
var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]CanonicalField {
	index := make(map[string]CanonicalField)
	for _, field := range AllFields {
		for _, alias := range fieldAliases[field] {
			key := normalizeHeader(alias)
			if owner, exists := index[key]; exists && owner != field {
				panic("importdomain: alias " + alias + " owned by both " + string(owner) + " and " + string(field))
			}
			index[key] = field
		}
	}
	return index
}

// FindMatchingField resolves a raw header cell to a canonical field.
// Unknown or empty headers yield no match.
func FindMatchingField(header string) (CanonicalField, bool) {
	key := normalizeHeader(header)
	if key == "" {
		return "", false
	}
	field, ok := aliasIndex[key]
	return field, ok
}

// normalizeHeader lowercases a header and strips whitespace, underscores,
// and hyphens so spelling variants collapse to one key.
func normalizeHeader(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// ColumnBinding records which uploaded header cell matched a canonical field.
type ColumnBinding struct {
	Header string `json:"header"`
	Index  int    `json:"index"`
}

// ColumnMapping binds canonical fields to columns of one uploaded file.
// Fields absent from the map were not detected in the header row.
type ColumnMapping map[CanonicalField]ColumnBinding

// ResolveColumns matches uploaded headers against the alias table. The first
// column matching a field wins; later duplicates are ignored. The second
// return value lists required fields that no column matched.
func ResolveColumns(headers []string) (ColumnMapping, []CanonicalField) {
	mapping := make(ColumnMapping)
	for i, header := range headers {
		field, ok := FindMatchingField(header)
		if !ok {
			continue
		}
		if _, bound := mapping[field]; bound {
			continue
		}
		mapping[field] = ColumnBinding{Header: header, Index: i}
	}

	var missing []CanonicalField
	for _, field := range RequiredFields {
		if _, ok := mapping[field]; !ok {
			missing = append(missing, field)
		}
	}
	return mapping, missing
}
