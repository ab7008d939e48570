package importdomain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindMatchingField(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   CanonicalField
		wantOK bool
	}{
		{name: "exact display name", header: "First Name", want: FieldFirstName, wantOK: true},
		{name: "lowercase no space", header: "firstname", want: FieldFirstName, wantOK: true},
		{name: "underscores", header: "first_name", want: FieldFirstName, wantOK: true},
		{name: "hyphens and padding", header: "  First-Name  ", want: FieldFirstName, wantOK: true},
		{name: "surname alias", header: "Surname", want: FieldLastName, wantOK: true},
		{name: "dob alias", header: "DOB", want: FieldDateOfBirth, wantOK: true},
		{name: "sex alias", header: "Sex", want: FieldGender, wantOK: true},
		{name: "class of alias", header: "Class Of", want: FieldGraduationYear, wantOK: true},
		{name: "jersey hash", header: "Jersey #", want: FieldJerseyNumber, wantOK: true},
		{name: "pinnie alias", header: "Pinnie", want: FieldTryoutNumber, wantOK: true},
		{name: "unknown header", header: "Shoe Size"},
		{name: "empty header", header: ""},
		{name: "whitespace only", header: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, ok := FindMatchingField(tt.header)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, field)
			}
		})
	}
}

func TestFindMatchingField_CoversEveryAlias(t *testing.T) {
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			got, ok := FindMatchingField(alias)
			require.True(t, ok, "alias %q did not resolve", alias)
			require.Equal(t, field, got, "alias %q resolved to the wrong field", alias)
		}
	}
}

func TestResolveColumns(t *testing.T) {
	t.Run("all columns present", func(t *testing.T) {
		mapping, missing := ResolveColumns([]string{"First Name", "Last Name", "DOB", "Gender", "Grad Year"})
		require.Empty(t, missing)
		require.Equal(t, ColumnBinding{Header: "First Name", Index: 0}, mapping[FieldFirstName])
		require.Equal(t, ColumnBinding{Header: "DOB", Index: 2}, mapping[FieldDateOfBirth])
		require.Equal(t, ColumnBinding{Header: "Grad Year", Index: 4}, mapping[FieldGraduationYear])
		_, bound := mapping[FieldJerseyNumber]
		require.False(t, bound)
	})

	t.Run("first matching column wins", func(t *testing.T) {
		mapping, missing := ResolveColumns([]string{"First Name", "fname", "Last Name", "DOB", "Gender"})
		require.Empty(t, missing)
		require.Equal(t, 0, mapping[FieldFirstName].Index)
	})

	t.Run("missing required columns reported", func(t *testing.T) {
		_, missing := ResolveColumns([]string{"First Name", "Jersey"})
		require.Equal(t, []CanonicalField{FieldLastName, FieldDateOfBirth, FieldGender}, missing)
	})

	t.Run("unknown headers ignored", func(t *testing.T) {
		mapping, _ := ResolveColumns([]string{"Team", "First Name", "Notes"})
		require.Len(t, mapping, 1)
	})
}
