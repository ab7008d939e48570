package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	importdomain "github.com/rosterhq/roster-import/app/modules/playerimport/domain"
	importdb "github.com/rosterhq/roster-import/app/modules/playerimport/infrastructure/repositories"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	faker := gofakeit.New(uint64(s))

	return &TestDataGenerator{
		faker: faker,
		seed:  s,
	}
}

// Seed returns the seed used by this generator so failures can be reproduced.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GeneratePlayer produces a stored player for a club with a plausible youth
// date of birth.
func (g *TestDataGenerator) GeneratePlayer(clubID, createdBy uuid.UUID) *importdb.Player {
	dob := g.dateOfBirth()
	return &importdb.Player{
		ID:             uuid.New(),
		ClubID:         clubID,
		FirstName:      g.faker.FirstName(),
		LastName:       g.faker.LastName(),
		DateOfBirth:    dob,
		Gender:         g.gender(),
		GraduationYear: importdomain.GraduationYearFromDOB(dob),
		CreatedBy:      createdBy,
	}
}

// GenerateImportRow produces a valid, marked candidate row.
func (g *TestDataGenerator) GenerateImportRow(rowNumber int) *importdomain.ImportRow {
	dob := g.dateOfBirth()
	gender, _ := importdomain.ParseGender(g.gender())
	grad := importdomain.GraduationYearFromDOB(dob)
	return &importdomain.ImportRow{
		RowNumber:         rowNumber,
		FirstName:         g.faker.FirstName(),
		LastName:          g.faker.LastName(),
		DateOfBirth:       &dob,
		Gender:            &gender,
		GraduationYear:    &grad,
		IsMarkedForImport: true,
	}
}

func (g *TestDataGenerator) dateOfBirth() time.Time {
	start := time.Date(2006, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2016, time.December, 31, 0, 0, 0, 0, time.UTC)
	d := g.faker.DateRange(start, end)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (g *TestDataGenerator) gender() string {
	return g.faker.RandomString([]string{"M", "F", "O"})
}
