package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	musicservice "github.com/Black-And-White-Club/music-backend/app/modules/music/application"
	musicdomain "github.com/Black-And-White-Club/music-backend/app/modules/music/domain"
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

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with, for reproducing failures.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GenerateBand returns a valid band. The random suffix keeps names unique.
func (g *TestDataGenerator) GenerateBand() musicservice.BandCreate {
	genres := musicdomain.Genres()
	year := g.faker.Number(1950, 2024)
	country := g.faker.Country()
	return musicservice.BandCreate{
		Name:       g.faker.AppName() + " " + g.faker.LetterN(8),
		Genre:      genres[g.faker.IntN(len(genres))],
		FormedYear: &year,
		Country:    &country,
	}
}

// GenerateBands returns n bands.
func (g *TestDataGenerator) GenerateBands(n int) []musicservice.BandCreate {
	out := make([]musicservice.BandCreate, n)
	for i := range out {
		out[i] = g.GenerateBand()
	}
	return out
}

func (g *TestDataGenerator) GenerateMusician() musicservice.MusicianCreate {
	return musicservice.MusicianCreate{Name: g.faker.Name()}
}

func (g *TestDataGenerator) GenerateMusicians(n int) []musicservice.MusicianCreate {
	out := make([]musicservice.MusicianCreate, n)
	for i := range out {
		out[i] = g.GenerateMusician()
	}
	return out
}

// GenerateInstrument picks an instrument at random.
func (g *TestDataGenerator) GenerateInstrument() musicdomain.Instrument {
	instruments := musicdomain.Instruments()
	return instruments[g.faker.IntN(len(instruments))]
}
