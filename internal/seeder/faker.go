package seeder

import (
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// DefaultSeed seeds both the uniform source and the fake-value source.
const DefaultSeed int64 = 42

// Source is everything a row generator draws from. Rows are reproducible
// only while callers consume it in a fixed order.
type Source interface {
	Float64() float64
	Intn(n int) int
	IntRange(min, max int) int
	Uniform(min, max float64) float64

	Name() string
	Company() string
	BS() string
	LastName() string
	Email() string
	Country() string
	Phone() string
	DateBetween(start, end time.Time) time.Time

	Now() time.Time
}

type DataGenerator struct {
	rand *rand.Rand
	fake *gofakeit.Faker
	now  time.Time
}

// NewDataGenerator seeds both sources once. now is the reference instant every
// relative date window is computed from; it is kept in UTC at second precision.
func NewDataGenerator(seed int64, now time.Time) *DataGenerator {
	return &DataGenerator{
		rand: rand.New(rand.NewSource(seed)),
		fake: gofakeit.New(seed),
		now:  now.UTC().Truncate(time.Second),
	}
}

func (g *DataGenerator) Float64() float64 { return g.rand.Float64() }

func (g *DataGenerator) Intn(n int) int { return g.rand.Intn(n) }

// IntRange returns an int in [min, max], both ends inclusive.
func (g *DataGenerator) IntRange(min, max int) int {
	return min + g.rand.Intn(max-min+1)
}

func (g *DataGenerator) Uniform(min, max float64) float64 {
	return min + (max-min)*g.rand.Float64()
}

func (g *DataGenerator) Name() string     { return g.fake.Name() }
func (g *DataGenerator) Company() string  { return g.fake.Company() }
func (g *DataGenerator) BS() string       { return g.fake.BS() }
func (g *DataGenerator) LastName() string { return g.fake.LastName() }
func (g *DataGenerator) Email() string    { return g.fake.Email() }
func (g *DataGenerator) Country() string  { return g.fake.Country() }
func (g *DataGenerator) Phone() string    { return g.fake.Phone() }

func (g *DataGenerator) DateBetween(start, end time.Time) time.Time {
	return g.fake.DateRange(start, end).UTC().Truncate(time.Second)
}

func (g *DataGenerator) Now() time.Time { return g.now }
