// Package datagen generates sample retail CSVs for pipeline runs.
package datagen

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker wraps gofakeit with the generators the retail tables need.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{faker: gofakeit.New(uint64(time.Now().UnixNano()))}
}

// NewFakerWithSeed creates a Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{faker: gofakeit.New(seed)}
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// LastName generates a random last name.
func (f *Faker) LastName() string {
	return f.faker.LastName()
}

// Email generates a random email address.
func (f *Faker) Email() string {
	return f.faker.Email()
}

// Phone generates a random phone number.
func (f *Faker) Phone() string {
	return f.faker.Phone()
}

// PostAddress generates a combined postal address in the form
// "123 Main Street, Springfield, IL 62704".
func (f *Faker) PostAddress() string {
	return fmt.Sprintf("%d %s, %s, %s %s",
		f.Number(100, 9999),
		f.faker.StreetName(),
		f.faker.City(),
		f.faker.StateAbr(),
		f.faker.Zip())
}

// Gender returns Male or Female.
func (f *Faker) Gender() string {
	if f.faker.Bool() {
		return "Male"
	}
	return "Female"
}

// DateOfBirth generates a birth date for an adult aged roughly 18 to 80.
func (f *Faker) DateOfBirth(now time.Time) time.Time {
	days := f.Number(18*365, 80*365)
	return now.AddDate(0, 0, -days)
}

// DateBetween returns a random date in [start, end].
func (f *Faker) DateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, f.Number(0, days))
}

// Number returns a random int in [min, max].
func (f *Faker) Number(min, max int) int {
	return f.faker.Number(min, max)
}

// Float returns a random float64 in [min, max).
func (f *Faker) Float(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Bool returns true with the given probability.
func (f *Faker) Bool(probability float64) bool {
	return f.faker.Float64Range(0, 1) < probability
}

// Pick returns a random element of choices.
func Pick[T any](f *Faker, choices []T) T {
	return choices[f.faker.Number(0, len(choices)-1)]
}
