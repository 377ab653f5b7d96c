package silver

import (
	"regexp"
	"strings"
	"time"

	"github.com/retailworks/medallion/internal/pipeline/bronze"
)

var (
	// Simplified, non-RFC email check: exactly one @ with a dot somewhere
	// after it. Kept deliberately lenient to match upstream behavior.
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

	// Strip everything except digits and hyphens from phone numbers.
	phoneStripPattern = regexp.MustCompile(`[^\d-]`)

	// Rigid "Street, City, ST 12345" pattern. Addresses that do not match
	// produce all-nil parsed fields, silently.
	addressPattern = regexp.MustCompile(`(.+),\s*(.+),\s*([A-Z]{2})\s+(\d{5})`)
)

var membershipTiers = map[string]int64{
	"BASE":     1,
	"GOLD":     2,
	"PLATINUM": 3,
}

// Customer is a cleaned and standardized customer row.
type Customer struct {
	ID        *int64
	FirstName string
	LastName  string
	Gender    string
	Email     string
	Phone     string

	DateOfBirth *time.Time
	Age         *int64

	FullAddress   string
	StreetAddress *string
	City          *string
	State         *string
	PostalCode    *string

	Membership     string
	MembershipTier *int64

	EmailValid      bool
	PhoneValid      bool
	AddressComplete bool

	IsAdult           bool
	AgeGroup          *string
	CustomerSinceDays *int64

	ProcessedAt      time.Time
	DataQualityScore float64
}

// cleanCustomers standardizes the raw customer records.
func cleanCustomers(records []bronze.Record, now time.Time) []Customer {
	customers := make([]Customer, 0, len(records))
	for _, rec := range records {
		c := Customer{
			ID:          parseInt(rec.Get("id")),
			FirstName:   rec.Get("first_name"),
			LastName:    rec.Get("last_name"),
			Gender:      strings.ToUpper(rec.Get("gender")),
			Membership:  strings.ToUpper(rec.Get("membership")),
			Email:       strings.TrimSpace(strings.ToLower(rec.Get("email"))),
			Phone:       phoneStripPattern.ReplaceAllString(rec.Get("phone"), ""),
			FullAddress: rec.Get("post_address"),
			DateOfBirth: parseDate(rec.Get("date_of_birth")),
			Age:         parseInt(rec.Get("age")),
			ProcessedAt: now,
		}

		if m := addressPattern.FindStringSubmatch(c.FullAddress); m != nil {
			c.StreetAddress = strp(m[1])
			c.City = strp(m[2])
			c.State = strp(m[3])
			c.PostalCode = strp(m[4])
		}

		c.EmailValid = c.Email != "" && emailPattern.MatchString(c.Email)
		c.PhoneValid = len(strings.ReplaceAll(c.Phone, "-", "")) >= 10
		c.AddressComplete = c.StreetAddress != nil && c.City != nil &&
			c.State != nil && c.PostalCode != nil

		c.IsAdult = c.Age != nil && *c.Age >= 18
		c.AgeGroup = ageGroup(c.Age)
		if c.DateOfBirth != nil {
			c.CustomerSinceDays = intp(daysBetween(now, *c.DateOfBirth))
		}
		if tier, ok := membershipTiers[c.Membership]; ok {
			c.MembershipTier = intp(tier)
		}

		flags := 0
		for _, f := range []bool{c.EmailValid, c.PhoneValid, c.AddressComplete} {
			if f {
				flags++
			}
		}
		c.DataQualityScore = round1(float64(flags) / 3 * 100)

		customers = append(customers, c)
	}
	return customers
}
