package silver

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Accepted order/birth date layouts. The sample data writes m/d/Y; ISO forms
// show up when data has been round-tripped through the loader.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseInt coerces a raw field to an integer; unparsable values become nil,
// never errors.
func parseInt(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v
	}
	// Values like "3.0" still count as integers.
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		v := int64(f)
		return &v
	}
	return nil
}

// parseFloat coerces a raw field to a float; unparsable values become nil.
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return &v
	}
	return nil
}

// parseDate tries the known layouts; unparsable dates become nil.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return &v
		}
	}
	return nil
}

// parseBool recognizes the common spellings; anything else (including empty)
// defaults to false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes", "y":
		return true
	default:
		return false
	}
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to 1 decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// titleCase uppercases the first letter of each word and lowercases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if unicode.IsLetter(r) {
			if startOfWord {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			startOfWord = false
		} else {
			b.WriteRune(r)
			startOfWord = true
		}
	}
	return b.String()
}

// ageGroup buckets an age into the five fixed bands; ages outside (0,100]
// fall out of every band and stay nil.
func ageGroup(age *int64) *string {
	if age == nil {
		return nil
	}
	var g string
	switch a := *age; {
	case a <= 0 || a > 100:
		return nil
	case a <= 25:
		g = "18-25"
	case a <= 35:
		g = "26-35"
	case a <= 50:
		g = "36-50"
	case a <= 65:
		g = "51-65"
	default:
		g = "65+"
	}
	return &g
}

func strp(s string) *string     { return &s }
func intp(v int64) *int64       { return &v }
func floatp(v float64) *float64 { return &v }
func daysBetween(a, b time.Time) int64 {
	return int64(a.Sub(b).Hours() / 24)
}
