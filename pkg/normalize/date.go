package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	yearFirstShape = regexp.MustCompile(`^\d{4}[-/.]\d{1,2}[-/.]\d{1,2}$`)
	yearLastShape  = regexp.MustCompile(`^\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}$`)
)

// CurrentYearThreshold makes the two-digit year cutoff follow the clock.
const CurrentYearThreshold = -1

// CanonicalDate is a year/month/day triple. Values are not checked against a
// calendar: 1979-02-30 and even month 13 are kept as they are.
type CanonicalDate struct {
	Year  int
	Month int
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (d CanonicalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DateNormalizer turns date-like strings written in mixed conventions
// ("12/03/79", "1979.3.12", "Data: 12-03-1979!") into YYYY-MM-DD.
type DateNormalizer struct {
	threshold int
}

// NewDateNormalizer returns a normalizer expanding two-digit years at
// threshold: yy >= threshold is 19yy, below is 20yy. CurrentYearThreshold
// (or any negative value) uses the last two digits of the current year.
func NewDateNormalizer(threshold int) *DateNormalizer {
	if threshold < 0 {
		threshold = time.Now().Year() % 100
	}
	return &DateNormalizer{threshold: threshold}
}

// Threshold returns the effective two-digit year cutoff.
func (n *DateNormalizer) Threshold() int {
	return n.threshold
}

// Normalize returns the YYYY-MM-DD key for s, or false when s does not hold
// exactly three numeric parts.
func (n *DateNormalizer) Normalize(s string) (string, bool) {
	year, month, day, ok := n.resolve(s)
	if !ok {
		return "", false
	}
	return year + "-" + padLeft(month, 2) + "-" + padLeft(day, 2), true
}

// Parse resolves s the same way as Normalize and returns the numeric parts.
func (n *DateNormalizer) Parse(s string) (CanonicalDate, bool) {
	key, ok := n.Normalize(s)
	if !ok {
		return CanonicalDate{}, false
	}
	return ParseCanonical(key)
}

// ParseCanonical splits a key produced by Normalize back into numbers.
func ParseCanonical(key string) (CanonicalDate, bool) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return CanonicalDate{}, false
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return CanonicalDate{}, false
		}
		vals[i] = v
	}
	return CanonicalDate{Year: vals[0], Month: vals[1], Day: vals[2]}, true
}

func (n *DateNormalizer) resolve(s string) (year, month, day string, ok bool) {
	date := strings.TrimSpace(s)
	if date == "" {
		return "", "", "", false
	}

	parts := splitDateParts(date)
	if len(parts) != 3 {
		return "", "", "", false
	}

	// The shape is tested on the text as written, before noise is stripped.
	switch {
	case yearFirstShape.MatchString(date):
		year, month, day = fromYearFirst(parts)
	case yearLastShape.MatchString(date):
		year, month, day = fromYearLast(parts)
	case len(parts[0]) == 4:
		year, month, day = fromYearFirst(parts)
	case len(parts[2]) == 4:
		year, month, day = fromYearLast(parts)
	default:
		// No anchor: assume day first.
		year, month, day = parts[2], parts[1], parts[0]
	}

	return n.expandYear(year), month, day, true
}

// splitDateParts drops everything but digits and separators, then splits
// on the separators ignoring empty fragments.
func splitDateParts(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '/', r == '.':
			return r
		}
		return -1
	}, s)
	return strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == '-' || r == '/' || r == '.'
	})
}

// fromYearFirst reads year, month, day; the middle part becomes the day
// when it cannot be a month.
func fromYearFirst(p []string) (year, month, day string) {
	if couldBeMonth(p[1]) {
		return p[0], p[1], p[2]
	}
	return p[0], p[2], p[1]
}

// fromYearLast reads day, month, year; the first part becomes the month
// when the middle one cannot be a month.
func fromYearLast(p []string) (year, month, day string) {
	if couldBeMonth(p[1]) {
		return p[2], p[1], p[0]
	}
	return p[2], p[0], p[1]
}

func couldBeMonth(s string) bool {
	v, err := strconv.Atoi(s)
	return err == nil && v <= 12
}

func (n *DateNormalizer) expandYear(year string) string {
	if len(year) != 2 {
		return year
	}
	v, _ := strconv.Atoi(year)
	if v >= n.threshold {
		return "19" + year
	}
	return "20" + year
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
