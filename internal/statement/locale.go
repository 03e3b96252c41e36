// Package statement parses delimited-text bank exports into transactions.
package statement

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Statement dates arrive as DD/MM/YYYY or already-canonical YYYY-MM-DD.
const (
	layoutSlash = "02/01/2006"
	layoutISO   = "2006-01-02"
)

// ParseAmount converts a regionally-formatted amount like "1.234,56 EUR"
// into a decimal. Dots group thousands and the comma is the decimal
// separator. Unparseable input yields zero, which callers treat as "no
// amount found" and skip the row.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "€")
	if n := len(s); n >= 3 && strings.EqualFold(s[n-3:], "EUR") {
		s = s[:n-3]
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate recognizes DD/MM/YYYY and YYYY-MM-DD. Any other input defaults
// to the current processing day; callers that cannot tolerate that should
// use ParseDateStrict.
func ParseDate(s string) time.Time {
	d, ok := ParseDateStrict(s)
	if !ok {
		return Today()
	}
	return d
}

// ParseDateStrict parses a statement date and reports whether the format
// was recognized.
func ParseDateStrict(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(layoutSlash, s); err == nil {
		return d, true
	}
	if d, err := time.Parse(layoutISO, s); err == nil {
		return d, true
	}
	return time.Time{}, false
}

// Today returns the current processing date truncated to the day, in UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
