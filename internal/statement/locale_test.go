package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"thousands and decimal comma", "1.234,56 EUR", "1234.56"},
		{"negative with suffix", "-315,51EUR", "-315.51"},
		{"plain integer", "850", "850"},
		{"decimal comma only", "15,99", "15.99"},
		{"euro sign suffix", "42,00 €", "42"},
		{"lowercase suffix", "99,95 eur", "99.95"},
		{"internal whitespace", " 1.000,00 ", "1000"},
		{"unparseable", "no amount here", "0"},
		{"empty", "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			assert.True(t, got.Equal(mustDecimal(t, tt.want)),
				"ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, want, ParseDate("05/03/2024"))
	assert.Equal(t, want, ParseDate("2024-03-05"))
	assert.Equal(t, want, ParseDate(" 05/03/2024 "))

	// Unrecognized formats default to the current processing day.
	assert.Equal(t, Today(), ParseDate("March 5th"))
	assert.Equal(t, Today(), ParseDate(""))
}

func TestParseDateStrict(t *testing.T) {
	d, ok := ParseDateStrict("05/03/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDateStrict("03/05/24")
	assert.False(t, ok)

	_, ok = ParseDateStrict("yesterday")
	assert.False(t, ok)
}
