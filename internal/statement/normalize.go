package statement

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	maskedCard  = regexp.MustCompile(`\*{3,}\d+`)
	refToken    = regexp.MustCompile(`(?i)\bREF:\S*`)
	dateToken   = regexp.MustCompile(`\b\d{2}/\d{2}/\d{2,4}\b`)
	digitRun    = regexp.MustCompile(`\d{6,}`)
	jargonToken = regexp.MustCompile(`\b(?:DD|FT|BGC)\b`)
	asteriskRun = regexp.MustCompile(`\*+`)
	spaceRun    = regexp.MustCompile(`\s+`)
)

// NormalizeVendor reduces a raw statement description to a readable vendor
// label. Reference numbers, embedded dates, masked card digits and bank
// jargon abbreviations are stripped and the result is title-cased. A
// description that normalizes to nothing is returned unchanged so a vendor
// label is never empty.
func NormalizeVendor(description string) string {
	s := description
	s = maskedCard.ReplaceAllString(s, " ")
	s = refToken.ReplaceAllString(s, " ")
	s = dateToken.ReplaceAllString(s, " ")
	s = digitRun.ReplaceAllString(s, " ")
	s = jargonToken.ReplaceAllString(s, " ")
	s = asteriskRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))

	if s == "" {
		return description
	}
	return titleCase(s)
}

// titleCase capitalizes each word, lowercasing the rest.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
