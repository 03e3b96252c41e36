package rules

import (
	"strings"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
)

// PropertyMatcher associates transactions with properties by keyword
// containment. Properties are scanned in input order and the first match
// wins, so the result is deterministic for a given property list.
type PropertyMatcher struct {
	properties []model.Property
}

// NewPropertyMatcher creates a matcher over the user's properties.
func NewPropertyMatcher(properties []model.Property) *PropertyMatcher {
	return &PropertyMatcher{properties: properties}
}

// Match returns the ID of the first property with a keyword contained in
// the description, or nil when nothing matches.
func (m *PropertyMatcher) Match(description string) *int64 {
	desc := strings.ToLower(description)

	for _, p := range m.properties {
		for _, kw := range p.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if strings.Contains(desc, kw) {
				id := p.ID
				return &id
			}
		}
	}
	return nil
}
