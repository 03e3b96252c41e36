// Package model defines the core data structures for the ledger application.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// MatchType selects how a rule pattern is compared against a description.
type MatchType string

// Match type constants. All comparisons are case-insensitive.
const (
	MatchContains   MatchType = "contains"
	MatchStartsWith MatchType = "startsWith"
	MatchEndsWith   MatchType = "endsWith"
	MatchExact      MatchType = "exact"
	MatchRegex      MatchType = "regex"
)

// StandardRule is a priority-ordered pattern rule that assigns a category
// and/or property based on the transaction description.
type StandardRule struct {
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Pattern    string
	MatchType  MatchType
	CategoryID *int64
	PropertyID *int64
	Priority   int
	ID         int64
	Active     bool
}

// Validate ensures the rule has usable data.
func (r *StandardRule) Validate() error {
	if r.Pattern == "" {
		return fmt.Errorf("pattern is required")
	}
	switch r.MatchType {
	case MatchContains, MatchStartsWith, MatchEndsWith, MatchExact, MatchRegex:
	default:
		return fmt.Errorf("unknown match type %q", r.MatchType)
	}
	if r.CategoryID == nil && r.PropertyID == nil {
		return fmt.Errorf("rule must assign a category or a property")
	}
	return nil
}

// DateLogicType distinguishes the two date-logic variants.
type DateLogicType string

// Date logic constants.
const (
	// DateLogicDayRange matches transactions whose day of month falls in
	// [StartDay, EndDay] inclusive.
	DateLogicDayRange DateLogicType = "day_of_month_range"
	// DateLogicOrdinal matches the Nth transaction with the same vendor
	// within a calendar month, ordered by date.
	DateLogicOrdinal DateLogicType = "ordinal_in_month"
)

// DateLogic is the tagged union describing an advanced rule's date
// condition. Only the fields for the active Type are meaningful.
type DateLogic struct {
	Type     DateLogicType `json:"type"`
	StartDay int           `json:"start_day,omitempty"`
	EndDay   int           `json:"end_day,omitempty"`
	Position int           `json:"position,omitempty"`
}

// Validate ensures the date logic payload is consistent with its type.
func (d DateLogic) Validate() error {
	switch d.Type {
	case DateLogicDayRange:
		if d.StartDay < 1 || d.StartDay > 31 {
			return fmt.Errorf("start day must be between 1 and 31")
		}
		if d.EndDay < 1 || d.EndDay > 31 {
			return fmt.Errorf("end day must be between 1 and 31")
		}
		if d.StartDay > d.EndDay {
			return fmt.Errorf("start day must not exceed end day")
		}
	case DateLogicOrdinal:
		if d.Position < 1 {
			return fmt.Errorf("position must be at least 1")
		}
	default:
		return fmt.Errorf("unknown date logic type %q", d.Type)
	}
	return nil
}

// dateLogicJSON avoids the Text(Un)Marshaler methods recursing through
// encoding/json.
type dateLogicJSON DateLogic

// MarshalText serializes date logic for database storage.
func (d DateLogic) MarshalText() ([]byte, error) {
	data, err := json.Marshal(dateLogicJSON(d))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal date logic: %w", err)
	}
	return data, nil
}

// UnmarshalText restores date logic from its database representation.
func (d *DateLogic) UnmarshalText(data []byte) error {
	if err := json.Unmarshal(data, (*dateLogicJSON)(d)); err != nil {
		return fmt.Errorf("failed to unmarshal date logic: %w", err)
	}
	return nil
}

// AdvancedRule disambiguates same-description transactions by their date
// position within a month, optionally scoped to one source file. Advanced
// rules only ever assign a property and are evaluated before all standard
// rules.
type AdvancedRule struct {
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DescriptionPattern string
	MatchType          MatchType
	ProviderMatch      string // exact source file name; empty matches any
	DateLogic          DateLogic
	PropertyID         *int64
	Priority           int
	ID                 int64
	Enabled            bool
}

// Validate ensures the rule has usable data. A rule without a property is
// never applied, so it is rejected here.
func (r *AdvancedRule) Validate() error {
	if r.DescriptionPattern == "" {
		return fmt.Errorf("description pattern is required")
	}
	switch r.MatchType {
	case MatchContains, MatchExact, MatchRegex:
	default:
		return fmt.Errorf("unknown match type %q for advanced rule", r.MatchType)
	}
	if r.PropertyID == nil {
		return fmt.Errorf("property is required")
	}
	return r.DateLogic.Validate()
}
