// Package rules evaluates user-authored classification rules against
// batches of transactions.
package rules

import (
	"sort"
	"strings"

	"github.com/davidlpuk/property-ledger-sub000/internal/common"
	"github.com/davidlpuk/property-ledger-sub000/internal/model"
)

// Engine applies the two rule tiers to a batch: advanced (date-logic)
// rules first, then standard (pattern) rules, each in descending priority
// with first match winning. Advanced rules only assign a property; a
// standard rule may additionally assign a category, and may assign a
// property only when no advanced rule already did.
type Engine struct {
	advanced []model.AdvancedRule
	standard []model.StandardRule
}

// Outcome reports the per-run classification counters.
type Outcome struct {
	AdvancedRuleMatches int
	AutoCategorized     int
}

// NewEngine creates an engine with both rule tiers sorted by descending
// priority. Disabled rules are dropped up front.
func NewEngine(advanced []model.AdvancedRule, standard []model.StandardRule) *Engine {
	e := &Engine{}

	for _, r := range advanced {
		if r.Enabled {
			e.advanced = append(e.advanced, r)
		}
	}
	for _, r := range standard {
		if r.Active {
			e.standard = append(e.standard, r)
		}
	}

	sort.SliceStable(e.advanced, func(i, j int) bool {
		return e.advanced[i].Priority > e.advanced[j].Priority
	})
	sort.SliceStable(e.standard, func(i, j int) bool {
		return e.standard[i].Priority > e.standard[j].Priority
	})

	return e
}

// ClassifyBatch applies both rule tiers to every transaction in place and
// returns the run counters. Ordinal positions are computed once for the
// whole batch so that every ordinal rule sees consistent numbering.
func (e *Engine) ClassifyBatch(txns []model.Transaction) Outcome {
	ordinals := buildOrdinals(txns)

	var out Outcome
	for i := range txns {
		advancedSet := e.applyAdvanced(&txns[i], ordinals[i])
		if advancedSet {
			out.AdvancedRuleMatches++
		}
		if e.applyStandard(&txns[i], advancedSet) {
			out.AutoCategorized++
		}
	}
	return out
}

// buildOrdinals assigns each transaction its 1-based rank among same-vendor
// transactions in the same calendar month, ordered ascending by date.
func buildOrdinals(txns []model.Transaction) []int {
	groups := make(map[string][]int)
	for i, t := range txns {
		key := t.VendorKey() + "|" + t.Date.Format("2006-01")
		groups[key] = append(groups[key], i)
	}

	ordinals := make([]int, len(txns))
	for _, idxs := range groups {
		sort.SliceStable(idxs, func(a, b int) bool {
			return txns[idxs[a]].Date.Before(txns[idxs[b]].Date)
		})
		for pos, i := range idxs {
			ordinals[i] = pos + 1
		}
	}
	return ordinals
}

// applyAdvanced evaluates advanced rules and reports whether one assigned
// a property. Rules without a property never apply.
func (e *Engine) applyAdvanced(t *model.Transaction, ordinal int) bool {
	for _, r := range e.advanced {
		if r.PropertyID == nil {
			continue
		}
		if !matchText(t.Description, r.DescriptionPattern, r.MatchType) {
			continue
		}
		if r.ProviderMatch != "" && r.ProviderMatch != t.SourceFile {
			continue
		}
		if !matchDateLogic(t, r.DateLogic, ordinal) {
			continue
		}

		id := *r.PropertyID
		t.PropertyID = &id
		return true
	}
	return false
}

// applyStandard evaluates standard rules and reports whether one assigned
// a category. The first matching rule wins even if it assigns nothing new.
func (e *Engine) applyStandard(t *model.Transaction, propertyFromAdvanced bool) bool {
	for _, r := range e.standard {
		if !matchText(t.Description, r.Pattern, r.MatchType) {
			continue
		}

		categorized := false
		if r.CategoryID != nil {
			id := *r.CategoryID
			t.CategoryID = &id
			categorized = true
		}
		if r.PropertyID != nil && !propertyFromAdvanced {
			id := *r.PropertyID
			t.PropertyID = &id
		}
		return categorized
	}
	return false
}

// matchText compares a description against a rule pattern. String modes
// are case-insensitive; an invalid regex never matches.
func matchText(text, pattern string, mt model.MatchType) bool {
	lowText := strings.ToLower(text)
	lowPattern := strings.ToLower(pattern)

	switch mt {
	case model.MatchContains:
		return strings.Contains(lowText, lowPattern)
	case model.MatchStartsWith:
		return strings.HasPrefix(lowText, lowPattern)
	case model.MatchEndsWith:
		return strings.HasSuffix(lowText, lowPattern)
	case model.MatchExact:
		return lowText == lowPattern
	case model.MatchRegex:
		re := common.CompileInsensitive(pattern)
		if re == nil {
			return false
		}
		return re.MatchString(text)
	}
	return false
}

// matchDateLogic checks the rule's date condition against a transaction.
func matchDateLogic(t *model.Transaction, dl model.DateLogic, ordinal int) bool {
	switch dl.Type {
	case model.DateLogicDayRange:
		day := t.Date.Day()
		return day >= dl.StartDay && day <= dl.EndDay
	case model.DateLogicOrdinal:
		return ordinal == dl.Position
	}
	return false
}
