package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
)

// CreateStandardRule stores a new standard rule after validation.
func (s *SQLiteStorage) CreateStandardRule(ctx context.Context, rule *model.StandardRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("invalid standard rule: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO standard_rules (pattern, match_type, category_id, property_id, priority, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		rule.Pattern,
		string(rule.MatchType),
		nullableID(rule.CategoryID),
		nullableID(rule.PropertyID),
		rule.Priority,
		rule.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to create standard rule: %w", err)
	}

	rule.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rule id: %w", err)
	}
	return nil
}

// ListStandardRules returns all standard rules, highest priority first.
func (s *SQLiteStorage) ListStandardRules(ctx context.Context) ([]model.StandardRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pattern, match_type, category_id, property_id, priority, active
		FROM standard_rules
		ORDER BY priority DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query standard rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.StandardRule
	for rows.Next() {
		var r model.StandardRule
		var matchType string
		var categoryID, propertyID sql.NullInt64

		if err := rows.Scan(&r.ID, &r.Pattern, &matchType, &categoryID, &propertyID, &r.Priority, &r.Active); err != nil {
			return nil, fmt.Errorf("failed to scan standard rule: %w", err)
		}
		r.MatchType = model.MatchType(matchType)
		if categoryID.Valid {
			r.CategoryID = &categoryID.Int64
		}
		if propertyID.Valid {
			r.PropertyID = &propertyID.Int64
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// CreateAdvancedRule stores a new advanced rule after validation.
func (s *SQLiteStorage) CreateAdvancedRule(ctx context.Context, rule *model.AdvancedRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("invalid advanced rule: %w", err)
	}

	dateLogic, err := rule.DateLogic.MarshalText()
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO advanced_rules (description_pattern, match_type, provider_match, date_logic, property_id, priority, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rule.DescriptionPattern,
		string(rule.MatchType),
		rule.ProviderMatch,
		string(dateLogic),
		*rule.PropertyID,
		rule.Priority,
		rule.Enabled,
	)
	if err != nil {
		return fmt.Errorf("failed to create advanced rule: %w", err)
	}

	rule.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rule id: %w", err)
	}
	return nil
}

// ListAdvancedRules returns all advanced rules, highest priority first.
func (s *SQLiteStorage) ListAdvancedRules(ctx context.Context) ([]model.AdvancedRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description_pattern, match_type, provider_match, date_logic, property_id, priority, enabled
		FROM advanced_rules
		ORDER BY priority DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query advanced rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.AdvancedRule
	for rows.Next() {
		var r model.AdvancedRule
		var matchType, dateLogic string
		var propertyID int64

		if err := rows.Scan(&r.ID, &r.DescriptionPattern, &matchType, &r.ProviderMatch, &dateLogic, &propertyID, &r.Priority, &r.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan advanced rule: %w", err)
		}
		r.MatchType = model.MatchType(matchType)
		r.PropertyID = &propertyID
		if err := r.DateLogic.UnmarshalText([]byte(dateLogic)); err != nil {
			return nil, fmt.Errorf("failed to parse date logic for rule %d: %w", r.ID, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
