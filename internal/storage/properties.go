package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
)

// CreateProperty stores a new property with its keyword list.
func (s *SQLiteStorage) CreateProperty(ctx context.Context, name string, keywords []string) (*model.Property, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	if keywords == nil {
		keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keywords: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO properties (name, keywords) VALUES (?, ?)`,
		name, string(keywordsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get property id: %w", err)
	}

	return &model.Property{ID: id, Name: name, Keywords: keywords}, nil
}

// ListProperties returns all properties ordered by id, which fixes the
// keyword-matching scan order.
func (s *SQLiteStorage) ListProperties(ctx context.Context) ([]model.Property, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, keywords FROM properties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var properties []model.Property
	for rows.Next() {
		var p model.Property
		var keywordsJSON string
		if err := rows.Scan(&p.ID, &p.Name, &keywordsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &p.Keywords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keywords for property %d: %w", p.ID, err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}
