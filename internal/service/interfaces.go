// Package service defines the contracts between the CLI and the core.
package service

import (
	"context"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
)

// Storage defines the contract for the persistence layer. The ingestion
// pipeline itself never touches storage; reference data is loaded once
// before a batch and finalized transactions are handed back for an atomic
// save.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	GetFingerprints(ctx context.Context) (map[string]bool, error)

	// Property operations
	CreateProperty(ctx context.Context, name string, keywords []string) (*model.Property, error)
	ListProperties(ctx context.Context) ([]model.Property, error)

	// Category operations
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)

	// Rule operations
	CreateStandardRule(ctx context.Context, rule *model.StandardRule) error
	ListStandardRules(ctx context.Context) ([]model.StandardRule, error)
	CreateAdvancedRule(ctx context.Context, rule *model.AdvancedRule) error
	ListAdvancedRules(ctx context.Context) ([]model.AdvancedRule, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
