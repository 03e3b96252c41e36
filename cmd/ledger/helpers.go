package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidlpuk/property-ledger-sub000/internal/service"
	"github.com/davidlpuk/property-ledger-sub000/internal/storage"
	"github.com/spf13/viper"
)

// openStorage opens the configured SQLite database and applies any pending
// migrations.
func openStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "ledger", "ledger.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}
