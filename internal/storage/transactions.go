package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
	"github.com/shopspring/decimal"
)

// SaveTransactions persists a batch of transactions atomically. The
// fingerprint UNIQUE constraint with INSERT OR IGNORE backstops the
// in-memory deduplication: a row whose fingerprint already exists is
// silently left alone rather than failing the batch.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			fingerprint, date, description, description_clean,
			amount, kind, source_file, property_id, category_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if txn.Fingerprint == "" {
			txn.Fingerprint = txn.GenerateFingerprint()
		}

		_, err = stmt.ExecContext(ctx,
			txn.Fingerprint,
			txn.Date,
			txn.Description,
			txn.DescriptionClean,
			txn.Amount.StringFixed(2),
			string(txn.Kind),
			txn.SourceFile,
			nullableID(txn.PropertyID),
			nullableID(txn.CategoryID),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.Fingerprint, err)
		}
	}

	return tx.Commit()
}

// GetFingerprints returns the fingerprints of all stored transactions.
func (s *SQLiteStorage) GetFingerprints(ctx context.Context) (map[string]bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT fingerprint FROM transactions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	fingerprints := make(map[string]bool)
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("failed to scan fingerprint: %w", err)
		}
		fingerprints[fp] = true
	}
	return fingerprints, rows.Err()
}

// ListTransactions returns all stored transactions ordered by date.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fingerprint, date, description, description_clean,
		       amount, kind, source_file, property_id, category_id
		FROM transactions
		ORDER BY date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var txn model.Transaction
	var date time.Time
	var amount, kind string
	var propertyID, categoryID sql.NullInt64

	err := rows.Scan(
		&txn.ID,
		&txn.Fingerprint,
		&date,
		&txn.Description,
		&txn.DescriptionClean,
		&amount,
		&kind,
		&txn.SourceFile,
		&propertyID,
		&categoryID,
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Date = date
	txn.Kind = model.TransactionKind(kind)
	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
	}
	if propertyID.Valid {
		txn.PropertyID = &propertyID.Int64
	}
	if categoryID.Valid {
		txn.CategoryID = &categoryID.Int64
	}
	return txn, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
