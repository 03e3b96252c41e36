package model

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether money came in or went out.
type TransactionKind string

// Transaction kind constants.
const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Transaction represents a single parsed bank statement row. Amount is
// always a non-negative magnitude; the direction lives in Kind.
type Transaction struct {
	Date             time.Time
	Description      string // Raw statement description
	DescriptionClean string // Normalized vendor label
	SourceFile       string
	Fingerprint      string
	Kind             TransactionKind
	Amount           decimal.Decimal
	ID               int64
	PropertyID       *int64
	CategoryID       *int64
}

// GenerateFingerprint creates a stable hash for duplicate detection.
// Identical (date, description, amount) triples yield the same value
// regardless of description casing/whitespace or amount sign.
func (t *Transaction) GenerateFingerprint() string {
	data := fmt.Sprintf("%s|%s|%s",
		t.Date.Format("2006-01-02"),
		strings.ToLower(strings.TrimSpace(t.Description)),
		t.Amount.Abs().StringFixed(2))
	h := fnv.New32a()
	_, _ = h.Write([]byte(data))
	return fmt.Sprintf("%08x", h.Sum32())
}

// VendorKey returns the grouping key used for ordinal-in-month assignment
// and recurrence detection: the lowercased clean description, falling back
// to the raw description.
func (t *Transaction) VendorKey() string {
	name := t.DescriptionClean
	if name == "" {
		name = t.Description
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// Signed returns the amount with its direction applied: negative for
// expenses, positive for income.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
