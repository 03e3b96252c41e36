package statement

import (
	"testing"
	"time"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func TestExtractStructuredEnglishHeader(t *testing.T) {
	content := "Date;Description;Amount\n" +
		"05/03/2024;RENT PAYMENT FLAT 2B;850,00\n" +
		"06/03/2024;MORTGAGE BANK;-1.200,00\n"

	res := NewExtractor(Options{}).Extract(content, "bank.csv")
	require.Len(t, res.Transactions, 2)

	rent := res.Transactions[0]
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), rent.Date)
	assert.Equal(t, "RENT PAYMENT FLAT 2B", rent.Description)
	assert.True(t, rent.Amount.Equal(mustDecimal(t, "850")))
	assert.Equal(t, model.KindIncome, rent.Kind)
	assert.Equal(t, "bank.csv", rent.SourceFile)
	assert.NotEmpty(t, rent.Fingerprint)

	mortgage := res.Transactions[1]
	assert.True(t, mortgage.Amount.Equal(mustDecimal(t, "1200")), "amount is stored as a magnitude")
	assert.Equal(t, model.KindExpense, mortgage.Kind)
}

func TestExtractStructuredSpanishHeader(t *testing.T) {
	content := "Fecha;Concepto;Importe\n" +
		"15/01/2024;ALQUILER PISO CENTRO;650,00\n"

	res := NewExtractor(Options{}).Extract(content, "banco.csv")
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "ALQUILER PISO CENTRO", res.Transactions[0].Description)
	assert.Equal(t, model.KindIncome, res.Transactions[0].Kind)
}

func TestExtractStructuredQuotedFields(t *testing.T) {
	content := "Date,Description,Amount\n" +
		`05/03/2024,"SUPERMARKET, DOWNTOWN","-1.234,56"` + "\n"

	res := NewExtractor(Options{}).Extract(content, "bank.csv")
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "SUPERMARKET, DOWNTOWN", res.Transactions[0].Description)
	assert.True(t, res.Transactions[0].Amount.Equal(mustDecimal(t, "1234.56")))
	assert.Equal(t, model.KindExpense, res.Transactions[0].Kind)
}

func TestExtractStructuredSkipsBadRows(t *testing.T) {
	content := "Date;Description;Amount\n" +
		"05/03/2024;VALID ROW;100,00\n" +
		"not enough fields\n" +
		"06/03/2024;ZERO AMOUNT;0,00\n" +
		"07/03/2024;NO AMOUNT;banana\n" +
		"\n"

	res := NewExtractor(Options{}).Extract(content, "bank.csv")
	assert.Len(t, res.Transactions, 1)
	assert.Equal(t, 3, res.Skipped)
	assert.Zero(t, res.Errors, "skipped rows are not errors by default")
}

func TestExtractStructuredDateModes(t *testing.T) {
	content := "Date;Description;Amount\n" +
		"soon;PENDING CHARGE;50,00\n"

	t.Run("lenient defaults to today", func(t *testing.T) {
		res := NewExtractor(Options{}).Extract(content, "bank.csv")
		require.Len(t, res.Transactions, 1)
		assert.Equal(t, Today(), res.Transactions[0].Date)
	})

	t.Run("strict skips and counts an error", func(t *testing.T) {
		res := NewExtractor(Options{StrictDates: true}).Extract(content, "bank.csv")
		assert.Empty(t, res.Transactions)
		assert.Equal(t, 1, res.Errors)
	})
}

func TestExtractFallbackSpanishAmount(t *testing.T) {
	content := "ACCOUNT STATEMENT\n" +
		"05/03/2024 RECIBO COMUNIDAD GARAJE 45,50EUR 1.250,00\n" +
		"10/03/2024 TRANSFERENCIA RECIBIDA -315,51EUR\n" +
		"no date on this line 99,00\n"

	res := NewExtractor(Options{}).Extract(content, "movimientos.txt")
	require.Len(t, res.Transactions, 2)

	charge := res.Transactions[0]
	assert.Equal(t, "RECIBO COMUNIDAD GARAJE", charge.Description)
	assert.True(t, charge.Amount.Equal(mustDecimal(t, "45.50")))
	// Fallback polarity is inverted: positive statement amounts are charges.
	assert.Equal(t, model.KindExpense, charge.Kind)

	transfer := res.Transactions[1]
	assert.True(t, transfer.Amount.Equal(mustDecimal(t, "315.51")))
	assert.Equal(t, model.KindIncome, transfer.Kind)
}

func TestExtractFallbackNumericHeuristic(t *testing.T) {
	// Without a Spanish-format amount the extractor picks the second-to-last
	// numeric with magnitude above one; the trailing value is the balance.
	content := "STATEMENT\n" +
		"12/04/2024 ATM WITHDRAWAL 60 1250\n" +
		"13/04/2024 PARKING FEE 12\n"

	res := NewExtractor(Options{}).Extract(content, "statement.txt")
	require.Len(t, res.Transactions, 2)

	atm := res.Transactions[0]
	assert.Equal(t, "ATM WITHDRAWAL", atm.Description)
	assert.True(t, atm.Amount.Equal(mustDecimal(t, "60")))
	assert.Equal(t, model.KindExpense, atm.Kind)

	parking := res.Transactions[1]
	assert.Equal(t, "PARKING FEE", parking.Description)
	assert.True(t, parking.Amount.Equal(mustDecimal(t, "12")), "single candidate falls back to the last")
}

func TestExtractEmptyContent(t *testing.T) {
	res := NewExtractor(Options{}).Extract("", "empty.csv")
	assert.Empty(t, res.Transactions)
}
