package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthly(t *testing.T, id int64, vendor, amount string, year int, month time.Month, day int) model.Transaction {
	t.Helper()
	return model.Transaction{
		ID:               id,
		Date:             time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Description:      vendor,
		DescriptionClean: vendor,
		Amount:           decimal.RequireFromString(amount),
		Kind:             model.KindExpense,
	}
}

func TestDetectMonthlySubscription(t *testing.T) {
	txns := []model.Transaction{
		monthly(t, 1, "Netflix Monthly", "15.99", 2024, time.January, 15),
		monthly(t, 2, "Netflix Monthly", "15.99", 2024, time.February, 15),
		monthly(t, 3, "Netflix Monthly", "15.99", 2024, time.March, 15),
		// Unrelated vendor with too few occurrences.
		monthly(t, 4, "Corner Bakery", "4.50", 2024, time.January, 3),
		monthly(t, 5, "Corner Bakery", "4.50", 2024, time.February, 3),
	}

	patterns, err := NewDetector().Detect(context.Background(), txns)
	require.NoError(t, err)
	require.Len(t, patterns, 1)

	p := patterns[0]
	assert.Equal(t, "Netflix Monthly", p.Vendor)
	assert.Equal(t, 3, p.OccurrenceCount)
	assert.True(t, p.AverageAmount.Equal(decimal.RequireFromString("15.99")))
	assert.Equal(t, []int64{1, 2, 3}, p.MemberIDs)
	// Intervals are 31 and 29 days; the projection lands mid-April.
	assert.Equal(t, time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC), p.NextExpectedDate)
	assert.InDelta(t, 30.0, p.AverageIntervalDays, 0.01)
}

func TestDetectRejectsUnstableAmounts(t *testing.T) {
	txns := []model.Transaction{
		monthly(t, 1, "Utility Co", "100.00", 2024, time.January, 1),
		monthly(t, 2, "Utility Co", "100.00", 2024, time.February, 1),
		monthly(t, 3, "Utility Co", "130.00", 2024, time.March, 1),
	}

	patterns, err := NewDetector().Detect(context.Background(), txns)
	require.NoError(t, err)
	assert.Empty(t, patterns, "a member deviating more than 10% from the mean breaks the pattern")
}

func TestDetectRejectsUnstableIntervals(t *testing.T) {
	txns := []model.Transaction{
		monthly(t, 1, "Gym Club", "30.00", 2024, time.January, 1),
		monthly(t, 2, "Gym Club", "30.00", 2024, time.January, 31),
		monthly(t, 3, "Gym Club", "30.00", 2024, time.February, 5),
	}

	patterns, err := NewDetector().Detect(context.Background(), txns)
	require.NoError(t, err)
	assert.Empty(t, patterns, "intervals of 30 and 5 days are not a stable cadence")
}

func TestDetectRejectsSubWeeklyRepeats(t *testing.T) {
	txns := []model.Transaction{
		monthly(t, 1, "Coffee Cart", "3.50", 2024, time.January, 1),
		monthly(t, 2, "Coffee Cart", "3.50", 2024, time.January, 4),
		monthly(t, 3, "Coffee Cart", "3.50", 2024, time.January, 7),
	}

	patterns, err := NewDetector().Detect(context.Background(), txns)
	require.NoError(t, err)
	assert.Empty(t, patterns, "sub-weekly repeats are noise, not recurrence")
}

func TestDetectSortsByOccurrenceCount(t *testing.T) {
	var txns []model.Transaction
	for i := 0; i < 4; i++ {
		txns = append(txns, monthly(t, int64(i+1), "Internet ISP", "49.99", 2024, time.Month(i+1), 1))
	}
	for i := 0; i < 3; i++ {
		txns = append(txns, monthly(t, int64(i+10), "Netflix Monthly", "15.99", 2024, time.Month(i+1), 15))
	}

	patterns, err := NewDetector().Detect(context.Background(), txns)
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	assert.Equal(t, "Internet ISP", patterns[0].Vendor)
	assert.Equal(t, "Netflix Monthly", patterns[1].Vendor)
}

func TestDetectIsIdempotent(t *testing.T) {
	txns := []model.Transaction{
		monthly(t, 1, "Netflix Monthly", "15.99", 2024, time.January, 15),
		monthly(t, 2, "Netflix Monthly", "15.99", 2024, time.February, 15),
		monthly(t, 3, "Netflix Monthly", "15.99", 2024, time.March, 15),
	}

	d := NewDetector()
	first, err := d.Detect(context.Background(), txns)
	require.NoError(t, err)
	second, err := d.Detect(context.Background(), txns)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDetectHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	txns := []model.Transaction{
		monthly(t, 1, "Netflix Monthly", "15.99", 2024, time.January, 15),
		monthly(t, 2, "Netflix Monthly", "15.99", 2024, time.February, 15),
		monthly(t, 3, "Netflix Monthly", "15.99", 2024, time.March, 15),
	}

	_, err := NewDetector().Detect(ctx, txns)
	assert.ErrorIs(t, err, context.Canceled)
}
