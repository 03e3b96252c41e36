// Package recurring detects vendors whose transactions repeat at a stable
// interval and amount.
package recurring

import (
	"context"
	"math"
	"sort"

	"github.com/davidlpuk/property-ledger-sub000/internal/model"
	"github.com/shopspring/decimal"
)

// Detection thresholds. Sub-weekly repeats are treated as noise.
const (
	minOccurrences    = 3
	amountTolerance   = 0.10 // fraction of the mean amount
	intervalTolerance = 5.0  // days around the mean interval
	minMeanInterval   = 7.0  // days
)

// Detector performs the recurrence analysis. It holds no state: every call
// recomputes from scratch, so results are idempotent and the computation
// can be cancelled and rerun at any point.
type Detector struct{}

// NewDetector creates a new recurrence detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect groups transactions by normalized vendor and returns the patterns
// that pass the stability checks, most frequent first.
func (d *Detector) Detect(ctx context.Context, txns []model.Transaction) ([]model.RecurrencePattern, error) {
	groups := make(map[string][]model.Transaction)
	for _, t := range txns {
		key := t.VendorKey()
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], t)
	}

	var patterns []model.RecurrencePattern
	for _, group := range groups {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if p, ok := analyzeGroup(group); ok {
			patterns = append(patterns, p)
		}
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].OccurrenceCount != patterns[j].OccurrenceCount {
			return patterns[i].OccurrenceCount > patterns[j].OccurrenceCount
		}
		return patterns[i].Vendor < patterns[j].Vendor
	})

	return patterns, nil
}

// analyzeGroup decides whether one vendor's transactions form a recurring
// pattern and builds it when they do.
func analyzeGroup(group []model.Transaction) (model.RecurrencePattern, bool) {
	if len(group) < minOccurrences {
		return model.RecurrencePattern{}, false
	}

	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Date.Before(group[j].Date)
	})

	mean := meanAmount(group)
	tolerance := mean.Mul(decimal.NewFromFloat(amountTolerance))
	for _, t := range group {
		if t.Amount.Sub(mean).Abs().GreaterThan(tolerance) {
			return model.RecurrencePattern{}, false
		}
	}

	intervals := make([]float64, 0, len(group)-1)
	for i := 1; i < len(group); i++ {
		days := group[i].Date.Sub(group[i-1].Date).Hours() / 24
		intervals = append(intervals, days)
	}

	var sum float64
	for _, iv := range intervals {
		sum += iv
	}
	meanInterval := sum / float64(len(intervals))
	if meanInterval < minMeanInterval {
		return model.RecurrencePattern{}, false
	}
	for _, iv := range intervals {
		if math.Abs(iv-meanInterval) > intervalTolerance {
			return model.RecurrencePattern{}, false
		}
	}

	last := group[len(group)-1]
	memberIDs := make([]int64, 0, len(group))
	for _, t := range group {
		memberIDs = append(memberIDs, t.ID)
	}

	vendor := last.DescriptionClean
	if vendor == "" {
		vendor = last.Description
	}

	return model.RecurrencePattern{
		Vendor:              vendor,
		AverageAmount:       mean,
		AverageIntervalDays: meanInterval,
		OccurrenceCount:     len(group),
		NextExpectedDate:    last.Date.AddDate(0, 0, int(math.Round(meanInterval))),
		MemberIDs:           memberIDs,
	}, true
}

func meanAmount(group []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range group {
		sum = sum.Add(t.Amount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(group))))
}
