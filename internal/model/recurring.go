package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrencePattern describes a vendor whose transactions repeat at a
// statistically stable interval and amount. It is derived on demand from
// the full transaction history and never persisted.
type RecurrencePattern struct {
	NextExpectedDate    time.Time
	Vendor              string
	AverageAmount       decimal.Decimal
	AverageIntervalDays float64
	OccurrenceCount     int
	MemberIDs           []int64 // transaction IDs, ordered by date
}
