package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateObservation is one crawled exchange-rate sample for a yield-bearing
// token: how many base-asset units back one unit of the derivative token,
// plus the pool totals the rate was computed from. Observations are keyed
// by (asset, hour bucket) upstream, so re-crawling a bucket overwrites
// rather than duplicates.
type RateObservation struct {
	Asset       string
	Timestamp   time.Time
	Rate        decimal.Decimal
	TotalPooled decimal.Decimal
	TotalIssued decimal.Decimal
}

type DailyYield struct {
	Date                   time.Time
	AnnualizedYieldPercent float64
}
