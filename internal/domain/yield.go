package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type YieldGranularity string

const (
	YieldGranularity_Daily YieldGranularity = "daily"
)

// YieldSnapshot is the derived view of an asset's yield at a point in time.
// TotalYieldPercent compounds the staking and auxiliary components rather
// than summing them.
type YieldSnapshot struct {
	Asset       string
	Timestamp   time.Time
	Granularity YieldGranularity

	Yield7dPercent        float64
	Yield30dPercent       float64
	StakingYieldPercent   float64
	AuxiliaryYieldPercent float64
	TotalYieldPercent     float64

	RateAtSnapshot decimal.Decimal
	BasePriceUsd   float64
}
