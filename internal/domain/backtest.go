package domain

import (
	"time"
)

type PoolCategory string

const (
	PoolCategory_Staking PoolCategory = "staking"
	PoolCategory_Farming PoolCategory = "farming"
	PoolCategory_Lp      PoolCategory = "lp"
	PoolCategory_Lending PoolCategory = "lending"
)

// IsLiquidityPool reports whether the category exposes the position to
// two-sided price divergence, i.e. whether impermanent loss applies.
func (c PoolCategory) IsLiquidityPool() bool {
	return c == PoolCategory_Farming || c == PoolCategory_Lp
}

// AllocationSpec is one slice of the user's capital: which protocol and
// asset it goes to, and what share of the initial amount.
type AllocationSpec struct {
	Protocol   string       `json:"protocol"`
	Asset      string       `json:"asset"`
	Percentage float64      `json:"percentage"`
	Category   PoolCategory `json:"category,omitempty"`
}

func (a AllocationSpec) PoolKey() string {
	return a.Protocol + "/" + a.Asset
}

// TimeSeriesPoint is one simulated day of the portfolio trajectory.
type TimeSeriesPoint struct {
	Date               time.Time `json:"date"`
	TotalValueUsd      float64   `json:"totalValueUsd"`
	DailyReturnPercent float64   `json:"dailyReturnPercent"`
}

// ResolvedAllocation carries the per-pool outcome when yield history was
// found for the pool.
type ResolvedAllocation struct {
	FinalValueUsd      float64 `json:"finalValueUsd"`
	ReturnPercent      float64 `json:"returnPercent"`
	AvgYieldPercent    float64 `json:"avgYieldPercent"`
	ImpermanentLossUsd float64 `json:"impermanentLossUsd"`
}

// UnresolvedAllocation marks an allocation whose pool had no usable yield
// history. The rest of the run proceeds without it.
type UnresolvedAllocation struct {
	Reason string `json:"reason"`
}

// AllocationResult is a tagged variant: exactly one of Resolved or
// Unresolved is set.
type AllocationResult struct {
	Protocol      string                `json:"protocol"`
	Asset         string                `json:"asset"`
	TargetPercent float64               `json:"targetPercent"`
	AllocatedUsd  float64               `json:"allocatedUsd"`
	Resolved      *ResolvedAllocation   `json:"resolved,omitempty"`
	Unresolved    *UnresolvedAllocation `json:"unresolved,omitempty"`
}

type BacktestSummary struct {
	InitialAmountUsd        float64 `json:"initialAmountUsd"`
	FinalAmountUsd          float64 `json:"finalAmountUsd"`
	AbsoluteReturnUsd       float64 `json:"absoluteReturnUsd"`
	ReturnPercent           float64 `json:"returnPercent"`
	AnnualizedReturnPercent float64 `json:"annualizedReturnPercent"`
	WeightedAvgYieldPercent float64 `json:"weightedAvgYieldPercent"`
	MaxDrawdownPercent      float64 `json:"maxDrawdownPercent"`
	SharpeRatio             float64 `json:"sharpeRatio"`
	RebalanceCount          int     `json:"rebalanceCount"`
	FeesPaidUsd             float64 `json:"feesPaidUsd"`
	DurationDays            int     `json:"durationDays"`
}

// BacktestResult is produced once per run and never mutated afterwards, so
// it is safe to persist or cache verbatim.
type BacktestResult struct {
	Summary    BacktestSummary    `json:"summary"`
	Breakdown  []AllocationResult `json:"breakdown"`
	TimeSeries []TimeSeriesPoint  `json:"timeSeries"`
}
