package l3_service

import (
	"context"
	"math"
	"testing"
	"time"

	"dotyield/internal/domain"
	mock_repository "dotyield/internal/repository/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func constantYield(start time.Time, percent float64) []domain.DailyYield {
	return []domain.DailyYield{
		{Date: start, AnnualizedYieldPercent: percent},
	}
}

func Test_validateBacktestRequest(t *testing.T) {
	valid := BacktestRequest{
		InitialAmountUsd: 1000,
		StartDate:        date(2024, 1, 1),
		EndDate:          date(2024, 2, 1),
		Allocations: []domain.AllocationSpec{
			{Protocol: "bifrost", Asset: "vdot", Percentage: 100, Category: domain.PoolCategory_Staking},
		},
	}

	t.Run("valid request", func(t *testing.T) {
		require.NoError(t, validateBacktestRequest(valid))
	})

	t.Run("non positive amount", func(t *testing.T) {
		req := valid
		req.InitialAmountUsd = 0
		require.ErrorAs(t, validateBacktestRequest(req), &domain.InvalidRequestError{})
	})

	t.Run("start after end", func(t *testing.T) {
		req := valid
		req.StartDate = date(2024, 3, 1)
		require.ErrorAs(t, validateBacktestRequest(req), &domain.InvalidRequestError{})
	})

	t.Run("no allocations", func(t *testing.T) {
		req := valid
		req.Allocations = nil
		require.ErrorAs(t, validateBacktestRequest(req), &domain.InvalidRequestError{})
	})

	t.Run("negative percentage", func(t *testing.T) {
		req := valid
		req.Allocations = []domain.AllocationSpec{
			{Protocol: "bifrost", Asset: "vdot", Percentage: 120},
			{Protocol: "acala", Asset: "ldot", Percentage: -20},
		}
		require.ErrorAs(t, validateBacktestRequest(req), &domain.InvalidRequestError{})
	})

	t.Run("percentages do not sum to 100", func(t *testing.T) {
		req := valid
		req.Allocations = []domain.AllocationSpec{
			{Protocol: "bifrost", Asset: "vdot", Percentage: 60},
			{Protocol: "acala", Asset: "ldot", Percentage: 30},
		}
		require.ErrorAs(t, validateBacktestRequest(req), &domain.InvalidRequestError{})
	})

	t.Run("sum within tolerance", func(t *testing.T) {
		req := valid
		req.Allocations = []domain.AllocationSpec{
			{Protocol: "bifrost", Asset: "vdot", Percentage: 60.002},
			{Protocol: "acala", Asset: "ldot", Percentage: 39.999},
		}
		require.NoError(t, validateBacktestRequest(req))
	})
}

func Test_backtestServiceHandler_RunBacktest(t *testing.T) {
	newHandler := func(t *testing.T) (backtestServiceHandler, *mock_repository.MockYieldSnapshotRepository) {
		ctrl := gomock.NewController(t)
		snapshotRepository := mock_repository.NewMockYieldSnapshotRepository(ctrl)
		handler := backtestServiceHandler{
			YieldSnapshotRepository: snapshotRepository,
		}
		return handler, snapshotRepository
	}

	t.Run("zero yield leaves the portfolio untouched", func(t *testing.T) {
		handler, snapshotRepository := newHandler(t)

		start, end := date(2024, 1, 1), date(2024, 1, 31)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vdot", start, end).
			Return(constantYield(start, 0), nil)

		out, err := handler.RunBacktest(context.Background(), BacktestRequest{
			InitialAmountUsd: 1000,
			StartDate:        start,
			EndDate:          end,
			Allocations: []domain.AllocationSpec{
				{Protocol: "bifrost", Asset: "vdot", Percentage: 100, Category: domain.PoolCategory_Staking},
			},
		})
		require.NoError(t, err)

		require.InDelta(t, 1000.0, out.Summary.FinalAmountUsd, 1e-9)
		require.Equal(t, 0.0, out.Summary.SharpeRatio)
		require.Equal(t, 0.0, out.Summary.MaxDrawdownPercent)
		require.Equal(t, 30, out.Summary.DurationDays)
	})

	t.Run("single pool compounds daily across a leap year", func(t *testing.T) {
		handler, snapshotRepository := newHandler(t)

		start, end := date(2024, 1, 1), date(2025, 1, 1)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vdot", start, end).
			Return(constantYield(start, 12.5), nil)

		out, err := handler.RunBacktest(context.Background(), BacktestRequest{
			InitialAmountUsd: 1000,
			StartDate:        start,
			EndDate:          end,
			Allocations: []domain.AllocationSpec{
				{Protocol: "bifrost", Asset: "vdot", Percentage: 100, Category: domain.PoolCategory_Staking},
			},
		})
		require.NoError(t, err)

		// 2024 is a leap year: 366 compounding steps after day 0
		require.Equal(t, 366, out.Summary.DurationDays)
		expected := 1000 * math.Pow(1+0.125/365, 366)
		require.InDelta(t, expected, out.Summary.FinalAmountUsd, 1e-6)
	})

	t.Run("thirty one days at a fixed yield", func(t *testing.T) {
		handler, snapshotRepository := newHandler(t)

		start, end := date(2024, 3, 1), date(2024, 4, 1)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vdot", start, end).
			Return(constantYield(start, 30.11), nil)

		out, err := handler.RunBacktest(context.Background(), BacktestRequest{
			InitialAmountUsd: 10000,
			StartDate:        start,
			EndDate:          end,
			Allocations: []domain.AllocationSpec{
				{Protocol: "bifrost", Asset: "vdot", Percentage: 100, Category: domain.PoolCategory_Staking},
			},
		})
		require.NoError(t, err)

		expected := 10000 * math.Pow(1+0.3011/365, 31)
		require.InDelta(t, expected, out.Summary.FinalAmountUsd, 1e-6)
	})

	t.Run("split allocations and weighted average yield", func(t *testing.T) {
		handler, snapshotRepository := newHandler(t)

		start, end := date(2024, 1, 1), date(2024, 3, 1)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vdot", start, end).
			Return(constantYield(start, 19.07), nil)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "ldot", start, end).
			Return(constantYield(start, 12.5), nil)

		out, err := handler.RunBacktest(context.Background(), BacktestRequest{
			InitialAmountUsd: 50000,
			StartDate:        start,
			EndDate:          end,
			Allocations: []domain.AllocationSpec{
				{Protocol: "bifrost", Asset: "vdot", Percentage: 60, Category: domain.PoolCategory_Staking},
				{Protocol: "acala", Asset: "ldot", Percentage: 40, Category: domain.PoolCategory_Staking},
			},
		})
		require.NoError(t, err)

		require.Len(t, out.Breakdown, 2)
		require.InDelta(t, 30000.0, out.Breakdown[0].AllocatedUsd, 1e-9)
		require.InDelta(t, 20000.0, out.Breakdown[1].AllocatedUsd, 1e-9)
		require.InDelta(t, 16.442, out.Summary.WeightedAvgYieldPercent, 1e-3)
	})

	t.Run("unknown pool is flagged and holds its value", func(t *testing.T) {
		handler, snapshotRepository := newHandler(t)

		start, end := date(2024, 1, 1), date(2024, 1, 31)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vdot", start, end).
			Return(constantYield(start, 10), nil)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "xdot", start, end).
			Return([]domain.DailyYield{}, nil)

		out, err := handler.RunBacktest(context.Background(), BacktestRequest{
			InitialAmountUsd: 1000,
			StartDate:        start,
			EndDate:          end,
			Allocations: []domain.AllocationSpec{
				{Protocol: "bifrost", Asset: "vdot", Percentage: 50, Category: domain.PoolCategory_Staking},
				{Protocol: "unknown", Asset: "xdot", Percentage: 50, Category: domain.PoolCategory_Staking},
			},
		})
		require.NoError(t, err)

		require.NotNil(t, out.Breakdown[0].Resolved)
		require.Nil(t, out.Breakdown[0].Unresolved)

		require.Nil(t, out.Breakdown[1].Resolved)
		require.NotNil(t, out.Breakdown[1].Unresolved)
		require.Contains(t, out.Breakdown[1].Unresolved.Reason, "pool not found")

		// the unknown half neither earns nor loses
		resolvedFinal := out.Breakdown[0].Resolved.FinalValueUsd
		require.InDelta(t, resolvedFinal+500, out.Summary.FinalAmountUsd, 1e-9)
	})

	t.Run("rebalancing counts hops and charges cross protocol fees", func(t *testing.T) {
		handler, snapshotRepository := newHandler(t)

		start, end := date(2024, 1, 1), date(2024, 1, 29)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vdot", start, end).
			Return(constantYield(start, 10), nil)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "ldot", start, end).
			Return(constantYield(start, 8), nil)

		out, err := handler.RunBacktest(context.Background(), BacktestRequest{
			InitialAmountUsd:      10000,
			StartDate:             start,
			EndDate:               end,
			RebalanceIntervalDays: 7,
			XcmFeeUsd:             5,
			Allocations: []domain.AllocationSpec{
				{Protocol: "bifrost", Asset: "vdot", Percentage: 50, Category: domain.PoolCategory_Staking},
				{Protocol: "acala", Asset: "ldot", Percentage: 50, Category: domain.PoolCategory_Staking},
			},
		})
		require.NoError(t, err)

		// days 7, 14, 21, 28; one hop between two protocols at $5 each
		require.Equal(t, 4, out.Summary.RebalanceCount)
		require.InDelta(t, 20.0, out.Summary.FeesPaidUsd, 1e-9)
	})

	t.Run("single protocol rebalancing is free", func(t *testing.T) {
		handler, snapshotRepository := newHandler(t)

		start, end := date(2024, 1, 1), date(2024, 1, 15)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vdot", start, end).
			Return(constantYield(start, 10), nil)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vksm", start, end).
			Return(constantYield(start, 12), nil)

		out, err := handler.RunBacktest(context.Background(), BacktestRequest{
			InitialAmountUsd:      10000,
			StartDate:             start,
			EndDate:               end,
			RebalanceIntervalDays: 7,
			XcmFeeUsd:             5,
			Allocations: []domain.AllocationSpec{
				{Protocol: "bifrost", Asset: "vdot", Percentage: 50, Category: domain.PoolCategory_Staking},
				{Protocol: "bifrost", Asset: "vksm", Percentage: 50, Category: domain.PoolCategory_Staking},
			},
		})
		require.NoError(t, err)

		require.Equal(t, 2, out.Summary.RebalanceCount)
		require.Equal(t, 0.0, out.Summary.FeesPaidUsd)
	})

	t.Run("long ranges are downsampled but keep the final day", func(t *testing.T) {
		handler, snapshotRepository := newHandler(t)

		start, end := date(2020, 1, 1), date(2023, 1, 1)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vdot", start, end).
			Return(constantYield(start, 10), nil)

		out, err := handler.RunBacktest(context.Background(), BacktestRequest{
			InitialAmountUsd: 1000,
			StartDate:        start,
			EndDate:          end,
			Allocations: []domain.AllocationSpec{
				{Protocol: "bifrost", Asset: "vdot", Percentage: 100, Category: domain.PoolCategory_Staking},
			},
		})
		require.NoError(t, err)

		require.LessOrEqual(t, len(out.TimeSeries), 500)
		last := out.TimeSeries[len(out.TimeSeries)-1]
		require.Equal(t, end, last.Date)
		require.InDelta(t, out.Summary.FinalAmountUsd, last.TotalValueUsd, 1e-9)
	})

	t.Run("impermanent loss only hits liquidity pools", func(t *testing.T) {
		handler, snapshotRepository := newHandler(t)

		start, end := date(2024, 1, 1), date(2024, 2, 1)
		varying := []domain.DailyYield{}
		for i := 0; ; i++ {
			day := start.AddDate(0, 0, i)
			if day.After(end) {
				break
			}
			percent := 10.0
			if i%2 == 0 {
				percent = 20.0
			}
			varying = append(varying, domain.DailyYield{Date: day, AnnualizedYieldPercent: percent})
		}

		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "vdot", start, end).
			Return(varying, nil)
		snapshotRepository.EXPECT().
			ListDailyYields(gomock.Any(), "lp-dot-ksm", start, end).
			Return(varying, nil)

		out, err := handler.RunBacktest(context.Background(), BacktestRequest{
			InitialAmountUsd:       10000,
			StartDate:              start,
			EndDate:                end,
			IncludeImpermanentLoss: true,
			Allocations: []domain.AllocationSpec{
				{Protocol: "bifrost", Asset: "vdot", Percentage: 50, Category: domain.PoolCategory_Staking},
				{Protocol: "bifrost", Asset: "lp-dot-ksm", Percentage: 50, Category: domain.PoolCategory_Lp},
			},
		})
		require.NoError(t, err)

		require.Equal(t, 0.0, out.Breakdown[0].Resolved.ImpermanentLossUsd)
		require.Greater(t, out.Breakdown[1].Resolved.ImpermanentLossUsd, 0.0)
		require.Less(t, out.Breakdown[1].Resolved.FinalValueUsd, out.Breakdown[0].Resolved.FinalValueUsd)
	})
}
