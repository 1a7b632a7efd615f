package calculator

import (
	"testing"
	"time"

	"dotyield/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_SharpeRatio(t *testing.T) {
	t.Run("fewer than two samples", func(t *testing.T) {
		require.Equal(t, 0.0, SharpeRatio([]float64{}, 0))
		require.Equal(t, 0.0, SharpeRatio([]float64{0.01}, 0))
	})

	t.Run("flat return series", func(t *testing.T) {
		require.Equal(t, 0.0, SharpeRatio([]float64{0.01, 0.01, 0.01}, 0))
	})

	t.Run("known series", func(t *testing.T) {
		// mean 0.015, sample stdev ~0.0070711
		out := SharpeRatio([]float64{0.01, 0.02}, 0)
		require.InDelta(t, 40.53, out, 0.01)
	})

	t.Run("risk free rate reduces the ratio", func(t *testing.T) {
		returns := []float64{0.001, 0.002, 0.0015}
		require.Greater(t, SharpeRatio(returns, 0), SharpeRatio(returns, 0.05))
	})
}

func Test_AnnualizedReturn(t *testing.T) {
	t.Run("zero duration", func(t *testing.T) {
		require.Equal(t, 0.0, AnnualizedReturn(1000, 1100, 0))
	})

	t.Run("one year round trip", func(t *testing.T) {
		require.InDelta(t, 0.10, AnnualizedReturn(1000, 1100, 365), 1e-9)
	})

	t.Run("two years compresses", func(t *testing.T) {
		require.InDelta(t, 0.0488088, AnnualizedReturn(1000, 1100, 730), 1e-6)
	})
}

func Test_AnnualizeRateGrowth(t *testing.T) {
	t.Run("exact one year window", func(t *testing.T) {
		require.InDelta(t, 0.05, AnnualizeRateGrowth(1.05, 1.00, 365), 1e-9)
	})

	t.Run("seven day window compounds up", func(t *testing.T) {
		require.InDelta(t, 0.1098017, AnnualizeRateGrowth(1.002, 1.000, 7), 1e-6)
	})

	t.Run("depreciation is unusable", func(t *testing.T) {
		require.Equal(t, 0.0, AnnualizeRateGrowth(0.99, 1.00, 7))
	})

	t.Run("flat rate is unusable", func(t *testing.T) {
		require.Equal(t, 0.0, AnnualizeRateGrowth(1.00, 1.00, 7))
	})

	t.Run("non positive reference", func(t *testing.T) {
		require.Equal(t, 0.0, AnnualizeRateGrowth(1.05, 0, 7))
		require.Equal(t, 0.0, AnnualizeRateGrowth(1.05, -1, 7))
	})

	t.Run("non positive window", func(t *testing.T) {
		require.Equal(t, 0.0, AnnualizeRateGrowth(1.05, 1.00, 0))
	})
}

func Test_DrawdownTracker(t *testing.T) {
	t.Run("peak to trough", func(t *testing.T) {
		tracker := DrawdownTracker{}
		for _, v := range []float64{100, 110, 99, 120, 90} {
			tracker.Observe(v)
		}
		require.InDelta(t, 25.0, tracker.MaxDrawdownPercent(), 1e-9)
	})

	t.Run("never decreases", func(t *testing.T) {
		tracker := DrawdownTracker{}
		tracker.Observe(100)
		tracker.Observe(50)
		require.InDelta(t, 50.0, tracker.MaxDrawdownPercent(), 1e-9)

		// recovery does not shrink the recorded figure
		tracker.Observe(100)
		require.InDelta(t, 50.0, tracker.MaxDrawdownPercent(), 1e-9)
	})

	t.Run("monotonic series has no drawdown", func(t *testing.T) {
		tracker := DrawdownTracker{}
		for _, v := range []float64{100, 101, 102, 103} {
			tracker.Observe(v)
		}
		require.Equal(t, 0.0, tracker.MaxDrawdownPercent())
	})
}

func Test_Downsample(t *testing.T) {
	makePoints := func(n int) []domain.TimeSeriesPoint {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		out := make([]domain.TimeSeriesPoint, n)
		for i := range out {
			out[i] = domain.TimeSeriesPoint{
				Date:          start.AddDate(0, 0, i),
				TotalValueUsd: float64(i),
			}
		}
		return out
	}

	t.Run("short series passes through", func(t *testing.T) {
		points := makePoints(100)
		require.Equal(t, points, Downsample(points, 500))
	})

	t.Run("long series shrinks and keeps the final point", func(t *testing.T) {
		points := makePoints(1001)
		out := Downsample(points, 500)

		require.LessOrEqual(t, len(out), 500)
		require.Equal(t, points[0], out[0])
		require.Equal(t, points[len(points)-1], out[len(out)-1])
	})

	t.Run("final point kept when stride steps over it", func(t *testing.T) {
		points := makePoints(7)
		out := Downsample(points, 3)
		require.Equal(t, points[len(points)-1], out[len(out)-1])
	})
}
