package calculator

import (
	"math"

	"dotyield/internal/domain"

	"github.com/montanaflynn/stats"
)

const daysPerYear = 365

// SharpeRatio computes the annualized risk-adjusted return over a sequence
// of daily returns expressed as decimals (0.001 = 0.1%). Fewer than two
// samples, or a flat return series, yields 0 rather than a division blowup.
func SharpeRatio(dailyReturns []float64, riskFreeAnnual float64) float64 {
	if len(dailyReturns) < 2 {
		return 0
	}

	stdev, err := stats.StandardDeviationSample(dailyReturns)
	if err != nil || stdev == 0 {
		return 0
	}

	mean, err := stats.Mean(dailyReturns)
	if err != nil {
		return 0
	}

	dailyRiskFree := riskFreeAnnual / daysPerYear
	return (mean - dailyRiskFree) / stdev * math.Sqrt(daysPerYear)
}

// AnnualizedReturn extrapolates the whole-period growth to a 365-day basis.
// A zero-length period has no meaningful annualization and returns 0.
func AnnualizedReturn(initialValue, finalValue float64, durationDays int) float64 {
	if durationDays == 0 || initialValue <= 0 {
		return 0
	}
	return math.Pow(finalValue/initialValue, daysPerYear/float64(durationDays)) - 1
}

// AnnualizeRateGrowth converts the growth between two exchange-rate samples
// into an annualized rate. The rate of a yield-bearing token only climbs as
// rewards accrue, so depreciation or a non-positive reference means the
// window is unusable and contributes 0 - never a negative or NaN figure.
func AnnualizeRateGrowth(currentRate, referenceRate, daysBetween float64) float64 {
	if referenceRate <= 0 || currentRate <= referenceRate || daysBetween <= 0 {
		return 0
	}
	periodReturn := currentRate/referenceRate - 1
	return math.Pow(1+periodReturn, daysPerYear/daysBetween) - 1
}

// DrawdownTracker follows the running peak of a value series. The recorded
// maximum drawdown never decreases as more days are observed.
type DrawdownTracker struct {
	peak        float64
	maxDrawdown float64
}

func (d *DrawdownTracker) Observe(value float64) {
	if value > d.peak {
		d.peak = value
	}
	if d.peak > 0 {
		drawdown := (d.peak - value) / d.peak
		if drawdown > d.maxDrawdown {
			d.maxDrawdown = drawdown
		}
	}
}

// MaxDrawdownPercent returns the largest peak-to-trough decline seen so
// far, as a non-negative percentage.
func (d *DrawdownTracker) MaxDrawdownPercent() float64 {
	return d.maxDrawdown * 100
}

// Downsample reduces a daily trajectory to at most maxPoints via uniform
// stride sampling. The final point is always kept, even when the stride
// would step over it.
func Downsample(points []domain.TimeSeriesPoint, maxPoints int) []domain.TimeSeriesPoint {
	if maxPoints <= 0 || len(points) <= maxPoints {
		return points
	}

	stride := int(math.Ceil(float64(len(points)) / float64(maxPoints)))
	out := []domain.TimeSeriesPoint{}
	for i := 0; i < len(points); i += stride {
		out = append(out, points[i])
	}

	last := points[len(points)-1]
	if out[len(out)-1].Date != last.Date {
		out = append(out, last)
	}

	return out
}
