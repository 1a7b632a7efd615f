package l3_service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"dotyield/internal/calculator"
	"dotyield/internal/db/models/postgres/public/model"
	"dotyield/internal/domain"
	"dotyield/internal/logger"
	"dotyield/internal/repository"
	"dotyield/internal/util"

	"github.com/montanaflynn/stats"
)

const (
	allocationSumTolerance = 0.01
	maxTimeSeriesPoints    = 500
	maxImpliedPriceDrift   = 0.30
)

type BacktestRequest struct {
	InitialAmountUsd       float64                 `json:"initialAmountUsd"`
	StartDate              time.Time               `json:"startDate"`
	EndDate                time.Time               `json:"endDate"`
	Allocations            []domain.AllocationSpec `json:"allocations"`
	RebalanceIntervalDays  int                     `json:"rebalanceIntervalDays"`
	IncludeImpermanentLoss bool                    `json:"includeImpermanentLoss"`
	XcmFeeUsd              float64                 `json:"xcmFeeUsd"`
	CompoundFrequencyDays  int                     `json:"compoundFrequencyDays"`
	RiskFreeAnnualPercent  float64                 `json:"riskFreeAnnualPercent"`
}

type BacktestService interface {
	RunBacktest(ctx context.Context, req BacktestRequest) (*domain.BacktestResult, error)
	RunQuickSimulation(ctx context.Context, req QuickSimulationRequest) (*QuickSimulationResult, error)
}

type backtestServiceHandler struct {
	Db                      *sql.DB
	YieldSnapshotRepository repository.YieldSnapshotRepository
	BacktestRunRepository   repository.BacktestRunRepository
}

func NewBacktestService(
	db *sql.DB,
	yieldSnapshotRepository repository.YieldSnapshotRepository,
	backtestRunRepository repository.BacktestRunRepository,
) BacktestService {
	return backtestServiceHandler{
		Db:                      db,
		YieldSnapshotRepository: yieldSnapshotRepository,
		BacktestRunRepository:   backtestRunRepository,
	}
}

func validateBacktestRequest(req BacktestRequest) error {
	if req.InitialAmountUsd <= 0 {
		return domain.InvalidRequestError{Reason: "initial amount must be positive"}
	}
	if !req.StartDate.Before(req.EndDate) {
		return domain.InvalidRequestError{Reason: "start date must be before end date"}
	}
	if len(req.Allocations) == 0 {
		return domain.InvalidRequestError{Reason: "at least one allocation is required"}
	}

	sum := 0.0
	for _, a := range req.Allocations {
		if a.Percentage < 0 {
			return domain.InvalidRequestError{Reason: fmt.Sprintf("allocation %s has negative percentage", a.PoolKey())}
		}
		sum += a.Percentage
	}
	if math.Abs(sum-100) > allocationSumTolerance {
		return domain.InvalidRequestError{Reason: fmt.Sprintf("allocation percentages sum to %.2f, expected 100", sum)}
	}

	return nil
}

// allocationState is the per-allocation arena slot mutated through the day
// loop. It belongs to exactly one run.
type allocationState struct {
	spec         domain.AllocationSpec
	allocatedUsd float64
	valueUsd     float64
	yieldSamples []float64
	curve        *yieldCurve
	ilLossUsd    float64
}

// RunBacktest simulates the portfolio day by day over the inclusive date
// range. Yield history is collected up front - one fetch per distinct pool,
// concurrently - and the day loop itself never touches I/O.
func (h backtestServiceHandler) RunBacktest(ctx context.Context, req BacktestRequest) (*domain.BacktestResult, error) {
	if err := validateBacktestRequest(req); err != nil {
		return nil, err
	}

	days := util.DaySequence(req.StartDate, req.EndDate)
	durationDays := len(days) - 1

	curves := h.fetchYieldCurves(ctx, req.Allocations, days[0], days[len(days)-1])

	states := make([]*allocationState, 0, len(req.Allocations))
	for _, spec := range req.Allocations {
		allocated := req.InitialAmountUsd * spec.Percentage / 100
		states = append(states, &allocationState{
			spec:         spec,
			allocatedUsd: allocated,
			valueUsd:     allocated,
			curve:        curves[spec.PoolKey()],
		})
	}

	compoundFrequency := req.CompoundFrequencyDays
	if compoundFrequency <= 0 {
		compoundFrequency = 1
	}

	distinctProtocols := map[string]bool{}
	for _, spec := range req.Allocations {
		distinctProtocols[spec.Protocol] = true
	}
	rebalanceFee := req.XcmFeeUsd * float64(len(distinctProtocols)-1)

	var (
		points         = make([]domain.TimeSeriesPoint, 0, len(days))
		drawdown       = calculator.DrawdownTracker{}
		prevTotal      = 0.0
		rebalanceCount = 0
		feesPaidUsd    = 0.0
	)

	for i, day := range days {
		for _, state := range states {
			yieldPercent := 0.0
			if state.curve != nil {
				yieldPercent = state.curve.at(day)
				state.yieldSamples = append(state.yieldSamples, yieldPercent)
			}

			// day 0 is the baseline and never compounds
			if i > 0 && i%compoundFrequency == 0 {
				dailyRate := (yieldPercent / 100) / 365
				state.valueUsd *= 1 + dailyRate*float64(compoundFrequency)
			}
		}

		if req.RebalanceIntervalDays > 0 && i > 0 && i%req.RebalanceIntervalDays == 0 {
			total := 0.0
			for _, state := range states {
				total += state.valueUsd
			}

			// one fee per cross-protocol hop, not per allocation
			fee := rebalanceFee
			if fee > total {
				fee = total
			}
			total -= fee
			feesPaidUsd += fee
			rebalanceCount++

			// redistribute to the original targets, not the drifted weights
			for _, state := range states {
				state.valueUsd = total * state.spec.Percentage / 100
			}
		}

		total := 0.0
		for _, state := range states {
			total += state.valueUsd
		}

		dailyReturnPercent := 0.0
		if i > 0 && prevTotal > 0 {
			dailyReturnPercent = 100 * (total - prevTotal) / prevTotal
		}

		points = append(points, domain.TimeSeriesPoint{
			Date:               day,
			TotalValueUsd:      total,
			DailyReturnPercent: dailyReturnPercent,
		})
		drawdown.Observe(total)
		prevTotal = total
	}

	if req.IncludeImpermanentLoss {
		for _, state := range states {
			applyImpermanentLoss(state)
		}
	}

	finalAmount := 0.0
	for _, state := range states {
		finalAmount += state.valueUsd
	}

	dailyReturns := make([]float64, 0, len(points)-1)
	for _, p := range points[1:] {
		dailyReturns = append(dailyReturns, p.DailyReturnPercent/100)
	}

	result := &domain.BacktestResult{
		Summary: domain.BacktestSummary{
			InitialAmountUsd:        req.InitialAmountUsd,
			FinalAmountUsd:          finalAmount,
			AbsoluteReturnUsd:       finalAmount - req.InitialAmountUsd,
			ReturnPercent:           100 * (finalAmount - req.InitialAmountUsd) / req.InitialAmountUsd,
			AnnualizedReturnPercent: 100 * calculator.AnnualizedReturn(req.InitialAmountUsd, finalAmount, durationDays),
			WeightedAvgYieldPercent: weightedAvgYield(states),
			MaxDrawdownPercent:      -drawdown.MaxDrawdownPercent(),
			SharpeRatio:             calculator.SharpeRatio(dailyReturns, req.RiskFreeAnnualPercent/100),
			RebalanceCount:          rebalanceCount,
			FeesPaidUsd:             feesPaidUsd,
			DurationDays:            durationDays,
		},
		Breakdown:  buildBreakdown(states),
		TimeSeries: calculator.Downsample(points, maxTimeSeriesPoints),
	}

	h.persistRun(ctx, req, result)

	return result, nil
}

// fetchYieldCurves loads daily yield history for every distinct pool in the
// request. Fetches are read-only and independent, so they run concurrently.
// A pool with no rows, or whose fetch fails, simply has no curve - the
// allocation degrades to 0% yield with an unresolved marker.
func (h backtestServiceHandler) fetchYieldCurves(ctx context.Context, allocations []domain.AllocationSpec, from, to time.Time) map[string]*yieldCurve {
	log := logger.FromContext(ctx)

	type poolFetch struct {
		key   string
		asset string
	}
	pools := []poolFetch{}
	seen := map[string]bool{}
	for _, a := range allocations {
		if !seen[a.PoolKey()] {
			seen[a.PoolKey()] = true
			pools = append(pools, poolFetch{key: a.PoolKey(), asset: a.Asset})
		}
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		curves = map[string]*yieldCurve{}
	)
	for _, pool := range pools {
		wg.Add(1)
		go func(pool poolFetch) {
			defer wg.Done()
			yields, err := h.YieldSnapshotRepository.ListDailyYields(h.Db, pool.asset, from, to)
			if err != nil {
				log.Warnf("failed to fetch yield history for %s: %s", pool.key, err.Error())
				return
			}
			if len(yields) == 0 {
				return
			}
			mu.Lock()
			curves[pool.key] = newYieldCurve(yields)
			mu.Unlock()
		}(pool)
	}
	wg.Wait()

	return curves
}

// applyImpermanentLoss approximates divergence loss for liquidity-pool
// allocations. Without real price series we proxy price drift with the
// dispersion of the pool's observed daily yields, capped at 30%, and run
// the constant-product formula IL = 2*sqrt(r)/(1+r) - 1 on the implied
// ending/starting price ratio.
func applyImpermanentLoss(state *allocationState) {
	if !state.spec.Category.IsLiquidityPool() || state.curve == nil {
		return
	}
	if len(state.yieldSamples) < 2 {
		return
	}

	dispersion, err := stats.StandardDeviationSample(state.yieldSamples)
	if err != nil {
		return
	}

	impliedDrift := dispersion / 100
	if impliedDrift > maxImpliedPriceDrift {
		impliedDrift = maxImpliedPriceDrift
	}

	priceRatio := 1 + impliedDrift
	il := 2*math.Sqrt(priceRatio)/(1+priceRatio) - 1

	loss := math.Abs(il) * state.valueUsd
	state.valueUsd -= loss
	state.ilLossUsd = loss
}

func weightedAvgYield(states []*allocationState) float64 {
	out := 0.0
	for _, state := range states {
		out += avgYield(state.yieldSamples) * state.spec.Percentage / 100
	}
	return out
}

func avgYield(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	mean, err := stats.Mean(samples)
	if err != nil {
		return 0
	}
	return mean
}

func buildBreakdown(states []*allocationState) []domain.AllocationResult {
	out := []domain.AllocationResult{}
	for _, state := range states {
		result := domain.AllocationResult{
			Protocol:      state.spec.Protocol,
			Asset:         state.spec.Asset,
			TargetPercent: state.spec.Percentage,
			AllocatedUsd:  state.allocatedUsd,
		}
		if state.curve == nil {
			result.Unresolved = &domain.UnresolvedAllocation{
				Reason: fmt.Sprintf("pool not found: no yield history for %s", state.spec.PoolKey()),
			}
		} else {
			returnPercent := 0.0
			if state.allocatedUsd > 0 {
				returnPercent = 100 * (state.valueUsd - state.allocatedUsd) / state.allocatedUsd
			}
			result.Resolved = &domain.ResolvedAllocation{
				FinalValueUsd:      state.valueUsd,
				ReturnPercent:      returnPercent,
				AvgYieldPercent:    avgYield(state.yieldSamples),
				ImpermanentLossUsd: state.ilLossUsd,
			}
		}
		out = append(out, result)
	}
	return out
}

// persistRun records the finished run for audit. The result is already
// final, so a failed insert only warns.
func (h backtestServiceHandler) persistRun(ctx context.Context, req BacktestRequest, result *domain.BacktestResult) {
	if h.BacktestRunRepository == nil {
		return
	}
	log := logger.FromContext(ctx)

	requestBody, err := json.Marshal(req)
	if err != nil {
		log.Warnf("failed to marshal backtest request: %s", err.Error())
		return
	}

	_, err = h.BacktestRunRepository.Add(h.Db, model.BacktestRun{
		RequestBody:             string(requestBody),
		InitialAmountUsd:        result.Summary.InitialAmountUsd,
		FinalAmountUsd:          result.Summary.FinalAmountUsd,
		AnnualizedReturnPercent: result.Summary.AnnualizedReturnPercent,
		SharpeRatio:             result.Summary.SharpeRatio,
		MaxDrawdownPercent:      result.Summary.MaxDrawdownPercent,
		RebalanceCount:          int32(result.Summary.RebalanceCount),
		FeesPaidUsd:             result.Summary.FeesPaidUsd,
		DurationDays:            int32(result.Summary.DurationDays),
		CreatedAt:               time.Now().UTC(),
	})
	if err != nil {
		log.Warnf("failed to persist backtest run: %s", err.Error())
	}
}

// yieldCurve resolves a pool's annualized yield for any simulated day:
// exact match first, then the nearest past day, then the nearest future
// day. Early days before history begins borrow the oldest figure rather
// than pretending yield was zero.
type yieldCurve struct {
	byDay map[string]float64
	days  []time.Time
	pcts  []float64
}

func newYieldCurve(yields []domain.DailyYield) *yieldCurve {
	sorted := make([]domain.DailyYield, len(yields))
	copy(sorted, yields)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	c := &yieldCurve{
		byDay: map[string]float64{},
	}
	for _, y := range sorted {
		day := util.TruncateToDay(y.Date)
		key := day.Format(time.DateOnly)
		if _, ok := c.byDay[key]; ok {
			// keep the latest figure within a day
			c.byDay[key] = y.AnnualizedYieldPercent
			c.pcts[len(c.pcts)-1] = y.AnnualizedYieldPercent
			continue
		}
		c.byDay[key] = y.AnnualizedYieldPercent
		c.days = append(c.days, day)
		c.pcts = append(c.pcts, y.AnnualizedYieldPercent)
	}

	return c
}

func (c *yieldCurve) at(date time.Time) float64 {
	if pct, ok := c.byDay[date.Format(time.DateOnly)]; ok {
		return pct
	}

	// nearest past day with data
	idx := sort.Search(len(c.days), func(i int) bool {
		return c.days[i].After(date)
	})
	if idx > 0 {
		return c.pcts[idx-1]
	}

	// nearest future day with data
	if idx < len(c.days) {
		return c.pcts[idx]
	}

	return 0
}
