package l2_service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dotyield/internal/calculator"
	"dotyield/internal/db/models/postgres/public/model"
	"dotyield/internal/domain"
	"dotyield/internal/logger"
	"dotyield/internal/repository"
	l1_service "dotyield/internal/service/l1"
	"dotyield/internal/util"
)

// YieldDerivationService turns raw exchange-rate observations into
// annualized yield snapshots. DeriveYield handles one point in time;
// BackfillYieldHistory replays the same computation over the full history.
type YieldDerivationService interface {
	DeriveYield(ctx context.Context, asset string, asOf *time.Time) (*domain.YieldSnapshot, error)
	BackfillYieldHistory(ctx context.Context, asset string) (int, error)
}

type yieldDerivationHandler struct {
	Db                      *sql.DB
	RateHistoryRepository   repository.RateHistoryRepository
	YieldSnapshotRepository repository.YieldSnapshotRepository
	PriceService            l1_service.PriceService
}

func NewYieldDerivationService(
	db *sql.DB,
	rateHistoryRepository repository.RateHistoryRepository,
	yieldSnapshotRepository repository.YieldSnapshotRepository,
	priceService l1_service.PriceService,
) YieldDerivationService {
	return yieldDerivationHandler{
		Db:                      db,
		RateHistoryRepository:   rateHistoryRepository,
		YieldSnapshotRepository: yieldSnapshotRepository,
		PriceService:            priceService,
	}
}

// base-asset coin ids for the derivative tokens we track
var baseCoinIDByAsset = map[string]string{
	"vdot":  "polkadot",
	"ldot":  "polkadot",
	"sdot":  "polkadot",
	"vksm":  "kusama",
	"vglmr": "moonbeam",
	"vastr": "astar",
}

// DeriveYield computes and stores the yield snapshot for an asset as of the
// given time, defaulting to the most recent observation. Returns (nil, nil)
// when the asset has no observations yet - callers before the first crawl
// should see "no data", not a failure.
func (h yieldDerivationHandler) DeriveYield(ctx context.Context, asset string, asOf *time.Time) (*domain.YieldSnapshot, error) {
	cutoff := time.Now().UTC()
	if asOf != nil {
		cutoff = *asOf
	}

	current, err := h.RateHistoryRepository.LatestAt(h.Db, asset, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to load current rate observation: %w", err)
	}
	if current == nil {
		return nil, nil
	}

	ref7d, err := h.RateHistoryRepository.LatestAt(h.Db, asset, current.Timestamp.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to load 7d reference observation: %w", err)
	}
	ref30d, err := h.RateHistoryRepository.LatestAt(h.Db, asset, current.Timestamp.AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("failed to load 30d reference observation: %w", err)
	}

	snapshot := computeSnapshot(*current, ref7d, ref30d)
	h.stampBasePrice(ctx, &snapshot)

	err = h.YieldSnapshotRepository.Upsert(h.Db, snapshotToModel(snapshot))
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// BackfillYieldHistory recomputes the daily yield series across every
// stored observation, deduplicated to the latest observation within each
// UTC day. Per-day results are identical to calling DeriveYield at those
// same timestamps.
func (h yieldDerivationHandler) BackfillYieldHistory(ctx context.Context, asset string) (int, error) {
	log := logger.FromContext(ctx)

	observations, err := h.RateHistoryRepository.List(h.Db, asset, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to list rate observations: %w", err)
	}
	if len(observations) == 0 {
		return 0, nil
	}

	daily := dedupeToDaily(observations)

	count := 0
	for _, current := range daily {
		ref7d := latestAtOrBefore(observations, current.Timestamp.AddDate(0, 0, -7))
		ref30d := latestAtOrBefore(observations, current.Timestamp.AddDate(0, 0, -30))

		snapshot := computeSnapshot(current, ref7d, ref30d)
		h.stampHistoricalBasePrice(ctx, &snapshot)

		err = h.YieldSnapshotRepository.Upsert(h.Db, snapshotToModel(snapshot))
		if err != nil {
			return count, fmt.Errorf("failed to upsert snapshot for %s at %v: %w", asset, current.Timestamp, err)
		}
		count++
	}

	log.Infow("backfilled yield history", "asset", asset, "snapshots", count)
	return count, nil
}

// computeSnapshot is the per-point derivation. Either reference may be nil
// when history is too short; an unusable window contributes 0.
func computeSnapshot(current domain.RateObservation, ref7d, ref30d *domain.RateObservation) domain.YieldSnapshot {
	annualized7d := annualizeWindow(current, ref7d)
	annualized30d := annualizeWindow(current, ref30d)

	// 7d wins whenever positive, regardless of how different the 30d figure
	// is. That can step discontinuously when the 7d window flips to zero
	// while the 30d window stays high; the crawler's accounting relies on
	// the behavior, so revisit upstream before blending the windows here.
	stakingYieldPercent := 0.0
	if annualized7d > 0 {
		stakingYieldPercent = 100 * annualized7d
	} else if annualized30d > 0 {
		stakingYieldPercent = 100 * annualized30d
	}

	// reserved for a second yield source; consumers treat it as
	// always-present but currently zero
	auxiliaryYieldPercent := 0.0

	totalYieldPercent := 100 * ((1+stakingYieldPercent/100)*(1+auxiliaryYieldPercent/100) - 1)

	return domain.YieldSnapshot{
		Asset:                 current.Asset,
		Timestamp:             current.Timestamp,
		Granularity:           domain.YieldGranularity_Daily,
		Yield7dPercent:        100 * annualized7d,
		Yield30dPercent:       100 * annualized30d,
		StakingYieldPercent:   stakingYieldPercent,
		AuxiliaryYieldPercent: auxiliaryYieldPercent,
		TotalYieldPercent:     totalYieldPercent,
		RateAtSnapshot:        current.Rate,
	}
}

func annualizeWindow(current domain.RateObservation, reference *domain.RateObservation) float64 {
	if reference == nil {
		return 0
	}
	daysBetween := util.DaysBetween(reference.Timestamp, current.Timestamp)
	return calculator.AnnualizeRateGrowth(
		current.Rate.InexactFloat64(),
		reference.Rate.InexactFloat64(),
		daysBetween,
	)
}

// dedupeToDaily keeps the latest observation within each UTC day. Input is
// ascending, so later entries win.
func dedupeToDaily(observations []domain.RateObservation) []domain.RateObservation {
	byDay := map[string]domain.RateObservation{}
	days := []string{}
	for _, o := range observations {
		key := o.Timestamp.Format(time.DateOnly)
		if _, seen := byDay[key]; !seen {
			days = append(days, key)
		}
		byDay[key] = o
	}

	out := []domain.RateObservation{}
	for _, day := range days {
		out = append(out, byDay[day])
	}
	return out
}

// latestAtOrBefore mirrors RateHistoryRepository.LatestAt over an
// in-memory ascending slice.
func latestAtOrBefore(observations []domain.RateObservation, cutoff time.Time) *domain.RateObservation {
	for i := len(observations) - 1; i >= 0; i-- {
		if !observations[i].Timestamp.After(cutoff) {
			o := observations[i]
			return &o
		}
	}
	return nil
}

func (h yieldDerivationHandler) stampBasePrice(ctx context.Context, snapshot *domain.YieldSnapshot) {
	if h.PriceService == nil {
		return
	}
	coinID, ok := baseCoinIDByAsset[strings.ToLower(snapshot.Asset)]
	if !ok {
		return
	}

	log := logger.FromContext(ctx)
	var (
		price float64
		err   error
	)
	if util.SameDay(snapshot.Timestamp, time.Now().UTC()) {
		price, err = h.PriceService.GetCurrentPriceUsd(ctx, coinID)
	} else {
		price, err = h.PriceService.GetHistoricalPriceUsd(ctx, coinID, snapshot.Timestamp)
	}
	if err != nil {
		// price is decoration on the snapshot, not an input to the yield
		// figures - skip it when the price stack is down
		log.Warnf("failed to stamp base price for %s: %s", snapshot.Asset, err.Error())
		return
	}
	snapshot.BasePriceUsd = price
}

func (h yieldDerivationHandler) stampHistoricalBasePrice(ctx context.Context, snapshot *domain.YieldSnapshot) {
	if h.PriceService == nil {
		return
	}
	coinID, ok := baseCoinIDByAsset[strings.ToLower(snapshot.Asset)]
	if !ok {
		return
	}

	price, err := h.PriceService.GetHistoricalPriceUsd(ctx, coinID, snapshot.Timestamp)
	if err != nil {
		logger.FromContext(ctx).Warnf("failed to stamp base price for %s on %s: %s",
			snapshot.Asset, snapshot.Timestamp.Format(time.DateOnly), err.Error())
		return
	}
	snapshot.BasePriceUsd = price
}

func snapshotToModel(s domain.YieldSnapshot) model.YieldSnapshot {
	var basePrice *float64
	if s.BasePriceUsd != 0 {
		basePrice = util.FloatPointer(s.BasePriceUsd)
	}
	return model.YieldSnapshot{
		Asset:                 s.Asset,
		Ts:                    s.Timestamp,
		Granularity:           string(s.Granularity),
		Yield7d:               s.Yield7dPercent,
		Yield30d:              s.Yield30dPercent,
		StakingYieldPercent:   s.StakingYieldPercent,
		AuxiliaryYieldPercent: s.AuxiliaryYieldPercent,
		TotalYieldPercent:     s.TotalYieldPercent,
		RateAtSnapshot:        s.RateAtSnapshot,
		BasePriceUsd:          basePrice,
		CreatedAt:             time.Now().UTC(),
	}
}
