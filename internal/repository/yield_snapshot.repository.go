package repository

import (
	"dotyield/internal/db/models/postgres/public/model"
	. "dotyield/internal/db/models/postgres/public/table"
	"dotyield/internal/domain"
	"fmt"
	"time"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type YieldSnapshotRepository interface {
	Upsert(db qrm.Executable, snapshot model.YieldSnapshot) error
	Get(db qrm.Queryable, asset string, ts time.Time, granularity string) (*domain.YieldSnapshot, error)
	Latest(db qrm.Queryable, asset string, asOf time.Time) (*domain.YieldSnapshot, error)
	ListDailyYields(db qrm.Queryable, asset string, from, to time.Time) ([]domain.DailyYield, error)
}

type yieldSnapshotRepositoryHandler struct{}

func NewYieldSnapshotRepository() YieldSnapshotRepository {
	return yieldSnapshotRepositoryHandler{}
}

// Upsert overwrites the snapshot at (asset, ts, granularity). Recomputation
// replaces the row in place, so repeat derivations never accumulate
// duplicate keys.
func (h yieldSnapshotRepositoryHandler) Upsert(db qrm.Executable, snapshot model.YieldSnapshot) error {
	query := YieldSnapshot.
		INSERT(YieldSnapshot.AllColumns).
		MODEL(snapshot).
		ON_CONFLICT(
			YieldSnapshot.Asset, YieldSnapshot.Ts, YieldSnapshot.Granularity,
		).DO_UPDATE(
		SET(
			YieldSnapshot.Yield7d.SET(YieldSnapshot.EXCLUDED.Yield7d),
			YieldSnapshot.Yield30d.SET(YieldSnapshot.EXCLUDED.Yield30d),
			YieldSnapshot.StakingYieldPercent.SET(YieldSnapshot.EXCLUDED.StakingYieldPercent),
			YieldSnapshot.AuxiliaryYieldPercent.SET(YieldSnapshot.EXCLUDED.AuxiliaryYieldPercent),
			YieldSnapshot.TotalYieldPercent.SET(YieldSnapshot.EXCLUDED.TotalYieldPercent),
			YieldSnapshot.RateAtSnapshot.SET(YieldSnapshot.EXCLUDED.RateAtSnapshot),
			YieldSnapshot.BasePriceUsd.SET(YieldSnapshot.EXCLUDED.BasePriceUsd),
		),
	)

	_, err := query.Exec(db)
	if err != nil {
		return fmt.Errorf("failed to upsert yield snapshot for %s: %w", snapshot.Asset, err)
	}

	return nil
}

func (h yieldSnapshotRepositoryHandler) Get(db qrm.Queryable, asset string, ts time.Time, granularity string) (*domain.YieldSnapshot, error) {
	query := YieldSnapshot.
		SELECT(YieldSnapshot.AllColumns).
		WHERE(
			AND(
				YieldSnapshot.Asset.EQ(String(asset)),
				YieldSnapshot.Ts.EQ(TimestampT(ts)),
				YieldSnapshot.Granularity.EQ(String(granularity)),
			),
		)

	result := model.YieldSnapshot{}
	err := query.Query(db, &result)
	if err == qrm.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query yield snapshot for %s at %v: %w", asset, ts, err)
	}

	out := snapshotFromModel(result)
	return &out, nil
}

func (h yieldSnapshotRepositoryHandler) Latest(db qrm.Queryable, asset string, asOf time.Time) (*domain.YieldSnapshot, error) {
	query := YieldSnapshot.
		SELECT(YieldSnapshot.AllColumns).
		WHERE(
			AND(
				YieldSnapshot.Asset.EQ(String(asset)),
				YieldSnapshot.Ts.LT_EQ(TimestampT(asOf)),
			),
		).
		ORDER_BY(YieldSnapshot.Ts.DESC()).
		LIMIT(1)

	result := model.YieldSnapshot{}
	err := query.Query(db, &result)
	if err == qrm.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest yield snapshot for %s: %w", asset, err)
	}

	out := snapshotFromModel(result)
	return &out, nil
}

// ListDailyYields returns the pre-aggregated per-day yield series the
// backtest engine consumes. One row per UTC day, ascending.
func (h yieldSnapshotRepositoryHandler) ListDailyYields(db qrm.Queryable, asset string, from, to time.Time) ([]domain.DailyYield, error) {
	query := YieldSnapshot.
		SELECT(YieldSnapshot.AllColumns).
		WHERE(
			AND(
				YieldSnapshot.Asset.EQ(String(asset)),
				YieldSnapshot.Granularity.EQ(String(string(domain.YieldGranularity_Daily))),
				YieldSnapshot.Ts.BETWEEN(TimestampT(from), TimestampT(to)),
			),
		).
		ORDER_BY(YieldSnapshot.Ts.ASC())

	result := []model.YieldSnapshot{}
	err := query.Query(db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily yields for %s: %w", asset, err)
	}

	out := []domain.DailyYield{}
	for _, s := range result {
		out = append(out, domain.DailyYield{
			Date:                   s.Ts,
			AnnualizedYieldPercent: s.TotalYieldPercent,
		})
	}

	return out, nil
}

func snapshotFromModel(m model.YieldSnapshot) domain.YieldSnapshot {
	basePrice := 0.0
	if m.BasePriceUsd != nil {
		basePrice = *m.BasePriceUsd
	}
	return domain.YieldSnapshot{
		Asset:                 m.Asset,
		Timestamp:             m.Ts,
		Granularity:           domain.YieldGranularity(m.Granularity),
		Yield7dPercent:        m.Yield7d,
		Yield30dPercent:       m.Yield30d,
		StakingYieldPercent:   m.StakingYieldPercent,
		AuxiliaryYieldPercent: m.AuxiliaryYieldPercent,
		TotalYieldPercent:     m.TotalYieldPercent,
		RateAtSnapshot:        m.RateAtSnapshot,
		BasePriceUsd:          basePrice,
	}
}
