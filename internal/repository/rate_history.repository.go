package repository

import (
	"dotyield/internal/db/models/postgres/public/model"
	. "dotyield/internal/db/models/postgres/public/table"
	"dotyield/internal/domain"
	"time"

	"fmt"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// RateHistoryRepository reads and writes raw exchange-rate observations.
// The crawler owns writes; the yield engine only reads.
type RateHistoryRepository interface {
	Add(db qrm.Executable, observations []model.RateObservation) error
	List(db qrm.Queryable, asset string, start, end *time.Time) ([]domain.RateObservation, error)
	LatestAt(db qrm.Queryable, asset string, asOf time.Time) (*domain.RateObservation, error)
}

type rateHistoryRepositoryHandler struct{}

func NewRateHistoryRepository() RateHistoryRepository {
	return rateHistoryRepositoryHandler{}
}

// Add upserts on (asset, bucket_ts) - re-crawling an hour bucket overwrites
// the previous sample instead of duplicating it.
func (h rateHistoryRepositoryHandler) Add(db qrm.Executable, observations []model.RateObservation) error {
	if len(observations) == 0 {
		return nil
	}

	query := RateObservation.
		INSERT(RateObservation.AllColumns).
		MODELS(observations).
		ON_CONFLICT(
			RateObservation.Asset, RateObservation.BucketTs,
		).DO_UPDATE(
		SET(
			RateObservation.ObservedAt.SET(RateObservation.EXCLUDED.ObservedAt),
			RateObservation.Rate.SET(RateObservation.EXCLUDED.Rate),
			RateObservation.TotalPooled.SET(RateObservation.EXCLUDED.TotalPooled),
			RateObservation.TotalIssued.SET(RateObservation.EXCLUDED.TotalIssued),
		),
	)

	_, err := query.Exec(db)
	if err != nil {
		return fmt.Errorf("failed to add rate observations to db: %w", err)
	}

	return nil
}

func (h rateHistoryRepositoryHandler) List(db qrm.Queryable, asset string, start, end *time.Time) ([]domain.RateObservation, error) {
	predicates := []BoolExpression{
		RateObservation.Asset.EQ(String(asset)),
	}
	if start != nil {
		predicates = append(predicates, RateObservation.ObservedAt.GT_EQ(TimestampT(*start)))
	}
	if end != nil {
		predicates = append(predicates, RateObservation.ObservedAt.LT_EQ(TimestampT(*end)))
	}

	query := RateObservation.
		SELECT(RateObservation.AllColumns).
		WHERE(AND(predicates...)).
		ORDER_BY(RateObservation.ObservedAt.ASC())

	result := []model.RateObservation{}
	err := query.Query(db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate observations for %s: %w", asset, err)
	}

	out := []domain.RateObservation{}
	for _, o := range result {
		out = append(out, observationFromModel(o))
	}

	return out, nil
}

// LatestAt returns the most recent observation at or before asOf, or nil
// when the asset has no history yet. Missing history is an expected
// steady-state condition, not an error.
func (h rateHistoryRepositoryHandler) LatestAt(db qrm.Queryable, asset string, asOf time.Time) (*domain.RateObservation, error) {
	query := RateObservation.
		SELECT(RateObservation.AllColumns).
		WHERE(
			AND(
				RateObservation.Asset.EQ(String(asset)),
				RateObservation.ObservedAt.LT_EQ(TimestampT(asOf)),
			),
		).
		ORDER_BY(RateObservation.ObservedAt.DESC()).
		LIMIT(1)

	result := model.RateObservation{}
	err := query.Query(db, &result)
	if err == qrm.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rate observation for %s at %v: %w", asset, asOf, err)
	}

	out := observationFromModel(result)
	return &out, nil
}

func observationFromModel(m model.RateObservation) domain.RateObservation {
	return domain.RateObservation{
		Asset:       m.Asset,
		Timestamp:   m.ObservedAt,
		Rate:        m.Rate,
		TotalPooled: m.TotalPooled,
		TotalIssued: m.TotalIssued,
	}
}
