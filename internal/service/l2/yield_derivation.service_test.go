package l2_service

import (
	"context"
	"testing"
	"time"

	"dotyield/internal/db/models/postgres/public/model"
	"dotyield/internal/domain"
	mock_repository "dotyield/internal/repository/mocks"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func observation(asset string, ts time.Time, rate string) domain.RateObservation {
	return domain.RateObservation{
		Asset:     asset,
		Timestamp: ts,
		Rate:      decimal.RequireFromString(rate),
	}
}

func Test_computeSnapshot(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	t.Run("seven day window wins when positive", func(t *testing.T) {
		current := observation("vdot", now, "1.002")
		ref7d := observation("vdot", now.AddDate(0, 0, -7), "1.000")
		ref30d := observation("vdot", now.AddDate(0, 0, -30), "0.990")

		out := computeSnapshot(current, &ref7d, &ref30d)

		require.InDelta(t, 10.98017, out.Yield7dPercent, 0.001)
		require.Equal(t, out.Yield7dPercent, out.StakingYieldPercent)
	})

	t.Run("falls back to thirty day window", func(t *testing.T) {
		current := observation("vdot", now, "1.002")
		ref7d := observation("vdot", now.AddDate(0, 0, -7), "1.002")
		ref30d := observation("vdot", now.AddDate(0, 0, -30), "1.000")

		out := computeSnapshot(current, &ref7d, &ref30d)

		require.Equal(t, 0.0, out.Yield7dPercent)
		require.InDelta(t, 2.46066, out.Yield30dPercent, 0.001)
		require.Equal(t, out.Yield30dPercent, out.StakingYieldPercent)
	})

	t.Run("no usable window", func(t *testing.T) {
		current := observation("vdot", now, "1.000")
		ref7d := observation("vdot", now.AddDate(0, 0, -7), "1.000")

		out := computeSnapshot(current, &ref7d, nil)

		require.Equal(t, 0.0, out.StakingYieldPercent)
		require.Equal(t, 0.0, out.TotalYieldPercent)
	})

	t.Run("total compounds staking with auxiliary", func(t *testing.T) {
		current := observation("vdot", now, "1.002")
		ref7d := observation("vdot", now.AddDate(0, 0, -7), "1.000")

		out := computeSnapshot(current, &ref7d, nil)

		// auxiliary is zero today, so compounding collapses to staking
		require.InDelta(t, out.StakingYieldPercent, out.TotalYieldPercent, 1e-9)
	})
}

func Test_yieldDerivationHandler_DeriveYield(t *testing.T) {
	asOf := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	t.Run("no observations yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rateRepository := mock_repository.NewMockRateHistoryRepository(ctrl)
		snapshotRepository := mock_repository.NewMockYieldSnapshotRepository(ctrl)

		handler := yieldDerivationHandler{
			RateHistoryRepository:   rateRepository,
			YieldSnapshotRepository: snapshotRepository,
		}

		rateRepository.EXPECT().
			LatestAt(gomock.Any(), "vdot", asOf).
			Return(nil, nil)

		out, err := handler.DeriveYield(context.Background(), "vdot", &asOf)
		require.NoError(t, err)
		require.Nil(t, out)
	})

	t.Run("derives and stores the snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rateRepository := mock_repository.NewMockRateHistoryRepository(ctrl)
		snapshotRepository := mock_repository.NewMockYieldSnapshotRepository(ctrl)

		handler := yieldDerivationHandler{
			RateHistoryRepository:   rateRepository,
			YieldSnapshotRepository: snapshotRepository,
		}

		current := observation("vdot", asOf.Add(-time.Hour), "1.002")
		ref7d := observation("vdot", current.Timestamp.AddDate(0, 0, -7), "1.000")

		rateRepository.EXPECT().
			LatestAt(gomock.Any(), "vdot", asOf).
			Return(&current, nil)
		rateRepository.EXPECT().
			LatestAt(gomock.Any(), "vdot", current.Timestamp.AddDate(0, 0, -7)).
			Return(&ref7d, nil)
		rateRepository.EXPECT().
			LatestAt(gomock.Any(), "vdot", current.Timestamp.AddDate(0, 0, -30)).
			Return(nil, nil)

		var stored model.YieldSnapshot
		snapshotRepository.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(db interface{}, s model.YieldSnapshot) error {
				stored = s
				return nil
			})

		out, err := handler.DeriveYield(context.Background(), "vdot", &asOf)
		require.NoError(t, err)
		require.NotNil(t, out)

		require.Equal(t, "vdot", out.Asset)
		require.Equal(t, current.Timestamp, out.Timestamp)
		require.InDelta(t, 10.98017, out.Yield7dPercent, 0.001)
		require.Equal(t, 0.0, out.Yield30dPercent)
		require.True(t, out.RateAtSnapshot.Equal(current.Rate))

		// what went to the store is what came back
		require.Equal(t, out.Asset, stored.Asset)
		require.Equal(t, out.Timestamp, stored.Ts)
		require.InDelta(t, out.TotalYieldPercent, stored.TotalYieldPercent, 1e-9)
	})
}

func Test_yieldDerivationHandler_BackfillYieldHistory(t *testing.T) {
	t.Run("no observations", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rateRepository := mock_repository.NewMockRateHistoryRepository(ctrl)
		snapshotRepository := mock_repository.NewMockYieldSnapshotRepository(ctrl)

		handler := yieldDerivationHandler{
			RateHistoryRepository:   rateRepository,
			YieldSnapshotRepository: snapshotRepository,
		}

		rateRepository.EXPECT().
			List(gomock.Any(), "vdot", nil, nil).
			Return([]domain.RateObservation{}, nil)

		count, err := handler.BackfillYieldHistory(context.Background(), "vdot")
		require.NoError(t, err)
		require.Equal(t, 0, count)
	})

	t.Run("one snapshot per day, latest observation wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rateRepository := mock_repository.NewMockRateHistoryRepository(ctrl)
		snapshotRepository := mock_repository.NewMockYieldSnapshotRepository(ctrl)

		handler := yieldDerivationHandler{
			RateHistoryRepository:   rateRepository,
			YieldSnapshotRepository: snapshotRepository,
		}

		day1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		observations := []domain.RateObservation{
			observation("vdot", day1.Add(6*time.Hour), "1.0000"),
			observation("vdot", day1.Add(18*time.Hour), "1.0001"),
			observation("vdot", day1.AddDate(0, 0, 1).Add(12*time.Hour), "1.0002"),
		}

		rateRepository.EXPECT().
			List(gomock.Any(), "vdot", nil, nil).
			Return(observations, nil)

		stored := []model.YieldSnapshot{}
		snapshotRepository.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(db interface{}, s model.YieldSnapshot) error {
				stored = append(stored, s)
				return nil
			}).
			Times(2)

		count, err := handler.BackfillYieldHistory(context.Background(), "vdot")
		require.NoError(t, err)
		require.Equal(t, 2, count)

		// the 18:00 sample superseded the 06:00 one for day 1
		require.Equal(t, day1.Add(18*time.Hour), stored[0].Ts)
		require.Equal(t, day1.AddDate(0, 0, 1).Add(12*time.Hour), stored[1].Ts)
	})

	t.Run("backfilled rows match per point derivation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rateRepository := mock_repository.NewMockRateHistoryRepository(ctrl)
		snapshotRepository := mock_repository.NewMockYieldSnapshotRepository(ctrl)

		handler := yieldDerivationHandler{
			RateHistoryRepository:   rateRepository,
			YieldSnapshotRepository: snapshotRepository,
		}

		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		observations := []domain.RateObservation{}
		rate := decimal.RequireFromString("1.0000")
		increment := decimal.RequireFromString("0.0001")
		for i := 0; i < 40; i++ {
			observations = append(observations, domain.RateObservation{
				Asset:     "vdot",
				Timestamp: start.AddDate(0, 0, i),
				Rate:      rate,
			})
			rate = rate.Add(increment)
		}

		rateRepository.EXPECT().
			List(gomock.Any(), "vdot", nil, nil).
			Return(observations, nil)

		stored := []model.YieldSnapshot{}
		snapshotRepository.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(db interface{}, s model.YieldSnapshot) error {
				stored = append(stored, s)
				return nil
			}).
			Times(len(observations))

		count, err := handler.BackfillYieldHistory(context.Background(), "vdot")
		require.NoError(t, err)
		require.Equal(t, len(observations), count)

		for i, s := range stored {
			current := observations[i]
			ref7d := latestAtOrBefore(observations, current.Timestamp.AddDate(0, 0, -7))
			ref30d := latestAtOrBefore(observations, current.Timestamp.AddDate(0, 0, -30))
			expected := snapshotToModel(computeSnapshot(current, ref7d, ref30d))

			require.Empty(t, cmp.Diff(expected, s,
				cmpopts.IgnoreFields(model.YieldSnapshot{}, "CreatedAt"),
			))
		}
	})
}
