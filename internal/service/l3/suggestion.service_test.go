package l3_service

import (
	"testing"

	"dotyield/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_normalizeAllocations(t *testing.T) {
	t.Run("last allocation absorbs rounding drift", func(t *testing.T) {
		out := normalizeAllocations([]domain.AllocationSpec{
			{Protocol: "bifrost", Asset: "vdot", Percentage: 33.333},
			{Protocol: "acala", Asset: "ldot", Percentage: 33.333},
			{Protocol: "parallel", Asset: "sdot", Percentage: 33.333},
		})

		require.Equal(t, 33.33, out[0].Percentage)
		require.Equal(t, 33.33, out[1].Percentage)
		require.Equal(t, 33.34, out[2].Percentage)

		sum := 0.0
		for _, a := range out {
			sum += a.Percentage
		}
		require.InDelta(t, 100.0, sum, 1e-9)
	})

	t.Run("already exact set is unchanged", func(t *testing.T) {
		out := normalizeAllocations([]domain.AllocationSpec{
			{Protocol: "bifrost", Asset: "vdot", Percentage: 60},
			{Protocol: "acala", Asset: "ldot", Percentage: 40},
		})

		require.Equal(t, 60.0, out[0].Percentage)
		require.Equal(t, 40.0, out[1].Percentage)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		in := []domain.AllocationSpec{
			{Protocol: "bifrost", Asset: "vdot", Percentage: 33.333},
			{Protocol: "acala", Asset: "ldot", Percentage: 66.666},
		}
		normalizeAllocations(in)
		require.Equal(t, 33.333, in[0].Percentage)
	})
}
