//go:build !integration

package inference

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdaptiveWeights_Normalized(t *testing.T) {
	for ws := 0.0; ws <= 1.0; ws += 0.05 {
		for fi := 0.9; fi <= 1.1; fi += 0.01 {
			w := AdaptiveWeights(ws, fi)
			require.GreaterOrEqual(t, w.Delay, 0.0)
			require.GreaterOrEqual(t, w.Profit, 0.0)
			require.GreaterOrEqual(t, w.CO2, 0.0)
			require.GreaterOrEqual(t, w.Uncertainty, 0.0)
			require.InDelta(t, 1.6, w.Sum(), 1e-6)
		}
	}
}

func TestAdaptiveWeights_Values(t *testing.T) {
	w := AdaptiveWeights(0.8, 1.0)
	// raw 0.56, 0.6, 0.3, 0.22 over a sum of 1.68
	require.InDelta(t, 0.533333, w.Delay, 1e-6)
	require.InDelta(t, 0.571429, w.Profit, 1e-6)
	require.InDelta(t, 0.285714, w.CO2, 1e-6)
	require.InDelta(t, 0.209524, w.Uncertainty, 1e-6)

	bad := AdaptiveWeights(0.0, 1.1)
	good := AdaptiveWeights(1.0, 0.9)
	require.Greater(t, bad.Delay, good.Delay)
	require.Greater(t, bad.CO2, good.CO2)
	require.Less(t, bad.Profit, good.Profit)
}

func TestComputeReward_Monotonic(t *testing.T) {
	w := AdaptiveWeights(0.7, 1.02)
	std := []float64{1, 10, 100}
	base := ComputeReward([]float64{5, 150, 2000}, std, w)

	require.Greater(t, base, ComputeReward([]float64{6, 150, 2000}, std, w), "more delay scores lower")
	require.Less(t, base, ComputeReward([]float64{5, 160, 2000}, std, w), "more profit scores higher")
	require.Greater(t, base, ComputeReward([]float64{5, 150, 2100}, std, w), "more co2 scores lower")
	require.Greater(t, base, ComputeReward([]float64{5, 150, 2000}, []float64{2, 10, 100}, w), "more uncertainty scores lower")

	// negative delays are clamped to zero
	require.Equal(t,
		ComputeReward([]float64{0, 150, 2000}, std, w),
		ComputeReward([]float64{-3, 150, 2000}, std, w))
}

func TestComputeReward_HandComputed(t *testing.T) {
	w := AdaptiveWeights(0.8, 1.0)
	got := ComputeReward([]float64{5, 150, 2000}, []float64{0, 0, 0}, w)
	want := w.Delay/1.5 + w.Profit*0.75 - w.CO2*0.4
	require.InDelta(t, want, got, 1e-12)
	require.InDelta(t, 0.669841, got, 1e-6)
}
