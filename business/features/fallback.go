package features

import "math/rand"

// FallbackPolicy produces substitute values when a live source is
// unavailable.
type FallbackPolicy interface {
	Distance(rng *rand.Rand) (km, hr float64)
	WeatherScore(rng *rand.Rand) float64
	FuelIndex(rng *rand.Rand) float64
	// SimulatedFuelPrice stands in for the live price when no credential
	// is configured.
	SimulatedFuelPrice(rng *rand.Rand) float64
}

// RandomFallback draws uniformly from plausible ranges.
type RandomFallback struct{}

var _ FallbackPolicy = RandomFallback{}

func (RandomFallback) Distance(rng *rand.Rand) (float64, float64) {
	return uniform(rng, 300, 1500), uniform(rng, 5, 25)
}

func (RandomFallback) WeatherScore(rng *rand.Rand) float64 {
	return uniform(rng, 0.5, 1.0)
}

func (RandomFallback) FuelIndex(rng *rand.Rand) float64 {
	return uniform(rng, 0.95, 1.05)
}

func (RandomFallback) SimulatedFuelPrice(rng *rand.Rand) float64 {
	return baselineFuelPrice + rng.NormFloat64()*2.0
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
