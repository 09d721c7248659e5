package simulator

import (
	"math/rand"
)

// Number of simulated outcome dimensions: delay, profit, CO2.
const OutcomeDim = 3

const (
	OutcomeDelay = iota
	OutcomeProfit
	OutcomeCO2
)

// Sequence is T time steps of a normalized feature vector.
type Sequence [][]float64

// Model is one pretrained simulator. Given a sequence and a mode index it
// returns the predicted mean and log-variance of every outcome dimension in
// normalized units. A non-nil rng enables stochastic (dropout) passes.
type Model interface {
	Predict(seq Sequence, mode int, rng *rand.Rand) (mu, logVar []float64, err error)
}

// Prediction is the aggregated outcome for one mode.
type Prediction struct {
	Mean    []float64
	Std     []float64
	Sampled []float64
}
