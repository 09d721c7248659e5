package inference

import (
	"simToDec/business/simulator"
)

// FeatureDim is the raw feature layout: distance km, weight, weather score,
// fuel index, mode reliability.
const FeatureDim = 5

func (c Config) ShipmentWeight(salesPerCustomer float64) float64 {
	return salesPerCustomer / c.AvgSales * c.WeightMultiplier
}

func (c Config) FeatureVector(km, weight, weatherScore, fuelIndex float64) []float64 {
	return []float64{km, weight, weatherScore, fuelIndex, c.ModeReliability}
}

// BuildSequence replicates one normalized feature vector over steps.
func BuildSequence(x []float64, steps int) simulator.Sequence {
	seq := make(simulator.Sequence, steps)
	for t := range seq {
		row := make([]float64, len(x))
		copy(row, x)
		seq[t] = row
	}
	return seq
}

// PolicyState is the mean over time of the sequence.
func PolicyState(seq simulator.Sequence) []float64 {
	if len(seq) == 0 {
		return nil
	}
	state := make([]float64, len(seq[0]))
	for _, row := range seq {
		for i, v := range row {
			state[i] += v
		}
	}
	for i := range state {
		state[i] /= float64(len(seq))
	}
	return state
}
