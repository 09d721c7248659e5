package inference

import (
	"math"

	"simToDec/business/simulator"
	"simToDec/domain"
)

// weights always sum to this after normalization
const weightBudget = 1.6

// AdaptiveWeights shifts emphasis with conditions: bad weather raises the
// delay and uncertainty weights, expensive fuel trades profit weight for
// CO2 weight.
func AdaptiveWeights(weatherScore, fuelIndex float64) domain.RewardWeights {
	wd := 0.5 + 0.3*(1-weatherScore)
	wp := 0.6 - 0.3*(fuelIndex-1)
	wc := 0.3 + 0.2*(fuelIndex-1)
	wu := 0.2 + 0.1*(1-weatherScore)

	norm := weightBudget / (wd + wp + wc + wu + 1e-8)
	return domain.RewardWeights{
		Delay:       wd * norm,
		Profit:      wp * norm,
		CO2:         wc * norm,
		Uncertainty: wu * norm,
	}
}

// ComputeReward scores one mode's predicted outcome. Negative delays count
// as zero.
func ComputeReward(mean, std []float64, w domain.RewardWeights) float64 {
	d := mean[simulator.OutcomeDelay]
	p := mean[simulator.OutcomeProfit]
	c := mean[simulator.OutcomeCO2]

	unc := std[simulator.OutcomeDelay]/10.0 +
		std[simulator.OutcomeProfit]/200.0 +
		std[simulator.OutcomeCO2]/5000.0

	return w.Delay/(1.0+math.Max(d, 0)/10.0) +
		w.Profit*p/200.0 -
		w.CO2*c/5000.0 -
		w.Uncertainty*unc
}
