package simulator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var ErrEmptyEnsemble = errors.New("ensemble has no members")

// Ensemble combines K simulators, each evaluated with M stochastic passes,
// into one mean/std per outcome. The members are read-only after
// construction and safe to share between requests.
type Ensemble struct {
	members   []Model
	mcSamples int
	mcDropout bool
	outScaler Scaler
}

func NewEnsemble(members []Model, mcSamples int, mcDropout bool, outScaler Scaler) (*Ensemble, error) {
	if len(members) == 0 {
		return nil, ErrEmptyEnsemble
	}
	if mcSamples < 1 {
		return nil, fmt.Errorf("mc samples must be >= 1, got %d", mcSamples)
	}
	if outScaler.Dim() != OutcomeDim {
		return nil, fmt.Errorf("output scaler has %d dims, want %d", outScaler.Dim(), OutcomeDim)
	}
	m := make([]Model, len(members))
	copy(m, members)
	return &Ensemble{members: m, mcSamples: mcSamples, mcDropout: mcDropout, outScaler: outScaler}, nil
}

func (e *Ensemble) Size() int      { return len(e.members) }
func (e *Ensemble) MCSamples() int { return e.mcSamples }

// Aggregate returns the normalized mean and total standard deviation over
// all K*M draws. Total variance is the mean of the per-draw variances plus
// the population variance of the per-draw means.
func (e *Ensemble) Aggregate(seq Sequence, mode int, rng *rand.Rand) (mean, std []float64, err error) {
	var passRng *rand.Rand
	if e.mcDropout {
		passRng = rng
	}

	n := len(e.members) * e.mcSamples
	mus := make([][]float64, 0, n)
	sumMu := make([]float64, OutcomeDim)
	sumVar := make([]float64, OutcomeDim)

	for k, m := range e.members {
		for s := 0; s < e.mcSamples; s++ {
			mu, lv, err := m.Predict(seq, mode, passRng)
			if err != nil {
				return nil, nil, fmt.Errorf("simulator %d: %w", k, err)
			}
			if len(mu) != OutcomeDim || len(lv) != OutcomeDim {
				return nil, nil, fmt.Errorf("simulator %d returned %d/%d outputs, want %d", k, len(mu), len(lv), OutcomeDim)
			}
			for j := 0; j < OutcomeDim; j++ {
				sumMu[j] += mu[j]
				sumVar[j] += math.Exp(lv[j])
			}
			mus = append(mus, mu)
		}
	}

	mean = make([]float64, OutcomeDim)
	std = make([]float64, OutcomeDim)
	for j := 0; j < OutcomeDim; j++ {
		mean[j] = sumMu[j] / float64(n)
	}
	for j := 0; j < OutcomeDim; j++ {
		spread := 0.0
		for _, mu := range mus {
			d := mu[j] - mean[j]
			spread += d * d
		}
		std[j] = math.Sqrt(sumVar[j]/float64(n) + spread/float64(n))
	}
	return mean, std, nil
}

// Evaluate aggregates one mode and maps the result back to original units.
// Sampled is one draw from N(mean, std) per outcome.
func (e *Ensemble) Evaluate(seq Sequence, mode int, rng *rand.Rand) (Prediction, error) {
	mean, std, err := e.Aggregate(seq, mode, rng)
	if err != nil {
		return Prediction{}, err
	}

	p := Prediction{
		Mean: e.outScaler.InverseTransform(mean),
		Std:  e.outScaler.InverseStd(std),
	}
	p.Sampled = make([]float64, OutcomeDim)
	for j := range p.Sampled {
		noise := 0.0
		if rng != nil {
			noise = rng.NormFloat64()
		}
		p.Sampled[j] = p.Mean[j] + noise*p.Std[j]
	}
	return p, nil
}
