package simulator

import "fmt"

const scalerEps = 1e-8

// Scaler is the fixed affine standardization fitted at training time.
// It is read-only once loaded.
type Scaler struct {
	mean  []float64
	scale []float64
}

func NewScaler(mean, scale []float64) (Scaler, error) {
	if len(mean) == 0 || len(mean) != len(scale) {
		return Scaler{}, fmt.Errorf("scaler mean/scale length mismatch: %d vs %d", len(mean), len(scale))
	}
	m := make([]float64, len(mean))
	s := make([]float64, len(scale))
	copy(m, mean)
	copy(s, scale)
	return Scaler{mean: m, scale: s}, nil
}

func (s Scaler) Dim() int { return len(s.mean) }

// Transform returns (x - mean) / (scale + eps).
func (s Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.mean[i]) / (s.scale[i] + scalerEps)
	}
	return out
}

// InverseTransform returns z * scale + mean.
func (s Scaler) InverseTransform(z []float64) []float64 {
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = v*s.scale[i] + s.mean[i]
	}
	return out
}

// InverseStd maps a standard deviation from normalized to original units.
func (s Scaler) InverseStd(std []float64) []float64 {
	out := make([]float64, len(std))
	for i, v := range std {
		out[i] = v * s.scale[i]
	}
	return out
}
