package nn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

const layerNormEps = 1e-5

// Linear computes y = W x + b with W stored as (out, in).
type Linear struct {
	W *mat.Dense
	B *mat.VecDense
}

func LoadLinear(sd StateDict, prefix string, in, out int) (*Linear, error) {
	w, err := sd.Matrix(prefix+".weight", out, in)
	if err != nil {
		return nil, err
	}
	b, err := sd.Vector(prefix+".bias", out)
	if err != nil {
		return nil, err
	}
	return &Linear{W: w, B: b}, nil
}

func (l *Linear) In() int {
	_, c := l.W.Dims()
	return c
}

func (l *Linear) Out() int {
	r, _ := l.W.Dims()
	return r
}

func (l *Linear) Forward(x *mat.VecDense) *mat.VecDense {
	y := mat.NewVecDense(l.Out(), nil)
	y.MulVec(l.W, x)
	y.AddVec(y, l.B)
	return y
}

// LayerNorm normalizes a single feature vector with its own mean and
// variance, then applies the learned affine transform.
type LayerNorm struct {
	Gamma *mat.VecDense
	Beta  *mat.VecDense
}

func LoadLayerNorm(sd StateDict, prefix string, n int) (*LayerNorm, error) {
	g, err := sd.Vector(prefix+".weight", n)
	if err != nil {
		return nil, err
	}
	b, err := sd.Vector(prefix+".bias", n)
	if err != nil {
		return nil, err
	}
	return &LayerNorm{Gamma: g, Beta: b}, nil
}

func (ln *LayerNorm) Forward(x *mat.VecDense) *mat.VecDense {
	n := x.Len()
	mean := 0.0
	for i := 0; i < n; i++ {
		mean += x.AtVec(i)
	}
	mean /= float64(n)

	variance := 0.0
	for i := 0; i < n; i++ {
		d := x.AtVec(i) - mean
		variance += d * d
	}
	variance /= float64(n)

	inv := 1.0 / math.Sqrt(variance+layerNormEps)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		y.SetVec(i, (x.AtVec(i)-mean)*inv*ln.Gamma.AtVec(i)+ln.Beta.AtVec(i))
	}
	return y
}

// Embedding is a lookup table with one row per index.
type Embedding struct {
	W *mat.Dense
}

func LoadEmbedding(sd StateDict, prefix string) (*Embedding, error) {
	dims, err := sd.Dims(prefix + ".weight")
	if err != nil {
		return nil, err
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w: %s.weight must be 2-D, got %v", ErrIncompatibleCheckpoint, prefix, dims)
	}
	w, err := sd.Matrix(prefix+".weight", dims[0], dims[1])
	if err != nil {
		return nil, err
	}
	return &Embedding{W: w}, nil
}

func (e *Embedding) Rows() int {
	r, _ := e.W.Dims()
	return r
}

func (e *Embedding) Dim() int {
	_, c := e.W.Dims()
	return c
}

func (e *Embedding) Lookup(idx int) (*mat.VecDense, error) {
	if idx < 0 || idx >= e.Rows() {
		return nil, fmt.Errorf("embedding index %d out of range [0,%d)", idx, e.Rows())
	}
	row := mat.NewVecDense(e.Dim(), nil)
	row.CopyVec(e.W.RowView(idx))
	return row, nil
}

// Dropout zeroes each unit with probability p and rescales survivors by
// 1/(1-p). A nil rng or p <= 0 returns x unchanged (inference mode).
func Dropout(x *mat.VecDense, p float64, rng *rand.Rand) *mat.VecDense {
	if rng == nil || p <= 0 {
		return x
	}
	if p >= 1 {
		return mat.NewVecDense(x.Len(), nil)
	}
	keep := 1.0 / (1.0 - p)
	y := mat.NewVecDense(x.Len(), nil)
	for i := 0; i < x.Len(); i++ {
		if rng.Float64() >= p {
			y.SetVec(i, x.AtVec(i)*keep)
		}
	}
	return y
}

func ReLU(x *mat.VecDense) *mat.VecDense {
	y := mat.NewVecDense(x.Len(), nil)
	for i := 0; i < x.Len(); i++ {
		if v := x.AtVec(i); v > 0 {
			y.SetVec(i, v)
		}
	}
	return y
}

// Softmax is numerically stabilized by subtracting the max logit.
func Softmax(x *mat.VecDense) []float64 {
	n := x.Len()
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	maxLogit := math.Inf(-1)
	for i := 0; i < n; i++ {
		maxLogit = math.Max(maxLogit, x.AtVec(i))
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		out[i] = math.Exp(x.AtVec(i) - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func sigmoid(v float64) float64 {
	return 1.0 / (1.0 + math.Exp(-v))
}
