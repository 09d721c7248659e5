package nn

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStateDict_ShapeMismatch(t *testing.T) {
	sd := StateDict{
		"fc.weight": {Shape: []int{2, 3}, Data: make([]float64, 6)},
		"fc.bias":   {Shape: []int{2}, Data: make([]float64, 2)},
	}

	_, err := LoadLinear(sd, "fc", 4, 2)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrIncompatibleCheckpoint))

	_, err = LoadLinear(sd, "missing", 3, 2)
	require.True(t, errors.Is(err, ErrIncompatibleCheckpoint))

	l, err := LoadLinear(sd, "fc", 3, 2)
	require.NoError(t, err)
	require.Equal(t, 3, l.In())
	require.Equal(t, 2, l.Out())
}

func TestLinear_Forward(t *testing.T) {
	sd := StateDict{
		"fc.weight": {Shape: []int{2, 2}, Data: []float64{1, 2, 3, 4}},
		"fc.bias":   {Shape: []int{2}, Data: []float64{0.5, -1}},
	}
	l, err := LoadLinear(sd, "fc", 2, 2)
	require.NoError(t, err)

	y := l.Forward(mat.NewVecDense(2, []float64{1, 1}))
	require.InDelta(t, 3.5, y.AtVec(0), 1e-12)
	require.InDelta(t, 6.0, y.AtVec(1), 1e-12)
}

func TestLayerNorm_ZeroMeanUnitVariance(t *testing.T) {
	sd := StateDict{
		"ln.weight": {Shape: []int{4}, Data: []float64{1, 1, 1, 1}},
		"ln.bias":   {Shape: []int{4}, Data: []float64{0, 0, 0, 0}},
	}
	ln, err := LoadLayerNorm(sd, "ln", 4)
	require.NoError(t, err)

	y := ln.Forward(mat.NewVecDense(4, []float64{1, 2, 3, 4}))
	mean, sq := 0.0, 0.0
	for i := 0; i < 4; i++ {
		mean += y.AtVec(i)
		sq += y.AtVec(i) * y.AtVec(i)
	}
	require.InDelta(t, 0, mean/4, 1e-9)
	require.InDelta(t, 1, sq/4, 1e-4)
}

func TestSoftmax(t *testing.T) {
	p := Softmax(mat.NewVecDense(3, []float64{1000, 1000, 1000}))
	for _, v := range p {
		require.InDelta(t, 1.0/3.0, v, 1e-12)
	}

	p = Softmax(mat.NewVecDense(2, []float64{0, math.Log(3)}))
	require.InDelta(t, 0.25, p[0], 1e-12)
	require.InDelta(t, 0.75, p[1], 1e-12)
}

func TestDropout(t *testing.T) {
	x := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	require.Same(t, x, Dropout(x, 0.5, nil))
	require.Same(t, x, Dropout(x, 0, rand.New(rand.NewSource(1))))

	y := Dropout(x, 0.5, rand.New(rand.NewSource(1)))
	for i := 0; i < 4; i++ {
		v := y.AtVec(i)
		if v != 0 {
			require.InDelta(t, 2*x.AtVec(i), v, 1e-12)
		}
	}
}

func TestEmbedding_Lookup(t *testing.T) {
	sd := StateDict{"emb.weight": {Shape: []int{2, 3}, Data: []float64{1, 2, 3, 4, 5, 6}}}
	e, err := LoadEmbedding(sd, "emb")
	require.NoError(t, err)

	row, err := e.Lookup(1)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, row.RawVector().Data)

	_, err = e.Lookup(2)
	require.Error(t, err)
}

// zeroLSTM builds a bidirectional LSTM whose weights are all zero except
// for the given input-gate and cell-gate biases.
func zeroLSTM(input, hidden int) StateDict {
	sd := StateDict{}
	for _, suffix := range []string{"", "_reverse"} {
		sd["lstm.weight_ih_l0"+suffix] = Tensor{Shape: []int{4 * hidden, input}, Data: make([]float64, 4*hidden*input)}
		sd["lstm.weight_hh_l0"+suffix] = Tensor{Shape: []int{4 * hidden, hidden}, Data: make([]float64, 4*hidden*hidden)}
		sd["lstm.bias_ih_l0"+suffix] = Tensor{Shape: []int{4 * hidden}, Data: make([]float64, 4*hidden)}
		sd["lstm.bias_hh_l0"+suffix] = Tensor{Shape: []int{4 * hidden}, Data: make([]float64, 4*hidden)}
	}
	return sd
}

func TestBiLSTM_ZeroWeights(t *testing.T) {
	sd := zeroLSTM(3, 2)
	l, err := LoadBiLSTM(sd, "lstm", 3, 2)
	require.NoError(t, err)

	seq := []*mat.VecDense{
		mat.NewVecDense(3, []float64{1, 2, 3}),
		mat.NewVecDense(3, []float64{4, 5, 6}),
	}
	out, err := l.Forward(seq)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// all gates are sigmoid(0)=0.5 and g=tanh(0)=0, so every state stays zero
	for _, v := range out {
		require.Equal(t, 4, v.Len())
		for i := 0; i < v.Len(); i++ {
			require.Equal(t, 0.0, v.AtVec(i))
		}
	}

	_, err = l.Forward([]*mat.VecDense{mat.NewVecDense(2, nil)})
	require.Error(t, err)
}

func TestBiLSTM_CellBias(t *testing.T) {
	sd := zeroLSTM(1, 1)
	// g gate bias for the forward direction only
	sd["lstm.bias_ih_l0"].Data[2] = 100
	l, err := LoadBiLSTM(sd, "lstm", 1, 1)
	require.NoError(t, err)

	out, err := l.Forward([]*mat.VecDense{mat.NewVecDense(1, []float64{0})})
	require.NoError(t, err)

	// c = 0.5*tanh(100) ~= 0.5, h = 0.5*tanh(0.5)
	require.InDelta(t, 0.5*math.Tanh(0.5), out[0].AtVec(0), 1e-9)
	require.Equal(t, 0.0, out[0].AtVec(1))
}

func TestBiLSTM_GateOrderAndRecurrence(t *testing.T) {
	sd := zeroLSTM(1, 1)
	// rows are i, f, g, o; every gate gets distinct weights
	copy(sd["lstm.weight_ih_l0"].Data, []float64{0.7, 0, 1.2, 0.4})
	copy(sd["lstm.weight_hh_l0"].Data, []float64{0, 0.6, -0.8, 0.9})
	copy(sd["lstm.bias_ih_l0"].Data, []float64{0.5, 1.0, 0.3, -0.2})
	l, err := LoadBiLSTM(sd, "lstm", 1, 1)
	require.NoError(t, err)

	out, err := l.Forward([]*mat.VecDense{
		mat.NewVecDense(1, []float64{1}),
		mat.NewVecDense(1, []float64{-0.5}),
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	sig := func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }

	// step 1, h0 = c0 = 0
	i1, f1, g1, o1 := sig(0.7+0.5), sig(1.0), math.Tanh(1.2+0.3), sig(0.4-0.2)
	c1 := f1*0 + i1*g1
	h1 := o1 * math.Tanh(c1)

	// step 2 feeds h1 through weight_hh and carries c1 through the forget gate
	x := -0.5
	i2 := sig(0.7*x + 0.5)
	f2 := sig(0.6*h1 + 1.0)
	g2 := math.Tanh(1.2*x - 0.8*h1 + 0.3)
	o2 := sig(0.4*x + 0.9*h1 - 0.2)
	c2 := f2*c1 + i2*g2
	h2 := o2 * math.Tanh(c2)

	require.InDelta(t, 0.330772, h1, 1e-6)
	require.InDelta(t, 0.120462, h2, 1e-6)
	require.InDelta(t, h1, out[0].AtVec(0), 1e-12)
	require.InDelta(t, h2, out[1].AtVec(0), 1e-12)

	// reverse direction has zero weights
	require.Equal(t, 0.0, out[0].AtVec(1))
	require.Equal(t, 0.0, out[1].AtVec(1))
}

func TestMeanOverTime(t *testing.T) {
	require.Nil(t, MeanOverTime(nil))

	m := MeanOverTime([]*mat.VecDense{
		mat.NewVecDense(2, []float64{1, 3}),
		mat.NewVecDense(2, []float64{3, 5}),
	})
	require.Equal(t, []float64{2, 4}, m.RawVector().Data)
}
