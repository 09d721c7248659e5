//go:build !integration

package policy

import (
	"testing"

	"simToDec/pkg/nn"

	"github.com/stretchr/testify/require"
)

func zeros(shape ...int) nn.Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return nn.Tensor{Shape: shape, Data: make([]float64, n)}
}

func actorState(stateDim, hidden, modes int, fc2Bias []float64) nn.StateDict {
	return nn.StateDict{
		"fc1.weight": zeros(hidden, stateDim),
		"fc1.bias":   zeros(hidden),
		"ln.weight":  zeros(hidden),
		"ln.bias":    zeros(hidden),
		"fc2.weight": zeros(modes, hidden),
		"fc2.bias":   {Shape: []int{modes}, Data: fc2Bias},
	}
}

func TestActor_Choose(t *testing.T) {
	a, err := NewActor(actorState(5, 4, 3, []float64{0, 2, 1}), 5, 4, 3)
	require.NoError(t, err)
	require.Equal(t, 3, a.NumModes())

	choice, probs, err := a.Choose([]float64{0.1, -0.3, 0.2, 0, 1})
	require.NoError(t, err)
	require.Equal(t, 1, choice)
	require.Len(t, probs, 3)

	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	require.InDelta(t, 1.0, sum, 1e-12)
}

func TestActor_TieGoesToLowestIndex(t *testing.T) {
	a, err := NewActor(actorState(5, 4, 4, []float64{0, 1, 1, 1}), 5, 4, 4)
	require.NoError(t, err)

	choice, _, err := a.Choose(make([]float64, 5))
	require.NoError(t, err)
	require.Equal(t, 1, choice)

	require.Equal(t, 0, Argmax([]float64{0.5, 0.5}))
	require.Equal(t, 0, Argmax(nil))
}

func TestActor_Errors(t *testing.T) {
	_, err := NewActor(actorState(5, 4, 3, []float64{0, 0, 0}), 5, 8, 3)
	require.ErrorIs(t, err, nn.ErrIncompatibleCheckpoint)

	a, err := NewActor(actorState(5, 4, 3, []float64{0, 0, 0}), 5, 4, 3)
	require.NoError(t, err)
	_, err = a.Probabilities([]float64{1, 2})
	require.Error(t, err)
}
