package policy

import (
	"fmt"

	"simToDec/pkg/nn"

	"gonum.org/v1/gonum/mat"
)

// Actor maps an aggregated state vector to a probability over modes.
// Dropout after the hidden layer is a training-time layer only and is never
// applied here.
type Actor struct {
	fc1 *nn.Linear
	ln  *nn.LayerNorm
	fc2 *nn.Linear
}

func NewActor(sd nn.StateDict, stateDim, hidden, numModes int) (*Actor, error) {
	fc1, err := nn.LoadLinear(sd, "fc1", stateDim, hidden)
	if err != nil {
		return nil, err
	}
	ln, err := nn.LoadLayerNorm(sd, "ln", hidden)
	if err != nil {
		return nil, err
	}
	fc2, err := nn.LoadLinear(sd, "fc2", hidden, numModes)
	if err != nil {
		return nil, err
	}
	return &Actor{fc1: fc1, ln: ln, fc2: fc2}, nil
}

func (a *Actor) NumModes() int { return a.fc2.Out() }

func (a *Actor) Probabilities(state []float64) ([]float64, error) {
	if len(state) != a.fc1.In() {
		return nil, fmt.Errorf("policy state has %d dims, want %d", len(state), a.fc1.In())
	}
	x := mat.NewVecDense(len(state), append([]float64(nil), state...))
	h := nn.ReLU(a.ln.Forward(a.fc1.Forward(x)))
	return nn.Softmax(a.fc2.Forward(h)), nil
}

// Choose returns the most probable mode index; ties go to the lowest index.
func (a *Actor) Choose(state []float64) (int, []float64, error) {
	probs, err := a.Probabilities(state)
	if err != nil {
		return 0, nil, err
	}
	return Argmax(probs), probs, nil
}

func Argmax(xs []float64) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}
