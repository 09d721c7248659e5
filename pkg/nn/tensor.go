// Package nn evaluates small pretrained networks exported from the training
// framework as JSON state dicts. Only forward passes are supported.
package nn

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrIncompatibleCheckpoint is returned when a state dict is missing a
// parameter or a parameter has the wrong shape for the requested layer.
var ErrIncompatibleCheckpoint = errors.New("checkpoint incompatible with model architecture")

// Tensor is a dense row-major array as exported from a state dict.
type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// StateDict maps parameter names (e.g. "lstm.weight_ih_l0") to tensors.
type StateDict map[string]Tensor

func (t Tensor) size() int {
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// Matrix returns the named 2-D parameter as a rows x cols matrix.
func (sd StateDict) Matrix(name string, rows, cols int) (*mat.Dense, error) {
	t, ok := sd[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompatibleCheckpoint, name)
	}
	if len(t.Shape) != 2 || t.Shape[0] != rows || t.Shape[1] != cols || len(t.Data) != t.size() {
		return nil, fmt.Errorf("%w: %s has shape %v, want [%d %d]", ErrIncompatibleCheckpoint, name, t.Shape, rows, cols)
	}
	data := make([]float64, len(t.Data))
	copy(data, t.Data)
	return mat.NewDense(rows, cols, data), nil
}

// Vector returns the named 1-D parameter of length n.
func (sd StateDict) Vector(name string, n int) (*mat.VecDense, error) {
	t, ok := sd[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompatibleCheckpoint, name)
	}
	if len(t.Shape) != 1 || t.Shape[0] != n || len(t.Data) != n {
		return nil, fmt.Errorf("%w: %s has shape %v, want [%d]", ErrIncompatibleCheckpoint, name, t.Shape, n)
	}
	data := make([]float64, n)
	copy(data, t.Data)
	return mat.NewVecDense(n, data), nil
}

// Dims returns the shape of the named parameter, used to infer layer sizes.
func (sd StateDict) Dims(name string) ([]int, error) {
	t, ok := sd[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompatibleCheckpoint, name)
	}
	return t.Shape, nil
}
