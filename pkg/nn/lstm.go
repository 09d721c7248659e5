package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// lstmDirection holds one direction of a single-layer LSTM. Gate rows are
// stacked in input, forget, cell, output order.
type lstmDirection struct {
	wih *mat.Dense // (4H, in)
	whh *mat.Dense // (4H, H)
	bih *mat.VecDense
	bhh *mat.VecDense
}

// BiLSTM is a single-layer bidirectional LSTM with batch size one.
type BiLSTM struct {
	input   int
	hidden  int
	forward lstmDirection
	reverse lstmDirection
}

func LoadBiLSTM(sd StateDict, prefix string, input, hidden int) (*BiLSTM, error) {
	fwd, err := loadDirection(sd, prefix, "", input, hidden)
	if err != nil {
		return nil, err
	}
	rev, err := loadDirection(sd, prefix, "_reverse", input, hidden)
	if err != nil {
		return nil, err
	}
	return &BiLSTM{input: input, hidden: hidden, forward: fwd, reverse: rev}, nil
}

func loadDirection(sd StateDict, prefix, suffix string, input, hidden int) (lstmDirection, error) {
	var (
		d   lstmDirection
		err error
	)
	gates := 4 * hidden
	if d.wih, err = sd.Matrix(prefix+".weight_ih_l0"+suffix, gates, input); err != nil {
		return d, err
	}
	if d.whh, err = sd.Matrix(prefix+".weight_hh_l0"+suffix, gates, hidden); err != nil {
		return d, err
	}
	if d.bih, err = sd.Vector(prefix+".bias_ih_l0"+suffix, gates); err != nil {
		return d, err
	}
	if d.bhh, err = sd.Vector(prefix+".bias_hh_l0"+suffix, gates); err != nil {
		return d, err
	}
	return d, nil
}

func (l *BiLSTM) Hidden() int { return l.hidden }

// Forward runs both directions over seq and returns, for every step, the
// forward and reverse hidden states concatenated (length 2H).
func (l *BiLSTM) Forward(seq []*mat.VecDense) ([]*mat.VecDense, error) {
	for t, x := range seq {
		if x.Len() != l.input {
			return nil, fmt.Errorf("lstm step %d has %d inputs, want %d", t, x.Len(), l.input)
		}
	}

	steps := len(seq)
	fwd := make([]*mat.VecDense, steps)
	rev := make([]*mat.VecDense, steps)

	h := mat.NewVecDense(l.hidden, nil)
	c := mat.NewVecDense(l.hidden, nil)
	for t := 0; t < steps; t++ {
		h, c = l.forward.step(seq[t], h, c, l.hidden)
		fwd[t] = h
	}

	h = mat.NewVecDense(l.hidden, nil)
	c = mat.NewVecDense(l.hidden, nil)
	for t := steps - 1; t >= 0; t-- {
		h, c = l.reverse.step(seq[t], h, c, l.hidden)
		rev[t] = h
	}

	out := make([]*mat.VecDense, steps)
	for t := 0; t < steps; t++ {
		v := mat.NewVecDense(2*l.hidden, nil)
		for i := 0; i < l.hidden; i++ {
			v.SetVec(i, fwd[t].AtVec(i))
			v.SetVec(l.hidden+i, rev[t].AtVec(i))
		}
		out[t] = v
	}
	return out, nil
}

func (d lstmDirection) step(x, hPrev, cPrev *mat.VecDense, hidden int) (*mat.VecDense, *mat.VecDense) {
	gates := mat.NewVecDense(4*hidden, nil)
	gates.MulVec(d.wih, x)

	rec := mat.NewVecDense(4*hidden, nil)
	rec.MulVec(d.whh, hPrev)

	gates.AddVec(gates, rec)
	gates.AddVec(gates, d.bih)
	gates.AddVec(gates, d.bhh)

	h := mat.NewVecDense(hidden, nil)
	c := mat.NewVecDense(hidden, nil)
	for j := 0; j < hidden; j++ {
		i := sigmoid(gates.AtVec(j))
		f := sigmoid(gates.AtVec(hidden + j))
		g := math.Tanh(gates.AtVec(2*hidden + j))
		o := sigmoid(gates.AtVec(3*hidden + j))

		cj := f*cPrev.AtVec(j) + i*g
		c.SetVec(j, cj)
		h.SetVec(j, o*math.Tanh(cj))
	}
	return h, c
}

// MeanOverTime averages a sequence of equally sized vectors. It returns nil
// for an empty sequence.
func MeanOverTime(seq []*mat.VecDense) *mat.VecDense {
	if len(seq) == 0 {
		return nil
	}
	out := mat.NewVecDense(seq[0].Len(), nil)
	for _, v := range seq {
		out.AddVec(out, v)
	}
	out.ScaleVec(1.0/float64(len(seq)), out)
	return out
}
