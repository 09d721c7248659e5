package simulator

import (
	"fmt"
	"math/rand"

	"simToDec/pkg/nn"

	"gonum.org/v1/gonum/mat"
)

// NetworkConfig mirrors the hyperparameters the simulator was trained with.
type NetworkConfig struct {
	EmbDim  int     `json:"emb_dim"`
	Hidden  int     `json:"hidden"`
	Dropout float64 `json:"dropout"`
}

func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{EmbDim: 8, Hidden: 64, Dropout: 0.25}
}

// Network is the recurrent simulator: mode embedding concatenated to every
// step, bidirectional LSTM, mean over time, LayerNorm, dropout, then two
// linear heads for mean and log-variance.
type Network struct {
	featDim int
	cfg     NetworkConfig
	emb     *nn.Embedding
	lstm    *nn.BiLSTM
	norm    *nn.LayerNorm
	fcMu    *nn.Linear
	fcLv    *nn.Linear
}

var _ Model = (*Network)(nil)

func NewNetwork(sd nn.StateDict, featDim, numModes int, cfg NetworkConfig) (*Network, error) {
	emb, err := nn.LoadEmbedding(sd, "emb")
	if err != nil {
		return nil, err
	}
	if emb.Rows() != numModes || emb.Dim() != cfg.EmbDim {
		return nil, fmt.Errorf("%w: emb.weight is %dx%d, want %dx%d",
			nn.ErrIncompatibleCheckpoint, emb.Rows(), emb.Dim(), numModes, cfg.EmbDim)
	}

	lstm, err := nn.LoadBiLSTM(sd, "lstm", featDim+cfg.EmbDim, cfg.Hidden)
	if err != nil {
		return nil, err
	}
	norm, err := nn.LoadLayerNorm(sd, "norm", 2*cfg.Hidden)
	if err != nil {
		return nil, err
	}
	fcMu, err := nn.LoadLinear(sd, "fc_mu", 2*cfg.Hidden, OutcomeDim)
	if err != nil {
		return nil, err
	}
	fcLv, err := nn.LoadLinear(sd, "fc_lv", 2*cfg.Hidden, OutcomeDim)
	if err != nil {
		return nil, err
	}

	return &Network{
		featDim: featDim,
		cfg:     cfg,
		emb:     emb,
		lstm:    lstm,
		norm:    norm,
		fcMu:    fcMu,
		fcLv:    fcLv,
	}, nil
}

func (n *Network) Predict(seq Sequence, mode int, rng *rand.Rand) ([]float64, []float64, error) {
	if len(seq) == 0 {
		return nil, nil, fmt.Errorf("empty sequence")
	}
	e, err := n.emb.Lookup(mode)
	if err != nil {
		return nil, nil, err
	}

	steps := make([]*mat.VecDense, len(seq))
	for t, x := range seq {
		if len(x) != n.featDim {
			return nil, nil, fmt.Errorf("step %d has %d features, want %d", t, len(x), n.featDim)
		}
		v := mat.NewVecDense(n.featDim+n.cfg.EmbDim, nil)
		for i, f := range x {
			v.SetVec(i, f)
		}
		for i := 0; i < n.cfg.EmbDim; i++ {
			v.SetVec(n.featDim+i, e.AtVec(i))
		}
		steps[t] = v
	}

	out, err := n.lstm.Forward(steps)
	if err != nil {
		return nil, nil, err
	}

	h := n.norm.Forward(nn.MeanOverTime(out))
	h = nn.Dropout(h, n.cfg.Dropout, rng)

	return n.fcMu.Forward(h).RawVector().Data, n.fcLv.Forward(h).RawVector().Data, nil
}
