package inference

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"simToDec/business/policy"
	"simToDec/business/simulator"
	"simToDec/domain"
	"simToDec/pkg/nn"
)

// OutcomeEvaluator aggregates the simulator ensemble for one mode.
type OutcomeEvaluator interface {
	Evaluate(seq simulator.Sequence, mode int, rng *rand.Rand) (simulator.Prediction, error)
	Size() int
	MCSamples() int
}

type Policy interface {
	Choose(state []float64) (int, []float64, error)
}

// InferenceContext is everything loaded once at startup. It is never
// mutated afterwards and is shared by all requests.
type InferenceContext struct {
	modes    []string
	scaler   simulator.Scaler
	ensemble OutcomeEvaluator
	policy   Policy
	cfg      Config
}

func NewInferenceContext(modes []string, scaler simulator.Scaler, ensemble OutcomeEvaluator, pol Policy, cfg Config) (*InferenceContext, error) {
	if len(modes) == 0 {
		return nil, errors.New("no shipping modes")
	}
	if scaler.Dim() != FeatureDim {
		return nil, fmt.Errorf("%w: feature scaler has %d dims, want %d", nn.ErrIncompatibleCheckpoint, scaler.Dim(), FeatureDim)
	}
	if ensemble == nil || pol == nil {
		return nil, errors.New("ensemble and policy are required")
	}
	if cfg.SeqLen < 1 {
		return nil, fmt.Errorf("invalid sequence length %d", cfg.SeqLen)
	}
	m := make([]string, len(modes))
	copy(m, modes)
	return &InferenceContext{modes: m, scaler: scaler, ensemble: ensemble, policy: pol, cfg: cfg}, nil
}

// LoadInferenceContext builds the networks from exported checkpoints. Modes
// and scalers come from the first simulator checkpoint; only the first
// cfg.EnsembleK simulators are used.
func LoadInferenceContext(sims []domain.SimulatorCheckpoint, actor domain.ActorCheckpoint, cfg Config) (*InferenceContext, error) {
	if cfg.EnsembleK < 1 || cfg.EnsembleK > len(sims) {
		return nil, fmt.Errorf("ensemble size %d needs at least that many checkpoints, have %d", cfg.EnsembleK, len(sims))
	}
	first := sims[0]
	modes := first.Modes

	sx, err := simulator.NewScaler(first.SxMean, first.SxScale)
	if err != nil {
		return nil, fmt.Errorf("%w: feature scaler: %v", nn.ErrIncompatibleCheckpoint, err)
	}
	sy, err := simulator.NewScaler(first.SyMean, first.SyScale)
	if err != nil {
		return nil, fmt.Errorf("%w: outcome scaler: %v", nn.ErrIncompatibleCheckpoint, err)
	}

	members := make([]simulator.Model, 0, cfg.EnsembleK)
	for i, ckpt := range sims[:cfg.EnsembleK] {
		if !slices.Equal(modes, ckpt.Modes) {
			return nil, fmt.Errorf("%w: simulator %d modes %v differ from %v", nn.ErrIncompatibleCheckpoint, i, ckpt.Modes, modes)
		}
		netCfg, err := networkConfig(ckpt.Config)
		if err != nil {
			return nil, fmt.Errorf("simulator %d: %w", i, err)
		}
		net, err := simulator.NewNetwork(ckpt.ModelState, FeatureDim, len(modes), netCfg)
		if err != nil {
			return nil, fmt.Errorf("simulator %d: %w", i, err)
		}
		members = append(members, net)
	}

	ensemble, err := simulator.NewEnsemble(members, cfg.MCSamples, cfg.MCDropout, sy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nn.ErrIncompatibleCheckpoint, err)
	}

	hidden := actor.Hidden
	if hidden == 0 {
		hidden = 128
	}
	pol, err := policy.NewActor(actor.ModelState, FeatureDim, hidden, len(modes))
	if err != nil {
		return nil, fmt.Errorf("actor: %w", err)
	}

	return NewInferenceContext(modes, sx, ensemble, pol, cfg)
}

// networkConfig fills every hyperparameter the checkpoint omits with the
// training default. A zero dropout counts as omitted, otherwise MC sampling
// would collapse into identical passes.
func networkConfig(c domain.SimulatorConfig) (simulator.NetworkConfig, error) {
	cfg := simulator.DefaultNetworkConfig()
	if c.EmbDim != 0 {
		cfg.EmbDim = c.EmbDim
	}
	if c.Hidden != 0 {
		cfg.Hidden = c.Hidden
	}
	if c.Dropout != 0 {
		cfg.Dropout = c.Dropout
	}
	if cfg.EmbDim < 0 || cfg.Hidden < 0 || cfg.Dropout < 0 || cfg.Dropout >= 1 {
		return cfg, fmt.Errorf("%w: invalid simulator config %+v", nn.ErrIncompatibleCheckpoint, c)
	}
	return cfg, nil
}

func (c *InferenceContext) Modes() []string {
	out := make([]string, len(c.modes))
	copy(out, c.modes)
	return out
}

func (c *InferenceContext) Config() Config { return c.cfg }

func (c *InferenceContext) Info() domain.ModelInfo {
	return domain.ModelInfo{
		Modes:        c.Modes(),
		EnsembleSize: c.ensemble.Size(),
		MCSamples:    c.ensemble.MCSamples(),
		SeqLen:       c.cfg.SeqLen,
	}
}
