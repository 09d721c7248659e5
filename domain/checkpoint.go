package domain

import "simToDec/pkg/nn"

type SimulatorConfig struct {
	EmbDim  int     `json:"emb_dim"`
	Hidden  int     `json:"hidden"`
	Dropout float64 `json:"dropout"`
}

// SimulatorCheckpoint is one exported ensemble member together with the
// scalers and mode list it was trained with.
type SimulatorCheckpoint struct {
	Modes      []string        `json:"modes"`
	SxMean     []float64       `json:"sx_mean"`
	SxScale    []float64       `json:"sx_scale"`
	SyMean     []float64       `json:"sy_mean"`
	SyScale    []float64       `json:"sy_scale"`
	Config     SimulatorConfig `json:"config"`
	ModelState nn.StateDict    `json:"model_state"`
}

type ActorCheckpoint struct {
	Hidden     int          `json:"hidden"`
	Dropout    float64      `json:"dropout"`
	ModelState nn.StateDict `json:"model_state"`
}
