package checkpoint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSimulator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	body := `{
		"modes": ["Standard", "Air", "Ship", "Rail"],
		"sx_mean": [800, 8, 0.7, 1, 0.9], "sx_scale": [300, 4, 0.1, 0.05, 0.01],
		"sy_mean": [3, 120, 1500], "sy_scale": [2, 40, 600],
		"config": {"emb_dim": 8, "hidden": 64, "dropout": 0.25},
		"model_state": {"fc_mu.bias": {"shape": [3], "data": [0.1, 0.2, 0.3]}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	ckpt, err := NewFileRepository().LoadSimulator(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Standard", "Air", "Ship", "Rail"}, ckpt.Modes)
	require.Equal(t, 64, ckpt.Config.Hidden)
	require.Equal(t, []int{3}, ckpt.ModelState["fc_mu.bias"].Shape)
	require.Equal(t, []float64{3, 120, 1500}, ckpt.SyMean)
}

func TestLoadSimulator_Errors(t *testing.T) {
	repo := NewFileRepository()
	dir := t.TempDir()

	_, err := repo.LoadSimulator(filepath.Join(dir, "missing.json"))
	require.True(t, errors.Is(err, ErrCheckpointNotFound))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = repo.LoadSimulator(bad)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrCheckpointNotFound))

	noModes := filepath.Join(dir, "nomodes.json")
	require.NoError(t, os.WriteFile(noModes, []byte(`{"model_state":{"a":{"shape":[1],"data":[1]}}}`), 0o644))
	_, err = repo.LoadSimulator(noModes)
	require.Error(t, err)
}

func TestLoadActor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hidden":128,"dropout":0.2,"model_state":{"fc2.bias":{"shape":[4],"data":[0,0,0,0]}}}`), 0o644))

	ckpt, err := NewFileRepository().LoadActor(path)
	require.NoError(t, err)
	require.Equal(t, 128, ckpt.Hidden)

	_, err = NewFileRepository().LoadActor(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrCheckpointNotFound)
}
