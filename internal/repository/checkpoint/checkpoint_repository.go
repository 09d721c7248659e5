package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"simToDec/domain"
)

var ErrCheckpointNotFound = errors.New("checkpoint not found")

// FileRepository reads JSON checkpoints exported from the training run.
type FileRepository struct{}

func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

func (r *FileRepository) LoadSimulator(path string) (domain.SimulatorCheckpoint, error) {
	var ckpt domain.SimulatorCheckpoint
	if err := readJSON(path, &ckpt); err != nil {
		return domain.SimulatorCheckpoint{}, err
	}
	if len(ckpt.Modes) == 0 {
		return domain.SimulatorCheckpoint{}, fmt.Errorf("checkpoint %s: no modes", path)
	}
	if len(ckpt.ModelState) == 0 {
		return domain.SimulatorCheckpoint{}, fmt.Errorf("checkpoint %s: empty model_state", path)
	}
	return ckpt, nil
}

func (r *FileRepository) LoadActor(path string) (domain.ActorCheckpoint, error) {
	var ckpt domain.ActorCheckpoint
	if err := readJSON(path, &ckpt); err != nil {
		return domain.ActorCheckpoint{}, err
	}
	if len(ckpt.ModelState) == 0 {
		return domain.ActorCheckpoint{}, fmt.Errorf("checkpoint %s: empty model_state", path)
	}
	return ckpt, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrCheckpointNotFound, path)
		}
		return fmt.Errorf("open checkpoint %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode checkpoint %s: %w", path, err)
	}
	return nil
}
