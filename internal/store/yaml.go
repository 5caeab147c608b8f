package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/tatianab/basilisk/internal/models"
	"gopkg.in/yaml.v3"
)

const stateFile = "state.yaml"

// YAML keeps one directory per slot under Dir, each holding a state.yaml.
type YAML struct {
	Dir string
}

func NewYAML(dir string) *YAML {
	return &YAML{Dir: dir}
}

func (s *YAML) Save(_ context.Context, slot string, gs *models.GameState) error {
	if err := ValidSlot(slot); err != nil {
		return err
	}
	dir := filepath.Join(s.Dir, slot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating save dir %s", dir)
	}
	data, err := yaml.Marshal(gs)
	if err != nil {
		return errors.Wrap(err, "encoding state")
	}
	if err := os.WriteFile(filepath.Join(dir, stateFile), data, 0644); err != nil {
		return errors.Wrapf(err, "writing slot %s", slot)
	}
	return nil
}

func (s *YAML) Load(_ context.Context, slot string) (*models.GameState, error) {
	if err := ValidSlot(slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, slot, stateFile))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "slot %s", slot)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading slot %s", slot)
	}
	gs := models.NewGameState("")
	if err := yaml.Unmarshal(data, gs); err != nil {
		return nil, errors.Wrapf(err, "decoding slot %s", slot)
	}
	return gs.Normalize(), nil
}

// List returns the slots that contain a state file.
func (s *YAML) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slots := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.Dir, entry.Name(), stateFile)); err == nil {
			slots = append(slots, entry.Name())
		}
	}
	sort.Strings(slots)
	return slots, nil
}

func (s *YAML) Close() error { return nil }
