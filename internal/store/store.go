// Package store persists GameState snapshots in named save slots.
package store

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"github.com/tatianab/basilisk/internal/config"
	"github.com/tatianab/basilisk/internal/models"
)

var (
	ErrNotFound    = errors.New("save slot not found")
	ErrInvalidSlot = errors.New("invalid save slot name")
)

var slotRE = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Store saves and loads game state by slot name.
type Store interface {
	Save(ctx context.Context, slot string, gs *models.GameState) error
	Load(ctx context.Context, slot string) (*models.GameState, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

// ValidSlot rejects names that are not lowercase letters, digits, '_' or '-'.
func ValidSlot(slot string) error {
	if !slotRE.MatchString(slot) {
		return errors.Wrapf(ErrInvalidSlot, "%q", slot)
	}
	return nil
}

// Open returns the backend selected by cfg.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.SaveBackend {
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case config.BackendYAML, "":
		return NewYAML(cfg.SaveDir), nil
	}
	return nil, errors.Errorf("unknown save backend %q", cfg.SaveBackend)
}
