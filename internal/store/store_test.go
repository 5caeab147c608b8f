package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bxcodec/faker/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tatianab/basilisk/internal/config"
	"github.com/tatianab/basilisk/internal/models"
)

type progress struct {
	Step    int     `yaml:"step" json:"step"`
	Elapsed float64 `yaml:"elapsed" json:"elapsed"`
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sq, err := OpenSQLite(filepath.Join(dir, "db", "saves.db"))
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"yaml":   NewYAML(filepath.Join(dir, "yaml")),
		"sqlite": sq,
	}
}

func sampleState() *models.GameState {
	gs := models.NewGameState("beacon_2")
	gs.PlayerName = faker.Username()
	gs.SetFlag("protocol_selected", true)
	gs.SetFlag("b2_spires_calibrated", true)
	gs.AddItem("Beacon Fragment")
	gs.Set("protocol", "beacon")
	models.SetVar(gs, "b2_sequence_state", progress{Step: 2, Elapsed: 4.5})
	return gs
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleState()
			if err := s.Save(ctx, "slot-1", want); err != nil {
				t.Fatalf("Failed to save: %v", err)
			}
			got, err := s.Load(ctx, "slot-1")
			if err != nil {
				t.Fatalf("Failed to load: %v", err)
			}

			opts := cmp.Options{
				cmpopts.IgnoreUnexported(models.GameState{}),
				cmpopts.IgnoreFields(models.GameState{}, "Variables"),
			}
			if diff := cmp.Diff(want, got, opts...); diff != "" {
				t.Errorf("Loaded state mismatch (-want +got):\n%s", diff)
			}

			p, ok := models.Var[progress](got, "b2_sequence_state")
			if !ok {
				t.Fatalf("Expected b2_sequence_state to decode")
			}
			if p.Step != 2 || p.Elapsed != 4.5 {
				t.Errorf("Expected {2 4.5}, got %+v", p)
			}
			if got.Get("protocol", "") != "beacon" {
				t.Errorf("Expected protocol beacon, got %v", got.Get("protocol", ""))
			}
		})
	}
}

func TestSaveOverwritesAndLists(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			slots, err := s.List(ctx)
			if err != nil {
				t.Fatalf("Failed to list: %v", err)
			}
			if len(slots) != 0 {
				t.Errorf("Expected no slots, got %v", slots)
			}

			gs := sampleState()
			for _, slot := range []string{"zeta", "alpha"} {
				if err := s.Save(ctx, slot, gs); err != nil {
					t.Fatalf("Failed to save %s: %v", slot, err)
				}
			}
			gs.ChangeRoom("beacon_3")
			if err := s.Save(ctx, "alpha", gs); err != nil {
				t.Fatalf("Failed to overwrite: %v", err)
			}

			slots, err = s.List(ctx)
			if err != nil {
				t.Fatalf("Failed to list: %v", err)
			}
			if diff := cmp.Diff([]string{"alpha", "zeta"}, slots); diff != "" {
				t.Errorf("Slots mismatch (-want +got):\n%s", diff)
			}

			got, err := s.Load(ctx, "alpha")
			if err != nil {
				t.Fatalf("Failed to load: %v", err)
			}
			if got.CurrentRoomID != "beacon_3" {
				t.Errorf("Expected beacon_3, got %s", got.CurrentRoomID)
			}
		})
	}
}

func TestLoadMissingAndInvalidSlots(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Load(ctx, "nothing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
			for _, slot := range []string{"", "../up", "Upper", "a b"} {
				if err := s.Save(ctx, slot, models.NewGameState("boot")); !errors.Is(err, ErrInvalidSlot) {
					t.Errorf("Expected ErrInvalidSlot for %q, got %v", slot, err)
				}
			}
		})
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(&config.Config{SaveBackend: config.BackendYAML, SaveDir: dir})
	if err != nil {
		t.Fatalf("Failed to open yaml backend: %v", err)
	}
	if _, ok := s.(*YAML); !ok {
		t.Errorf("Expected *YAML, got %T", s)
	}

	s, err = Open(&config.Config{SaveBackend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "b.db")})
	if err != nil {
		t.Fatalf("Failed to open sqlite backend: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLite); !ok {
		t.Errorf("Expected *SQLite, got %T", s)
	}

	if _, err := Open(&config.Config{SaveBackend: "redis"}); err == nil {
		t.Errorf("Expected error for unknown backend")
	}
}
