package tui

import (
	"bytes"
	"context"
	"log"
	"slices"
	"strings"
	"testing"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
	"github.com/tatianab/basilisk/internal/oracle"
	"github.com/tatianab/basilisk/internal/rooms"
	"github.com/tatianab/basilisk/internal/store"
)

type stubOracle struct {
	got oracle.Query
}

func (o *stubOracle) Ask(_ context.Context, q oracle.Query) ([]string, error) {
	o.got = q
	return []string{">> Seek the spires."}, nil
}

type panicRoom struct{}

func (panicRoom) Enter(*models.GameState) []string { return []string{"=== BROKEN ==="} }
func (panicRoom) HandleInput(string, *models.GameState) engine.Result {
	panic("room exploded")
}
func (panicRoom) Commands() []string { return nil }

func newModel(t *testing.T, o Asker) model {
	t.Helper()
	reg := engine.NewRegistry()
	rooms.Register(reg, nil)
	return NewModel(Options{
		Engine: engine.New(reg, engine.WithStartRoom(rooms.StartRoom)),
		Store:  store.NewYAML(t.TempDir()),
		Oracle: o,
	})
}

func contains(lines []string, want string) bool {
	return slices.ContainsFunc(lines, func(l string) bool { return strings.Contains(l, want) })
}

func TestTerminalMode(t *testing.T) {
	m := newModel(t, nil)

	out, _ := m.submit("help")
	if !contains(out, "start  - enter game mode") {
		t.Errorf("Expected terminal help, got %v", out)
	}
	out, _ = m.submit("look")
	if !contains(out, "Unknown command: look") {
		t.Errorf("Expected unknown command, got %v", out)
	}
	if _, cmd := m.submit("exit"); cmd == nil {
		t.Errorf("Expected quit command from exit")
	}

	out, _ = m.submit("start")
	if m.state != statePlaying {
		t.Fatalf("Expected playing state, got %v", m.state)
	}
	if !contains(out, "=== GAME MODE ACTIVATED ===") {
		t.Errorf("Expected game mode banner, got %v", out)
	}
}

func TestStopKeepsState(t *testing.T) {
	m := newModel(t, nil)
	m.submit("start")
	m.submit("set name Nyx")

	out, _ := m.submit("stop")
	if m.state != stateTerminal || !contains(out, "GAME MODE DEACTIVATED") {
		t.Fatalf("Expected terminal mode after stop, got %v", out)
	}
	m.submit("start")
	if got := m.opts.Engine.State().PlayerName; got != "Nyx" {
		t.Errorf("Expected handle Nyx after resume, got %q", got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	m := newModel(t, nil)
	m.submit("start")
	m.submit("set name Nyx")

	out, _ := m.submit("/save slot1")
	if !contains(out, "State saved to slot 'slot1'") {
		t.Fatalf("Expected save confirmation, got %v", out)
	}
	m.submit("beacon")
	if got := m.opts.Engine.State().CurrentRoomID; got != "beacon_1" {
		t.Fatalf("Expected beacon_1, got %s", got)
	}

	out, _ = m.submit("/load slot1")
	if !contains(out, "State restored from slot 'slot1'") {
		t.Errorf("Expected restore confirmation, got %v", out)
	}
	if got := m.opts.Engine.State().CurrentRoomID; got != rooms.StartRoom {
		t.Errorf("Expected %s after load, got %s", rooms.StartRoom, got)
	}

	out, _ = m.submit("/saves")
	if !contains(out, "slot1") {
		t.Errorf("Expected slot1 listed, got %v", out)
	}
	out, _ = m.submit("/load nothing")
	if !contains(out, "No save in slot 'nothing'") {
		t.Errorf("Expected missing slot message, got %v", out)
	}
	out, _ = m.submit("/save ../bad")
	if !contains(out, "Save failed") {
		t.Errorf("Expected save failure for bad slot, got %v", out)
	}
}

func TestAsk(t *testing.T) {
	m := newModel(t, nil)
	m.submit("start")
	out, _ := m.submit("/ask where am i")
	if !contains(out, "oracle is silent") {
		t.Errorf("Expected silent oracle, got %v", out)
	}

	o := &stubOracle{}
	m = newModel(t, o)
	m.submit("start")
	out, cmd := m.submit("/ask what now?")
	if cmd == nil || m.state != stateAsking {
		t.Fatalf("Expected asking state with command, got %v", out)
	}
	msg := cmd()
	next, _ := m.Update(msg)
	m = next.(model)

	if m.state != statePlaying {
		t.Errorf("Expected playing state after answer, got %v", m.state)
	}
	if o.got.Question != "what now?" {
		t.Errorf("Expected question 'what now?', got %q", o.got.Question)
	}
	if o.got.Room != "Boot Sector" {
		t.Errorf("Expected room Boot Sector, got %q", o.got.Room)
	}
	if !strings.Contains(m.gameLog, "Seek the spires.") {
		t.Errorf("Expected oracle answer in log")
	}
}

func TestSubmitRecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	reg := engine.NewRegistry()
	reg.Register("boot", func() engine.Room { return panicRoom{} })
	m := NewModel(Options{
		Engine: engine.New(reg),
		Logger: log.New(&buf, "", 0),
	})
	m.submit("start")

	out, _ := m.submit("poke")
	if !contains(out, ">> Command failed: internal error.") {
		t.Errorf("Expected failure line, got %v", out)
	}
	if !strings.Contains(buf.String(), "room exploded") {
		t.Errorf("Expected panic logged, got %q", buf.String())
	}
	if m.state != statePlaying {
		t.Errorf("Expected session to keep running")
	}
}
