package engine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tatianab/basilisk/internal/models"
)

func testRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("start", func() Room {
		r := NewBaseRoom(RoomConfig{
			Name:         "Start",
			EntryText:    []string{"A bare room."},
			Destinations: map[string]string{"next": "second", "void": "nowhere"},
			Owns:         []string{"start_"},
		})
		r.Processor.AddPuzzlePath("main", map[string]PuzzleCommand{
			"go": {
				Command:       "go forward",
				Sets:          "start_done",
				Success:       []string{">> You step forward."},
				Transition:    "next",
				TransitionMsg: []string{">> Moving on..."},
			},
			"void": {Command: "enter void", Transition: "void"},
		})
		r.Hint = func(gs *models.GameState) []string {
			return []string{">> Try 'go forward'."}
		}
		r.Specific = func(cmd Command, gs *models.GameState) (Result, bool) {
			if cmd.HasPrefix("shout") {
				return Say(">> You shout " + cmd.Rest(1) + "."), true
			}
			return Result{}, false
		}
		return r
	})
	reg.Register("second", func() Room {
		r := NewBaseRoom(RoomConfig{Name: "Second", EntryText: []string{"The second room."}})
		r.Hint = func(gs *models.GameState) []string {
			return []string{">> You made it."}
		}
		return r
	})
	return reg
}

func TestTransitionOrdering(t *testing.T) {
	e := New(testRegistry(), WithStartRoom("start"))
	e.EnterGameMode()

	got := e.ProcessGameCommand("go forward")
	want := []string{
		">> You step forward.",
		">> Moving on...",
		"=== SECOND ===",
		"The second room.",
		"",
		">> You made it.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if e.State().CurrentRoomID != "second" {
		t.Errorf("Expected room second, got %s", e.State().CurrentRoomID)
	}
}

func TestTransitionToUnknownRoom(t *testing.T) {
	e := New(testRegistry(), WithStartRoom("start"))
	e.EnterGameMode()

	got := e.ProcessGameCommand("enter void")
	want := []string{">> Transitioning to nowhere...", ">> Error: Room 'nowhere' not found!"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if e.State().CurrentRoomID != "start" {
		t.Errorf("Expected to stay in start, got %s", e.State().CurrentRoomID)
	}
}

func TestDebugJumpUnknownRoom(t *testing.T) {
	e := New(testRegistry(), WithStartRoom("start"), WithDebug(true))
	e.EnterGameMode()

	got := e.ProcessGameCommand("boot.debug jump nonexistent_room")
	if diff := cmp.Diff([]string{">> DEBUG: Room 'nonexistent_room' not found."}, got); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if e.State().CurrentRoomID != "start" {
		t.Errorf("Expected current room unchanged, got %s", e.State().CurrentRoomID)
	}

	got = e.ProcessGameCommand("boot.debug jump second")
	if got[0] != ">> DEBUG: Jumping to second..." || got[1] != "=== SECOND ===" {
		t.Errorf("Unexpected jump output: %v", got)
	}
	if !e.State().DebugMode {
		t.Errorf("Expected debug mode on")
	}
}

func TestDebugDisabled(t *testing.T) {
	e := New(testRegistry(), WithStartRoom("start"))
	e.EnterGameMode()

	got := e.ProcessGameCommand("boot.debug jump second")
	if got[0] != unknownCommand {
		t.Errorf("Expected unknown command, got %v", got)
	}
	if e.State().CurrentRoomID != "start" || e.State().DebugMode {
		t.Errorf("Expected state untouched, got %+v", e.State())
	}
}

func TestDebugList(t *testing.T) {
	e := New(testRegistry(), WithStartRoom("start"), WithDebug(true))
	got := e.ProcessGameCommand("boot.debug list")
	if got[0] != ">> DEBUG: 2 rooms registered:" {
		t.Errorf("Unexpected header: %q", got[0])
	}
	joined := strings.Join(got, "\n")
	for _, want := range []string{"start", "Second"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected %q in listing:\n%s", want, joined)
		}
	}
}

func TestGameModeToggleKeepsState(t *testing.T) {
	e := New(testRegistry(), WithStartRoom("start"))
	e.EnterGameMode()
	e.ProcessGameCommand("go forward")
	e.ExitGameMode()
	if e.InGameMode() {
		t.Errorf("Expected game mode off")
	}
	lines := e.EnterGameMode()
	if lines[4] != "=== SECOND ===" {
		t.Errorf("Expected to resume in second, got %v", lines)
	}
	if !e.State().GetFlag("start_done") {
		t.Errorf("Expected flags to survive mode toggle")
	}
}

func TestRestart(t *testing.T) {
	e := New(testRegistry(), WithStartRoom("start"))
	e.EnterGameMode()
	gs := e.State()
	gs.SetFlag("start_lever", true)
	gs.SetFlag("beacon_done", true)

	lines := e.ProcessGameCommand("restart room")
	if lines[1] != "Cleared 1 room-specific flag." {
		t.Errorf("Unexpected restart output: %v", lines)
	}
	if gs.GetFlag("start_lever") || !gs.GetFlag("beacon_done") {
		t.Errorf("Expected only room flags cleared, got %v", gs.Flags)
	}

	if lines := e.ProcessGameCommand("restart confirm"); lines[0] != ">> No reset pending. Type 'restart game' first." {
		t.Errorf("Expected confirm to need arming, got %v", lines)
	}

	e.ProcessGameCommand("restart game")
	e.ProcessGameCommand("look")
	if lines := e.ProcessGameCommand("restart confirm"); !strings.HasPrefix(lines[0], ">> No reset pending") {
		t.Errorf("Expected another command to disarm, got %v", lines)
	}

	e.ProcessGameCommand("restart game")
	lines = e.ProcessGameCommand("restart confirm")
	if lines[0] != "=== GAME RESET COMPLETE ===" {
		t.Errorf("Unexpected reset output: %v", lines)
	}
	if len(e.State().Flags) != 0 || e.State().CurrentRoomID != "start" {
		t.Errorf("Expected fresh state, got %+v", e.State())
	}
}

func TestSnapshotRestore(t *testing.T) {
	e := New(testRegistry(), WithStartRoom("start"))
	e.EnterGameMode()
	e.ProcessGameCommand("go forward")

	snap, err := e.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	e.State().SetFlag("later", true)

	lines := e.Restore(snap)
	if lines[0] != "=== SECOND ===" {
		t.Errorf("Expected to re-enter second, got %v", lines)
	}
	if e.State().GetFlag("later") {
		t.Errorf("Expected snapshot to be independent of later writes")
	}

	lost := models.NewGameState("deleted_room")
	e.Restore(lost)
	if e.State().CurrentRoomID != "start" {
		t.Errorf("Expected fallback to start, got %s", e.State().CurrentRoomID)
	}
}
