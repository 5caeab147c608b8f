package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tatianab/basilisk/internal/models"
)

func startRoom(t *testing.T) Room {
	t.Helper()
	room, err := testRegistry().Open("start")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return room
}

func TestBaseRoomEnter(t *testing.T) {
	got := startRoom(t).Enter(models.NewGameState("start"))
	want := []string{"=== START ===", "A bare room.", "", ">> Try 'go forward'."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("enter (-want +got):\n%s", diff)
	}
}

func TestBaseRoomUniversalCommands(t *testing.T) {
	room := startRoom(t)
	gs := models.NewGameState("start")

	if got := room.HandleInput("inventory", gs).Lines; got[0] != "Inventory is empty." {
		t.Errorf("Unexpected inventory output: %v", got)
	}
	gs.AddItem("keycard")
	gs.AddItem("keycard")
	if got := room.HandleInput("i", gs).Lines; got[0] != "Inventory: keycard, keycard" {
		t.Errorf("Unexpected inventory output: %v", got)
	}

	help := room.HandleInput("HELP", gs).Lines
	if help[0] != ">> Universal commands:" {
		t.Errorf("Unexpected help header: %v", help)
	}
	wantTail := []string{"", ">> Room-specific commands:", "  go forward", "  enter void"}
	if diff := cmp.Diff(wantTail, help[len(help)-4:]); diff != "" {
		t.Errorf("help tail (-want +got):\n%s", diff)
	}

	if got := room.HandleInput("flags", gs).Lines; got[0] != unknownCommand {
		t.Errorf("Expected flags hidden outside debug mode, got %v", got)
	}
	gs.DebugMode = true
	gs.SetFlag("start_done", true)
	if got := room.HandleInput("flags", gs).Lines; got[0] != "   start_done: true" {
		t.Errorf("Unexpected flags output: %v", got)
	}
}

func TestBaseRoomSpecificAndUnknown(t *testing.T) {
	room := startRoom(t)
	gs := models.NewGameState("start")

	if got := room.HandleInput("shout 'hello there'", gs).Lines; got[0] != ">> You shout hello there." {
		t.Errorf("Unexpected specific output: %v", got)
	}

	got := room.HandleInput("go forwrd", gs).Lines
	want := []string{unknownCommand, ">> Did you mean 'go forward'?"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unknown (-want +got):\n%s", diff)
	}

	if got := room.HandleInput("xyzzy", gs).Lines; len(got) != 1 {
		t.Errorf("Expected no suggestion for xyzzy, got %v", got)
	}
}

func TestRoomsAreStateless(t *testing.T) {
	reg := testRegistry()
	gs1 := models.NewGameState("start")
	gs2 := models.NewGameState("start")

	a, _ := reg.Open("start")
	b, _ := reg.Open("start")
	r1 := a.HandleInput("go forward", gs1)
	r2 := b.HandleInput("go forward", gs2)
	if diff := cmp.Diff(r1, r2); diff != "" {
		t.Errorf("results differ (-a +b):\n%s", diff)
	}
	if r1.Next != "second" {
		t.Errorf("Expected resolved destination second, got %q", r1.Next)
	}
}

func TestSuggest(t *testing.T) {
	cands := []string{"scan terminals", "broadcast", "look"}
	if s, ok := Suggest("braodcast", cands); !ok || s != "broadcast" {
		t.Errorf("Expected broadcast, got %q %v", s, ok)
	}
	if s, ok := Suggest("lok", cands); !ok || s != "look" {
		t.Errorf("Expected look, got %q %v", s, ok)
	}
	if _, ok := Suggest("teleport", cands); ok {
		t.Errorf("Expected no suggestion")
	}
}
