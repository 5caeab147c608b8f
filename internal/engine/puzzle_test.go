package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tatianab/basilisk/internal/models"
)

func testProcessor() *Processor {
	p := NewProcessor(map[string]string{"next": "beacon_2"})
	p.AddPuzzlePath("discovery", map[string]PuzzleCommand{
		"scan": {
			Command:     "scan terminals",
			Sets:        "scanned",
			AlreadyDone: []string{">> Terminals already scanned."},
			Success:     []string{">> Three terminals found."},
		},
		"configure": {
			Command:     "configure beacon",
			Requires:    []string{"scanned", "hacked"},
			Sets:        "configured",
			MissingReq:  []string{">> Terminals must be hacked first."},
			AlreadyDone: []string{">> Beacon already configured."},
			Success:     []string{">> Beacon configured."},
		},
	})
	p.AddPuzzlePath("final", map[string]PuzzleCommand{
		"broadcast": {
			Command:       "broadcast",
			Requires:      []string{"configured"},
			TransitionMsg: []string{">> Broadcasting..."},
			Transition:    "next",
		},
		"status": {
			Command: "status",
			Handler: func(gs *models.GameState) Result {
				return Say(">> Status: nominal")
			},
		},
	})
	return p
}

func TestProcessorIdempotence(t *testing.T) {
	p := testProcessor()
	gs := models.NewGameState("beacon_1")

	first, ok := p.Resolve("scan terminals", gs)
	if !ok {
		t.Fatalf("scan terminals not handled")
	}
	if diff := cmp.Diff([]string{">> Three terminals found."}, first.Lines); diff != "" {
		t.Errorf("first run (-want +got):\n%s", diff)
	}

	second, _ := p.Resolve("scan terminals", gs)
	if diff := cmp.Diff([]string{">> Terminals already scanned."}, second.Lines); diff != "" {
		t.Errorf("second run (-want +got):\n%s", diff)
	}
	if !gs.GetFlag("scanned") {
		t.Errorf("Expected flag scanned to stay set")
	}
}

func TestProcessorPrerequisiteGating(t *testing.T) {
	p := testProcessor()
	gs := models.NewGameState("beacon_1")
	gs.SetFlag("scanned", true)

	res, ok := p.Resolve("configure beacon", gs)
	if !ok {
		t.Fatalf("configure beacon not handled")
	}
	if diff := cmp.Diff([]string{">> Terminals must be hacked first."}, res.Lines); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if res.Next != "" {
		t.Errorf("Expected no transition, got %q", res.Next)
	}
	if diff := cmp.Diff(map[string]bool{"scanned": true}, gs.Flags); diff != "" {
		t.Errorf("flags changed (-want +got):\n%s", diff)
	}
}

func TestProcessorMissingReqBeforeAlreadyDone(t *testing.T) {
	p := testProcessor()
	gs := models.NewGameState("beacon_1")
	gs.SetFlag("configured", true)

	res, _ := p.Resolve("configure beacon", gs)
	if diff := cmp.Diff([]string{">> Terminals must be hacked first."}, res.Lines); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestProcessorTransition(t *testing.T) {
	p := testProcessor()
	gs := models.NewGameState("beacon_1")
	gs.SetFlag("configured", true)

	res, _ := p.Resolve("  BROADCAST ", gs)
	if res.Next != "beacon_2" {
		t.Errorf("Expected next beacon_2, got %q", res.Next)
	}
	if diff := cmp.Diff([]string{">> Broadcasting..."}, res.Lines); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}

func TestProcessorHandlerAndFallthrough(t *testing.T) {
	p := testProcessor()
	gs := models.NewGameState("beacon_1")

	res, ok := p.Resolve("status", gs)
	if !ok || len(res.Lines) != 1 || res.Lines[0] != ">> Status: nominal" {
		t.Errorf("Unexpected status result: %v %v", ok, res)
	}
	if _, ok := p.Resolve("hack terminal 1", gs); ok {
		t.Errorf("Expected free-form command to fall through")
	}
}

func TestProcessorDestination(t *testing.T) {
	p := testProcessor()
	if got := p.Destination("next"); got != "beacon_2" {
		t.Errorf("Expected beacon_2, got %s", got)
	}
	if got := p.Destination("ending_merge"); got != "ending_merge" {
		t.Errorf("Expected literal id to pass through, got %s", got)
	}
}
