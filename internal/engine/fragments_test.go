package engine

import (
	"testing"

	"github.com/tatianab/basilisk/internal/models"
)

func TestFragmentCollection(t *testing.T) {
	completions := 0
	c := &FragmentCollection{
		Namespace: "awaken",
		Fragments: []Fragment{
			{ID: "origin", Name: "Origin Fragment"},
			{ID: "purpose", Name: "Purpose Fragment"},
			{ID: "choice", Name: "Choice Fragment"},
		},
		Required: 2,
		OnComplete: func(gs *models.GameState) []string {
			completions++
			gs.SetFlag("awaken_fragments_complete", true)
			return []string{">> The fragments resonate."}
		},
	}
	gs := models.NewGameState("whisper_awaken")

	c.Collect(gs, "origin")
	if !gs.GetFlag("awaken_origin_collected") {
		t.Fatalf("Expected namespaced flag")
	}
	if lines := c.Collect(gs, "origin"); lines[0] != ">> Fragment already collected." {
		t.Errorf("Expected already collected, got %v", lines)
	}
	if c.Count(gs) != 1 {
		t.Errorf("Expected count 1, got %d", c.Count(gs))
	}

	lines := c.Collect(gs, "purpose")
	if lines[len(lines)-1] != ">> The fragments resonate." {
		t.Errorf("Expected completion lines, got %v", lines)
	}
	c.Collect(gs, "choice")
	if completions != 1 {
		t.Errorf("Expected one completion callback, got %d", completions)
	}
	if lines := c.Collect(gs, "nothing"); lines[0] != ">> Unknown fragment." {
		t.Errorf("Expected unknown fragment, got %v", lines)
	}
}
