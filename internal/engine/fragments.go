package engine

import (
	"fmt"

	"github.com/tatianab/basilisk/internal/models"
)

type Fragment struct {
	ID          string
	Name        string
	Description string
}

// FragmentCollection tracks collected fragments as flags named
// "<namespace>_<id>_collected".
type FragmentCollection struct {
	Namespace string
	Fragments []Fragment
	// Required is the count that completes the collection; zero means all.
	Required   int
	OnComplete func(gs *models.GameState) []string
}

func (c *FragmentCollection) flag(id string) string {
	return fmt.Sprintf("%s_%s_collected", c.Namespace, id)
}

func (c *FragmentCollection) required() int {
	if c.Required <= 0 || c.Required > len(c.Fragments) {
		return len(c.Fragments)
	}
	return c.Required
}

func (c *FragmentCollection) Fragment(id string) (Fragment, bool) {
	for _, f := range c.Fragments {
		if f.ID == id {
			return f, true
		}
	}
	return Fragment{}, false
}

func (c *FragmentCollection) Collected(gs *models.GameState, id string) bool {
	return gs.GetFlag(c.flag(id))
}

func (c *FragmentCollection) Count(gs *models.GameState) int {
	n := 0
	for _, f := range c.Fragments {
		if gs.GetFlag(c.flag(f.ID)) {
			n++
		}
	}
	return n
}

func (c *FragmentCollection) Complete(gs *models.GameState) bool {
	return c.Count(gs) >= c.required()
}

// Collect marks id as collected. Collecting twice is a reported no-op, and
// OnComplete runs only on the collect that reaches the threshold.
func (c *FragmentCollection) Collect(gs *models.GameState, id string) []string {
	f, ok := c.Fragment(id)
	if !ok {
		return []string{">> Unknown fragment."}
	}
	if c.Collected(gs, id) {
		return []string{">> Fragment already collected."}
	}

	before := c.Count(gs)
	gs.SetFlag(c.flag(id), true)
	lines := []string{fmt.Sprintf(">> Fragment collected: %s", f.Name)}
	if f.Description != "" {
		lines = append(lines, ">> "+f.Description)
	}

	need := c.required()
	if before+1 >= need {
		lines = append(lines, ">> All required fragments collected!")
		if before < need && c.OnComplete != nil {
			lines = append(lines, c.OnComplete(gs)...)
		}
		return lines
	}
	return append(lines, fmt.Sprintf(">> Progress: %d/%d", before+1, need))
}

// Reset clears every fragment flag.
func (c *FragmentCollection) Reset(gs *models.GameState) {
	for _, f := range c.Fragments {
		gs.ClearFlag(c.flag(f.ID))
	}
}
