package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/tatianab/basilisk/internal/models"
)

// SequenceConfig is the ordered answer of a sequence puzzle. Intervals and
// Tolerance are only consulted by timed sequences.
type SequenceConfig struct {
	Correct   []string
	Intervals []float64
	Tolerance float64
}

type SequenceState struct {
	Items          []string `yaml:"items" json:"items"`
	LastActionTime float64  `yaml:"last_action_time" json:"last_action_time"`
}

type SequenceStatus int

const (
	SequenceProgress SequenceStatus = iota
	SequenceComplete
	SequenceMismatch
	SequenceFullMismatch
	SequenceMistimed
)

type SequenceOutcome struct {
	Status    SequenceStatus
	Remaining int
	// Set when Status is SequenceMistimed.
	ExpectedInterval float64
	ActualInterval   float64
}

func (o SequenceOutcome) Lines() []string {
	switch o.Status {
	case SequenceProgress:
		return []string{fmt.Sprintf(">> Correct so far. %d more needed.", o.Remaining)}
	case SequenceComplete:
		return []string{">> Sequence complete!"}
	case SequenceFullMismatch:
		return []string{">> Full sequence incorrect. Resetting..."}
	case SequenceMistimed:
		return []string{
			fmt.Sprintf(">> Timing incorrect. Expected %gs, got %.1fs", o.ExpectedInterval, o.ActualInterval),
			">> Sequence reset.",
		}
	default:
		return []string{">> Sequence incorrect. Resetting..."}
	}
}

// SequencePuzzle accumulates candidate items and checks them against the
// prefix of the correct sequence. A mismatch discards the whole candidate.
type SequencePuzzle struct {
	Config   SequenceConfig
	StateKey string
}

// NewTimedSequence returns a sequence puzzle that also enforces the gaps
// between items.
func NewTimedSequence(stateKey string, correct []string, intervals []float64, tolerance float64) *SequencePuzzle {
	return &SequencePuzzle{
		Config:   SequenceConfig{Correct: correct, Intervals: intervals, Tolerance: tolerance},
		StateKey: stateKey,
	}
}

func (p *SequencePuzzle) State(gs *models.GameState) SequenceState {
	st, ok := models.Var[SequenceState](gs, p.StateKey)
	if !ok {
		return SequenceState{}
	}
	return st
}

func (p *SequencePuzzle) Reset(gs *models.GameState) {
	gs.Delete(p.StateKey)
}

// Add appends item at time at.
func (p *SequencePuzzle) Add(gs *models.GameState, item string, at time.Time) SequenceOutcome {
	st := p.State(gs)
	now := seconds(at)

	if n := len(st.Items); n > 0 && len(p.Config.Intervals) > 0 && n-1 < len(p.Config.Intervals) {
		expected := p.Config.Intervals[n-1]
		actual := now - st.LastActionTime
		if math.Abs(actual-expected) > p.Config.Tolerance {
			p.Reset(gs)
			return SequenceOutcome{Status: SequenceMistimed, ExpectedInterval: expected, ActualInterval: actual}
		}
	}

	st.Items = append(st.Items, item)
	st.LastActionTime = now

	if !p.matchesPrefix(st.Items) {
		p.Reset(gs)
		if len(st.Items) == len(p.Config.Correct) {
			return SequenceOutcome{Status: SequenceFullMismatch}
		}
		return SequenceOutcome{Status: SequenceMismatch}
	}
	if len(st.Items) == len(p.Config.Correct) {
		p.Reset(gs)
		return SequenceOutcome{Status: SequenceComplete}
	}

	models.SetVar(gs, p.StateKey, st)
	return SequenceOutcome{Status: SequenceProgress, Remaining: len(p.Config.Correct) - len(st.Items)}
}

func (p *SequencePuzzle) matchesPrefix(items []string) bool {
	if len(items) > len(p.Config.Correct) {
		return false
	}
	for i, it := range items {
		if it != p.Config.Correct[i] {
			return false
		}
	}
	return true
}
