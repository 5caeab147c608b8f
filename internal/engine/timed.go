package engine

import (
	"math"
	"time"

	"github.com/tatianab/basilisk/internal/models"
)

// Clock supplies the timestamps sampled when a timed action arrives.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// TimingConfig is the expected action sequence. Intervals[i] is the wait
// in seconds between Sequence[i] and Sequence[i+1].
type TimingConfig struct {
	Sequence  []string
	Intervals []float64
	Tolerance float64
}

// TimingState is the progress record kept in the game state variables.
type TimingState struct {
	Active            bool     `yaml:"active" json:"active"`
	CurrentStep       int      `yaml:"current_step" json:"current_step"`
	LastActionTime    float64  `yaml:"last_action_time" json:"last_action_time"`
	ActionsTaken      []string `yaml:"actions_taken" json:"actions_taken"`
	SequenceStartTime float64  `yaml:"sequence_start_time" json:"sequence_start_time"`
}

type TimingStatus int

const (
	TimingAccepted TimingStatus = iota
	TimingComplete
	TimingOutOfSequence
	TimingMistimed
	TimingAlreadyComplete
)

// TimingOutcome reports what happened to one action.
type TimingOutcome struct {
	Status   TimingStatus
	Action   string
	Expected string
	// Set when Status is TimingMistimed.
	ExpectedInterval float64
	ActualInterval   float64
	// Set when Status is TimingAccepted.
	Next         string
	NextInterval float64
}

// TimedPuzzle validates a rhythm of discrete actions against wall-clock
// timestamps. Any failure returns the puzzle to idle.
type TimedPuzzle struct {
	Config         TimingConfig
	StateKey       string
	CompletionFlag string
}

// State returns the stored progress, or the idle state.
func (p *TimedPuzzle) State(gs *models.GameState) TimingState {
	st, ok := models.Var[TimingState](gs, p.StateKey)
	if !ok {
		return TimingState{}
	}
	return st
}

func (p *TimedPuzzle) Reset(gs *models.GameState) {
	gs.Delete(p.StateKey)
}

// Accept feeds action, sampled at at, into the state machine.
func (p *TimedPuzzle) Accept(gs *models.GameState, action string, at time.Time) TimingOutcome {
	out := TimingOutcome{Action: action}
	if p.CompletionFlag != "" && gs.GetFlag(p.CompletionFlag) {
		out.Status = TimingAlreadyComplete
		return out
	}
	if len(p.Config.Sequence) == 0 {
		out.Status = TimingOutOfSequence
		return out
	}

	st := p.State(gs)
	if st.CurrentStep >= len(p.Config.Sequence) {
		st = TimingState{}
	}
	now := seconds(at)

	out.Expected = p.Config.Sequence[st.CurrentStep]
	if action != out.Expected {
		p.Reset(gs)
		out.Status = TimingOutOfSequence
		return out
	}

	if st.CurrentStep > 0 && st.CurrentStep-1 < len(p.Config.Intervals) {
		expected := p.Config.Intervals[st.CurrentStep-1]
		actual := now - st.LastActionTime
		if math.Abs(actual-expected) > p.Config.Tolerance {
			p.Reset(gs)
			out.Status = TimingMistimed
			out.ExpectedInterval = expected
			out.ActualInterval = actual
			return out
		}
	}

	if st.CurrentStep == 0 {
		st.SequenceStartTime = now
	}
	st.Active = true
	st.ActionsTaken = append(st.ActionsTaken, action)
	st.LastActionTime = now
	st.CurrentStep++

	if st.CurrentStep == len(p.Config.Sequence) {
		if p.CompletionFlag != "" {
			gs.SetFlag(p.CompletionFlag, true)
		}
		p.Reset(gs)
		out.Status = TimingComplete
		return out
	}

	models.SetVar(gs, p.StateKey, st)
	out.Status = TimingAccepted
	out.Next = p.Config.Sequence[st.CurrentStep]
	if st.CurrentStep-1 < len(p.Config.Intervals) {
		out.NextInterval = p.Config.Intervals[st.CurrentStep-1]
	}
	return out
}
