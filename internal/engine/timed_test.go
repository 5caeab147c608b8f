package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tatianab/basilisk/internal/models"
)

func after(base time.Time, secs float64) time.Time {
	return base.Add(time.Duration(secs * float64(time.Second)))
}

func pulsePuzzle() *TimedPuzzle {
	return &TimedPuzzle{
		Config: TimingConfig{
			Sequence:  []string{"1", "3", "2"},
			Intervals: []float64{5.0, 4.5},
			Tolerance: 0.8,
		},
		StateKey:       "test_sequence_state",
		CompletionFlag: "test_sequence_complete",
	}
}

func TestTimedPuzzleResetOnMistimedAction(t *testing.T) {
	p := pulsePuzzle()
	gs := models.NewGameState("beacon_2")
	t0 := time.Unix(1_700_000_000, 0)

	if out := p.Accept(gs, "1", t0); out.Status != TimingAccepted {
		t.Fatalf("Expected first pulse accepted, got %v", out.Status)
	}
	out := p.Accept(gs, "3", after(t0, 6.0))
	if out.Status != TimingMistimed {
		t.Fatalf("Expected mistimed, got %v", out.Status)
	}
	if out.ExpectedInterval != 5.0 {
		t.Errorf("Expected interval 5.0, got %v", out.ExpectedInterval)
	}
	st := p.State(gs)
	if st.CurrentStep != 0 || len(st.ActionsTaken) != 0 || st.Active {
		t.Errorf("Expected idle state after reset, got %+v", st)
	}
}

func TestTimedPuzzleAdvanceWithinTolerance(t *testing.T) {
	p := pulsePuzzle()
	gs := models.NewGameState("beacon_2")
	t0 := time.Unix(1_700_000_000, 0)

	p.Accept(gs, "1", t0)
	out := p.Accept(gs, "3", after(t0, 4.7))
	if out.Status != TimingAccepted {
		t.Fatalf("Expected accepted, got %v", out.Status)
	}
	if out.Next != "2" || out.NextInterval != 4.5 {
		t.Errorf("Expected next 2 in 4.5s, got %s in %v", out.Next, out.NextInterval)
	}
	st := p.State(gs)
	if st.CurrentStep != 2 {
		t.Errorf("Expected step 2, got %d", st.CurrentStep)
	}
	if diff := cmp.Diff([]string{"1", "3"}, st.ActionsTaken); diff != "" {
		t.Errorf("actions (-want +got):\n%s", diff)
	}

	out = p.Accept(gs, "2", after(t0, 4.7+4.5))
	if out.Status != TimingComplete {
		t.Fatalf("Expected complete, got %v", out.Status)
	}
	if !gs.GetFlag("test_sequence_complete") {
		t.Errorf("Expected completion flag")
	}
	if _, ok := gs.Variables["test_sequence_state"]; ok {
		t.Errorf("Expected timing state cleared on completion")
	}
	if out := p.Accept(gs, "1", after(t0, 20)); out.Status != TimingAlreadyComplete {
		t.Errorf("Expected already complete, got %v", out.Status)
	}
}

func TestTimedPuzzleOutOfSequence(t *testing.T) {
	p := pulsePuzzle()
	gs := models.NewGameState("beacon_2")
	t0 := time.Unix(1_700_000_000, 0)

	p.Accept(gs, "1", t0)
	out := p.Accept(gs, "2", after(t0, 5))
	if out.Status != TimingOutOfSequence || out.Expected != "3" {
		t.Errorf("Expected out of sequence wanting 3, got %+v", out)
	}
	if st := p.State(gs); st.CurrentStep != 0 {
		t.Errorf("Expected reset, got step %d", st.CurrentStep)
	}
}

func TestTimedPuzzleSurvivesSaveRoundTrip(t *testing.T) {
	p := pulsePuzzle()
	gs := models.NewGameState("beacon_2")
	t0 := time.Unix(1_700_000_000, 0)
	p.Accept(gs, "1", t0)

	restored, err := gs.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	if out := p.Accept(restored, "3", after(t0, 5.2)); out.Status != TimingAccepted {
		t.Errorf("Expected accepted after round trip, got %v", out.Status)
	}
}
