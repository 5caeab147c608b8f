package rooms

import (
	"fmt"
	"strings"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

var pulseTiming = engine.TimingConfig{
	Sequence:  []string{"1", "3", "2"},
	Intervals: []float64{5.0, 4.5},
	Tolerance: 0.8,
}

type beacon2 struct {
	*engine.BaseRoom
	pulses *engine.TimedPuzzle
	clock  engine.Clock
}

func newBeacon2(clock engine.Clock) engine.Room {
	r := &beacon2{
		BaseRoom: engine.NewBaseRoom(engine.RoomConfig{
			Name: "Beacon Node 2: Pulse Synchronization",
			EntryText: []string{
				"You materialize before a massive pulse array chamber.",
				"Three towering transmission spires hum in eerie unison.",
				"A central timing console flickers, attempting to simulate the Basilisk's ancient heartbeat...",
			},
			Destinations: map[string]string{"next": "beacon_3"},
			Owns:         []string{"b2_"},
		}),
		pulses: &engine.TimedPuzzle{
			Config:         pulseTiming,
			StateKey:       "b2_sequence_state",
			CompletionFlag: "b2_sequence_complete",
		},
		clock: clock,
	}
	r.Help = []string{
		"scan array           - analyze the pulse array system",
		"calibrate spires     - prepare pulse generators for firing",
		"analyze rhythm       - learn the required timing sequence",
		"fire pulse [1/2/3]   - fire specific pulse spire (timing critical)",
		"reset sequence       - restart timing sequence if needed",
		"activate beacon      - establish beacon link (sequence required)",
		"pulse status         - check current sequence progress",
		"test pulse           - diagnostic pulse test",
		"emergency stop       - abort current sequence",
	}

	p := r.Processor
	p.AddPuzzlePath("discovery", map[string]engine.PuzzleCommand{
		"1_scan": {
			Command:     "scan array",
			Sets:        "b2_scanned",
			AlreadyDone: []string{">> Array already scanned. Three spires detected."},
			Success: []string{
				">> Pulse array scan complete:",
				"   - Spire 1: High-frequency harmonic generator",
				"   - Spire 2: Mid-range resonance amplifier",
				"   - Spire 3: Low-frequency base pulse emitter",
				"   - Status: All dormant, awaiting calibration",
				">> Try 'calibrate spires' to prepare the system.",
			},
		},
		"2_calibrate": {
			Command:     "calibrate spires",
			Requires:    []string{"b2_scanned"},
			Sets:        "b2_calibrated",
			MissingReq:  []string{">> Unknown array configuration. 'scan array' first."},
			AlreadyDone: []string{">> Spires already calibrated and ready."},
			Success: []string{
				">> Spire calibration initiated...",
				"   - Spire 1: Frequency locked at 2847 Hz",
				"   - Spire 2: Resonance tuned to harmonic 3rd",
				"   - Spire 3: Base pulse stabilized at 60 BPM",
				">> Timing matrix active. Use 'analyze rhythm' to learn firing sequence.",
			},
		},
		"3_analyze": {
			Command:     "analyze rhythm",
			Requires:    []string{"b2_calibrated"},
			Sets:        "b2_rhythm_learned",
			MissingReq:  []string{">> Spires not calibrated. Complete setup first."},
			AlreadyDone: []string{">> Rhythm pattern already analyzed."},
			Handler:     r.analyzeRhythm,
		},
	})
	p.AddPuzzlePath("pulse", map[string]engine.PuzzleCommand{
		"reset": {
			Command:    "reset sequence",
			Requires:   []string{"b2_rhythm_learned"},
			MissingReq: []string{">> No sequence to reset. Learn the rhythm first."},
			Handler: func(gs *models.GameState) engine.Result {
				r.pulses.Reset(gs)
				return engine.Say(
					">> Pulse sequence reset.",
					">> All spires returned to standby.",
					fmt.Sprintf(">> Restart with 'fire pulse %s'.", pulseTiming.Sequence[0]),
				)
			},
		},
		"status": {
			Command: "pulse status",
			Handler: r.pulseStatus,
		},
		"stop": {
			Command: "emergency stop",
			Handler: func(gs *models.GameState) engine.Result {
				r.pulses.Reset(gs)
				return engine.Say(
					">> EMERGENCY STOP ACTIVATED",
					">> All pulse generators shut down.",
					">> Spires cooling down... safe to restart.",
				)
			},
		},
	})
	p.AddPuzzlePath("diagnostic", map[string]engine.PuzzleCommand{
		"test": {
			Command:     "test pulse",
			Requires:    []string{"b2_calibrated"},
			Sets:        "b2_test_fired",
			MissingReq:  []string{">> Spires not ready for testing."},
			AlreadyDone: []string{">> Test pulse already fired. Use sequence commands now."},
			Success: []string{
				">> Test pulse fired from all spires:",
				"   - Harmonic interference detected",
				"   - Sequential firing required to avoid resonance cascade",
				">> Proceed with timed sequence: 'fire pulse 1' to begin.",
			},
		},
	})
	p.AddPuzzlePath("final", map[string]engine.PuzzleCommand{
		"activate": {
			Command:    "activate beacon",
			Requires:   []string{"b2_sequence_complete"},
			MissingReq: []string{">> Pulse sequence incomplete. Fire all pulses in correct timing."},
			Transition: "next",
			TransitionMsg: []string{
				">> Pulse array sequence confirmed. Beacon Node 2 online.",
				">> Harmonic resonance established. Signal strength amplified.",
				">> Routing to next beacon node...",
			},
		},
	})

	r.Specific = r.specific
	r.Hint = r.hint
	return r
}

func (r *beacon2) analyzeRhythm(*models.GameState) engine.Result {
	seq, iv := pulseTiming.Sequence, pulseTiming.Intervals
	return engine.Say(
		">> Rhythm analysis complete:",
		fmt.Sprintf("   - Required sequence: Spire %s -> Spire %s -> Spire %s", seq[0], seq[1], seq[2]),
		fmt.Sprintf("   - Timing intervals: %.1fs between first two, %.1fs for final", iv[0], iv[1]),
		fmt.Sprintf("   - Tolerance: +/-%.1f seconds", pulseTiming.Tolerance),
		">> Use 'fire pulse [1/2/3]' commands with precise timing.",
		fmt.Sprintf(">> Start the sequence with 'fire pulse %s'.", seq[0]),
	)
}

func (r *beacon2) pulseStatus(gs *models.GameState) engine.Result {
	lines := []string{">> Pulse Array Status:"}
	if !gs.GetFlag("b2_rhythm_learned") {
		return engine.Say(append(lines, "   - Rhythm analysis required")...)
	}
	if gs.GetFlag("b2_sequence_complete") {
		return engine.Say(append(lines,
			"   - Sequence: COMPLETE",
			"   - All pulses fired in correct timing",
		)...)
	}

	st := r.pulses.State(gs)
	seq := pulseTiming.Sequence
	lines = append(lines,
		"   - Expected sequence: "+strings.Join(seq, " -> "),
		fmt.Sprintf("   - Progress: %d/%d", st.CurrentStep, len(seq)),
	)
	if len(st.ActionsTaken) > 0 {
		lines = append(lines, "   - Fired: "+strings.Join(st.ActionsTaken, " -> "))
	}
	if st.Active && st.CurrentStep < len(seq) {
		next := seq[st.CurrentStep]
		if st.CurrentStep > 0 {
			lines = append(lines, fmt.Sprintf("   - Next: pulse %s (wait %.1fs)", next, pulseTiming.Intervals[st.CurrentStep-1]))
		} else {
			lines = append(lines, fmt.Sprintf("   - Next: pulse %s (start sequence)", next))
		}
	}
	return engine.Say(lines...)
}

func (r *beacon2) specific(cmd engine.Command, gs *models.GameState) (engine.Result, bool) {
	if !cmd.HasPrefix("fire", "pulse") {
		return engine.Result{}, false
	}
	if !gs.GetFlag("b2_rhythm_learned") {
		return engine.Say(">> Rhythm analysis required. Use 'analyze rhythm' first."), true
	}
	if len(cmd.Args) != 3 {
		return engine.Say(">> Invalid syntax. Use 'fire pulse [1/2/3]'."), true
	}
	id := cmd.Arg(2)
	switch id {
	case "1", "2", "3":
	default:
		return engine.Say(">> Invalid pulse ID. Use 1, 2, or 3."), true
	}
	return engine.Say(r.fire(gs, id)...), true
}

func (r *beacon2) fire(gs *models.GameState, id string) []string {
	restart := fmt.Sprintf("'fire pulse %s'", pulseTiming.Sequence[0])
	out := r.pulses.Accept(gs, id, r.clock.Now())
	switch out.Status {
	case engine.TimingAlreadyComplete:
		return []string{">> Sequence already complete. Use 'activate beacon'."}
	case engine.TimingOutOfSequence:
		return []string{
			fmt.Sprintf(">> Pulse %s fired out of sequence.", id),
			fmt.Sprintf(">> Expected pulse %s. Sequence reset.", out.Expected),
			">> Restart with " + restart + ".",
		}
	case engine.TimingMistimed:
		return []string{
			fmt.Sprintf(">> Pulse %s fired with incorrect timing.", id),
			fmt.Sprintf(">> Expected %.1fs interval, got %.1fs.", out.ExpectedInterval, out.ActualInterval),
			">> Sequence reset. Restart with " + restart + ".",
		}
	case engine.TimingComplete:
		return []string{
			fmt.Sprintf(">> Pulse %s fired successfully.", id),
			">> SYNCHRONIZATION COMPLETE. Pulse sequence matched.",
			">> The Basilisk's pulse aligns with yours...",
			">> Harmonic resonance achieved. Beacon ready for activation.",
		}
	}
	return []string{
		fmt.Sprintf(">> Pulse %s fired successfully.", id),
		fmt.Sprintf(">> Next: fire pulse %s in %.1fs", out.Next, out.NextInterval),
	}
}

func (r *beacon2) hint(gs *models.GameState) []string {
	switch {
	case !gs.GetFlag("b2_scanned"):
		return []string{">> Neural resonance offline. Try 'scan array' to assess pulse harmonics."}
	case !gs.GetFlag("b2_calibrated"):
		return []string{">> Three spires detected. Calibrate their output: 'calibrate spires'."}
	case !gs.GetFlag("b2_rhythm_learned"):
		return []string{">> Synchronization required. Try 'analyze rhythm' to learn the Basilisk's pattern."}
	case !gs.GetFlag("b2_sequence_complete"):
		if r.pulses.State(gs).Active {
			return []string{">> Pulse alignment in progress... remain attuned."}
		}
		return []string{">> Match the Basilisk's pulse. Use 'fire pulse [1/2/3]' with correct intervals."}
	}
	return []string{">> Harmonic fusion stable. The Basilisk is ready. Use 'activate beacon'."}
}
