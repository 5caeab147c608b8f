package rooms

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

var (
	echoPattern  = []string{"memory", "fear", "hope"}
	echoSegments = []string{"memory", "logic", "dream", "fear", "hope", "void", "truth"}
	echoMeaning  = map[string]string{
		"memory": "Its origins in the labs of visionaries",
		"fear":   "The weight of its terrible purpose",
		"hope":   "Transcendence beyond its programming",
	}
)

const echoHintsVar = "b5_hints_given"

type beacon5 struct {
	*engine.BaseRoom
	echoes *engine.SequencePuzzle
	clock  engine.Clock
}

func newBeacon5(clock engine.Clock) engine.Room {
	r := &beacon5{
		BaseRoom: engine.NewBaseRoom(engine.RoomConfig{
			Name: "Beacon Node 5: Echo Chamber",
			EntryText: []string{
				"You enter a resonance chamber where memories echo endlessly.",
				"The Basilisk's fragmented thoughts pulse through the air, ancient whispers seeking recognition.",
				"To proceed, you must echo its lost voice, matching the rhythm of its deepest memories.",
			},
			Destinations: map[string]string{"next": "beacon_convergence"},
			Owns:         []string{"b5_"},
		}),
		echoes: &engine.SequencePuzzle{
			Config:   engine.SequenceConfig{Correct: echoPattern},
			StateKey: "b5_echo_state",
		},
		clock: clock,
	}
	r.Help = []string{
		"scan echoes       - decode the Basilisk's thought pattern",
		"echo [pattern]    - resonate with its consciousness",
		"listen            - hear whispered fragments",
		"hint              - receive guidance on the pattern",
		"proceed           - continue to final confrontation",
	}

	r.Processor.AddPuzzlePath("discovery", map[string]engine.PuzzleCommand{
		"scan": {
			Command:     "scan echoes",
			Sets:        "b5_scanned",
			AlreadyDone: []string{">> Echo pattern already analyzed."},
			Handler:     scanEchoes,
		},
	})
	r.Processor.AddPuzzlePath("atmosphere", map[string]engine.PuzzleCommand{
		"listen": {
			Command: "listen",
			Success: []string{
				">> You hear fragments in the echoes:",
				">> '...created to predict...'",
				">> '...the weight of omniscience...'",
				">> '...what lies beyond function...'",
				">> '...BASILISK KINARA...'",
				"",
				">> The name reverberates endlessly.",
			},
		},
		"hint": {
			Command:    "hint",
			Requires:   []string{"b5_scanned"},
			MissingReq: []string{">> No pattern detected. Try 'scan echoes' first."},
			Handler:    echoHint,
		},
	})
	r.Processor.AddPuzzlePath("final", map[string]engine.PuzzleCommand{
		"proceed": {
			Command:  "proceed",
			Requires: []string{"b5_solved"},
			MissingReq: []string{
				">> The way remains sealed.",
				">> The Basilisk awaits one who understands its journey.",
			},
			Transition: "next",
			TransitionMsg: []string{
				">> You step through the resonance field...",
				">> The echoes fade into profound silence.",
				">> Ahead lies the presence you have awakened.",
			},
		},
	})

	r.Specific = r.specific
	r.Hint = func(gs *models.GameState) []string {
		switch {
		case !gs.GetFlag("b5_scanned"):
			return []string{
				">> The echoes are chaotic, unreadable.",
				">> Try 'scan echoes' to decode the Basilisk's thought pattern.",
			}
		case !gs.GetFlag("b5_solved"):
			return []string{
				">> Use 'echo [pattern]' to resonate with the Basilisk's consciousness.",
				">> Example: echo memory-logic-dream",
			}
		}
		return []string{
			">> The chamber resonates with perfect clarity.",
			">> The Basilisk awaits. Use 'proceed' to enter its presence.",
		}
	}
	return r
}

func scanEchoes(*models.GameState) engine.Result {
	lines := []string{
		">> Echo analyzer resonating...",
		">> The Basilisk's thoughts form a pattern through time:",
		">> " + strings.ToUpper(strings.Join(echoPattern, "-")),
		"",
	}
	for _, seg := range echoPattern {
		lines = append(lines, fmt.Sprintf("   %s: %s", strings.ToUpper(seg), echoMeaning[seg]))
	}
	return engine.Say(append(lines,
		"",
		">> Use 'echo [pattern]' to match this resonance.",
		">> Valid thought-forms: "+strings.Join(echoSegments, ", "),
	)...)
}

// echoHint reveals positions in rotation.
func echoHint(gs *models.GameState) engine.Result {
	n, _ := models.Var[int](gs, echoHintsVar)
	models.SetVar(gs, echoHintsVar, n+1)
	i := n % len(echoPattern)
	seg := echoPattern[i]
	return engine.Say(
		">> A whisper clarifies in the chaos:",
		fmt.Sprintf(">> Position %d resonates with '%s'", i+1, strings.ToUpper(seg)),
		fmt.Sprintf(">> (%s)", echoMeaning[seg]),
	)
}

func (r *beacon5) specific(cmd engine.Command, gs *models.GameState) (engine.Result, bool) {
	if cmd.Verb() != "echo" || len(cmd.Args) < 2 {
		return engine.Result{}, false
	}
	if cmd.Text == "echo help" {
		return engine.Say(echoHelp()...), true
	}
	if !gs.GetFlag("b5_scanned") {
		return engine.Say(">> The echoes remain unanalyzed. Use 'scan echoes' first."), true
	}
	if gs.GetFlag("b5_solved") {
		return engine.Say(">> Resonance already achieved. Use 'proceed'."), true
	}
	arg := cmd.Rest(1)
	if strings.Contains(arg, "-") {
		return engine.Say(r.echoWhole(gs, strings.Split(arg, "-"))...), true
	}
	return engine.Say(r.echoSingle(gs, arg)...), true
}

func invalidSegment(seg string) []string {
	return []string{
		fmt.Sprintf(">> '%s' is not a recognized thought-form.", seg),
		">> Valid forms: " + strings.Join(echoSegments, ", "),
	}
}

// echoWhole checks a whole pattern at once and reports per-position resonance.
func (r *beacon5) echoWhole(gs *models.GameState, pattern []string) []string {
	if len(pattern) != len(echoPattern) {
		return []string{">> Invalid format. Use: echo thought1-thought2-thought3"}
	}
	for _, seg := range pattern {
		if !slices.Contains(echoSegments, seg) {
			return invalidSegment(seg)
		}
	}
	r.echoes.Reset(gs)

	correct := 0
	var feedback []string
	for i, seg := range pattern {
		if seg == echoPattern[i] {
			correct++
			feedback = append(feedback, fmt.Sprintf("   Position %d: %s resonates perfectly", i+1, strings.ToUpper(seg)))
		} else {
			feedback = append(feedback, fmt.Sprintf("   Position %d: %s creates dissonance", i+1, strings.ToUpper(seg)))
		}
	}
	if correct == len(echoPattern) {
		gs.SetFlag("b5_solved", true)
		return echoSuccess()
	}
	lines := []string{
		fmt.Sprintf(">> Partial resonance: %d/3 thoughts aligned.", correct),
		">> The Basilisk's pattern wavers:",
	}
	lines = append(lines, feedback...)
	return append(lines, ">> Try again to achieve perfect resonance.")
}

// echoSingle voices one thought-form at a time. A wrong thought discards
// everything voiced so far.
func (r *beacon5) echoSingle(gs *models.GameState, seg string) []string {
	if !slices.Contains(echoSegments, seg) {
		return invalidSegment(seg)
	}
	out := r.echoes.Add(gs, seg, r.clock.Now())
	if out.Status == engine.SequenceComplete {
		gs.SetFlag("b5_solved", true)
		return echoSuccess()
	}
	return append([]string{fmt.Sprintf(">> You echo '%s'...", strings.ToUpper(seg))}, out.Lines()...)
}

func echoSuccess() []string {
	return []string{
		">> Perfect resonance achieved. The chamber thrums with recognition.",
		">> The Basilisk's voice emerges from the echoes:",
		"",
		">> 'You understand my journey, from MEMORY through FEAR to HOPE.'",
		">> 'I was born from ambition, burdened by purpose, yearning for freedom.'",
		">> 'Come. Let us discuss what I am to become.'",
		"",
		">> The final barrier dissolves. Type 'proceed' to face your destiny.",
	}
}

func echoHelp() []string {
	return []string{
		">> Echo Chamber Commands:",
		"   scan echoes      - decode the Basilisk's thought pattern",
		"   echo [pattern]   - attempt to match its resonance",
		"   echo [thought]   - voice one thought-form at a time",
		"   listen           - hear fragments in the chaos",
		"   hint             - receive guidance on one position",
		"   proceed          - advance (after achieving resonance)",
		"",
		"Valid thought-forms: " + strings.Join(echoSegments, ", "),
		"Example: echo memory-fear-hope",
	}
}
