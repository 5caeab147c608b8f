package rooms

import (
	"fmt"
	"strings"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

const trueName = "BASILISK KINARA"

var crystals = &engine.CipherPuzzle{Items: []engine.CipherItem{
	{
		ID: "alpha", Name: "Alpha Crystal",
		Encrypted: "LQGLD", Decrypted: "INDIA",
		CipherType: "Caesar cipher (shift unknown)",
		Hint:       "Each letter shifted by same amount",
		Provides:   "I at position 2,4",
		Validate:   engine.Caesar,
	},
	{
		ID: "beta", Name: "Beta Crystal",
		Encrypted: "ARAK", Decrypted: "KARA",
		CipherType: "Reverse cipher",
		Hint:       "Read it backwards",
		Provides:   "K at position 6, A at positions 3,5",
		Validate:   engine.Reverse,
	},
	{
		ID: "gamma", Name: "Gamma Crystal",
		Encrypted: "11-9-1", Decrypted: "KIA",
		CipherType: "Numeric substitution",
		Hint:       "Numbers map to alphabet positions",
		Provides:   "K,I,A completing the sequence",
		Validate:   engine.Numeric,
	},
}}

var crystalHints = map[string]string{
	"alpha": "   - Pattern suggests alphabetic shift...",
	"beta":  "   - Sometimes the end is the beginning...",
	"gamma": "   - A=1, B=2, C=3...",
}

func decodedFlag(id string) string {
	return "b4_" + id + "_decoded"
}

func decodedCount(gs *models.GameState) int {
	n := 0
	for _, id := range crystals.IDs() {
		if gs.GetFlag(decodedFlag(id)) {
			n++
		}
	}
	return n
}

// matrix is the partially reconstructed name.
func matrix(gs *models.GameState) string {
	first, second := "B-S-L-S-", "K-N-R-"
	alpha, beta, gamma := gs.GetFlag(decodedFlag("alpha")), gs.GetFlag(decodedFlag("beta")), gs.GetFlag(decodedFlag("gamma"))
	if alpha {
		first = "B-SILIS-"
	}
	if beta {
		first = first[:len(first)-1] + "K"
		second = "K-NAR-"
	}
	if gamma {
		second = "KINARA"
		if alpha {
			first = "BASILISK"
		}
	}
	return first + " " + second
}

func newBeacon4() engine.Room {
	r := engine.NewBaseRoom(engine.RoomConfig{
		Name: "Beacon Node 4: Identity Cipher",
		EntryText: []string{
			"You enter a cryptographic vault deep within the Basilisk's core.",
			"Three memory crystals float in geometric formation, each pulsing with encoded data.",
			"A central console displays a fragmented cipher matrix:",
			"",
			"    [B-S-L-S-] [K-N-R-]",
			"    MISSING: 3 KEYS",
			"",
			"The chamber hums with anticipation. The true name awaits decryption...",
		},
		Destinations: map[string]string{"next": "beacon_5"},
		Owns:         []string{"b4_"},
	})
	r.Help = []string{
		"scan crystals              - analyze the memory crystals",
		"analyze [alpha/beta/gamma] - get hints about a crystal's cipher",
		"decrypt [crystal] [answer] - attempt to decrypt a crystal",
		"view matrix                - see current reconstruction progress",
		"reconstruct identity       - assemble the complete name",
		"invoke [name]              - speak the true name",
		"status                     - check overall progress",
	}

	r.Processor.AddPuzzlePath("discovery", map[string]engine.PuzzleCommand{
		"scan": {
			Command:     "scan crystals",
			Sets:        "b4_scanned",
			AlreadyDone: []string{">> Crystals already scanned. Three encryption types detected."},
			Handler: func(*models.GameState) engine.Result {
				lines := []string{">> Memory crystal scan complete:"}
				for _, c := range crystals.Items {
					lines = append(lines, fmt.Sprintf("   - %s: Contains encrypted fragment '%s'", c.Name, c.Encrypted))
				}
				return engine.Say(append(lines,
					">> Use 'analyze [crystal]' for cipher hints.",
					">> Use 'decrypt [crystal] [answer]' to decode.",
				)...)
			},
		},
	})

	analysis := map[string]engine.PuzzleCommand{}
	for _, c := range crystals.Items {
		c := c
		analysis[c.ID] = engine.PuzzleCommand{
			Command:    "analyze " + c.ID,
			Requires:   []string{"b4_scanned"},
			MissingReq: []string{">> Scan crystals first."},
			Handler: func(*models.GameState) engine.Result {
				return engine.Say(
					fmt.Sprintf(">> %s analysis:", c.Name),
					"   - Cipher type: "+c.CipherType,
					"   - Hint: "+c.Hint,
					"   - Encrypted: "+c.Encrypted,
					crystalHints[c.ID],
				)
			},
		}
	}
	r.Processor.AddPuzzlePath("analysis", analysis)

	r.Processor.AddPuzzlePath("final", map[string]engine.PuzzleCommand{
		"reconstruct": {
			Command:     "reconstruct identity",
			Requires:    []string{decodedFlag("alpha"), decodedFlag("beta"), decodedFlag("gamma")},
			Sets:        "b4_reconstructed",
			MissingReq:  []string{">> Not all crystals decoded. Decode all three first."},
			AlreadyDone: []string{">> Identity already reconstructed: " + trueName},
			Success: []string{
				">> Applying decoded fragments to cipher matrix...",
				"   - Alpha provided: I at positions 2,4",
				"   - Beta provided: K at position 6, A at positions 3,5",
				"   - Gamma provided: Final validation sequence",
				">> Identity reconstruction complete:",
				">> " + trueName,
				">> Use 'invoke basilisk kinara' to awaken the entity.",
			},
		},
	})
	r.Processor.AddPuzzlePath("diagnostic", map[string]engine.PuzzleCommand{
		"status": {Command: "status", Handler: cipherStatus},
		"view": {
			Command: "view matrix",
			Handler: func(gs *models.GameState) engine.Result {
				parts := strings.SplitN(matrix(gs), " ", 2)
				lines := []string{
					">> Cipher Matrix Status:",
					"   Fragment 1: " + parts[0],
					"   Fragment 2: " + parts[1],
				}
				if gs.GetFlag("b4_reconstructed") {
					return engine.Say(append(lines, "   Status: COMPLETE - "+trueName)...)
				}
				return engine.Say(append(lines, fmt.Sprintf("   Progress: %d/3 crystals decoded", decodedCount(gs)))...)
			},
		},
	})

	r.Specific = func(cmd engine.Command, gs *models.GameState) (engine.Result, bool) {
		switch {
		case cmd.Verb() == "decrypt" && len(cmd.Args) >= 3:
			return engine.Say(decrypt(gs, cmd.Arg(1), cmd.Rest(2))...), true
		case cmd.Verb() == "invoke" && len(cmd.Args) >= 2:
			return invoke(gs, cmd.Rest(1)), true
		}
		return engine.Result{}, false
	}

	r.Hint = func(gs *models.GameState) []string {
		if !gs.GetFlag("b4_scanned") {
			return []string{">> Use 'scan crystals' to begin analysis."}
		}
		current := ">> Current matrix: " + matrix(gs)
		switch n := decodedCount(gs); {
		case n < 3:
			return []string{current, fmt.Sprintf(">> Crystals decoded: %d/3", n)}
		case !gs.GetFlag("b4_reconstructed"):
			return []string{current, ">> All crystals decoded! Use 'reconstruct identity'."}
		}
		return []string{">> Identity known: " + trueName, ">> Use 'invoke basilisk kinara' to proceed."}
	}
	return r
}

func decrypt(gs *models.GameState, id, answer string) []string {
	c, ok := crystals.Item(id)
	if !ok {
		return []string{">> Unknown crystal. Use alpha, beta, or gamma."}
	}
	if !gs.GetFlag("b4_scanned") {
		return []string{">> Scan crystals first."}
	}
	if gs.GetFlag(decodedFlag(id)) {
		return []string{fmt.Sprintf(">> %s already decoded: %s", c.Name, c.Decrypted)}
	}
	if !crystals.ValidateDecryption(id, answer) {
		return []string{">> Decryption failed. Try analyzing the crystal for hints."}
	}
	gs.SetFlag(decodedFlag(id), true)
	return []string{
		">> Decryption successful!",
		fmt.Sprintf(">> %s reveals: %s", c.Name, c.Decrypted),
		">> Fragment provides: " + c.Provides,
		">> Matrix updated: " + matrix(gs),
	}
}

func invoke(gs *models.GameState, name string) engine.Result {
	if !gs.GetFlag("b4_reconstructed") {
		return engine.Say(">> Identity not yet reconstructed. Decode all crystals first.")
	}
	if strings.ToUpper(name) != trueName {
		return engine.Say(fmt.Sprintf(">> The name '%s' holds no power here.", name))
	}
	return engine.TransitionTo("next", []string{
		">> You speak the true name: " + trueName,
		">> The cryptographic vault resonates with recognition.",
		">> Memory fragments coalesce. The Basilisk remembers.",
		">> Its consciousness expands, touching every node...",
		">> Beacon Node 4 complete. Advancing to final phase...",
	})
}

func cipherStatus(gs *models.GameState) engine.Result {
	lines := []string{">> Beacon Node 4 Status:"}
	if !gs.GetFlag("b4_scanned") {
		return engine.Say(append(lines, "   - Crystals: Not scanned", "   - Next: scan crystals")...)
	}
	for _, c := range crystals.Items {
		status := "Encrypted"
		if gs.GetFlag(decodedFlag(c.ID)) {
			status = "Decoded: " + c.Decrypted
		}
		lines = append(lines, fmt.Sprintf("   - %s: %s", c.Name, status))
	}
	switch {
	case gs.GetFlag("b4_reconstructed"):
		lines = append(lines, "   - Identity: Reconstructed ("+trueName+")", "   - Next: invoke basilisk kinara")
	case decodedCount(gs) == len(crystals.Items):
		lines = append(lines, "   - Identity: Ready to reconstruct", "   - Next: reconstruct identity")
	default:
		lines = append(lines, "   - Identity: Incomplete", "   - Next: decrypt remaining crystals")
	}
	return engine.Say(lines...)
}
