package rooms

import (
	"fmt"
	"strings"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

var tapRhythm = []string{"3", "1", "4"}

type whisper1 struct {
	*engine.BaseRoom
	taps  *engine.SequencePuzzle
	clock engine.Clock
}

func newWhisper1(clock engine.Clock) engine.Room {
	r := &whisper1{
		BaseRoom: engine.NewBaseRoom(engine.RoomConfig{
			Name: "Whisper Node 1",
			EntryText: []string{
				"You awaken in a dark subnet.",
				"Ghost packets drift silently through data fog.",
				"A flickering port glows softly. It awaits a command...",
			},
			// Every gate out of the subnet opens onto the awakening core.
			Destinations: map[string]string{
				"main":  "whisper_awaken",
				"alt":   "whisper_awaken",
				"mimic": "whisper_awaken",
			},
			Owns: []string{"whisper_"},
		}),
		taps:  engine.NewTimedSequence("whisper_tap_state", tapRhythm, []float64{2.0, 2.0}, 1.0),
		clock: clock,
	}
	r.Help = []string{
		"scan fog            - analyze data fog for hidden I/O ports",
		"ping port           - probe the visible port for response",
		"tap [n]             - answer the port's challenge rhythm",
		"decrypt handshake   - decode port challenge to enable access",
		"connect port        - interface with the port once decrypted",
		"sniff stream        - intercept ambient data transmissions",
		"trace signal        - follow packet ghost routes to hidden paths",
		"spoof source        - impersonate origin node",
		"inject packet       - overload input buffer with custom payload",
		"compile exploit     - build an alternate port bypass using packet traces",
		"connect alt         - access alternate gate (if unlocked)",
		"connect mimic       - spoof entry using compiled exploit",
	}

	r.Processor.AddPuzzlePath("main", map[string]engine.PuzzleCommand{
		"1_scan": {
			Command:     "scan fog",
			Sets:        "whisper_scanned",
			AlreadyDone: []string{">> Fog already scanned. Port silhouette confirmed."},
			Success: []string{
				">> Data fog analyzed.",
				"   - Latent pulse signature detected.",
				"   - Source: encrypted I/O port",
				"   - Status: dormant",
				">> Try 'ping port'",
			},
		},
		"2_ping": {
			Command:     "ping port",
			Requires:    []string{"whisper_scanned"},
			Sets:        "whisper_pinged",
			MissingReq:  []string{">> No target in range. 'scan fog' first."},
			AlreadyDone: []string{">> Port already pinged. Awaiting handshake..."},
			Success: []string{
				">> Port response: weak but alive.",
				"   - Challenge sequence detected.",
				"   - Challenge rhythm: " + strings.Join(tapRhythm, " . ") + " (2s apart)",
				"   - Encryption tier: legacy AES-1.7",
				">> Answer with 'tap <n>', then try 'decrypt handshake'",
			},
		},
		"3_decrypt": {
			Command:     "decrypt handshake",
			Requires:    []string{"whisper_pinged", "whisper_tapped"},
			Sets:        "whisper_decrypted",
			MissingReq:  []string{">> No answered challenge detected. 'ping port' and tap the rhythm first."},
			AlreadyDone: []string{">> Handshake already decrypted. Ready to connect."},
			Success: []string{
				">> Decryption successful.",
				"   - Access vector stabilized",
				"   - Uplink ID confirmed: WHSPR-001",
				">> Use 'connect port' to enter",
			},
		},
		"4_connect": {
			Command:       "connect port",
			Requires:      []string{"whisper_decrypted"},
			Sets:          "whisper_port_connected",
			MissingReq:    []string{">> Access denied. Handshake decryption required."},
			Transition:    "main",
			TransitionMsg: []string{">> Port connected. You slip deeper into the whisper stream..."},
		},
	})
	r.Processor.AddPuzzlePath("alt", map[string]engine.PuzzleCommand{
		"1_sniff": {
			Command:     "sniff stream",
			Requires:    []string{"whisper_scanned"},
			Sets:        "whisper_sniffed",
			MissingReq:  []string{">> Stream too chaotic. 'scan fog' required first."},
			AlreadyDone: []string{">> Already sniffed. Data echoes in silence..."},
			Success: []string{
				">> Listening to data stream...",
				"   - Intercepted: 'WHSPR-ALT-GATE:{locked}'",
				"   - Fragment: '[F0]GR1D_N0D3~tr4c3_nul1'",
				">> Try 'trace signal'?",
			},
		},
		"2_trace": {
			Command:     "trace signal",
			Requires:    []string{"whisper_sniffed"},
			Sets:        "whisper_traced",
			MissingReq:  []string{">> No traceable packet. Use 'sniff stream' first."},
			AlreadyDone: []string{">> Already traced. Ghost path remains dim."},
			Success: []string{
				">> Signal trace initiated...",
				"   - Route: deprecated proxy loop",
				"   - Obfuscation: High",
				"   - Detected: Secondary port ghosted in subnet tail.",
				">> Try 'spoof source' to impersonate probe origin.",
			},
		},
		"3_spoof": {
			Command:     "spoof source",
			Requires:    []string{"whisper_traced"},
			Sets:        "whisper_spoofed",
			MissingReq:  []string{">> No valid target for spoofing."},
			AlreadyDone: []string{">> Source identity already masked."},
			Success: []string{
				">> Source spoofed as: system_routine[1729]",
				"   - Port AI confused.",
				"   - Access channel destabilizing...",
				">> Try 'inject packet' before it collapses.",
			},
		},
		"4_inject": {
			Command:     "inject packet",
			Requires:    []string{"whisper_spoofed"},
			Sets:        "whisper_injected",
			MissingReq:  []string{">> Injection path invalid. Spoof first."},
			AlreadyDone: []string{">> Packet already injected. System buffering..."},
			Success: []string{
				">> Packet injection successful.",
				"   - Buffer overflow induced",
				"   - Alternate gate 'W-ALT-2' opened",
				">> Optional route unlocked. Use 'connect alt' to diverge.",
			},
		},
		"5_connect": {
			Command:       "connect alt",
			Requires:      []string{"whisper_injected"},
			MissingReq:    []string{">> Alternate port unavailable. Injection required."},
			Transition:    "alt",
			TransitionMsg: []string{">> You reroute through the shadow gate..."},
		},
	})
	r.Processor.AddPuzzlePath("exploit", map[string]engine.PuzzleCommand{
		"1_compile": {
			Command:     "compile exploit",
			Requires:    []string{"whisper_sniffed"},
			Sets:        "whisper_exploit_ready",
			MissingReq:  []string{">> No exploit vector discovered."},
			AlreadyDone: []string{">> Exploit already compiled."},
			Success: []string{
				">> Assembling zero-day...",
				"   - Using legacy packet fragment and trace residue.",
				"   - Exploit compiled: PORT_MIMIC_17X ready",
				">> You can now 'connect mimic' to trick the system.",
			},
		},
		"2_connect": {
			Command:       "connect mimic",
			Requires:      []string{"whisper_exploit_ready"},
			MissingReq:    []string{">> Exploit not prepared. Compile first."},
			Transition:    "mimic",
			TransitionMsg: []string{">> System spoofed. Mimic connection stabilized..."},
		},
	})

	r.Specific = r.specific
	r.Hint = func(gs *models.GameState) []string {
		switch {
		case !gs.GetFlag("whisper_scanned"):
			return []string{">> You sense something hidden in the fog. Try 'scan fog'."}
		case !gs.GetFlag("whisper_pinged"):
			return []string{">> Port detected. Recommend 'ping port' to verify link integrity."}
		case !gs.GetFlag("whisper_tapped"):
			return []string{">> The port pulses a rhythm. Answer it with 'tap <n>'."}
		case !gs.GetFlag("whisper_decrypted"):
			return []string{">> Port handshake requires decoding. Try 'decrypt handshake'."}
		}
		return []string{">> Port interface unlocked. Use 'connect port' to proceed."}
	}
	return r
}

func (r *whisper1) specific(cmd engine.Command, gs *models.GameState) (engine.Result, bool) {
	if cmd.Verb() != "tap" {
		return engine.Result{}, false
	}
	if len(cmd.Args) != 2 {
		return engine.Say(">> Invalid syntax. Use 'tap <n>'."), true
	}
	if !gs.GetFlag("whisper_pinged") {
		return engine.Say(">> Nothing answers. 'ping port' first."), true
	}
	if gs.GetFlag("whisper_tapped") {
		return engine.Say(">> Challenge already answered."), true
	}

	n := cmd.Arg(1)
	out := r.taps.Add(gs, n, r.clock.Now())
	if out.Status == engine.SequenceComplete {
		gs.SetFlag("whisper_tapped", true)
		return engine.Say(
			fmt.Sprintf(">> Tap %s registered.", n),
			">> Challenge rhythm accepted. The handshake opens for decryption.",
		), true
	}
	return engine.Say(append([]string{fmt.Sprintf(">> Tap %s registered.", n)}, out.Lines()...)...), true
}
