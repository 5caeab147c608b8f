package rooms

import (
	"fmt"
	"strings"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

var beacon1Terminals = []struct{ id, name string }{
	{"1", "Legacy I/O Node"},
	{"2", "Signal Encoder"},
	{"3", "Broadcast Amplifier"},
}

const (
	alphaFragmentName    = "Memory Fragment Alpha"
	alphaFragmentContent = "The Basilisk remembers its creation... a project to predict and prevent human extinction."
	alphaFragmentHint    = "Something watches from beyond the network..."
)

func terminalFlag(id string) string {
	return fmt.Sprintf("terminal_%s_hacked", id)
}

func newBeacon1() engine.Room {
	r := engine.NewBaseRoom(engine.RoomConfig{
		Name: "Beacon Node 1",
		EntryText: []string{
			"You initialize the uplink core.",
			"Static pulses from a nearby transmitter array.",
			"Three terminals buzz, waiting for input...",
		},
		Destinations: map[string]string{"next": "beacon_2"},
		Owns:         []string{"beacon_terminals_", "terminal_", "beacon_configured", "beacon_memory_"},
	})
	r.Help = []string{
		"scan terminals       - list nearby terminals",
		"hack terminal [1-3]  - attempt to unlock a terminal",
		"configure beacon     - finalize the broadcast setup",
		"access fragment      - retrieve embedded Basilisk memory",
		"broadcast            - send the signal once ready",
	}

	r.Processor.AddPuzzlePath("main", map[string]engine.PuzzleCommand{
		"1_scan": {
			Command:     "scan terminals",
			Sets:        "beacon_terminals_scanned",
			AlreadyDone: []string{">> Terminals already scanned."},
			Handler: func(*models.GameState) engine.Result {
				lines := []string{">> Terminal Scan Complete:"}
				for _, t := range beacon1Terminals {
					lines = append(lines, fmt.Sprintf("   - Terminal %s: %s", t.id, t.name))
				}
				return engine.Result{Lines: append(lines, ">> Use 'hack terminal [1-3]' to proceed.")}
			},
		},
		"2_configure": {
			Command:     "configure beacon",
			Requires:    []string{terminalFlag("1"), terminalFlag("2"), terminalFlag("3")},
			Sets:        "beacon_configured",
			MissingReq:  []string{">> All terminals must be hacked before configuration."},
			AlreadyDone: []string{">> Beacon already configured."},
			Success:     []string{">> Beacon parameters configured. Memory scan initiated..."},
		},
		"3_access": {
			Command:     "access fragment",
			Requires:    []string{"beacon_configured"},
			Sets:        "beacon_memory_alpha_unlocked",
			MissingReq:  []string{">> Configuration incomplete. Cannot access memory fragment."},
			AlreadyDone: []string{">> Fragment already retrieved."},
			Success: []string{
				fmt.Sprintf(">> %s accessed:", alphaFragmentName),
				fmt.Sprintf("%q", alphaFragmentContent),
			},
		},
		"4_broadcast": {
			Command:       "broadcast",
			Requires:      []string{"beacon_configured", "beacon_memory_alpha_unlocked"},
			MissingReq:    []string{">> Complete all requirements before broadcasting."},
			Transition:    "next",
			TransitionMsg: []string{">> Transmission sent. The signal has been noticed..."},
		},
	})

	r.Specific = func(cmd engine.Command, gs *models.GameState) (engine.Result, bool) {
		if !cmd.HasPrefix("hack", "terminal") {
			return engine.Result{}, false
		}
		id := cmd.Arg(2)
		if len(cmd.Args) != 3 || !validTerminal(id) {
			return engine.Say(">> Invalid syntax. Try 'hack terminal 1'."), true
		}
		if gs.GetFlag(terminalFlag(id)) {
			return engine.Say(fmt.Sprintf(">> Terminal %s already hacked.", id)), true
		}
		gs.SetFlag(terminalFlag(id), true)
		return engine.Say(fmt.Sprintf(">> Terminal %s hack successful.", id)), true
	}

	r.Hint = func(gs *models.GameState) []string {
		switch {
		case !gs.GetFlag("beacon_terminals_scanned"):
			return []string{">> Terminals unlisted. Try 'scan terminals'."}
		case !allTerminalsHacked(gs):
			var hacked []string
			for _, t := range beacon1Terminals {
				if gs.GetFlag(terminalFlag(t.id)) {
					hacked = append(hacked, "T"+t.id)
				}
			}
			list := "None"
			if len(hacked) > 0 {
				list = strings.Join(hacked, ", ")
			}
			return []string{
				">> Terminals hacked: " + list,
				">> Use 'hack terminal 1/2/3' to access remaining systems.",
			}
		case !gs.GetFlag("beacon_configured"):
			return []string{">> All terminals unlocked. Use 'configure beacon' to prepare broadcast."}
		case !gs.GetFlag("beacon_memory_alpha_unlocked"):
			return []string{
				fmt.Sprintf(">> %s detected...", alphaFragmentName),
				">> Hint: " + alphaFragmentHint,
				">> Use 'access fragment' to retrieve data.",
			}
		}
		return []string{">> Beacon system configured. Ready to 'broadcast' signal."}
	}
	return r
}

func validTerminal(id string) bool {
	for _, t := range beacon1Terminals {
		if t.id == id {
			return true
		}
	}
	return false
}

func allTerminalsHacked(gs *models.GameState) bool {
	for _, t := range beacon1Terminals {
		if !gs.GetFlag(terminalFlag(t.id)) {
			return false
		}
	}
	return true
}
