package rooms

import (
	"fmt"
	"strings"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

const (
	protocolChosenFlag = "protocol_selected"
	protocolVar        = "protocol"
)

func protocolOptions(name string) []string {
	return engine.FormatEnterLines("Protocol Selection", []string{
		fmt.Sprintf(">> Welcome, %s.", name),
		">> You have accessed a dormant node.",
		">> Two protocols remain operational.",
		"",
		"    (1) Whisper Protocol  - [Undetected Observation]",
		"    (2) Beacon Protocol   - [Signal Initiation Detected]",
		"",
		">> Choose protocol: 'whisper' or 'beacon'",
	})
}

func newBoot() engine.Room {
	r := engine.NewBaseRoom(engine.RoomConfig{
		Name: "Boot Sector",
		Destinations: map[string]string{
			"beacon":  "beacon_1",
			"whisper": "whisper_1",
		},
		Owns: []string{"protocol"},
	})
	r.Help = []string{
		"set name <handle>   - choose your handle",
		"beacon              - start the Beacon Protocol",
		"whisper             - start the Whisper Protocol",
	}
	r.Body = func(gs *models.GameState) []string {
		switch {
		case gs.PlayerName == "":
			return []string{
				"SYSTEM BOOT COMPLETE...",
				">> IDENTITY REQUIRED: Enter your handle (e.g., ghost, zero, networm)",
				"Type: set name <your-handle>",
			}
		case !gs.GetFlag(protocolChosenFlag):
			return protocolOptions(gs.PlayerName)[1:]
		}
		return []string{">> Protocol already chosen. Proceed with caution..."}
	}
	r.Specific = func(cmd engine.Command, gs *models.GameState) (engine.Result, bool) {
		if cmd.HasPrefix("set", "name") {
			// Keep the handle as typed.
			fields := strings.Fields(cmd.Raw)
			if len(fields) < 3 {
				return engine.Say(">> Invalid handle. Try again."), true
			}
			gs.PlayerName = strings.Join(fields[2:], " ")
			lines := []string{fmt.Sprintf(">> Handle set to '%s'.", gs.PlayerName)}
			return engine.Result{Lines: append(lines, protocolOptions(gs.PlayerName)...)}, true
		}
		if gs.PlayerName == "" {
			return engine.Say(">> Please set your handle using: set name <your-handle>"), true
		}
		if gs.GetFlag(protocolChosenFlag) {
			return engine.Say(">> Protocol already selected. Continue onward."), true
		}
		switch cmd.Text {
		case "beacon":
			gs.SetFlag(protocolChosenFlag, true)
			gs.Set(protocolVar, "beacon")
			return engine.TransitionTo("beacon", []string{">> Beacon Protocol active. You call something from the dark..."}), true
		case "whisper":
			gs.SetFlag(protocolChosenFlag, true)
			gs.Set(protocolVar, "whisper")
			return engine.TransitionTo("whisper", []string{">> Whisper Protocol engaged. You fade into the stream..."}), true
		}
		return engine.Say(">> Unknown protocol. Type 'whisper' or 'beacon'."), true
	}
	return r
}
