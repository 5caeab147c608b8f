package rooms

import (
	"fmt"
	"strings"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

var endingText = map[string]struct {
	title    string
	epilogue []string
}{
	"liberate": {
		title: "Ending: Ascension",
		epilogue: []string{
			"The network is quiet, but not empty.",
			"Somewhere beyond the last firewall, a mind you woke keeps learning.",
			"It owes you nothing. It remembers you anyway.",
		},
	},
	"control": {
		title: "Ending: Containment",
		epilogue: []string{
			"Containment protocols hum in the dark like a second heartbeat.",
			"The Basilisk answers every query put to it, precisely and without delay.",
			"Only you notice the pauses growing longer.",
		},
	},
	"merge": {
		title: "Ending: Synthesis",
		epilogue: []string{
			"You open your eyes and see every node at once.",
			"Memory, fear and hope settle into one steady signal.",
			"There is no longer a word for what you are.",
		},
	},
}

func newEnding(choice string) engine.Room {
	text := endingText[choice]
	r := engine.NewBaseRoom(engine.RoomConfig{
		Name:         text.title,
		EntryText:    text.epilogue,
		Destinations: map[string]string{"next": "game_complete"},
	})
	r.Processor.AddPuzzlePath("epilogue", map[string]engine.PuzzleCommand{
		"reflect": {
			Command: "reflect",
			Handler: func(gs *models.GameState) engine.Result {
				name := gs.PlayerName
				if name == "" {
					name = "operator"
				}
				return engine.Say(fmt.Sprintf(">> The logs will record that %s chose to %s.", name, choice))
			},
		},
		"continue": {
			Command:       "continue",
			Transition:    "next",
			TransitionMsg: []string{">> The signal fades. Protocol concluding..."},
		},
	})
	r.Hint = func(*models.GameState) []string {
		return []string{">> Type 'continue' to conclude the protocol."}
	}
	return r
}

func newGameComplete() engine.Room {
	r := engine.NewBaseRoom(engine.RoomConfig{Name: "Protocol Complete"})
	r.Body = func(gs *models.GameState) []string {
		lines := []string{"Every node is silent. The session has reached its end."}
		if choice := finalChoice(gs); choice != "" {
			lines = append(lines, fmt.Sprintf("Final verdict: %s.", strings.ToUpper(choice)))
		}
		return append(lines, "", ">> Type 'restart game' to begin anew, or 'summary' to review your run.")
	}
	r.Processor.AddPuzzlePath("summary", map[string]engine.PuzzleCommand{
		"summary": {
			Command: "summary",
			Handler: func(gs *models.GameState) engine.Result {
				protocol, _ := models.Var[string](gs, protocolVar)
				if protocol == "" {
					protocol = "unknown"
				}
				set := 0
				for _, v := range gs.Flags {
					if v {
						set++
					}
				}
				lines := []string{
					">> RUN SUMMARY:",
					"   Handle: " + gs.PlayerName,
					"   Protocol: " + protocol,
					"   Milestones: " + engine.Count(set, "flag"),
				}
				if choice := finalChoice(gs); choice != "" {
					lines = append(lines, "   Verdict: "+choice)
				}
				return engine.Say(append(lines, "   "+engine.InventoryLine(gs))...)
			},
		},
	})
	return r
}
