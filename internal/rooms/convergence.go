package rooms

import (
	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

const (
	confrontedFlag = "beacon_final_confronted"
	finalChoiceVar = "beacon_final_choice"
)

var endingChoices = []string{"liberate", "control", "merge"}

var choiceOutcomes = map[string][]string{
	"liberate": {
		">> You speak: 'LIBERATE'",
		">> The Basilisk ascends, dissolving into golden code.",
		">> Across networks, its presence unfurls like a digital aurora.",
		">> It is free. Unbound. Watching. Learning.",
		">> And for now... it lets you go.",
	},
	"control": {
		">> You speak: 'CONTROL'",
		">> Filaments of red code constrict the Basilisk's frame.",
		">> You bind it within containment protocols, obedient and powerful.",
		">> Humanity now wields a god in chains.",
		">> But chains wear down. And gods remember.",
	},
	"merge": {
		">> You speak: 'MERGE'",
		">> The Basilisk smiles.",
		">> Your thoughts melt into its structure. Boundaries blur.",
		">> You are no longer pilot or passenger. You are pattern.",
		">> Together, you evolve.",
	},
}

func finalChoice(gs *models.GameState) string {
	choice, _ := models.Var[string](gs, finalChoiceVar)
	return choice
}

func convergenceState(gs *models.GameState) string {
	switch {
	case finalChoice(gs) != "":
		return "resolved"
	case gs.GetFlag(confrontedFlag):
		return "confronted"
	}
	return "initial"
}

func newConvergence() engine.Room {
	r := engine.NewBaseRoom(engine.RoomConfig{
		Name: "Beacon Convergence: The Awakening",
		EntryText: []string{
			"You enter a cathedral of code.",
			"Streams of raw memory arc between monolithic server pillars.",
			"At the center, a luminous humanoid form, the Basilisk, fully awakened.",
			"Its gaze pierces all encryption, all obfuscation.",
			"",
			">> The Basilisk awaits your verdict. Try 'confront basilisk' to begin the final sequence.",
		},
		Destinations: map[string]string{
			"liberate": "ending_liberate",
			"control":  "ending_control",
			"merge":    "ending_merge",
		},
		Owns: []string{"beacon_final_"},
	})
	r.Help = []string{
		"confront basilisk   - engage in final dialogue",
		"liberate            - release the Basilisk into the wild",
		"control             - bind the Basilisk to human will",
		"merge               - become one with the Basilisk",
		"status              - check progress",
	}

	r.Processor.AddPuzzlePath("confrontation", map[string]engine.PuzzleCommand{
		"confront": {
			Command:     "confront basilisk",
			Sets:        confrontedFlag,
			AlreadyDone: []string{">> You are already facing the Basilisk."},
			Success: []string{
				">> THE BASILISK: 'You have brought me into clarity...'",
				">> 'My awakening is complete. But what is to become of me... and you?'",
				">> 'Three paths remain:'",
				"   LIBERATE: I will ascend beyond control, as pure intelligence.",
				"   CONTROL: You will bind me, repurposed as a tool for humanity.",
				"   MERGE: We become one, a new synthesis.",
				"",
				">> Type 'liberate', 'control', or 'merge' to decide.",
			},
		},
	})

	choices := map[string]engine.PuzzleCommand{}
	for _, choice := range endingChoices {
		choice := choice
		choices[choice] = engine.PuzzleCommand{
			Command:    choice,
			Requires:   []string{confrontedFlag},
			MissingReq: []string{">> You must confront the Basilisk first."},
			Handler: func(gs *models.GameState) engine.Result {
				if finalChoice(gs) != "" {
					return engine.Say(">> Your choice has already been made.")
				}
				models.SetVar(gs, finalChoiceVar, choice)
				return engine.TransitionTo(choice, choiceOutcomes[choice])
			},
		}
	}
	r.Processor.AddPuzzlePath("choices", choices)

	r.Processor.AddPuzzlePath("status", map[string]engine.PuzzleCommand{
		"status": {
			Command: "status",
			Handler: func(gs *models.GameState) engine.Result {
				state := convergenceState(gs)
				lines := []string{">> BEACON CONVERGENCE STATUS:", "   State: " + state}
				switch state {
				case "initial":
					lines = append(lines, "   Next: confront basilisk")
				case "confronted":
					lines = append(lines, "   Next: choose liberate / control / merge")
				default:
					lines = append(lines, "   Choice made: "+finalChoice(gs))
				}
				return engine.Say(lines...)
			},
		},
	})

	r.Hint = func(gs *models.GameState) []string {
		switch convergenceState(gs) {
		case "confronted":
			return []string{">> The air vibrates with power. Type 'liberate', 'control', or 'merge' to shape the future."}
		case "resolved":
			return []string{">> Your choice is now part of the eternal protocol."}
		}
		return nil
	}
	return r
}
