package engine

import (
	"fmt"
	"strings"

	"github.com/tatianab/basilisk/internal/models"
)

func isRestart(cmd Command) bool {
	switch cmd.Verb() {
	case "restart":
		return true
	case "reset":
		// Rooms own "reset <thing>" commands such as "reset sequence".
		switch cmd.Arg(1) {
		case "", "room", "game", "confirm":
			return len(cmd.Args) <= 2
		}
	}
	return false
}

func (e *Engine) restart(cmd Command, armed bool) []string {
	switch cmd.Arg(1) {
	case "":
		return []string{
			"=== RESTART OPTIONS ===",
			"restart room     - Reset current room puzzles",
			"restart game     - Reset entire game to beginning",
			"restart confirm  - Confirm full game reset",
			"",
			"Note: 'restart room' keeps your inventory and progress in other rooms",
		}
	case "room":
		return e.restartRoom()
	case "game":
		e.resetArmed = true
		return []string{
			"=== WARNING ===",
			"This will reset ALL progress, inventory, and flags!",
			"Type 'restart confirm' to proceed, or any other command to cancel.",
		}
	case "confirm":
		if !armed {
			return []string{">> No reset pending. Type 'restart game' first."}
		}
		return e.restartGame()
	}
	return []string{"Invalid restart command. Type 'restart' for options."}
}

func (e *Engine) restartRoom() []string {
	id := e.state.CurrentRoomID
	room, err := e.rooms.Open(id)
	if err != nil {
		return []string{fmt.Sprintf(">> Error: Room '%s' not found!", id)}
	}
	cleared := 0
	if r, ok := room.(Resetter); ok {
		cleared = r.Reset(e.state)
	}
	e.logger.Printf("restart room %s, cleared %d", id, cleared)
	lines := []string{
		fmt.Sprintf("=== RESTARTING ROOM: %s ===", strings.ToUpper(id)),
		fmt.Sprintf("Cleared %d room-specific %s.", cleared, plurals.Pluralize("flag", cleared, false)),
		"Your inventory and progress in other rooms remain intact.",
		"",
	}
	return append(lines, room.Enter(e.state)...)
}

func (e *Engine) restartGame() []string {
	e.logger.Printf("restart game from %s", e.state.CurrentRoomID)
	gs := models.NewGameState(e.start)
	gs.SetRoomIndex(e.rooms)
	e.state = gs
	lines := []string{
		"=== GAME RESET COMPLETE ===",
		"All progress has been erased.",
		"Starting from the beginning...",
		"",
	}
	return append(lines, e.enter()...)
}
