package engine

import (
	"fmt"
)

var debugMenu = []string{
	"=== DEBUG MENU ===",
	"boot.debug list         - list registered rooms",
	"boot.debug jump <room>  - jump directly to a room",
}

// bootDebug serves the developer commands. Jumps skip every prerequisite.
func (e *Engine) bootDebug(cmd Command) []string {
	e.state.DebugMode = true
	if e.state.PlayerName == "" {
		e.state.PlayerName = "debug"
	}

	switch cmd.Arg(1) {
	case "":
		return append([]string(nil), debugMenu...)
	case "list":
		ids := e.rooms.IDs()
		rows := make([][]string, 0, len(ids))
		for _, id := range ids {
			marker := ""
			if id == e.state.CurrentRoomID {
				marker = "*"
			}
			rows = append(rows, []string{marker, id, e.rooms.Title(id)})
		}
		lines := []string{fmt.Sprintf(">> DEBUG: %s registered:", Count(len(ids), "room"))}
		return append(lines, RenderTable([]string{"", "Room", "Title"}, rows)...)
	case "jump":
		target := cmd.Arg(2)
		if target == "" {
			return []string{">> DEBUG: Usage: boot.debug jump <room>"}
		}
		if !e.rooms.Exists(target) {
			return []string{fmt.Sprintf(">> DEBUG: Room '%s' not found.", target)}
		}
		target = e.rooms.Canonical(target)
		e.logger.Printf("debug jump %s -> %s", e.state.CurrentRoomID, target)
		e.state.ChangeRoom(target)
		lines := []string{fmt.Sprintf(">> DEBUG: Jumping to %s...", target)}
		return append(lines, e.enter()...)
	}
	lines := []string{fmt.Sprintf(">> DEBUG: Unknown option '%s'.", cmd.Arg(1))}
	return append(lines, debugMenu...)
}
