package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tatianab/basilisk/internal/models"
)

const unknownCommand = ">> Unknown command. Try 'help' for available options."

// Room is the contract every room variant satisfies. Rooms hold no progress
// of their own; everything they remember lives in the GameState.
type Room interface {
	Enter(gs *models.GameState) []string
	HandleInput(raw string, gs *models.GameState) Result
	Commands() []string
}

// Resetter is implemented by rooms that can clear their own progress.
type Resetter interface {
	Reset(gs *models.GameState) int
}

// Titled is implemented by rooms with a display name.
type Titled interface {
	Title() string
}

// RoomConfig is the immutable descriptor of a room.
type RoomConfig struct {
	Name         string
	EntryText    []string
	Destinations map[string]string
	// Owns lists the flag and variable prefixes cleared by "restart room".
	Owns []string
}

// BaseRoom composes a Processor with the optional hooks a concrete room
// supplies. The zero hooks are valid.
type BaseRoom struct {
	Config    RoomConfig
	Processor *Processor

	// Help is the room-specific command list shown by "help". When empty
	// the processor's commands are listed.
	Help []string
	// Hint derives progression guidance from the current state.
	Hint func(gs *models.GameState) []string
	// Specific handles free-form commands with dynamic arguments.
	Specific func(cmd Command, gs *models.GameState) (Result, bool)
	// Body replaces EntryText when the description depends on state.
	Body func(gs *models.GameState) []string
}

func NewBaseRoom(cfg RoomConfig) *BaseRoom {
	return &BaseRoom{
		Config:    cfg,
		Processor: NewProcessor(cfg.Destinations),
	}
}

func (r *BaseRoom) Title() string {
	return r.Config.Name
}

func (r *BaseRoom) Enter(gs *models.GameState) []string {
	lines := FormatEnterLines(r.Config.Name, r.body(gs))
	if hint := r.hint(gs); len(hint) > 0 {
		lines = append(lines, "")
		lines = append(lines, hint...)
	}
	return lines
}

func (r *BaseRoom) Commands() []string {
	if len(r.Help) > 0 {
		return append([]string(nil), r.Help...)
	}
	return r.Processor.Commands()
}

// Reset clears the flags and variables owned by the room.
func (r *BaseRoom) Reset(gs *models.GameState) int {
	return gs.ClearPrefix(r.Config.Owns...)
}

// HandleInput dispatches in order: universal commands, puzzle commands,
// the room's free-form handler, then the unknown-command fallback.
func (r *BaseRoom) HandleInput(raw string, gs *models.GameState) Result {
	cmd := ParseCommand(raw)
	if cmd.Text == "" {
		return Say(">> Enter a command. Type 'help' for options.")
	}

	if res, ok := r.universal(cmd, gs); ok {
		return res
	}
	if res, ok := r.Processor.Resolve(cmd.Text, gs); ok {
		return r.resolve(res)
	}
	if r.Specific != nil {
		if res, ok := r.Specific(cmd, gs); ok {
			return r.resolve(res)
		}
	}

	lines := []string{unknownCommand}
	if s, ok := Suggest(cmd.Text, r.vocabulary()); ok {
		lines = append(lines, fmt.Sprintf(">> Did you mean '%s'?", s))
	}
	return Result{Lines: lines}
}

func (r *BaseRoom) resolve(res Result) Result {
	if res.Next != "" {
		res.Next = r.Processor.Destination(res.Next)
	}
	return res
}

func (r *BaseRoom) body(gs *models.GameState) []string {
	if r.Body != nil {
		return r.Body(gs)
	}
	return append([]string(nil), r.Config.EntryText...)
}

func (r *BaseRoom) hint(gs *models.GameState) []string {
	if r.Hint == nil {
		return nil
	}
	return r.Hint(gs)
}

var universalCommands = []string{"look", "scan", "observe", "inventory", "inv", "i", "help", "restart"}

func (r *BaseRoom) vocabulary() []string {
	words := append([]string(nil), universalCommands...)
	return append(words, r.Processor.Commands()...)
}

func (r *BaseRoom) universal(cmd Command, gs *models.GameState) (Result, bool) {
	switch cmd.Text {
	case "look":
		return Result{Lines: r.Enter(gs)}, true
	case "scan":
		return Say(">> You run a basic scan, but no anomalies are found."), true
	case "observe":
		return Say(">> You observe carefully, but nothing new stands out."), true
	case "inventory", "inv", "i":
		return Say(InventoryLine(gs)), true
	case "help":
		return Result{Lines: r.helpLines()}, true
	case "flags":
		if gs.DebugMode {
			return Result{Lines: DescribeFlags(gs, "   ")}, true
		}
	}
	return Result{}, false
}

func (r *BaseRoom) helpLines() []string {
	lines := []string{
		">> Universal commands:",
		"  look / scan / observe - examine your surroundings",
		"  inventory / i         - view held items",
		"  restart               - restart options (room/game)",
		"  help                  - show this help menu",
	}
	if cmds := r.Commands(); len(cmds) > 0 {
		lines = append(lines, "", ">> Room-specific commands:")
		for _, c := range cmds {
			lines = append(lines, "  "+c)
		}
	}
	return lines
}

func InventoryLine(gs *models.GameState) string {
	if len(gs.Inventory) == 0 {
		return "Inventory is empty."
	}
	return "Inventory: " + strings.Join(gs.Inventory, ", ")
}

// DescribeFlags lists the flags that are set, sorted by name.
func DescribeFlags(gs *models.GameState, prefix string) []string {
	var names []string
	for k, v := range gs.Flags {
		if v {
			names = append(names, k)
		}
	}
	if len(names) == 0 {
		return []string{prefix + "(no flags set)"}
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, k := range names {
		lines = append(lines, fmt.Sprintf("%s%s: true", prefix, k))
	}
	return lines
}
