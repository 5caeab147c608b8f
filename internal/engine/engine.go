package engine

import (
	"fmt"
	"io"
	"log"

	"github.com/tatianab/basilisk/internal/models"
)

// Engine owns the game state and routes terminal input to the active room.
type Engine struct {
	rooms      *Registry
	state      *models.GameState
	start      string
	debug      bool
	logger     *log.Logger
	inGame     bool
	resetArmed bool
}

type Option func(*Engine)

func WithStartRoom(id string) Option {
	return func(e *Engine) { e.start = id }
}

// WithDebug enables the boot.debug commands.
func WithDebug(enabled bool) Option {
	return func(e *Engine) { e.debug = enabled }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithState resumes from an existing state instead of a fresh one.
func WithState(gs *models.GameState) Option {
	return func(e *Engine) { e.state = gs }
}

func New(rooms *Registry, opts ...Option) *Engine {
	e := &Engine{
		rooms:  rooms,
		start:  "boot",
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state == nil {
		e.state = models.NewGameState(e.start)
	}
	e.state.Normalize()
	e.state.SetRoomIndex(rooms)
	return e
}

func (e *Engine) State() *models.GameState { return e.state }

func (e *Engine) InGameMode() bool { return e.inGame }

func (e *Engine) RoomExists(id string) bool { return e.rooms.Exists(id) }

func (e *Engine) Rooms() *Registry { return e.rooms }

// CurrentRoomTitle is the display name of the active room.
func (e *Engine) CurrentRoomTitle() string {
	return e.rooms.Title(e.state.CurrentRoomID)
}

// EnterGameMode enters the current room, keeping any state from an earlier
// session.
func (e *Engine) EnterGameMode() []string {
	e.inGame = true
	if !e.rooms.Exists(e.state.CurrentRoomID) {
		e.state.ChangeRoom(e.start)
	}
	e.logger.Printf("game mode on, room=%s", e.state.CurrentRoomID)
	lines := []string{
		"=== GAME MODE ACTIVATED ===",
		"Welcome to the adventure!",
		"Type 'help' for commands",
		"",
	}
	return append(lines, e.enter()...)
}

// ExitGameMode leaves the state untouched so the next EnterGameMode resumes.
func (e *Engine) ExitGameMode() []string {
	e.inGame = false
	e.resetArmed = false
	e.logger.Printf("game mode off, room=%s", e.state.CurrentRoomID)
	return []string{
		"=== GAME MODE DEACTIVATED ===",
		"Returning to terminal mode...",
		"",
	}
}

// ProcessGameCommand runs one line of player input and returns the lines to
// display.
func (e *Engine) ProcessGameCommand(raw string) []string {
	cmd := ParseCommand(raw)
	armed := e.resetArmed
	e.resetArmed = false

	if isRestart(cmd) {
		return e.restart(cmd, armed)
	}
	if e.debug && cmd.Verb() == "boot.debug" {
		return e.bootDebug(cmd)
	}

	room, err := e.rooms.Open(e.state.CurrentRoomID)
	if err != nil {
		e.logger.Printf("process: %v", err)
		return []string{fmt.Sprintf(">> Error: Room '%s' not found!", e.state.CurrentRoomID)}
	}
	return e.apply(room.HandleInput(raw, e.state))
}

func (e *Engine) apply(res Result) []string {
	lines := append([]string(nil), res.Lines...)
	if res.Next == "" || res.Next == e.state.CurrentRoomID {
		return lines
	}
	if !e.rooms.Exists(res.Next) {
		e.logger.Printf("transition from %s to unknown room %q", e.state.CurrentRoomID, res.Next)
		return append(lines, fmt.Sprintf(">> Error: Room '%s' not found!", res.Next))
	}
	e.logger.Printf("transition %s -> %s", e.state.CurrentRoomID, res.Next)
	e.state.ChangeRoom(res.Next)
	return append(lines, e.enter()...)
}

func (e *Engine) enter() []string {
	room, err := e.rooms.Open(e.state.CurrentRoomID)
	if err != nil {
		e.logger.Printf("enter: %v", err)
		return []string{fmt.Sprintf(">> Error: Room '%s' not found!", e.state.CurrentRoomID)}
	}
	return room.Enter(e.state)
}

// Snapshot returns a copy of the state suitable for saving.
func (e *Engine) Snapshot() (*models.GameState, error) {
	return e.state.Clone()
}

// Restore installs a loaded state and enters its room.
func (e *Engine) Restore(gs *models.GameState) []string {
	gs.Normalize()
	gs.SetRoomIndex(e.rooms)
	if !e.rooms.Exists(gs.CurrentRoomID) {
		e.logger.Printf("restore: unknown room %q, using %s", gs.CurrentRoomID, e.start)
		gs.ChangeRoom(e.start)
	}
	e.state = gs
	e.resetArmed = false
	e.logger.Printf("state restored, room=%s", gs.CurrentRoomID)
	return e.enter()
}
