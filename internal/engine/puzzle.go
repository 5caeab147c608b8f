package engine

import (
	"sort"

	"github.com/tatianab/basilisk/internal/models"
)

var (
	defaultSuccess     = []string{">> Command completed."}
	defaultAlreadyDone = []string{">> Already completed."}
	defaultMissingReq  = []string{">> Requirements not met."}
)

// Result is what a room hands back for one command. An empty Next means
// stay in the current room.
type Result struct {
	Next  string
	Lines []string
}

// Handler computes the output of a command that cannot be static text.
type Handler func(gs *models.GameState) Result

// PuzzleCommand declares one fixed player command: its prerequisites, the
// flag it sets, what it prints and where it leads.
type PuzzleCommand struct {
	Command       string
	Requires      []string
	Sets          string
	AlreadyDone   []string
	MissingReq    []string
	Success       []string
	Handler       Handler
	Transition    string
	TransitionMsg []string
}

type puzzlePath struct {
	name     string
	commands []*PuzzleCommand
}

// Processor resolves input lines against the puzzle commands of a room.
type Processor struct {
	destinations map[string]string
	paths        []puzzlePath
	index        map[string]*PuzzleCommand
}

func NewProcessor(destinations map[string]string) *Processor {
	return &Processor{
		destinations: destinations,
		index:        map[string]*PuzzleCommand{},
	}
}

// AddPuzzlePath registers a named group of commands. Path names only group
// commands; lookup is by command text across every path, and the first
// registration of a command text wins.
func (p *Processor) AddPuzzlePath(name string, commands map[string]PuzzleCommand) {
	keys := make([]string, 0, len(commands))
	for k := range commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	path := puzzlePath{name: name}
	for _, k := range keys {
		pc := commands[k]
		pc.Command = Normalize(pc.Command)
		if pc.Command == "" {
			continue
		}
		ptr := &pc
		path.commands = append(path.commands, ptr)
		if _, dup := p.index[pc.Command]; !dup {
			p.index[pc.Command] = ptr
		}
	}
	p.paths = append(p.paths, path)
}

// Commands lists every registered command text in registration order.
func (p *Processor) Commands() []string {
	var out []string
	for _, path := range p.paths {
		for _, pc := range path.commands {
			out = append(out, pc.Command)
		}
	}
	return out
}

// Destination resolves a logical exit name. Unknown names are literal room ids.
func (p *Processor) Destination(name string) string {
	if dest, ok := p.destinations[name]; ok {
		return dest
	}
	return name
}

// Resolve runs the command matching raw. The boolean is false when no
// puzzle command matches, so the room can try its own parsing.
func (p *Processor) Resolve(raw string, gs *models.GameState) (Result, bool) {
	pc, ok := p.index[Normalize(raw)]
	if !ok {
		return Result{}, false
	}
	return p.execute(pc, gs), true
}

func (p *Processor) execute(pc *PuzzleCommand, gs *models.GameState) Result {
	for _, req := range pc.Requires {
		if !gs.GetFlag(req) {
			return Result{Lines: linesOr(pc.MissingReq, defaultMissingReq)}
		}
	}
	if pc.Sets != "" && gs.GetFlag(pc.Sets) {
		return Result{Lines: linesOr(pc.AlreadyDone, defaultAlreadyDone)}
	}

	var res Result
	if pc.Handler != nil {
		res = pc.Handler(gs)
		res.Lines = append([]string(nil), res.Lines...)
	} else if len(pc.Success) > 0 || pc.Transition == "" {
		res.Lines = linesOr(pc.Success, defaultSuccess)
	}
	if pc.Sets != "" {
		gs.SetFlag(pc.Sets, true)
	}
	if pc.Transition != "" {
		t := TransitionTo(p.Destination(pc.Transition), pc.TransitionMsg)
		res.Next = t.Next
		res.Lines = append(res.Lines, t.Lines...)
	}
	return res
}

func linesOr(lines, def []string) []string {
	if len(lines) == 0 {
		return append([]string(nil), def...)
	}
	return append([]string(nil), lines...)
}
