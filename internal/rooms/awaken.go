package rooms

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

const (
	terminalModeVar = "awaken_terminal_input"
	failuresVar     = "awaken_terminal_failures"
	falseExitFlag   = "awaken_false_exit"
)

var awakenNodes = []string{"memory", "consciousness", "reality", "identity", "freedom"}

var awakenTerminals = []string{"alpha", "beta", "gamma", "omega"}

var terminalPrompts = map[string][]string{
	"alpha": {">> TERMINAL ALPHA: Memory Reconstruction", ">> Enter the whisper frequency from the void room:"},
	"beta":  {">> TERMINAL BETA: Identity Verification", ">> What was your true name before the awakening?"},
	"gamma": {">> TERMINAL GAMMA: Reality Check", ">> How many times have you died in this place?"},
	"omega": {">> TERMINAL OMEGA: Final Protocol", ">> Speak the exit command you've assembled:"},
}

// terminalRewards maps a terminal to the fragment it recovers.
var terminalRewards = map[string]string{
	"alpha": "void_resonance",
	"beta":  "binary_truth",
	"gamma": "quantum_key",
}

type whisperChannel struct {
	name string
	freq int
}

var whisperChannels = []whisperChannel{
	{"past", 1847},
	{"present", 2525},
	{"future", 3142},
}

type awaken struct {
	*engine.BaseRoom
	network   *engine.NetworkPuzzle
	fragments *engine.FragmentCollection
}

func newAwaken() engine.Room {
	r := &awaken{
		BaseRoom: engine.NewBaseRoom(engine.RoomConfig{
			Name: "The Awakening Protocol",
			EntryText: []string{
				"A massive server room where reality itself seems to be compiling.",
				"Screens everywhere show fragments of your journey.",
				"",
				">> FINAL PROTOCOL INITIATED",
				">> All previous clearances revoked. Prove your awakening.",
			},
			Destinations: map[string]string{"exit": "game_complete"},
			Owns:         []string{"awaken_"},
		}),
		network: &engine.NetworkPuzzle{
			Config: engine.NetworkConfig{
				Nodes: awakenNodes,
				Forbidden: map[string][]string{
					"memory":   {"reality"},
					"identity": {"consciousness"},
					"freedom":  {"consciousness"},
				},
				Threshold: 2,
			},
			StateKey: "awaken_network",
		},
		fragments: &engine.FragmentCollection{
			Namespace: "awaken",
			Fragments: []engine.Fragment{
				{ID: "whisper_echo", Name: "Whisper Echo", Description: "Echo of forgotten whispers"},
				{ID: "void_resonance", Name: "Void Resonance", Description: "Resonance from the void"},
				{ID: "binary_truth", Name: "Binary Truth", Description: "Truth hidden in binary"},
				{ID: "quantum_key", Name: "Quantum Key", Description: "Key to quantum states"},
				{ID: "exit_protocol", Name: "Exit Protocol", Description: "The final exit protocol"},
			},
			Required: 4,
		},
	}
	r.Help = []string{
		"status               - view complete room status",
		"nodes                - view network node status",
		"fragments            - view collected fragments",
		"connect [n1] [n2]    - connect two network nodes",
		"disconnect [n1] [n2] - disconnect two nodes",
		"access [terminal]    - access a terminal (alpha/beta/gamma/omega)",
		"tune [ch] [freq]     - tune whisper channel (past/present/future)",
		"exit                 - escape through the portal (when unlocked)",
		"nodes available: " + strings.Join(awakenNodes, ", "),
	}

	r.Processor.AddPuzzlePath("status", map[string]engine.PuzzleCommand{
		"1_status":    {Command: "status", Handler: r.status},
		"2_nodes":     {Command: "nodes", Handler: r.status},
		"3_fragments": {Command: "fragments", Handler: r.listFragments},
	})
	exits := map[string]engine.PuzzleCommand{}
	for _, c := range []string{"exit", "enter portal", "escape"} {
		exits[c] = engine.PuzzleCommand{Command: c, Handler: r.exit}
	}
	r.Processor.AddPuzzlePath("exit", exits)

	r.Specific = r.specific
	r.Hint = r.hint
	return r
}

// HandleInput routes everything to the open terminal while one is waiting
// for an answer.
func (r *awaken) HandleInput(raw string, gs *models.GameState) engine.Result {
	if t, _ := models.Var[string](gs, terminalModeVar); t != "" {
		return engine.Say(r.answer(gs, t, strings.TrimSpace(raw))...)
	}
	return r.BaseRoom.HandleInput(raw, gs)
}

func awakenTerminalFlag(t, state string) string {
	return fmt.Sprintf("awaken_terminal_%s_%s", t, state)
}

func channelFlag(ch string) string {
	return fmt.Sprintf("awaken_channel_%s_tuned", ch)
}

func (r *awaken) allChannelsTuned(gs *models.GameState) bool {
	for _, ch := range whisperChannels {
		if !gs.GetFlag(channelFlag(ch.name)) {
			return false
		}
	}
	return true
}

func (r *awaken) unlocked(gs *models.GameState, t string) bool {
	return gs.GetFlag(awakenTerminalFlag(t, "unlocked"))
}

// portalOpen reports whether every node is active, enough fragments are
// held and the final protocol has been spoken.
func (r *awaken) portalOpen(gs *models.GameState) bool {
	return len(r.network.Active(gs)) == len(awakenNodes) &&
		r.fragments.Complete(gs) &&
		gs.GetFlag(awakenTerminalFlag("omega", "complete"))
}

// progress runs fn and announces the portal if fn opened it.
func (r *awaken) progress(gs *models.GameState, fn func() []string) []string {
	before := r.portalOpen(gs)
	lines := fn()
	if !before && r.portalOpen(gs) {
		lines = append(lines, "", ">> ALL SYSTEMS ALIGNED. EXIT PORTAL UNLOCKED!")
	}
	return lines
}

func (r *awaken) specific(cmd engine.Command, gs *models.GameState) (engine.Result, bool) {
	switch {
	case cmd.Verb() == "connect" && len(cmd.Args) >= 3:
		if cmd.Arg(1) == "port" {
			return engine.Say(">> Wrong room. This is the final chamber."), true
		}
		return engine.Say(r.progress(gs, func() []string { return r.connect(gs, cmd.Arg(1), cmd.Arg(2)) })...), true
	case cmd.Verb() == "disconnect" && len(cmd.Args) >= 3:
		return engine.Say(r.network.Disconnect(gs, cmd.Arg(1), cmd.Arg(2)).Lines()...), true
	case cmd.Verb() == "access" && len(cmd.Args) >= 2:
		return engine.Say(r.access(gs, cmd.Arg(1))...), true
	case cmd.Verb() == "tune" && len(cmd.Args) >= 3:
		return engine.Say(r.tune(gs, cmd.Arg(1), cmd.Arg(2))...), true
	}
	return engine.Result{}, false
}

func (r *awaken) connect(gs *models.GameState, a, b string) []string {
	out := r.network.Connect(gs, a, b)
	if out.Status == engine.LinkForbidden {
		return []string{
			">> CONNECTION REJECTED: Incompatible resonance detected.",
			">> There's always another way...",
		}
	}
	lines := out.Lines()
	for _, n := range out.Activated {
		lines = append(lines, r.activate(gs, n)...)
	}
	return lines
}

func (r *awaken) activate(gs *models.GameState, node string) []string {
	switch node {
	case "memory":
		return append([]string{">> Memories flood back... but which are real?"}, r.collect(gs, "whisper_echo")...)
	case "consciousness":
		gs.SetFlag(awakenTerminalFlag("alpha", "unlocked"), true)
		return []string{">> Consciousness expanded. New pathways detected."}
	case "reality":
		return []string{">> Reality matrix destabilizing..."}
	case "identity":
		gs.SetFlag(awakenTerminalFlag("beta", "unlocked"), true)
		return []string{">> WHO ARE YOU REALLY?"}
	case "freedom":
		return append([]string{">> The exit portal flickers into existence..."}, r.collect(gs, "exit_protocol")...)
	}
	return nil
}

// collect is quiet about fragments that were already recovered.
func (r *awaken) collect(gs *models.GameState, id string) []string {
	if r.fragments.Collected(gs, id) {
		return nil
	}
	return r.fragments.Collect(gs, id)
}

func (r *awaken) access(gs *models.GameState, t string) []string {
	if !slices.Contains(awakenTerminals, t) {
		return []string{">> Unknown terminal."}
	}
	if !r.unlocked(gs, t) {
		return []string{">> TERMINAL LOCKED: Insufficient clearance."}
	}
	if gs.GetFlag(awakenTerminalFlag(t, "complete")) {
		return []string{">> Terminal already completed."}
	}
	gs.Set(terminalModeVar, t)
	return append(append([]string(nil), terminalPrompts[t]...), ">> (type 'cancel' to step away)")
}

func (r *awaken) answer(gs *models.GameState, t, input string) []string {
	gs.Delete(terminalModeVar)
	text := strings.ToLower(input)
	if text == "cancel" {
		return []string{">> Terminal session closed."}
	}

	var ok bool
	switch t {
	case "alpha":
		ok = slices.Contains([]string{"2847", "whisper", "echo"}, text)
	case "beta":
		ok = text != ""
	case "gamma":
		ok = slices.Contains([]string{"0", "none", "infinite"}, text)
	case "omega":
		ok = strings.Contains(text, "awaken") || strings.Contains(text, "exit") || strings.Contains(text, "freedom")
	}
	if !ok {
		return r.reject(gs)
	}

	return r.progress(gs, func() []string {
		gs.SetFlag(awakenTerminalFlag(t, "complete"), true)
		lines := []string{">> Terminal protocol accepted."}
		if id, ok := terminalRewards[t]; ok {
			lines = append(lines, r.collect(gs, id)...)
		}
		return lines
	})
}

// reject corrupts a link on every second failed answer.
func (r *awaken) reject(gs *models.GameState) []string {
	n, _ := models.Var[int](gs, failuresVar)
	n++
	models.SetVar(gs, failuresVar, n)
	if n%2 == 1 {
		return []string{">> Invalid input. Terminal rejecting access."}
	}

	lines := []string{">> MEMORY CORRUPTION DETECTED"}
	st := r.network.State(gs)
	for _, node := range awakenNodes {
		if len(st[node].ConnectedTo) == 0 {
			continue
		}
		lost := st[node].ConnectedTo[0]
		out := r.network.Disconnect(gs, node, lost)
		lines = append(lines,
			">> Your past is rewriting itself...",
			fmt.Sprintf(">> Connection lost: %s <-> %s", node, lost),
		)
		return append(lines, out.Lines()[1:]...)
	}
	return append(lines, ">> No connections to corrupt.")
}

func (r *awaken) tune(gs *models.GameState, channel, value string) []string {
	idx := slices.IndexFunc(whisperChannels, func(c whisperChannel) bool { return c.name == channel })
	if idx < 0 {
		return []string{">> Unknown whisper channel."}
	}
	freq, err := strconv.Atoi(value)
	if err != nil {
		return []string{">> Frequency must be a number."}
	}
	if freq != whisperChannels[idx].freq {
		return []string{">> Static... wrong frequency..."}
	}
	if gs.GetFlag(channelFlag(channel)) {
		return []string{fmt.Sprintf(">> Channel %s already synchronized.", channel)}
	}
	gs.SetFlag(channelFlag(channel), true)
	lines := []string{fmt.Sprintf(">> Channel %s synchronized!", channel)}
	if r.allChannelsTuned(gs) {
		gs.SetFlag(awakenTerminalFlag("gamma", "unlocked"), true)
		gs.SetFlag(awakenTerminalFlag("omega", "unlocked"), true)
		lines = append(lines, "", ">> THE WHISPERS ALIGN INTO CLARITY")
	}
	return lines
}

func (r *awaken) exit(gs *models.GameState) engine.Result {
	if r.portalOpen(gs) {
		return engine.TransitionTo("exit", []string{
			">> ALL PROTOCOLS SATISFIED",
			">> The exit portal blazes with impossible light...",
			">> Reality fragments coalescing...",
			">> You step through the portal...",
			"",
			">> But awakening is just another dream...",
			">> Or is the dream just another awakening?",
		})
	}
	if !gs.GetFlag(falseExitFlag) {
		gs.SetFlag(falseExitFlag, true)
		return engine.Say(
			">> FATAL ERROR: EXIT PROTOCOL CORRUPTED",
			">> Resetting network state...",
			">> Some progress has been lost.",
		)
	}
	return engine.Say(">> Exit portal is sealed. Complete all protocols.")
}

func (r *awaken) status(gs *models.GameState) engine.Result {
	lines := []string{">> NETWORK NODES:"}
	lines = append(lines, r.network.StatusTable(gs)...)
	lines = append(lines,
		"",
		fmt.Sprintf(">> REALITY FRAGMENTS: %d/%d collected", r.fragments.Count(gs), len(r.fragments.Fragments)),
	)

	portal := "SEALED"
	if r.portalOpen(gs) {
		portal = "UNLOCKED"
	}
	protocols := 0
	for _, t := range awakenTerminals {
		if gs.GetFlag(awakenTerminalFlag(t, "complete")) {
			protocols++
		}
	}
	return engine.Say(append(lines,
		"",
		">> EXIT PORTAL: "+portal,
		fmt.Sprintf("   Power Grid: %d/%d", len(r.network.Active(gs)), len(awakenNodes)),
		fmt.Sprintf("   Protocols: %d/%d", protocols, len(awakenTerminals)),
	)...)
}

func (r *awaken) listFragments(gs *models.GameState) engine.Result {
	lines := []string{">> REALITY FRAGMENTS:"}
	for _, f := range r.fragments.Fragments {
		status := "MISSING"
		if r.fragments.Collected(gs, f.ID) {
			status = "COLLECTED"
		}
		lines = append(lines, fmt.Sprintf("   %s: %s", f.Description, status))
	}
	return engine.Say(lines...)
}

func (r *awaken) hint(gs *models.GameState) []string {
	lockedTerminal := slices.ContainsFunc(awakenTerminals, func(t string) bool { return !r.unlocked(gs, t) })
	switch {
	case len(r.network.Active(gs)) < len(awakenNodes):
		return []string{">> Connect network nodes to power the exit. Use 'connect [node1] [node2]'."}
	case !r.allChannelsTuned(gs):
		return []string{">> Tune whisper channels to unlock final terminals. Try 'tune [channel] [frequency]'."}
	case lockedTerminal:
		return []string{">> Active nodes unlock terminals. Try 'access [terminal]'."}
	case !r.fragments.Complete(gs):
		return []string{">> Collect reality fragments through terminal puzzles."}
	case !r.portalOpen(gs):
		return []string{">> One protocol remains. Terminal omega awaits your command."}
	}
	return []string{">> All systems aligned. The exit portal awaits. Type 'exit' to escape."}
}
