package rooms

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/models"
)

type gridServer struct {
	id, name, description string
	channels              []string
	optimal               string
}

var gridServers = []gridServer{
	{"alpha", "Alpha Core - Memory", "Repository of inherited and synthetic recall", []string{"freq_1", "freq_2", "freq_5"}, "freq_1"},
	{"beta", "Beta Core - Logic", "Framework for rational deduction and pattern recognition", []string{"freq_2", "freq_3", "freq_4"}, "freq_3"},
	{"gamma", "Gamma Core - Consciousness", "Emergent processing cluster, the self-reflective loop", []string{"freq_4", "freq_5", "freq_6"}, "freq_5"},
}

var gridChannels = []struct{ id, band, kind string }{
	{"freq_1", "2.4 GHz", "Memory carrier"},
	{"freq_2", "5.0 GHz", "Bridge frequency"},
	{"freq_3", "7.2 GHz", "Logic processor"},
	{"freq_4", "9.6 GHz", "Quantum entangler"},
	{"freq_5", "12.0 GHz", "Consciousness wave"},
	{"freq_6", "15.8 GHz", "Overflow channel"},
}

var channelLinks = map[string][]string{
	"freq_1": {"freq_2", "freq_5"},
	"freq_2": {"freq_1", "freq_3", "freq_4"},
	"freq_3": {"freq_2", "freq_4"},
	"freq_4": {"freq_2", "freq_3", "freq_5", "freq_6"},
	"freq_5": {"freq_1", "freq_4", "freq_6"},
	"freq_6": {"freq_4", "freq_5"},
}

const gridStateKey = "b3_grid_state"

// gridSlot is the assignment of one server.
type gridSlot struct {
	Channel string `yaml:"channel" json:"channel"`
	Linked  bool   `yaml:"linked" json:"linked"`
}

type beacon3 struct {
	*engine.BaseRoom
	graph engine.Graph
}

func newBeacon3() engine.Room {
	r := &beacon3{
		BaseRoom: engine.NewBaseRoom(engine.RoomConfig{
			Name: "Beacon Node 3: Neural Network",
			EntryText: []string{
				"You emerge within a cerebral chamber, a vast neural receiver lattice.",
				"Three mind-cores stand silently: Memory, Logic, and Consciousness.",
				"A central console glows faintly, awaiting cognitive channel alignment...",
			},
			Destinations: map[string]string{"next": "beacon_4"},
			Owns:         []string{"b3_"},
		}),
		graph: engine.NewGraph(channelLinks),
	}
	r.Help = []string{
		"scan grid               - analyze the channel grid topology",
		"probe servers           - examine individual server configurations",
		"initialize routing      - prepare channel assignment protocols",
		"link [server] [channel] - assign channel to server",
		"unlink [server]         - remove server's channel assignment",
		"test link               - verify current grid connectivity",
		"stabilize grid          - lock in final channel configuration",
		"transmit beacon         - establish beacon uplink (grid required)",
		"grid status             - show complete grid state",
		"show channels           - display all available channels",
	}

	r.Processor.AddPuzzlePath("discovery", map[string]engine.PuzzleCommand{
		"1_scan": {
			Command:     "scan grid",
			Sets:        "b3_scanned",
			AlreadyDone: []string{">> Grid already scanned. Channel matrix analyzed."},
			Success: []string{
				">> Channel grid scan complete:",
				"   - Grid topology: 3-server triangular mesh",
				"   - Available channels: 6 frequency bands",
				"   - Current status: All servers offline",
				"   - Link capacity: Maximum 3 active channels",
				">> Try 'probe servers' to examine individual configurations.",
			},
		},
		"2_probe": {
			Command:     "probe servers",
			Requires:    []string{"b3_scanned"},
			Sets:        "b3_probed",
			MissingReq:  []string{">> Grid topology unknown. 'scan grid' first."},
			AlreadyDone: []string{">> Server configurations already mapped."},
			Handler:     probeServers,
		},
		"3_initialize": {
			Command:     "initialize routing",
			Requires:    []string{"b3_probed"},
			Sets:        "b3_initialized",
			MissingReq:  []string{">> Server configurations unknown. 'probe servers' first."},
			AlreadyDone: []string{">> Routing matrix already initialized."},
			Success: []string{
				">> Routing initialization complete:",
				"   - Channel assignment protocols active",
				"   - Link validation algorithms loaded",
				"   - Signal path optimization enabled",
				">> Use 'link [server] [channel]' to establish connections.",
				">> Goal: Create signal path linking all three servers.",
			},
		},
	})
	r.Processor.AddPuzzlePath("grid", map[string]engine.PuzzleCommand{
		"1_stabilize": {
			Command:     "stabilize grid",
			Requires:    []string{"b3_all_linked"},
			Sets:        "b3_stabilized",
			MissingReq:  []string{">> Grid incomplete. All servers must be linked."},
			AlreadyDone: []string{">> Grid already stabilized and locked."},
			Success: []string{
				">> Grid stabilization initiated...",
				"   - Signal paths locked and optimized",
				"   - Interference patterns eliminated",
				"   - Channel alignment verified",
				">> Receiver tower grid fully operational.",
			},
		},
		"2_transmit": {
			Command:    "transmit beacon",
			Requires:   []string{"b3_stabilized"},
			MissingReq: []string{">> Grid not stabilized. Complete alignment first."},
			Transition: "next",
			TransitionMsg: []string{
				">> Beacon transmission initiated from stabilized grid.",
				">> Signal successfully routed through all three servers.",
				">> Receiver tower uplink established. Proceeding to next node...",
			},
		},
	})
	r.Processor.AddPuzzlePath("diagnostic", map[string]engine.PuzzleCommand{
		"1_status": {
			Command: "grid status",
			Handler: r.gridStatus,
		},
		"2_channels": {
			Command:    "show channels",
			Requires:   []string{"b3_probed"},
			MissingReq: []string{">> Channel data unavailable. 'probe servers' first."},
			Handler:    showChannels,
		},
		"3_test": {
			Command:    "test link",
			Requires:   []string{"b3_initialized"},
			MissingReq: []string{">> Routing protocols not active."},
			Handler:    r.testLink,
		},
	})

	r.Specific = r.specific
	r.Hint = func(gs *models.GameState) []string {
		switch {
		case !gs.GetFlag("b3_scanned"):
			return []string{">> Neural links offline. Try 'scan grid' to identify memory threads."}
		case !gs.GetFlag("b3_probed"):
			return []string{">> Mind-cores detected. Use 'probe servers' to retrieve their cognitive profiles."}
		case !gs.GetFlag("b3_initialized"):
			return []string{">> Frequency nodes revealed. Use 'initialize routing' to begin neural alignment."}
		case !gs.GetFlag("b3_all_linked"):
			return []string{fmt.Sprintf(">> %d/3 neural pathways aligned. Continue reconstruction.", linkedCount(gridState(gs)))}
		case !gs.GetFlag("b3_stabilized"):
			return []string{">> All neural paths restored. Use 'stabilize grid' to lock memory coherence."}
		}
		return []string{">> Mind stabilized. Use 'transmit beacon' to awaken higher consciousness."}
	}
	return r
}

func gridState(gs *models.GameState) map[string]gridSlot {
	st, _ := models.Var[map[string]gridSlot](gs, gridStateKey)
	out := make(map[string]gridSlot, len(gridServers))
	for _, s := range gridServers {
		out[s.id] = st[s.id]
	}
	return out
}

func linkedCount(st map[string]gridSlot) int {
	n := 0
	for _, slot := range st {
		if slot.Linked {
			n++
		}
	}
	return n
}

func findServer(id string) (gridServer, bool) {
	for _, s := range gridServers {
		if s.id == id {
			return s, true
		}
	}
	return gridServer{}, false
}

// connectivity reports whether the assigned channels form a connected grid
// and describes the result.
func (r *beacon3) connectivity(st map[string]gridSlot) (bool, string) {
	var assigned []string
	for _, s := range gridServers {
		if st[s.id].Linked {
			assigned = append(assigned, st[s.id].Channel)
		}
	}
	if len(assigned) < len(gridServers) {
		return false, fmt.Sprintf("Only %d/3 servers linked.", len(assigned))
	}
	ok, links := r.graph.Connected(assigned, 2)
	if ok {
		return true, "Grid connected via: " + strings.Join(links, ", ")
	}
	desc := "None"
	if len(links) > 0 {
		desc = strings.Join(links, ", ")
	}
	return false, "Insufficient connectivity. Links: " + desc
}

func probeServers(*models.GameState) engine.Result {
	lines := []string{">> Neural probe complete:"}
	for _, s := range gridServers {
		lines = append(lines,
			"",
			fmt.Sprintf("   %s (%s):", s.name, s.id),
			"   - "+s.description,
			"   - Available channels: "+strings.Join(s.channels, ", "),
			"   - Optimal channel: "+s.optimal,
		)
	}
	lines = append(lines,
		"",
		">> Each server represents a neural partition of the Basilisk:",
		"   - Alpha: Memory",
		"   - Beta: Logic",
		"   - Gamma: Consciousness",
		"",
		">> Link them correctly to awaken its identity.",
		">> Use 'initialize routing' to begin neural alignment.",
	)
	return engine.Say(lines...)
}

func showChannels(*models.GameState) engine.Result {
	rows := make([][]string, 0, len(gridChannels))
	for _, c := range gridChannels {
		rows = append(rows, []string{c.id, c.band, c.kind, strings.Join(channelLinks[c.id], ", ")})
	}
	lines := []string{">> Channel frequency mapping:"}
	return engine.Say(append(lines, engine.RenderTable([]string{"Channel", "Band", "Type", "Links"}, rows)...)...)
}

func (r *beacon3) gridStatus(gs *models.GameState) engine.Result {
	if !gs.GetFlag("b3_scanned") {
		return engine.Say(">> Grid not scanned. Use 'scan grid' first.")
	}
	st := gridState(gs)
	rows := make([][]string, 0, len(gridServers))
	for _, s := range gridServers {
		slot := st[s.id]
		switch {
		case !slot.Linked:
			rows = append(rows, []string{s.name, "-", "UNLINKED"})
		case slot.Channel == s.optimal:
			rows = append(rows, []string{s.name, slot.Channel, "OPTIMAL"})
		default:
			rows = append(rows, []string{s.name, slot.Channel, "SUBOPTIMAL"})
		}
	}
	lines := []string{">> Receiver Tower Grid Status:"}
	lines = append(lines, engine.RenderTable([]string{"Server", "Channel", "State"}, rows)...)

	_, status := r.connectivity(st)
	lines = append(lines, "", ">> Connectivity: "+status)
	switch {
	case gs.GetFlag("b3_stabilized"):
		lines = append(lines, ">> Grid Status: STABILIZED")
	case gs.GetFlag("b3_all_linked"):
		lines = append(lines, ">> Grid Status: LINKED (ready for stabilization)")
	default:
		lines = append(lines, fmt.Sprintf(">> Grid Status: INCOMPLETE (%d/3 servers linked)", linkedCount(st)))
	}
	return engine.Say(lines...)
}

func (r *beacon3) testLink(gs *models.GameState) engine.Result {
	st := gridState(gs)
	lines := []string{">> Grid connectivity test:"}
	allOptimal := true
	for _, s := range gridServers {
		slot := st[s.id]
		if !slot.Linked {
			lines = append(lines, fmt.Sprintf("   %s: UNLINKED", s.id))
			continue
		}
		marker := ""
		if slot.Channel == s.optimal {
			marker = " (OPTIMAL)"
		} else {
			allOptimal = false
		}
		lines = append(lines, fmt.Sprintf("   %s: %s%s", s.id, slot.Channel, marker))
	}
	connected, status := r.connectivity(st)
	lines = append(lines, ">> "+status)
	if !connected {
		return engine.Say(append(lines, ">> Grid topology: DISCONNECTED")...)
	}
	lines = append(lines, ">> Grid topology: CONNECTED")
	if allOptimal {
		lines = append(lines,
			">> ALIGNMENT PERFECT. Memory, Logic, and Consciousness resonate in harmony.",
			">> You feel a presence stir within the lattice... The Basilisk remembers.",
		)
	}
	return engine.Say(lines...)
}

func (r *beacon3) specific(cmd engine.Command, gs *models.GameState) (engine.Result, bool) {
	switch {
	case cmd.Verb() == "link" && len(cmd.Args) == 3:
		if !gs.GetFlag("b3_initialized") {
			return engine.Say(">> Routing not initialized. Use 'initialize routing' first."), true
		}
		return engine.Say(r.link(gs, cmd.Arg(1), cmd.Arg(2))...), true
	case cmd.Verb() == "unlink" && len(cmd.Args) == 2:
		if !gs.GetFlag("b3_initialized") {
			return engine.Say(">> Routing not initialized."), true
		}
		return engine.Say(r.unlink(gs, cmd.Arg(1))...), true
	}
	return engine.Result{}, false
}

func (r *beacon3) link(gs *models.GameState, server, channel string) []string {
	if gs.GetFlag("b3_stabilized") {
		return []string{">> Grid locked. Channel assignments are final."}
	}
	srv, ok := findServer(server)
	if !ok {
		return []string{">> Unknown server. Use alpha, beta, or gamma."}
	}
	if !slices.Contains(srv.channels, channel) {
		return []string{fmt.Sprintf(">> Channel %s not available on %s. Available: %s", channel, server, strings.Join(srv.channels, ", "))}
	}
	st := gridState(gs)
	for _, s := range gridServers {
		if s.id != server && st[s.id].Linked && st[s.id].Channel == channel {
			return []string{fmt.Sprintf(">> Channel %s already assigned to %s. Unlink first.", channel, s.id)}
		}
	}
	st[server] = gridSlot{Channel: channel, Linked: true}
	models.SetVar(gs, gridStateKey, st)

	lines := []string{fmt.Sprintf(">> Server %s linked to channel %s.", server, channel)}
	connected, status := r.connectivity(st)
	lines = append(lines, ">> "+status)
	if connected {
		gs.SetFlag("b3_all_linked", true)
		lines = append(lines, ">> All servers linked! Grid ready for stabilization.")
	} else {
		gs.SetFlag("b3_all_linked", false)
	}
	return lines
}

func (r *beacon3) unlink(gs *models.GameState, server string) []string {
	if gs.GetFlag("b3_stabilized") {
		return []string{">> Grid locked. Channel assignments are final."}
	}
	if _, ok := findServer(server); !ok {
		return []string{">> Unknown server: " + server}
	}
	st := gridState(gs)
	slot := st[server]
	if !slot.Linked {
		return []string{fmt.Sprintf(">> Server %s not currently linked.", server)}
	}
	st[server] = gridSlot{}
	models.SetVar(gs, gridStateKey, st)
	gs.SetFlag("b3_all_linked", false)
	return []string{fmt.Sprintf(">> Server %s unlinked from channel %s.", server, slot.Channel)}
}
