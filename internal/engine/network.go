package engine

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/tatianab/basilisk/internal/models"
)

// Graph is an undirected adjacency table.
type Graph map[string]map[string]bool

// NewGraph builds a symmetric graph from a one-sided link list.
func NewGraph(links map[string][]string) Graph {
	g := Graph{}
	for a, bs := range links {
		for _, b := range bs {
			g.add(a, b)
		}
	}
	return g
}

func (g Graph) add(a, b string) {
	if g[a] == nil {
		g[a] = map[string]bool{}
	}
	if g[b] == nil {
		g[b] = map[string]bool{}
	}
	g[a][b] = true
	g[b][a] = true
}

func (g Graph) Linked(a, b string) bool {
	return g[a][b]
}

// Connected reports whether nodes form one component of the subgraph they
// induce with at least minLinks edges between them. The edges found are
// returned as "a-b" pairs in node order.
func (g Graph) Connected(nodes []string, minLinks int) (bool, []string) {
	var links []string
	for i, a := range nodes {
		for _, b := range nodes[i+1:] {
			if g.Linked(a, b) {
				links = append(links, a+"-"+b)
			}
		}
	}
	if len(nodes) == 0 || len(links) < minLinks {
		return false, links
	}

	in := map[string]bool{}
	for _, n := range nodes {
		in[n] = true
	}
	seen := map[string]bool{nodes[0]: true}
	queue := []string{nodes[0]}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for m := range g[n] {
			if in[m] && !seen[m] {
				seen[m] = true
				queue = append(queue, m)
			}
		}
	}
	return len(seen) == len(in), links
}

// NetworkConfig declares the nodes a player may wire together.
type NetworkConfig struct {
	Nodes     []string
	Forbidden map[string][]string
	// Allowed, when non-empty, limits links to the listed pairs.
	Allowed   map[string][]string
	Threshold int
}

type NodeState struct {
	ConnectedTo []string `yaml:"connected_to" json:"connected_to"`
	Active      bool     `yaml:"active" json:"active"`
}

type LinkStatus int

const (
	LinkConnected LinkStatus = iota
	LinkAlreadyConnected
	LinkUnknownNode
	LinkForbidden
	LinkSelf
	LinkNotConnected
	LinkDisconnected
)

type LinkOutcome struct {
	Status LinkStatus
	A, B   string
	// Activated lists endpoints that crossed the threshold with this link.
	Activated []string
	// Deactivated lists endpoints that fell below it.
	Deactivated []string
}

func (o LinkOutcome) Lines() []string {
	var lines []string
	switch o.Status {
	case LinkConnected:
		lines = append(lines, fmt.Sprintf(">> Connected %s <-> %s", o.A, o.B))
	case LinkAlreadyConnected:
		lines = append(lines, ">> Nodes already connected.")
	case LinkUnknownNode:
		lines = append(lines, ">> Invalid nodes specified.")
	case LinkForbidden:
		lines = append(lines, ">> Connection forbidden by network protocols.")
	case LinkSelf:
		lines = append(lines, ">> A node cannot link to itself.")
	case LinkNotConnected:
		lines = append(lines, ">> Nodes are not connected.")
	case LinkDisconnected:
		lines = append(lines, fmt.Sprintf(">> Disconnected %s <-> %s", o.A, o.B))
	}
	for _, n := range o.Activated {
		lines = append(lines, fmt.Sprintf(">> Node %s is now ACTIVE.", n))
	}
	for _, n := range o.Deactivated {
		lines = append(lines, fmt.Sprintf(">> Node %s has gone dormant.", n))
	}
	return lines
}

// NetworkPuzzle keeps node links in the game state under StateKey.
type NetworkPuzzle struct {
	Config   NetworkConfig
	StateKey string
}

func (p *NetworkPuzzle) known(n string) bool {
	return slices.Contains(p.Config.Nodes, n)
}

func (p *NetworkPuzzle) forbidden(a, b string) bool {
	if NewGraph(p.Config.Forbidden).Linked(a, b) {
		return true
	}
	return len(p.Config.Allowed) > 0 && !NewGraph(p.Config.Allowed).Linked(a, b)
}

// State returns the node table. Reading it never writes to the game state.
func (p *NetworkPuzzle) State(gs *models.GameState) map[string]NodeState {
	st, ok := models.Var[map[string]NodeState](gs, p.StateKey)
	out := make(map[string]NodeState, len(p.Config.Nodes))
	for _, n := range p.Config.Nodes {
		ns := NodeState{}
		if ok {
			ns = st[n]
			ns.ConnectedTo = append([]string(nil), ns.ConnectedTo...)
		}
		out[n] = ns
	}
	return out
}

func (p *NetworkPuzzle) Reset(gs *models.GameState) {
	gs.Delete(p.StateKey)
}

// Links returns the current links as a graph.
func (p *NetworkPuzzle) Links(gs *models.GameState) Graph {
	links := map[string][]string{}
	for n, ns := range p.State(gs) {
		links[n] = ns.ConnectedTo
	}
	return NewGraph(links)
}

// Active lists active nodes in configuration order.
func (p *NetworkPuzzle) Active(gs *models.GameState) []string {
	st := p.State(gs)
	var out []string
	for _, n := range p.Config.Nodes {
		if st[n].Active {
			out = append(out, n)
		}
	}
	return out
}

// Connect adds the edge a-b. Rejected links leave the state untouched.
func (p *NetworkPuzzle) Connect(gs *models.GameState, a, b string) LinkOutcome {
	out := LinkOutcome{A: a, B: b}
	switch {
	case !p.known(a) || !p.known(b):
		out.Status = LinkUnknownNode
		return out
	case a == b:
		out.Status = LinkSelf
		return out
	case p.forbidden(a, b):
		out.Status = LinkForbidden
		return out
	}

	st := p.State(gs)
	if slices.Contains(st[a].ConnectedTo, b) {
		out.Status = LinkAlreadyConnected
		return out
	}
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		ns := st[pair[0]]
		ns.ConnectedTo = append(ns.ConnectedTo, pair[1])
		sort.Strings(ns.ConnectedTo)
		if !ns.Active && len(ns.ConnectedTo) >= p.Config.Threshold {
			ns.Active = true
			out.Activated = append(out.Activated, pair[0])
		}
		st[pair[0]] = ns
	}
	models.SetVar(gs, p.StateKey, st)
	out.Status = LinkConnected
	return out
}

// Disconnect removes the edge a-b.
func (p *NetworkPuzzle) Disconnect(gs *models.GameState, a, b string) LinkOutcome {
	out := LinkOutcome{A: a, B: b}
	if !p.known(a) || !p.known(b) {
		out.Status = LinkUnknownNode
		return out
	}
	st := p.State(gs)
	if !slices.Contains(st[a].ConnectedTo, b) {
		out.Status = LinkNotConnected
		return out
	}
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		ns := st[pair[0]]
		other := pair[1]
		ns.ConnectedTo = slices.DeleteFunc(ns.ConnectedTo, func(v string) bool { return v == other })
		if ns.Active && len(ns.ConnectedTo) < p.Config.Threshold {
			ns.Active = false
			out.Deactivated = append(out.Deactivated, pair[0])
		}
		st[pair[0]] = ns
	}
	models.SetVar(gs, p.StateKey, st)
	out.Status = LinkDisconnected
	return out
}

// StatusTable renders one row per node.
func (p *NetworkPuzzle) StatusTable(gs *models.GameState) []string {
	st := p.State(gs)
	rows := make([][]string, 0, len(p.Config.Nodes))
	for _, n := range p.Config.Nodes {
		state := "dormant"
		if st[n].Active {
			state = "ACTIVE"
		}
		linked := "-"
		if len(st[n].ConnectedTo) > 0 {
			linked = strings.Join(st[n].ConnectedTo, ", ")
		}
		rows = append(rows, []string{n, state, linked})
	}
	return RenderTable([]string{"Node", "State", "Links"}, rows)
}
