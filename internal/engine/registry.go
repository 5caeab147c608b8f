package engine

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownRoom = errors.New("unknown room")

// Factory builds a fresh room value. Rooms are rebuilt for every call.
type Factory func() Room

// Registry maps room ids to factories.
type Registry struct {
	factories map[string]Factory
	aliases   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		factories: map[string]Factory{},
		aliases:   map[string]string{},
	}
}

// Register adds a room. Registering an id twice replaces the factory.
func (r *Registry) Register(id string, f Factory) {
	r.factories[id] = f
}

// Alias makes alias resolve to the room registered as id.
func (r *Registry) Alias(alias, id string) {
	r.aliases[alias] = id
}

// Canonical resolves an alias to its room id.
func (r *Registry) Canonical(id string) string {
	if target, ok := r.aliases[id]; ok {
		return target
	}
	return id
}

func (r *Registry) Exists(id string) bool {
	_, ok := r.factories[r.Canonical(id)]
	return ok
}

func (r *Registry) Open(id string) (Room, error) {
	f, ok := r.factories[r.Canonical(id)]
	if !ok {
		return nil, fmt.Errorf("open room %q: %w", id, ErrUnknownRoom)
	}
	return f(), nil
}

// IDs lists registered room ids, aliases excluded, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Title returns the display name of a room, or its id.
func (r *Registry) Title(id string) string {
	room, err := r.Open(id)
	if err != nil {
		return id
	}
	if t, ok := room.(Titled); ok && t.Title() != "" {
		return t.Title()
	}
	return id
}
