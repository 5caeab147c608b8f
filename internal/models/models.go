package models

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// RoomIndex answers whether a room id can be loaded.
type RoomIndex interface {
	Exists(id string) bool
}

// GameState is the single mutable world state of a play session.
type GameState struct {
	Flags         map[string]bool `yaml:"flags"`
	Variables     map[string]any  `yaml:"variables"`
	Inventory     []string        `yaml:"inventory"`
	CurrentRoomID string          `yaml:"current_room"`
	PlayerName    string          `yaml:"player_name"`
	DebugMode     bool            `yaml:"debug_mode"`

	rooms RoomIndex
}

// NewGameState returns an empty state positioned in startRoom.
func NewGameState(startRoom string) *GameState {
	return &GameState{
		Flags:         map[string]bool{},
		Variables:     map[string]any{},
		Inventory:     []string{},
		CurrentRoomID: startRoom,
	}
}

// SetRoomIndex attaches the registry consulted by RoomExists.
func (s *GameState) SetRoomIndex(ix RoomIndex) {
	s.rooms = ix
}

func (s *GameState) GetFlag(name string) bool {
	return s.Flags[name]
}

func (s *GameState) SetFlag(name string, value bool) {
	if s.Flags == nil {
		s.Flags = map[string]bool{}
	}
	s.Flags[name] = value
}

// ClearFlag removes a flag and reports whether it existed.
func (s *GameState) ClearFlag(name string) bool {
	if _, ok := s.Flags[name]; !ok {
		return false
	}
	delete(s.Flags, name)
	return true
}

// Get returns the variable stored under key, or def when it is absent.
func (s *GameState) Get(key string, def any) any {
	if v, ok := s.Variables[key]; ok {
		return v
	}
	return def
}

func (s *GameState) Set(key string, value any) {
	if s.Variables == nil {
		s.Variables = map[string]any{}
	}
	s.Variables[key] = value
}

func (s *GameState) Delete(key string) {
	delete(s.Variables, key)
}

// ClearPrefix removes every flag and variable whose key starts with one
// of the prefixes and returns how many keys were removed.
func (s *GameState) ClearPrefix(prefixes ...string) int {
	matches := func(key string) bool {
		for _, p := range prefixes {
			if p != "" && strings.HasPrefix(key, p) {
				return true
			}
		}
		return false
	}
	n := 0
	for k := range s.Flags {
		if matches(k) {
			delete(s.Flags, k)
			n++
		}
	}
	for k := range s.Variables {
		if matches(k) {
			delete(s.Variables, k)
			n++
		}
	}
	return n
}

// AddItem appends item to the inventory. Duplicates are kept.
func (s *GameState) AddItem(item string) {
	s.Inventory = append(s.Inventory, item)
}

// RemoveItem removes the first occurrence of item.
func (s *GameState) RemoveItem(item string) bool {
	for i, it := range s.Inventory {
		if it == item {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

func (s *GameState) HasItem(item string) bool {
	for _, it := range s.Inventory {
		if it == item {
			return true
		}
	}
	return false
}

// RoomExists delegates to the attached room index.
func (s *GameState) RoomExists(id string) bool {
	return s.rooms != nil && s.rooms.Exists(id)
}

// ChangeRoom moves the player. It does not enter the room.
func (s *GameState) ChangeRoom(id string) {
	s.CurrentRoomID = id
}

// Clone returns a deep copy that shares no maps or slices with s.
func (s *GameState) Clone() (*GameState, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, err
	}
	c := NewGameState(s.CurrentRoomID)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	c.rooms = s.rooms
	return c.normalize(), nil
}

// Normalize fills nil maps left behind by decoding an older or partial save.
func (s *GameState) Normalize() *GameState {
	return s.normalize()
}

func (s *GameState) normalize() *GameState {
	if s.Flags == nil {
		s.Flags = map[string]bool{}
	}
	if s.Variables == nil {
		s.Variables = map[string]any{}
	}
	if s.Inventory == nil {
		s.Inventory = []string{}
	}
	return s
}
