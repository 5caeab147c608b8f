package models

import "gopkg.in/yaml.v3"

// Var reads a structured variable as T. Values that were decoded from a save
// file arrive as generic maps and are converted through YAML; the converted
// value is written back so later reads are direct.
func Var[T any](s *GameState, key string) (T, bool) {
	var zero T
	raw, ok := s.Variables[key]
	if !ok || raw == nil {
		return zero, false
	}
	if v, ok := raw.(T); ok {
		return v, true
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return zero, false
	}
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return zero, false
	}
	s.Set(key, v)
	return v, true
}

// SetVar stores value under key.
func SetVar[T any](s *GameState, key string, value T) {
	s.Set(key, value)
}
