package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	want := &Config{
		SaveDir:     ".saves",
		SaveBackend: BackendYAML,
		SQLitePath:  ".saves/basilisk.db",
		StartRoom:   "boot",
		LogFile:     "basilisk.log",
		LogMaxSize:  5,
	}
	// The key may be present in the developer's environment.
	want.GeminiAPIKey = cfg.GeminiAPIKey
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BASILISK_SAVE_BACKEND", "sqlite")
	t.Setenv("BASILISK_SQLITE_PATH", "/tmp/b.db")
	t.Setenv("BASILISK_START_ROOM", "whisper_1")
	t.Setenv("BASILISK_DEBUG", "true")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.SaveBackend != BackendSQLite || cfg.SQLitePath != "/tmp/b.db" {
		t.Errorf("Expected sqlite at /tmp/b.db, got %s at %s", cfg.SaveBackend, cfg.SQLitePath)
	}
	if cfg.StartRoom != "whisper_1" {
		t.Errorf("Expected start room whisper_1, got %s", cfg.StartRoom)
	}
	if !cfg.Debug {
		t.Errorf("Expected debug enabled")
	}
	if cfg.GeminiAPIKey != "k" {
		t.Errorf("Expected API key k, got %s", cfg.GeminiAPIKey)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"BASILISK_SAVE_BACKEND":    "redis",
		"BASILISK_LOG_MAX_SIZE_MB": "0",
		"BASILISK_DEBUG":           "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected error for %s=%s", key, value)
			}
		})
	}
}
