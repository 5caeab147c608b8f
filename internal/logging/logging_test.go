package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "basilisk.log")
	logger, closer := New(path, 1)
	logger.Printf("room changed: %s -> %s", "boot", "beacon_1")
	if err := closer.Close(); err != nil {
		t.Fatalf("Failed to close log: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "room changed: boot -> beacon_1") {
		t.Errorf("Expected log line in file, got %q", string(data))
	}
}
