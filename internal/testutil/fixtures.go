package testutil

import (
	"embed"
	"os"
	"path/filepath"
	"testing"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// CopyFixture writes the named fixture to dst, creating parent folders.
func CopyFixture(t *testing.T, name, dst string) string {
	t.Helper()

	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	WriteFile(t, dst, string(data))
	return dst
}

// WriteFile writes content to path, creating parent folders.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
