package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad_MissingFileUsesDefaults verifies a missing config is not an error.
func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := Default()
	if cfg.Window != def.Window {
		t.Errorf("Window = %+v, want defaults %+v", cfg.Window, def.Window)
	}
	if cfg.Clips.Dir != def.Clips.Dir {
		t.Errorf("Clips.Dir = %q, want %q", cfg.Clips.Dir, def.Clips.Dir)
	}
}

// TestLoad_OverlaysDefaults verifies partial configs keep defaults for
// omitted fields.
func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	content := `
window:
  title: My Studio
clips:
  dir: /tmp/clips
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Window.Title != "My Studio" {
		t.Errorf("Window.Title = %q, want My Studio", cfg.Window.Title)
	}
	if cfg.Window.Width != Default().Window.Width {
		t.Errorf("Window.Width = %d, want default %d", cfg.Window.Width, Default().Window.Width)
	}
	if cfg.Clips.Dir != "/tmp/clips" {
		t.Errorf("Clips.Dir = %q, want /tmp/clips", cfg.Clips.Dir)
	}
	if cfg.Playback.SnapFPS != Default().Playback.SnapFPS {
		t.Errorf("Playback.SnapFPS = %d, want default", cfg.Playback.SnapFPS)
	}
}

// TestLoad_MalformedFile verifies malformed YAML is an error.
func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load on malformed file succeeded, want error")
	}
}
