// Package config loads the studio's YAML configuration. Missing files are not
// fatal: the studio starts with defaults so a fresh checkout runs without any
// setup.
package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// StudioConfig is the top-level studio configuration.
type StudioConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Clips    ClipsConfig    `yaml:"clips"`
	Playback PlaybackConfig `yaml:"playback"`
}

// WindowConfig controls the application window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ClipsConfig controls the clip library.
type ClipsConfig struct {
	// Dir is the directory scanned for clip files.
	Dir string `yaml:"dir"`
	// Watch enables hot reload of clip files while the studio runs.
	Watch bool `yaml:"watch"`
}

// PlaybackConfig controls playback defaults.
type PlaybackConfig struct {
	// SnapFPS is the frame grid the timeline editor snaps keyframes to.
	SnapFPS int `yaml:"snapFPS"`
	// AutosaveSession persists the editor session (last clip, camera) on
	// change.
	AutosaveSession bool `yaml:"autosaveSession"`
}

// Default returns the built-in configuration.
func Default() *StudioConfig {
	return &StudioConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "AnimStudio",
		},
		Clips: ClipsConfig{
			Dir:   "data/clips",
			Watch: true,
		},
		Playback: PlaybackConfig{
			SnapFPS:         30,
			AutosaveSession: true,
		},
	}
}

// Load reads the configuration at path, overlaying the defaults. A missing
// file returns the defaults with a log line; a malformed file is an error.
func Load(path string) (*StudioConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Config] %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}

	cfg.applyFallbacks()
	log.Printf("[Config] loaded %s (clips dir %s)", path, cfg.Clips.Dir)
	return cfg, nil
}

// applyFallbacks restores defaults for fields an explicit config left zeroed.
func (c *StudioConfig) applyFallbacks() {
	def := Default()
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Clips.Dir == "" {
		c.Clips.Dir = def.Clips.Dir
	}
	if c.Playback.SnapFPS <= 0 {
		c.Playback.SnapFPS = def.Playback.SnapFPS
	}
}
