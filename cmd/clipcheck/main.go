// clipcheck validates animation clip files before they are committed to a
// clip library.
//
// Usage:
//
//	go run ./cmd/clipcheck [-dir data/clips] [file.yaml ...]
//
// With explicit file arguments only those files are checked; otherwise every
// clip file in the directory is.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/animstudio/internal/clipfile"
)

var dir = flag.String("dir", "data/clips", "clip library directory")

func main() {
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		var err error
		paths, err = clipPaths(*dir)
		if err != nil {
			fmt.Printf("❌ failed to scan %s: %v\n", *dir, err)
			os.Exit(1)
		}
		if len(paths) == 0 {
			fmt.Printf("no clip files in %s\n", *dir)
			return
		}
	}

	failures := 0
	for _, path := range paths {
		if err := check(path); err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			failures++
		}
	}

	if failures > 0 {
		fmt.Printf("❌ %d of %d clip files invalid\n", failures, len(paths))
		os.Exit(1)
	}
	fmt.Printf("✓ %d clip files valid\n", len(paths))
}

func clipPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func check(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file clipfile.File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("not a valid clip file: %w", err)
	}
	clip, err := file.Build()
	if err != nil {
		return err
	}

	keyframes := 0
	for _, c := range file.Curves {
		keyframes += len(c.Keyframes)
	}
	fmt.Printf("✓ %s: clip %q, %.2fs, %d objects, %d curves, %d keyframes\n",
		path, clip.Name(), clip.Duration(), len(clip.AnimatedObjects()),
		len(file.Curves), keyframes)
	return nil
}
