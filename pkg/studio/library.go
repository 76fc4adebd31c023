// Package studio ties the animation core to the editor's surroundings: the
// on-disk clip library, hot reload of clip files, and persistence of the
// editor session between runs.
package studio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/decker502/animstudio/internal/clipfile"
	"github.com/decker502/animstudio/pkg/animation"
	"golang.org/x/sync/errgroup"
)

// Library loads every clip file in a directory into an animation manager and
// tracks which file produced which clip so edits and deletions on disk can be
// mirrored in the registry.
type Library struct {
	dir     string
	manager *animation.Manager

	mu          sync.Mutex
	clipsByPath map[string]string // absolute file path -> clip name
}

// NewLibrary creates a library over dir feeding the given manager.
func NewLibrary(dir string, manager *animation.Manager) *Library {
	return &Library{
		dir:         dir,
		manager:     manager,
		clipsByPath: make(map[string]string),
	}
}

// Dir returns the library directory.
func (l *Library) Dir() string { return l.dir }

// Load scans the library directory and registers every clip file. Files are
// parsed in parallel; the first parse error aborts the load. A missing
// directory is not an error; the library is simply empty.
func (l *Library) Load() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Library] clip directory %s does not exist, starting empty", l.dir)
			return nil
		}
		return fmt.Errorf("failed to read clip directory '%s': %w", l.dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isClipFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(l.dir, entry.Name()))
	}
	sort.Strings(paths)

	clips := make([]*animation.Clip, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			clip, err := clipfile.LoadFile(path)
			if err != nil {
				return err
			}
			clips[i] = clip
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Registration stays sequential: the manager is not safe for concurrent
	// mutation and deterministic order keeps duplicate-name resolution
	// stable.
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, clip := range clips {
		l.manager.AddClip(clip)
		l.clipsByPath[paths[i]] = clip.Name()
	}

	log.Printf("[Library] loaded %d clips from %s", len(clips), l.dir)
	return nil
}

// Reload re-parses a single clip file, replacing the clip it previously
// produced. When the file's clip was renamed the old registration is removed
// so stale names do not linger.
func (l *Library) Reload(path string) error {
	clip, err := clipfile.LoadFile(path)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if oldName, ok := l.clipsByPath[path]; ok && oldName != clip.Name() {
		l.manager.RemoveClip(oldName)
	}
	l.manager.AddClip(clip)
	l.clipsByPath[path] = clip.Name()

	log.Printf("[Library] reloaded %s -> clip %q", path, clip.Name())
	return nil
}

// Remove drops the clip a deleted file produced, stopping any active
// playback of it. Unknown paths are ignored.
func (l *Library) Remove(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name, ok := l.clipsByPath[path]
	if !ok {
		return
	}
	l.manager.RemoveClip(name)
	delete(l.clipsByPath, path)
	log.Printf("[Library] removed clip %q (file %s deleted)", name, path)
}

// ClipPath returns the file a clip name was loaded from, or "" when the clip
// was created in memory.
func (l *Library) ClipPath(name string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	for path, clipName := range l.clipsByPath {
		if clipName == name {
			return path
		}
	}
	return ""
}

// Save writes the named clip back to the file it came from, or to a new file
// named after the clip for in-memory clips.
func (l *Library) Save(name string) error {
	clip := l.manager.GetClip(name)
	if clip == nil {
		return fmt.Errorf("clip %q is not registered", name)
	}

	path := l.ClipPath(name)
	if path == "" {
		path = filepath.Join(l.dir, name+".yaml")
	}
	if err := clipfile.WriteFile(path, clip); err != nil {
		return err
	}

	l.mu.Lock()
	l.clipsByPath[path] = name
	l.mu.Unlock()

	log.Printf("[Library] saved clip %q to %s", name, path)
	return nil
}

func isClipFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
