package animation

import (
	"log"
	"sort"
)

// Manager owns the clip registry and the registry of active players, and
// routes per-frame updates to every playback in flight.
//
// A player entry exists only while its clip is active: stopped non-looping
// players are retired during the Update pass after they complete, or
// immediately on StopClip. A clip may be registered without ever having an
// active player.
type Manager struct {
	clips   map[string]*Clip
	players map[string]*Player

	initialized bool
}

// NewManager creates an uninitialized manager. Call Initialize before Update.
func NewManager() *Manager {
	return &Manager{
		clips:   make(map[string]*Clip),
		players: make(map[string]*Player),
	}
}

// Initialize marks the manager ready. Calling it again is harmless and only
// logs a warning.
func (m *Manager) Initialize() {
	if m.initialized {
		log.Printf("[AnimationManager] already initialized")
		return
	}
	m.initialized = true
	log.Printf("[AnimationManager] initialized")
}

// Shutdown stops all players and clears both registries, returning the
// manager to the uninitialized state.
func (m *Manager) Shutdown() {
	if !m.initialized {
		return
	}

	m.StopAll()
	m.players = make(map[string]*Player)
	m.clips = make(map[string]*Clip)
	m.initialized = false
	log.Printf("[AnimationManager] shutdown")
}

// CreateClip creates an empty clip, registers it and returns it.
func (m *Manager) CreateClip(name string) *Clip {
	clip := NewClip(name)
	m.AddClip(clip)
	return clip
}

// AddClip registers a clip under its name, replacing any previous clip with
// the same name. Nil clips are rejected with a log line.
func (m *Manager) AddClip(clip *Clip) {
	if clip == nil {
		log.Printf("[AnimationManager] AddClip: nil clip")
		return
	}
	m.clips[clip.Name()] = clip
	log.Printf("[AnimationManager] added clip %q (duration %.2fs)", clip.Name(), clip.Duration())
}

// RemoveClip unregisters the named clip, stopping and removing its active
// player first.
func (m *Manager) RemoveClip(name string) {
	m.StopClip(name)
	delete(m.clips, name)
	log.Printf("[AnimationManager] removed clip %q", name)
}

// GetClip returns the registered clip with the given name, or nil.
func (m *Manager) GetClip(name string) *Clip {
	return m.clips[name]
}

// PlayClip starts (or resumes) playback of the named clip. When no player is
// active for the clip a new one is created and bound; re-playing an active
// clip reuses its player, resuming from the current cursor. The looping flag
// is overwritten on every call. A missing clip is a logged no-op.
func (m *Manager) PlayClip(name string, looping bool) {
	clip := m.GetClip(name)
	if clip == nil {
		log.Printf("[AnimationManager] PlayClip: clip not found: %q", name)
		return
	}

	player, ok := m.players[name]
	if !ok {
		player = NewPlayer()
		player.SetClip(clip)
		m.players[name] = player
	}

	player.SetLooping(looping)
	player.Play()
	log.Printf("[AnimationManager] playing %q (looping=%t)", name, looping)
}

// StopClip stops the named clip's player, if any, and removes it from the
// active registry. Unlike PauseClip, the player entry does not survive.
func (m *Manager) StopClip(name string) {
	if player, ok := m.players[name]; ok {
		player.Stop()
		delete(m.players, name)
		log.Printf("[AnimationManager] stopped %q", name)
	}
}

// PauseClip pauses the named clip's player in place; the player stays in the
// active registry so playback can resume.
func (m *Manager) PauseClip(name string) {
	if player, ok := m.players[name]; ok {
		player.Pause()
		log.Printf("[AnimationManager] paused %q", name)
	}
}

// StopAll stops and clears every active player.
func (m *Manager) StopAll() {
	for _, player := range m.players {
		player.Stop()
	}
	m.players = make(map[string]*Player)
	log.Printf("[AnimationManager] stopped all players")
}

// Player returns the active player for the named clip, or nil. It allows
// fine-grained control (seek, speed, loop toggling) beyond the play/pause/
// stop routing above.
func (m *Manager) Player(name string) *Player {
	return m.players[name]
}

// Update advances every active player by deltaTime and retires players that
// reached the Stopped state during this pass. One-shot clips therefore
// self-retire exactly one frame after completion. A nil scene or an
// uninitialized manager is a no-op.
func (m *Manager) Update(deltaTime float64, scene Scene) {
	if !m.initialized || scene == nil {
		return
	}

	var stopped []string
	for name, player := range m.players {
		player.Update(deltaTime, scene)
		if player.IsStopped() {
			stopped = append(stopped, name)
		}
	}

	for _, name := range stopped {
		delete(m.players, name)
	}
}

// IsPlaying reports whether the named clip has an active player in the
// Playing state.
func (m *Manager) IsPlaying(name string) bool {
	player, ok := m.players[name]
	return ok && player.IsPlaying()
}

// ClipNames returns all registered clip names, sorted.
func (m *Manager) ClipNames() []string {
	names := make([]string, 0, len(m.clips))
	for name := range m.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActivePlayerCount returns the number of players in the active registry,
// including paused ones.
func (m *Manager) ActivePlayerCount() int {
	return len(m.players)
}
