package studio

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Session is the editor state persisted between runs.
type Session struct {
	LastClip string  `yaml:"lastClip"`
	Looping  bool    `yaml:"looping"`
	Speed    float64 `yaml:"speed"`

	// Viewport orbit camera.
	CameraYaw      float64 `yaml:"cameraYaw"`
	CameraPitch    float64 `yaml:"cameraPitch"`
	CameraDistance float64 `yaml:"cameraDistance"`
}

// DefaultSession returns the state of a fresh editor.
func DefaultSession() *Session {
	return &Session{
		Speed:          1.0,
		CameraYaw:      45,
		CameraPitch:    30,
		CameraDistance: 14,
	}
}

const (
	sessionObject   = "session"
	sessionProperty = "editor"
)

// SessionManager loads and saves the editor session through gdata's
// cross-platform storage. A nil gdata manager degrades to in-memory state:
// nothing persists, nothing errors.
type SessionManager struct {
	gdataManager *gdata.Manager
	session      *Session
}

// NewSessionManager creates a session manager and loads any saved session.
// A load failure is downgraded to the defaults with a warning.
func NewSessionManager(gdataManager *gdata.Manager) *SessionManager {
	sm := &SessionManager{
		gdataManager: gdataManager,
		session:      DefaultSession(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SessionManager] failed to load session: %v (using defaults)", err)
	}
	return sm
}

// Session returns the current session state for reading and mutation.
func (sm *SessionManager) Session() *Session {
	return sm.session
}

// Load reads the persisted session. Without a gdata manager, or without a
// saved session, the defaults are used.
func (sm *SessionManager) Load() error {
	if sm.gdataManager == nil {
		sm.session = DefaultSession()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(sessionObject, sessionProperty) {
		sm.session = DefaultSession()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(sessionObject, sessionProperty)
	if err != nil {
		sm.session = DefaultSession()
		return fmt.Errorf("failed to load session: %w", err)
	}

	var loaded Session
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.session = DefaultSession()
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if loaded.Speed == 0 {
		loaded.Speed = 1.0
	}

	sm.session = &loaded
	log.Printf("[SessionManager] session loaded (last clip %q)", loaded.LastClip)
	return nil
}

// Save persists the current session. Without a gdata manager it is a silent
// no-op so the degraded mode never errors.
func (sm *SessionManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(sessionObject, sessionProperty, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
