// Package app wraps the studio into an ebiten.Game so the desktop entry
// point stays a thin flag-parsing shell.
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/animstudio/internal/curve"
	"github.com/decker502/animstudio/pkg/animation"
	"github.com/decker502/animstudio/pkg/config"
	"github.com/decker502/animstudio/pkg/editor"
	"github.com/decker502/animstudio/pkg/scene"
	"github.com/decker502/animstudio/pkg/studio"
)

const timelineHeight = 220

// Config defines the application launch options.
type Config struct {
	// Verbose enables log output; off by default so the frame loop stays quiet.
	Verbose bool
	// ConfigPath points at the studio config file.
	ConfigPath string
	// ClipsDir overrides the clip library directory from the config file.
	ClipsDir string
	// Clip selects the clip to bind at startup, overriding the saved session.
	Clip string
}

// App owns every subsystem of the running studio and implements ebiten.Game.
type App struct {
	cfg *config.StudioConfig

	sceneManager *scene.Manager
	animManager  *animation.Manager
	library      *studio.Library
	watcher      *studio.Watcher
	sessions     *studio.SessionManager

	timeline     *editor.Timeline
	timelineView *editor.TimelineView
	viewport     *editor.Viewport
	controls     *editor.Controls

	currentClip string
	looping     bool
}

// NewApp builds and wires the whole studio.
func NewApp(launch Config) (*App, error) {
	if !launch.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cfg, err := config.Load(launch.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load studio config: %w", err)
	}
	if launch.ClipsDir != "" {
		cfg.Clips.Dir = launch.ClipsDir
	}

	a := &App{cfg: cfg}

	a.sceneManager = scene.NewManager()
	seedScene(a.sceneManager)

	a.animManager = animation.NewManager()
	a.animManager.Initialize()

	a.library = studio.NewLibrary(cfg.Clips.Dir, a.animManager)
	if err := a.library.Load(); err != nil {
		return nil, fmt.Errorf("failed to load clip library: %w", err)
	}
	if len(a.animManager.ClipNames()) == 0 {
		seedDemoClip(a.animManager)
	}

	if cfg.Clips.Watch {
		watcher, err := studio.NewWatcher(cfg.Clips.Dir)
		if err != nil {
			// A missing directory or inotify limit should not kill the studio.
			log.Printf("[App] clip watching disabled: %v", err)
		} else {
			a.watcher = watcher
		}
	}

	// Session storage. A failure to open the backing store degrades to an
	// in-memory session.
	gdataManager, err := gdata.Open(gdata.Config{AppName: "animstudio"})
	if err != nil {
		log.Printf("[App] session storage unavailable: %v", err)
		gdataManager = nil
	}
	a.sessions = studio.NewSessionManager(gdataManager)

	a.buildEditor()
	a.restoreSession(launch.Clip)

	log.Printf("[App] studio ready (%d clips, %d objects)",
		len(a.animManager.ClipNames()), a.sceneManager.Count())
	return a, nil
}

// buildEditor creates the timeline, viewport and widget tree.
func (a *App) buildEditor() {
	w, h := a.cfg.Window.Width, a.cfg.Window.Height

	a.timeline = editor.NewTimeline(a.animManager, a.cfg.Playback.SnapFPS)
	a.timelineView = editor.NewTimelineView(a.timeline, 0, h-timelineHeight, w, timelineHeight)

	a.viewport = editor.NewViewport(0, 0, w, h-timelineHeight)
	a.viewport.Animated = func(name string) bool {
		clip := a.timeline.Clip()
		return clip != nil && clip.HasAnimationForObject(name)
	}

	a.controls = editor.NewControls(a.animManager.ClipNames(), editor.Callbacks{
		OnPlay:         a.playCurrent,
		OnPause:        func() { a.animManager.PauseClip(a.currentClip) },
		OnStop:         func() { a.animManager.StopClip(a.currentClip) },
		OnRestart:      a.restartCurrent,
		OnLoopToggled:  a.setLooping,
		OnClipSelected: a.bindClip,
	})
}

// restoreSession applies the saved session, then the -clip override on top.
func (a *App) restoreSession(clipOverride string) {
	s := a.sessions.Session()
	a.viewport.Camera.Yaw = s.CameraYaw
	a.viewport.Camera.Pitch = s.CameraPitch
	if s.CameraDistance > 0 {
		a.viewport.Camera.Distance = s.CameraDistance
	}
	// Persisted values may predate the clamp ranges; zero-delta moves clamp.
	a.viewport.Camera.Orbit(0, 0)
	a.viewport.Camera.Zoom(0)
	a.setLooping(s.Looping)
	a.controls.SetLooping(s.Looping)

	clip := clipOverride
	if clip == "" {
		clip = s.LastClip
	}
	if a.animManager.GetClip(clip) == nil {
		clip = ""
		if names := a.animManager.ClipNames(); len(names) > 0 {
			clip = names[0]
		}
	}
	if clip != "" {
		a.bindClip(clip)
		a.controls.SelectClip(clip)
	}
}

// bindClip makes a clip current in the timeline and remembers it for the
// next session.
func (a *App) bindClip(name string) {
	if a.currentClip != "" && a.currentClip != name {
		a.animManager.StopClip(a.currentClip)
	}
	a.currentClip = name
	a.timeline.SetClip(name)
	a.sessions.Session().LastClip = name
	a.autosaveSession()
	log.Printf("[App] bound clip %q", name)
}

// autosaveSession persists the session immediately when autosave is on.
// Shutdown saves unconditionally, so losing one of these is harmless.
func (a *App) autosaveSession() {
	if !a.cfg.Playback.AutosaveSession {
		return
	}
	if err := a.sessions.Save(); err != nil {
		log.Printf("[App] failed to autosave session: %v", err)
	}
}

func (a *App) playCurrent() {
	if a.currentClip == "" {
		return
	}
	a.animManager.PlayClip(a.currentClip, a.looping)
}

func (a *App) restartCurrent() {
	a.playCurrent()
	if p := a.animManager.Player(a.currentClip); p != nil {
		p.Restart()
	}
}

func (a *App) setLooping(looping bool) {
	a.looping = looping
	a.sessions.Session().Looping = looping
	if p := a.animManager.Player(a.currentClip); p != nil {
		p.SetLooping(looping)
	}
	a.autosaveSession()
}

// drainWatcher folds pending clip file events into the library. Running on
// the frame loop keeps all clip mutation single-threaded.
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case ev, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			if ev.Removed {
				a.library.Remove(ev.Path)
			} else if err := a.library.Reload(ev.Path); err != nil {
				log.Printf("[App] reload %s: %v", ev.Path, err)
			}
			changed = true
		case err, ok := <-a.watcher.Errors:
			if !ok {
				a.watcher = nil
				return
			}
			log.Printf("[App] watcher: %v", err)
		default:
			if changed {
				a.refreshClips()
			}
			return
		}
	}
}

// refreshClips re-syncs the UI and timeline after library changes.
func (a *App) refreshClips() {
	names := a.animManager.ClipNames()
	a.controls.SetClips(names)

	if a.animManager.GetClip(a.currentClip) == nil {
		a.currentClip = ""
		if len(names) > 0 {
			a.bindClip(names[0])
			a.controls.SelectClip(names[0])
			return
		}
	}
	// The clip object may have been replaced in place; rebind so the
	// timeline and preview point at the registered one.
	if a.currentClip != "" {
		a.timeline.SetClip(a.currentClip)
		a.controls.SelectClip(a.currentClip)
	}
}

// Update runs one fixed tick of the studio.
func (a *App) Update() error {
	deltaTime := 1.0 / 60.0

	a.drainWatcher()
	a.controls.Update()
	a.viewport.Update()
	a.timelineView.Update(a.sceneManager)

	// Space toggles playback of the current clip.
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.timeline.TogglePlay(a.looping)
	}

	a.animManager.Update(deltaTime, a.sceneManager)

	// Mirror a running playback onto the timeline cursor.
	if p := a.animManager.Player(a.currentClip); p != nil && !p.IsStopped() {
		a.timeline.SetPlayhead(p.Time())
	}

	return nil
}

// Draw renders viewport, timeline and widget overlay.
func (a *App) Draw(screen *ebiten.Image) {
	a.viewport.Draw(screen, a.sceneManager.Objects())
	a.timelineView.Draw(screen)
	a.controls.Draw(screen)

	status := fmt.Sprintf("clip: %s  %.2fs / %.2fs", a.currentClip,
		a.timeline.Playhead(), a.timeline.Duration())
	ebitenutil.DebugPrintAt(screen, status, 8, a.cfg.Window.Height-timelineHeight-18)
}

// Layout returns the logical screen size from the studio config.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Shutdown persists the session and releases the subsystems. Called once
// after the game loop exits.
func (a *App) Shutdown() {
	s := a.sessions.Session()
	s.CameraYaw = a.viewport.Camera.Yaw
	s.CameraPitch = a.viewport.Camera.Pitch
	s.CameraDistance = a.viewport.Camera.Distance

	if err := a.sessions.Save(); err != nil {
		log.Printf("[App] failed to save session: %v", err)
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.animManager.Shutdown()
}

// WindowTitle returns the configured window title.
func (a *App) WindowTitle() string { return a.cfg.Window.Title }

// WindowSize returns the configured window size.
func (a *App) WindowSize() (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// seedDemoClip registers a minimal clip so an empty library still gives the
// editor something to bind.
func seedDemoClip(m *animation.Manager) {
	clip := m.CreateClip("demo")
	bob := curve.New(curve.Smooth)
	bob.AddKeyframe(0, 0)
	bob.AddKeyframe(1, 2)
	bob.AddKeyframe(2, 0)
	clip.AddCurve("Ball", animation.PositionY, bob)
	clip.SetLooping(true)
	log.Printf("[App] empty clip library, seeded demo clip")
}

// seedScene fills a fresh scene with the demo objects the sample clips
// animate.
func seedScene(m *scene.Manager) {
	m.CreateObject("Ball", "sphere")

	crate := m.CreateObject("Crate", "cube")
	crate.SetPosition(curve.Vec3{X: 3, Z: -2})

	lamp := m.CreateObject("Lamp", "light")
	lamp.SetPosition(curve.Vec3{X: -4, Y: 2, Z: 1})
}
