package editor

import (
	"math"
	"testing"

	"github.com/decker502/animstudio/internal/curve"
	"github.com/decker502/animstudio/pkg/animation"
	"github.com/decker502/animstudio/pkg/scene"
)

// newTestTimeline builds a manager with one clip ("orbit": Ball.positionX
// 0->8 over 4s, Ball.positionY 0->1 over 2s), a scene containing Ball, and a
// timeline bound to the clip.
func newTestTimeline(t *testing.T, snapFPS int) (*Timeline, *scene.Manager) {
	t.Helper()

	manager := animation.NewManager()
	manager.Initialize()

	clip := manager.CreateClip("orbit")
	cx := curve.New(curve.Linear)
	cx.AddKeyframe(0, 0)
	cx.AddKeyframe(4, 8)
	clip.AddCurve("Ball", animation.PositionX, cx)
	cy := curve.New(curve.Linear)
	cy.AddKeyframe(0, 0)
	cy.AddKeyframe(2, 1)
	clip.AddCurve("Ball", animation.PositionY, cy)

	scn := scene.NewManager()
	scn.CreateObject("Ball", "sphere")

	tl := NewTimeline(manager, snapFPS)
	tl.SetClip("orbit")
	return tl, scn
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestTimeline_Tracks verifies rows appear per curve in property order.
func TestTimeline_Tracks(t *testing.T) {
	tl, _ := newTestTimeline(t, 0)

	tracks := tl.Tracks()
	if len(tracks) != 2 {
		t.Fatalf("len(Tracks()) = %d, want 2", len(tracks))
	}
	if tracks[0] != (Track{Object: "Ball", Property: animation.PositionX}) {
		t.Errorf("tracks[0] = %+v, want Ball.positionX", tracks[0])
	}
	if tracks[1] != (Track{Object: "Ball", Property: animation.PositionY}) {
		t.Errorf("tracks[1] = %+v, want Ball.positionY", tracks[1])
	}
}

// TestTimeline_SetClipUnknown verifies an unknown name unbinds the timeline.
func TestTimeline_SetClipUnknown(t *testing.T) {
	tl, _ := newTestTimeline(t, 0)

	tl.SetClip("ghost")
	if tl.Clip() != nil {
		t.Error("Clip() != nil after binding an unknown name")
	}
	if tl.Tracks() != nil {
		t.Errorf("Tracks() = %v, want nil", tl.Tracks())
	}
	if tl.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", tl.Duration())
	}
}

// TestTimeline_Scrub verifies scrubbing moves the playhead and applies the
// pose to the scene.
func TestTimeline_Scrub(t *testing.T) {
	tl, scn := newTestTimeline(t, 0)

	tl.Scrub(2, scn)
	if tl.Playhead() != 2 {
		t.Errorf("Playhead() = %v, want 2", tl.Playhead())
	}
	ball, _ := scn.Object("Ball")
	if got := ball.Position().X; got != 4 {
		t.Errorf("Ball position X = %v, want 4", got)
	}
	if got := ball.Position().Y; got != 1 {
		t.Errorf("Ball position Y = %v, want 1", got)
	}

	// Past the end: clamps and applies the end pose.
	tl.Scrub(99, scn)
	if tl.Playhead() != 4 {
		t.Errorf("Playhead() = %v after overshoot, want 4", tl.Playhead())
	}
	if got := ball.Position().X; got != 8 {
		t.Errorf("Ball position X = %v at end, want 8", got)
	}

	tl.Scrub(-1, scn)
	if tl.Playhead() != 0 {
		t.Errorf("Playhead() = %v after negative scrub, want 0", tl.Playhead())
	}
}

// TestTimeline_Snap verifies frame-grid rounding.
func TestTimeline_Snap(t *testing.T) {
	tl, _ := newTestTimeline(t, 10)

	if got := tl.Snap(0.26); !almostEqual(got, 0.3) {
		t.Errorf("Snap(0.26) = %v, want 0.3", got)
	}
	if got := tl.Snap(0.24); !almostEqual(got, 0.2) {
		t.Errorf("Snap(0.24) = %v, want 0.2", got)
	}
	if got := tl.Snap(-0.4); got != 0 {
		t.Errorf("Snap(-0.4) = %v, want 0", got)
	}

	free, _ := newTestTimeline(t, 0)
	if got := free.Snap(0.26); got != 0.26 {
		t.Errorf("Snap(0.26) without a grid = %v, want 0.26", got)
	}
}

// TestTimeline_InsertKeyframe verifies insertion samples the existing curve
// value so the pose does not jump, and selects the new keyframe.
func TestTimeline_InsertKeyframe(t *testing.T) {
	tl, _ := newTestTimeline(t, 0)

	tl.InsertKeyframe(0, 2)

	c := tl.trackCurve(0)
	if c.KeyframeCount() != 3 {
		t.Fatalf("KeyframeCount() = %d, want 3", c.KeyframeCount())
	}
	k, ok := c.Key(1)
	if !ok || k.Time != 2 || k.Value != 4 {
		t.Errorf("inserted keyframe = %+v, want time 2 value 4", k)
	}
	if track, key := tl.Selection(); track != 0 || key != 1 {
		t.Errorf("Selection() = (%d, %d), want (0, 1)", track, key)
	}

	// Out-of-range track is ignored.
	tl.InsertKeyframe(7, 1)
}

// TestTimeline_MoveSelected verifies retiming keeps the selection on the
// moved keyframe and refreshes the clip duration.
func TestTimeline_MoveSelected(t *testing.T) {
	tl, _ := newTestTimeline(t, 0)

	// Select the end keyframe of Ball.positionX and drag it out to 6s.
	tl.Select(0, 1)
	tl.MoveSelected(6)

	k, ok := tl.SelectedKeyframe()
	if !ok || k.Time != 6 || k.Value != 8 {
		t.Errorf("moved keyframe = %+v, want time 6 value 8", k)
	}
	if d := tl.Duration(); d != 6 {
		t.Errorf("Duration() = %v after move, want 6", d)
	}

	// Drag it before the first keyframe: it lands at 0 next to the existing
	// key there, and the stable sort keeps the retimed key last among equals.
	tl.MoveSelected(-1)
	if _, key := tl.Selection(); key != 1 {
		t.Errorf("selected key index = %d after sort, want 1", key)
	}
	k, _ = tl.SelectedKeyframe()
	if k.Time != 0 || k.Value != 8 {
		t.Errorf("moved keyframe = %+v, want time 0 value 8", k)
	}
}

// TestTimeline_DeleteSelected verifies deletion and selection clearing.
func TestTimeline_DeleteSelected(t *testing.T) {
	tl, _ := newTestTimeline(t, 0)

	tl.Select(1, 1)
	tl.DeleteSelected()

	if n := tl.trackCurve(1).KeyframeCount(); n != 1 {
		t.Errorf("KeyframeCount() = %d after delete, want 1", n)
	}
	if track, key := tl.Selection(); track != -1 || key != -1 {
		t.Errorf("Selection() = (%d, %d) after delete, want (-1, -1)", track, key)
	}

	// Nothing selected: no-op.
	tl.DeleteSelected()
}

// TestTimeline_NudgeSelected verifies the nudge step follows the snap grid.
func TestTimeline_NudgeSelected(t *testing.T) {
	tl, _ := newTestTimeline(t, 10)

	tl.Select(0, 1)
	tl.NudgeSelected(1)

	k, _ := tl.SelectedKeyframe()
	if !almostEqual(k.Time, 4.1) {
		t.Errorf("keyframe time = %v after nudge, want 4.1", k.Time)
	}

	tl.NudgeSelected(-1)
	k, _ = tl.SelectedKeyframe()
	if !almostEqual(k.Time, 4.0) {
		t.Errorf("keyframe time = %v after nudge back, want 4.0", k.Time)
	}
}

// TestTimeline_TogglePlay verifies the play/pause round trip through the
// manager.
func TestTimeline_TogglePlay(t *testing.T) {
	tl, _ := newTestTimeline(t, 0)

	tl.TogglePlay(true)
	p := tl.manager.Player("orbit")
	if p == nil || !p.IsPlaying() || !p.IsLooping() {
		t.Fatal("first toggle did not start looping playback")
	}

	tl.TogglePlay(true)
	if !p.IsPaused() {
		t.Errorf("player state = %v after second toggle, want Paused", p.State())
	}

	tl.TogglePlay(true)
	if !p.IsPlaying() {
		t.Errorf("player state = %v after third toggle, want Playing", p.State())
	}

	// No clip bound: ignored.
	tl.SetClip("ghost")
	tl.TogglePlay(false)
}

// TestTimeline_SelectBounds verifies out-of-range selections clear instead of
// dangling.
func TestTimeline_SelectBounds(t *testing.T) {
	tl, _ := newTestTimeline(t, 0)

	tl.Select(0, 99)
	if track, key := tl.Selection(); track != -1 || key != -1 {
		t.Errorf("Selection() = (%d, %d), want cleared", track, key)
	}
	if _, ok := tl.SelectedKeyframe(); ok {
		t.Error("SelectedKeyframe() ok with nothing selected")
	}
}

// TestTimeline_Zoom verifies the zoom clamp range.
func TestTimeline_Zoom(t *testing.T) {
	tl, _ := newTestTimeline(t, 0)

	for i := 0; i < 100; i++ {
		tl.ZoomBy(2)
	}
	if got := tl.PixelsPerSecond(); got != 640 {
		t.Errorf("PixelsPerSecond() = %v at max zoom, want 640", got)
	}
	for i := 0; i < 100; i++ {
		tl.ZoomBy(0.5)
	}
	if got := tl.PixelsPerSecond(); got != 10 {
		t.Errorf("PixelsPerSecond() = %v at min zoom, want 10", got)
	}
}
