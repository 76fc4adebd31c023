package editor

import (
	"math"

	"github.com/decker502/animstudio/internal/curve"
	"github.com/decker502/animstudio/pkg/animation"
)

// Track is one row of the timeline: a single curve identified by the object
// it animates and the property it drives.
type Track struct {
	Object   string
	Property animation.Property
}

// Timeline is the editing model behind the on-screen timeline. It binds one
// clip at a time, tracks the playhead and the keyframe selection, and routes
// edits (insert, move, delete) into the clip's curves.
//
// Scrubbing applies the pose through a private preview player, so a clip can
// be inspected frame by frame without going through the manager's playback
// registry.
type Timeline struct {
	manager *animation.Manager
	clip    *animation.Clip
	preview *animation.Player

	playhead        float64
	pixelsPerSecond float64
	snapFPS         int

	selTrack int
	selKey   int
}

// NewTimeline creates a timeline with no clip bound. snapFPS > 0 snaps edited
// keyframe times to that frame grid; 0 disables snapping.
func NewTimeline(manager *animation.Manager, snapFPS int) *Timeline {
	return &Timeline{
		manager:         manager,
		preview:         animation.NewPlayer(),
		pixelsPerSecond: 80,
		snapFPS:         snapFPS,
		selTrack:        -1,
		selKey:          -1,
	}
}

// SetClip binds the named clip from the manager. An unknown name unbinds the
// timeline. Binding resets the playhead and the selection.
func (tl *Timeline) SetClip(name string) {
	tl.clip = tl.manager.GetClip(name)
	tl.preview.SetClip(tl.clip)
	tl.playhead = 0
	tl.ClearSelection()
}

// Clip returns the bound clip, or nil.
func (tl *Timeline) Clip() *animation.Clip { return tl.clip }

// Duration returns the bound clip's duration, or 0.
func (tl *Timeline) Duration() float64 {
	if tl.clip == nil {
		return 0
	}
	return tl.clip.Duration()
}

// Tracks returns one row per curve, grouped by object and ordered by
// property, matching the drawn row order.
func (tl *Timeline) Tracks() []Track {
	if tl.clip == nil {
		return nil
	}
	var tracks []Track
	for _, object := range tl.clip.AnimatedObjects() {
		for prop := animation.PositionX; prop <= animation.Custom; prop++ {
			if tl.clip.HasCurve(object, prop) {
				tracks = append(tracks, Track{Object: object, Property: prop})
			}
		}
	}
	return tracks
}

// trackCurve resolves a track index to its curve, or nil when out of range.
func (tl *Timeline) trackCurve(index int) *curve.Curve {
	tracks := tl.Tracks()
	if index < 0 || index >= len(tracks) {
		return nil
	}
	return tl.clip.Curve(tracks[index].Object, tracks[index].Property)
}

// Playhead returns the timeline cursor in seconds.
func (tl *Timeline) Playhead() float64 { return tl.playhead }

// SetPlayhead moves the cursor without applying a pose. Used to mirror a
// running player.
func (tl *Timeline) SetPlayhead(time float64) {
	tl.playhead = clamp(time, 0, tl.Duration())
}

// Scrub moves the cursor and applies the pose at that time to the scene.
func (tl *Timeline) Scrub(time float64, scn animation.Scene) {
	tl.SetPlayhead(time)
	if tl.clip == nil || scn == nil {
		return
	}
	// A zero-delta update applies the pose without advancing.
	tl.preview.Play()
	tl.preview.SetTime(tl.playhead)
	tl.preview.Update(0, scn)
}

// TogglePlay starts or pauses playback of the bound clip through the
// manager. Without a bound clip the call is ignored.
func (tl *Timeline) TogglePlay(looping bool) {
	if tl.clip == nil {
		return
	}
	name := tl.clip.Name()
	if tl.manager.IsPlaying(name) {
		tl.manager.PauseClip(name)
		return
	}
	tl.manager.PlayClip(name, looping)
}

// Snap rounds a time onto the frame grid, or returns it unchanged when
// snapping is disabled. Times never snap below 0.
func (tl *Timeline) Snap(time float64) float64 {
	if tl.snapFPS <= 0 {
		return math.Max(0, time)
	}
	frame := math.Round(time * float64(tl.snapFPS))
	return math.Max(0, frame/float64(tl.snapFPS))
}

// PixelsPerSecond returns the horizontal zoom factor.
func (tl *Timeline) PixelsPerSecond() float64 { return tl.pixelsPerSecond }

// ZoomBy scales the horizontal zoom, clamped to a usable range.
func (tl *Timeline) ZoomBy(factor float64) {
	tl.pixelsPerSecond = clamp(tl.pixelsPerSecond*factor, 10, 640)
}

// Select marks a keyframe on a track as selected. Out-of-range values clear
// the selection.
func (tl *Timeline) Select(track, key int) {
	c := tl.trackCurve(track)
	if c == nil || key < 0 || key >= c.KeyframeCount() {
		tl.ClearSelection()
		return
	}
	tl.selTrack = track
	tl.selKey = key
}

// Selection returns the selected track and keyframe indices, or (-1, -1).
func (tl *Timeline) Selection() (track, key int) { return tl.selTrack, tl.selKey }

// ClearSelection deselects any keyframe.
func (tl *Timeline) ClearSelection() {
	tl.selTrack = -1
	tl.selKey = -1
}

// SelectedKeyframe returns the selected keyframe, if any.
func (tl *Timeline) SelectedKeyframe() (curve.Keyframe, bool) {
	c := tl.trackCurve(tl.selTrack)
	if c == nil {
		return curve.Keyframe{}, false
	}
	return c.Key(tl.selKey)
}

// InsertKeyframe adds a keyframe to a track at the snapped time, sampling the
// curve's current value there so the pose does not jump. The new keyframe
// becomes the selection.
func (tl *Timeline) InsertKeyframe(track int, time float64) {
	c := tl.trackCurve(track)
	if c == nil {
		return
	}
	t := tl.Snap(time)
	c.AddKeyframe(t, c.Evaluate(t))
	tl.clip.UpdateDuration()
	tl.Select(track, keyIndexAt(c, t))
}

// DeleteSelected removes the selected keyframe and clears the selection.
func (tl *Timeline) DeleteSelected() {
	c := tl.trackCurve(tl.selTrack)
	if c == nil {
		return
	}
	c.RemoveKeyframe(tl.selKey)
	tl.clip.UpdateDuration()
	tl.ClearSelection()
}

// MoveSelected retimes the selected keyframe to the snapped target time. The
// curve re-sorts on retime, so the selection is re-resolved afterwards.
func (tl *Timeline) MoveSelected(time float64) {
	c := tl.trackCurve(tl.selTrack)
	if c == nil {
		return
	}
	t := tl.Snap(time)
	c.SetKeyframeTime(tl.selKey, t)
	tl.clip.UpdateDuration()
	tl.selKey = keyIndexAt(c, t)
}

// NudgeSelected retimes the selected keyframe by one frame step (or 0.1 s
// without a snap grid) in the given direction.
func (tl *Timeline) NudgeSelected(direction float64) {
	k, ok := tl.SelectedKeyframe()
	if !ok {
		return
	}
	step := 0.1
	if tl.snapFPS > 0 {
		step = 1.0 / float64(tl.snapFPS)
	}
	tl.MoveSelected(k.Time + direction*step)
}

// keyIndexAt finds the last keyframe at exactly the given time. The last
// match mirrors where a retimed or duplicate key lands after the stable sort.
func keyIndexAt(c *curve.Curve, time float64) int {
	index := -1
	for i, k := range c.Keyframes() {
		if k.Time == time {
			index = i
		}
	}
	return index
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
