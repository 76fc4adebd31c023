// Package curve provides keyframe storage and interpolation for scalar
// animation properties. A Curve holds a time-sorted sequence of keyframes and
// evaluates a value at any point in time using one of four interpolation
// modes. Curves are the leaves of the animation data model: clips bundle many
// curves, players sample them every frame.
package curve

import (
	"sort"
)

// Keyframe is a single (time, value) sample with optional tangents.
// Tangents are expressed as value units per second and are only consulted by
// the Smooth and CubicBezier interpolation modes.
type Keyframe struct {
	Time       float64 // Time in seconds
	Value      float64 // Keyframe value
	InTangent  float64 // Incoming tangent (slope arriving at this key)
	OutTangent float64 // Outgoing tangent (slope leaving this key)
}

// Interpolation selects how a Curve blends between adjacent keyframes.
type Interpolation int

const (
	// Linear interpolates in a straight line between keyframes.
	Linear Interpolation = iota

	// Smooth uses cubic Hermite interpolation driven by keyframe tangents.
	Smooth

	// Step holds the earlier keyframe's value until the next keyframe.
	Step

	// CubicBezier derives Bezier control points from the keyframe tangents
	// and evaluates the standard cubic Bezier blend.
	CubicBezier
)

// String returns the interpolation mode name (used for logs and clip files).
func (m Interpolation) String() string {
	switch m {
	case Linear:
		return "linear"
	case Smooth:
		return "smooth"
	case Step:
		return "step"
	case CubicBezier:
		return "bezier"
	default:
		return "unknown"
	}
}

// ParseInterpolation converts a mode name as it appears in clip files back to
// an Interpolation. The second return value reports whether the name was
// recognized.
func ParseInterpolation(s string) (Interpolation, bool) {
	switch s {
	case "linear":
		return Linear, true
	case "smooth":
		return Smooth, true
	case "step":
		return Step, true
	case "bezier":
		return CubicBezier, true
	default:
		return Linear, false
	}
}

// Curve stores a sorted sequence of keyframes for one scalar property and
// evaluates a value at a time.
//
// Invariant: keyframes are sorted ascending by time after every mutation.
// Duplicate times are permitted; sorting is stable, so keys sharing a time
// keep their insertion order.
type Curve struct {
	keyframes []Keyframe
	mode      Interpolation
}

// New creates an empty curve with the given interpolation mode.
func New(mode Interpolation) *Curve {
	return &Curve{mode: mode}
}

// AddKeyframe appends a keyframe with zero tangents and re-sorts by time.
func (c *Curve) AddKeyframe(time, value float64) {
	c.AddKey(Keyframe{Time: time, Value: value})
}

// AddKey appends a fully specified keyframe and re-sorts by time.
func (c *Curve) AddKey(k Keyframe) {
	c.keyframes = append(c.keyframes, k)
	c.sortKeyframes()
}

// RemoveKeyframe deletes the keyframe at index. Out-of-range indices are
// silently ignored.
func (c *Curve) RemoveKeyframe(index int) {
	if index < 0 || index >= len(c.keyframes) {
		return
	}
	c.keyframes = append(c.keyframes[:index], c.keyframes[index+1:]...)
}

// ClearKeyframes removes every keyframe.
func (c *Curve) ClearKeyframes() {
	c.keyframes = c.keyframes[:0]
}

// SetKeyframeTime moves the keyframe at index to a new time and re-sorts.
// Out-of-range indices are silently ignored.
func (c *Curve) SetKeyframeTime(index int, time float64) {
	if index < 0 || index >= len(c.keyframes) {
		return
	}
	c.keyframes[index].Time = time
	c.sortKeyframes()
}

// SetKeyframeValue changes the value of the keyframe at index.
// Out-of-range indices are silently ignored.
func (c *Curve) SetKeyframeValue(index int, value float64) {
	if index < 0 || index >= len(c.keyframes) {
		return
	}
	c.keyframes[index].Value = value
}

// SetKeyframeTangents changes the tangents of the keyframe at index.
// Out-of-range indices are silently ignored.
func (c *Curve) SetKeyframeTangents(index int, inTangent, outTangent float64) {
	if index < 0 || index >= len(c.keyframes) {
		return
	}
	c.keyframes[index].InTangent = inTangent
	c.keyframes[index].OutTangent = outTangent
}

// Keyframes returns the underlying keyframe slice, sorted by time.
// Callers must not mutate it; use the Set* methods instead.
func (c *Curve) Keyframes() []Keyframe {
	return c.keyframes
}

// KeyframeCount returns the number of keyframes.
func (c *Curve) KeyframeCount() int {
	return len(c.keyframes)
}

// Key returns the keyframe at index. The second return value is false for
// out-of-range indices.
func (c *Curve) Key(index int) (Keyframe, bool) {
	if index < 0 || index >= len(c.keyframes) {
		return Keyframe{}, false
	}
	return c.keyframes[index], true
}

// Mode returns the curve's interpolation mode.
func (c *Curve) Mode() Interpolation {
	return c.mode
}

// SetMode changes the curve's interpolation mode.
func (c *Curve) SetMode(mode Interpolation) {
	c.mode = mode
}

// Evaluate samples the curve at the given time.
//
// An empty curve evaluates to 0. A single-keyframe curve evaluates to that
// keyframe's value for every time. Times outside the keyframe range clamp to
// the first or last value.
func (c *Curve) Evaluate(time float64) float64 {
	if len(c.keyframes) == 0 {
		return 0
	}
	if len(c.keyframes) == 1 {
		return c.keyframes[0].Value
	}

	first := c.keyframes[0]
	last := c.keyframes[len(c.keyframes)-1]
	if time <= first.Time {
		return first.Value
	}
	if time >= last.Time {
		return last.Value
	}

	a, b := c.bracket(time)

	// Zero-length spans never satisfy the bracket condition, so this only
	// trips if keyframe times are mutated mid-evaluation. Hold the earlier
	// value rather than divide by zero.
	if b.Time <= a.Time {
		return a.Value
	}

	t := (time - a.Time) / (b.Time - a.Time)

	switch c.mode {
	case Linear:
		return lerp(a, b, t)
	case Smooth:
		return hermite(a, b, t)
	case Step:
		return a.Value
	case CubicBezier:
		return bezier(a, b, t)
	default:
		return lerp(a, b, t)
	}
}

// StartTime returns the first keyframe's time, or 0 for an empty curve.
func (c *Curve) StartTime() float64 {
	if len(c.keyframes) == 0 {
		return 0
	}
	return c.keyframes[0].Time
}

// EndTime returns the last keyframe's time, or 0 for an empty curve.
func (c *Curve) EndTime() float64 {
	if len(c.keyframes) == 0 {
		return 0
	}
	return c.keyframes[len(c.keyframes)-1].Time
}

// Duration returns EndTime minus StartTime, or 0 for an empty curve.
func (c *Curve) Duration() float64 {
	return c.EndTime() - c.StartTime()
}

// bracket locates the pair of adjacent keyframes [a, b) such that
// a.Time <= time < b.Time. When several keyframes share a time, the last
// satisfying interval wins, which skips zero-length spans entirely.
func (c *Curve) bracket(time float64) (Keyframe, Keyframe) {
	idx := len(c.keyframes) - 2
	for i := 0; i < len(c.keyframes)-1; i++ {
		if time >= c.keyframes[i].Time && time < c.keyframes[i+1].Time {
			idx = i
		}
	}
	return c.keyframes[idx], c.keyframes[idx+1]
}

func (c *Curve) sortKeyframes() {
	// Stable sort keeps insertion order across keys with equal times.
	sort.SliceStable(c.keyframes, func(i, j int) bool {
		return c.keyframes[i].Time < c.keyframes[j].Time
	})
}

func lerp(a, b Keyframe, t float64) float64 {
	return a.Value + (b.Value-a.Value)*t
}

// hermite evaluates the cubic Hermite basis with the segment's outgoing and
// incoming tangents scaled by the segment length.
func hermite(a, b Keyframe, t float64) float64 {
	t2 := t * t
	t3 := t2 * t

	h1 := 2*t3 - 3*t2 + 1
	h2 := -2*t3 + 3*t2
	h3 := t3 - 2*t2 + t
	h4 := t3 - t2

	dt := b.Time - a.Time
	return h1*a.Value + h2*b.Value + h3*a.OutTangent*dt + h4*b.InTangent*dt
}

// bezier builds the four control points from the keyframe values and tangents
// and evaluates the standard cubic Bezier blend at t.
func bezier(a, b Keyframe, t float64) float64 {
	dt := b.Time - a.Time

	p0 := a.Value
	p1 := a.Value + a.OutTangent*dt/3
	p2 := b.Value - b.InTangent*dt/3
	p3 := b.Value

	u := 1 - t
	return u*u*u*p0 + 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t*p3
}
