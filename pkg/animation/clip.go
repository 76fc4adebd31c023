// Package animation implements the clip/player/manager evaluation core of the
// studio. A Clip bundles keyframe curves per object and property, a Player
// advances time through one clip and pushes evaluated transforms into the
// scene, and a Manager multiplexes many simultaneous playbacks.
//
// The whole package is single-threaded and frame-driven: all mutation and
// evaluation happen synchronously inside the per-frame Update call on the
// main loop. The playback API never panics or returns errors for missing
// clips, players, or scene objects; such calls no-op with a diagnostic log
// line, because a missing clip must never cost a frame.
package animation

import (
	"sort"

	"github.com/decker502/animstudio/internal/curve"
)

// Property identifies which transform component a curve animates.
type Property int

const (
	PositionX Property = iota
	PositionY
	PositionZ
	RotationX
	RotationY
	RotationZ
	ScaleX
	ScaleY
	ScaleZ
	// Custom is reserved for float properties outside the transform, keyed by
	// curve only. Custom curves still contribute to the clip duration.
	Custom
)

// String returns the property name as it appears in clip files.
func (p Property) String() string {
	switch p {
	case PositionX:
		return "positionX"
	case PositionY:
		return "positionY"
	case PositionZ:
		return "positionZ"
	case RotationX:
		return "rotationX"
	case RotationY:
		return "rotationY"
	case RotationZ:
		return "rotationZ"
	case ScaleX:
		return "scaleX"
	case ScaleY:
		return "scaleY"
	case ScaleZ:
		return "scaleZ"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseProperty converts a property name from a clip file back to a Property.
// The second return value reports whether the name was recognized.
func ParseProperty(s string) (Property, bool) {
	switch s {
	case "positionX":
		return PositionX, true
	case "positionY":
		return PositionY, true
	case "positionZ":
		return PositionZ, true
	case "rotationX":
		return RotationX, true
	case "rotationY":
		return RotationY, true
	case "rotationZ":
		return RotationZ, true
	case "scaleX":
		return ScaleX, true
	case "scaleY":
		return ScaleY, true
	case "scaleZ":
		return ScaleZ, true
	case "custom":
		return Custom, true
	default:
		return Custom, false
	}
}

// Clip is a named bundle of curves keyed by (object, property), representing
// one playable animation. A clip exclusively owns its curves; it is shared by
// reference between the manager's registry and any bound players, and is
// read-only from the players' perspective.
//
// Invariant: duration always equals the maximum curve duration across all
// stored curves; it is recomputed after every structural mutation.
type Clip struct {
	name     string
	duration float64
	looping  bool
	speed    float64

	// object name -> property -> curve
	curves map[string]map[Property]*curve.Curve
}

// NewClip creates an empty clip with the given name, speed 1 and no looping.
func NewClip(name string) *Clip {
	return &Clip{
		name:   name,
		speed:  1.0,
		curves: make(map[string]map[Property]*curve.Curve),
	}
}

// Name returns the clip name.
func (c *Clip) Name() string { return c.name }

// SetName renames the clip.
func (c *Clip) SetName(name string) { c.name = name }

// Duration returns the derived clip duration in seconds.
func (c *Clip) Duration() float64 { return c.duration }

// IsLooping reports the clip's default looping flag.
func (c *Clip) IsLooping() bool { return c.looping }

// SetLooping sets the clip's default looping flag.
func (c *Clip) SetLooping(looping bool) { c.looping = looping }

// Speed returns the clip's default playback speed multiplier.
func (c *Clip) Speed() float64 { return c.speed }

// SetSpeed sets the clip's default playback speed multiplier.
func (c *Clip) SetSpeed(speed float64) { c.speed = speed }

// AddCurve stores a curve for (object, property), replacing any existing one,
// and recomputes the clip duration. The clip takes ownership of the curve.
func (c *Clip) AddCurve(object string, prop Property, cv *curve.Curve) {
	if cv == nil {
		return
	}
	props, ok := c.curves[object]
	if !ok {
		props = make(map[Property]*curve.Curve)
		c.curves[object] = props
	}
	props[prop] = cv
	c.UpdateDuration()
}

// RemoveCurve deletes the curve for (object, property). When the object has
// no curves left its entry is removed entirely. The duration is recomputed.
func (c *Clip) RemoveCurve(object string, prop Property) {
	if props, ok := c.curves[object]; ok {
		delete(props, prop)
		if len(props) == 0 {
			delete(c.curves, object)
		}
	}
	c.UpdateDuration()
}

// Curve returns the curve stored for (object, property), or nil.
func (c *Clip) Curve(object string, prop Property) *curve.Curve {
	if props, ok := c.curves[object]; ok {
		return props[prop]
	}
	return nil
}

// HasCurve reports whether a curve exists for (object, property).
func (c *Clip) HasCurve(object string, prop Property) bool {
	return c.Curve(object, prop) != nil
}

// AddPositionCurve stores the three axes of a Vector3Curve under the
// PositionX/Y/Z properties for the object.
func (c *Clip) AddPositionCurve(object string, v *curve.Vector3Curve) {
	c.addVector3(object, v, PositionX, PositionY, PositionZ)
}

// AddRotationCurve stores the three axes of a Vector3Curve under the
// RotationX/Y/Z properties for the object.
func (c *Clip) AddRotationCurve(object string, v *curve.Vector3Curve) {
	c.addVector3(object, v, RotationX, RotationY, RotationZ)
}

// AddScaleCurve stores the three axes of a Vector3Curve under the
// ScaleX/Y/Z properties for the object.
func (c *Clip) AddScaleCurve(object string, v *curve.Vector3Curve) {
	c.addVector3(object, v, ScaleX, ScaleY, ScaleZ)
}

func (c *Clip) addVector3(object string, v *curve.Vector3Curve, px, py, pz Property) {
	if v == nil {
		return
	}
	props, ok := c.curves[object]
	if !ok {
		props = make(map[Property]*curve.Curve)
		c.curves[object] = props
	}
	props[px] = v.X
	props[py] = v.Y
	props[pz] = v.Z
	c.UpdateDuration()
}

// HasAnimationForObject reports whether the clip stores any curve for the
// named object.
func (c *Clip) HasAnimationForObject(object string) bool {
	_, ok := c.curves[object]
	return ok
}

// EvaluatePosition samples the object's position at the given time. Axes
// without a curve hold the rest value 0.
func (c *Clip) EvaluatePosition(object string, time float64) curve.Vec3 {
	return c.evaluateVec3(object, time, PositionX, PositionY, PositionZ, curve.Vec3{})
}

// EvaluateRotation samples the object's rotation (degrees) at the given time.
// Axes without a curve hold the rest value 0.
func (c *Clip) EvaluateRotation(object string, time float64) curve.Vec3 {
	return c.evaluateVec3(object, time, RotationX, RotationY, RotationZ, curve.Vec3{})
}

// EvaluateScale samples the object's scale at the given time. Axes without a
// curve hold the rest value 1.
func (c *Clip) EvaluateScale(object string, time float64) curve.Vec3 {
	return c.evaluateVec3(object, time, ScaleX, ScaleY, ScaleZ, curve.Vec3{X: 1, Y: 1, Z: 1})
}

func (c *Clip) evaluateVec3(object string, time float64, px, py, pz Property, rest curve.Vec3) curve.Vec3 {
	result := rest
	props, ok := c.curves[object]
	if !ok {
		return result
	}
	if cv, ok := props[px]; ok {
		result.X = cv.Evaluate(time)
	}
	if cv, ok := props[py]; ok {
		result.Y = cv.Evaluate(time)
	}
	if cv, ok := props[pz]; ok {
		result.Z = cv.Evaluate(time)
	}
	return result
}

// AnimatedObjects returns the names of all objects the clip stores curves
// for, sorted for deterministic iteration.
func (c *Clip) AnimatedObjects() []string {
	objects := make([]string, 0, len(c.curves))
	for name := range c.curves {
		objects = append(objects, name)
	}
	sort.Strings(objects)
	return objects
}

// UpdateDuration recomputes the clip duration as the maximum curve duration
// across all stored curves. It runs automatically after every structural
// mutation; callers editing curves in place (timeline editor) should call it
// when a keyframe moves past the clip end.
func (c *Clip) UpdateDuration() {
	c.duration = 0
	for _, props := range c.curves {
		for _, cv := range props {
			if d := cv.Duration(); d > c.duration {
				c.duration = d
			}
		}
	}
}
