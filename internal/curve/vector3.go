package curve

// Vec3 is a 3-component vector used for positions, Euler rotations (degrees)
// and scales.
type Vec3 struct {
	X, Y, Z float64
}

// Vector3Curve composes three independent scalar curves for a 3-component
// property. All three sub-curves share the interpolation mode they were
// constructed with; modes changed on individual axes afterwards are not
// re-synchronized.
type Vector3Curve struct {
	X, Y, Z *Curve
}

// NewVector3 creates a Vector3Curve whose three axes use the given mode.
func NewVector3(mode Interpolation) *Vector3Curve {
	return &Vector3Curve{
		X: New(mode),
		Y: New(mode),
		Z: New(mode),
	}
}

// AddKeyframe adds one keyframe per axis at the given time.
func (v *Vector3Curve) AddKeyframe(time float64, value Vec3) {
	v.X.AddKeyframe(time, value.X)
	v.Y.AddKeyframe(time, value.Y)
	v.Z.AddKeyframe(time, value.Z)
}

// Evaluate samples the three axes independently.
func (v *Vector3Curve) Evaluate(time float64) Vec3 {
	return Vec3{
		X: v.X.Evaluate(time),
		Y: v.Y.Evaluate(time),
		Z: v.Z.Evaluate(time),
	}
}

// Duration returns the longest duration among the three axes.
func (v *Vector3Curve) Duration() float64 {
	d := v.X.Duration()
	if yd := v.Y.Duration(); yd > d {
		d = yd
	}
	if zd := v.Z.Duration(); zd > d {
		d = zd
	}
	return d
}
