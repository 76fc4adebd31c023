// Package scene provides the object graph the animation core writes evaluated
// transforms into, and the viewport reads for drawing. It is deliberately
// small: named objects with a transform, managed by a flat registry.
package scene

import "github.com/decker502/animstudio/internal/curve"

// Object is a single named item in the scene with a transform. Rotation is in
// degrees per axis; scale defaults to (1, 1, 1).
type Object struct {
	name string
	kind string

	position curve.Vec3
	rotation curve.Vec3
	scale    curve.Vec3

	visible bool
}

// NewObject creates a visible object with identity transform. kind is a free-
// form type tag used by the viewport ("cube", "sphere", "light", ...).
func NewObject(name, kind string) *Object {
	return &Object{
		name:    name,
		kind:    kind,
		scale:   curve.Vec3{X: 1, Y: 1, Z: 1},
		visible: true,
	}
}

// Name returns the object name.
func (o *Object) Name() string { return o.name }

// Kind returns the object's type tag.
func (o *Object) Kind() string { return o.kind }

// SetName renames the object. Renaming through Manager.Rename keeps the
// registry index consistent; calling this directly only changes the label.
func (o *Object) SetName(name string) { o.name = name }

// Position returns the object position.
func (o *Object) Position() curve.Vec3 { return o.position }

// Rotation returns the object rotation in degrees per axis.
func (o *Object) Rotation() curve.Vec3 { return o.rotation }

// Scale returns the object scale.
func (o *Object) Scale() curve.Vec3 { return o.scale }

// SetPosition sets the object position.
func (o *Object) SetPosition(v curve.Vec3) { o.position = v }

// SetRotation sets the object rotation in degrees per axis.
func (o *Object) SetRotation(v curve.Vec3) { o.rotation = v }

// SetScale sets the object scale.
func (o *Object) SetScale(v curve.Vec3) { o.scale = v }

// IsVisible reports whether the viewport should draw the object.
func (o *Object) IsVisible() bool { return o.visible }

// SetVisible toggles viewport drawing for the object.
func (o *Object) SetVisible(visible bool) { o.visible = visible }
