package editor

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/animstudio/internal/curve"
	"github.com/decker502/animstudio/pkg/scene"
)

const (
	cameraNearPlane  = 0.1
	cameraMinPitch   = -89
	cameraMaxPitch   = 89
	cameraMinZoom    = 2
	cameraMaxZoom    = 80
	viewportFOV      = 60 // degrees, vertical
	viewportGridHalf = 10 // grid extends -N..N on the ground plane
)

var (
	viewportBackground = color.RGBA{18, 20, 24, 255}
	gridColor          = color.RGBA{52, 56, 62, 255}
	axisXColor         = color.RGBA{200, 80, 80, 255}
	axisZColor         = color.RGBA{80, 110, 200, 255}
	objectColor        = color.RGBA{200, 200, 210, 255}
	objectAnimColor    = color.RGBA{120, 200, 130, 255}
)

// Camera is an orbit camera around a target point. Yaw and pitch are in
// degrees; distance is clamped to a usable zoom range.
type Camera struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	Target   curve.Vec3
}

// NewCamera returns the default three-quarter view of the origin.
func NewCamera() Camera {
	return Camera{Yaw: 45, Pitch: 30, Distance: 14}
}

// Orbit rotates the camera around the target, clamping pitch short of the
// poles so the view never flips.
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	c.Yaw = math.Mod(c.Yaw+deltaYaw, 360)
	c.Pitch = clamp(c.Pitch+deltaPitch, cameraMinPitch, cameraMaxPitch)
}

// Zoom moves the camera along its view ray.
func (c *Camera) Zoom(delta float64) {
	c.Distance = clamp(c.Distance+delta, cameraMinZoom, cameraMaxZoom)
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() curve.Vec3 {
	yaw := c.Yaw * math.Pi / 180
	pitch := c.Pitch * math.Pi / 180
	return curve.Vec3{
		X: c.Target.X + c.Distance*math.Cos(pitch)*math.Sin(yaw),
		Y: c.Target.Y + c.Distance*math.Sin(pitch),
		Z: c.Target.Z + c.Distance*math.Cos(pitch)*math.Cos(yaw),
	}
}

// Viewport renders the scene's objects through a perspective projection and
// handles orbit/zoom mouse input inside its screen rectangle.
type Viewport struct {
	Camera Camera

	X, Y, W, H int

	orbiting     bool
	lastX, lastY int

	// Highlight predicate; objects it accepts draw in the animated color.
	Animated func(name string) bool
}

// NewViewport creates a viewport with the default camera.
func NewViewport(x, y, w, h int) *Viewport {
	return &Viewport{Camera: NewCamera(), X: x, Y: y, W: w, H: h}
}

// Contains reports whether a screen point falls inside the viewport.
func (v *Viewport) Contains(x, y int) bool {
	return x >= v.X && x < v.X+v.W && y >= v.Y && y < v.Y+v.H
}

// Project maps a world point to viewport screen coordinates. ok is false for
// points at or behind the near plane; such points must not be drawn.
func (v *Viewport) Project(p curve.Vec3) (x, y float64, ok bool) {
	eye := v.Camera.Eye()

	forward := normalize(sub(v.Camera.Target, eye))
	right := normalize(cross(forward, curve.Vec3{Y: 1}))
	up := cross(right, forward)

	d := sub(p, eye)
	cx, cy, cz := dot(d, right), dot(d, up), dot(d, forward)
	if cz < cameraNearPlane {
		return 0, 0, false
	}

	focal := float64(v.H) / 2 / math.Tan(viewportFOV*math.Pi/360)
	x = float64(v.X) + float64(v.W)/2 + cx*focal/cz
	y = float64(v.Y) + float64(v.H)/2 - cy*focal/cz
	return x, y, true
}

// depth returns the view-space distance to a point, used for size attenuation.
func (v *Viewport) depth(p curve.Vec3) float64 {
	eye := v.Camera.Eye()
	forward := normalize(sub(v.Camera.Target, eye))
	return dot(sub(p, eye), forward)
}

// Update handles one frame of orbit and zoom input.
func (v *Viewport) Update() {
	mx, my := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && v.Contains(mx, my) {
		v.orbiting = true
		v.lastX, v.lastY = mx, my
	}
	if v.orbiting {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			v.Camera.Orbit(float64(mx-v.lastX)*0.4, float64(my-v.lastY)*0.4)
			v.lastX, v.lastY = mx, my
		} else {
			v.orbiting = false
		}
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 && v.Contains(mx, my) {
		v.Camera.Zoom(-wheelY)
	}
}

// Draw renders the ground grid, world axes and every visible object.
func (v *Viewport) Draw(screen *ebiten.Image, objects []*scene.Object) {
	vector.DrawFilledRect(screen, float32(v.X), float32(v.Y), float32(v.W), float32(v.H), viewportBackground, false)

	v.drawGrid(screen)

	for _, obj := range objects {
		if !obj.IsVisible() {
			continue
		}
		pos := obj.Position()
		x, y, ok := v.Project(pos)
		if !ok {
			continue
		}

		// Marker size follows scale and falls off with distance.
		size := math.Max(math.Abs(obj.Scale().X), 0.1)
		radius := clamp(size*60/v.depth(pos), 2, 60)

		clr := objectColor
		if v.Animated != nil && v.Animated(obj.Name()) {
			clr = objectAnimColor
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius), clr, true)
		ebitenutil.DebugPrintAt(screen, obj.Name(), int(x)+int(radius)+2, int(y)-6)
	}
}

// drawGrid draws ground-plane lines, with the two axes through the origin
// picked out in color.
func (v *Viewport) drawGrid(screen *ebiten.Image) {
	for i := -viewportGridHalf; i <= viewportGridHalf; i++ {
		clrX, clrZ := gridColor, gridColor
		if i == 0 {
			clrX, clrZ = axisXColor, axisZColor
		}
		fi := float64(i)
		v.strokeWorldLine(screen,
			curve.Vec3{X: -viewportGridHalf, Z: fi},
			curve.Vec3{X: viewportGridHalf, Z: fi}, clrX)
		v.strokeWorldLine(screen,
			curve.Vec3{X: fi, Z: -viewportGridHalf},
			curve.Vec3{X: fi, Z: viewportGridHalf}, clrZ)
	}
}

// strokeWorldLine projects a world segment and draws it when both endpoints
// are in front of the camera. Segments crossing the near plane are dropped
// rather than clipped; at grid scale the difference is invisible.
func (v *Viewport) strokeWorldLine(screen *ebiten.Image, a, b curve.Vec3, clr color.Color) {
	x0, y0, ok0 := v.Project(a)
	x1, y1, ok1 := v.Project(b)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, false)
}

func sub(a, b curve.Vec3) curve.Vec3 {
	return curve.Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func dot(a, b curve.Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b curve.Vec3) curve.Vec3 {
	return curve.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func normalize(v curve.Vec3) curve.Vec3 {
	l := math.Sqrt(dot(v, v))
	if l == 0 {
		return v
	}
	return curve.Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}
