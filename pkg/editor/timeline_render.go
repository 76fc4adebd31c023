package editor

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/animstudio/pkg/animation"
)

const (
	trackLabelWidth = 150
	rulerHeight     = 22
	trackRowHeight  = 24
	keyframeRadius  = 4
	keyframeHitSlop = 6
)

var (
	timelineBackground = color.RGBA{28, 28, 32, 255}
	rulerBackground    = color.RGBA{40, 40, 46, 255}
	rowEvenBackground  = color.RGBA{34, 34, 40, 255}
	rowOddBackground   = color.RGBA{38, 38, 44, 255}
	tickColor          = color.RGBA{90, 90, 100, 255}
	labelBandColor     = color.RGBA{24, 24, 28, 255}
	keyframeColor      = color.RGBA{240, 196, 60, 255}
	keyframeSelected   = color.RGBA{255, 255, 255, 255}
	playheadColor      = color.RGBA{230, 70, 70, 255}
	durationMarkColor  = color.RGBA{120, 170, 230, 255}
)

// TimelineView draws a Timeline into a fixed screen rectangle and translates
// mouse and keyboard input into timeline edits.
type TimelineView struct {
	Timeline *Timeline

	X, Y, W, H int

	scrubbing   bool
	draggingKey bool
}

// NewTimelineView creates a view over the given timeline model.
func NewTimelineView(tl *Timeline, x, y, w, h int) *TimelineView {
	return &TimelineView{Timeline: tl, X: x, Y: y, W: w, H: h}
}

// Contains reports whether a screen point falls inside the view.
func (v *TimelineView) Contains(x, y int) bool {
	return x >= v.X && x < v.X+v.W && y >= v.Y && y < v.Y+v.H
}

// timeToX converts clip time to a screen x coordinate.
func (v *TimelineView) timeToX(t float64) float32 {
	return float32(v.X+trackLabelWidth) + float32(t*v.Timeline.PixelsPerSecond())
}

// xToTime converts a screen x coordinate to clip time, clamped at 0.
func (v *TimelineView) xToTime(x int) float64 {
	t := float64(x-v.X-trackLabelWidth) / v.Timeline.PixelsPerSecond()
	return math.Max(0, t)
}

func (v *TimelineView) rowY(row int) int {
	return v.Y + rulerHeight + row*trackRowHeight
}

// hitKeyframe finds the keyframe marker under a screen point.
func (v *TimelineView) hitKeyframe(mx, my int) (track, key int, ok bool) {
	tl := v.Timeline
	for ti := range tl.Tracks() {
		cy := v.rowY(ti) + trackRowHeight/2
		if my < cy-keyframeHitSlop || my > cy+keyframeHitSlop {
			continue
		}
		c := tl.trackCurve(ti)
		for ki, k := range c.Keyframes() {
			kx := int(v.timeToX(k.Time))
			if mx >= kx-keyframeHitSlop && mx <= kx+keyframeHitSlop {
				return ti, ki, true
			}
		}
	}
	return 0, 0, false
}

// Update processes one frame of input. Scrubbing applies the pose to the
// given scene immediately.
func (v *TimelineView) Update(scn animation.Scene) {
	tl := v.Timeline
	mx, my := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && v.Contains(mx, my) {
		switch {
		case my < v.Y+rulerHeight:
			v.scrubbing = true
			tl.Scrub(v.xToTime(mx), scn)
		default:
			if track, key, ok := v.hitKeyframe(mx, my); ok {
				tl.Select(track, key)
				v.draggingKey = true
			} else {
				tl.ClearSelection()
			}
		}
	}

	// Right click on a track row inserts a keyframe at the snapped time.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && v.Contains(mx, my) && my >= v.Y+rulerHeight {
		track := (my - v.Y - rulerHeight) / trackRowHeight
		tl.InsertKeyframe(track, v.xToTime(mx))
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if v.scrubbing {
			tl.Scrub(v.xToTime(mx), scn)
		}
		if v.draggingKey {
			tl.MoveSelected(v.xToTime(mx))
		}
	} else {
		v.scrubbing = false
		v.draggingKey = false
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 && v.Contains(mx, my) {
		v.ZoomBy(wheelY)
	}

	if _, key := tl.Selection(); key >= 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			tl.DeleteSelected()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
			tl.NudgeSelected(-1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
			tl.NudgeSelected(1)
		}
	}
}

// ZoomBy applies a wheel step to the timeline zoom.
func (v *TimelineView) ZoomBy(wheelY float64) {
	if wheelY > 0 {
		v.Timeline.ZoomBy(1.2)
	} else {
		v.Timeline.ZoomBy(1 / 1.2)
	}
}

// Draw renders the ruler, track rows, keyframe markers and playhead.
func (v *TimelineView) Draw(screen *ebiten.Image) {
	tl := v.Timeline
	x, y := float32(v.X), float32(v.Y)
	w, h := float32(v.W), float32(v.H)

	vector.DrawFilledRect(screen, x, y, w, h, timelineBackground, false)
	vector.DrawFilledRect(screen, x, y, w, rulerHeight, rulerBackground, false)

	tracks := tl.Tracks()
	for i := range tracks {
		rowColor := rowEvenBackground
		if i%2 == 1 {
			rowColor = rowOddBackground
		}
		vector.DrawFilledRect(screen, x, float32(v.rowY(i)), w, trackRowHeight, rowColor, false)
	}

	// Label band separator.
	vector.DrawFilledRect(screen, x, y+rulerHeight, trackLabelWidth, h-rulerHeight, labelBandColor, false)
	for i, track := range tracks {
		ebitenutil.DebugPrintAt(screen, track.Object+"."+track.Property.String(), v.X+4, v.rowY(i)+4)
	}

	// Second ticks on the ruler.
	visibleSeconds := float64(v.W-trackLabelWidth) / tl.PixelsPerSecond()
	for s := 0; float64(s) <= visibleSeconds; s++ {
		tx := v.timeToX(float64(s))
		vector.StrokeLine(screen, tx, y, tx, y+h, 1, tickColor, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%ds", s), int(tx)+2, v.Y+4)
	}

	// Clip end marker.
	if d := tl.Duration(); d > 0 {
		dx := v.timeToX(d)
		vector.StrokeLine(screen, dx, y, dx, y+h, 1, durationMarkColor, false)
	}

	// Keyframe markers.
	selTrack, selKey := tl.Selection()
	for ti := range tracks {
		cy := float32(v.rowY(ti) + trackRowHeight/2)
		for ki, k := range tl.trackCurve(ti).Keyframes() {
			clr := keyframeColor
			radius := float32(keyframeRadius)
			if ti == selTrack && ki == selKey {
				clr = keyframeSelected
				radius += 2
			}
			vector.DrawFilledCircle(screen, v.timeToX(k.Time), cy, radius, clr, true)
		}
	}

	// Playhead.
	px := v.timeToX(tl.Playhead())
	vector.StrokeLine(screen, px, y, px, y+h, 2, playheadColor, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.2fs", tl.Playhead()), int(px)+4, v.Y+v.H-16)
}
