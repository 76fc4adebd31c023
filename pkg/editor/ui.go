package editor

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Callbacks wires toolbar and clip list events to the application.
type Callbacks struct {
	OnPlay         func()
	OnPause        func()
	OnStop         func()
	OnRestart      func()
	OnLoopToggled  func(bool)
	OnClipSelected func(name string)
}

// Controls owns the widget tree: a transport toolbar along the top and a clip
// list down the right edge.
type Controls struct {
	ui       *ebitenui.UI
	clipList *widget.List

	loopButton *widget.Button
	looping    bool

	entries  []any
	suppress bool

	callbacks Callbacks
}

// NewControls builds the widget tree. It panics when the bundled font cannot
// be parsed, which only happens with a corrupted build.
func NewControls(clips []string, cb Callbacks) *Controls {
	c := &Controls{callbacks: cb}
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newStudioTheme(&fontFace)

	toolbar := c.buildToolbar(ui.PrimaryTheme, &fontFace)
	clipPanel := c.buildClipPanel(ui.PrimaryTheme, &fontFace)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	toolbar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	clipPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(toolbar)
	root.AddChild(clipPanel)
	ui.Container = root

	c.ui = ui
	c.SetClips(clips)
	return c
}

// Update advances the widget tree; call once per frame before Draw.
func (c *Controls) Update() {
	c.ui.Update()
}

// Draw renders the widget tree over the scene.
func (c *Controls) Draw(screen *ebiten.Image) {
	c.ui.Draw(screen)
}

// SetClips replaces the clip list entries without firing selection events.
func (c *Controls) SetClips(names []string) {
	c.suppress = true
	entries := make([]any, len(names))
	for i, name := range names {
		entries[i] = name
	}
	c.entries = entries
	c.clipList.SetEntries(entries)
	c.suppress = false
}

// SelectClip highlights a clip in the list without firing selection events.
func (c *Controls) SelectClip(name string) {
	for _, e := range c.entries {
		if e == name {
			c.suppress = true
			c.clipList.SetSelectedEntry(e)
			c.suppress = false
			return
		}
	}
}

// SetLooping updates the loop toggle label to match the player state.
func (c *Controls) SetLooping(looping bool) {
	c.looping = looping
	if text := c.loopButton.Text(); text != nil {
		text.Label = loopLabel(looping)
	}
}

func loopLabel(looping bool) string {
	return fmt.Sprintf("Loop: %v", map[bool]string{true: "On", false: "Off"}[looping])
}

func (c *Controls) buildToolbar(theme *widget.Theme, fontFace *text.Face) *widget.Container {
	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 40),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 6, Right: 6}),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{50, 50, 58, 255})),
	)

	transport := []struct {
		label string
		fire  func()
	}{
		{"Play", c.callbacks.OnPlay},
		{"Pause", c.callbacks.OnPause},
		{"Stop", c.callbacks.OnStop},
		{"Restart", c.callbacks.OnRestart},
	}
	for _, action := range transport {
		fire := action.fire
		toolbar.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(action.label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if fire != nil {
					fire()
				}
			}),
		))
	}

	c.loopButton = widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(loopLabel(false), fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(80, 28)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			c.SetLooping(!c.looping)
			if c.callbacks.OnLoopToggled != nil {
				c.callbacks.OnLoopToggled(c.looping)
			}
		}),
	)
	toolbar.AddChild(c.loopButton)

	return toolbar
}

func (c *Controls) buildClipPanel(theme *widget.Theme, fontFace *text.Face) *widget.Container {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(180, 260),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 6, Right: 6}),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 46, 255})),
	)

	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Clips", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	))

	c.clipList = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if name, ok := e.(string); ok {
				return name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if c.suppress || c.callbacks.OnClipSelected == nil {
				return
			}
			if name, ok := args.Entry.(string); ok {
				c.callbacks.OnClipSelected(name)
			}
		}),
	)
	c.clipList.GetWidget().MinHeight = 220
	panel.AddChild(c.clipList)

	return panel
}
