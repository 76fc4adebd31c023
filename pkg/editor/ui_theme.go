package editor

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newStudioTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          color.RGBA{210, 210, 215, 255},
				Selected:            color.White,
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: color.RGBA{70, 80, 110, 255},
				SelectedBackground:  color.RGBA{60, 80, 130, 255},
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.RGBA{32, 32, 38, 255}),
				Mask: solidNineSlice(color.RGBA{32, 32, 38, 255}),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(color.RGBA{40, 40, 46, 255}),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{70, 70, 80, 255}),
				Hover:   solidNineSlice(color.RGBA{90, 90, 100, 255}),
				Pressed: solidNineSlice(color.RGBA{55, 55, 65, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     color.White,
				Hover:    color.White,
				Pressed:  color.RGBA{180, 200, 255, 255},
				Disabled: color.Gray{Y: 128},
			},
		},
		SliderTheme: &widget.SliderParams{
			TrackImage: &widget.SliderTrackImage{
				Idle:  solidNineSlice(color.RGBA{60, 60, 70, 255}),
				Hover: solidNineSlice(color.RGBA{80, 80, 90, 255}),
			},
			HandleImage: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{120, 120, 130, 255}),
				Hover:   solidNineSlice(color.RGBA{150, 150, 160, 255}),
				Pressed: solidNineSlice(color.RGBA{100, 100, 110, 255}),
			},
		},
	}
}
