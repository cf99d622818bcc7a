package pixel

import (
	"image"
	"image/color"
)

// Strip presents a pixel buffer as a one row image so it can be handed to
// image based drawers and encoders.
type Strip []Pixel

func (s Strip) ColorModel() color.Model { return color.NRGBAModel }

func (s Strip) Bounds() image.Rectangle { return image.Rect(0, 0, len(s), 1) }

func (s Strip) At(x, y int) color.Color {
	if y != 0 || x < 0 || x >= len(s) {
		return color.NRGBA{}
	}
	return s[x].NRGBA()
}

// NRGBA copies the strip into a freshly allocated image.
func (s Strip) NRGBA() *image.NRGBA {
	im := image.NewNRGBA(s.Bounds())
	for x := range s {
		im.SetNRGBA(x, 0, s[x].NRGBA())
	}
	return im
}
