package catalog

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/arcaluminis-fx/param"
)

// Palette names the hues effects draw from, as hex colors so they can be
// matched against a design swatch.
var Palette = map[string]string{
	"ocean":  "#0a96cc",
	"ember":  "#ff5e1a",
	"violet": "#8a2be2",
	"lime":   "#7fff00",
	"rose":   "#ff5e9b",
	"gold":   "#ffc21a",
	"blue":   "#0000ff",
}

// Swatch is a palette color on the 8-bit wheel.
type Swatch struct {
	Hue        param.StaticHue
	Saturation uint8
}

// FromHex converts a hex color to a Swatch. Lightness is dropped; effects
// supply their own intensity.
func FromHex(s string) (Swatch, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Swatch{}, err
	}
	h, sat, _ := c.Hsv()
	return Swatch{
		Hue:        param.HueFromDegrees(uint32(h + 0.5)),
		Saturation: uint8(sat*255 + 0.5),
	}, nil
}

// Color looks up a palette entry, falling back to pure blue.
func Color(name string) Swatch {
	if s, err := FromHex(Palette[name]); err == nil {
		return s
	}
	return Swatch{Hue: param.HueBlue, Saturation: 255}
}
