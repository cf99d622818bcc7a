// Package generator holds the effects that write colors into a pixel buffer
// as a function of time.
package generator

import (
	"math"

	"github.com/coreman2200/arcaluminis-fx/envelope"
	"github.com/coreman2200/arcaluminis-fx/param"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Generator writes its pattern into buf for time now. It only touches the
// indices it affects and never keeps buf past the call.
type Generator interface {
	Generate(buf []pixel.Pixel, now uint32)
	Alive(now uint32) bool
}

// Forever as a Duration keeps a generator alive for the whole clock range.
const Forever uint32 = math.MaxUint32

// Lifetime gives a generator its liveness window.
type Lifetime struct {
	Start    uint32
	Duration uint32
}

func (l Lifetime) Alive(now uint32) bool {
	return envelope.Elapsed(now, l.Start) < l.Duration
}

// Color is the hue, saturation and intensity triple most generators sample.
type Color struct {
	Hue        param.Parameter[uint8]
	Saturation param.Parameter[uint8]
	Intensity  param.Parameter[uint8]
}

// Fixed is a Color of constant parameters.
func Fixed(hue, saturation, intensity uint8) Color {
	return Color{
		Hue:        param.Of(hue),
		Saturation: param.Of(saturation),
		Intensity:  param.Of(intensity),
	}
}

func (c Color) sample(now uint32) (h, s, v uint8) {
	return c.Hue.Sample(now), c.Saturation.Sample(now), c.Intensity.Sample(now)
}

func (c Color) At(now uint32) pixel.Pixel {
	return pixel.FromHSV(c.sample(now))
}

// SolidColor fills the whole buffer with one color.
type SolidColor struct {
	Lifetime
	Color
}

func (g *SolidColor) Generate(buf []pixel.Pixel, now uint32) {
	pixel.Fill(buf, g.At(now))
}

// Gradient sweeps hue from StartHue at index 0 to EndHue at the last index,
// taking the shorter way around the wheel.
type Gradient struct {
	Lifetime
	StartHue   param.Parameter[uint8]
	EndHue     param.Parameter[uint8]
	Saturation param.Parameter[uint8]
	Intensity  param.Parameter[uint8]
}

func (g *Gradient) Generate(buf []pixel.Pixel, now uint32) {
	n := len(buf)
	if n == 0 {
		return
	}
	from := g.StartHue.Sample(now)
	s, v := g.Saturation.Sample(now), g.Intensity.Sample(now)
	if n == 1 {
		buf[0] = pixel.FromHSV(from, s, v)
		return
	}
	d := pixel.HueDelta(from, g.EndHue.Sample(now))
	for i := range buf {
		h := uint8(int(from) + d*i/(n-1))
		buf[i] = pixel.FromHSV(h, s, v)
	}
}

// Stripes alternates two hues in bands of Width pixels. Width is at least 1.
type Stripes struct {
	Lifetime
	Hue1, Hue2 param.Parameter[uint8]
	Saturation param.Parameter[uint8]
	Intensity  param.Parameter[uint8]
	Width      param.Parameter[uint16]
}

func (g *Stripes) Generate(buf []pixel.Pixel, now uint32) {
	s, v := g.Saturation.Sample(now), g.Intensity.Sample(now)
	a := pixel.FromHSV(g.Hue1.Sample(now), s, v)
	b := pixel.FromHSV(g.Hue2.Sample(now), s, v)
	w := int(max(g.Width.Sample(now), 1))
	for i := range buf {
		if (i/w)%2 == 0 {
			buf[i] = a
		} else {
			buf[i] = b
		}
	}
}

// splat adds a peak at center with linear falloff: full intensity at the
// center, reaching zero at ±w. Indices outside buf are skipped.
func splat(buf []pixel.Pixel, center, w int, h, s, v uint8) {
	for off := -w + 1; off < w; off++ {
		i := center + off
		if i < 0 || i >= len(buf) {
			continue
		}
		d := off
		if d < 0 {
			d = -d
		}
		level := uint8(int(v) * (w - d) / w)
		buf[i] = buf[i].Add(pixel.FromHSV(h, s, level))
	}
}

// Chase is a single peak at Position that blends additively into whatever
// the buffer already holds.
type Chase struct {
	Lifetime
	Color
	Position param.Parameter[uint16]
	Width    param.Parameter[uint16]
}

func (g *Chase) Generate(buf []pixel.Pixel, now uint32) {
	h, s, v := g.sample(now)
	w := int(max(g.Width.Sample(now), 1))
	splat(buf, int(g.Position.Sample(now)), w, h, s, v)
}

// Pulse sends two peaks outward from a fixed Position, each moving
// SpreadSpeed pixels per second since Start. The peaks blend like Chase.
type Pulse struct {
	Lifetime
	Color
	Position    uint16
	SpreadSpeed uint16
	Width       param.Parameter[uint16]
}

func (g *Pulse) Generate(buf []pixel.Pixel, now uint32) {
	h, s, v := g.sample(now)
	w := int(max(g.Width.Sample(now), 1))
	dist := int(uint64(envelope.Elapsed(now, g.Start)) * uint64(g.SpreadSpeed) / 1000)
	center := int(g.Position)
	splat(buf, center+dist, w, h, s, v)
	if dist > 0 {
		splat(buf, center-dist, w, h, s, v)
	}
}
