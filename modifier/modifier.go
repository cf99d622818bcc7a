// Package modifier holds in-place transforms applied to a generated buffer.
package modifier

import (
	"github.com/coreman2200/arcaluminis-fx/param"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Modifier rewrites buf in place for time now. Modifiers may keep state of
// their own but never hold on to buf.
type Modifier interface {
	Modify(buf []pixel.Pixel, now uint32)
}

// Func adapts a plain function.
type Func func(buf []pixel.Pixel, now uint32)

func (f Func) Modify(buf []pixel.Pixel, now uint32) { f(buf, now) }

// Brightness scales every pixel by Factor/255.
type Brightness struct {
	Factor param.Parameter[uint8]
}

func (m Brightness) Modify(buf []pixel.Pixel, now uint32) {
	f := m.Factor.Sample(now)
	if f == 255 {
		return
	}
	for i := range buf {
		buf[i] = buf[i].Scale(f)
	}
}

// Saturation scales each pixel's saturation by Factor/255. Zero is grayscale.
type Saturation struct {
	Factor param.Parameter[uint8]
}

func (m Saturation) Modify(buf []pixel.Pixel, now uint32) {
	f := m.Factor.Sample(now)
	if f == 255 {
		return
	}
	for i := range buf {
		buf[i] = buf[i].AdjustSaturation(f)
	}
}

// HueShift rotates every pixel's hue by Amount.
type HueShift struct {
	Amount param.Parameter[uint8]
}

func (m HueShift) Modify(buf []pixel.Pixel, now uint32) {
	a := m.Amount.Sample(now)
	if a == 0 {
		return
	}
	for i := range buf {
		buf[i] = buf[i].ShiftHue(a)
	}
}

// GammaCorrection applies the 2.2 gamma table.
type GammaCorrection struct{}

func (GammaCorrection) Modify(buf []pixel.Pixel, _ uint32) {
	for i := range buf {
		buf[i] = buf[i].GammaCorrect()
	}
}
