package modifier

import (
	"github.com/coreman2200/arcaluminis-fx/param"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Decay scales every pixel toward black by Rate/65535 each call. Applied to
// a buffer that is not cleared between frames it leaves fading trails.
type Decay struct {
	Rate param.Parameter[uint16]
}

func (m Decay) Modify(buf []pixel.Pixel, now uint32) {
	r := m.Rate.Sample(now)
	if r == 0xFFFF {
		return
	}
	for i := range buf {
		buf[i] = buf[i].ScaleQ16(r)
	}
}

// Trail is Decay at 8-bit resolution: 255 keeps everything, 128 halves.
type Trail struct {
	Rate param.Parameter[uint8]
}

func (m Trail) Modify(buf []pixel.Pixel, now uint32) {
	r := m.Rate.Sample(now)
	if r == 255 {
		return
	}
	for i := range buf {
		buf[i] = buf[i].Scale(r)
	}
}

// Sparkle replaces random pixels with a fixed color. Seed advances once per
// pixel per call, so a given seed and call sequence always lights the same
// pixels.
type Sparkle struct {
	Chance     param.Parameter[uint8]
	Hue        param.Parameter[uint8]
	Saturation param.Parameter[uint8]
	Intensity  param.Parameter[uint8]
	Seed       uint32
}

func (m *Sparkle) next() uint8 {
	m.Seed = m.Seed*1103515245 + 12345
	return uint8(m.Seed >> 24)
}

func (m *Sparkle) Modify(buf []pixel.Pixel, now uint32) {
	chance := m.Chance.Sample(now)
	c := pixel.FromHSV(m.Hue.Sample(now), m.Saturation.Sample(now), m.Intensity.Sample(now))
	for i := range buf {
		if m.next() < chance {
			buf[i] = c
		}
	}
}
