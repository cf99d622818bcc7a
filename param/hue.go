package param

import (
	"github.com/coreman2200/arcaluminis-fx/envelope"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Hue parameters work on the 8-bit color wheel and wrap instead of clamping.

// StaticHue is a fixed point on the color wheel.
type StaticHue uint8

const (
	HueRed     StaticHue = 0
	HueOrange  StaticHue = 30 * 256 / 360
	HueYellow  StaticHue = 60 * 256 / 360
	HueGreen   StaticHue = 120 * 256 / 360
	HueCyan    StaticHue = 180 * 256 / 360
	HueBlue    StaticHue = 240 * 256 / 360
	HueMagenta StaticHue = 300 * 256 / 360
)

// HueFromDegrees converts an angle to the 8-bit wheel.
func HueFromDegrees(deg uint32) StaticHue {
	return StaticHue(deg % 360 * 256 / 360)
}

func (h StaticHue) Sample(uint32) uint8 { return uint8(h) }

// RotatingHue walks the full wheel once per Period starting at Offset.
type RotatingHue struct {
	Start   uint32
	Period  uint32
	Offset  uint8
	Reverse bool
}

func (r RotatingHue) Sample(now uint32) uint8 {
	period := r.Period
	if period == 0 {
		period = 1
	}
	p := envelope.Elapsed(now, r.Start) % period
	step := uint8(uint64(p) * 256 / uint64(period))
	if r.Reverse {
		return r.Offset - step
	}
	return r.Offset + step
}

// HueOscillate swings between From and To and back once per Period, along
// the shorter arc between them.
type HueOscillate struct {
	Start    uint32
	Period   uint32
	From, To uint8
}

func (o HueOscillate) Sample(now uint32) uint8 {
	t := envelope.Triangle[envelope.U8]{Start: o.Start, Period: o.Period}.Sample(now)
	return pixel.LerpHue(o.From, o.To, uint8(t))
}

// DynamicHue offsets Offset by Span hue steps scaled by an envelope. A Span
// of 256 sweeps the whole wheel.
type DynamicHue[V envelope.Value[V]] struct {
	Envelope envelope.Envelope[V]
	Offset   uint8
	Span     uint16
}

func (d DynamicHue[V]) Sample(now uint32) uint8 {
	num, den := d.Envelope.Sample(now).Ratio()
	return d.Offset + uint8(Map(num, den, 0, uint32(d.Span)))
}
