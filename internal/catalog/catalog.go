// Package catalog is the stock set of effects the player can schedule.
package catalog

import (
	"github.com/coreman2200/arcaluminis-fx/builder"
	"github.com/coreman2200/arcaluminis-fx/ease"
	"github.com/coreman2200/arcaluminis-fx/envelope"
	"github.com/coreman2200/arcaluminis-fx/generator"
	"github.com/coreman2200/arcaluminis-fx/internal/show"
	"github.com/coreman2200/arcaluminis-fx/modifier"
	"github.com/coreman2200/arcaluminis-fx/param"
)

// Effects lists every stock effect by name.
var Effects = map[string]show.Factory{
	"pulse":   Pulse,
	"rainbow": Rainbow,
	"comet":   Comet,
	"sparkle": Sparkle,
	"breathe": Breathe,
	"stripes": Stripes,
	"ripple":  Ripple,
	"scanner": Scanner,
}

// Register adds every stock effect to reg.
func Register(reg *show.Registry) {
	for name, f := range Effects {
		reg.Register(name, f)
	}
}

func last(n int) uint16 { return uint16(max(n-1, 0)) }

// Pulse sends a blue pulse out from the middle of the strip every two
// seconds, clearing the strip between frames.
func Pulse(start uint32, n int) generator.Generator {
	sw := Color("blue")
	return generator.Clear{Inner: &generator.Pulse{
		Lifetime:    generator.Lifetime{Start: start, Duration: 2000},
		Color:       generator.Fixed(uint8(sw.Hue), sw.Saturation, 255),
		Position:    uint16(n / 2),
		SpreadSpeed: 20,
		Width:       param.Of[uint16](3),
	}}
}

// Rainbow is a half-wheel gradient whose hues rotate once every four
// seconds.
func Rainbow(start uint32, n int) generator.Generator {
	grad := &generator.Gradient{
		Lifetime:   generator.Lifetime{Start: start, Duration: generator.Forever},
		StartHue:   param.HueRed,
		EndHue:     param.HueCyan,
		Saturation: param.Of[uint8](255),
		Intensity:  param.Of[uint8](255),
	}
	return builder.WithModifier(grad, modifier.HueShift{
		Amount: param.RotatingHue{Start: start, Period: 4000},
	})
}

// Comet is a bright head that speeds up and slows down as it laps the strip,
// leaving a blurred fading tail.
func Comet(start uint32, n int) generator.Generator {
	sw := Color("ember")
	pos := envelope.VelocityIntegral[envelope.U16]{
		Start:    start,
		Velocity: envelope.Sine[envelope.U16]{Start: start, Period: 8000},
		Rate:     1,
	}
	head := &generator.Chase{
		Lifetime: generator.Lifetime{Start: start, Duration: 60000},
		Color:    generator.Fixed(uint8(sw.Hue), sw.Saturation, 255),
		Position: param.Dynamic[envelope.U16, uint16]{Envelope: pos, Min: 0, Max: last(n)},
		Width:    param.Of[uint16](2),
	}
	return builder.New(head).
		With(modifier.Trail{Rate: param.Of[uint8](200)}).
		With(modifier.Blur{Strength: param.Of[uint8](96)}).
		Build()
}

// Sparkle twinkles white points over a dim ocean wash.
func Sparkle(start uint32, n int) generator.Generator {
	sw := Color("ocean")
	base := &generator.SolidColor{
		Lifetime: generator.Lifetime{Start: start, Duration: generator.Forever},
		Color:    generator.Fixed(uint8(sw.Hue), sw.Saturation, 40),
	}
	return builder.New(base).
		With(&modifier.Sparkle{
			Chance:     param.Of[uint8](6),
			Hue:        param.HueRed,
			Saturation: param.Of[uint8](0),
			Intensity:  param.Of[uint8](255),
			Seed:       start | 1,
		}).
		With(modifier.Blur{Strength: param.Of[uint8](128)}).
		Build()
}

// Breathe eases the whole strip in and out of violet every four seconds.
func Breathe(start uint32, n int) generator.Generator {
	sw := Color("violet")
	level := envelope.Eased[envelope.U8]{
		Inner: envelope.Triangle[envelope.U8]{Start: start, Period: 4000},
		Curve: ease.InOutQuad,
	}
	return &generator.SolidColor{
		Lifetime: generator.Lifetime{Start: start, Duration: generator.Forever},
		Color: generator.Color{
			Hue:        sw.Hue,
			Saturation: param.Of(sw.Saturation),
			Intensity:  param.Dynamic[envelope.U8, uint8]{Envelope: level, Min: 8, Max: 255},
		},
	}
}

// Stripes scrolls gold and rose bands along the strip.
func Stripes(start uint32, n int) generator.Generator {
	const width = 4
	a, b := Color("gold"), Color("rose")
	bands := &generator.Stripes{
		Lifetime:   generator.Lifetime{Start: start, Duration: generator.Forever},
		Hue1:       a.Hue,
		Hue2:       b.Hue,
		Saturation: param.Of[uint8](230),
		Intensity:  param.Of[uint8](200),
		Width:      param.Of[uint16](width),
	}
	return builder.WithModifier(bands, modifier.Shift{
		Offset: param.Dynamic[envelope.U16, int]{
			Envelope: envelope.Sawtooth[envelope.U16]{Start: start, Period: 1600},
			Min:      0,
			Max:      2 * width,
		},
	})
}

// Ripple launches two pulses whose brightness follows an ADSR shape, over a
// fading trail.
func Ripple(start uint32, n int) generator.Generator {
	sw := Color("lime")
	level := param.Level[envelope.U8](envelope.ADSR[envelope.U8]{
		Start:        start,
		Attack:       150,
		Decay:        350,
		SustainLevel: 150,
		Sustain:      700,
		Release:      800,
	})
	drop := func(at uint16, hue uint8) *generator.Pulse {
		return &generator.Pulse{
			Lifetime: generator.Lifetime{Start: start, Duration: 2000},
			Color: generator.Color{
				Hue:        param.Of(hue),
				Saturation: param.Of(sw.Saturation),
				Intensity:  level,
			},
			Position:    at,
			SpreadSpeed: 12,
			Width:       param.Of[uint16](2),
		}
	}
	drops := generator.Layer{
		drop(uint16(n/4), uint8(sw.Hue)),
		drop(uint16(3*n/4), uint8(sw.Hue)+24),
	}
	return builder.WithModifier(drops, modifier.Decay{Rate: param.Of[uint16](0xB000)})
}

// Scanner sweeps a red-to-orange eye from the ends to the middle and back,
// mirrored about the center.
func Scanner(start uint32, n int) generator.Generator {
	eye := &generator.Chase{
		Lifetime: generator.Lifetime{Start: start, Duration: generator.Forever},
		Color: generator.Color{
			Hue:        param.HueOscillate{Start: start, Period: 6000, From: uint8(param.HueRed), To: uint8(param.HueOrange)},
			Saturation: param.Of[uint8](255),
			Intensity:  param.Of[uint8](255),
		},
		Position: param.Dynamic[envelope.U16, uint16]{
			Envelope: envelope.Triangle[envelope.U16]{Start: start, Period: 2000},
			Min:      0,
			Max:      uint16(max(n/2-1, 0)),
		},
		Width: param.Of[uint16](3),
	}
	return builder.New(eye).
		With(modifier.Trail{Rate: param.Of[uint8](160)}).
		With(modifier.Mirror{Center: n / 2}).
		Build()
}
