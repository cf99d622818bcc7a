// Package ease provides stateless curve shaping functions over [0,1].
//
// Every curve returns exactly 0 for t <= 0 and exactly 1 for t >= 1, so a
// curve can be dropped in front of any ramp without disturbing its ends.
package ease

import "math"

// Func maps progress t in [0,1] to eased progress. Parameterized curves
// such as Elastic and Back provide Funcs as method values.
type Func func(t float32) float32

func edge(t float32) (float32, bool) {
	if t <= 0 {
		return 0, true
	}
	if t >= 1 {
		return 1, true
	}
	return 0, false
}

func pow2(x float32) float32 { return float32(math.Exp2(float64(x))) }

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }

func Linear(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	return t
}

func InQuad(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	return t * t
}

func OutQuad(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	return t * (2 - t)
}

func InOutQuad(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func InCubic(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	return t * t * t
}

func OutCubic(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	t--
	return t*t*t + 1
}

func InOutCubic(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	t = 2*t - 2
	return 1 + t*t*t/2
}

func InQuart(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	return t * t * t * t
}

func OutQuart(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	t--
	return 1 - t*t*t*t
}

func InOutQuart(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	t--
	return 1 - 8*t*t*t*t
}

func InExpo(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	return pow2(10 * (t - 1))
}

func OutExpo(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	return 1 - pow2(-10*t)
}

func InOutExpo(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	if t < 0.5 {
		return pow2(20*t-10) / 2
	}
	return (2 - pow2(-20*t+10)) / 2
}

const (
	bounceN = 7.5625
	bounceD = 2.75
)

func OutBounce(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	switch {
	case t < 1/bounceD:
		return bounceN * t * t
	case t < 2/bounceD:
		t -= 1.5 / bounceD
		return bounceN*t*t + 0.75
	case t < 2.5/bounceD:
		t -= 2.25 / bounceD
		return bounceN*t*t + 0.9375
	default:
		t -= 2.625 / bounceD
		return bounceN*t*t + 0.984375
	}
}

func InBounce(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	return 1 - OutBounce(1-t)
}

func InOutBounce(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	if t < 0.5 {
		return (1 - OutBounce(1-2*t)) / 2
	}
	return (1 + OutBounce(2*t-1)) / 2
}

// Elastic is a spring curve; Period is in units of the whole curve.
type Elastic struct {
	Amplitude float32
	Period    float32
}

// StandardElastic is the usual amplitude 1, period 0.3 spring.
var StandardElastic = Elastic{Amplitude: 1, Period: 0.3}

func (e Elastic) period() float32 {
	if e.Period <= 0 {
		return StandardElastic.Period
	}
	return e.Period
}

func (e Elastic) In(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	p := e.period()
	s := p / 4
	return -(e.Amplitude * pow2(10*(t-1)) * sin((t-1-s)*2*math.Pi/p))
}

func (e Elastic) Out(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	p := e.period()
	s := p / 4
	return e.Amplitude*pow2(-10*t)*sin((t-s)*2*math.Pi/p) + 1
}

func (e Elastic) InOut(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	p := e.period()
	s := p / 4
	t = 2*t - 1
	if t < 0 {
		return -0.5 * (e.Amplitude * pow2(10*t) * sin((t-s)*2*math.Pi/p))
	}
	return 0.5*e.Amplitude*pow2(-10*t)*sin((t-s)*2*math.Pi/p) + 1
}

// Back overshoots past the target before settling.
type Back struct {
	Overshoot float32
}

var StandardBack = Back{Overshoot: 1.70158}

func (b Back) In(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	c1 := b.Overshoot
	c3 := c1 + 1
	return c3*t*t*t - c1*t*t
}

func (b Back) Out(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	c1 := b.Overshoot
	c3 := c1 + 1
	t--
	return 1 + c3*t*t*t + c1*t*t
}

func (b Back) InOut(t float32) float32 {
	if v, ok := edge(t); ok {
		return v
	}
	c2 := b.Overshoot * 1.525
	if t < 0.5 {
		t *= 2
		return t * t * ((c2+1)*t - c2) / 2
	}
	t = 2*t - 2
	return (t*t*((c2+1)*t+c2) + 2) / 2
}

// Name identifies a curve in configuration.
type Name string

const (
	NameLinear       Name = "linear"
	NameInQuad       Name = "in-quad"
	NameOutQuad      Name = "out-quad"
	NameInOutQuad    Name = "in-out-quad"
	NameInCubic      Name = "in-cubic"
	NameOutCubic     Name = "out-cubic"
	NameInOutCubic   Name = "in-out-cubic"
	NameInQuart      Name = "in-quart"
	NameOutQuart     Name = "out-quart"
	NameInOutQuart   Name = "in-out-quart"
	NameInExpo       Name = "in-expo"
	NameOutExpo      Name = "out-expo"
	NameInOutExpo    Name = "in-out-expo"
	NameInBounce     Name = "in-bounce"
	NameOutBounce    Name = "out-bounce"
	NameInOutBounce  Name = "in-out-bounce"
	NameInElastic    Name = "in-elastic"
	NameOutElastic   Name = "out-elastic"
	NameInOutElastic Name = "in-out-elastic"
	NameInBack       Name = "in-back"
	NameOutBack      Name = "out-back"
	NameInOutBack    Name = "in-out-back"
)

var byName = map[Name]Func{
	NameLinear:       Linear,
	NameInQuad:       InQuad,
	NameOutQuad:      OutQuad,
	NameInOutQuad:    InOutQuad,
	NameInCubic:      InCubic,
	NameOutCubic:     OutCubic,
	NameInOutCubic:   InOutCubic,
	NameInQuart:      InQuart,
	NameOutQuart:     OutQuart,
	NameInOutQuart:   InOutQuart,
	NameInExpo:       InExpo,
	NameOutExpo:      OutExpo,
	NameInOutExpo:    InOutExpo,
	NameInBounce:     InBounce,
	NameOutBounce:    OutBounce,
	NameInOutBounce:  InOutBounce,
	NameInElastic:    StandardElastic.In,
	NameOutElastic:   StandardElastic.Out,
	NameInOutElastic: StandardElastic.InOut,
	NameInBack:       StandardBack.In,
	NameOutBack:      StandardBack.Out,
	NameInOutBack:    StandardBack.InOut,
}

// ByName returns the curve registered under n, falling back to Linear for
// unknown names.
func ByName(n Name) Func {
	if f, ok := byName[n]; ok {
		return f
	}
	return Linear
}

// Names lists every registered curve.
func Names() []Name {
	out := make([]Name, 0, len(byName))
	for n := range byName {
		out = append(out, n)
	}
	return out
}
