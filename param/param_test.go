package param_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/arcaluminis-fx/envelope"
	"github.com/coreman2200/arcaluminis-fx/param"
)

func TestStatic(t *testing.T) {
	p := param.Of[uint16](1234)
	assert.Equal(t, uint16(1234), p.Sample(0))
	assert.Equal(t, uint16(1234), p.Sample(99999))

	var f param.Parameter[int] = param.Func[int](func(now uint32) int { return int(now) * 2 })
	assert.Equal(t, 20, f.Sample(10))
}

func TestDynamicMapsAcrossWidths(t *testing.T) {
	fade := envelope.Fade[envelope.U16]{Start: 0, Duration: 1000}

	// One envelope feeding destinations of different widths.
	p8 := param.Dynamic[envelope.U16, uint8]{Envelope: fade, Min: 0, Max: 255}
	p16 := param.Dynamic[envelope.U16, uint16]{Envelope: fade, Min: 100, Max: 200}
	pi := param.Dynamic[envelope.U16, int]{Envelope: fade, Min: 10, Max: -10}
	pf := param.DynamicFloat[envelope.U16]{Envelope: fade, Min: 2, Max: 4}

	assert.Equal(t, uint8(0), p8.Sample(0))
	assert.Equal(t, uint8(255), p8.Sample(1000))
	assert.InDelta(t, 127, int(p8.Sample(500)), 1)

	assert.Equal(t, uint16(100), p16.Sample(0))
	assert.Equal(t, uint16(200), p16.Sample(1000))
	assert.InDelta(t, 150, int(p16.Sample(500)), 1)

	assert.Equal(t, 10, pi.Sample(0))
	assert.Equal(t, -10, pi.Sample(1000))
	assert.InDelta(t, 0, pi.Sample(500), 1)

	assert.InDelta(t, 3.0, pf.Sample(500), 0.01)
}

func TestMapFullWidth(t *testing.T) {
	assert.Equal(t, uint32(0xFFFFFFFF), param.Map[uint32](1, 1, 0, 0xFFFFFFFF))
	assert.Equal(t, uint32(0x7FFFFFFF), param.Map[uint32](1, 2, 0, 0xFFFFFFFF))
	assert.Equal(t, uint8(9), param.Map[uint8](0, 0, 3, 9), "zero denominator is full scale")
}

func TestLevel(t *testing.T) {
	p := param.Level[envelope.U8](envelope.Constant[envelope.U8]{Value: 77})
	assert.Equal(t, uint8(77), p.Sample(0))
}

func TestStaticHue(t *testing.T) {
	assert.Equal(t, uint8(0), param.HueRed.Sample(0))
	assert.Equal(t, uint8(85), param.HueGreen.Sample(0))
	assert.Equal(t, uint8(128), param.HueCyan.Sample(0))
	assert.Equal(t, uint8(170), param.HueBlue.Sample(0))
	assert.Equal(t, param.HueBlue, param.HueFromDegrees(240))
	assert.Equal(t, param.HueRed, param.HueFromDegrees(360))
}

func TestRotatingHue(t *testing.T) {
	r := param.RotatingHue{Start: 100, Period: 1000, Offset: 10}
	assert.Equal(t, uint8(10), r.Sample(0))
	assert.Equal(t, uint8(138), r.Sample(600))
	assert.Equal(t, uint8(10), r.Sample(1100))
	// Wraps past the top of the wheel.
	assert.Equal(t, uint8(10+250-256), r.Sample(100+977))

	rev := param.RotatingHue{Start: 0, Period: 1000, Offset: 10, Reverse: true}
	assert.Equal(t, uint8(10-128+256), rev.Sample(500))
}

func TestHueOscillate(t *testing.T) {
	o := param.HueOscillate{Start: 0, Period: 1000, From: 240, To: 16}
	assert.Equal(t, uint8(240), o.Sample(0))
	assert.Equal(t, uint8(16), o.Sample(500))
	// A quarter period is halfway along the short arc through red.
	assert.InDelta(t, 0, int(int8(o.Sample(250))), 1)
}

func TestDynamicHue(t *testing.T) {
	d := param.DynamicHue[envelope.U8]{
		Envelope: envelope.Fade[envelope.U8]{Duration: 100},
		Offset:   200,
		Span:     256,
	}
	assert.Equal(t, uint8(200), d.Sample(0))
	assert.Equal(t, uint8(200), d.Sample(100), "a full span wraps back to the offset")
	assert.Equal(t, uint8(200+127-256), d.Sample(50))
}
