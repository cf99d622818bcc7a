package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/arcaluminis-fx/envelope"
	. "github.com/coreman2200/arcaluminis-fx/generator"
	"github.com/coreman2200/arcaluminis-fx/param"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

func TestSolidColor(t *testing.T) {
	buf := make([]pixel.Pixel, 10)
	g := &SolidColor{Lifetime{0, 1000}, Fixed(0, 255, 255)}
	g.Generate(buf, 0)
	for i, p := range buf {
		assert.Equal(t, pixel.Red, p, "pixel %d", i)
	}
}

func TestSolidColorFollowsParameters(t *testing.T) {
	buf := make([]pixel.Pixel, 3)
	g := &SolidColor{
		Lifetime: Lifetime{Duration: Forever},
		Color: Color{
			Hue:        param.HueBlue,
			Saturation: param.Of[uint8](255),
			Intensity:  param.Level[envelope.U8](envelope.Fade[envelope.U8]{Duration: 100}),
		},
	}
	g.Generate(buf, 0)
	assert.Equal(t, pixel.Black, buf[0])
	g.Generate(buf, 100)
	assert.Equal(t, pixel.FromHSV(170, 255, 255), buf[2])
}

func gradient(from, to uint8) *Gradient {
	return &Gradient{
		Lifetime:   Lifetime{Duration: Forever},
		StartHue:   param.Of(from),
		EndHue:     param.Of(to),
		Saturation: param.Of[uint8](255),
		Intensity:  param.Of[uint8](255),
	}
}

func TestGradient(t *testing.T) {
	buf := make([]pixel.Pixel, 5)
	gradient(0, 128).Generate(buf, 0)
	for i, h := range []uint8{0, 32, 64, 96, 128} {
		assert.Equal(t, pixel.FromHSV(h, 255, 255), buf[i], "pixel %d", i)
	}
	assert.Equal(t, pixel.Red, buf[0])

	// Crosses red instead of going the long way round.
	buf = make([]pixel.Pixel, 3)
	gradient(250, 10).Generate(buf, 0)
	for i, h := range []uint8{250, 2, 10} {
		assert.Equal(t, pixel.FromHSV(h, 255, 255), buf[i], "pixel %d", i)
	}
}

func TestGradientSmallBuffers(t *testing.T) {
	g := gradient(40, 200)
	require.NotPanics(t, func() { g.Generate(nil, 0) })

	one := make([]pixel.Pixel, 1)
	g.Generate(one, 0)
	assert.Equal(t, pixel.FromHSV(40, 255, 255), one[0])
}

func TestStripes(t *testing.T) {
	g := &Stripes{
		Lifetime:   Lifetime{Duration: Forever},
		Hue1:       param.HueRed,
		Hue2:       param.HueBlue,
		Saturation: param.Of[uint8](255),
		Intensity:  param.Of[uint8](255),
		Width:      param.Of[uint16](2),
	}
	a, b := pixel.FromHSV(0, 255, 255), pixel.FromHSV(170, 255, 255)

	buf := make([]pixel.Pixel, 6)
	g.Generate(buf, 0)
	assert.Equal(t, []pixel.Pixel{a, a, b, b, a, a}, buf)

	g.Width = param.Of[uint16](0)
	g.Generate(buf, 0)
	assert.Equal(t, []pixel.Pixel{a, b, a, b, a, b}, buf, "zero width behaves as one")
}

func chase(pos, width uint16) *Chase {
	return &Chase{
		Lifetime: Lifetime{Duration: Forever},
		Color:    Fixed(0, 255, 255),
		Position: param.Of(pos),
		Width:    param.Of(width),
	}
}

func TestChase(t *testing.T) {
	buf := make([]pixel.Pixel, 10)
	chase(5, 2).Generate(buf, 0)

	assert.Equal(t, pixel.Red, buf[5])
	assert.Equal(t, pixel.FromHSV(0, 255, 127), buf[4])
	assert.Equal(t, buf[4], buf[6])
	for _, i := range []int{0, 1, 2, 3, 7, 8, 9} {
		assert.Equal(t, pixel.Black, buf[i], "pixel %d", i)
	}
}

func TestChaseIsAdditive(t *testing.T) {
	buf := make([]pixel.Pixel, 10)
	pixel.Fill(buf, pixel.Blue)
	chase(5, 1).Generate(buf, 0)

	assert.Equal(t, pixel.New(255, 0, 255), buf[5])
	assert.Equal(t, pixel.Blue, buf[4])
	assert.Equal(t, pixel.Blue, buf[6])
}

func TestChaseClipsAtEdges(t *testing.T) {
	buf := make([]pixel.Pixel, 4)
	require.NotPanics(t, func() {
		chase(0, 3).Generate(buf, 0)
		chase(3, 3).Generate(buf, 0)
		chase(100, 3).Generate(buf, 0)
	})
	assert.Equal(t, pixel.Red, buf[0])
	assert.Equal(t, pixel.Red, buf[3])

	// Zero width still lights the center pixel.
	buf = make([]pixel.Pixel, 4)
	chase(2, 0).Generate(buf, 0)
	assert.Equal(t, []pixel.Pixel{pixel.Black, pixel.Black, pixel.Red, pixel.Black}, buf)
}

func TestPulse(t *testing.T) {
	g := &Pulse{
		Lifetime:    Lifetime{Start: 1000, Duration: 2000},
		Color:       Fixed(0, 255, 100),
		Position:    10,
		SpreadSpeed: 10,
		Width:       param.Of[uint16](1),
	}
	lit := pixel.FromHSV(0, 255, 100)

	buf := make([]pixel.Pixel, 20)
	g.Generate(buf, 1000)
	assert.Equal(t, lit, buf[10], "edges coincide at the start without doubling")

	buf = make([]pixel.Pixel, 20)
	g.Generate(buf, 1500)
	for i, p := range buf {
		if i == 5 || i == 15 {
			assert.Equal(t, lit, p, "pixel %d", i)
		} else {
			assert.Equal(t, pixel.Black, p, "pixel %d", i)
		}
	}

	assert.True(t, g.Alive(2999))
	assert.False(t, g.Alive(3000))
}

func TestLifetime(t *testing.T) {
	l := Lifetime{Start: 100, Duration: 50}
	assert.True(t, l.Alive(0), "not started yet counts as alive")
	assert.True(t, l.Alive(149))
	assert.False(t, l.Alive(150))
	assert.False(t, Lifetime{Start: 100}.Alive(100))
	assert.True(t, Lifetime{Duration: Forever}.Alive(0xFFFFFFF0))
}

func TestLayer(t *testing.T) {
	base := &SolidColor{Lifetime{0, 100}, Fixed(170, 255, 255)}
	spot := chase(1, 1)
	spot.Lifetime = Lifetime{0, 500}
	l := Layer{base, spot}

	blue := pixel.FromHSV(170, 255, 255)
	buf := make([]pixel.Pixel, 3)
	l.Generate(buf, 0)
	assert.Equal(t, []pixel.Pixel{blue, blue.Add(pixel.Red), blue}, buf)

	assert.True(t, l.Alive(200))
	assert.False(t, l.Alive(500))

	c := Clear{Inner: chase(0, 1)}
	c.Generate(buf, 0)
	assert.Equal(t, []pixel.Pixel{pixel.Red, pixel.Black, pixel.Black}, buf)
}
