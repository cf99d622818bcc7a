// Package pixel holds the packed RGB color value shared by every stage of the
// effect pipeline, plus the lookup tables that replace floating point math at
// frame time.
package pixel

import (
	"image/color"
	"unsafe"
)

// Pixel is one LED worth of color in R, G, B order. Buffers of Pixel are
// handed to the transmitter byte for byte, so the layout must stay packed.
type Pixel struct {
	R, G, B uint8
}

// Fails to compile if Pixel ever grows padding.
var _ [3]byte = [unsafe.Sizeof(Pixel{})]byte{}

var (
	Black = Pixel{}
	White = Pixel{255, 255, 255}
	Red   = Pixel{R: 255}
	Green = Pixel{G: 255}
	Blue  = Pixel{B: 255}
)

func New(r, g, b uint8) Pixel { return Pixel{r, g, b} }

// Bytes views buf as its raw RGB byte stream without copying.
func Bytes(buf []Pixel) []byte {
	if len(buf) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(buf))), len(buf)*3)
}

// FromBytes views an RGB byte stream as pixels without copying. Trailing
// bytes that do not form a whole pixel are ignored.
func FromBytes(b []byte) []Pixel {
	n := len(b) / 3
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*Pixel)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// Fill sets every pixel of buf to p.
func Fill(buf []Pixel, p Pixel) {
	for i := range buf {
		buf[i] = p
	}
}

// scale8 is c*(f+1)/256: exact at f=255 and truncating below, so repeated
// fading always reaches zero.
func scale8(c, f uint8) uint8 {
	return uint8(uint16(c) * (uint16(f) + 1) >> 8)
}

// Scale multiplies every channel by roughly f/255; 255 leaves the pixel
// unchanged.
func (p Pixel) Scale(f uint8) Pixel {
	if f == 255 {
		return p
	}
	return Pixel{scale8(p.R, f), scale8(p.G, f), scale8(p.B, f)}
}

// ScaleQ16 is Scale with a 16-bit factor.
func (p Pixel) ScaleQ16(f uint16) Pixel {
	s := func(c uint8) uint8 {
		return uint8(uint32(c) * (uint32(f) + 1) >> 16)
	}
	return Pixel{s(p.R), s(p.G), s(p.B)}
}

func add8(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// Add is a per channel saturating add.
func (p Pixel) Add(o Pixel) Pixel {
	return Pixel{add8(p.R, o.R), add8(p.G, o.G), add8(p.B, o.B)}
}

func lerp8(a, b, t uint8) uint8 {
	return uint8((uint16(a)*uint16(255-t) + uint16(b)*uint16(t) + 127) / 255)
}

// Lerp blends toward o; t=0 yields p and t=255 yields o.
func (p Pixel) Lerp(o Pixel, t uint8) Pixel {
	return Pixel{lerp8(p.R, o.R, t), lerp8(p.G, o.G, t), lerp8(p.B, o.B, t)}
}

// GammaCorrect maps each channel through the 2.2 gamma table.
func (p Pixel) GammaCorrect() Pixel {
	return Pixel{gammaTable[p.R], gammaTable[p.G], gammaTable[p.B]}
}

// ShiftHue rotates the hue by amount, wrapping around the color wheel.
func (p Pixel) ShiftHue(amount uint8) Pixel {
	if amount == 0 {
		return p
	}
	h, s, v := ToHSV(p)
	return FromHSV(h+amount, s, v)
}

// AdjustSaturation scales saturation by f/255.
func (p Pixel) AdjustSaturation(f uint8) Pixel {
	if f == 255 {
		return p
	}
	h, s, v := ToHSV(p)
	return FromHSV(h, scale8(s, f), v)
}

// RGBA implements color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff}.RGBA()
}

func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
}
