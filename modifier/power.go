package modifier

import "github.com/coreman2200/arcaluminis-fx/pixel"

// DefaultChannelmA is the draw of one WS2812 color channel at full scale.
const DefaultChannelmA = 20

// Limiter keeps a frame within a power budget. Each pixel's channel sum is
// first capped at WhiteCap (0..765, 0 disables the cap), then the whole
// frame is scaled down so the estimated draw stays within BudgetmA. A zero
// BudgetmA disables the global stage.
type Limiter struct {
	WhiteCap  uint16
	ChannelmA uint16
	BudgetmA  uint32
}

func (m Limiter) Modify(buf []pixel.Pixel, _ uint32) {
	if m.WhiteCap > 0 && m.WhiteCap < 3*255 {
		c := uint32(m.WhiteCap)
		for i, p := range buf {
			s := uint32(p.R) + uint32(p.G) + uint32(p.B)
			if s > c {
				buf[i] = pixel.New(
					uint8(uint32(p.R)*c/s),
					uint8(uint32(p.G)*c/s),
					uint8(uint32(p.B)*c/s),
				)
			}
		}
	}
	if m.BudgetmA == 0 {
		return
	}
	// Both sides are in mA*255 so the comparison stays integral.
	draw := channelSum(buf) * uint64(m.channel())
	budget := uint64(m.BudgetmA) * 255
	if draw <= budget {
		return
	}
	s := budget << 16 / draw
	if s == 0 {
		pixel.Fill(buf, pixel.Black)
		return
	}
	f := uint16(s - 1)
	for i := range buf {
		buf[i] = buf[i].ScaleQ16(f)
	}
}

func (m Limiter) channel() uint16 {
	if m.ChannelmA == 0 {
		return DefaultChannelmA
	}
	return m.ChannelmA
}

// Draw estimates the current of buf in mA with every channel drawing
// channelmA at full scale. Zero channelmA uses DefaultChannelmA.
func Draw(buf []pixel.Pixel, channelmA uint16) uint32 {
	if channelmA == 0 {
		channelmA = DefaultChannelmA
	}
	return uint32(channelSum(buf) * uint64(channelmA) / 255)
}

func channelSum(buf []pixel.Pixel) uint64 {
	var sum uint64
	for _, p := range buf {
		sum += uint64(p.R) + uint64(p.G) + uint64(p.B)
	}
	return sum
}
