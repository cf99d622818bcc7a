package generator

import "github.com/coreman2200/arcaluminis-fx/pixel"

// Layer runs several generators over the same buffer in order, so additive
// generators can be stacked over a base fill. It lives while any layer does.
type Layer []Generator

func (l Layer) Generate(buf []pixel.Pixel, now uint32) {
	for _, g := range l {
		g.Generate(buf, now)
	}
}

func (l Layer) Alive(now uint32) bool {
	for _, g := range l {
		if g.Alive(now) {
			return true
		}
	}
	return false
}

// Clear blacks out the buffer before running Inner, for generators that
// only touch part of the strip.
type Clear struct {
	Inner Generator
}

func (c Clear) Generate(buf []pixel.Pixel, now uint32) {
	pixel.Fill(buf, pixel.Black)
	c.Inner.Generate(buf, now)
}

func (c Clear) Alive(now uint32) bool { return c.Inner.Alive(now) }
