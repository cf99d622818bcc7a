package modifier

import (
	"slices"

	"github.com/coreman2200/arcaluminis-fx/param"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// Blur blends each pixel toward its unblurred predecessor by Strength/2 in a
// single forward pass.
type Blur struct {
	Strength param.Parameter[uint8]
}

func (m Blur) Modify(buf []pixel.Pixel, now uint32) {
	if len(buf) < 2 {
		return
	}
	t := m.Strength.Sample(now) / 2
	prev := buf[0]
	for i := 1; i < len(buf); i++ {
		cur := buf[i]
		buf[i] = cur.Lerp(prev, t)
		prev = cur
	}
}

// Shift rotates the buffer by Offset; positive moves pixels toward higher
// indices. Offsets wrap modulo the buffer length.
type Shift struct {
	Offset param.Parameter[int]
}

func (m Shift) Modify(buf []pixel.Pixel, now uint32) {
	n := len(buf)
	if n == 0 {
		return
	}
	k := m.Offset.Sample(now) % n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return
	}
	slices.Reverse(buf)
	slices.Reverse(buf[:k])
	slices.Reverse(buf[k:])
}

// Mirror copies pixels [0, Center) onto the matching positions counted from
// the far end. A Center of 0 leaves the buffer alone.
type Mirror struct {
	Center int
}

func (m Mirror) Modify(buf []pixel.Pixel, _ uint32) {
	n := len(buf)
	for i, end := 0, min(max(m.Center, 0), n); i < end; i++ {
		buf[n-1-i] = buf[i]
	}
}

// Reverse flips the buffer end to end.
type Reverse struct{}

func (Reverse) Modify(buf []pixel.Pixel, _ uint32) {
	slices.Reverse(buf)
}
