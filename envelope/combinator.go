package envelope

// Product multiplies two envelopes as fractions of Max. It lives only while
// both inputs live.
type Product[T Value[T]] struct {
	A, B Envelope[T]
}

func (c Product[T]) Sample(now uint32) T {
	return c.A.Sample(now).MulDiv(c.B.Sample(now))
}

func (c Product[T]) Alive(now uint32) bool {
	return c.A.Alive(now) && c.B.Alive(now)
}

// Sum adds two envelopes, saturating at Max. It lives while either input lives.
type Sum[T Value[T]] struct {
	A, B Envelope[T]
}

func (c Sum[T]) Sample(now uint32) T {
	return c.A.Sample(now).SatAdd(c.B.Sample(now))
}

func (c Sum[T]) Alive(now uint32) bool {
	return c.A.Alive(now) || c.B.Alive(now)
}

// Min takes the lower of two envelopes. It lives while either input lives.
type Min[T Value[T]] struct {
	A, B Envelope[T]
}

func (c Min[T]) Sample(now uint32) T {
	a, b := c.A.Sample(now), c.B.Sample(now)
	if b < a {
		return b
	}
	return a
}

func (c Min[T]) Alive(now uint32) bool {
	return c.A.Alive(now) || c.B.Alive(now)
}

// Max takes the higher of two envelopes. It lives while either input lives.
type Max[T Value[T]] struct {
	A, B Envelope[T]
}

func (c Max[T]) Sample(now uint32) T {
	a, b := c.A.Sample(now), c.B.Sample(now)
	if b > a {
		return b
	}
	return a
}

func (c Max[T]) Alive(now uint32) bool {
	return c.A.Alive(now) || c.B.Alive(now)
}

// Invert mirrors an envelope: Max minus the inner value.
type Invert[T Value[T]] struct {
	Inner Envelope[T]
}

func (c Invert[T]) Sample(now uint32) T {
	v := c.Inner.Sample(now)
	return v.Max().SatSub(v)
}

func (c Invert[T]) Alive(now uint32) bool { return c.Inner.Alive(now) }

// Clamp limits an envelope to [Lo, Hi].
type Clamp[T Value[T]] struct {
	Inner  Envelope[T]
	Lo, Hi T
}

func (c Clamp[T]) Sample(now uint32) T {
	return ClampValue(c.Inner.Sample(now), c.Lo, c.Hi)
}

func (c Clamp[T]) Alive(now uint32) bool { return c.Inner.Alive(now) }

// Scale linearly remaps [FromMin, FromMax] onto [ToMin, ToMax] in the
// floating point domain. A degenerate source range maps everything to the
// middle of the target range. Results are clamped to [0, 1].
type Scale struct {
	Inner            Envelope[F32]
	FromMin, FromMax F32
	ToMin, ToMax     F32
}

func (c Scale) Sample(now uint32) F32 {
	if c.FromMax == c.FromMin {
		return clamp01((c.ToMin + c.ToMax) / 2)
	}
	n := (c.Inner.Sample(now) - c.FromMin) / (c.FromMax - c.FromMin)
	return clamp01(c.ToMin + n*(c.ToMax-c.ToMin))
}

func (c Scale) Alive(now uint32) bool { return c.Inner.Alive(now) }
