package envelope

import (
	"github.com/coreman2200/arcaluminis-fx/ease"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

// TimeLimited passes its inner envelope through but dies Duration after
// Start, or earlier if the inner envelope dies.
type TimeLimited[T Value[T]] struct {
	Inner    Envelope[T]
	Start    uint32
	Duration uint32
}

func (w TimeLimited[T]) Sample(now uint32) T { return w.Inner.Sample(now) }

func (w TimeLimited[T]) Alive(now uint32) bool {
	return Elapsed(now, w.Start) < w.Duration && w.Inner.Alive(now)
}

// LoopCount passes its inner envelope through and dies once Loops periods
// have completed.
type LoopCount[T Value[T]] struct {
	Inner  Envelope[T]
	Start  uint32
	Period uint32
	Loops  uint32
}

func (w LoopCount[T]) Sample(now uint32) T { return w.Inner.Sample(now) }

func (w LoopCount[T]) Alive(now uint32) bool {
	_, period := phase(now, w.Start, w.Period)
	return Elapsed(now, w.Start)/period < w.Loops && w.Inner.Alive(now)
}

// Pulse ramps up over Attack then decays exponentially over Decay. Curve is
// the decay exponent in 8.8 fixed point: 256 reaches e^-1 at the end of the
// decay, 1024 reaches e^-4.
type Pulse[T Value[T]] struct {
	Start  uint32
	Attack uint32
	Decay  uint32
	Curve  uint16
}

func (p Pulse[T]) Sample(now uint32) T {
	var z T
	e := Elapsed(now, p.Start)
	if e < p.Attack {
		return progress[T](e, p.Attack)
	}
	e -= p.Attack
	if e >= p.Decay {
		return 0
	}
	// index = curve/256 * e/decay * ExpStep
	i := uint64(p.Curve) * uint64(e) * pixel.ExpStep / (256 * uint64(p.Decay))
	if i >= pixel.TableSize {
		return 0
	}
	return z.FromRatio(uint64(pixel.Exp(uint8(i))), 65535)
}

func (p Pulse[T]) Alive(now uint32) bool {
	return uint64(Elapsed(now, p.Start)) < uint64(p.Attack)+uint64(p.Decay)
}

// DefaultStep is the integration step VelocityIntegral uses when Step is 0.
const DefaultStep = 16

// VelocityIntegral integrates a velocity envelope into a wrapping position.
// A velocity of Max moves Rate cycles per second (Rate 0 means 1). The
// position is Initial plus the integral, modulo one cycle.
//
// Cost grows with now-Start: the velocity is sampled every Step ms from
// Start. Long running hosts should rebase Start periodically.
type VelocityIntegral[T Value[T]] struct {
	Start    uint32
	Velocity Envelope[T]
	Initial  T
	Rate     uint32
	Step     uint32
}

func (w VelocityIntegral[T]) Sample(now uint32) T {
	var z T
	step := w.Step
	if step == 0 {
		step = DefaultStep
	}
	rate := uint64(w.Rate)
	if rate == 0 {
		rate = 1
	}
	num, den := w.Initial.Ratio()
	pos := uint32(num << 32 / den)

	steps := Elapsed(now, w.Start) / step
	for i := uint32(0); i < steps; i++ {
		vn, vd := w.Velocity.Sample(w.Start + i*step).Ratio()
		cycle := vn << 32 / vd
		pos += uint32(cycle * rate * uint64(step) / 1000)
	}
	return z.FromRatio(uint64(pos), 1<<32)
}

func (w VelocityIntegral[T]) Alive(now uint32) bool { return w.Velocity.Alive(now) }

// Eased reshapes an envelope through an easing curve.
type Eased[T Value[T]] struct {
	Inner Envelope[T]
	Curve ease.Func
}

func (w Eased[T]) Sample(now uint32) T {
	v := w.Inner.Sample(now)
	if w.Curve == nil {
		return v
	}
	return FromFraction[T](w.Curve(Fraction(v)))
}

func (w Eased[T]) Alive(now uint32) bool { return w.Inner.Alive(now) }

// Key is one point of a Keyframes envelope. At is measured from the
// envelope's Start; Curve shapes the segment that begins at this key.
type Key[T Value[T]] struct {
	At    uint32
	Value T
	Curve ease.Func
}

// Keyframes interpolates between keys sorted by At. It holds the first value
// before the first key and the last value after the last key, and is alive
// until the last key is reached.
type Keyframes[T Value[T]] struct {
	Start uint32
	Keys  []Key[T]
}

func (k Keyframes[T]) Sample(now uint32) T {
	n := len(k.Keys)
	if n == 0 {
		return 0
	}
	e := Elapsed(now, k.Start)
	if e <= k.Keys[0].At {
		return k.Keys[0].Value
	}
	if e >= k.Keys[n-1].At {
		return k.Keys[n-1].Value
	}
	for i := 0; i < n-1; i++ {
		a, b := k.Keys[i], k.Keys[i+1]
		if e >= b.At {
			continue
		}
		u := progress[T](e-a.At, b.At-a.At)
		if a.Curve != nil {
			u = FromFraction[T](a.Curve(Fraction(u)))
		}
		if b.Value >= a.Value {
			return a.Value.SatAdd(b.Value.SatSub(a.Value).MulDiv(u))
		}
		return a.Value.SatSub(a.Value.SatSub(b.Value).MulDiv(u))
	}
	return k.Keys[n-1].Value
}

func (k Keyframes[T]) Alive(now uint32) bool {
	if len(k.Keys) == 0 {
		return false
	}
	return Elapsed(now, k.Start) < k.Keys[len(k.Keys)-1].At
}
