package envelope

import "github.com/coreman2200/arcaluminis-fx/pixel"

// Envelope is a pure function of time plus a liveness predicate. Times are
// milliseconds on the caller's clock. Sample never mutates the envelope, so
// sampling is idempotent and order independent.
type Envelope[T Value[T]] interface {
	Sample(now uint32) T
	Alive(now uint32) bool
}

// Constant always samples Value and never dies.
type Constant[T Value[T]] struct {
	Value T
}

func (c Constant[T]) Sample(uint32) T   { return c.Value }
func (c Constant[T]) Alive(uint32) bool { return true }

// Fade ramps linearly from zero to Max over Duration, then holds Max.
// Inverted ramps from Max down to zero instead.
type Fade[T Value[T]] struct {
	Start    uint32
	Duration uint32
	Inverted bool
}

func (f Fade[T]) Sample(now uint32) T {
	p := progress[T](Elapsed(now, f.Start), f.Duration)
	if f.Inverted {
		return p.Max().SatSub(p)
	}
	return p
}

func (f Fade[T]) Alive(now uint32) bool {
	return Elapsed(now, f.Start) < f.Duration
}

// phase returns the position within the current cycle. A zero period is
// treated as 1ms.
func phase(now, start, period uint32) (uint32, uint32) {
	if period == 0 {
		period = 1
	}
	return Elapsed(now, start) % period, period
}

// Triangle ramps up for half of each period and back down for the other half.
type Triangle[T Value[T]] struct {
	Start  uint32
	Period uint32
}

func (w Triangle[T]) Sample(now uint32) T {
	var z T
	p, period := phase(now, w.Start, w.Period)
	if uint64(p)*2 < uint64(period) {
		return z.FromRatio(uint64(p)*2, uint64(period))
	}
	return z.FromRatio(uint64(period-p)*2, uint64(period))
}

func (Triangle[T]) Alive(uint32) bool { return true }

// Sine follows (sin(2*pi*phase)+1)/2, read from the sine table with linear
// interpolation between entries.
type Sine[T Value[T]] struct {
	Start  uint32
	Period uint32
}

func (w Sine[T]) Sample(now uint32) T {
	var z T
	p, period := phase(now, w.Start, w.Period)
	pos := uint64(p) * pixel.TableSize
	i := pos / uint64(period)
	frac := int64(pos % uint64(period))
	a := int64(pixel.Sine(uint8(i)))
	b := int64(pixel.Sine(uint8(i + 1)))
	v := a + (b-a)*frac/int64(period)
	return z.FromRatio(uint64(v), 65535)
}

func (Sine[T]) Alive(uint32) bool { return true }

// Square is Max for the first Duty fraction of each period and zero after.
type Square[T Value[T]] struct {
	Start  uint32
	Period uint32
	Duty   T
}

func (w Square[T]) Sample(now uint32) T {
	p, period := phase(now, w.Start, w.Period)
	num, den := w.Duty.Ratio()
	if uint64(p)*den < num*uint64(period) {
		return w.Duty.Max()
	}
	return 0
}

func (Square[T]) Alive(uint32) bool { return true }

// Sawtooth ramps from zero toward Max and snaps back each period.
type Sawtooth[T Value[T]] struct {
	Start  uint32
	Period uint32
}

func (w Sawtooth[T]) Sample(now uint32) T {
	var z T
	p, period := phase(now, w.Start, w.Period)
	return z.FromRatio(uint64(p), uint64(period))
}

func (Sawtooth[T]) Alive(uint32) bool { return true }

// ADSR is an attack, decay, sustain, release contour. The phase is derived
// from elapsed time on every call; nothing is stored between samples.
type ADSR[T Value[T]] struct {
	Start        uint32
	Attack       uint32
	Decay        uint32
	SustainLevel T
	Sustain      uint32
	Release      uint32
}

func (a ADSR[T]) Sample(now uint32) T {
	full := a.SustainLevel.Max()
	e := Elapsed(now, a.Start)
	if e < a.Attack {
		return progress[T](e, a.Attack)
	}
	e -= a.Attack
	if e < a.Decay {
		drop := full.SatSub(a.SustainLevel).MulDiv(progress[T](e, a.Decay))
		return full.SatSub(drop)
	}
	e -= a.Decay
	if e < a.Sustain {
		return a.SustainLevel
	}
	e -= a.Sustain
	if e < a.Release {
		return a.SustainLevel.SatSub(a.SustainLevel.MulDiv(progress[T](e, a.Release)))
	}
	return 0
}

// Total is the full length of the contour.
func (a ADSR[T]) Total() uint64 {
	return uint64(a.Attack) + uint64(a.Decay) + uint64(a.Sustain) + uint64(a.Release)
}

func (a ADSR[T]) Alive(now uint32) bool {
	return uint64(Elapsed(now, a.Start)) < a.Total()
}
