// Package envelope provides time to value curves, the algebra to combine
// them, and lifetime wrappers.
//
// Every envelope is generic over a Value domain. The fixed point domains
// (U8, U16, U32) use integer math only; F32 is the floating point domain
// for hosts with an FPU. The same combinator code serves all of them.
package envelope

import (
	"math"
	"math/bits"
)

// Value is the numeric domain envelopes sample into. Values always lie in
// [0, Max()]; arithmetic saturates instead of wrapping.
type Value[T any] interface {
	~uint8 | ~uint16 | ~uint32 | ~float32

	// Max is the full scale value.
	Max() T
	SatAdd(o T) T
	SatSub(o T) T
	// MulDiv returns v*o/Max.
	MulDiv(o T) T
	// FromRatio maps num/den onto [0, Max]. A ratio of one or more, or a zero
	// denominator, yields Max.
	FromRatio(num, den uint64) T
	// Ratio expresses v as a fraction of Max.
	Ratio() (num, den uint64)
}

type (
	U8  uint8
	U16 uint16
	U32 uint32
	F32 float32
)

// ratio computes num*max/den without overflow, assuming num < den.
func ratio(num, den, max uint64) uint64 {
	hi, lo := bits.Mul64(num, max)
	q, _ := bits.Div64(hi, lo, den)
	return q
}

func (U8) Max() U8 { return math.MaxUint8 }

func (v U8) SatAdd(o U8) U8 {
	if s := uint16(v) + uint16(o); s < math.MaxUint8 {
		return U8(s)
	}
	return math.MaxUint8
}

func (v U8) SatSub(o U8) U8 {
	if o >= v {
		return 0
	}
	return v - o
}

func (v U8) MulDiv(o U8) U8 { return U8(uint16(v) * uint16(o) / math.MaxUint8) }

func (U8) FromRatio(num, den uint64) U8 {
	if num >= den {
		return math.MaxUint8
	}
	return U8(ratio(num, den, math.MaxUint8))
}

func (v U8) Ratio() (uint64, uint64) { return uint64(v), math.MaxUint8 }

func (U16) Max() U16 { return math.MaxUint16 }

func (v U16) SatAdd(o U16) U16 {
	if s := uint32(v) + uint32(o); s < math.MaxUint16 {
		return U16(s)
	}
	return math.MaxUint16
}

func (v U16) SatSub(o U16) U16 {
	if o >= v {
		return 0
	}
	return v - o
}

func (v U16) MulDiv(o U16) U16 { return U16(uint32(v) * uint32(o) / math.MaxUint16) }

func (U16) FromRatio(num, den uint64) U16 {
	if num >= den {
		return math.MaxUint16
	}
	return U16(ratio(num, den, math.MaxUint16))
}

func (v U16) Ratio() (uint64, uint64) { return uint64(v), math.MaxUint16 }

func (U32) Max() U32 { return math.MaxUint32 }

func (v U32) SatAdd(o U32) U32 {
	if s := uint64(v) + uint64(o); s < math.MaxUint32 {
		return U32(s)
	}
	return math.MaxUint32
}

func (v U32) SatSub(o U32) U32 {
	if o >= v {
		return 0
	}
	return v - o
}

func (v U32) MulDiv(o U32) U32 { return U32(uint64(v) * uint64(o) / math.MaxUint32) }

func (U32) FromRatio(num, den uint64) U32 {
	if num >= den {
		return math.MaxUint32
	}
	return U32(ratio(num, den, math.MaxUint32))
}

func (v U32) Ratio() (uint64, uint64) { return uint64(v), math.MaxUint32 }

// f32Den is the resolution F32 reports through Ratio; it is the largest
// integer a float32 holds exactly.
const f32Den = 1<<24 - 1

func (F32) Max() F32 { return 1 }

func clamp01(v F32) F32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (v F32) SatAdd(o F32) F32 { return clamp01(v + o) }

func (v F32) SatSub(o F32) F32 { return clamp01(v - o) }

func (v F32) MulDiv(o F32) F32 { return clamp01(v * o) }

func (F32) FromRatio(num, den uint64) F32 {
	if num >= den {
		return 1
	}
	return F32(float64(num) / float64(den))
}

func (v F32) Ratio() (uint64, uint64) {
	return uint64(float64(clamp01(v))*f32Den + 0.5), f32Den
}

// Zero is the bottom of every domain.
func Zero[T Value[T]]() T { return 0 }

// One is the smallest nonzero step of an integer domain, and 1.0 for F32.
func One[T Value[T]]() T { return 1 }

// MaxOf returns the full scale value of T.
func MaxOf[T Value[T]]() T {
	var z T
	return z.Max()
}

// ClampValue constrains v to [lo, hi].
func ClampValue[T Value[T]](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Convert maps a value of one domain onto another by its fraction of full
// scale.
func Convert[To Value[To], From Value[From]](v From) To {
	var z To
	return z.FromRatio(v.Ratio())
}

// Fraction returns v as a float32 in [0,1].
func Fraction[T Value[T]](v T) float32 {
	num, den := v.Ratio()
	return float32(float64(num) / float64(den))
}

// FromFraction maps f in [0,1] onto T, clamping out of range input.
func FromFraction[T Value[T]](f float32) T {
	var z T
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return z.Max()
	}
	return z.FromRatio(uint64(float64(f)*f32Den+0.5), f32Den)
}

// Elapsed is now-start, saturating at zero for times before start.
func Elapsed(now, start uint32) uint32 {
	if now < start {
		return 0
	}
	return now - start
}

// progress maps elapsed onto [0, Max] over duration. A zero duration is
// already complete.
func progress[T Value[T]](elapsed, duration uint32) T {
	var z T
	if elapsed >= duration {
		return z.Max()
	}
	return z.FromRatio(uint64(elapsed), uint64(duration))
}
