// Package param adapts constants and envelopes into the concrete values
// generator and modifier fields consume.
package param

import (
	"math/bits"

	"github.com/coreman2200/arcaluminis-fx/envelope"
)

// Parameter yields a value for a given time.
type Parameter[T any] interface {
	Sample(now uint32) T
}

// Static always yields Value.
type Static[T any] struct {
	Value T
}

func (s Static[T]) Sample(uint32) T { return s.Value }

// Of wraps a constant as a Parameter.
func Of[T any](v T) Static[T] { return Static[T]{Value: v} }

// Func adapts a plain function.
type Func[T any] func(now uint32) T

func (f Func[T]) Sample(now uint32) T { return f(now) }

// Integer is any destination Dynamic can map into.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Dynamic samples an envelope, normalizes it against its domain's Max and
// maps it linearly onto [Min, Max] of an integer destination. Min may exceed
// Max to map in reverse.
type Dynamic[V envelope.Value[V], T Integer] struct {
	Envelope envelope.Envelope[V]
	Min, Max T
}

func (d Dynamic[V, T]) Sample(now uint32) T {
	num, den := d.Envelope.Sample(now).Ratio()
	return Map(num, den, d.Min, d.Max)
}

// Map places num/den (clamped to [0,1]) on the span from lo to hi using
// integer math only.
func Map[T Integer](num, den uint64, lo, hi T) T {
	if num >= den {
		return hi
	}
	l, h := int64(lo), int64(hi)
	if h >= l {
		return T(l + int64(mulDiv(uint64(h-l), num, den)))
	}
	return T(l - int64(mulDiv(uint64(l-h), num, den)))
}

func mulDiv(a, num, den uint64) uint64 {
	hi, lo := bits.Mul64(a, num)
	q, _ := bits.Div64(hi, lo, den)
	return q
}

// DynamicFloat is Dynamic for float32 destinations.
type DynamicFloat[V envelope.Value[V]] struct {
	Envelope envelope.Envelope[V]
	Min, Max float32
}

func (d DynamicFloat[V]) Sample(now uint32) float32 {
	f := envelope.Fraction(d.Envelope.Sample(now))
	return d.Min + f*(d.Max-d.Min)
}

// Level feeds an envelope straight through as an 8-bit level, the most
// common shape for intensity and saturation fields.
func Level[V envelope.Value[V]](e envelope.Envelope[V]) Dynamic[V, uint8] {
	return Dynamic[V, uint8]{Envelope: e, Min: 0, Max: 255}
}
