package pixel

// hsv16 converts a 16-bit hue, saturation and value to RGB with integer math.
// The hue circle spans the full uint16 range.
func hsv16(h, s, v uint32) Pixel {
	if s == 0 {
		c := to8(uint64(v))
		return Pixel{c, c, c}
	}
	const one = 65535 * 65536
	pos := h * 6
	region := pos >> 16
	frac := uint64(pos & 0xffff)
	V, S := uint64(v), uint64(s)

	x := to8(V)
	p := to8((V*(65535-S) + 32767) / 65535)
	q := to8((V*(one-S*frac) + one/2) / one)
	t := to8((V*(one-S*(65536-frac)) + one/2) / one)

	switch region {
	case 0:
		return Pixel{x, t, p}
	case 1:
		return Pixel{q, x, p}
	case 2:
		return Pixel{p, x, t}
	case 3:
		return Pixel{p, q, x}
	case 4:
		return Pixel{t, p, x}
	default:
		return Pixel{x, p, q}
	}
}

func to8(x uint64) uint8 {
	return uint8((x*255 + 32767) / 65535)
}

// locate finds the table bucket at or below x and the fractional distance
// toward the next bucket as f/d.
func locate(x uint8) (i, j int, f, d uint32) {
	i = int(x) * (hsvLevels - 1) / 255
	if i < hsvLevels-1 && bucket[i+1] <= x {
		i++
	}
	if i == hsvLevels-1 {
		return i, i, 0, 1
	}
	return i, i + 1, uint32(x - bucket[i]), uint32(bucket[i+1] - bucket[i])
}

// FromHSV converts 8-bit hue, saturation and value to RGB through the HSV
// table. Saturation and value are interpolated between the table buckets.
func FromHSV(h, s, v uint8) Pixel {
	if s == 0 {
		return Pixel{v, v, v}
	}
	si, sj, sf, sd := locate(s)
	vi, vj, vf, vd := locate(v)
	row := &hsvTable[h]
	if sf == 0 && vf == 0 {
		return row[si][vi]
	}
	w00 := (sd - sf) * (vd - vf)
	w10 := sf * (vd - vf)
	w01 := (sd - sf) * vf
	w11 := sf * vf
	den := sd * vd
	c00, c10, c01, c11 := row[si][vi], row[sj][vi], row[si][vj], row[sj][vj]
	mix := func(a, b, c, d uint8) uint8 {
		return uint8((uint32(a)*w00 + uint32(b)*w10 + uint32(c)*w01 + uint32(d)*w11 + den/2) / den)
	}
	return Pixel{
		mix(c00.R, c10.R, c01.R, c11.R),
		mix(c00.G, c10.G, c01.G, c11.G),
		mix(c00.B, c10.B, c01.B, c11.B),
	}
}

// Lookup returns the nearest table entry with no interpolation.
func Lookup(h, s, v uint8) Pixel {
	near := func(x uint8) int { return (int(x)*(hsvLevels-1) + 127) / 255 }
	return hsvTable[h][near(s)][near(v)]
}

// FromHSV16 is the high precision conversion; it bypasses the table.
func FromHSV16(h, s, v uint16) Pixel {
	return hsv16(uint32(h), uint32(s), uint32(v))
}

func minmax(p Pixel) (lo, hi int64) {
	lo, hi = int64(p.R), int64(p.R)
	for _, c := range [2]int64{int64(p.G), int64(p.B)} {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi
}

// sixths returns the hue position in units of delta/6 of a turn, in [0, 6*delta).
func sixths(p Pixel, hi, delta int64) int64 {
	r, g, b := int64(p.R), int64(p.G), int64(p.B)
	switch hi {
	case r:
		hh := g - b
		if hh < 0 {
			hh += 6 * delta
		}
		return hh
	case g:
		return 2*delta + b - r
	default:
		return 4*delta + r - g
	}
}

// ToHSV is the inverse of FromHSV within quantization error. Achromatic
// pixels report hue 0 and saturation 0.
func ToHSV(p Pixel) (h, s, v uint8) {
	lo, hi := minmax(p)
	v = uint8(hi)
	if hi == lo {
		return 0, 0, v
	}
	delta := hi - lo
	s = uint8((delta*255 + hi/2) / hi)
	hh := sixths(p, hi, delta)
	h = uint8((hh*256 + 3*delta) / (6 * delta))
	return h, s, v
}

// ToHSV16 is the inverse of FromHSV16.
func ToHSV16(p Pixel) (h, s, v uint16) {
	lo, hi := minmax(p)
	v = uint16(hi * 257)
	if hi == lo {
		return 0, 0, v
	}
	delta := hi - lo
	s = uint16((delta*65535 + hi/2) / hi)
	hh := sixths(p, hi, delta)
	h = uint16((hh*65536 + 3*delta) / (6 * delta))
	return h, s, v
}

// HueDelta is the signed distance from one hue to another along the shorter
// arc of the color wheel. An exact half turn is reported as +128.
func HueDelta(from, to uint8) int {
	d := int(to) - int(from)
	if d > 128 {
		d -= 256
	} else if d <= -128 {
		d += 256
	}
	return d
}

// LerpHue moves from one hue toward another along the shorter arc; t=255
// arrives at to.
func LerpHue(from, to, t uint8) uint8 {
	d := HueDelta(from, to)
	return uint8(int(from) + d*int(t)/255)
}
