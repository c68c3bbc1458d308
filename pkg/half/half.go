// Package half converts IEEE 754 half-precision values to and from wider floats.
package half

import "math"

// ToFloat64 widens a half-precision bit pattern (sign:1, exponent:5,
// mantissa:10) to float64. The result is exact: zero, subnormals and normals
// are reproduced bit for bit. Infinities decode to infinities; NaN payloads
// are not preserved.
func ToFloat64(h uint16) float64 {
	// Build the upper 32 bits of the float64 directly.
	hi := uint64(h&0x8000) << 16
	abs := uint32(h & 0x7FFF)
	if abs != 0 {
		// 0x3F0 is the float64 exponent bias minus the half bias, placed at
		// bit 20. Infinity/NaN patterns get the all-ones exponent instead.
		var shift uint
		if abs >= 0x7C00 {
			shift = 1
		}
		hi |= uint64(0x3F000000) << shift

		// Normalize subnormals, one exponent step per shift.
		for ; abs < 0x400; abs <<= 1 {
			hi -= 0x100000
		}
		hi += uint64(abs) << 10
	}
	return math.Float64frombits(hi << 32)
}

// Decode widens every value of src into dst and returns the number of
// values written, min(len(dst), len(src)).
func Decode(dst []float64, src []uint16) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = ToFloat64(src[i])
	}
	return n
}

// FromFloat32 rounds f to the nearest half-precision value (ties to even).
// Values beyond the half range become infinities, values below half of the
// smallest subnormal flush to signed zero.
func FromFloat32(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int(bits>>23) & 0xFF
	mant := bits & 0x7FFFFF

	if exp == 0xFF {
		if mant != 0 {
			return sign | 0x7E00
		}
		return sign | 0x7C00
	}

	e := exp - 127 + 15
	if e >= 0x1F {
		return sign | 0x7C00
	}

	if e <= 0 {
		if e < -10 {
			return sign
		}
		m := mant | 0x800000
		shift := uint(14 - e)
		h := m >> shift
		rem := m & (1<<shift - 1)
		mid := uint32(1) << (shift - 1)
		if rem > mid || (rem == mid && h&1 == 1) {
			h++
		}
		return sign | uint16(h)
	}

	h := uint32(e)<<10 | mant>>13
	rem := mant & 0x1FFF
	if rem > 0x1000 || (rem == 0x1000 && h&1 == 1) {
		// A carry out of the mantissa bumps the exponent, up to infinity.
		h++
	}
	return sign | uint16(h)
}

// FromFloat64 rounds f to half precision via float32.
func FromFloat64(f float64) uint16 {
	return FromFloat32(float32(f))
}
