// Package half provides IEEE 754 binary16 floats, the storage type of the
// F16 pixel types.
//
// Layout: 1 sign bit, 5 exponent bits (bias 15), 10 mantissa bits.
package half

import (
	"math"
)

// Half is a binary16 value stored in a uint16.
type Half uint16

const (
	signBit      = 0x8000
	exponentMask = 0x7C00
	mantissaMask = 0x03FF

	exponentBias = 15
	maxExponent  = 31
)

// Well-known values.
const (
	Zero    Half = 0x0000
	One     Half = 0x3C00
	Max     Half = 0x7BFF // 65504
	Inf     Half = 0x7C00
	NegInf  Half = 0xFC00
	NaN     Half = 0x7E00
	NegZero Half = 0x8000
)

// FromFloat32 converts f using round-to-nearest-even. Values too large for
// binary16 become infinity; values too small flush to signed zero.
func FromFloat32(f float32) Half {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & signBit)
	exp := int((bits >> 23) & 0xFF)
	mantissa := bits & 0x007FFFFF

	switch exp {
	case 0xFF:
		if mantissa == 0 {
			return Half(sign | exponentMask)
		}
		return Half(sign | exponentMask | uint16(mantissa>>13) | 0x0200)
	case 0:
		return Half(sign)
	}

	exp = exp - 127 + exponentBias
	if exp >= maxExponent {
		return Half(sign | exponentMask)
	}
	if exp < -10 {
		return Half(sign)
	}

	if exp <= 0 {
		// Subnormal result: restore the implicit bit and shift into place.
		mantissa |= 0x00800000
		shift := uint(14 - exp)
		m := mantissa >> shift
		round := (mantissa >> (shift - 1)) & 1
		sticky := mantissa & ((1 << (shift - 1)) - 1)
		if round != 0 && (sticky != 0 || m&1 != 0) {
			m++
		}
		// A carry out of the mantissa lands in the exponent field, which is
		// the correct smallest normal.
		return Half(sign | uint16(m))
	}

	m := mantissa >> 13
	round := (mantissa >> 12) & 1
	sticky := mantissa & 0x0FFF
	if round != 0 && (sticky != 0 || m&1 != 0) {
		m++
		if m > mantissaMask {
			m = 0
			exp++
			if exp >= maxExponent {
				return Half(sign | exponentMask)
			}
		}
	}
	return Half(sign | uint16(exp<<10) | uint16(m))
}

// Float32 converts h to a float32. The conversion is exact.
func (h Half) Float32() float32 {
	sign := uint32(h&signBit) << 16
	exp := int((h >> 10) & 0x1F)
	mantissa := uint32(h & mantissaMask)

	switch exp {
	case 0:
		if mantissa == 0 {
			return math.Float32frombits(sign)
		}
		for mantissa&0x0400 == 0 {
			mantissa <<= 1
			exp--
		}
		exp++
		mantissa &= mantissaMask
	case maxExponent:
		if mantissa == 0 {
			return math.Float32frombits(sign | 0x7F800000)
		}
		return math.Float32frombits(sign | 0x7FC00000 | mantissa<<13)
	}
	exp = exp - exponentBias + 127
	return math.Float32frombits(sign | uint32(exp)<<23 | mantissa<<13)
}

// FromFloat64 converts f through float32.
func FromFloat64(f float64) Half {
	return FromFloat32(float32(f))
}

// Float64 converts h to a float64.
func (h Half) Float64() float64 {
	return float64(h.Float32())
}

// IsNaN reports whether h is a NaN.
func (h Half) IsNaN() bool {
	return h&exponentMask == exponentMask && h&mantissaMask != 0
}

// IsInf reports whether h is positive or negative infinity.
func (h Half) IsInf() bool {
	return h&0x7FFF == exponentMask
}

// IsFinite reports whether h is neither infinite nor NaN.
func (h Half) IsFinite() bool {
	return h&exponentMask != exponentMask
}

// Bits returns the binary16 representation of h.
func (h Half) Bits() uint16 {
	return uint16(h)
}

// FromBits creates a Half from its binary16 representation.
func FromBits(bits uint16) Half {
	return Half(bits)
}

// String formats h as its float32 value.
func (h Half) String() string {
	switch {
	case h.IsNaN():
		return "NaN"
	case h == Inf:
		return "+Inf"
	case h == NegInf:
		return "-Inf"
	}
	return formatFloat(h.Float32())
}

// FromFloat32Slice converts src into dst. Both slices must have the same
// length.
func FromFloat32Slice(dst []Half, src []float32) {
	if len(dst) != len(src) {
		panic("half: destination and source slices must have the same length")
	}
	for i, f := range src {
		dst[i] = FromFloat32(f)
	}
}

// ToFloat32Slice converts src into dst. Both slices must have the same
// length.
func ToFloat32Slice(dst []float32, src []Half) {
	if len(dst) != len(src) {
		panic("half: destination and source slices must have the same length")
	}
	for i, h := range src {
		dst[i] = h.Float32()
	}
}
