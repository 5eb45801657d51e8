package pixel

import (
	"fmt"

	"github.com/mrjoshuak/go-imageseq/half"
)

// Value holds up to four channel samples in their native width. Only the
// array matching the pixel's type is meaningful; U10 samples live in U16.
type Value struct {
	U8  [4]uint8
	U16 [4]uint16
	F16 [4]half.Half
	F32 [4]float32
}

// U8Value returns a value with the given U8 samples.
func U8Value(c ...uint8) Value {
	var v Value
	copy(v.U8[:], c)
	return v
}

// U10Value returns a value with the given U10 samples.
func U10Value(c ...uint16) Value {
	var v Value
	for i := 0; i < len(c) && i < 4; i++ {
		v.U16[i] = c[i] & maxU10
	}
	return v
}

// U16Value returns a value with the given U16 samples.
func U16Value(c ...uint16) Value {
	var v Value
	copy(v.U16[:], c)
	return v
}

// F16Value returns a value with the given F16 samples.
func F16Value(c ...half.Half) Value {
	var v Value
	copy(v.F16[:], c)
	return v
}

// F32Value returns a value with the given F32 samples.
func F32Value(c ...float32) Value {
	var v Value
	copy(v.F32[:], c)
	return v
}

// Get returns channel c of a sample of type t as a float, where 1 is full
// intensity.
func (v Value) Get(t Type, c int) float32 {
	switch t {
	case TypeU8:
		return U8ToF32(v.U8[c])
	case TypeU10:
		return U10ToF32(v.U16[c])
	case TypeU16:
		return U16ToF32(v.U16[c])
	case TypeF16:
		return v.F16[c].Float32()
	case TypeF32:
		return v.F32[c]
	}
	panic(fmt.Sprintf("pixel: invalid type %d", uint8(t)))
}

// Set stores f, where 1 is full intensity, into channel c as type t.
func (v *Value) Set(t Type, c int, f float32) {
	switch t {
	case TypeU8:
		v.U8[c] = F32ToU8(f)
	case TypeU10:
		v.U16[c] = F32ToU10(f)
	case TypeU16:
		v.U16[c] = F32ToU16(f)
	case TypeF16:
		v.F16[c] = F32ToF16(f)
	case TypeF32:
		v.F32[c] = f
	default:
		panic(fmt.Sprintf("pixel: invalid type %d", uint8(t)))
	}
}

// setMax stores full intensity into channel c.
func (v *Value) setMax(t Type, c int) {
	switch t {
	case TypeU8:
		v.U8[c] = maxU8
	case TypeU10:
		v.U16[c] = maxU10
	case TypeU16:
		v.U16[c] = maxU16
	case TypeF16:
		v.F16[c] = half.One
	case TypeF32:
		v.F32[c] = 1
	}
}

// swap exchanges channels a and b.
func (v *Value) swap(t Type, a, b int) {
	switch t {
	case TypeU8:
		v.U8[a], v.U8[b] = v.U8[b], v.U8[a]
	case TypeU10, TypeU16:
		v.U16[a], v.U16[b] = v.U16[b], v.U16[a]
	case TypeF16:
		v.F16[a], v.F16[b] = v.F16[b], v.F16[a]
	case TypeF32:
		v.F32[a], v.F32[b] = v.F32[b], v.F32[a]
	}
}

// mean returns a value whose channel 0 is the average of channels 0-2,
// computed in type t. Integer averages truncate.
func (v Value) mean(t Type) Value {
	var out Value
	switch t {
	case TypeU8:
		out.U8[0] = uint8((uint32(v.U8[0]) + uint32(v.U8[1]) + uint32(v.U8[2])) / 3)
	case TypeU10, TypeU16:
		out.U16[0] = uint16((uint32(v.U16[0]) + uint32(v.U16[1]) + uint32(v.U16[2])) / 3)
	case TypeF16:
		sum := v.F16[0].Float32() + v.F16[1].Float32() + v.F16[2].Float32()
		out.F16[0] = half.FromFloat32(sum / 3)
	case TypeF32:
		out.F32[0] = (v.F32[0] + v.F32[1] + v.F32[2]) / 3
	}
	return out
}

// convertSample converts channel sc of in, of type st, into channel dc of
// out as type dt.
func convertSample(in *Value, sc int, st Type, out *Value, dc int, dt Type) {
	switch st {
	case TypeU8:
		x := in.U8[sc]
		switch dt {
		case TypeU8:
			out.U8[dc] = x
		case TypeU10:
			out.U16[dc] = U8ToU10(x)
		case TypeU16:
			out.U16[dc] = U8ToU16(x)
		case TypeF16:
			out.F16[dc] = U8ToF16(x)
		case TypeF32:
			out.F32[dc] = U8ToF32(x)
		}
	case TypeU10:
		x := in.U16[sc]
		switch dt {
		case TypeU8:
			out.U8[dc] = U10ToU8(x)
		case TypeU10:
			out.U16[dc] = x
		case TypeU16:
			out.U16[dc] = U10ToU16(x)
		case TypeF16:
			out.F16[dc] = U10ToF16(x)
		case TypeF32:
			out.F32[dc] = U10ToF32(x)
		}
	case TypeU16:
		x := in.U16[sc]
		switch dt {
		case TypeU8:
			out.U8[dc] = U16ToU8(x)
		case TypeU10:
			out.U16[dc] = U16ToU10(x)
		case TypeU16:
			out.U16[dc] = x
		case TypeF16:
			out.F16[dc] = U16ToF16(x)
		case TypeF32:
			out.F32[dc] = U16ToF32(x)
		}
	case TypeF16:
		x := in.F16[sc]
		switch dt {
		case TypeU8:
			out.U8[dc] = F16ToU8(x)
		case TypeU10:
			out.U16[dc] = F16ToU10(x)
		case TypeU16:
			out.U16[dc] = F16ToU16(x)
		case TypeF16:
			out.F16[dc] = x
		case TypeF32:
			out.F32[dc] = F16ToF32(x)
		}
	case TypeF32:
		x := in.F32[sc]
		switch dt {
		case TypeU8:
			out.U8[dc] = F32ToU8(x)
		case TypeU10:
			out.U16[dc] = F32ToU10(x)
		case TypeU16:
			out.U16[dc] = F32ToU16(x)
		case TypeF16:
			out.F16[dc] = F32ToF16(x)
		case TypeF32:
			out.F32[dc] = x
		}
	}
}

// Convert converts v from pixel src to pixel dst.
//
// Luminance converted to color is replicated into R, G and B. Color
// converted to luminance is the mean of R, G and B. Alpha is carried when
// both pixels have it, set to full intensity when only dst has it, and
// dropped otherwise. Converting to the same pixel returns v unchanged.
func Convert(v Value, src, dst Pixel) Value {
	mustValid(src)
	mustValid(dst)
	if src == dst {
		return v
	}

	sf, st := src.Format(), src.Type()
	df, dt := dst.Format(), dst.Type()
	var out Value

	switch {
	case df < FormatRGB && sf < FormatRGB:
		convertSample(&v, 0, st, &out, 0, dt)
	case df < FormatRGB:
		m := v.mean(st)
		convertSample(&m, 0, st, &out, 0, dt)
	case sf < FormatRGB:
		for c := 0; c < 3; c++ {
			convertSample(&v, 0, st, &out, c, dt)
		}
	default:
		for c := 0; c < 3; c++ {
			convertSample(&v, c, st, &out, c, dt)
		}
	}

	if df.HasAlpha() {
		da := df.Channels() - 1
		if sf.HasAlpha() {
			convertSample(&v, sf.Channels()-1, st, &out, da, dt)
		} else {
			out.setMax(dt, da)
		}
	}
	return out
}
