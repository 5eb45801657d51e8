package pixel

import "github.com/mrjoshuak/go-imageseq/half"

const (
	maxU8  = 1<<8 - 1
	maxU10 = 1<<10 - 1
	maxU16 = 1<<16 - 1
)

// Widening tables, filled once by init and read-only afterwards.
var (
	lutU8ToU10  [maxU8 + 1]uint16
	lutU8ToU16  [maxU8 + 1]uint16
	lutU8ToF16  [maxU8 + 1]half.Half
	lutU8ToF32  [maxU8 + 1]float32
	lutU10ToU16 [maxU10 + 1]uint16
	lutU10ToF16 [maxU10 + 1]half.Half
	lutU10ToF32 [maxU10 + 1]float32
)

func init() {
	for i := range lutU8ToU10 {
		lutU8ToU10[i] = uint16(rescale(uint32(i), maxU8, maxU10))
		lutU8ToU16[i] = uint16(rescale(uint32(i), maxU8, maxU16))
		lutU8ToF32[i] = float32(i) / maxU8
		lutU8ToF16[i] = half.FromFloat32(lutU8ToF32[i])
	}
	for i := range lutU10ToU16 {
		lutU10ToU16[i] = uint16(rescale(uint32(i), maxU10, maxU16))
		lutU10ToF32[i] = float32(i) / maxU10
		lutU10ToF16[i] = half.FromFloat32(lutU10ToF32[i])
	}
}

// rescale maps x from [0, srcMax] to [0, dstMax], rounding half up.
func rescale(x, srcMax, dstMax uint32) uint32 {
	return (x*dstMax*2 + srcMax) / (srcMax * 2)
}

// quantize maps a float to [0, top], clamping out of range values. NaN
// maps to 0.
func quantize(f, top float32) uint32 {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return uint32(top)
	}
	return uint32(f*top + 0.5)
}

// Sample conversions between channel types. Integer widening reads
// precomputed tables, integer narrowing rounds to nearest, integer to float
// divides by the integer maximum and float to integer clamps to [0, 1]
// before rounding.

func U8ToU10(x uint8) uint16 { return lutU8ToU10[x] }
func U8ToU16(x uint8) uint16 { return lutU8ToU16[x] }
func U8ToF16(x uint8) half.Half { return lutU8ToF16[x] }
func U8ToF32(x uint8) float32 { return lutU8ToF32[x] }
func U10ToU8(x uint16) uint8 { return uint8(rescale(uint32(x&maxU10), maxU10, maxU8)) }
func U10ToU16(x uint16) uint16 { return lutU10ToU16[x&maxU10] }
func U10ToF16(x uint16) half.Half { return lutU10ToF16[x&maxU10] }
func U10ToF32(x uint16) float32 { return lutU10ToF32[x&maxU10] }
func U16ToU8(x uint16) uint8 { return uint8(rescale(uint32(x), maxU16, maxU8)) }
func U16ToU10(x uint16) uint16 { return uint16(rescale(uint32(x), maxU16, maxU10)) }
func U16ToF16(x uint16) half.Half { return half.FromFloat32(U16ToF32(x)) }
func U16ToF32(x uint16) float32 { return float32(x) / maxU16 }
func F16ToU8(x half.Half) uint8 { return F32ToU8(x.Float32()) }
func F16ToU10(x half.Half) uint16 { return F32ToU10(x.Float32()) }
func F16ToU16(x half.Half) uint16 { return F32ToU16(x.Float32()) }
func F16ToF32(x half.Half) float32 { return x.Float32() }
func F32ToU8(x float32) uint8 { return uint8(quantize(x, maxU8)) }
func F32ToU10(x float32) uint16 { return uint16(quantize(x, maxU10)) }
func F32ToU16(x float32) uint16 { return uint16(quantize(x, maxU16)) }
func F32ToF16(x float32) half.Half { return half.FromFloat32(x) }

// U10 words hold R in bits 22-31, G in 12-21 and B in 2-11. Bits 0-1 are
// zero.

// PackU10 packs three 10-bit samples into one word. Bits above the low ten
// of each sample are discarded.
func PackU10(r, g, b uint16) uint32 {
	return uint32(r&maxU10)<<22 | uint32(g&maxU10)<<12 | uint32(b&maxU10)<<2
}

// UnpackU10 splits a packed word into its three 10-bit samples.
func UnpackU10(w uint32) (r, g, b uint16) {
	return uint16(w>>22) & maxU10, uint16(w>>12) & maxU10, uint16(w>>2) & maxU10
}
