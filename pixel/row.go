package pixel

import (
	"encoding/binary"
	"math"

	"github.com/mrjoshuak/go-imageseq/half"
)

// Multi-byte samples in pixel buffers use the host byte order.
var order = binary.NativeEndian

// Load reads one pixel of type p from the start of b.
func Load(b []byte, p Pixel) Value {
	mustValid(p)
	var v Value
	n := p.Channels()
	switch p.Type() {
	case TypeU8:
		copy(v.U8[:n], b[:n])
	case TypeU10:
		v.U16[0], v.U16[1], v.U16[2] = UnpackU10(order.Uint32(b))
	case TypeU16:
		for c := 0; c < n; c++ {
			v.U16[c] = order.Uint16(b[c*2:])
		}
	case TypeF16:
		for c := 0; c < n; c++ {
			v.F16[c] = half.FromBits(order.Uint16(b[c*2:]))
		}
	case TypeF32:
		for c := 0; c < n; c++ {
			v.F32[c] = math.Float32frombits(order.Uint32(b[c*4:]))
		}
	}
	return v
}

// Store writes v as one pixel of type p to the start of b.
func Store(b []byte, p Pixel, v Value) {
	mustValid(p)
	n := p.Channels()
	switch p.Type() {
	case TypeU8:
		copy(b[:n], v.U8[:n])
	case TypeU10:
		order.PutUint32(b, PackU10(v.U16[0], v.U16[1], v.U16[2]))
	case TypeU16:
		for c := 0; c < n; c++ {
			order.PutUint16(b[c*2:], v.U16[c])
		}
	case TypeF16:
		for c := 0; c < n; c++ {
			order.PutUint16(b[c*2:], v.F16[c].Bits())
		}
	case TypeF32:
		for c := 0; c < n; c++ {
			order.PutUint32(b[c*4:], math.Float32bits(v.F32[c]))
		}
	}
}

// ConvertRow converts size pixels from in, of pixel src, into out, of pixel
// dst. Every stride-th input pixel is read, so a stride of 2 halves the
// row. When bgr is set the red and blue channels of the input are swapped
// on read.
//
// in must hold at least (size-1)*stride+1 pixels and out at least size
// pixels.
func ConvertRow(in []byte, src Pixel, out []byte, dst Pixel, size, stride int, bgr bool) {
	mustValid(src)
	mustValid(dst)
	if size <= 0 {
		return
	}
	if stride < 1 {
		stride = 1
	}
	sb, db := src.Bytes(), dst.Bytes()
	swap := bgr && src.Format() >= FormatRGB

	if src == dst && stride == 1 && !swap {
		copy(out[:size*db], in[:size*sb])
		return
	}

	st := src.Type()
	step := sb * stride
	for i, j := 0, 0; i < size; i, j = i+1, j+step {
		v := Load(in[j:], src)
		if swap {
			v.swap(st, 0, 2)
		}
		Store(out[i*db:], dst, Convert(v, src, dst))
	}
}
