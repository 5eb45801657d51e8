package compression

// prepare returns a copy of src with bytes grouped by offset within each
// stride-byte sample, then delta encoded.
//
//	[a0 a1 b0 b1 c0 c1] -> [a0 b0 c0 a1 b1 c1] -> deltas
func prepare(src []byte, stride int) []byte {
	out := interleave(src, stride)
	deltaEncode(out)
	return out
}

// restore reverses prepare.
func restore(data []byte, stride int) []byte {
	deltaDecode(data)
	return deinterleave(data, stride)
}

func interleave(data []byte, stride int) []byte {
	out := make([]byte, len(data))
	if stride <= 1 {
		copy(out, data)
		return out
	}
	n := len(data) / stride
	for offset := 0; offset < stride; offset++ {
		base := offset * n
		for i := 0; i < n; i++ {
			out[base+i] = data[i*stride+offset]
		}
	}
	// Trailing bytes that do not fill a sample keep their place.
	copy(out[n*stride:], data[n*stride:])
	return out
}

func deinterleave(data []byte, stride int) []byte {
	out := make([]byte, len(data))
	if stride <= 1 {
		copy(out, data)
		return out
	}
	n := len(data) / stride
	for offset := 0; offset < stride; offset++ {
		base := offset * n
		for i := 0; i < n; i++ {
			out[i*stride+offset] = data[base+i]
		}
	}
	copy(out[n*stride:], data[n*stride:])
	return out
}

// deltaEncode replaces each byte after the first with its difference from
// the previous byte, in place.
func deltaEncode(data []byte) {
	for i := len(data) - 1; i >= 1; i-- {
		data[i] -= data[i-1]
	}
}

// deltaDecode reverses deltaEncode in place.
func deltaDecode(data []byte) {
	for i := 1; i < len(data); i++ {
		data[i] += data[i-1]
	}
}
