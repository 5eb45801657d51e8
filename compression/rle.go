package compression

const (
	// rleMinRun is the shortest run that is encoded as a run.
	rleMinRun = 3
	// rleMaxRun is the longest run or literal block one count byte covers.
	rleMaxRun = 127
)

// rleCompress encodes src as count-prefixed blocks:
//   - negative count -n: the next byte repeats n+1 times
//   - positive count +n: the next n+1 bytes are literal
//
// For example:
//
//	[A, A, A, A, B, C, D] -> [-3, A, 2, B, C, D]
func rleCompress(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	dst := make([]byte, 0, len(src)+len(src)/2)

	i := 0
	for i < len(src) {
		val := src[i]
		end := i + 1
		for end < len(src) && src[end] == val && end-i < rleMaxRun {
			end++
		}
		if end-i >= rleMinRun {
			dst = append(dst, byte(-(end - i - 1)), val)
			i = end
			continue
		}

		start := i
		for i < len(src) && i-start < rleMaxRun {
			if i+rleMinRun <= len(src) && src[i+1] == src[i] && src[i+2] == src[i] {
				break
			}
			i++
		}
		dst = append(dst, byte(i-start-1))
		dst = append(dst, src[start:i]...)
	}
	return dst
}

// rleDecompress decodes src, which must expand to exactly size bytes.
func rleDecompress(src []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	pos := 0
	for i := 0; i < len(src); {
		count := int(int8(src[i]))
		i++
		if count < 0 {
			n := -count + 1
			if i >= len(src) || pos+n > size {
				return nil, ErrCorrupt
			}
			val := src[i]
			i++
			for end := pos + n; pos < end; pos++ {
				dst[pos] = val
			}
			continue
		}
		n := count + 1
		if i+n > len(src) || pos+n > size {
			return nil, ErrCorrupt
		}
		copy(dst[pos:], src[i:i+n])
		pos += n
		i += n
	}
	if pos != size {
		return nil, ErrCorrupt
	}
	return dst, nil
}
