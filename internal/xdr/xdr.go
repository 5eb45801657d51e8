// Package xdr provides little-endian binary encoding for container headers
// and byte swapping for pixel buffers.
package xdr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrStringTooLong is returned when a null-terminated string exceeds
	// MaxString bytes.
	ErrStringTooLong = errors.New("xdr: string too long")

	// ErrNegativeSize is returned when a size parameter is negative.
	ErrNegativeSize = errors.New("xdr: negative size")
)

// ByteOrder is the byte order of encoded headers.
var ByteOrder = binary.LittleEndian

// MaxString bounds strings read by StreamReader.ReadString.
const MaxString = 4096

// StreamReader wraps an io.Reader for little-endian binary reading.
type StreamReader struct {
	r   io.Reader
	buf [8]byte
}

// NewStreamReader creates a StreamReader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: r}
}

// ReadByte reads a single byte.
func (r *StreamReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(r.r, r.buf[:1])
	return r.buf[0], err
}

// ReadBytes reads n bytes into a new slice.
func (r *StreamReader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ReadUint16 reads an unsigned 16-bit integer in little-endian order.
func (r *StreamReader) ReadUint16() (uint16, error) {
	if _, err := io.ReadFull(r.r, r.buf[:2]); err != nil {
		return 0, err
	}
	return ByteOrder.Uint16(r.buf[:2]), nil
}

// ReadUint32 reads an unsigned 32-bit integer in little-endian order.
func (r *StreamReader) ReadUint32() (uint32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(r.buf[:4]), nil
}

// ReadInt32 reads a signed 32-bit integer in little-endian order.
func (r *StreamReader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadString reads a null-terminated string.
// The null terminator is consumed but not included in the result.
func (r *StreamReader) ReadString() (string, error) {
	var s []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(s), nil
		}
		if len(s) == MaxString {
			return "", ErrStringTooLong
		}
		s = append(s, b)
	}
}

// BufferWriter provides a growing buffer for writing binary data.
type BufferWriter struct {
	buf []byte
}

// NewBufferWriter creates a BufferWriter with an initial capacity.
func NewBufferWriter(capacity int) *BufferWriter {
	return &BufferWriter{buf: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written.
func (w *BufferWriter) Len() int {
	return len(w.buf)
}

// Bytes returns the written data as a byte slice.
// The returned slice is valid until the next write operation.
func (w *BufferWriter) Bytes() []byte {
	return w.buf
}

// Reset clears the buffer.
func (w *BufferWriter) Reset() {
	w.buf = w.buf[:0]
}

// WriteByte writes a single byte.
func (w *BufferWriter) WriteByte(b byte) {
	w.buf = append(w.buf, b)
}

// WriteBytes writes a byte slice.
func (w *BufferWriter) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteUint16 writes an unsigned 16-bit integer in little-endian order.
func (w *BufferWriter) WriteUint16(v uint16) {
	w.buf = ByteOrder.AppendUint16(w.buf, v)
}

// WriteUint32 writes an unsigned 32-bit integer in little-endian order.
func (w *BufferWriter) WriteUint32(v uint32) {
	w.buf = ByteOrder.AppendUint32(w.buf, v)
}

// WriteInt32 writes a signed 32-bit integer in little-endian order.
func (w *BufferWriter) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

// WriteString writes a null-terminated string. Strings containing a null
// byte are truncated at it.
func (w *BufferWriter) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			s = s[:i]
			break
		}
	}
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

// Swap reverses the byte order of every wordSize-byte word in data, in
// place. Word sizes of 1 are a no-op; 2, 4 and 8 are supported.
func Swap(data []byte, wordSize int) error {
	if wordSize == 1 {
		return nil
	}
	if wordSize != 2 && wordSize != 4 && wordSize != 8 {
		return fmt.Errorf("xdr: unsupported word size %d", wordSize)
	}
	if len(data)%wordSize != 0 {
		return fmt.Errorf("xdr: %d bytes is not a multiple of word size %d", len(data), wordSize)
	}
	for i := 0; i < len(data); i += wordSize {
		w := data[i : i+wordSize]
		for a, b := 0, wordSize-1; a < b; a, b = a+1, b-1 {
			w[a], w[b] = w[b], w[a]
		}
	}
	return nil
}
