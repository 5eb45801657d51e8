// Package compression provides the byte-stream compressors used by the raw
// image container.
//
// RLE and ZIP first reorder each block so bytes at the same offset within
// a sample are adjacent, then replace every byte with its difference from
// the previous one. Image data compresses much better after both steps.
package compression

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrCorrupt is returned when compressed data cannot be decoded to the
	// expected size.
	ErrCorrupt = errors.New("compression: corrupt data")

	// ErrUnknownMethod is returned for a Method outside the enumeration.
	ErrUnknownMethod = errors.New("compression: unknown method")
)

// Method identifies a compression algorithm.
type Method uint8

const (
	// None stores bytes unchanged.
	None Method = iota
	// RLE is run-length encoding.
	RLE
	// ZIP is zlib deflate.
	ZIP
	// ZSTD is Zstandard.
	ZSTD

	methodCount = 4
)

var methodLabels = [methodCount]string{"none", "rle", "zip", "zstd"}

func (m Method) String() string {
	if m >= methodCount {
		return fmt.Sprintf("Method(%d)", uint8(m))
	}
	return methodLabels[m]
}

// Labels returns the names of all methods.
func Labels() []string {
	return slices.Clone(methodLabels[:])
}

// ParseMethod returns the method with the given name, ignoring case.
func ParseMethod(s string) (Method, error) {
	for i, label := range methodLabels {
		if strings.EqualFold(label, s) {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if m >= methodCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Level trades speed for size. It applies to ZIP and ZSTD.
type Level int

const (
	LevelDefault Level = iota
	LevelFastest
	LevelBest
)

// Compress compresses src with method m at the default level. stride is
// the width in bytes of one sample, used to group bytes before RLE and
// ZIP; values below 2 disable grouping.
func Compress(m Method, src []byte, stride int) ([]byte, error) {
	return CompressLevel(m, src, stride, LevelDefault)
}

// CompressLevel is like Compress with an explicit level.
func CompressLevel(m Method, src []byte, stride int, level Level) ([]byte, error) {
	switch m {
	case None:
		return append([]byte(nil), src...), nil
	case RLE:
		return rleCompress(prepare(src, stride)), nil
	case ZIP:
		return zipCompress(prepare(src, stride), level)
	case ZSTD:
		return zstdCompress(src, level), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, uint8(m))
}

// Decompress reverses Compress. size is the exact decompressed length and
// stride must match the value given to Compress.
func Decompress(m Method, src []byte, size, stride int) ([]byte, error) {
	if size < 0 {
		return nil, ErrCorrupt
	}
	var (
		dst []byte
		err error
	)
	switch m {
	case None:
		if len(src) != size {
			return nil, ErrCorrupt
		}
		return append([]byte(nil), src...), nil
	case RLE:
		dst, err = rleDecompress(src, size)
	case ZIP:
		dst, err = zipDecompress(src, size)
	case ZSTD:
		return zstdDecompress(src, size)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, uint8(m))
	}
	if err != nil {
		return nil, err
	}
	return restore(dst, stride), nil
}
