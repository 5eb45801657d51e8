// Package pixel describes the closed set of pixel layouts used by image
// buffers and converts samples between them.
//
// A Pixel combines a channel Format (L, LA, RGB, RGBA) with a channel Type
// (U8, U10, U16, F16, F32). Integer samples are unsigned normalized values
// in [0, 2^bits-1]; float samples are linear with 0 as black and 1 as
// white. U10 is only defined for RGB, where three 10-bit samples are packed
// into one 32-bit word.
package pixel

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrParse is returned when a name does not match any enumeration label.
var ErrParse = errors.New("pixel: unrecognized name")

// Format is the channel layout of a pixel.
type Format uint8

const (
	// FormatL is a single luminance channel.
	FormatL Format = iota
	// FormatLA is luminance plus alpha.
	FormatLA
	// FormatRGB is red, green and blue.
	FormatRGB
	// FormatRGBA is red, green, blue and alpha.
	FormatRGBA

	formatCount = 4
)

var formatLabels = [formatCount]string{"L", "LA", "RGB", "RGBA"}

// String returns the label of f.
func (f Format) String() string {
	if f >= formatCount {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formatLabels[f]
}

// Channels returns the number of channels in f.
func (f Format) Channels() int {
	return int(f) + 1
}

// HasAlpha reports whether f ends with an alpha channel.
func (f Format) HasAlpha() bool {
	return f == FormatLA || f == FormatRGBA
}

// FormatForChannels returns the format with n channels.
func FormatForChannels(n int) (Format, bool) {
	if n < 1 || n > formatCount {
		return 0, false
	}
	return Format(n - 1), true
}

// LabelsFormat returns the labels of all formats in enumeration order.
func LabelsFormat() []string {
	return slices.Clone(formatLabels[:])
}

// ParseFormat returns the format with the given label, ignoring case.
func ParseFormat(s string) (Format, error) {
	i, ok := lookup(formatLabels[:], s)
	if !ok {
		return 0, fmt.Errorf("%w: format %q", ErrParse, s)
	}
	return Format(i), nil
}

// Type is the storage type of a single channel.
type Type uint8

const (
	// TypeU8 is an 8-bit unsigned integer.
	TypeU8 Type = iota
	// TypeU10 is a 10-bit unsigned integer, only valid with FormatRGB.
	TypeU10
	// TypeU16 is a 16-bit unsigned integer.
	TypeU16
	// TypeF16 is an IEEE 754 binary16 float.
	TypeF16
	// TypeF32 is an IEEE 754 binary32 float.
	TypeF32

	typeCount = 5
)

var typeLabels = [typeCount]string{"U8", "U10", "U16", "F16", "F32"}

var typeBitDepth = [typeCount]int{8, 10, 16, 16, 32}

// String returns the label of t.
func (t Type) String() string {
	if t >= typeCount {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeLabels[t]
}

// BitDepth returns the number of bits in one sample of type t.
func (t Type) BitDepth() int {
	return typeBitDepth[t]
}

// IsFloat reports whether t is a floating point type.
func (t Type) IsFloat() bool {
	return t == TypeF16 || t == TypeF32
}

// Max returns the integer value of full intensity, or 1 for float types.
func (t Type) Max() int {
	switch t {
	case TypeU8:
		return maxU8
	case TypeU10:
		return maxU10
	case TypeU16:
		return maxU16
	}
	return 1
}

// LabelsType returns the labels of all types in enumeration order.
func LabelsType() []string {
	return slices.Clone(typeLabels[:])
}

// ParseType returns the type with the given label, ignoring case.
func ParseType(s string) (Type, error) {
	i, ok := lookup(typeLabels[:], s)
	if !ok {
		return 0, fmt.Errorf("%w: type %q", ErrParse, s)
	}
	return Type(i), nil
}

// Pixel is one of the supported format and type combinations.
type Pixel uint8

const (
	LU8 Pixel = iota
	LU16
	LF16
	LF32
	LAU8
	LAU16
	LAF16
	LAF32
	RGBU8
	RGBU10
	RGBU16
	RGBF16
	RGBF32
	RGBAU8
	RGBAU16
	RGBAF16
	RGBAF32

	// Count is the number of pixels.
	Count = 17
)

type pixelInfo struct {
	format       Format
	typ          Type
	channelBytes int
	bytes        int
}

var pixelTable = [Count]pixelInfo{
	LU8:     {FormatL, TypeU8, 1, 1},
	LU16:    {FormatL, TypeU16, 2, 2},
	LF16:    {FormatL, TypeF16, 2, 2},
	LF32:    {FormatL, TypeF32, 4, 4},
	LAU8:    {FormatLA, TypeU8, 1, 2},
	LAU16:   {FormatLA, TypeU16, 2, 4},
	LAF16:   {FormatLA, TypeF16, 2, 4},
	LAF32:   {FormatLA, TypeF32, 4, 8},
	RGBU8:   {FormatRGB, TypeU8, 1, 3},
	RGBU10:  {FormatRGB, TypeU10, 0, 4},
	RGBU16:  {FormatRGB, TypeU16, 2, 6},
	RGBF16:  {FormatRGB, TypeF16, 2, 6},
	RGBF32:  {FormatRGB, TypeF32, 4, 12},
	RGBAU8:  {FormatRGBA, TypeU8, 1, 4},
	RGBAU16: {FormatRGBA, TypeU16, 2, 8},
	RGBAF16: {FormatRGBA, TypeF16, 2, 8},
	RGBAF32: {FormatRGBA, TypeF32, 4, 16},
}

var pixelLabels [Count]string

func init() {
	for p, info := range pixelTable {
		pixelLabels[p] = info.format.String() + " " + info.typ.String()
	}
}

func mustValid(p Pixel) {
	if p >= Count {
		panic(fmt.Sprintf("pixel: invalid pixel %d", uint8(p)))
	}
}

// Valid reports whether p is a member of the enumeration.
func (p Pixel) Valid() bool {
	return p < Count
}

// String returns the label of p, such as "RGBA F16".
func (p Pixel) String() string {
	if p >= Count {
		return fmt.Sprintf("Pixel(%d)", uint8(p))
	}
	return pixelLabels[p]
}

// Format returns the channel format of p.
func (p Pixel) Format() Format {
	mustValid(p)
	return pixelTable[p].format
}

// Type returns the channel type of p.
func (p Pixel) Type() Type {
	mustValid(p)
	return pixelTable[p].typ
}

// Channels returns the number of channels in p.
func (p Pixel) Channels() int {
	return p.Format().Channels()
}

// ChannelBytes returns the number of bytes in one channel sample. It is 0
// for RGBU10, whose samples do not fall on byte boundaries.
func (p Pixel) ChannelBytes() int {
	mustValid(p)
	return pixelTable[p].channelBytes
}

// Bytes returns the number of bytes in one pixel.
func (p Pixel) Bytes() int {
	mustValid(p)
	return pixelTable[p].bytes
}

// BitDepth returns the number of bits in one channel sample.
func (p Pixel) BitDepth() int {
	return p.Type().BitDepth()
}

// Max returns the integer value of full intensity, or 1 for float pixels.
func (p Pixel) Max() int {
	return p.Type().Max()
}

// IsFloat reports whether p stores float samples.
func (p Pixel) IsFloat() bool {
	return p.Type().IsFloat()
}

// HasAlpha reports whether p carries an alpha channel.
func (p Pixel) HasAlpha() bool {
	return p.Format().HasAlpha()
}

// New returns the pixel with exactly the given format and type. It reports
// false for combinations outside the enumeration, such as LA with U10.
func New(f Format, t Type) (Pixel, bool) {
	for p, info := range pixelTable {
		if info.format == f && info.typ == t {
			return Pixel(p), true
		}
	}
	return 0, false
}

// Closest returns the pixel for the given format and type, substituting U16
// where U10 is not defined.
func Closest(f Format, t Type) Pixel {
	if p, ok := New(f, t); ok {
		return p
	}
	if t == TypeU10 {
		if p, ok := New(f, TypeU16); ok {
			return p
		}
	}
	panic(fmt.Sprintf("pixel: no pixel for %v %v", f, t))
}

// FromInfo returns the pixel described by a channel count, a bit depth and
// whether samples are floats. Bit depths 8, 10, 16 and 32 are recognized.
func FromInfo(channels, bitDepth int, float bool) (Pixel, bool) {
	f, ok := FormatForChannels(channels)
	if !ok {
		return 0, false
	}
	var t Type
	switch {
	case float && bitDepth == 16:
		t = TypeF16
	case float && bitDepth == 32:
		t = TypeF32
	case float:
		return 0, false
	case bitDepth == 8:
		t = TypeU8
	case bitDepth == 10:
		t = TypeU10
	case bitDepth == 16:
		t = TypeU16
	default:
		return 0, false
	}
	return New(f, t)
}

// Labels returns the labels of all pixels in enumeration order.
func Labels() []string {
	return slices.Clone(pixelLabels[:])
}

// Parse returns the pixel with the given label. Matching ignores case and
// accepts '_' or '-' in place of the space, so "rgba_f16" parses.
func Parse(s string) (Pixel, error) {
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	i, ok := lookup(pixelLabels[:], norm)
	if !ok {
		// Also accept the compact form, "RGBAF16".
		compact := strings.ReplaceAll(norm, " ", "")
		for p, label := range pixelLabels {
			if strings.EqualFold(strings.ReplaceAll(label, " ", ""), compact) {
				return Pixel(p), nil
			}
		}
		return 0, fmt.Errorf("%w: pixel %q", ErrParse, s)
	}
	return Pixel(i), nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Pixel) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("pixel: invalid pixel %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pixel) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func lookup(labels []string, s string) (int, bool) {
	for i, label := range labels {
		if strings.EqualFold(label, s) {
			return i, true
		}
	}
	return 0, false
}
