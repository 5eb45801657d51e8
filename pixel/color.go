package pixel

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a single pixel value tagged with its Pixel.
type Color struct {
	pixel Pixel
	data  [16]byte
}

// NewColor returns a color of pixel p with channels set from c, where 1 is
// full intensity. Missing channels are zero.
func NewColor(p Pixel, c ...float32) Color {
	mustValid(p)
	col := Color{pixel: p}
	var v Value
	t := p.Type()
	for i := 0; i < len(c) && i < p.Channels(); i++ {
		v.Set(t, i, c[i])
	}
	Store(col.data[:], p, v)
	return col
}

// ColorOf returns a color holding v as pixel p.
func ColorOf(p Pixel, v Value) Color {
	mustValid(p)
	col := Color{pixel: p}
	Store(col.data[:], p, v)
	return col
}

// Pixel returns the pixel of c.
func (c Color) Pixel() Pixel { return c.pixel }

// Channels returns the number of channels in c.
func (c Color) Channels() int { return c.pixel.Channels() }

// Bytes returns a copy of the stored pixel bytes.
func (c Color) Bytes() []byte {
	b := make([]byte, c.pixel.Bytes())
	copy(b, c.data[:])
	return b
}

// Value returns the samples of c.
func (c Color) Value() Value {
	return Load(c.data[:], c.pixel)
}

// F32 returns channel ch as a float.
func (c Color) F32(ch int) float32 {
	c.checkChannel(ch)
	return c.Value().Get(c.pixel.Type(), ch)
}

// SetF32 sets channel ch from a float, where 1 is full intensity.
func (c *Color) SetF32(ch int, f float32) {
	c.checkChannel(ch)
	v := c.Value()
	v.Set(c.pixel.Type(), ch, f)
	Store(c.data[:], c.pixel, v)
}

func (c Color) checkChannel(ch int) {
	if ch < 0 || ch >= c.pixel.Channels() {
		panic(fmt.Sprintf("pixel: channel %d out of range for %v", ch, c.pixel))
	}
}

// Convert returns c converted to pixel dst.
func (c Color) Convert(dst Pixel) Color {
	return ColorOf(dst, Convert(c.Value(), c.pixel, dst))
}

// Equal reports whether c and o have the same pixel and bytes.
func (c Color) Equal(o Color) bool {
	return c.pixel == o.pixel && c.data == o.data
}

// Colorful returns c as an sRGB display color, ignoring alpha.
func (c Color) Colorful() colorful.Color {
	rgb := c.Convert(RGBF32).Value()
	return colorful.Color{
		R: float64(rgb.F32[0]),
		G: float64(rgb.F32[1]),
		B: float64(rgb.F32[2]),
	}
}

// Hex returns c as a "#rrggbb" string. Out of range channels are clamped.
func (c Color) Hex() string {
	return c.Colorful().Clamped().Hex()
}

// FromHex parses a "#rrggbb" or "#rgb" string into a color of pixel p.
// Alpha, when p has it, is set to full intensity.
func FromHex(s string, p Pixel) (Color, error) {
	cc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("pixel: parse color %q: %w", s, err)
	}
	rgb := NewColor(RGBF32, float32(cc.R), float32(cc.G), float32(cc.B))
	return rgb.Convert(p), nil
}

// Lerp interpolates between a and b by t, channel by channel, in the pixel
// of a. b is converted to that pixel first.
func Lerp(a, b Color, t float32) Color {
	b = b.Convert(a.pixel)
	out := Color{pixel: a.pixel}
	for ch := 0; ch < a.Channels(); ch++ {
		x, y := a.F32(ch), b.F32(ch)
		out.SetF32(ch, x+(y-x)*t)
	}
	return out
}
