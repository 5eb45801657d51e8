package imgdata

import (
	"bytes"
	"fmt"

	"github.com/mrjoshuak/go-imageseq/internal/xdr"
	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/vmath"
)

// Data is an image buffer of Info.Size.Y rows, each BytesScanline bytes
// long. The zero value is an empty L U8 image.
type Data struct {
	info     Info
	buf      []byte
	scanline int
}

// New allocates a zeroed buffer for info.
func New(info Info) (*Data, error) {
	d := &Data{}
	if err := d.Set(info); err != nil {
		return nil, err
	}
	return d, nil
}

// Set changes the layout of d. The buffer is reallocated only when its
// byte size changes; otherwise the old bytes are kept.
func (d *Data) Set(info Info) error {
	if err := info.Validate(); err != nil {
		return err
	}
	n := info.BytesData()
	if n != len(d.buf) {
		d.buf = make([]byte, n)
	}
	d.info = info
	d.info.Tags = info.Tags.Clone()
	d.scanline = info.BytesScanline()
	return nil
}

// SetData makes d a copy of o.
func (d *Data) SetData(o *Data) {
	d.info = o.info
	d.info.Tags = o.info.Tags.Clone()
	d.scanline = o.scanline
	if len(d.buf) != len(o.buf) {
		d.buf = make([]byte, len(o.buf))
	}
	copy(d.buf, o.buf)
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	c := &Data{}
	c.SetData(d)
	return c
}

// Zero clears every byte of the buffer.
func (d *Data) Zero() {
	clear(d.buf)
}

// Info returns the layout of d.
func (d *Data) Info() Info {
	info := d.info
	info.Tags = info.Tags.Clone()
	return info
}

// Size returns the image dimensions.
func (d *Data) Size() vmath.V2i { return d.info.Size }

// W returns the image width.
func (d *Data) W() int { return d.info.Size.X }

// H returns the image height.
func (d *Data) H() int { return d.info.Size.Y }

// Pixel returns the pixel of d.
func (d *Data) Pixel() pixel.Pixel { return d.info.Pixel }

// Channels returns the number of channels per pixel.
func (d *Data) Channels() int { return d.info.Pixel.Channels() }

// IsValid reports whether d holds at least one pixel.
func (d *Data) IsValid() bool {
	return d.info.Size.X > 0 && d.info.Size.Y > 0
}

// Bytes returns the whole buffer. Writes through the slice modify d.
func (d *Data) Bytes() []byte { return d.buf }

// Row returns row y, without alignment padding.
func (d *Data) Row(y int) []byte {
	off := y * d.scanline
	return d.buf[off : off+d.info.Size.X*d.BytesPixel()]
}

// At returns the bytes of the pixel at (x, y).
func (d *Data) At(x, y int) []byte {
	bp := d.BytesPixel()
	off := y*d.scanline + x*bp
	return d.buf[off : off+bp]
}

// BytesPixel returns the size of one pixel in bytes.
func (d *Data) BytesPixel() int { return d.info.Pixel.Bytes() }

// BytesScanline returns the length of a row in bytes, including padding.
func (d *Data) BytesScanline() int { return d.scanline }

// BytesData returns the buffer size in bytes.
func (d *Data) BytesData() int { return len(d.buf) }

// Equal reports whether d and o have equal layouts and bytes.
func (d *Data) Equal(o *Data) bool {
	return d.info.Equal(o.info) && bytes.Equal(d.buf, o.buf)
}

// PixelAt returns the value at (x, y) in native byte order.
func (d *Data) PixelAt(x, y int) pixel.Value {
	p := d.At(x, y)
	if !d.info.Endian.IsNative() {
		tmp := bytes.Clone(p)
		swapSamples(tmp, d.info.Pixel)
		return pixel.Load(tmp, d.info.Pixel)
	}
	return pixel.Load(p, d.info.Pixel)
}

// SetPixel stores v at (x, y) in the buffer's byte order.
func (d *Data) SetPixel(x, y int, v pixel.Value) {
	p := d.At(x, y)
	pixel.Store(p, d.info.Pixel, v)
	if !d.info.Endian.IsNative() {
		swapSamples(p, d.info.Pixel)
	}
}

func (d *Data) String() string {
	return fmt.Sprintf("%dx%d %v", d.W(), d.H(), d.info.Pixel)
}

// sampleSize returns the byte swap word size of p.
func sampleSize(p pixel.Pixel) int {
	if p == pixel.RGBU10 {
		return 4
	}
	return p.ChannelBytes()
}

// swapSamples reverses the byte order of every sample in b, which holds
// whole pixels of p.
func swapSamples(b []byte, p pixel.Pixel) {
	// Lengths are always whole pixels, so Swap cannot fail.
	_ = xdr.Swap(b, sampleSize(p))
}
