// Package imgdata holds images in memory: a pixel buffer described by an
// Info, plus the operations that move pixels between buffers.
package imgdata

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/vmath"
)

var (
	// ErrInvalidInfo is returned for an Info with a negative size, an
	// invalid pixel or a non-positive alignment, and for buffers whose sizes
	// do not fit an operation.
	ErrInvalidInfo = errors.New("imgdata: invalid image info")

	// ErrPixelMismatch is returned when an operation needs both buffers to
	// share a pixel and they do not.
	ErrPixelMismatch = errors.New("imgdata: pixel mismatch")

	// ErrUnsupportedPixel is returned when an operation cannot handle a
	// pixel, such as planar layouts of RGB U10.
	ErrUnsupportedPixel = errors.New("imgdata: unsupported pixel")
)

// Proxy is a power-of-two reduction applied when loading large images.
type Proxy uint8

const (
	ProxyNone Proxy = iota
	Proxy2
	Proxy4
	Proxy8

	proxyCount = 4
)

var proxyLabels = [proxyCount]string{"None", "1/2", "1/4", "1/8"}

func (p Proxy) String() string {
	if p >= proxyCount {
		return fmt.Sprintf("Proxy(%d)", uint8(p))
	}
	return proxyLabels[p]
}

// LabelsProxy returns the labels of all proxies.
func LabelsProxy() []string {
	return slices.Clone(proxyLabels[:])
}

// ParseProxy returns the proxy with the given label, ignoring case.
func ParseProxy(s string) (Proxy, error) {
	for i, label := range proxyLabels {
		if strings.EqualFold(label, s) {
			return Proxy(i), nil
		}
	}
	return 0, fmt.Errorf("imgdata: unknown proxy %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Proxy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Proxy) UnmarshalText(text []byte) error {
	v, err := ParseProxy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Scale returns the reduction factor: 1, 2, 4 or 8.
func (p Proxy) Scale() int {
	return 1 << p
}

// ScaleSize returns size reduced by p, rounding up.
func (p Proxy) ScaleSize(size vmath.V2i) vmath.V2i {
	s := p.Scale()
	return vmath.V2i{X: ceilDiv(size.X, s), Y: ceilDiv(size.Y, s)}
}

// ScaleBox returns the box with position and size reduced by p, rounding
// up.
func (p Proxy) ScaleBox(b vmath.Box2i) vmath.Box2i {
	s := p.Scale()
	return vmath.NewBox2i(
		ceilDiv(b.Min.X, s),
		ceilDiv(b.Min.Y, s),
		ceilDiv(b.Width(), s),
		ceilDiv(b.Height(), s))
}

func ceilDiv(a, s int) int {
	if a <= 0 {
		// Division truncates toward zero, which is the ceiling here.
		return a / s
	}
	return (a + s - 1) / s
}

// Endian is the byte order of multi-byte samples in a buffer.
type Endian uint8

const (
	// EndianNative is the byte order of the running machine.
	EndianNative Endian = iota
	EndianLittle
	EndianBig
)

var nativeEndian = func() Endian {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return EndianLittle
	}
	return EndianBig
}()

// Resolve returns EndianLittle or EndianBig, replacing EndianNative with
// the machine order.
func (e Endian) Resolve() Endian {
	if e == EndianNative {
		return nativeEndian
	}
	return e
}

func (e Endian) String() string {
	switch e.Resolve() {
	case EndianLittle:
		return "little"
	case EndianBig:
		return "big"
	}
	return fmt.Sprintf("Endian(%d)", uint8(e))
}

// IsNative reports whether e matches the machine order.
func (e Endian) IsNative() bool {
	return e.Resolve() == nativeEndian
}

// Info describes the layout of an image buffer.
type Info struct {
	FileName  string
	LayerName string
	Size      vmath.V2i
	Proxy     Proxy
	Pixel     pixel.Pixel
	BGR       bool
	Mirror    vmath.V2b
	// Align is the row alignment in bytes; rows are padded to a multiple.
	Align  int
	Endian Endian
	// Tags is the file metadata. It does not take part in Equal.
	Tags Tags
}

// NewInfo returns the description of a size image of pixel p with native
// byte order and unaligned rows.
func NewInfo(size vmath.V2i, p pixel.Pixel) Info {
	return Info{
		LayerName: "Default",
		Size:      size,
		Pixel:     p,
		Align:     1,
	}
}

// Validate reports whether the info describes a buffer that can exist.
func (i Info) Validate() error {
	switch {
	case i.Size.X < 0 || i.Size.Y < 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidInfo, i.Size.X, i.Size.Y)
	case !i.Pixel.Valid():
		return fmt.Errorf("%w: %v", ErrInvalidInfo, i.Pixel)
	case i.Align < 1:
		return fmt.Errorf("%w: align %d", ErrInvalidInfo, i.Align)
	case i.Proxy >= proxyCount:
		return fmt.Errorf("%w: %v", ErrInvalidInfo, i.Proxy)
	}
	if i.Size.X > 0 && i.Pixel.Bytes() > (math.MaxInt-i.Align)/i.Size.X ||
		i.Size.Y > 0 && i.BytesScanline() > math.MaxInt/i.Size.Y {
		return fmt.Errorf("%w: size %dx%d %v overflows", ErrInvalidInfo, i.Size.X, i.Size.Y, i.Pixel)
	}
	return nil
}

// BytesScanline returns the row length in bytes, including alignment
// padding.
func (i Info) BytesScanline() int {
	n := i.Size.X * i.Pixel.Bytes()
	a := max(i.Align, 1)
	return (n + a - 1) / a * a
}

// BytesData returns the buffer size in bytes.
func (i Info) BytesData() int {
	return i.Size.Y * i.BytesScanline()
}

// Equal reports whether two infos describe the same layout. File and layer
// names are not compared.
func (i Info) Equal(o Info) bool {
	return i.Size == o.Size &&
		i.Proxy == o.Proxy &&
		i.Pixel == o.Pixel &&
		i.BGR == o.BGR &&
		i.Mirror == o.Mirror &&
		max(i.Align, 1) == max(o.Align, 1) &&
		i.Endian.Resolve() == o.Endian.Resolve()
}
