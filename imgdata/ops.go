package imgdata

import (
	"fmt"

	"github.com/mrjoshuak/go-imageseq/pixel"
)

// ProxyScale fills out from in, reading every proxy.Scale()-th pixel and
// row. Pixels are converted to out's pixel. Differences between the two
// infos in BGR order, mirroring and byte order are resolved on the way.
//
// out must be no larger than in reduced by proxy.
func ProxyScale(in, out *Data, proxy Proxy) error {
	scale := proxy.Scale()
	limit := proxy.ScaleSize(in.Size())
	w, h := out.W(), out.H()
	if w > limit.X || h > limit.Y {
		return fmt.Errorf("%w: %dx%d does not fit %dx%d at proxy %v",
			ErrInvalidInfo, w, h, in.W(), in.H(), proxy)
	}
	if w == 0 || h == 0 {
		return nil
	}

	src, dst := in.Pixel(), out.Pixel()
	bgr := in.info.BGR != out.info.BGR
	mirrorX := in.info.Mirror.X != out.info.Mirror.X
	mirrorY := in.info.Mirror.Y != out.info.Mirror.Y
	sameOrder := in.info.Endian.Resolve() == out.info.Endian.Resolve()
	swapIn := !in.info.Endian.IsNative()
	swapOut := !out.info.Endian.IsNative()
	fast := src == dst && !bgr && sameOrder

	sb := src.Bytes()
	rowLen := ((w-1)*scale + 1) * sb
	var tmp []byte

	for y := 0; y < h; y++ {
		sy := y
		if mirrorY {
			sy = h - 1 - y
		}
		inRow := in.Row(sy * scale)[:rowLen]
		outRow := out.Row(y)

		if fast {
			if scale == 1 {
				copy(outRow, inRow)
			} else {
				for x := 0; x < w; x++ {
					copy(outRow[x*sb:(x+1)*sb], inRow[x*scale*sb:])
				}
			}
		} else {
			if swapIn {
				tmp = append(tmp[:0], inRow...)
				swapSamples(tmp, src)
				inRow = tmp
			}
			pixel.ConvertRow(inRow, src, outRow, dst, w, scale, bgr)
			if swapOut {
				swapSamples(outRow, dst)
			}
		}
		if mirrorX {
			reversePixels(outRow, dst.Bytes())
		}
	}
	return nil
}

// Convert fills out with the pixels of in converted to out's pixel. Both
// buffers must have the same size.
func Convert(in, out *Data) error {
	if in.Size() != out.Size() {
		return fmt.Errorf("%w: size %dx%d != %dx%d",
			ErrInvalidInfo, in.W(), in.H(), out.W(), out.H())
	}
	return ProxyScale(in, out, ProxyNone)
}

// Converted returns a new buffer holding d converted to pixel p, with
// native byte order and no mirroring.
func Converted(d *Data, p pixel.Pixel) (*Data, error) {
	info := NewInfo(d.Size(), p)
	info.FileName = d.info.FileName
	info.LayerName = d.info.LayerName
	info.Tags = d.info.Tags
	out, err := New(info)
	if err != nil {
		return nil, err
	}
	if err := Convert(d, out); err != nil {
		return nil, err
	}
	return out, nil
}

func reversePixels(row []byte, bp int) {
	for i, j := 0, len(row)-bp; i < j; i, j = i+bp, j-bp {
		for k := 0; k < bp; k++ {
			row[i+k], row[j+k] = row[j+k], row[i+k]
		}
	}
}

func checkPlanar(in, out *Data) error {
	if in.Pixel() != out.Pixel() {
		return fmt.Errorf("%w: %v != %v", ErrPixelMismatch, in.Pixel(), out.Pixel())
	}
	if in.Pixel() == pixel.RGBU10 {
		return fmt.Errorf("%w: planar %v", ErrUnsupportedPixel, in.Pixel())
	}
	return nil
}

// PlanarInterleave fills out from in, whose buffer holds one plane per
// channel (all red samples, then all green, and so on). Every
// proxy.Scale()-th pixel and row is read. Planar buffers must have
// unaligned rows.
func PlanarInterleave(in, out *Data, proxy Proxy) error {
	if err := checkPlanar(in, out); err != nil {
		return err
	}
	if err := checkPlanarAlign(in); err != nil {
		return err
	}
	scale := proxy.Scale()
	limit := proxy.ScaleSize(in.Size())
	w, h := out.W(), out.H()
	if w > limit.X || h > limit.Y {
		return fmt.Errorf("%w: %dx%d does not fit %dx%d at proxy %v",
			ErrInvalidInfo, w, h, in.W(), in.H(), proxy)
	}

	cb := out.Pixel().ChannelBytes()
	bp := out.BytesPixel()
	for c := 0; c < out.Channels(); c++ {
		for y := 0; y < h; y++ {
			plane := in.buf[(c*in.H()+y*scale)*in.W()*cb:]
			row := out.Row(y)
			for x := 0; x < w; x++ {
				copy(row[x*bp+c*cb:x*bp+(c+1)*cb], plane[x*scale*cb:])
			}
		}
	}
	return nil
}

// PlanarDeinterleave writes the pixels of in into out as one plane per
// channel. Both buffers must have the same size.
func PlanarDeinterleave(in, out *Data) error {
	if err := checkPlanar(in, out); err != nil {
		return err
	}
	if err := checkPlanarAlign(out); err != nil {
		return err
	}
	if in.Size() != out.Size() {
		return fmt.Errorf("%w: size %dx%d != %dx%d",
			ErrInvalidInfo, in.W(), in.H(), out.W(), out.H())
	}

	w, h := out.W(), out.H()
	cb := out.Pixel().ChannelBytes()
	bp := out.BytesPixel()
	for c := 0; c < out.Channels(); c++ {
		for y := 0; y < h; y++ {
			row := in.Row(y)
			plane := out.buf[(c*h+y)*w*cb:]
			for x := 0; x < w; x++ {
				copy(plane[x*cb:(x+1)*cb], row[x*bp+c*cb:])
			}
		}
	}
	return nil
}

func checkPlanarAlign(d *Data) error {
	if d.info.Align > 1 {
		return fmt.Errorf("%w: planar buffer with align %d", ErrInvalidInfo, d.info.Align)
	}
	return nil
}

// Gradient sets out to an L F32 image of the same size holding a
// horizontal ramp from 0 at the left edge to 1 at the right edge.
func Gradient(out *Data) error {
	if err := out.Set(NewInfo(out.Size(), pixel.LF32)); err != nil {
		return err
	}
	w := out.W()
	for y := 0; y < out.H(); y++ {
		for x := 0; x < w; x++ {
			var f float32
			if w > 1 {
				f = float32(float64(x) / float64(w-1))
			}
			pixel.Store(out.At(x, y), pixel.LF32, pixel.F32Value(f))
		}
	}
	return nil
}
