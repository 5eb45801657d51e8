package imgdata

import (
	"image"
	"image/color"

	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/vmath"
)

// ToImage returns the contents of d as a standard library image.
//
// L U8 and L U16 become *image.Gray and *image.Gray16. Other 8-bit pixels
// become *image.NRGBA; everything else becomes *image.NRGBA64, with float
// samples clamped to [0, 1].
func ToImage(d *Data) (image.Image, error) {
	w, h := d.W(), d.H()
	rect := image.Rect(0, 0, w, h)

	switch p := d.Pixel(); {
	case p == pixel.LU8:
		c, err := Converted(d, pixel.LU8)
		if err != nil {
			return nil, err
		}
		img := image.NewGray(rect)
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride:], c.Row(y))
		}
		return img, nil

	case p == pixel.LU16:
		img := image.NewGray16(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetGray16(x, y, color.Gray16{Y: d.PixelAt(x, y).U16[0]})
			}
		}
		return img, nil

	case p.Type() == pixel.TypeU8:
		c, err := Converted(d, pixel.RGBAU8)
		if err != nil {
			return nil, err
		}
		img := image.NewNRGBA(rect)
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride:], c.Row(y))
		}
		return img, nil
	}

	c, err := Converted(d, pixel.RGBAU16)
	if err != nil {
		return nil, err
	}
	img := image.NewNRGBA64(rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := c.PixelAt(x, y)
			img.SetNRGBA64(x, y, color.NRGBA64{R: v.U16[0], G: v.U16[1], B: v.U16[2], A: v.U16[3]})
		}
	}
	return img, nil
}

// FromImage copies img into a new buffer. The pixel is chosen from the
// image type: gray images keep one channel, JPEG-style YCbCr images become
// RGB U8, 8-bit color images become RGBA U8 and anything else RGBA U16.
func FromImage(img image.Image) (*Data, error) {
	b := img.Bounds()
	size := vmath.V2i{X: b.Dx(), Y: b.Dy()}

	var p pixel.Pixel
	switch img.(type) {
	case *image.Gray:
		p = pixel.LU8
	case *image.Gray16:
		p = pixel.LU16
	case *image.YCbCr, *image.CMYK:
		p = pixel.RGBU8
	case *image.NRGBA, *image.RGBA, *image.Paletted:
		p = pixel.RGBAU8
	default:
		p = pixel.RGBAU16
	}

	d, err := New(NewInfo(size, p))
	if err != nil {
		return nil, err
	}

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			var v pixel.Value
			switch p {
			case pixel.LU8:
				v = pixel.U8Value(color.GrayModel.Convert(c).(color.Gray).Y)
			case pixel.LU16:
				v = pixel.U16Value(color.Gray16Model.Convert(c).(color.Gray16).Y)
			case pixel.RGBU8:
				r, g, bl, _ := c.RGBA()
				v = pixel.U8Value(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			case pixel.RGBAU8:
				n := color.NRGBAModel.Convert(c).(color.NRGBA)
				v = pixel.U8Value(n.R, n.G, n.B, n.A)
			default:
				n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
				v = pixel.U16Value(n.R, n.G, n.B, n.A)
			}
			d.SetPixel(x, y, v)
		}
	}
	return d, nil
}
