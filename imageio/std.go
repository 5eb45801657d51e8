package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/mrjoshuak/go-imageseq/imgdata"
	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/vmath"
)

// Std adapts a Go image package to the Codec interface. Pixels go through
// imgdata.ToImage and imgdata.FromImage, so float images are clamped to
// 16 bits on save.
type Std struct {
	name         string
	exts         []string
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
	encode       func(io.Writer, image.Image, SaveOptions) error
}

// PNG returns the PNG codec.
func PNG() *Std {
	return &Std{
		name:         "png",
		exts:         []string{".png"},
		decode:       png.Decode,
		decodeConfig: png.DecodeConfig,
		encode: func(w io.Writer, img image.Image, _ SaveOptions) error {
			return png.Encode(w, img)
		},
	}
}

// JPEG returns the JPEG codec. Alpha is dropped on save.
func JPEG() *Std {
	return &Std{
		name:         "jpeg",
		exts:         []string{".jpg", ".jpeg"},
		decode:       jpeg.Decode,
		decodeConfig: jpeg.DecodeConfig,
		encode: func(w io.Writer, img image.Image, opts SaveOptions) error {
			q := jpeg.DefaultQuality
			if opts.Quality > 0 {
				q = min(opts.Quality, 100)
			}
			return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
		},
	}
}

// GIF returns the GIF codec. Only the first frame is read; saving
// quantizes to the Plan 9 palette.
func GIF() *Std {
	return &Std{
		name:         "gif",
		exts:         []string{".gif"},
		decode:       gif.Decode,
		decodeConfig: gif.DecodeConfig,
		encode: func(w io.Writer, img image.Image, _ SaveOptions) error {
			return gif.Encode(w, img, nil)
		},
	}
}

// TIFF returns the TIFF codec. Files are saved with deflate compression.
func TIFF() *Std {
	return &Std{
		name:         "tiff",
		exts:         []string{".tif", ".tiff"},
		decode:       tiff.Decode,
		decodeConfig: tiff.DecodeConfig,
		encode: func(w io.Writer, img image.Image, _ SaveOptions) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		},
	}
}

// BMP returns the BMP codec.
func BMP() *Std {
	return &Std{
		name:         "bmp",
		exts:         []string{".bmp"},
		decode:       bmp.Decode,
		decodeConfig: bmp.DecodeConfig,
		encode: func(w io.Writer, img image.Image, _ SaveOptions) error {
			return bmp.Encode(w, img)
		},
	}
}

// WebP returns the read-only WebP codec.
func WebP() *Std {
	return &Std{
		name:         "webp",
		exts:         []string{".webp"},
		decode:       webp.Decode,
		decodeConfig: webp.DecodeConfig,
	}
}

func (c *Std) Name() string         { return c.name }
func (c *Std) Extensions() []string { return c.exts }

// Info implements Codec. The pixel is the one Load would return.
func (c *Std) Info(r io.Reader) (imgdata.Info, error) {
	cfg, err := c.decodeConfig(r)
	if err != nil {
		return imgdata.Info{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	size := vmath.V2i{X: cfg.Width, Y: cfg.Height}
	return imgdata.NewInfo(size, modelPixel(cfg.ColorModel)), nil
}

// modelPixel mirrors the pixel choice of imgdata.FromImage.
func modelPixel(m color.Model) pixel.Pixel {
	switch m {
	case color.GrayModel:
		return pixel.LU8
	case color.Gray16Model:
		return pixel.LU16
	case color.YCbCrModel, color.CMYKModel:
		return pixel.RGBU8
	case color.NRGBAModel, color.RGBAModel:
		return pixel.RGBAU8
	}
	if _, ok := m.(color.Palette); ok {
		return pixel.RGBAU8
	}
	return pixel.RGBAU16
}

// Load implements Codec.
func (c *Std) Load(r io.Reader) (*imgdata.Data, error) {
	img, err := c.decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return imgdata.FromImage(img)
}

// Save implements Codec.
func (c *Std) Save(w io.Writer, d *imgdata.Data, opts SaveOptions) error {
	if c.encode == nil {
		return fmt.Errorf("%w: %s", ErrReadOnly, c.name)
	}
	img, err := imgdata.ToImage(d)
	if err != nil {
		return err
	}
	return c.encode(w, img, opts)
}
