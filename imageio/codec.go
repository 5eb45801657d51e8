// Package imageio reads and writes image files through a registry of
// codecs selected by file extension.
//
//	r := imageio.Default()
//	d, err := r.Load(ctx, "plate.0001.raw", imageio.WithProxy(imgdata.Proxy2))
//	if err != nil {
//	    return err
//	}
//	err = r.Save(ctx, "plate.0001.png", d, imageio.SaveOptions{})
package imageio

import (
	"errors"
	"io"

	"github.com/mrjoshuak/go-imageseq/compression"
	"github.com/mrjoshuak/go-imageseq/imgdata"
)

var (
	// ErrUnknownFormat is returned when no codec handles a file name.
	ErrUnknownFormat = errors.New("imageio: unknown format")

	// ErrUnsupportedPixel is returned when a codec cannot store a pixel.
	ErrUnsupportedPixel = errors.New("imageio: unsupported pixel")

	// ErrCorrupt is returned for malformed files.
	ErrCorrupt = errors.New("imageio: corrupt file")

	// ErrReadOnly is returned when saving to a format that can only be
	// read.
	ErrReadOnly = errors.New("imageio: format is read only")
)

// Codec reads and writes one family of file formats.
type Codec interface {
	// Name identifies the codec in a Registry.
	Name() string

	// Extensions lists the lower-case file extensions handled, with the
	// leading dot.
	Extensions() []string

	// Info reads the image description without decoding pixels.
	Info(r io.Reader) (imgdata.Info, error)

	// Load decodes a whole image.
	Load(r io.Reader) (*imgdata.Data, error)

	// Save encodes d.
	Save(w io.Writer, d *imgdata.Data, opts SaveOptions) error
}

// ProxyLoader is implemented by codecs that can decode directly at a
// reduced resolution. Other codecs are loaded in full and decimated.
type ProxyLoader interface {
	LoadProxy(r io.Reader, proxy imgdata.Proxy) (*imgdata.Data, error)
}

// SaveOptions controls encoding. Fields a codec has no use for are ignored.
type SaveOptions struct {
	// Compression is the method used by the raw container.
	Compression compression.Method

	// Level is the compression level used by the raw container.
	Level compression.Level

	// Quality is the lossy quality from 1 to 100 for JPEG and JPEG 2000.
	// Zero selects the codec default; JPEG 2000 is then lossless.
	Quality int
}
