package imageio

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mrjoshuak/go-jpeg2000"

	"github.com/mrjoshuak/go-imageseq/imgdata"
	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/vmath"
)

// JPEG2000 reads and writes JPEG 2000 files. Proxy loads decode fewer
// wavelet resolution levels instead of decimating the full image.
type JPEG2000 struct {
	name   string
	exts   []string
	format jpeg2000.Format
}

// NewJP2 returns the codec for JP2 files.
func NewJP2() *JPEG2000 {
	return &JPEG2000{name: "jp2", exts: []string{".jp2"}, format: jpeg2000.FormatJP2}
}

// NewJ2K returns the codec for raw JPEG 2000 codestreams.
func NewJ2K() *JPEG2000 {
	return &JPEG2000{name: "j2k", exts: []string{".j2k", ".j2c"}, format: jpeg2000.FormatJ2K}
}

func (c *JPEG2000) Name() string         { return c.name }
func (c *JPEG2000) Extensions() []string { return c.exts }

// Info implements Codec.
func (c *JPEG2000) Info(r io.Reader) (imgdata.Info, error) {
	m, err := jpeg2000.DecodeMetadata(r)
	if err != nil {
		return imgdata.Info{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	bits := 8
	for _, b := range m.BitsPerComponent {
		if b > 8 {
			bits = 16
		}
	}
	p, ok := pixel.FromInfo(m.NumComponents, bits, false)
	if !ok {
		return imgdata.Info{}, fmt.Errorf("%w: %d components", ErrUnsupportedPixel, m.NumComponents)
	}
	info := imgdata.NewInfo(vmath.V2i{X: m.Width, Y: m.Height}, p)
	info.Tags = jpeg2000Tags(m)
	return info, nil
}

// jpeg2000Tags maps the codestream metadata to tags. The comment marker
// becomes the description.
func jpeg2000Tags(m *jpeg2000.Metadata) imgdata.Tags {
	var tags imgdata.Tags
	if m.Comment != "" {
		tags.Set(imgdata.TagDescription, m.Comment)
	}
	if m.NumResolutions > 0 {
		tags.Set("JPEG 2000 Resolutions", strconv.Itoa(m.NumResolutions))
	}
	if m.NumQualityLayers > 0 {
		tags.Set("JPEG 2000 Quality Layers", strconv.Itoa(m.NumQualityLayers))
	}
	if m.NumTilesX*m.NumTilesY > 1 {
		tags.Set("JPEG 2000 Tiles", fmt.Sprintf("%dx%d of %dx%d", m.NumTilesX, m.NumTilesY, m.TileWidth, m.TileHeight))
	}
	return tags
}

// Load implements Codec.
func (c *JPEG2000) Load(r io.Reader) (*imgdata.Data, error) {
	return c.LoadProxy(r, imgdata.ProxyNone)
}

// LoadProxy implements ProxyLoader.
func (c *JPEG2000) LoadProxy(r io.Reader, proxy imgdata.Proxy) (*imgdata.Data, error) {
	img, err := jpeg2000.DecodeConfig(r, &jpeg2000.Config{ReduceResolution: int(proxy)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	d, err := imgdata.FromImage(img)
	if err != nil {
		return nil, err
	}
	info := d.Info()
	info.Proxy = proxy
	if err := d.Set(info); err != nil {
		return nil, err
	}
	return d, nil
}

// Save implements Codec. A zero opts.Quality encodes losslessly.
func (c *JPEG2000) Save(w io.Writer, d *imgdata.Data, opts SaveOptions) error {
	img, err := imgdata.ToImage(d)
	if err != nil {
		return err
	}
	o := jpeg2000.DefaultOptions()
	o.Format = c.format
	if desc, ok := d.Info().Tags.Get(imgdata.TagDescription); ok {
		o.Comment = desc
	}
	if opts.Quality > 0 {
		o.Quality = min(opts.Quality, 100)
	} else {
		o.Lossless = true
	}
	return jpeg2000.Encode(w, img, o)
}
