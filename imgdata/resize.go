package imgdata

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Resize returns d scaled to w by h with a Lanczos filter. If one of w or h
// is 0 the aspect ratio is kept. The result has d's pixel; filtering runs
// at 8 bits per channel.
func Resize(d *Data, w, h int) (*Data, error) {
	if w < 0 || h < 0 || (w == 0 && h == 0) {
		return nil, fmt.Errorf("%w: resize to %dx%d", ErrInvalidInfo, w, h)
	}
	return filter(d, func(img image.Image) *image.NRGBA {
		return imaging.Resize(img, w, h, imaging.Lanczos)
	})
}

// Fit returns d scaled down to fit within w by h, keeping the aspect ratio.
// Images that already fit are returned as a copy.
func Fit(d *Data, w, h int) (*Data, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: fit to %dx%d", ErrInvalidInfo, w, h)
	}
	return filter(d, func(img image.Image) *image.NRGBA {
		return imaging.Fit(img, w, h, imaging.Lanczos)
	})
}

func filter(d *Data, fn func(image.Image) *image.NRGBA) (*Data, error) {
	img, err := ToImage(d)
	if err != nil {
		return nil, err
	}
	scaled, err := FromImage(fn(img))
	if err != nil {
		return nil, err
	}
	out, err := Converted(scaled, d.Pixel())
	if err != nil {
		return nil, err
	}
	out.info.FileName = d.info.FileName
	out.info.LayerName = d.info.LayerName
	out.info.Tags = d.info.Tags.Clone()
	return out, nil
}
