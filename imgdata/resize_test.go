package imgdata

import (
	"errors"
	"testing"

	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/vmath"
)

func solid(t *testing.T, w, h int, p pixel.Pixel, c ...float32) *Data {
	t.Helper()
	d := mustNew(t, NewInfo(vmath.V2i{X: w, Y: h}, p))
	v := pixel.NewColor(p, c...).Value()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.SetPixel(x, y, v)
		}
	}
	return d
}

func TestResize(t *testing.T) {
	d := solid(t, 4, 4, pixel.RGBAU8, 0, 1, 0, 1)
	d.info.FileName = "in.raw"

	out, err := Resize(d, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if out.W() != 2 || out.H() != 2 || out.Pixel() != pixel.RGBAU8 {
		t.Fatalf("Resize = %v", out)
	}
	if got := out.PixelAt(1, 1); got != pixel.U8Value(0, 255, 0, 255) {
		t.Errorf("pixel = %v", got.U8)
	}
	if out.Info().FileName != "in.raw" {
		t.Errorf("FileName = %q", out.Info().FileName)
	}

	out, err = Resize(d, 8, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.W() != 8 || out.H() != 8 {
		t.Errorf("aspect resize = %v", out)
	}

	if _, err := Resize(d, 0, 0); !errors.Is(err, ErrInvalidInfo) {
		t.Errorf("Resize(0, 0) error = %v", err)
	}
}

func TestResizeKeepsPixel(t *testing.T) {
	d := solid(t, 4, 2, pixel.LF32, 1)
	out, err := Resize(d, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out.Pixel() != pixel.LF32 || out.PixelAt(0, 0).F32[0] != 1 {
		t.Errorf("Resize(L F32) = %v %v", out, out.PixelAt(0, 0).F32[0])
	}
}

func TestFit(t *testing.T) {
	d := solid(t, 8, 4, pixel.RGBU8, 1, 1, 1)
	out, err := Fit(d, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if out.W() != 4 || out.H() != 2 || out.Pixel() != pixel.RGBU8 {
		t.Errorf("Fit = %v", out)
	}
	if _, err := Fit(d, 0, 4); !errors.Is(err, ErrInvalidInfo) {
		t.Errorf("Fit(0, 4) error = %v", err)
	}
}
