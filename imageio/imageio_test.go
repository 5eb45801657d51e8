package imageio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mrjoshuak/go-imageseq/compression"
	"github.com/mrjoshuak/go-imageseq/imgdata"
	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/vmath"
)

func newData(t *testing.T, info imgdata.Info) *imgdata.Data {
	t.Helper()
	d, err := imgdata.New(info)
	if err != nil {
		t.Fatal(err)
	}
	b := d.Bytes()
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return d
}

func TestRegistryLookup(t *testing.T) {
	r := Default()
	for _, name := range []string{"a.raw", "b.PNG", "c.jpeg", "d.tif", "e.j2c", "f.jp2", "g.webp"} {
		if _, err := r.ForFile(name); err != nil {
			t.Errorf("ForFile(%q): %v", name, err)
		}
	}
	if _, err := r.ForFile("a.exr"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ForFile(a.exr) error = %v", err)
	}
	if c, ok := r.Codec("j2k"); !ok || !slices.Contains(c.Extensions(), ".j2k") {
		t.Error("Codec(j2k) missing")
	}
	exts := r.Extensions()
	if !slices.IsSorted(exts) || !slices.Contains(exts, ".bmp") {
		t.Errorf("Extensions() = %v", exts)
	}

	want := []string{"raw", "jp2", "j2k", "png", "jpeg", "gif", "tiff", "bmp", "webp"}
	if names := r.Names(); !slices.Equal(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}

	empty := NewRegistry()
	if len(empty.Extensions()) != 0 {
		t.Error("NewRegistry() should be empty")
	}
}

type fakeCodec struct {
	Raw
	name string
	exts []string
}

func (c fakeCodec) Name() string         { return c.name }
func (c fakeCodec) Extensions() []string { return c.exts }

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry(WithCodec(fakeCodec{name: "a", exts: []string{".one", ".two"}}))
	r.Register(fakeCodec{name: "a", exts: []string{".two"}})
	if _, err := r.ForFile("x.one"); !errors.Is(err, ErrUnknownFormat) {
		t.Error("replaced codec kept its old extension")
	}
	r.Register(fakeCodec{name: "b", exts: []string{".TWO"}})
	c, err := r.ForFile("x.two")
	if err != nil || c.Name() != "b" {
		t.Errorf("ForFile(x.two) = %v, %v", c, err)
	}
	if names := r.Names(); !slices.Equal(names, []string{"a", "b"}) {
		t.Errorf("Names() = %v", names)
	}
}

func TestRawRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := Default()
	ctx := context.Background()
	for p := pixel.Pixel(0); p < pixel.Count; p++ {
		for m := compression.None; m <= compression.ZSTD; m++ {
			info := imgdata.NewInfo(vmath.V2i{X: 7, Y: 37}, p)
			info.LayerName = "beauty"
			d := newData(t, info)

			path := filepath.Join(dir, "img.raw")
			if err := r.Save(ctx, path, d, SaveOptions{Compression: m}); err != nil {
				t.Fatalf("%v %v: Save: %v", p, m, err)
			}
			got, err := r.Load(ctx, path)
			if err != nil {
				t.Fatalf("%v %v: Load: %v", p, m, err)
			}
			if !got.Equal(d) {
				t.Errorf("%v %v: round trip changed the image", p, m)
			}
			if got.Info().FileName != path || got.Info().LayerName != "beauty" {
				t.Errorf("%v %v: names = %q, %q", p, m, got.Info().FileName, got.Info().LayerName)
			}
		}
	}
}

func TestRawKeepsLayout(t *testing.T) {
	info := imgdata.NewInfo(vmath.V2i{X: 3, Y: 2}, pixel.RGBU16)
	info.BGR = true
	info.Mirror = vmath.V2b{Y: true}
	info.Endian = imgdata.EndianBig
	info.Tags.Set(imgdata.TagDescription, "plate")
	info.Tags.Set(imgdata.TagTimecode, "01:00:00:00")
	d := newData(t, info)

	var buf bytes.Buffer
	if err := (Raw{Workers: 2}).Save(&buf, d, SaveOptions{Compression: compression.ZIP, Level: compression.LevelBest}); err != nil {
		t.Fatal(err)
	}
	hdr, err := Raw{}.Info(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !hdr.Equal(info) || !hdr.Tags.Equal(info.Tags) {
		t.Errorf("Info() = %+v, want %+v", hdr, info)
	}
	got, err := Raw{}.Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(d) || !got.Info().Tags.Equal(info.Tags) {
		t.Error("layout, tags or bytes changed")
	}
}

func TestRawReadsVersion1(t *testing.T) {
	d := newData(t, imgdata.NewInfo(vmath.V2i{X: 5, Y: 3}, pixel.LU16))
	var buf bytes.Buffer
	if err := (Raw{}).Save(&buf, d, SaveOptions{}); err != nil {
		t.Fatal(err)
	}
	// Version 1 has no tag count after the "Default" layer name.
	v2 := buf.Bytes()
	v1 := append(bytes.Clone(v2[:26]), v2[30:]...)
	binary.LittleEndian.PutUint16(v1[4:], 1)

	got, err := Raw{}.Load(bytes.NewReader(v1))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(d) || len(got.Info().Tags) != 0 {
		t.Error("version 1 file did not load")
	}
}

func TestRawDropsRowPadding(t *testing.T) {
	info := imgdata.NewInfo(vmath.V2i{X: 3, Y: 3}, pixel.RGBU8)
	info.Align = 4
	d := newData(t, info)

	var buf bytes.Buffer
	if err := (Raw{}).Save(&buf, d, SaveOptions{Compression: compression.RLE}); err != nil {
		t.Fatal(err)
	}
	got, err := Raw{}.Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.BytesScanline() != 9 {
		t.Errorf("BytesScanline() = %d", got.BytesScanline())
	}
	for y := 0; y < 3; y++ {
		if !bytes.Equal(got.Row(y), d.Row(y)) {
			t.Errorf("row %d = %v, want %v", y, got.Row(y), d.Row(y))
		}
	}
}

func TestRawCorrupt(t *testing.T) {
	d := newData(t, imgdata.NewInfo(vmath.V2i{X: 16, Y: 20}, pixel.RGBAU8))
	var buf bytes.Buffer
	if err := (Raw{}).Save(&buf, d, SaveOptions{Compression: compression.ZSTD}); err != nil {
		t.Fatal(err)
	}
	good := buf.Bytes()

	badMagic := bytes.Clone(good)
	badMagic[0] = 'X'
	badPixel := bytes.Clone(good)
	badPixel[14] = 200
	flipped := bytes.Clone(good)
	flipped[len(flipped)-5] ^= 0xFF
	huge := bytes.Clone(good)
	binary.LittleEndian.PutUint32(huge[6:], rawMaxSize)
	binary.LittleEndian.PutUint32(huge[10:], rawMaxSize)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"magic", badMagic},
		{"pixel", badPixel},
		{"truncated header", good[:10]},
		{"truncated data", good[:len(good)-3]},
		{"damaged data", flipped},
		{"huge", huge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (Raw{}).Load(bytes.NewReader(tt.data)); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Load error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestLoadProxy(t *testing.T) {
	d, err := imgdata.New(imgdata.NewInfo(vmath.V2i{X: 4, Y: 4}, pixel.LU8))
	if err != nil {
		t.Fatal(err)
	}
	for i := range d.Bytes() {
		d.Bytes()[i] = byte(i)
	}
	path := filepath.Join(t.TempDir(), "ramp.raw")
	r := Default()
	ctx := context.Background()
	if err := r.Save(ctx, path, d, SaveOptions{}); err != nil {
		t.Fatal(err)
	}
	got, err := r.Load(ctx, path, WithProxy(imgdata.Proxy2))
	if err != nil {
		t.Fatal(err)
	}
	if got.Info().Proxy != imgdata.Proxy2 || !bytes.Equal(got.Bytes(), []byte{0, 2, 8, 10}) {
		t.Errorf("proxy load = %v %v", got.Info().Proxy, got.Bytes())
	}
}

func TestStdRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := Default()
	ctx := context.Background()
	tests := []struct {
		file  string
		pixel pixel.Pixel
	}{
		{"a.png", pixel.RGBAU8},
		{"b.png", pixel.LU16},
		{"c.png", pixel.RGBAU16},
		{"d.png", pixel.LU8},
		{"e.tif", pixel.RGBAU8},
		{"f.bmp", pixel.RGBU8},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			d := newData(t, imgdata.NewInfo(vmath.V2i{X: 5, Y: 3}, tt.pixel))
			if tt.pixel.HasAlpha() {
				// Keep samples exact through premultiplying decoders.
				for y := 0; y < d.H(); y++ {
					for x := 0; x < d.W(); x++ {
						v := d.PixelAt(x, y)
						v.Set(tt.pixel.Type(), 3, 1)
						d.SetPixel(x, y, v)
					}
				}
			}
			path := filepath.Join(dir, tt.file)
			if err := r.Save(ctx, path, d, SaveOptions{}); err != nil {
				t.Fatal(err)
			}
			got, err := r.Load(ctx, path)
			if err != nil {
				t.Fatal(err)
			}
			conv, err := imgdata.Converted(got, tt.pixel)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(conv.Bytes(), d.Bytes()) {
				t.Errorf("loaded %v, round trip changed the data", got.Pixel())
			}

			info, err := r.Info(ctx, path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size != d.Size() || info.Pixel != got.Pixel() {
				t.Errorf("Info() = %v %v, Load() = %v", info.Size, info.Pixel, got.Pixel())
			}
		})
	}
}

func TestLossyFormats(t *testing.T) {
	dir := t.TempDir()
	r := Default()
	ctx := context.Background()
	d := newData(t, imgdata.NewInfo(vmath.V2i{X: 9, Y: 4}, pixel.RGBF32))
	for _, name := range []string{"a.jpg", "b.gif"} {
		path := filepath.Join(dir, name)
		if err := r.Save(ctx, path, d, SaveOptions{Quality: 80}); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := r.Load(ctx, path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got.Size() != d.Size() {
			t.Errorf("%s: size %v", name, got.Size())
		}
	}
}

func TestJPEG2000Lossless(t *testing.T) {
	d, err := imgdata.New(imgdata.NewInfo(vmath.V2i{X: 16, Y: 8}, pixel.LU8))
	if err != nil {
		t.Fatal(err)
	}
	for i := range d.Bytes() {
		d.Bytes()[i] = byte(i * 2)
	}
	var buf bytes.Buffer
	if err := NewJ2K().Save(&buf, d, SaveOptions{}); err != nil {
		t.Fatal(err)
	}
	info, err := NewJ2K().Info(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != d.Size() || info.Pixel != pixel.LU8 {
		t.Errorf("Info() = %v %v", info.Size, info.Pixel)
	}
	got, err := NewJ2K().Load(&buf)
	if err != nil {
		t.Fatal(err)
	}
	conv, err := imgdata.Converted(got, pixel.LU8)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(conv.Bytes(), d.Bytes()) {
		t.Error("lossless round trip changed the data")
	}
}

func TestSaveErrors(t *testing.T) {
	dir := t.TempDir()
	r := Default()
	d := newData(t, imgdata.NewInfo(vmath.V2i{X: 2, Y: 2}, pixel.RGBU8))

	path := filepath.Join(dir, "a.webp")
	if err := r.Save(context.Background(), path, d, SaveOptions{}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Save(webp) error = %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("failed save left a file behind")
	}

	err := r.Save(context.Background(), filepath.Join(dir, "a.raw"), d, SaveOptions{Compression: 9})
	if !errors.Is(err, compression.ErrUnknownMethod) {
		t.Errorf("Save(method 9) error = %v", err)
	}
	if !IsUnsupported(fmt.Errorf("a.png: %w", ErrUnsupportedPixel)) || IsUnsupported(io.EOF) {
		t.Error("IsUnsupported")
	}
}

func TestContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := Default()
	if _, err := r.Load(ctx, "a.raw"); !errors.Is(err, context.Canceled) {
		t.Errorf("Load error = %v", err)
	}
	if _, err := r.Info(ctx, "a.raw"); !errors.Is(err, context.Canceled) {
		t.Errorf("Info error = %v", err)
	}
	d := newData(t, imgdata.NewInfo(vmath.V2i{X: 1, Y: 1}, pixel.LU8))
	if err := r.Save(ctx, filepath.Join(t.TempDir(), "a.raw"), d, SaveOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Save error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Default().Load(context.Background(), filepath.Join(t.TempDir(), "none.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v", err)
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	NewRegistry(WithCodec(Raw{}))
	if !strings.Contains(buf.String(), "register codec") {
		t.Errorf("log = %q", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	NewRegistry(WithCodec(Raw{}))
	if buf.Len() != 0 {
		t.Error("nil logger should be silent")
	}
}
