package imageio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mrjoshuak/go-imageseq/compression"
	"github.com/mrjoshuak/go-imageseq/imgdata"
	"github.com/mrjoshuak/go-imageseq/internal/parallel"
	"github.com/mrjoshuak/go-imageseq/internal/xdr"
	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/vmath"
)

// Raw file layout, all integers little-endian:
//
//	magic     [4]byte "ISQR"
//	version   uint16
//	width     uint32
//	height    uint32
//	pixel     uint8
//	flags     uint8   bit 0 BGR, bit 1 mirror X, bit 2 mirror Y
//	endian    uint8   byte order of samples, 1 little, 2 big
//	method    uint8   compression.Method
//	layer     null-terminated string
//	tags      uint32 count, then count key and value null-terminated
//	          strings (version 2 and later)
//	blockRows uint32
//
// followed by ceil(height/blockRows) blocks, each a uint32 length and the
// compressed bytes of blockRows unpadded rows.
const (
	rawMagic     = "ISQR"
	rawVersion   = 2
	rawBlockRows = 16

	// rawMaxSize bounds each dimension read from a header.
	rawMaxSize = 1 << 20
	// rawMaxBytes bounds the unpadded image a header may describe.
	rawMaxBytes = 1 << 30
	rawMaxTags  = 1 << 12
)

const (
	rawFlagBGR = 1 << iota
	rawFlagMirrorX
	rawFlagMirrorY
)

// Raw is the module's own container. It stores any pixel losslessly,
// along with the byte order, BGR and mirror flags of the buffer.
type Raw struct {
	// Workers bounds the goroutines compressing blocks; zero uses
	// GOMAXPROCS.
	Workers int
}

func (Raw) Name() string         { return "raw" }
func (Raw) Extensions() []string { return []string{".raw"} }

func (c Raw) pool() parallel.Config {
	return parallel.Config{Workers: c.Workers, Grain: 1}
}

type rawHeader struct {
	info      imgdata.Info
	method    compression.Method
	blockRows int
}

func readRawHeader(sr *xdr.StreamReader) (rawHeader, error) {
	var h rawHeader
	magic, err := sr.ReadBytes(len(rawMagic))
	if err != nil {
		return h, err
	}
	if string(magic) != rawMagic {
		return h, fmt.Errorf("%w: bad magic %q", ErrCorrupt, magic)
	}
	version, err := sr.ReadUint16()
	if err != nil {
		return h, err
	}
	if version == 0 || version > rawVersion {
		return h, fmt.Errorf("%w: version %d", ErrCorrupt, version)
	}

	w, err := sr.ReadUint32()
	if err != nil {
		return h, err
	}
	ht, err := sr.ReadUint32()
	if err != nil {
		return h, err
	}
	if w > rawMaxSize || ht > rawMaxSize {
		return h, fmt.Errorf("%w: size %dx%d", ErrCorrupt, w, ht)
	}

	var fields [4]byte
	for i := range fields {
		if fields[i], err = sr.ReadByte(); err != nil {
			return h, err
		}
	}
	p, flags, endian, method := pixel.Pixel(fields[0]), fields[1], imgdata.Endian(fields[2]), compression.Method(fields[3])
	if !p.Valid() {
		return h, fmt.Errorf("%w: pixel %d", ErrCorrupt, fields[0])
	}
	if endian != imgdata.EndianLittle && endian != imgdata.EndianBig {
		return h, fmt.Errorf("%w: byte order %d", ErrCorrupt, fields[2])
	}
	if n := int64(w) * int64(ht) * int64(p.Bytes()); n > rawMaxBytes {
		return h, fmt.Errorf("%w: %dx%d %v needs %d bytes", ErrCorrupt, w, ht, p, n)
	}
	if method > compression.ZSTD {
		return h, fmt.Errorf("%w: compression %d", ErrCorrupt, fields[3])
	}

	layer, err := sr.ReadString()
	if err != nil {
		return h, err
	}
	var tags imgdata.Tags
	if version >= 2 {
		if tags, err = readRawTags(sr); err != nil {
			return h, err
		}
	}
	blockRows, err := sr.ReadUint32()
	if err != nil {
		return h, err
	}
	if blockRows == 0 || blockRows > rawMaxSize {
		return h, fmt.Errorf("%w: block rows %d", ErrCorrupt, blockRows)
	}

	h.info = imgdata.NewInfo(vmath.V2i{X: int(w), Y: int(ht)}, p)
	h.info.LayerName = layer
	h.info.Tags = tags
	h.info.BGR = flags&rawFlagBGR != 0
	h.info.Mirror = vmath.V2b{X: flags&rawFlagMirrorX != 0, Y: flags&rawFlagMirrorY != 0}
	h.info.Endian = endian
	h.method = method
	h.blockRows = int(blockRows)
	return h, nil
}

func writeRawHeader(bw *xdr.BufferWriter, h rawHeader) {
	bw.WriteBytes([]byte(rawMagic))
	bw.WriteUint16(rawVersion)
	bw.WriteUint32(uint32(h.info.Size.X))
	bw.WriteUint32(uint32(h.info.Size.Y))
	bw.WriteByte(byte(h.info.Pixel))

	var flags byte
	if h.info.BGR {
		flags |= rawFlagBGR
	}
	if h.info.Mirror.X {
		flags |= rawFlagMirrorX
	}
	if h.info.Mirror.Y {
		flags |= rawFlagMirrorY
	}
	bw.WriteByte(flags)
	bw.WriteByte(byte(h.info.Endian.Resolve()))
	bw.WriteByte(byte(h.method))
	bw.WriteString(h.info.LayerName)
	bw.WriteUint32(uint32(len(h.info.Tags)))
	for _, tag := range h.info.Tags {
		bw.WriteString(tag.Key)
		bw.WriteString(tag.Value)
	}
	bw.WriteUint32(uint32(h.blockRows))
}

func readRawTags(sr *xdr.StreamReader) (imgdata.Tags, error) {
	n, err := sr.ReadUint32()
	if err != nil {
		return nil, err
	}
	if n > rawMaxTags {
		return nil, fmt.Errorf("%w: %d tags", ErrCorrupt, n)
	}
	var tags imgdata.Tags
	for i := uint32(0); i < n; i++ {
		key, err := sr.ReadString()
		if err != nil {
			return nil, err
		}
		value, err := sr.ReadString()
		if err != nil {
			return nil, err
		}
		tags.Set(key, value)
	}
	return tags, nil
}

// sampleStride is the byte width the compressors group samples by.
func sampleStride(p pixel.Pixel) int {
	if p == pixel.RGBU10 {
		return 4
	}
	return p.ChannelBytes()
}

// Info implements Codec.
func (Raw) Info(r io.Reader) (imgdata.Info, error) {
	h, err := readRawHeader(xdr.NewStreamReader(r))
	if err != nil {
		return imgdata.Info{}, rawErr(err)
	}
	return h.info, nil
}

// Load implements Codec. The buffer keeps the byte order, BGR and mirror
// flags stored in the file.
func (c Raw) Load(r io.Reader) (*imgdata.Data, error) {
	sr := xdr.NewStreamReader(r)
	h, err := readRawHeader(sr)
	if err != nil {
		return nil, rawErr(err)
	}
	d, err := imgdata.New(h.info)
	if err != nil {
		return nil, err
	}

	rowBytes := d.W() * d.BytesPixel()
	blocks := (d.H() + h.blockRows - 1) / h.blockRows
	packed := make([][]byte, blocks)
	for i := range packed {
		n, err := sr.ReadUint32()
		if err != nil {
			return nil, rawErr(err)
		}
		// Compressed blocks never exceed a few bytes per input byte.
		if int64(n) > 4*int64(h.blockRows*rowBytes)+64 {
			return nil, fmt.Errorf("%w: block %d length %d", ErrCorrupt, i, n)
		}
		if packed[i], err = sr.ReadBytes(int(n)); err != nil {
			return nil, rawErr(err)
		}
	}

	stride := sampleStride(d.Pixel())
	err = parallel.ForErr(context.Background(), c.pool(), blocks, func(_ context.Context, i int) error {
		y0 := i * h.blockRows
		y1 := min(y0+h.blockRows, d.H())
		block, err := compression.Decompress(h.method, packed[i], (y1-y0)*rowBytes, stride)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		copy(d.Bytes()[y0*rowBytes:], block)
		return nil
	})
	if err != nil {
		return nil, rawErr(err)
	}
	return d, nil
}

// Save implements Codec using opts.Compression and opts.Level.
func (c Raw) Save(w io.Writer, d *imgdata.Data, opts SaveOptions) error {
	h := rawHeader{info: d.Info(), method: opts.Compression, blockRows: rawBlockRows}
	if h.method > compression.ZSTD {
		return fmt.Errorf("%w: %d", compression.ErrUnknownMethod, uint8(h.method))
	}

	blocks := (d.H() + h.blockRows - 1) / h.blockRows
	stride := sampleStride(d.Pixel())
	packed, err := parallel.Map(context.Background(), c.pool(), blocks, func(i int) ([]byte, error) {
		y0 := i * h.blockRows
		y1 := min(y0+h.blockRows, d.H())
		var block []byte
		for y := y0; y < y1; y++ {
			block = append(block, d.Row(y)...)
		}
		return compression.CompressLevel(h.method, block, stride, opts.Level)
	})
	if err != nil {
		return err
	}

	bw := xdr.NewBufferWriter(64)
	writeRawHeader(bw, h)
	if _, err := w.Write(bw.Bytes()); err != nil {
		return err
	}
	for _, b := range packed {
		bw.Reset()
		bw.WriteUint32(uint32(len(b)))
		if _, err := w.Write(bw.Bytes()); err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// rawErr maps truncated input and codec failures to ErrCorrupt.
func rawErr(err error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: truncated", ErrCorrupt)
	case errors.Is(err, compression.ErrCorrupt), errors.Is(err, xdr.ErrStringTooLong):
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return err
}
