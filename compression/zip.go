package compression

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// Pool for zlib writers at the default level. Each pooled item contains
// both the writer and its destination buffer.
type zlibWriterPoolItem struct {
	writer *zlib.Writer
	buf    *bytes.Buffer
}

var zlibWriterPool = sync.Pool{
	New: func() any {
		buf := new(bytes.Buffer)
		w, _ := zlib.NewWriterLevel(buf, zlib.DefaultCompression)
		return &zlibWriterPoolItem{writer: w, buf: buf}
	},
}

func zlibLevel(l Level) int {
	switch l {
	case LevelFastest:
		return zlib.BestSpeed
	case LevelBest:
		return zlib.BestCompression
	}
	return zlib.DefaultCompression
}

func zipCompress(src []byte, level Level) ([]byte, error) {
	if level == LevelDefault {
		item := zlibWriterPool.Get().(*zlibWriterPoolItem)
		defer zlibWriterPool.Put(item)
		item.buf.Reset()
		item.writer.Reset(item.buf)
		if _, err := item.writer.Write(src); err != nil {
			return nil, err
		}
		if err := item.writer.Close(); err != nil {
			return nil, err
		}
		return bytes.Clone(item.buf.Bytes()), nil
	}

	buf := new(bytes.Buffer)
	w, err := zlib.NewWriterLevel(buf, zlibLevel(level))
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// zlibReaderPoolItem wraps a zlib reader for pooling.
type zlibReaderPoolItem struct {
	reader io.ReadCloser
	src    *bytes.Reader
}

var zlibReaderPool = sync.Pool{
	New: func() any {
		return &zlibReaderPoolItem{src: bytes.NewReader(nil)}
	},
}

func zipDecompress(src []byte, size int) ([]byte, error) {
	item := zlibReaderPool.Get().(*zlibReaderPoolItem)
	defer zlibReaderPool.Put(item)
	item.src.Reset(src)

	var err error
	if r, ok := item.reader.(zlib.Resetter); ok {
		err = r.Reset(item.src, nil)
	} else {
		item.reader, err = zlib.NewReader(item.src)
	}
	if err != nil {
		item.reader = nil
		return nil, ErrCorrupt
	}

	dst := make([]byte, size)
	if _, err := io.ReadFull(item.reader, dst); err != nil {
		return nil, ErrCorrupt
	}
	// Trailing data means size was wrong.
	var one [1]byte
	if n, _ := item.reader.Read(one[:]); n != 0 {
		return nil, ErrCorrupt
	}
	return dst, nil
}
