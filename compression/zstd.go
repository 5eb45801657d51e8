package compression

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Encoders and the decoder are safe for concurrent EncodeAll/DecodeAll
// calls and are created on first use.
var (
	zstdEncoders    [3]*zstd.Encoder
	zstdEncoderOnce [3]sync.Once

	zstdDecoder     *zstd.Decoder
	zstdDecoderOnce sync.Once
)

func zstdLevel(l Level) zstd.EncoderLevel {
	switch l {
	case LevelFastest:
		return zstd.SpeedFastest
	case LevelBest:
		return zstd.SpeedBestCompression
	}
	return zstd.SpeedDefault
}

func zstdEncoder(l Level) *zstd.Encoder {
	if l < LevelDefault || l > LevelBest {
		l = LevelDefault
	}
	zstdEncoderOnce[l].Do(func() {
		// Only invalid options make NewWriter fail.
		zstdEncoders[l], _ = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstdLevel(l)),
			zstd.WithEncoderConcurrency(1),
			zstd.WithZeroFrames(true))
	})
	return zstdEncoders[l]
}

func zstdCompress(src []byte, level Level) []byte {
	return zstdEncoder(level).EncodeAll(src, nil)
}

func zstdDecompress(src []byte, size int) ([]byte, error) {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	})
	if zstdDecoder == nil {
		return nil, ErrCorrupt
	}
	dst, err := zstdDecoder.DecodeAll(src, make([]byte, 0, size))
	if err != nil || len(dst) != size {
		return nil, ErrCorrupt
	}
	return dst, nil
}
