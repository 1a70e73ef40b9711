package object

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the little-endian frame magic number 0xFD2FB528. An
// uncompressed envelope always starts with an object type name, so the two
// encodings never collide.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var (
	zstdEncoderOnce sync.Once
	zstdEncoder     *zstd.Encoder
	zstdEncoderErr  error

	zstdDecoderOnce sync.Once
	zstdDecoder     *zstd.Decoder
	zstdDecoderErr  error
)

func sharedEncoder() (*zstd.Encoder, error) {
	zstdEncoderOnce.Do(func() {
		zstdEncoder, zstdEncoderErr = zstd.NewWriter(nil)
	})
	return zstdEncoder, zstdEncoderErr
}

func sharedDecoder() (*zstd.Decoder, error) {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, zstdDecoderErr = zstd.NewReader(nil)
	})
	return zstdDecoder, zstdDecoderErr
}

// compressZstd compresses data using zstd. EncodeAll is safe for concurrent
// use, so a single encoder is shared.
func compressZstd(data []byte) ([]byte, error) {
	enc, err := sharedEncoder()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(data, nil), nil
}

// decompressZstd decompresses zstd-compressed data.
func decompressZstd(data []byte) ([]byte, error) {
	dec, err := sharedDecoder()
	if err != nil {
		return nil, err
	}
	return dec.DecodeAll(data, nil)
}

func isZstdFrame(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}
