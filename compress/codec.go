package compress

import (
	"fmt"
	"strings"
)

// Compressor compresses a byte slice, returning a newly allocated result.
// The input slice is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice produced by the matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor for one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionType identifies one of the corpus codecs cborinspect
// recognizes by file extension (spec §B.3/B.4).
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionZstd
	CompressionLZ4
	CompressionS2
)

func (t CompressionType) String() string {
	switch t {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	case CompressionS2:
		return "S2"
	default:
		return "Unknown"
	}
}

var builtinCodecs = map[CompressionType]Codec{
	CompressionNone: NewNoOpCompressor(),
	CompressionZstd: NewZstdCompressor(),
	CompressionLZ4:  NewLZ4Compressor(),
	CompressionS2:   NewS2Compressor(),
}

// GetCodec retrieves a built-in Codec for the given compression type.
func GetCodec(t CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}

// DetectByExtension maps a corpus file name's trailing extension to the
// codec cborinspect should use to decompress it before handing the result to
// the decoder, e.g. "vectors.cbor.zst" -> CompressionZstd. An unrecognized
// extension (including a plain ".cbor") maps to CompressionNone.
func DetectByExtension(name string) CompressionType {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	case strings.HasSuffix(name, ".s2"):
		return CompressionS2
	default:
		return CompressionNone
	}
}
