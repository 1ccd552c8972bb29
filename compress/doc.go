// Package compress provides the corpus decompression codecs cborinspect uses
// to transparently read compressed CBOR test-vector files.
//
// CBOR fuzz corpora and conformance test vectors are commonly distributed
// zstd- or lz4-compressed; this package lets the CLI treat a ".cbor.zst" or
// ".cbor.lz4" file the same as a plain ".cbor" one.
//
//	codec, err := compress.GetCodec(compress.DetectByExtension(path))
//	raw, err := codec.Decompress(fileBytes)
//
// Four codecs are registered: CompressionNone (identity), CompressionZstd,
// CompressionLZ4, and CompressionS2. The zstd backend is selected at build
// time: zstd_pure.go (default, klauspost/compress/zstd) or zstd_cgo.go
// (valyala/gozstd, behind the "nobuild" build tag).
package compress
