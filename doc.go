// Package cbor provides a strict, allocation-conscious RFC 8949 CBOR
// decoder built around a six-layer pull-based traversal (decoder.Decoder):
// pre-order GetNext/PeekNext calls over a nesting stack, a map-search
// subsystem for bounded maps, a numeric-conversion façade covering bignums
// and decimal-fraction/bigfloat tags, and a set of conformance profiles
// (Preferred, CDE, dCBOR, map-as-array, v1-compat).
//
// # Basic usage
//
//	d, err := decoder.New(data, decoder.ModeV1Compat)
//	if err != nil {
//	    return err
//	}
//	item, err := d.GetNext()
//	if err != nil {
//	    return err
//	}
//	if err := d.Finish(); err != nil {
//	    return err
//	}
//
// This package provides convenience wrappers (Decode, DecodeSequence,
// NewDecoder) around the
// decoder package's richer API for the common single-item case; for bounded
// traversal, map search, or custom tag decoders, use the decoder package
// directly.
package cbor
