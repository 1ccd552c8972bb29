package cbor

import (
	"github.com/dvstate/cbor/decoder"
)

// Decode decodes exactly one top-level CBOR data item from data under mode,
// returning an error if any bytes remain after it. For an array or map the
// returned Item is the container's head (Type, Count); its children are
// decoded and discarded.
//
// This is the convenient entry point for the common "decode a single
// message" case; a caller that needs PeekNext, bounded Enter/Exit
// traversal, or FindByLabels map search should construct a *decoder.Decoder
// directly via decoder.New.
func Decode(data []byte, mode decoder.Mode, opts ...decoder.Option) (decoder.Item, error) {
	d, err := decoder.New(data, mode, opts...)
	if err != nil {
		return decoder.Item{}, err
	}

	item, err := d.GetNext()
	if err != nil {
		return decoder.Item{}, err
	}

	for next := item; next.NextNestLevel > 0; {
		if next, err = d.GetNext(); err != nil {
			return decoder.Item{}, err
		}
	}

	if err := d.Finish(); err != nil {
		return decoder.Item{}, err
	}

	return item, nil
}

// DecodeSequence decodes every top-level item in a CBOR sequence (RFC 8742):
// zero or more concatenated CBOR data items with no enclosing array.
func DecodeSequence(data []byte, mode decoder.Mode, opts ...decoder.Option) ([]decoder.Item, error) {
	d, err := decoder.New(data, mode, opts...)
	if err != nil {
		return nil, err
	}

	var items []decoder.Item
	for d.Tell() < len(data) {
		item, err := d.GetNext()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// NewDecoder is a thin rename-free pass-through to decoder.New, kept at the
// top level so the common import is just "github.com/dvstate/cbor" for
// callers who otherwise only need decoder.Mode/decoder.Option from the
// decoder subpackage.
func NewDecoder(data []byte, mode decoder.Mode, opts ...decoder.Option) (*decoder.Decoder, error) {
	return decoder.New(data, mode, opts...)
}
