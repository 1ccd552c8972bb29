package decoder

import (
	"errors"

	"github.com/dvstate/cbor/errs"
)

// ContentDecoder transforms an item's content in place for a specific tag
// number, given the item exactly as decoded by L2-L6 (tag numbers still
// attached) and the Decoder it came from (needed by decoders whose content
// is itself nested CBOR items, e.g. tag 4/5's [exponent, mantissa] array).
// A successful decoder returns nil having set item.Type (and whichever
// payload fields that type uses) to the tag's interpreted form;
// dispatchTagContent then removes the tag number that triggered it. A
// decoder that wants to leave the tag attached (e.g. it recognizes the tag
// but declines to interpret this particular content shape) returns
// errs.ErrUnrecoverableTagContent.
type ContentDecoder func(d *Decoder, item *Item) error

type tagDecoderEntry struct {
	tagNumber uint64
	decode    ContentDecoder
}

// TagDecoderTable is a registry of tag-content decoders, consulted
// innermost-tag-first against each decoded item (spec §4.10). The zero
// value is an empty table.
type TagDecoderTable struct {
	entries []tagDecoderEntry
}

// NewTagDecoderTable returns an empty table.
func NewTagDecoderTable() *TagDecoderTable {
	return &TagDecoderTable{}
}

// Register installs (or replaces) the decoder for tagNumber.
func (t *TagDecoderTable) Register(tagNumber uint64, fn ContentDecoder) {
	for i := range t.entries {
		if t.entries[i].tagNumber == tagNumber {
			t.entries[i].decode = fn
			return
		}
	}

	t.entries = append(t.entries, tagDecoderEntry{tagNumber: tagNumber, decode: fn})
}

// Unregister removes tagNumber's decoder, if any, so the tag is left
// attached on the item instead of being interpreted. Used by callers that
// start from DefaultTagDecoderTable but want specific tags surfaced raw.
func (t *TagDecoderTable) Unregister(tagNumber uint64) {
	for i := range t.entries {
		if t.entries[i].tagNumber == tagNumber {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

func (t *TagDecoderTable) lookup(tagNumber uint64) (ContentDecoder, bool) {
	if t == nil {
		return nil, false
	}

	for _, e := range t.entries {
		if e.tagNumber == tagNumber {
			return e.decode, true
		}
	}

	return nil, false
}

// dispatchTagContent is L1: it walks item's tag numbers from innermost
// (closest to the content) to outermost, invoking any registered decoder
// and removing the tag number on success. A tag number with no registered
// decoder, or whose decoder returns ErrUnrecoverableTagContent, is left
// attached for the caller to inspect via Decoder.TagAt.
func (d *Decoder) dispatchTagContent(item *Item) error {
	if d.tagDecoders == nil {
		return nil
	}

	for idx := item.tagCount - 1; idx >= 0; idx-- {
		raw, ok := d.TagAt(item, idx)
		if !ok {
			continue
		}

		fn, ok := d.tagDecoders.lookup(raw)
		if !ok {
			continue
		}

		err := fn(d, item)
		if err == nil {
			item.removeTagAt(idx)
			continue
		}

		if errors.Is(err, errs.ErrUnrecoverableTagContent) {
			continue
		}

		return err
	}

	return nil
}
