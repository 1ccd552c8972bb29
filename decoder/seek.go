package decoder

import (
	"bytes"

	"github.com/dvstate/cbor/errs"
)

// locateMapEntryByLabel scans the bounded map most recently entered with
// EnterMap for the first entry whose label satisfies match, the same
// whole-map scan FindByLabels uses, but stopping at the first hit and
// without the duplicate-label bookkeeping a bulk query needs. It never
// leaves the cursor moved: on both a match and a miss, the Decoder is
// restored to its entry state, and the caller repositions explicitly.
// remainingAfter is the frame's remaining-pair count a caller must adopt to
// keep sequential traversal consistent once it resumes past the match
// (only meaningful for a definite-length map; see seekToLabel).
func (d *Decoder) locateMapEntryByLabel(match func(Label) bool) (valueOffset int, label Label, remainingAfter int, found bool, err error) {
	top := d.nest.top()
	if top.kind != frameContainer || !top.bounded || top.ckind != containerMap {
		return 0, Label{}, 0, false, errs.ErrExitMismatch
	}

	saved := *d
	defer func() { *d = saved }()

	d.cursor = top.startOffset
	remaining := top.total
	indefinite := top.total == CountIndefinite

	for {
		if indefinite {
			if d.cursor >= d.bufEnd {
				return 0, Label{}, 0, false, errs.ErrHitEnd
			}
			if d.data[d.cursor] == 0xFF {
				break
			}
		} else if remaining <= 0 {
			break
		}

		labelItem, err := d.decodeOneItem()
		if err != nil {
			return 0, Label{}, 0, false, err
		}

		lbl, err := d.classifyLabel(labelItem)
		if err != nil {
			return 0, Label{}, 0, false, err
		}

		valueStart := d.cursor

		if match(lbl) {
			return valueStart, lbl, remaining, true, nil
		}

		if _, err := d.skipValue(); err != nil {
			return 0, Label{}, 0, false, err
		}

		if !indefinite {
			remaining--
		}
	}

	return 0, Label{}, 0, false, nil
}

// SeekToLabelInt positions the cursor at the value paired with the first
// int64-labeled entry matching key in the bounded map most recently entered
// with EnterMap, leaving the map's own nesting frame otherwise untouched.
// ErrLabelNotFound is recoverable: the cursor is left at its prior position
// so the caller may retry with a different key after GetAndResetError.
func (d *Decoder) SeekToLabelInt(key int64) error {
	return d.seekToLabel(func(l Label) bool {
		return l.Type == LabelInt64 && l.Int64 == key
	})
}

// SeekToLabelStr is SeekToLabelInt's counterpart for a byte/text-string
// label compared by exact byte content.
func (d *Decoder) SeekToLabelStr(key []byte) error {
	return d.seekToLabel(func(l Label) bool {
		return (l.Type == LabelByteString || l.Type == LabelTextString) && bytes.Equal(l.Bytes, key)
	})
}

// seekToLabel positions the cursor at the matched entry's value and leaves
// the frame mid-pair there (frame.pendingValueOnly), so the following
// GetNext/EnterArray/EnterMap decodes that value directly instead of
// routing back through decodeMapEntry's fresh label/value dispatch.
func (d *Decoder) seekToLabel(match func(Label) bool) error {
	if d.err != nil {
		return d.err
	}

	offset, label, remainingAfter, found, err := d.locateMapEntryByLabel(match)
	if err != nil {
		return d.fail(err)
	}
	if !found {
		return d.fail(errs.ErrLabelNotFound)
	}

	top := d.nest.top()
	d.cursor = offset
	if top.total != CountIndefinite {
		top.remaining = remainingAfter
	}
	top.pendingValueOnly = true
	top.pendingLabel = label

	return nil
}

// EnterMapFromMapByLabelInt seeks to the int64-labeled entry key within the
// bounded map most recently entered with EnterMap, then enters it as a new
// bounded map, so FindByLabels/GetNext calls that follow see only the
// nested map's own entries.
func (d *Decoder) EnterMapFromMapByLabelInt(key int64) error {
	if err := d.SeekToLabelInt(key); err != nil {
		return err
	}

	return d.EnterMap()
}

// EnterMapFromMapByLabelStr is EnterMapFromMapByLabelInt's counterpart for
// a byte/text-string label.
func (d *Decoder) EnterMapFromMapByLabelStr(key []byte) error {
	if err := d.SeekToLabelStr(key); err != nil {
		return err
	}

	return d.EnterMap()
}

// EnterArrayFromMapByLabelInt is EnterMapFromMapByLabelInt's counterpart
// for an array-valued entry.
func (d *Decoder) EnterArrayFromMapByLabelInt(key int64) error {
	if err := d.SeekToLabelInt(key); err != nil {
		return err
	}

	return d.EnterArray()
}

// EnterArrayFromMapByLabelStr is EnterArrayFromMapByLabelInt's counterpart
// for a byte/text-string label.
func (d *Decoder) EnterArrayFromMapByLabelStr(key []byte) error {
	if err := d.SeekToLabelStr(key); err != nil {
		return err
	}

	return d.EnterArray()
}
