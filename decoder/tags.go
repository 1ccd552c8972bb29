package decoder

import "github.com/dvstate/cbor/errs"

// decodeOneItem is L4: it consumes zero or more leading tag-number heads,
// then decodes the tagged item itself (an atom, a string, or an array/map
// head) and attaches the collected tag numbers to it. It is the shared
// entry point decoder.go and mapentry.go call whenever a single item
// (label or value) needs decoding.
func (d *Decoder) decodeOneItem() (Item, error) {
	var tags Item
	var item Item

	for {
		h, err := d.decodeHead()
		if err != nil {
			return Item{}, err
		}

		if h.major != majorTag {
			item, err = d.decodeFinalHead(h)
			if err != nil {
				return Item{}, err
			}
			break
		}

		if d.disableTags {
			return Item{}, errs.ErrTagsDisabled
		}

		mapped, err := d.mapTagNumber(h.arg)
		if err != nil {
			return Item{}, err
		}

		if err := tags.pushTag(mapped); err != nil {
			return Item{}, err
		}
	}

	item.tagCount = tags.tagCount
	item.tagNumbers = tags.tagNumbers

	if err := d.dispatchTagContent(&item); err != nil {
		return Item{}, err
	}

	if !d.disableConformanceChecks && d.mode.RequiresDCBOR() {
		if err := d.checkDCBORItem(&item); err != nil {
			return Item{}, err
		}
	}

	return item, nil
}

// decodeFinalHead decodes the non-tag head that terminates a (possibly
// empty) run of tag numbers: a string head goes to L5, everything else to
// L6's decodeAtom.
func (d *Decoder) decodeFinalHead(h head) (Item, error) {
	if h.major == majorByteString || h.major == majorTextString {
		return d.decodeString(h)
	}

	return d.decodeAtom(h)
}

// mapTagNumber returns the mapping-table index for raw tag numbers above
// LastUnmappedTag, assigning a fresh slot on first sight, or raw unchanged
// for tag numbers within the directly-representable range (spec §3,
// "Tag-number mapping table"). The high bit distinguishes a mapped index
// from a raw small tag number when the item's tag list is later read back.
// The mapping is write-once-per-value: a raw tag number already holding a
// slot returns that same slot. Once NumMappedTags distinct large tag
// numbers have been seen, a new one returns ErrTooManyTags (unrecoverable).
func (d *Decoder) mapTagNumber(raw uint64) (uint64, error) {
	if raw <= LastUnmappedTag {
		return raw, nil
	}

	for i := 0; i < d.tagMapLen; i++ {
		if d.tagMapNumbers[i] == raw {
			return mappedTagFlag | uint64(i), nil
		}
	}

	if d.tagMapLen >= NumMappedTags {
		return 0, errs.ErrTooManyTags
	}

	idx := d.tagMapLen
	d.tagMapNumbers[idx] = raw
	d.tagMapLen++

	return mappedTagFlag | uint64(idx), nil
}

// TagAt returns the idx'th tag number attached to item (0 == outermost),
// resolving the mapping-table indirection mapTagNumber may have applied.
func (d *Decoder) TagAt(item *Item, idx int) (uint64, bool) {
	if idx < 0 || idx >= item.tagCount {
		return 0, false
	}

	return d.resolveTagNumber(item.tagNumbers[idx])
}

// resolveTagNumber turns a stored tag slot (either a raw tag number or a
// mapped index, per mapTagNumber) back into the original tag number.
func (d *Decoder) resolveTagNumber(stored uint64) (uint64, bool) {
	if stored&mappedTagFlag == 0 {
		return stored, true
	}

	i := int(stored &^ mappedTagFlag)
	if i >= d.tagMapLen {
		return 0, false
	}

	return d.tagMapNumbers[i], true
}

// GetNthTagNumberOfItem is TagAt under the name the external interface
// contract (spec §6) uses.
func (d *Decoder) GetNthTagNumberOfItem(item *Item, idx int) (uint64, bool) {
	return d.TagAt(item, idx)
}

// GetNthTagNumberOfLast returns the idx'th tag number of the most recently
// decoded item (the one most recently returned by GetNext), without
// requiring the caller to have kept the Item around.
func (d *Decoder) GetNthTagNumberOfLast(idx int) (uint64, bool) {
	if idx < 0 || idx >= d.lastItem.tagCount {
		return 0, false
	}

	return d.resolveTagNumber(d.lastItem.tagNumbers[idx])
}

// GetNextTagNumber explicitly consumes one tag-number head without
// decoding the content it applies to, for callers that want to inspect a
// tag number before deciding how to handle its content (spec §6). It does
// not aggregate multiple leading tags the way decodeOneItem does: repeated
// calls consume one tag number each.
func (d *Decoder) GetNextTagNumber() (uint64, error) {
	if d.err != nil {
		return 0, d.err
	}

	h, err := d.decodeHead()
	if err != nil {
		return 0, d.fail(err)
	}

	if h.major != majorTag {
		return 0, d.fail(errs.ErrUnexpectedType)
	}

	if d.disableTags {
		return 0, d.fail(errs.ErrTagsDisabled)
	}

	mapped, err := d.mapTagNumber(h.arg)
	if err != nil {
		return 0, d.fail(err)
	}

	raw, _ := d.resolveTagNumber(mapped)

	return raw, nil
}
