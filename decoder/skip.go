package decoder

import "github.com/dvstate/cbor/errs"

// skipValue decodes one item and, if it opens an array or map, walks past
// its full nested content so the cursor lands on the following sibling.
// decodeOneItem alone only reports a container's head (spec §6): descending
// into its content frame is ordinarily L2's job via EnterArray/EnterMap, but
// map-search scanning (search.go, seek.go) needs to bypass a non-matching
// entry's value without interpreting its structure, so it calls this
// instead of a bare decodeOneItem.
func (d *Decoder) skipValue() (Item, error) {
	item, err := d.decodeOneItem()
	if err != nil {
		return Item{}, err
	}

	if err := d.skipContent(item); err != nil {
		return Item{}, err
	}

	return item, nil
}

// skipContent walks past the declared children of an already-decoded
// container item. Non-container items have already consumed their full
// encoding in decodeOneItem (string chunks included) and need nothing
// further.
func (d *Decoder) skipContent(item Item) error {
	switch item.Type {
	case TypeArray, TypeMapAsArray:
		return d.skipChildren(item.Count)
	case TypeMap:
		if item.Count == CountIndefinite {
			return d.skipChildren(CountIndefinite)
		}
		return d.skipChildren(item.Count * 2)
	default:
		return nil
	}
}

func (d *Decoder) skipChildren(count int) error {
	if count == CountIndefinite {
		for {
			if d.cursor >= d.bufEnd {
				return errs.ErrHitEnd
			}
			if d.data[d.cursor] == 0xFF {
				d.cursor++
				return nil
			}
			if _, err := d.skipValue(); err != nil {
				return err
			}
		}
	}

	for i := 0; i < count; i++ {
		if _, err := d.skipValue(); err != nil {
			return err
		}
	}

	return nil
}
