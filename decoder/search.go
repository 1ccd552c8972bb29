package decoder

import (
	"bytes"

	"github.com/dvstate/cbor/errs"
	"github.com/dvstate/cbor/internal/labelhash"
)

// MapQuery describes one label to search for within a bounded map (spec
// §4.8). WantType, if not TypeNone, additionally requires the matching
// entry's value to have that type.
type MapQuery struct {
	LabelType LabelType
	Int64     int64
	Uint64    uint64
	Bytes     []byte
	WantType  ItemType
}

// MapQueryResult is one query's outcome.
type MapQueryResult struct {
	Found bool
	Item  Item
}

// FindByLabels searches the map most recently entered with EnterMap for
// each of queries, scanning from the map's first entry regardless of the
// decoder's current position within it, and restores that position
// exactly once finished (spec §4.8's snapshot/restore semantics): a
// FindByLabels call never advances the cursor a caller observes via Tell.
//
// Duplicate-label detection (spec §4.8 step 3c) is scoped to entries that
// match one of queries, compared by decoded value: a second entry matching
// a query that already found a match yields ErrDuplicateLabel. In CDE mode
// that comparison instead requires the two entries' encoded label bytes to
// be byte-identical, since CDE's separate sorted/unique-label enforcement
// (conformance.go's checkMapOrdering, run during ordinary sequential
// traversal) already treats differently-encoded-but-value-equal labels as
// distinct.
func (d *Decoder) FindByLabels(queries []MapQuery) ([]MapQueryResult, error) {
	if d.err != nil {
		return nil, d.err
	}

	top := d.nest.top()
	if top.kind != frameContainer || !top.bounded || top.ckind != containerMap {
		return nil, d.fail(errs.ErrExitMismatch)
	}

	saved := *d
	results := make([]MapQueryResult, len(queries))
	seen := make([]*labelhash.Seen, len(queries))

	d.cursor = top.startOffset

	remaining := top.total
	indefinite := top.total == CountIndefinite

	for {
		if indefinite {
			if d.cursor >= d.bufEnd {
				*d = saved
				return nil, d.fail(errs.ErrHitEnd)
			}
			if d.data[d.cursor] == 0xFF {
				break
			}
		} else if remaining <= 0 {
			break
		}

		labelStart := d.cursor

		labelItem, err := d.decodeOneItem()
		if err != nil {
			*d = saved
			return nil, d.fail(err)
		}

		rawLabel := d.data[labelStart:d.cursor]

		label, err := d.classifyLabel(labelItem)
		if err != nil {
			*d = saved
			return nil, d.fail(err)
		}

		valueItem, err := d.skipValue()
		if err != nil {
			*d = saved
			return nil, d.fail(err)
		}
		valueItem.Label = label

		for qi, q := range queries {
			if !labelMatchesQuery(label, q) {
				continue
			}

			if results[qi].Found {
				dup := true
				if d.mode.RequiresCDE() {
					dup = seen[qi] != nil && seen[qi].CheckAndAdd(rawLabel)
				}
				if dup {
					*d = saved
					return nil, d.fail(errs.ErrDuplicateLabel)
				}
				continue
			}

			if q.WantType != TypeNone && valueItem.Type != q.WantType {
				*d = saved
				return nil, d.fail(errs.ErrUnexpectedType)
			}

			results[qi] = MapQueryResult{Found: true, Item: valueItem}
			if d.mode.RequiresCDE() {
				seen[qi] = labelhash.NewSeen(1)
				seen[qi].CheckAndAdd(rawLabel)
			}
		}

		if !indefinite {
			remaining--
		}
	}

	*d = saved

	return results, nil
}

func labelMatchesQuery(l Label, q MapQuery) bool {
	if l.Type != q.LabelType {
		return false
	}

	switch l.Type {
	case LabelInt64:
		return l.Int64 == q.Int64
	case LabelUint64:
		return l.Uint64 == q.Uint64
	case LabelByteString, LabelTextString:
		return bytes.Equal(l.Bytes, q.Bytes)
	default:
		return false
	}
}
