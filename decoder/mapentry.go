package decoder

import "github.com/dvstate/cbor/errs"

// decodeMapEntry is L3: inside a true map frame (not MapAsArray), it
// decodes the entry's label item internally, converts it to a Label, then
// decodes the value item and attaches the Label to it. One call to
// decodeMapEntry corresponds to one label/value pair and to one decrement
// of the enclosing frame's remaining count (spec §4.5).
func (d *Decoder) decodeMapEntry() (Item, error) {
	labelStart := d.cursor

	labelItem, err := d.decodeOneItem()
	if err != nil {
		return Item{}, err
	}

	if d.mode.RequiresCDE() && !d.disableConformanceChecks {
		raw := d.data[labelStart:d.cursor]
		top := d.nest.top()
		if err := checkMapOrdering(top.prevLabelRaw, raw); err != nil {
			return Item{}, err
		}
		top.prevLabelRaw = raw
	}

	label, err := d.classifyLabel(labelItem)
	if err != nil {
		return Item{}, err
	}

	value, err := d.decodeOneItem()
	if err != nil {
		return Item{}, err
	}

	value.Label = label

	return value, nil
}

// classifyLabel converts a decoded label item into a Label, enforcing the
// active label-type policy. Labels are restricted to int64/uint64/byte
// string/text string: those are the shapes Label can represent, and they
// cover every realistic COSE/CWT/CDDL map key in practice.
func (d *Decoder) classifyLabel(item Item) (Label, error) {
	if d.mode.MapStringsOnly() && item.Type != TypeTextString {
		return Label{}, errs.ErrMapLabelType
	}

	if d.disableNonIntegerLabels && item.Type != TypeInt64 && item.Type != TypeUint64 && item.Type != TypeNegInt65 {
		return Label{}, errs.ErrMapLabelType
	}

	switch item.Type {
	case TypeInt64:
		return Label{Type: LabelInt64, Int64: item.Int64}, nil
	case TypeUint64:
		return Label{Type: LabelUint64, Uint64: item.Uint64}, nil
	case TypeByteString:
		return Label{Type: LabelByteString, Bytes: item.Bytes, Allocated: item.AllocatedValue}, nil
	case TypeTextString:
		return Label{Type: LabelTextString, Bytes: item.Bytes, Allocated: item.AllocatedValue}, nil
	default:
		return Label{}, errs.ErrMapLabelType
	}
}
