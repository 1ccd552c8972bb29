package decoder

import "github.com/dvstate/cbor/errs"

// decodeAtom interprets a single head whose major type is not byte/text
// string (handled by strings.go) and not tag (handled by tags.go), filling
// in the Item fields specific to that major type. Array and map heads are
// included: decodeAtom reports their declared Count, but descending into
// their content frame is L2's job (decoder.go).
func (d *Decoder) decodeAtom(h head) (Item, error) {
	switch h.major {
	case majorUnsignedInt:
		return d.decodeUnsignedInt(h)

	case majorNegativeInt:
		return d.decodeNegativeInt(h)

	case majorArray:
		return d.decodeArrayHead(h)

	case majorMap:
		return d.decodeMapHead(h)

	case majorSimpleFloat:
		return d.decodeSimpleOrFloat(h)

	default:
		return Item{}, errs.ErrUnsupported
	}
}

func (d *Decoder) decodeUnsignedInt(h head) (Item, error) {
	if h.info <= 27 {
		if h.arg > 1<<63-1 {
			return Item{Type: TypeUint64, Uint64: h.arg}, nil
		}
		return Item{Type: TypeInt64, Int64: int64(h.arg), Uint64: h.arg}, nil
	}

	// h.info == aiIndefinite is rejected by decodeHead already.
	return Item{}, errs.ErrBadInt
}

func (d *Decoder) decodeNegativeInt(h head) (Item, error) {
	if h.info > 27 {
		return Item{}, errs.ErrBadInt
	}

	// CBOR negative integers encode -1-n; n == h.arg. If n exceeds
	// math.MaxInt64, the true value needs 65 bits of magnitude and does not
	// fit an int64, so it is surfaced as TypeNegInt65 (spec §3).
	if h.arg > 1<<63-1 {
		return Item{Type: TypeNegInt65, NegOffset: h.arg}, nil
	}

	return Item{Type: TypeInt64, Int64: -1 - int64(h.arg)}, nil
}

func (d *Decoder) decodeArrayHead(h head) (Item, error) {
	if h.argIndefinite {
		return Item{Type: TypeArray, Count: CountIndefinite}, nil
	}

	if h.arg > uint64(maxInt) {
		return Item{}, errs.ErrArrayDecodeTooLong
	}

	return Item{Type: TypeArray, Count: int(h.arg)}, nil
}

// decodeMapHead produces a TypeMap item whose Count is the declared number
// of label/value pairs in Normal mode, or a TypeMapAsArray item whose Count
// is doubled to a flat item count when ModeMapAsArray is active (spec §6,
// "map-as-array").
func (d *Decoder) decodeMapHead(h head) (Item, error) {
	asArray := d.mode.MapAsArray()
	typ := TypeMap
	if asArray {
		typ = TypeMapAsArray
	}

	if h.argIndefinite {
		return Item{Type: typ, Count: CountIndefinite}, nil
	}

	if h.arg > uint64(maxInt) {
		return Item{}, errs.ErrArrayDecodeTooLong
	}

	count := int(h.arg)
	if asArray {
		count *= 2
	}

	return Item{Type: typ, Count: count}, nil
}

const maxInt = int(^uint(0) >> 1)

func (d *Decoder) decodeSimpleOrFloat(h head) (Item, error) {
	switch h.info {
	case 20:
		return Item{Type: TypeBoolFalse}, nil
	case 21:
		return Item{Type: TypeBoolTrue}, nil
	case 22:
		return Item{Type: TypeNull}, nil
	case 23:
		return Item{Type: TypeUndefined}, nil

	case 25:
		if d.disableAllFloat {
			return Item{}, errs.ErrAllFloatDisabled
		}
		if d.disableHalfPrecision {
			return Item{}, errs.ErrHalfPrecisionDisabled
		}
		if err := d.checkHalfNaNPayload(uint16(h.arg)); err != nil {
			return Item{}, err
		}
		return Item{Type: TypeFloat, Float64: float64(halfToFloat32(uint16(h.arg)))}, nil

	case 26:
		if d.disableAllFloat {
			return Item{}, errs.ErrAllFloatDisabled
		}
		if d.disableHWFloat {
			return Item{}, errs.ErrHWFloatDisabled
		}
		f := float32FromBits(uint32(h.arg))
		if err := d.checkFloat32Preferred(f); err != nil {
			return Item{}, err
		}
		return Item{Type: TypeFloat, Float64: float64(f)}, nil

	case 27:
		if d.disableAllFloat {
			return Item{}, errs.ErrAllFloatDisabled
		}
		if d.disableHWFloat {
			return Item{}, errs.ErrHWFloatDisabled
		}
		v := float64FromBits(h.arg)
		if err := d.checkFloat64Preferred(v); err != nil {
			return Item{}, err
		}
		return Item{Type: TypeDouble, Float64: v}, nil

	case aiIndefinite:
		return Item{}, errs.ErrBadBreak

	case 24:
		if h.arg <= 31 {
			return Item{}, errs.ErrBadTypeSeven
		}
		return Item{Type: TypeUnknownSimple, Simple: byte(h.arg)}, nil

	default: // h.info < 20: direct one-byte simple value 0-19
		return Item{Type: TypeUnknownSimple, Simple: byte(h.arg)}, nil
	}
}
