package decoder

import (
	"github.com/dvstate/cbor/errs"
	"github.com/dvstate/cbor/tagcontent"
)

// DefaultTagDecoderTable returns the table New installs automatically under
// ModeV1Compat: every tag number spec §4.10 lists as "commonly understood",
// matching RFC 8949 §3.4's tag registry. Callers in non-v1-compat mode that
// want the same behavior can call this directly and pass it to
// WithTagDecoders, then Register additional tags on top.
func DefaultTagDecoderTable() *TagDecoderTable {
	t := NewTagDecoderTable()

	t.Register(tagcontent.TagDateString, decodeTagDateString)
	t.Register(tagcontent.TagDateEpoch, decodeTagDateEpoch)
	t.Register(tagcontent.TagDateEpochDays, decodeTagDateEpochDays)
	t.Register(tagcontent.TagPosBignum, decodeTagPosBignum)
	t.Register(tagcontent.TagNegBignum, decodeTagNegBignum)
	t.Register(tagcontent.TagDecimalFraction, decodeTagDecimalFraction)
	t.Register(tagcontent.TagBigFloat, decodeTagBigFloat)
	t.Register(tagcontent.TagCBOR, decodeTagWrappedCBOR)
	t.Register(tagcontent.TagCBORSequence, decodeTagWrappedCBORSeq)
	t.Register(tagcontent.TagURI, relabelOnly(TypeURI, TypeTextString))
	t.Register(tagcontent.TagBase64URL, relabelOnly(TypeBase64URL, TypeByteString))
	t.Register(tagcontent.TagBase64, relabelOnly(TypeBase64, TypeByteString))
	t.Register(tagcontent.TagRegex, relabelOnly(TypeRegex, TypeTextString))
	t.Register(tagcontent.TagMIME, relabelOnly(TypeMIME, TypeTextString))
	t.Register(tagcontent.TagUUID, relabelOnly(TypeUUID, TypeByteString))

	return t
}

// relabelOnly builds a ContentDecoder that accepts only items of fromType
// and changes their Type to toType, leaving every payload field untouched.
// This covers every registered tag whose content needs no reinterpretation
// beyond the type label itself (spec §4.10's "minimal type relabeling").
func relabelOnly(toType, fromType ItemType) ContentDecoder {
	return func(d *Decoder, item *Item) error {
		if item.Type != fromType {
			return errs.ErrUnrecoverableTagContent
		}

		item.Type = toType

		return nil
	}
}

func decodeTagDateString(d *Decoder, item *Item) error {
	return relabelOnly(TypeDateString, TypeTextString)(d, item)
}

func decodeTagDateEpoch(d *Decoder, item *Item) error {
	switch item.Type {
	case TypeInt64:
		item.Epoch = Epoch{Seconds: item.Int64}
	case TypeUint64:
		item.Epoch = Epoch{Seconds: int64(item.Uint64)}
	case TypeFloat, TypeDouble:
		whole := int64(item.Float64)
		item.Epoch = Epoch{Seconds: whole, Frac: item.Float64 - float64(whole), HasFrac: true}
	default:
		return errs.ErrUnrecoverableTagContent
	}

	item.Type = TypeDateEpoch

	return nil
}

func decodeTagDateEpochDays(d *Decoder, item *Item) error {
	switch item.Type {
	case TypeInt64:
		item.Epoch = Epoch{Seconds: item.Int64}
	case TypeUint64:
		item.Epoch = Epoch{Seconds: int64(item.Uint64)}
	default:
		return errs.ErrUnrecoverableTagContent
	}

	item.Type = TypeDateEpochDays

	return nil
}

func decodeTagPosBignum(d *Decoder, item *Item) error {
	return relabelOnly(TypePosBignum, TypeByteString)(d, item)
}

func decodeTagNegBignum(d *Decoder, item *Item) error {
	return relabelOnly(TypeNegBignum, TypeByteString)(d, item)
}

func decodeTagWrappedCBOR(d *Decoder, item *Item) error {
	return relabelOnly(TypeWrappedCBOR, TypeByteString)(d, item)
}

func decodeTagWrappedCBORSeq(d *Decoder, item *Item) error {
	return relabelOnly(TypeWrappedCBORSeq, TypeByteString)(d, item)
}

// decodeTagDecimalFraction and decodeTagBigFloat both require content shaped
// [exponent, mantissa] (RFC 8949 §3.4.4/§3.4.5): item arrives as the
// not-yet-descended TypeArray head, so these decoders read its two elements
// directly off the decoder's cursor rather than through the normal
// container-descend path in decoder.go, since by the time dispatch runs the
// array's own frame has not been pushed yet.
func decodeTagDecimalFraction(d *Decoder, item *Item) error {
	return decodeExpMantissa(d, item, TypeDecimalFraction)
}

func decodeTagBigFloat(d *Decoder, item *Item) error {
	return decodeExpMantissa(d, item, TypeBigFloat)
}

func decodeExpMantissa(d *Decoder, item *Item, resultType ItemType) error {
	if d.disableExpMantissaTags {
		return errs.ErrUnrecoverableTagContent
	}

	if item.Type != TypeArray || item.Count != 2 {
		return errs.ErrBadExpAndMantissa
	}

	expItem, err := d.decodeOneItem()
	if err != nil {
		return err
	}

	var exponent int64
	switch expItem.Type {
	case TypeInt64:
		exponent = expItem.Int64
	case TypeUint64:
		if expItem.Uint64 > 1<<63-1 {
			return errs.ErrBadExpAndMantissa
		}
		exponent = int64(expItem.Uint64)
	default:
		return errs.ErrBadExpAndMantissa
	}

	mantissaItem, err := d.decodeOneItem()
	if err != nil {
		return err
	}

	em := ExpMantissa{Exponent: exponent}

	switch mantissaItem.Type {
	case TypeInt64:
		em.MantissaInt = mantissaItem.Int64
	case TypeUint64:
		if mantissaItem.Uint64 > 1<<63-1 {
			em.MantissaIsBig = true
			em.MantissaBig = uint64ToBigEndian(mantissaItem.Uint64)
		} else {
			em.MantissaInt = int64(mantissaItem.Uint64)
		}
	case TypeNegInt65:
		em.MantissaIsBig = true
		em.MantissaNeg = true
		em.MantissaBig = uint64ToBigEndian(mantissaItem.NegOffset)
	case TypePosBignum:
		em.MantissaIsBig = true
		em.MantissaBig = mantissaItem.Bytes
	case TypeNegBignum:
		em.MantissaIsBig = true
		em.MantissaNeg = true
		em.MantissaBig = mantissaItem.Bytes
	default:
		return errs.ErrBadExpAndMantissa
	}

	item.Type = resultType
	item.ExpMantissa = em

	return nil
}

func uint64ToBigEndian(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}

	return b
}
