package decoder

import "github.com/dvstate/cbor/errs"

// ItemType discriminates the payload carried by an Item. It is a closed set:
// every CBOR major type decodes to exactly one of these, and tag-content
// dispatch (spec §4.10) may transform an item's type in place as registered
// decoders run.
type ItemType uint8

const (
	// TypeNone marks the zero-value Item, and the value GetNext writes on a
	// sticky-error short-circuit (spec §7).
	TypeNone ItemType = iota

	TypeInt64      // fits a signed 64-bit integer
	TypeUint64     // fits an unsigned 64-bit integer, too large for int64
	TypeNegInt65   // in [-2^64, -2^63-1]; see Item.NegOffset
	TypeByteString
	TypeTextString
	TypeArray
	TypeMap
	TypeMapAsArray // a map surfaced as a flat array of 2*count items (map-as-array mode)
	TypeBoolFalse
	TypeBoolTrue
	TypeNull
	TypeUndefined
	TypeFloat         // half or single precision value, widened into Item.Float64
	TypeDouble        // double precision value
	TypeUnknownSimple // major 7, AI 0..19 or AI 24 with argument 32..255: unassigned simple value

	// tagNumber and breakItem are transient: L4 and L5 consume them
	// internally and never hand them to a caller.
	tagNumber
	breakItem

	// Registered tag-content types (spec §4.10, populated in v1-compat mode
	// or by caller-registered decoders).
	TypeDateString      // tag 0: RFC 3339 text string
	TypeDateEpoch       // tag 1: seconds since epoch, integer or float
	TypeDateEpochDays   // tag 100: days since epoch
	TypePosBignum       // tag 2
	TypeNegBignum       // tag 3
	TypeDecimalFraction // tag 4: Item.ExpMantissa, mantissa may be int64 or bignum
	TypeBigFloat        // tag 5: Item.ExpMantissa
	TypeURI             // tag 32
	TypeBase64URL       // tag 33
	TypeBase64          // tag 34
	TypeRegex           // tag 35
	TypeMIME            // tag 36
	TypeUUID            // tag 37
	TypeWrappedCBOR     // tag 24
	TypeWrappedCBORSeq  // tag 63
)

// String implements fmt.Stringer, following the teacher's format.EncodingType
// convention of a plain name-or-Unknown switch.
func (t ItemType) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeInt64:
		return "Int64"
	case TypeUint64:
		return "Uint64"
	case TypeNegInt65:
		return "NegInt65"
	case TypeByteString:
		return "ByteString"
	case TypeTextString:
		return "TextString"
	case TypeArray:
		return "Array"
	case TypeMap:
		return "Map"
	case TypeMapAsArray:
		return "MapAsArray"
	case TypeBoolFalse:
		return "False"
	case TypeBoolTrue:
		return "True"
	case TypeNull:
		return "Null"
	case TypeUndefined:
		return "Undefined"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeUnknownSimple:
		return "UnknownSimple"
	case TypeDateString:
		return "DateString"
	case TypeDateEpoch:
		return "DateEpoch"
	case TypeDateEpochDays:
		return "DateEpochDays"
	case TypePosBignum:
		return "PosBignum"
	case TypeNegBignum:
		return "NegBignum"
	case TypeDecimalFraction:
		return "DecimalFraction"
	case TypeBigFloat:
		return "BigFloat"
	case TypeURI:
		return "URI"
	case TypeBase64URL:
		return "Base64URL"
	case TypeBase64:
		return "Base64"
	case TypeRegex:
		return "Regex"
	case TypeMIME:
		return "MIME"
	case TypeUUID:
		return "UUID"
	case TypeWrappedCBOR:
		return "WrappedCBOR"
	case TypeWrappedCBORSeq:
		return "WrappedCBORSequence"
	default:
		return "Unknown"
	}
}

// IsContainer reports whether the item opens a map or array frame.
func (t ItemType) IsContainer() bool {
	return t == TypeArray || t == TypeMap || t == TypeMapAsArray
}

// CountIndefinite is the Item.Count sentinel meaning "indefinite-length":
// the array/map's end is marked by a break byte rather than a declared
// count. It stands in for the reference implementation's UINT16_MAX
// sentinel.
const CountIndefinite = -1

// LabelType discriminates the payload carried by a Label.
type LabelType uint8

const (
	LabelNone LabelType = iota
	LabelInt64
	LabelUint64
	LabelByteString
	LabelTextString
)

// Label carries a map entry's key, produced by L3 map-entry pairing (spec
// §4.5). LabelNone means the item is not (or was not decoded as) a map
// entry's value.
type Label struct {
	Type      LabelType
	Int64     int64
	Uint64    uint64
	Bytes     []byte // valid for LabelByteString / LabelTextString
	Allocated bool   // true if Bytes points into StringAllocator memory
}

// ExpMantissa carries the exponent+mantissa payload of a decimal-fraction
// (tag 4) or bigfloat (tag 5) item. The mantissa may be a plain int64 or an
// arbitrary-precision bignum; MantissaIsBig discriminates which fields are
// valid, reflecting the "several mantissa shapes" the spec calls out.
type ExpMantissa struct {
	Exponent       int64
	MantissaInt    int64
	MantissaBig    []byte // big-endian magnitude, valid when MantissaIsBig
	MantissaNeg    bool   // sign of the bignum mantissa; -1-n per CBOR negative bignum convention
	MantissaIsBig  bool
}

// Epoch carries the seconds-since-epoch payload of a tag-1 date item. Frac
// is non-zero only when the tag content was a float.
type Epoch struct {
	Seconds int64
	Frac    float64
	HasFrac bool
}

// MaxTagsPerItem bounds how many tag numbers may precede a single item.
// The spec leaves this to the implementation; 4 covers every realistic
// COSE/CWT tag stack (the reference implementation uses the same bound for
// its tag-number mapping table).
const MaxTagsPerItem = 4

// mappedTagFlag marks a tagNumbers slot as holding an index into the
// decoder's tag-number mapping table rather than a raw tag number, for tag
// numbers too large to fit the compact inline representation the table
// exists to avoid repeating (spec §3, "Tag-number mapping table").
const mappedTagFlag = uint64(1) << 63

// Item is the value decoded from one CBOR data item, combining the L6 atom,
// any L5 string assembly, the L4 tag list, and (inside a map) the L3 label.
//
// Item is a plain value type: copying it copies all scalar fields, and the
// Bytes/Label.Bytes slices remain aliases of either the decoder's input
// buffer or StringAllocator memory, per AllocatedValue/Label.Allocated.
type Item struct {
	Type ItemType
	Label Label

	// NestLevel is the nesting depth this item lives at; NextNestLevel is
	// the depth the following item will live at. NextNestLevel < NestLevel
	// means one or more containers closed on this item (spec §4.6).
	NestLevel     uint8
	NextNestLevel uint8

	Int64     int64
	Uint64    uint64
	NegOffset uint64 // valid when Type == TypeNegInt65; value is -NegOffset-1

	Bytes           []byte // ByteString/TextString payload, or raw bignum magnitude
	AllocatedValue  bool   // true if Bytes points into StringAllocator memory

	Count int // Array/Map/MapAsArray declared count, or CountIndefinite

	Float64 float64 // valid for TypeFloat/TypeDouble
	Simple  byte    // valid for TypeUnknownSimple

	Epoch       Epoch
	ExpMantissa ExpMantissa

	tagCount   int
	tagNumbers [MaxTagsPerItem]uint64
}

// HasTags reports whether any tag numbers remain attached to the item. A
// caller that requires every tag to be explicitly consumed checks this
// before discarding the item (see Decoder.CheckTagsConsumed).
func (it *Item) HasTags() bool {
	return it.tagCount > 0
}

// TagCount returns the number of tag numbers currently attached to the item,
// outermost first.
func (it *Item) TagCount() int {
	return it.tagCount
}

// pushTag appends raw as the innermost tag number seen so far (outermost
// stays at index 0), used by decodeOneItem (spec §4.10) to accumulate the
// tag numbers preceding an item as they're read off the wire.
func (it *Item) pushTag(raw uint64) error {
	if it.tagCount >= MaxTagsPerItem {
		return errs.ErrTooManyTags
	}

	it.tagNumbers[it.tagCount] = raw
	it.tagCount++

	return nil
}

// removeTagAt removes the tag at position idx (0 == outermost), shifting
// later entries down, used by L1 dispatch (spec §4.10) to clear a tag once
// its content decoder has consumed it.
func (it *Item) removeTagAt(idx int) {
	for i := idx; i < it.tagCount-1; i++ {
		it.tagNumbers[i] = it.tagNumbers[i+1]
	}
	it.tagCount--
}

func (it *Item) reset() {
	*it = Item{}
}
