// Package tagcontent names the IANA CBOR tag numbers the decoder's
// tag-content dispatch layer (spec §4.10) knows how to register decoders
// for in v1-compatibility mode, and that callers can register their own
// decoders against via decoder.TagDecoderTable.
//
// The dispatch mechanism itself (walking an item's tag-number list
// innermost-first, invoking a registered decoder, clearing the tag on
// success) lives in the decoder package, since it operates directly on
// decoder.Item. This package holds only the numbers: the payload semantics
// of what each tag's content actually means are explicitly out of scope
// (spec §1) beyond the minimal type relabeling spec §4.10 and its scenario 5
// require.
package tagcontent

// Tag numbers with a registered content decoder in v1-compatibility mode.
const (
	TagDateString      = 0  // RFC 3339 text string
	TagDateEpoch       = 1  // seconds since epoch, integer or float
	TagPosBignum       = 2  // unsigned bignum, big-endian byte string
	TagNegBignum       = 3  // negative bignum: value is -1-n
	TagDecimalFraction = 4  // [exponent, mantissa]
	TagBigFloat        = 5  // [exponent, mantissa], base 2
	TagCBOR            = 24 // byte string containing encoded CBOR
	TagURI             = 32
	TagBase64URL       = 33
	TagBase64          = 34
	TagRegex           = 35
	TagMIME            = 36
	TagUUID            = 37
	TagDateEpochDays   = 100 // days since epoch
	TagCBORSequence    = 63  // byte string containing a CBOR sequence
)
