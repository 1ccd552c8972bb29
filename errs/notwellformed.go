package errs

import "errors"

// Not-well-formed errors. The input byte stream does not satisfy RFC 8949's
// well-formedness rules. All are unrecoverable: once hit, the cursor position
// may no longer correspond to any well-formed item boundary.
var (
	// ErrHitEnd is returned when fewer bytes remain in the input than a head
	// or string argument declares.
	ErrHitEnd = errors.New("cbor: hit end of input before expected")

	// ErrUnsupported is returned for a head byte whose additional-info is one
	// of the reserved values 28-30.
	ErrUnsupported = errors.New("cbor: reserved additional-info value")

	// ErrBadTypeSeven is returned when a major-7 simple value in the range
	// 0-31 is encoded with the two-byte form (additional-info 24) instead of
	// the required one-byte form.
	ErrBadTypeSeven = errors.New("cbor: simple value encoded in non-canonical form")

	// ErrBadBreak is returned when a break byte (major 7, additional-info 31)
	// appears outside an indefinite-length string, array, or map.
	ErrBadBreak = errors.New("cbor: break outside indefinite-length container")

	// ErrBadInt is returned when additional-info 31 appears on a positive
	// integer, negative integer, or tag-number head, none of which may be
	// indefinite-length.
	ErrBadInt = errors.New("cbor: indefinite-length form on integer or tag head")

	// ErrIndefiniteStringChunk is returned when a chunk inside an
	// indefinite-length string is not a definite-length string of the same
	// major type as the enclosing string.
	ErrIndefiniteStringChunk = errors.New("cbor: invalid chunk inside indefinite-length string")
)
