package errs

import "errors"

// Implementation-limit errors. The input is well-formed CBOR but exceeds a
// bound this decoder enforces to keep its core allocation-free. All are
// unrecoverable.
var (
	// ErrIntOverflow is returned when a numeric conversion target type
	// cannot represent the decoded value.
	ErrIntOverflow = errors.New("cbor: integer overflow during conversion")

	// ErrArrayDecodeTooLong is returned when a definite-length array or map
	// declares more entries than fit in an int.
	ErrArrayDecodeTooLong = errors.New("cbor: array or map declares too many items")

	// ErrDateOverflow is returned when an epoch-date tag's numeric content
	// does not fit the epoch representation.
	ErrDateOverflow = errors.New("cbor: epoch date value overflows representation")

	// ErrNestingTooDeep is returned when entering a container would exceed
	// MaxNesting frames on the nesting stack.
	ErrNestingTooDeep = errors.New("cbor: nesting exceeds maximum depth")

	// ErrStringTooLong is returned when a string's declared length would
	// overflow the decoder's internal length arithmetic.
	ErrStringTooLong = errors.New("cbor: string length too large")

	// ErrTooManyTags is returned when more tag numbers precede a single item
	// than the decoder's fixed-size tag list can hold.
	ErrTooManyTags = errors.New("cbor: too many tag numbers on one item")

	// ErrInputTooLarge is returned when the input buffer passed to Init
	// exceeds the decoder's maximum supported size.
	ErrInputTooLarge = errors.New("cbor: input buffer too large")
)
