package errs

import "errors"

// Invalid-CBOR errors. The stream is well-formed at the byte level but
// violates a structural rule the decoder enforces regardless of conformance
// mode. All are unrecoverable.
var (
	// ErrNoMoreItems is returned when GetNext is called and the cursor has
	// already reached the end of the input, or the end of the current
	// bounded level.
	ErrNoMoreItems = errors.New("cbor: no more items at current nesting level")

	// ErrBadExpAndMantissa is returned when a decimal-fraction or bigfloat
	// tag's content is not the required two-element array of
	// [exponent, mantissa].
	ErrBadExpAndMantissa = errors.New("cbor: decimal-fraction/bigfloat content is not [exponent, mantissa]")

	// ErrUnrecoverableTagContent is returned when a registered tag-content
	// decoder rejects the item's content as the wrong shape for that tag.
	ErrUnrecoverableTagContent = errors.New("cbor: tag content decoder rejected item")
)
