package errs

import "errors"

// recoverableSet lists every error a caller may clear via
// Decoder.GetAndResetError and resume decoding after. Anything not in this
// set is treated as unrecoverable: the stream is malformed, or an
// implementation/configuration limit was hit, and further decoding from the
// same decoder is undefined.
var recoverableSet = map[error]struct{}{
	ErrLabelNotFound:              {},
	ErrDuplicateLabel:             {},
	ErrUnexpectedType:             {},
	ErrConversionUnderOverFlow:    {},
	ErrNumberSignConversion:       {},
	ErrFloatException:             {},
	ErrExitMismatch:               {},
	ErrUnprocessedTagNumber:       {},
	ErrPreferredConformance:       {},
	ErrDCBORConformance:           {},
	ErrUnsorted:                   {},
	ErrArrayOrMapUnconsumed:       {},
	ErrExtraBytes:                 {},
	ErrBufferTooSmall:             {},
	ErrCannotEnterAllocatedString: {},
}

var notWellFormedSet = map[error]struct{}{
	ErrHitEnd:                {},
	ErrUnsupported:           {},
	ErrBadTypeSeven:          {},
	ErrBadBreak:              {},
	ErrBadInt:                {},
	ErrIndefiniteStringChunk: {},
}

// IsRecoverable reports whether err (or an error it wraps) is one the caller
// may clear with Decoder.GetAndResetError before continuing to decode.
func IsRecoverable(err error) bool {
	for sentinel := range recoverableSet {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

// IsUnrecoverable reports whether err (or an error it wraps) leaves the
// decoder's stream position undefined for further decoding. This is always
// the logical negation of IsRecoverable for any error the decoder itself
// produces; a nil error is neither.
func IsUnrecoverable(err error) bool {
	if err == nil {
		return false
	}

	return !IsRecoverable(err)
}

// IsNotWellFormed reports whether err signals that the input byte stream
// itself violates RFC 8949 well-formedness (as opposed to a higher-level
// structural or conformance rule layered on top of a well-formed stream).
func IsNotWellFormed(err error) bool {
	for sentinel := range notWellFormedSet {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
