package errs

import "errors"

// ErrStringAllocate is a resource error: the configured StringAllocator
// failed to satisfy an allocate or reallocate request. Unrecoverable, since
// the partially-assembled string cannot be trusted.
var ErrStringAllocate = errors.New("cbor: string allocator failed")

// Recoverable errors. The decoder's cursor is left at a well-defined
// position (see each error's call site) and the caller may clear the sticky
// error and continue decoding.
var (
	// ErrLabelNotFound is returned by a map-search operation when none of
	// the bounded map's entries match the requested label.
	ErrLabelNotFound = errors.New("cbor: label not found in bounded map")

	// ErrDuplicateLabel is returned when a map-search query list contains a
	// label that two entries in the map both match, or (in CDE mode) when
	// two map entries carry byte-identical encoded labels.
	ErrDuplicateLabel = errors.New("cbor: duplicate label")

	// ErrUnexpectedType is returned when a map-search query's expected type
	// does not match the type of the item found at a matching label.
	ErrUnexpectedType = errors.New("cbor: item has unexpected type")

	// ErrConversionUnderOverFlow is returned by the numeric-conversion
	// façade when the source value does not fit the requested target type.
	ErrConversionUnderOverFlow = errors.New("cbor: numeric conversion under/overflow")

	// ErrNumberSignConversion is returned when converting a negative value
	// into an unsigned target type, or similar sign-incompatible request.
	ErrNumberSignConversion = errors.New("cbor: numeric conversion sign mismatch")

	// ErrFloatException is returned when a float-to-integer conversion
	// source is NaN or +/-Inf.
	ErrFloatException = errors.New("cbor: float is NaN or infinite")

	// ErrExitMismatch is returned when ExitArray/ExitMap/ExitBstrWrapped is
	// called but the currently bounded level was entered as a different
	// kind.
	ErrExitMismatch = errors.New("cbor: exit does not match entered kind")

	// ErrUnprocessedTagNumber is returned by Decoder.CheckTagsConsumed, in
	// any mode, when an item still carries tag numbers with no registered
	// content decoder.
	ErrUnprocessedTagNumber = errors.New("cbor: item has unprocessed tag numbers")

	// ErrPreferredConformance is returned in Preferred/CDE/dCBOR mode when an
	// argument is not encoded in its shortest form, or an indefinite-length
	// item is used.
	ErrPreferredConformance = errors.New("cbor: not preferred serialization")

	// ErrDCBORConformance is returned in dCBOR mode for numeric
	// canonicalization and simple-value-restriction violations.
	ErrDCBORConformance = errors.New("cbor: dCBOR conformance violation")

	// ErrUnsorted is returned in CDE mode when a map's encoded labels are
	// not in strictly increasing lexicographic order.
	ErrUnsorted = errors.New("cbor: map labels not sorted")

	// ErrArrayOrMapUnconsumed is returned by Finish when a map or array was
	// entered but never exited.
	ErrArrayOrMapUnconsumed = errors.New("cbor: array or map entered but not exited")

	// ErrExtraBytes is returned by Finish when bytes remain after the
	// top-level item(s) have been consumed. Recoverable: this is exactly
	// the expected signal when decoding a CBOR sequence one item at a time.
	ErrExtraBytes = errors.New("cbor: extra bytes after top-level item")

	// ErrBufferTooSmall is returned by an encode-shaped helper (e.g.
	// returning raw tag bytes into a caller buffer) when the destination
	// buffer is smaller than required.
	ErrBufferTooSmall = errors.New("cbor: destination buffer too small")

	// ErrCannotEnterAllocatedString is returned when EnterBstrWrapped is
	// called on a byte string whose allocated flag is set: entering
	// bstr-wrapped CBOR narrows the visible input buffer in place, which is
	// meaningless for a string that does not live in the input buffer.
	ErrCannotEnterAllocatedString = errors.New("cbor: cannot enter bstr-wrapped CBOR backed by allocator memory")
)
