package errs

import "errors"

// Configuration errors. The decoder was asked to do something its current
// configuration does not support. All are unrecoverable for the item that
// triggered them.
var (
	// ErrNoStringAllocator is returned when an indefinite-length string is
	// encountered but no StringAllocator was configured.
	ErrNoStringAllocator = errors.New("cbor: indefinite-length string requires a string allocator")

	// ErrMapLabelType is returned when a map label's type violates the
	// active label-type policy (e.g. a non-string label in strings-only
	// mode, or an array/map used as a label).
	ErrMapLabelType = errors.New("cbor: map label has disallowed type")

	// ErrHalfPrecisionDisabled is returned when a half-precision float is
	// decoded while half-precision support is disabled.
	ErrHalfPrecisionDisabled = errors.New("cbor: half-precision float support disabled")

	// ErrIndefLenArraysDisabled is returned when an indefinite-length array
	// or map is decoded while that form is disabled.
	ErrIndefLenArraysDisabled = errors.New("cbor: indefinite-length arrays/maps disabled")

	// ErrIndefLenStringsDisabled is returned when an indefinite-length
	// string is decoded while that form is disabled.
	ErrIndefLenStringsDisabled = errors.New("cbor: indefinite-length strings disabled")

	// ErrAllFloatDisabled is returned when any floating-point item is
	// decoded while float support is entirely disabled.
	ErrAllFloatDisabled = errors.New("cbor: floating-point support disabled")

	// ErrTagsDisabled is returned when a tag number is encountered while tag
	// support is disabled.
	ErrTagsDisabled = errors.New("cbor: tag number support disabled")

	// ErrHWFloatDisabled is returned when a single- or double-precision
	// float is decoded while hardware-float conversion is disabled.
	ErrHWFloatDisabled = errors.New("cbor: hardware float conversion disabled")

	// ErrCantCheckFloatConformance is returned when dCBOR conformance
	// checking needs to inspect a float's bit pattern but float support is
	// disabled, making the check impossible to perform.
	ErrCantCheckFloatConformance = errors.New("cbor: cannot check float conformance with float support disabled")
)
