// Package errs defines the sentinel errors returned by the cbor decoder and
// the grouping used to classify them as recoverable or unrecoverable.
//
// Every exported error is a package-level sentinel, checked by callers with
// errors.Is, mirroring the decoder's sticky-error model: once an unrecoverable
// error is set, the decoder stops making progress until it is recreated, while
// a recoverable error can be cleared and decoding resumed.
package errs
