// Package alloc provides the string-allocator interface used by the decoder
// to assemble indefinite-length CBOR strings, and a pool-based default
// implementation of it.
//
// The decoder's core never allocates on its own. The only place dynamic
// memory enters the picture is indefinite-length string coalescing (spec
// §4.3) and, optionally, copying every decoded string so the caller's input
// buffer need not outlive the decoded Items (the "copy all strings" mode).
// Both uses go through the same four-mode contract: Allocate, Reallocate,
// Free, Destruct.
package alloc
