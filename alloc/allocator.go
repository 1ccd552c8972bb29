package alloc

// StringAllocator is the decoder's sole dynamic-allocation collaborator.
//
// It is invoked in exactly four modes, mirroring the C reference's single
// function-pointer-plus-mode-arguments contract but expressed as four
// methods so each call site states its intent directly instead of encoding
// it in a combination of nil/zero arguments:
//
//   - Allocate is called when an indefinite-length string's first chunk
//     arrives (even an empty one), with size 0 for a string of zero chunks,
//     or when "copy all strings" needs to duplicate a definite-length string
//     out of the input buffer.
//   - Reallocate is called for every subsequent chunk of the same
//     indefinite-length string, growing the previously returned slice.
//   - Free is called on the string assembled so far when a Reallocate call
//     fails. A string abandoned for another reason (e.g. a malformed later
//     chunk) is not freed individually; that memory is left to Destruct.
//   - Destruct is called from every Decoder.Finish call, giving the
//     allocator a chance to release any pooled resources it is holding.
//
// Implementations must honor a stack discipline: of all the slices an
// allocator has handed out, only the most-recently-allocated one may be
// the target of a Free or Reallocate call. This mirrors the decoder's own
// usage pattern (one string is assembled at a time; assembly is never
// interleaved across strings) and lets a pool-based implementation reuse a
// single scratch buffer instead of tracking every live allocation.
type StringAllocator interface {
	// Allocate returns a new slice of the given size. The returned slice's
	// length must equal size; its capacity may be larger.
	Allocate(size int) ([]byte, error)

	// Reallocate grows (or shrinks) a previously allocated slice to the new
	// size, preserving its existing content up to min(old, new) bytes. old
	// must be the most recent slice returned by Allocate or Reallocate that
	// has not yet been Freed.
	Reallocate(old []byte, size int) ([]byte, error)

	// Free releases a previously allocated slice. old must be the
	// most-recently-allocated live slice.
	Free(old []byte)

	// Destruct releases any resources the allocator holds beyond individual
	// slices (e.g. returning a pooled buffer to its pool). Called by each
	// Decoder.Finish call.
	Destruct()
}
