package alloc

import (
	"github.com/dvstate/cbor/internal/pool"
)

// DefaultScratchSize is the initial capacity of a buffer handed out by
// PoolAllocator, chosen to cover the overwhelming majority of indefinite-
// length CBOR text/byte strings (map labels, short diagnostic payloads)
// without a reallocation.
const DefaultScratchSize = pool.ScratchBufferDefaultSize

// PoolAllocator is a StringAllocator backed by the teacher's ByteBufferPool:
// one ByteBuffer is borrowed from the pool at a time, grown in place across
// Reallocate calls (the only discipline the string-allocator contract
// requires), and returned to the pool on Free or Destruct.
//
// A PoolAllocator instance is not safe for concurrent use, matching the
// decoder it serves: a Decoder and its StringAllocator are always driven
// from a single goroutine at a time.
type PoolAllocator struct {
	pool    *pool.ByteBufferPool
	current *pool.ByteBuffer // the single live (unfreed) allocation, or nil
}

// NewPoolAllocator creates a PoolAllocator whose scratch buffers start at
// defaultSize bytes of capacity. Use DefaultScratchSize when no better
// estimate of the largest expected string is available. Buffers that grow
// past pool.ScratchBufferMaxThreshold are discarded rather than pooled, so a
// single oversized string does not inflate memory held by every subsequent
// decode.
func NewPoolAllocator(defaultSize int) *PoolAllocator {
	if defaultSize <= 0 {
		defaultSize = DefaultScratchSize
	}

	return &PoolAllocator{
		pool: pool.NewByteBufferPool(defaultSize, pool.ScratchBufferMaxThreshold),
	}
}

// Allocate implements StringAllocator.
func (a *PoolAllocator) Allocate(size int) ([]byte, error) {
	bb := a.pool.Get()
	bb.Reset()
	bb.ExtendOrGrow(size)
	a.current = bb

	return bb.Bytes(), nil
}

// Reallocate implements StringAllocator.
func (a *PoolAllocator) Reallocate(old []byte, size int) ([]byte, error) {
	if a.current == nil {
		return a.Allocate(size)
	}

	a.current.SetLength(len(old))
	a.current.ExtendOrGrow(size - len(old))

	return a.current.Bytes(), nil
}

// Free implements StringAllocator.
func (a *PoolAllocator) Free(old []byte) {
	if a.current == nil {
		return
	}

	a.pool.Put(a.current)
	a.current = nil
}

// Destruct implements StringAllocator. It releases the currently-held
// buffer, if any, back to the pool; the pool itself is reclaimed by the
// garbage collector once the PoolAllocator is no longer referenced.
func (a *PoolAllocator) Destruct() {
	if a.current != nil {
		a.pool.Put(a.current)
		a.current = nil
	}
}
