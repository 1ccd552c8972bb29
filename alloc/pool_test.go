package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolAllocator_DefaultSize(t *testing.T) {
	a := NewPoolAllocator(0)

	b, err := a.Allocate(4)
	require.NoError(t, err)
	assert.Len(t, b, 4)
}

func TestPoolAllocator_Allocate(t *testing.T) {
	a := NewPoolAllocator(DefaultScratchSize)

	b, err := a.Allocate(10)
	require.NoError(t, err)
	require.Len(t, b, 10)

	copy(b, []byte("0123456789"))
	assert.Equal(t, []byte("0123456789"), b)
}

func TestPoolAllocator_Reallocate_Grows(t *testing.T) {
	a := NewPoolAllocator(DefaultScratchSize)

	b, err := a.Allocate(4)
	require.NoError(t, err)
	copy(b, []byte("abcd"))

	b, err = a.Reallocate(b, 8)
	require.NoError(t, err)
	require.Len(t, b, 8)
	assert.Equal(t, []byte("abcd"), b[:4], "existing content must survive growth")
}

func TestPoolAllocator_Reallocate_Shrinks(t *testing.T) {
	a := NewPoolAllocator(DefaultScratchSize)

	b, err := a.Allocate(8)
	require.NoError(t, err)
	copy(b, []byte("abcdefgh"))

	b, err = a.Reallocate(b, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), b)
}

func TestPoolAllocator_Reallocate_WithoutPriorAllocate(t *testing.T) {
	a := NewPoolAllocator(DefaultScratchSize)

	b, err := a.Reallocate(nil, 5)
	require.NoError(t, err)
	assert.Len(t, b, 5)
}

func TestPoolAllocator_Free_AllowsReuse(t *testing.T) {
	a := NewPoolAllocator(DefaultScratchSize)

	b1, err := a.Allocate(4)
	require.NoError(t, err)
	a.Free(b1)

	b2, err := a.Allocate(4)
	require.NoError(t, err)
	assert.Len(t, b2, 4)
}

func TestPoolAllocator_Destruct_Idempotent(t *testing.T) {
	a := NewPoolAllocator(DefaultScratchSize)

	_, err := a.Allocate(4)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		a.Destruct()
		a.Destruct()
	})
}

func TestPoolAllocator_GrowsAcrossMaxThreshold(t *testing.T) {
	a := NewPoolAllocator(16)

	b, err := a.Allocate(16)
	require.NoError(t, err)

	b, err = a.Reallocate(b, 1024*128)
	require.NoError(t, err)
	assert.Len(t, b, 1024*128)

	// Destruct returns the oversized buffer to the pool, which discards it
	// rather than retaining it for the next decode.
	a.Destruct()
}
