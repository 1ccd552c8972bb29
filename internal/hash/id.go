package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 digest of data: a cheap, deterministic key used
// wherever a byte range (a decoded map label's raw encoding, a cache key)
// needs to be compared for equality without repeatedly comparing the full
// bytes.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// IDString computes the xxHash64 digest of s without requiring the caller
// to first convert it to a []byte.
func IDString(s string) uint64 {
	return xxhash.Sum64String(s)
}
