// Package labelhash provides a cheap way to notice byte-identical CBOR map
// labels while decoding.
//
// Each label's encoded byte range is hashed with xxHash64 into a small
// seen-set keyed by hash; only on a hash collision does the set fall back
// to an exact byte comparison of the two candidate ranges, the same "cheap
// key, exact check on collision" split the teacher's internal/hash package
// uses to turn a metric name into a map key. In CDE mode the decoder's
// FindByLabels uses it to tell whether two entries matching one query carry
// byte-identical encoded labels; the sequential CDE sorted/unique-label
// check compares each label with the previous one and does not use it.
package labelhash

import (
	"bytes"

	"github.com/dvstate/cbor/internal/hash"
)

// Sum returns the xxHash64 digest of an encoded label's raw bytes, via the
// same hash.ID the rest of the module uses for cheap byte-range keys.
// It is deterministic across calls and architectures, matching the
// requirement that CDE-mode duplicate detection compare encoded label bytes
// exactly, not the decoded label value.
func Sum(encodedLabel []byte) uint64 {
	return hash.ID(encodedLabel)
}

// Seen tracks label-bytes hashes observed so far within one map traversal.
// It is bounded to a single scan of one map: FindByLabels constructs a
// fresh Seen per query on each call, matching the map-search subsystem's
// per-container snapshot/restore discipline.
type Seen struct {
	byHash map[uint64][][]byte
}

// NewSeen creates an empty Seen set sized for a map with the given number of
// entries, to avoid growing the underlying map repeatedly.
func NewSeen(expectedEntries int) *Seen {
	if expectedEntries < 0 {
		expectedEntries = 0
	}

	return &Seen{byHash: make(map[uint64][][]byte, expectedEntries)}
}

// CheckAndAdd reports whether encodedLabel is byte-identical to a label
// already added to the set. If it is not a duplicate, it is added and false
// is returned; if it is, true is returned and the set is left unchanged.
func (s *Seen) CheckAndAdd(encodedLabel []byte) bool {
	h := Sum(encodedLabel)

	for _, existing := range s.byHash[h] {
		if bytes.Equal(existing, encodedLabel) {
			return true
		}
	}

	s.byHash[h] = append(s.byHash[h], encodedLabel)

	return false
}
