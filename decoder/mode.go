package decoder

// Mode selects the conformance profile(s) a Decoder enforces while
// traversing input (spec §6 "Conformance profiles"). It is a bitmask rather
// than a single enum, following the teacher's packed-flags convention
// (section.NumericFlag.Options), because the profiles layer: CDE implies
// Preferred, and dCBOR implies CDE.
type Mode uint16

const (
	// ModeNormal accepts any well-formed CBOR. The zero value.
	ModeNormal Mode = 0

	// ModeMapStringsOnly requires every map label to be a text string.
	ModeMapStringsOnly Mode = 1 << iota

	// ModeMapAsArray surfaces maps as flat arrays of 2*count items instead
	// of pairing labels with values.
	ModeMapAsArray

	// ModePreferred requires shortest-form arguments and forbids
	// indefinite-length items.
	ModePreferred

	// ModeCDE additionally requires sorted, unique map labels. Implies
	// ModePreferred.
	ModeCDE

	// ModeDCBOR additionally forbids undefined, restricts simple values to
	// {false, true, null}, and requires numeric canonicalization. Implies
	// ModeCDE.
	ModeDCBOR

	// ModeV1Compat pre-registers the default tag-content decoder table
	// (DefaultTagDecoderTable) unless WithTagDecoders supplies one. No mode
	// rejects items for unprocessed tag numbers during decoding; that check
	// is Decoder.CheckTagsConsumed, which callers invoke in any mode.
	ModeV1Compat
)

// RequiresPreferred reports whether argument shortest-form and
// indefinite-length checks are active.
func (m Mode) RequiresPreferred() bool {
	return m&(ModePreferred|ModeCDE|ModeDCBOR) != 0
}

// RequiresCDE reports whether map-label sort-order and uniqueness checks
// are active.
func (m Mode) RequiresCDE() bool {
	return m&(ModeCDE|ModeDCBOR) != 0
}

// RequiresDCBOR reports whether numeric canonicalization and simple-value
// restriction are active.
func (m Mode) RequiresDCBOR() bool {
	return m&ModeDCBOR != 0
}

// MapAsArray reports whether maps surface as flat arrays.
func (m Mode) MapAsArray() bool {
	return m&ModeMapAsArray != 0
}

// MapStringsOnly reports whether non-text-string map labels are rejected.
func (m Mode) MapStringsOnly() bool {
	return m&ModeMapStringsOnly != 0
}

// V1Compat reports whether v1-compatibility behavior is active.
func (m Mode) V1Compat() bool {
	return m&ModeV1Compat != 0
}
