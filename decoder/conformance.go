package decoder

import (
	"bytes"

	"github.com/dvstate/cbor/errs"
)

// checkFloat32Preferred enforces the Preferred/CDE/dCBOR rule that a
// single-precision float must not be used when the value round-trips
// exactly through half-precision (spec §4.7, "preferred serialization"
// extended to floats by RFC 8949 §4.2.2). Skipped when conformance checks
// are off or WithPreferredFloatHalfToDoubleDisabled is set; when float
// support itself is disabled, decodeSimpleOrFloat returns its error before
// this is reached.
func (d *Decoder) checkFloat32Preferred(f float32) error {
	if !d.mode.RequiresPreferred() || d.disableConformanceChecks || d.disablePreferredFloatHalfToDouble {
		return nil
	}

	if _, exact := float32ToHalfExact(f); exact {
		return errs.ErrPreferredConformance
	}

	return nil
}

// checkFloat64Preferred is checkFloat32Preferred's counterpart for
// double-precision values: a double must not be used when the value
// round-trips exactly through single precision (and, transitively, through
// half). WithPreferredFloatHalfToDoubleDisabled changes only the
// single/half comparison above; a double that fits in single is always
// non-preferred regardless of that option, since that option only concerns
// whether the half-precision promotion chain is used as the baseline.
func (d *Decoder) checkFloat64Preferred(v float64) error {
	if !d.mode.RequiresPreferred() || d.disableConformanceChecks {
		return nil
	}

	f := float32(v)
	if float64(f) == v {
		return errs.ErrPreferredConformance
	}

	return nil
}

// checkHalfNaNPayload enforces dCBOR's rejection of a half-precision NaN
// carrying a non-zero payload (spec line 78/154/293): only the canonical
// quiet NaN (bit pattern 0x7e00, no payload beyond the quiet bit itself) is
// accepted. This must run on the raw 16-bit argument before it is widened
// to float32/float64, since that widening collapses every distinct NaN
// payload into Go's single canonical NaN bit pattern.
func (d *Decoder) checkHalfNaNPayload(bits uint16) error {
	if !d.mode.RequiresDCBOR() || d.disableConformanceChecks {
		return nil
	}

	const (
		expMask  = 0x7C00
		mantMask = 0x03FF
		quietBit = 0x0200
	)

	exponent := bits & expMask
	mantissa := bits & mantMask

	if exponent != expMask || mantissa == 0 {
		return nil // not a NaN
	}

	if mantissa&^uint16(quietBit) != 0 {
		return errs.ErrDCBORConformance
	}

	return nil
}

// checkDCBORItem enforces dCBOR's simple-value restriction: only false,
// true, and null may appear as a simple value (RFC 8949's "undefined" and
// any unassigned simple number are forbidden), and floating-point values
// that are exactly representable as an integer must instead be encoded as
// that integer.
func (d *Decoder) checkDCBORItem(item *Item) error {
	switch item.Type {
	case TypeUndefined, TypeUnknownSimple:
		return errs.ErrDCBORConformance

	case TypeFloat, TypeDouble:
		if isExactInt64(item.Float64) {
			return errs.ErrDCBORConformance
		}
	}

	return nil
}

func isExactInt64(v float64) bool {
	if v != v || v < -9223372036854775808.0 || v >= 9223372036854775808.0 {
		return false
	}

	return float64(int64(v)) == v
}

// checkMapOrdering enforces CDE/dCBOR's requirement that a map's entries
// appear in strictly increasing bytewise order of their encoded labels, and
// that no two entries share byte-identical encoded labels (spec §4.7,
// §4.8's labelhash-based duplicate detection generalized to ordering). raw
// is the label's encoded byte span (head through content, tags included);
// prev is the previous entry's raw span, or nil for the first entry.
func checkMapOrdering(prev, raw []byte) error {
	if prev == nil {
		return nil
	}

	switch bytes.Compare(prev, raw) {
	case 0:
		return errs.ErrDuplicateLabel
	case 1:
		return errs.ErrUnsorted
	default:
		return nil
	}
}
