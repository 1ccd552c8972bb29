package decoder

import (
	"github.com/dvstate/cbor/endian"
	"github.com/dvstate/cbor/errs"
)

// bigEndian reads CBOR's multi-byte arguments, which RFC 8949 §3 always
// encodes in network byte order regardless of host or configured encoding
// endianness (unlike the teacher's per-format configurable endian.Engine).
var bigEndian = endian.GetBigEndianEngine()

// majorType is the 3-bit major type field of a CBOR initial byte (RFC 8949
// §3).
type majorType byte

const (
	majorUnsignedInt majorType = 0
	majorNegativeInt majorType = 1
	majorByteString  majorType = 2
	majorTextString  majorType = 3
	majorArray       majorType = 4
	majorMap         majorType = 5
	majorTag         majorType = 6
	majorSimpleFloat majorType = 7
)

const aiIndefinite = 31

// head is L6's decode of one initial byte plus its argument bytes (spec
// §4.1). It does not interpret the argument's meaning: that is major-type
// specific and handled by atom.go, strings.go, and the L2 container logic.
type head struct {
	major         majorType
	info          byte
	arg           uint64
	argIndefinite bool
}

// decodeHead reads and consumes one CBOR head: the initial byte and any
// following argument bytes. The cursor is left positioned at the first byte
// of the item's content (if any).
func (d *Decoder) decodeHead() (head, error) {
	if d.cursor >= d.bufEnd {
		return head{}, errs.ErrHitEnd
	}

	ib := d.data[d.cursor]
	d.cursor++

	h := head{major: majorType(ib >> 5), info: ib & 0x1F}

	switch {
	case h.info < 24:
		h.arg = uint64(h.info)

	case h.info == 24:
		v, err := d.readArgBytes(1)
		if err != nil {
			return head{}, err
		}
		h.arg = v

	case h.info == 25:
		v, err := d.readArgBytes(2)
		if err != nil {
			return head{}, err
		}
		h.arg = v

	case h.info == 26:
		v, err := d.readArgBytes(4)
		if err != nil {
			return head{}, err
		}
		h.arg = v

	case h.info == 27:
		v, err := d.readArgBytes(8)
		if err != nil {
			return head{}, err
		}
		h.arg = v

	case h.info >= 28 && h.info <= 30:
		return head{}, errs.ErrUnsupported

	case h.info == aiIndefinite:
		if h.major == majorUnsignedInt || h.major == majorNegativeInt || h.major == majorTag {
			return head{}, errs.ErrBadInt
		}
		h.argIndefinite = true
	}

	if !d.disableConformanceChecks && d.mode.RequiresPreferred() {
		if err := d.checkHeadPreferred(h); err != nil {
			return head{}, err
		}
	}

	return h, nil
}

// checkHeadPreferred enforces RFC 8949 §4.2's preferred-serialization rule
// for every major type whose argument is a plain integer or length: major 7
// (floats) is checked separately in atom.go, where the decoded value itself
// determines the shortest representable width.
func (d *Decoder) checkHeadPreferred(h head) error {
	if h.major == majorSimpleFloat {
		return nil
	}

	if h.argIndefinite {
		return errs.ErrPreferredConformance
	}

	if h.info != shortestInfoFor(h.arg) {
		return errs.ErrPreferredConformance
	}

	return nil
}

// readArgBytes reads n big-endian bytes from the cursor as the head's
// argument, advancing the cursor past them.
func (d *Decoder) readArgBytes(n int) (uint64, error) {
	if d.cursor+n > d.bufEnd {
		return 0, errs.ErrHitEnd
	}

	buf := d.data[d.cursor : d.cursor+n]
	d.cursor += n

	switch n {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(bigEndian.Uint16(buf)), nil
	case 4:
		return uint64(bigEndian.Uint32(buf)), nil
	case 8:
		return bigEndian.Uint64(buf), nil
	default:
		panic("readArgBytes: unsupported width")
	}
}

// shortestInfoFor returns the additional-info value RFC 8949 §4.2's
// preferred-serialization rule requires for an integer/length argument of
// value v, used by checkHeadPreferred to detect non-shortest-form encodings.
func shortestInfoFor(v uint64) byte {
	switch {
	case v < 24:
		return byte(v)
	case v <= 0xFF:
		return 24
	case v <= 0xFFFF:
		return 25
	case v <= 0xFFFFFFFF:
		return 26
	default:
		return 27
	}
}
