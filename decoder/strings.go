package decoder

import (
	"fmt"

	"github.com/dvstate/cbor/errs"
)

// decodeString is L5: it turns a byte-string or text-string head into an
// Item, assembling indefinite-length chunks through the configured
// StringAllocator when needed (spec §4.3). h's head byte has already been
// consumed; the cursor sits at the first content byte (definite form) or
// the first chunk's head (indefinite form).
func (d *Decoder) decodeString(h head) (Item, error) {
	itemType := TypeByteString
	if h.major == majorTextString {
		itemType = TypeTextString
	}

	if !h.argIndefinite {
		return d.decodeDefiniteString(h.major, itemType, h.arg)
	}

	if d.disableIndefStrings {
		return Item{}, errs.ErrIndefLenStringsDisabled
	}

	return d.decodeIndefiniteString(h.major, itemType)
}

func (d *Decoder) decodeDefiniteString(major majorType, itemType ItemType, length uint64) (Item, error) {
	if length > uint64(maxInt) {
		return Item{}, errs.ErrStringTooLong
	}

	n := int(length)
	if d.cursor+n > d.bufEnd {
		return Item{}, errs.ErrHitEnd
	}

	src := d.data[d.cursor : d.cursor+n]
	d.cursor += n

	if !d.copyAllStrings {
		return Item{Type: itemType, Bytes: src}, nil
	}

	if d.allocator == nil {
		return Item{}, errs.ErrNoStringAllocator
	}

	buf, err := d.allocator.Allocate(n)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %v", errs.ErrStringAllocate, err)
	}
	copy(buf, src)

	return Item{Type: itemType, Bytes: buf, AllocatedValue: true}, nil
}

// decodeIndefiniteString assembles chunks until a break byte, following the
// teacher's grow-in-place ByteBuffer pattern via the StringAllocator
// interface: Allocate on the first chunk, Reallocate to extend on each
// subsequent chunk.
func (d *Decoder) decodeIndefiniteString(major majorType, itemType ItemType) (Item, error) {
	if d.allocator == nil {
		return Item{}, errs.ErrNoStringAllocator
	}

	var buf []byte
	have := 0
	started := false

	for {
		if d.cursor >= d.bufEnd {
			return Item{}, errs.ErrHitEnd
		}

		if d.data[d.cursor] == 0xFF {
			d.cursor++
			break
		}

		ch, err := d.decodeHead()
		if err != nil {
			return Item{}, err
		}

		if ch.major != major || ch.argIndefinite {
			return Item{}, errs.ErrIndefiniteStringChunk
		}

		if ch.arg > uint64(maxInt) {
			return Item{}, errs.ErrStringTooLong
		}
		n := int(ch.arg)

		if d.cursor+n > d.bufEnd {
			return Item{}, errs.ErrHitEnd
		}

		var err2 error
		if !started {
			buf, err2 = d.allocator.Allocate(n)
			started = true
		} else {
			prev := buf[:have]
			buf, err2 = d.allocator.Reallocate(prev, have+n)
			if err2 != nil {
				d.allocator.Free(prev)
			}
		}
		if err2 != nil {
			return Item{}, fmt.Errorf("%w: %v", errs.ErrStringAllocate, err2)
		}

		copy(buf[have:have+n], d.data[d.cursor:d.cursor+n])
		have += n
		d.cursor += n
	}

	if !started {
		// zero chunks: "" or b''. Still needs an allocation so the returned
		// slice is non-nil and owned, per Allocate's contract.
		var err error
		buf, err = d.allocator.Allocate(0)
		if err != nil {
			return Item{}, fmt.Errorf("%w: %v", errs.ErrStringAllocate, err)
		}
	}

	return Item{Type: itemType, Bytes: buf[:have], AllocatedValue: true}, nil
}
