package decoder

import (
	"errors"

	"github.com/dvstate/cbor/errs"
)

// EnterArray decodes the next item, requires it to be an array, and begins
// bounded traversal of its content (spec §4.9): GetNext calls inside it
// return only its own entries and never auto-ascend past it. ExitArray must
// be called to return to the enclosing level, whether or not every entry
// was consumed first.
func (d *Decoder) EnterArray() error {
	return d.enterContainer(TypeArray, TypeMapAsArray)
}

// EnterMap is EnterArray's counterpart for maps. In ModeMapAsArray the wire
// item is TypeMapAsArray instead, which EnterArray (not EnterMap) accepts;
// EnterMap always expects true label/value pairing.
func (d *Decoder) EnterMap() error {
	return d.enterContainer(TypeMap)
}

func (d *Decoder) enterContainer(want ...ItemType) error {
	if d.err != nil {
		return d.err
	}

	item, err := d.getNextUnchecked(true)
	if err != nil {
		return d.fail(err)
	}

	matched := false
	for _, w := range want {
		if item.Type == w {
			matched = true
			break
		}
	}

	if !matched {
		// getNextUnchecked already advanced the cursor past the item's head
		// before the type mismatch is seen here, and for a container of the
		// wrong kind descendBounded has already pushed its bounded frame,
		// which stays on the stack. The error is made sticky; a caller that
		// wants to recover first uses PeekNext to check the type before
		// calling EnterArray/EnterMap.
		return d.fail(errs.ErrUnexpectedType)
	}

	return nil
}

// exitContainer is ExitArray/ExitMap's shared implementation: it discards
// any entries the caller did not consume (by draining with GetNext, the
// same way a caller skipping a sub-structure would), then pops the bounded
// frame.
func (d *Decoder) exitContainer(wantBounded containerKind) error {
	if d.err != nil {
		return d.err
	}

	top := d.nest.top()
	ckindOK := top.ckind == wantBounded || (wantBounded == containerArray && top.ckind == containerMapAsArray)
	if top.kind != frameContainer || !top.bounded || !ckindOK {
		return d.fail(errs.ErrExitMismatch)
	}

	for {
		_, err := d.getNextUnchecked(false)
		if errors.Is(err, errs.ErrNoMoreItems) {
			break
		}
		if err != nil {
			return d.fail(err)
		}
	}

	if d.nest.current == 0 {
		return d.fail(errs.ErrExitMismatch)
	}
	d.nest.current--

	return nil
}

// ExitArray ends bounded traversal of the array most recently entered with
// EnterArray.
func (d *Decoder) ExitArray() error {
	return d.exitContainer(containerArray)
}

// ExitMap ends bounded traversal of the map most recently entered with
// EnterMap.
func (d *Decoder) ExitMap() error {
	return d.exitContainer(containerMap)
}

// EnterBstrWrapped decodes the next item, requires it to be a byte string
// (including one retyped by tag 24/63 dispatch to TypeWrappedCBOR /
// TypeWrappedCBORSeq), and narrows the visible input buffer to exactly that
// byte string's content, rewinding the cursor to its start so the following
// GetNext calls decode the CBOR embedded inside it (spec §4.9). The byte
// string must be backed by the original input buffer: one allocated via
// the StringAllocator (AllocatedValue set) cannot be entered, since
// narrowing the buffer only makes sense relative to the single shared input
// slice.
func (d *Decoder) EnterBstrWrapped() error {
	if d.err != nil {
		return d.err
	}

	item, err := d.decodeOneItem()
	if err != nil {
		return d.fail(err)
	}

	if item.Type != TypeByteString && item.Type != TypeWrappedCBOR && item.Type != TypeWrappedCBORSeq {
		return d.fail(errs.ErrUnexpectedType)
	}

	if item.AllocatedValue {
		return d.fail(errs.ErrCannotEnterAllocatedString)
	}

	contentStart := d.cursor - len(item.Bytes)
	contentEnd := d.cursor

	if err := d.nest.pushBstrWrapped(d.bufEnd, contentStart); err != nil {
		return d.fail(err)
	}

	d.bufEnd = contentEnd
	d.cursor = contentStart

	return nil
}

// ExitBstrWrapped ends traversal of the bstr-wrapped CBOR most recently
// entered with EnterBstrWrapped, discarding any bytes the caller did not
// consume, and restores the enclosing buffer boundary and cursor position
// (immediately after the original byte string).
func (d *Decoder) ExitBstrWrapped() error {
	if d.err != nil {
		return d.err
	}

	top := d.nest.top()
	if top.kind != frameBstrWrapped {
		return d.fail(errs.ErrExitMismatch)
	}

	resume := d.bufEnd
	d.bufEnd = top.savedBufferEnd
	d.cursor = resume

	if d.nest.current == 0 {
		return d.fail(errs.ErrExitMismatch)
	}
	d.nest.current--

	return nil
}
