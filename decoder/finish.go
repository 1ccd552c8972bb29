package decoder

import "github.com/dvstate/cbor/errs"

// Finish performs the end-of-decode checks (spec §4.11): every array, map,
// and bstr-wrapped level entered must have been fully exited (whether by
// auto-ascend or by an explicit Exit* call), and releases the configured
// StringAllocator's resources via Destruct exactly once.
//
// A CBOR sequence (RFC 8742) is decoded by calling GetNext repeatedly at
// the top level and treating ErrExtraBytes from Finish as expected rather
// than fatal; a single top-level item is decoded by calling GetNext once
// and then Finish, which reports ErrExtraBytes if bytes remain.
func (d *Decoder) Finish() error {
	if d.allocator != nil {
		defer d.allocator.Destruct()
	}

	if d.err != nil {
		return d.err
	}

	if d.nest.current != 0 {
		return d.fail(errs.ErrArrayOrMapUnconsumed)
	}

	if d.cursor < d.bufEnd {
		return d.fail(errs.ErrExtraBytes)
	}

	return nil
}

// PartialFinish reports the number of input bytes consumed so far without
// releasing the configured StringAllocator's resources, for a caller
// decoding a CBOR sequence (RFC 8742) that will call GetNext again on the
// same Decoder afterward. It still requires every entered container to
// have been exited.
func (d *Decoder) PartialFinish() (int, error) {
	if d.err != nil {
		return d.cursor, d.err
	}

	if d.nest.current != 0 {
		return d.cursor, d.fail(errs.ErrArrayOrMapUnconsumed)
	}

	return d.cursor, nil
}

// Rewind resets the innermost bounded container frame back to its first
// entry (spec §3's "total_count... used to reset for map re-traversal"),
// so a caller can run a second FindByLabels-style pass, or re-decode every
// entry with GetNext, without leaving and re-entering the container.
func (d *Decoder) Rewind() error {
	if d.err != nil {
		return d.err
	}

	top := d.nest.top()
	if top.kind != frameContainer || !top.bounded {
		return d.fail(errs.ErrExitMismatch)
	}

	top.remaining = top.total
	top.boundedEnded = top.total == 0
	top.pendingValueOnly = false
	top.pendingLabel = Label{}
	top.prevLabelRaw = nil
	d.cursor = top.startOffset

	return nil
}

// CheckTagsConsumed reports ErrUnprocessedTagNumber if item still carries
// tag numbers with no registered content decoder. The decoder never runs
// this check on its own, in any Mode: GetNext returns items with their
// unprocessed tag numbers attached (readable via TagAt), and a caller that
// treats them as an error calls CheckTagsConsumed after each GetNext.
func (d *Decoder) CheckTagsConsumed(item *Item) error {
	if item.HasTags() {
		return errs.ErrUnprocessedTagNumber
	}

	return nil
}
