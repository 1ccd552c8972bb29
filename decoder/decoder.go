// Package decoder implements the borrowed-slice, non-heap-allocating CBOR
// decoder: a Decoder is initialized once over an input buffer and then
// driven item-by-item via GetNext/PeekNext, optionally narrowing into
// bounded maps/arrays/bstr-wrapped CBOR via the Enter*/Exit* API.
//
// The decoder is organized in layers, innermost first, the same way the
// teacher's blob package separates its numeric codec from its section
// header from its pool-backed buffer management:
//
//	L6 head.go / atom.go   - single head + atomic item decode
//	L5 strings.go          - indefinite-length string assembly
//	L4 tags.go             - tag-number aggregation
//	L3 mapentry.go         - map-entry label/value pairing
//	L2 decoder.go          - nesting traversal, ascend, GetNext/PeekNext
//	L1 dispatch.go         - registered tag-content decoders
//
// A Decoder is not safe for concurrent use; callers needing concurrent
// decode run one Decoder per goroutine, each over its own buffer.
package decoder

import (
	"github.com/dvstate/cbor/alloc"
	"github.com/dvstate/cbor/errs"
	"github.com/dvstate/cbor/internal/options"
)

// NumMappedTags bounds the decoder's tag-number mapping table: tag numbers
// above LastUnmappedTag are assigned a compact index the first time they are
// seen and stored on items as that index; later occurrences of the same
// number (e.g. repeated COSE tags across an array of signed items) reuse
// it. The spec leaves both constants to the implementation.
const (
	NumMappedTags   = 16
	LastUnmappedTag = 65535
)

// Option configures a Decoder at construction time.
type Option = options.Option[*Decoder]

// Decoder holds all state for one decode pass over a single input buffer.
type Decoder struct {
	data   []byte
	cursor int
	bufEnd int // narrows when inside bstr-wrapped CBOR; see nest frames

	nest nestingStack
	mode Mode

	// err is the sticky error (spec §7): once set by any failing call,
	// every subsequent GetNext/PeekNext/Enter*/Exit* call returns it
	// immediately without touching the cursor, until GetAndResetError
	// clears a recoverable one.
	err error

	allocator      alloc.StringAllocator
	copyAllStrings bool

	tagDecoders *TagDecoderTable

	tagMapNumbers [NumMappedTags]uint64
	tagMapLen     int

	// lastItem is the most recently decoded item, kept so GetNthTagNumberOfLast
	// can resolve tag numbers without the caller holding onto the Item itself.
	lastItem Item

	// feature toggles, all default-enabled (zero value = enabled) so the
	// zero Decoder{} behaves like ModeNormal with every feature on.
	disableTags                     bool
	disableIndefStrings              bool
	disableIndefArrays               bool
	disableAllFloat                  bool
	disableHalfPrecision             bool
	disableHWFloat                   bool
	disableExpMantissaTags           bool
	disableConformanceChecks         bool
	disablePreferredFloatHalfToDouble bool
	disableNonIntegerLabels          bool
}

// New constructs a Decoder over data in the given conformance Mode, applying
// opts in order. The returned Decoder is ready for GetNext.
func New(data []byte, mode Mode, opts ...Option) (*Decoder, error) {
	d := &Decoder{mode: mode}

	if err := options.Apply[*Decoder](d, opts...); err != nil {
		return nil, err
	}

	if mode.V1Compat() && d.tagDecoders == nil {
		d.tagDecoders = DefaultTagDecoderTable()
	}

	d.Init(data)

	return d, nil
}

// Init resets the Decoder to decode data from the beginning, discarding any
// prior position, nesting, and sticky error, but keeping its configuration
// (mode, allocator, tag decoders, feature toggles) intact. It is exposed so
// a long-lived Decoder can be reused across many input buffers without
// reapplying options (the same pattern as the teacher's blob.Blob.Reset).
func (d *Decoder) Init(data []byte) {
	d.data = data
	d.cursor = 0
	d.bufEnd = len(data)
	d.err = nil
	d.nest.reset(d.bufEnd)
	d.tagMapLen = 0
	d.lastItem = Item{}
}

// TagDecoders returns the Decoder's tag-content decoder table (nil if none
// is configured), so a caller can mutate it after construction — e.g. to
// Unregister a tag ModeV1Compat would otherwise interpret.
func (d *Decoder) TagDecoders() *TagDecoderTable {
	return d.tagDecoders
}

// --- functional options ---

// WithStringAllocator configures the allocator used for indefinite-length
// string assembly and (with WithCopyAllStrings) definite-length string
// copies. Required before decoding any indefinite-length string.
func WithStringAllocator(a alloc.StringAllocator) Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.allocator = a
	})
}

// WithCopyAllStrings makes every decoded string (not only indefinite-length
// ones) allocated via the configured StringAllocator rather than borrowed
// from the input buffer, so the Item's Bytes slice outlives the input
// buffer's lifetime.
func WithCopyAllStrings() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.copyAllStrings = true
	})
}

// WithTagDecoders installs a caller-provided tag-content decoder table,
// replacing the v1-compat default table if one would otherwise be
// installed.
func WithTagDecoders(t *TagDecoderTable) Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.tagDecoders = t
	})
}

// WithTagsDisabled rejects any tag number in the input (spec §6).
func WithTagsDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disableTags = true
	})
}

// WithIndefiniteStringsDisabled rejects indefinite-length strings.
func WithIndefiniteStringsDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disableIndefStrings = true
	})
}

// WithIndefiniteArraysDisabled rejects indefinite-length arrays and maps.
func WithIndefiniteArraysDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disableIndefArrays = true
	})
}

// WithAllFloatDisabled rejects every floating-point major-7 value,
// including half-precision.
func WithAllFloatDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disableAllFloat = true
	})
}

// WithHalfPrecisionDisabled rejects half-precision floats specifically,
// while still allowing single/double precision.
func WithHalfPrecisionDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disableHalfPrecision = true
	})
}

// WithHWFloatDisabled rejects single- and double-precision floats, leaving
// only half-precision (if not also disabled) decodable.
func WithHWFloatDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disableHWFloat = true
	})
}

// WithExpMantissaTagsDisabled rejects tag 4 (decimal-fraction) and tag 5
// (bigfloat) content decoding, surfacing them as plain tagged arrays
// instead.
func WithExpMantissaTagsDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disableExpMantissaTags = true
	})
}

// WithConformanceChecksDisabled skips the Preferred/CDE/dCBOR checks that
// Mode would otherwise request, while still applying any type-level
// transforms (e.g. MapAsArray). Useful for inspecting nonconformant input
// without per-item errors.
func WithConformanceChecksDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disableConformanceChecks = true
	})
}

// WithPreferredFloatHalfToDoubleDisabled changes Preferred-mode float
// shortest-form checking to compare against the value's natural width
// instead of promoting through half precision first.
func WithPreferredFloatHalfToDoubleDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disablePreferredFloatHalfToDouble = true
	})
}

// WithNonIntegerLabelsDisabled rejects map labels that are not integers,
// independent of ModeMapStringsOnly (which requires text strings instead).
func WithNonIntegerLabelsDisabled() Option {
	return options.NoError[*Decoder](func(d *Decoder) {
		d.disableNonIntegerLabels = true
	})
}

// --- sticky error state (spec §7) ---

// GetError returns the decoder's current sticky error, or nil.
func (d *Decoder) GetError() error {
	return d.err
}

// SetError forces the decoder into the sticky-error state. Intended for a
// caller-side validation failure (e.g. a map-search query rejected by
// application logic) that should halt further decoding the same way an
// internal error would.
func (d *Decoder) SetError(err error) {
	d.err = err
}

// GetAndResetError returns the sticky error and, if it is recoverable
// (errs.IsRecoverable), clears it so decoding may continue. An
// unrecoverable error is returned but left in place.
func (d *Decoder) GetAndResetError() error {
	err := d.err

	if err != nil && errs.IsRecoverable(err) {
		d.err = nil
	}

	return err
}

// IsNotWellFormedError reports whether the current sticky error signals a
// well-formedness violation in the input byte stream.
func (d *Decoder) IsNotWellFormedError() bool {
	return errs.IsNotWellFormed(d.err)
}

// IsUnrecoverableError reports whether the current sticky error leaves the
// decoder's position undefined for further decoding.
func (d *Decoder) IsUnrecoverableError() bool {
	return errs.IsUnrecoverable(d.err)
}

// --- position ---

// Tell returns the current byte offset into the original input buffer
// passed to Init, useful for correlating a decoded item with its source
// bytes (e.g. for diagnostic printing).
func (d *Decoder) Tell() int {
	return d.cursor
}

// NestLevel returns the current nesting depth, matching the NestLevel an
// item decoded right now would carry.
func (d *Decoder) NestLevel() uint8 {
	return d.nest.depth()
}

func (d *Decoder) fail(err error) error {
	d.err = err
	return err
}

// --- L2: GetNext / PeekNext ---

// GetNext decodes and returns the next item at the current nesting level,
// advancing the cursor past it. If err is non-nil, item is the zero Item
// (TypeNone) and the error has also been recorded as the sticky error
// (retrievable later via GetError).
func (d *Decoder) GetNext() (Item, error) {
	if d.err != nil {
		return Item{}, d.err
	}

	item, err := d.getNextUnchecked(false)
	if err != nil {
		return Item{}, d.fail(err)
	}

	d.lastItem = item

	return item, nil
}

// PeekNext decodes the next item without advancing the cursor or nesting
// state, so a following GetNext decodes the same item again. A sticky error
// from PeekNext is NOT recorded: peeking past malformed input is expected
// (e.g. probing ahead in a map search) and must not poison subsequent calls.
func (d *Decoder) PeekNext() (Item, error) {
	if d.err != nil {
		return Item{}, d.err
	}

	saved := *d
	item, err := d.getNextUnchecked(false)
	*d = saved

	return item, err
}

// getNextUnchecked is the shared engine behind GetNext/PeekNext, and
// (with enterBounded set) behind EnterArray/EnterMap: a
// bounded-entry call decodes exactly the same way GetNext would for a
// container item, but pushes the resulting frame via descendBounded instead
// of descend, so later GetNext calls inside it stop ascending at its
// boundary. It assumes d.err == nil and never touches d.err itself; callers
// decide whether to record the returned error as sticky.
func (d *Decoder) getNextUnchecked(enterBounded bool) (Item, error) {
	top := d.nest.top()

	if top.kind == frameContainer && top.bounded && top.boundedEnded {
		return Item{}, errs.ErrNoMoreItems
	}

	if top.kind == frameContainer && top.remaining == 0 && top.total != CountIndefinite {
		return Item{}, errs.ErrNoMoreItems
	}

	startLevel := d.nest.depth()

	atBreak, err := d.peekIsBreak()
	if err != nil {
		return Item{}, err
	}
	if atBreak {
		if top.kind != frameContainer || top.total != CountIndefinite {
			return Item{}, errs.ErrBadBreak
		}

		d.cursor++ // consume the break byte

		if top.bounded {
			// The frame stays on the stack until an explicit Exit* call;
			// boundedEnded makes later GetNext calls on this level report
			// ErrNoMoreItems as well instead of decoding past the break.
			top.boundedEnded = true
			return Item{}, errs.ErrNoMoreItems
		}

		// A break that ascent did not consume (e.g. one reached right
		// after an Exit* call): close the level and decode what follows.
		d.nest.current--
		d.ascendAfterItem()

		return d.getNextUnchecked(enterBounded)
	}

	inTrueMap := top.kind == frameContainer && top.ckind == containerMap

	var item Item
	switch {
	case top.pendingValueOnly:
		// seekToLabel left the cursor mid-pair, past the label, at the
		// value: decode exactly that value instead of a fresh pair.
		item, err = d.decodeOneItem()
		if err == nil {
			item.Label = top.pendingLabel
		}
		top.pendingValueOnly = false
		top.pendingLabel = Label{}
	case inTrueMap:
		item, err = d.decodeMapEntry()
	default:
		item, err = d.decodeOneItem()
	}
	if err != nil {
		return Item{}, err
	}

	item.NestLevel = startLevel

	if top.kind == frameContainer && top.total != CountIndefinite {
		top.remaining--
	}

	if !item.Type.IsContainer() {
		if enterBounded {
			return Item{}, errs.ErrUnexpectedType
		}

		item.NextNestLevel = d.ascendAfterItem()

		return item, nil
	}

	ck := containerArray
	switch item.Type {
	case TypeMap:
		ck = containerMap
	case TypeMapAsArray:
		ck = containerMapAsArray
	}

	if item.Count == CountIndefinite && d.disableIndefArrays {
		return Item{}, errs.ErrIndefLenArraysDisabled
	}

	switch {
	case enterBounded:
		if err := d.nest.descendBounded(ck, item.Count, d.cursor); err != nil {
			return Item{}, err
		}
		item.NextNestLevel = d.nest.depth()

	case item.Count != 0:
		if err := d.nest.descend(ck, item.Count, d.cursor); err != nil {
			return Item{}, err
		}
		item.NextNestLevel = d.ascendAfterItem()

	default:
		// Empty definite-length container outside bounded entry: no frame
		// to push, nesting depth is unchanged.
		item.NextNestLevel = startLevel
	}

	return item, nil
}

// ascendAfterItem pops every non-bounded container frame whose count has
// just been exhausted, or whose indefinite-length content ends at the next
// byte (consuming that break byte), cascading outward, and reports the
// resulting nesting depth. It halts at a bstr-wrapped frame or a bounded
// container frame
// (those close only via explicit Exit* calls), per spec §4.9's distinction
// between "whole stream" and "bounded" traversal.
//
// Concrete scenario 3 in the distilled spec (9f 01 82 02 03 ff) lists only
// the 2,3-array and its two ints as separate items and omits the outer
// indefinite array as an item in its own right; that appears to be a
// documentation omission rather than an intended asymmetry, since the inner
// array IS listed as an item at its own level, and the reference QCBOR
// implementation this spec traces to reports every container as an item
// including the outermost. This decoder follows the uniform rule: every
// container, outermost included, is surfaced as an item by GetNext.
func (d *Decoder) ascendAfterItem() uint8 {
	for {
		f := d.nest.top()

		if f.kind == frameBstrWrapped {
			return d.nest.depth()
		}

		if f.bounded {
			return d.nest.depth()
		}

		if f.total == CountIndefinite {
			if d.cursor >= d.bufEnd || d.data[d.cursor] != 0xFF {
				return d.nest.depth()
			}
			d.cursor++ // the break closes this level
		} else if f.remaining > 0 {
			return d.nest.depth()
		}

		if d.nest.current == 0 {
			return 0
		}

		d.nest.current--
	}
}

// peekIsBreak reports whether the next byte is a break (major 7, additional
// info 31) without consuming it.
func (d *Decoder) peekIsBreak() (bool, error) {
	if d.cursor >= d.bufEnd {
		return false, nil
	}

	return d.data[d.cursor] == 0xFF, nil
}
