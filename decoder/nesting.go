package decoder

import "github.com/dvstate/cbor/errs"

// MaxNesting bounds the depth of the nesting stack. The spec leaves this to
// the implementation but requires at least 4 to cover realistic COSE/CWT
// structures; 16 matches the reference implementation's "small, ~10-16"
// guidance with headroom for deeply wrapped CWT claims.
const MaxNesting = 16

type frameKind uint8

const (
	frameContainer frameKind = iota
	frameBstrWrapped
)

type containerKind uint8

const (
	containerArray containerKind = iota
	containerMap
	containerMapAsArray
)

// frame is one level of the nesting stack (spec §3 "Nesting frame").
type frame struct {
	kind frameKind

	// frameContainer fields.
	ckind        containerKind
	remaining    int // CountIndefinite, or a definite count counting down to 0
	total        int // original definite count, used to reset on Rewind
	startOffset  int // input offset of the first content item
	bounded      bool
	boundedEnded bool // the bounded frame's own count has reached zero / its break was consumed

	// frameBstrWrapped fields.
	savedBufferEnd  int
	bstrStartOffset int

	// prevLabelRaw is the previous map entry's encoded label bytes, used by
	// CDE mode's sorted/unique label check (conformance.go's
	// checkMapOrdering). Valid only for frameContainer frames with
	// ckind == containerMap.
	prevLabelRaw []byte

	// pendingValueOnly is set by seekToLabel once it has positioned the
	// cursor past a map entry's label, at its value: the next GetNext (or
	// EnterArray/EnterMap) on this frame must decode exactly that value,
	// not a fresh label/value pair, and attaches pendingLabel to it before
	// both fields are cleared. Valid only for frameContainer frames with
	// ckind == containerMap.
	pendingValueOnly bool
	pendingLabel     Label
}

// nestingStack is the fixed-depth array of frames shared by L2, the bounded
// enter/exit API, and the map-search subsystem.
type nestingStack struct {
	frames  [MaxNesting]frame
	current int // index of the innermost frame
}

func (n *nestingStack) reset(bufEnd int) {
	n.frames[0] = frame{kind: frameBstrWrapped, savedBufferEnd: bufEnd, bstrStartOffset: 0}
	for i := 1; i < MaxNesting; i++ {
		n.frames[i] = frame{}
	}
	n.current = 0
}

func (n *nestingStack) top() *frame {
	return &n.frames[n.current]
}

func (n *nestingStack) depth() uint8 {
	return uint8(n.current)
}

// descend pushes a new container frame for an item's children. Callers must
// only invoke this for non-empty containers (definite count > 0, or
// indefinite); empty definite-length containers create no frame (spec
// §4.6).
func (n *nestingStack) descend(ckind containerKind, count, startOffset int) error {
	if n.current+1 >= MaxNesting {
		return errs.ErrNestingTooDeep
	}

	n.current++
	n.frames[n.current] = frame{
		kind:        frameContainer,
		ckind:       ckind,
		remaining:   count,
		total:       count,
		startOffset: startOffset,
	}

	return nil
}

// descendBounded is descend's counterpart for the bounded Enter API: it
// always marks the pushed frame bounded, and additionally handles the
// empty-container case (which descend alone skips) by pushing a frame that
// is immediately marked ended, so Exit has a symmetric frame to close (spec
// §4.9).
func (n *nestingStack) descendBounded(ckind containerKind, count, startOffset int) error {
	if n.current+1 >= MaxNesting {
		return errs.ErrNestingTooDeep
	}

	n.current++
	n.frames[n.current] = frame{
		kind:         frameContainer,
		ckind:        ckind,
		remaining:    count,
		total:        count,
		startOffset:  startOffset,
		bounded:      true,
		boundedEnded: count == 0,
	}

	return nil
}

func (n *nestingStack) pushBstrWrapped(savedBufferEnd, bstrStartOffset int) error {
	if n.current+1 >= MaxNesting {
		return errs.ErrNestingTooDeep
	}

	n.current++
	n.frames[n.current] = frame{
		kind:            frameBstrWrapped,
		savedBufferEnd:  savedBufferEnd,
		bstrStartOffset: bstrStartOffset,
	}

	return nil
}
