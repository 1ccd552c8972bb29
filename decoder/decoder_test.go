package decoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvstate/cbor/alloc"
	"github.com/dvstate/cbor/errs"
)

func decodeOne(t *testing.T, data []byte, mode Mode, opts ...Option) Item {
	t.Helper()

	d, err := New(data, mode, opts...)
	require.NoError(t, err)

	item, err := d.GetNext()
	require.NoError(t, err)

	require.NoError(t, d.Finish())

	return item
}

func TestGetNext_UnsignedInt(t *testing.T) {
	item := decodeOne(t, []byte{0x00}, ModeNormal) // 0
	assert.Equal(t, TypeInt64, item.Type)
	assert.Equal(t, int64(0), item.Int64)

	item = decodeOne(t, []byte{0x18, 0xFF}, ModeNormal) // 255
	assert.Equal(t, TypeInt64, item.Type)
	assert.Equal(t, int64(255), item.Int64)
}

func TestGetNext_NegativeInt(t *testing.T) {
	item := decodeOne(t, []byte{0x20}, ModeNormal) // -1
	assert.Equal(t, TypeInt64, item.Type)
	assert.Equal(t, int64(-1), item.Int64)

	item = decodeOne(t, []byte{0x29}, ModeNormal) // -10
	assert.Equal(t, int64(-10), item.Int64)
}

func TestGetNext_NegInt65(t *testing.T) {
	// 0x3B + 8 bytes of 0xFF: -1-18446744073709551615 = -2^64, too small for int64.
	data := []byte{0x3B, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	item := decodeOne(t, data, ModeNormal)
	assert.Equal(t, TypeNegInt65, item.Type)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), item.NegOffset)
}

func TestGetNext_ByteString(t *testing.T) {
	data := []byte{0x44, 0x01, 0x02, 0x03, 0x04}
	item := decodeOne(t, data, ModeNormal)
	require.Equal(t, TypeByteString, item.Type)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, item.Bytes)
	assert.False(t, item.AllocatedValue)
}

func TestGetNext_TextString(t *testing.T) {
	data := []byte{0x65, 'h', 'e', 'l', 'l', 'o'}
	item := decodeOne(t, data, ModeNormal)
	require.Equal(t, TypeTextString, item.Type)
	assert.Equal(t, "hello", string(item.Bytes))
}

func TestGetNext_IndefiniteTextString(t *testing.T) {
	// (_ "ab", "cd")
	data := []byte{0x7F, 0x62, 'a', 'b', 0x62, 'c', 'd', 0xFF}
	d, err := New(data, ModeNormal, WithStringAllocator(alloc.NewPoolAllocator(0)))
	require.NoError(t, err)

	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, TypeTextString, item.Type)
	assert.Equal(t, "abcd", string(item.Bytes))
	assert.True(t, item.AllocatedValue)

	require.NoError(t, d.Finish())
}

func TestGetNext_IndefiniteStringWithoutAllocator(t *testing.T) {
	data := []byte{0x7F, 0x62, 'a', 'b', 0xFF}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	_, err = d.GetNext()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNoStringAllocator)
}

func TestGetNext_Array(t *testing.T) {
	// [1, 2, 3]
	data := []byte{0x83, 0x01, 0x02, 0x03}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	arr, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, TypeArray, arr.Type)
	assert.Equal(t, 3, arr.Count)
	assert.Equal(t, uint8(0), arr.NestLevel)

	for i := int64(1); i <= 3; i++ {
		item, err := d.GetNext()
		require.NoError(t, err)
		assert.Equal(t, TypeInt64, item.Type)
		assert.Equal(t, i, item.Int64)
	}

	require.NoError(t, d.Finish())
}

func TestGetNext_Map(t *testing.T) {
	// {1: "a", 2: "b"}
	data := []byte{0xA2, 0x01, 0x61, 'a', 0x02, 0x61, 'b'}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	m, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, TypeMap, m.Type)
	assert.Equal(t, 2, m.Count)

	v1, err := d.GetNext()
	require.NoError(t, err)
	require.Equal(t, LabelInt64, v1.Label.Type)
	assert.Equal(t, int64(1), v1.Label.Int64)
	assert.Equal(t, "a", string(v1.Bytes))

	v2, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2.Label.Int64)
	assert.Equal(t, "b", string(v2.Bytes))

	require.NoError(t, d.Finish())
}

func TestGetNext_MapAsArrayMode(t *testing.T) {
	data := []byte{0xA1, 0x01, 0x02} // {1: 2}
	d, err := New(data, ModeMapAsArray)
	require.NoError(t, err)

	m, err := d.GetNext()
	require.NoError(t, err)
	require.Equal(t, TypeMapAsArray, m.Type)
	assert.Equal(t, 2, m.Count)

	k, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(1), k.Int64)
	assert.Equal(t, LabelNone, k.Label.Type)

	v, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Int64)

	require.NoError(t, d.Finish())
}

func TestGetNext_SimpleValuesAndFloats(t *testing.T) {
	assert.Equal(t, TypeBoolFalse, decodeOne(t, []byte{0xF4}, ModeNormal).Type)
	assert.Equal(t, TypeBoolTrue, decodeOne(t, []byte{0xF5}, ModeNormal).Type)
	assert.Equal(t, TypeNull, decodeOne(t, []byte{0xF6}, ModeNormal).Type)
	assert.Equal(t, TypeUndefined, decodeOne(t, []byte{0xF7}, ModeNormal).Type)

	// 1.5 as a double (0xFB + 8 bytes)
	data := []byte{0xFB, 0x3F, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	item := decodeOne(t, data, ModeNormal)
	assert.Equal(t, TypeDouble, item.Type)
	assert.InDelta(t, 1.5, item.Float64, 0.0001)
}

func TestGetNext_UnknownSimple(t *testing.T) {
	// major 7, AI 24, value 200: unassigned simple value.
	item := decodeOne(t, []byte{0xF8, 0xC8}, ModeNormal)
	assert.Equal(t, TypeUnknownSimple, item.Type)
	assert.Equal(t, byte(200), item.Simple)
}

func TestEnterArray_ExitArray(t *testing.T) {
	data := []byte{0x82, 0x01, 0x02, 0x03} // [1, 2] followed by a second top-level item, 3
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	require.NoError(t, d.EnterArray())
	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Int64)

	// Exit without consuming the second entry: ExitArray must drain it.
	require.NoError(t, d.ExitArray())

	item, err = d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.Int64)

	require.NoError(t, d.Finish())
}

func TestEnterArray_AcceptsMapAsArray(t *testing.T) {
	data := []byte{0xA1, 0x01, 0x02} // {1: 2}
	d, err := New(data, ModeMapAsArray)
	require.NoError(t, err)

	require.NoError(t, d.EnterArray(), "EnterArray must accept a map surfaced as TypeMapAsArray")

	k, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(1), k.Int64)

	require.NoError(t, d.ExitArray())
	require.NoError(t, d.Finish())
}

func TestEnterMap_RejectsArray(t *testing.T) {
	data := []byte{0x81, 0x01}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	err = d.EnterMap()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnexpectedType)
}

func TestFindByLabels(t *testing.T) {
	// {1: "one", "two": 2, 3: "three"}
	data := []byte{
		0xA3,
		0x01, 0x63, 'o', 'n', 'e',
		0x63, 't', 'w', 'o', 0x02,
		0x03, 0x65, 't', 'h', 'r', 'e', 'e',
	}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	require.NoError(t, d.EnterMap())

	results, err := d.FindByLabels([]MapQuery{
		{LabelType: LabelInt64, Int64: 3},
		{LabelType: LabelTextString, Bytes: []byte("two"), WantType: TypeInt64},
		{LabelType: LabelInt64, Int64: 99},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Found)
	assert.Equal(t, "three", string(results[0].Item.Bytes))

	assert.True(t, results[1].Found)
	assert.Equal(t, int64(2), results[1].Item.Int64)

	assert.False(t, results[2].Found)

	// FindByLabels must not move the cursor: the first entry is still next.
	entry, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.Label.Int64)

	require.NoError(t, d.ExitMap())
	require.NoError(t, d.Finish())
}

func TestFindByLabels_DuplicateLabel(t *testing.T) {
	// {1: "a", 1: "b"} -- byte-identical encoded labels.
	data := []byte{0xA2, 0x01, 0x61, 'a', 0x01, 0x61, 'b'}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	require.NoError(t, d.EnterMap())

	_, err = d.FindByLabels([]MapQuery{{LabelType: LabelInt64, Int64: 1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDuplicateLabel)
}

func TestFindByLabels_UnrelatedByteIdenticalLabelsNotFlagged(t *testing.T) {
	// {1: "a", 1: "b", 2: "c"}: the two byte-identical int64(1) labels are
	// never queried, so they must not spuriously trip duplicate detection.
	data := []byte{0xA3, 0x01, 0x61, 'a', 0x01, 0x61, 'b', 0x02, 0x61, 'c'}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	require.NoError(t, d.EnterMap())

	results, err := d.FindByLabels([]MapQuery{{LabelType: LabelInt64, Int64: 2}})
	require.NoError(t, err)
	require.True(t, results[0].Found)
	assert.Equal(t, "c", string(results[0].Item.Bytes))

	require.NoError(t, d.ExitMap())
	require.NoError(t, d.Finish())
}

func TestFinish_ExtraBytes(t *testing.T) {
	data := []byte{0x01, 0x02} // two top-level items
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	_, err = d.GetNext()
	require.NoError(t, err)

	err = d.Finish()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrExtraBytes)
}

func TestFinish_ArrayUnconsumed(t *testing.T) {
	data := []byte{0x81, 0x01}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	require.NoError(t, d.EnterArray())

	err = d.Finish()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrArrayOrMapUnconsumed)
}

func TestStickyError_LatchesAndBlocksFurtherDecoding(t *testing.T) {
	// Truncated byte string: declares 4 bytes, only 1 present.
	data := []byte{0x44, 0x01}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	_, err = d.GetNext()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrHitEnd)
	assert.True(t, d.IsNotWellFormedError())
	assert.True(t, d.IsUnrecoverableError())

	// Sticky: a second call returns the same error without touching state.
	_, err2 := d.GetNext()
	assert.Same(t, err, err2)
}

func TestPeekNext_DoesNotAdvanceOrStick(t *testing.T) {
	data := []byte{0x01, 0x02}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	peeked, err := d.PeekNext()
	require.NoError(t, err)
	assert.Equal(t, int64(1), peeked.Int64)
	assert.Equal(t, 0, d.Tell())

	got, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Int64)
}

func TestPreferredMode_RejectsNonShortestForm(t *testing.T) {
	// 0 encoded as a two-byte form (0x18 0x00) instead of the required
	// one-byte form.
	data := []byte{0x18, 0x00}
	d, err := New(data, ModePreferred)
	require.NoError(t, err)

	_, err = d.GetNext()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPreferredConformance)
}

func TestModeV1Compat_InstallsDefaultTagDecoders(t *testing.T) {
	// tag 0: RFC3339 date string
	data := []byte{0xC0, 0x74, '2', '0', '2', '1', '-', '0', '1', '-', '0', '1', 'T', '0', '0', ':', '0', '0', ':', '0', '0', 'Z'}
	d, err := New(data, ModeV1Compat)
	require.NoError(t, err)
	require.NotNil(t, d.TagDecoders())

	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, TypeDateString, item.Type)
	assert.False(t, item.HasTags(), "v1-compat tag decoder must consume the tag number on success")
}

func TestUnregisterTagDecoder(t *testing.T) {
	data := []byte{0xC0, 0x60} // tag 0, empty text string
	d, err := New(data, ModeV1Compat)
	require.NoError(t, err)

	d.TagDecoders().Unregister(0)

	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, TypeTextString, item.Type, "unregistered tag leaves the content type untouched")
	assert.True(t, item.HasTags())
	assert.Equal(t, 1, item.TagCount())
}

func TestCheckTagsConsumed(t *testing.T) {
	data := []byte{0xC6, 0x01} // tag 6 (no decoder registered for it), value 1
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	item, err := d.GetNext()
	require.NoError(t, err)

	err = d.CheckTagsConsumed(&item)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnprocessedTagNumber)
}

func TestGetAndResetError_ClearsOnlyRecoverable(t *testing.T) {
	d, err := New([]byte{0x01}, ModeNormal)
	require.NoError(t, err)

	d.SetError(errs.ErrLabelNotFound) // recoverable
	got := d.GetAndResetError()
	assert.ErrorIs(t, got, errs.ErrLabelNotFound)
	assert.NoError(t, d.GetError())

	d.SetError(errs.ErrHitEnd) // unrecoverable
	got = d.GetAndResetError()
	assert.ErrorIs(t, got, errs.ErrHitEnd)
	assert.ErrorIs(t, d.GetError(), errs.ErrHitEnd, "unrecoverable error must remain latched")
}

func TestInit_ReusesDecoderAcrossBuffers(t *testing.T) {
	d, err := New([]byte{0x01}, ModeNormal)
	require.NoError(t, err)

	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Int64)
	require.NoError(t, d.Finish())

	d.Init([]byte{0x02})
	item, err = d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.Int64)
	require.NoError(t, d.Finish())
}

func TestEnterBstrWrapped(t *testing.T) {
	// A byte string containing the single CBOR item 42.
	data := []byte{0x42, 0x18, 0x2A}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	require.NoError(t, d.EnterBstrWrapped())

	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(42), item.Int64)

	require.NoError(t, d.ExitBstrWrapped())
	require.NoError(t, d.Finish())
}

func TestEnterBstrWrapped_RejectsAllocatedString(t *testing.T) {
	data := []byte{0x5F, 0x42, 0x18, 0x2A, 0xFF} // indefinite byte string
	d, err := New(data, ModeNormal, WithStringAllocator(alloc.NewPoolAllocator(0)))
	require.NoError(t, err)

	item, err := d.PeekNext()
	require.NoError(t, err)
	assert.True(t, item.AllocatedValue)

	err = d.EnterBstrWrapped()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrCannotEnterAllocatedString)
}

func TestSequenceDecoding(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	var got []int64
	for {
		item, err := d.GetNext()
		if err != nil {
			break
		}
		got = append(got, item.Int64)

		if err := d.Finish(); err == nil {
			break
		} else if !errors.Is(err, errs.ErrExtraBytes) {
			t.Fatalf("unexpected Finish error: %v", err)
		}
		d.GetAndResetError()
	}

	assert.Equal(t, []int64{1, 2, 3}, got)
}
