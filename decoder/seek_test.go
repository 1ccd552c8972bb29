package decoder

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvstate/cbor/errs"
)

func TestSeekToLabelInt(t *testing.T) {
	// {1: "a", 2: "b"}
	data := []byte{0xA2, 0x01, 0x61, 0x61, 0x02, 0x61, 0x62}

	d, err := New(data, ModeNormal)
	require.NoError(t, err)
	require.NoError(t, d.EnterMap())

	require.NoError(t, d.SeekToLabelInt(2))
	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, TypeTextString, item.Type)
	assert.Equal(t, "b", string(item.Bytes))

	// SeekToLabelInt never advances the cursor observed via Tell beyond the
	// value it sought to, so the map is still positioned for a fresh seek.
	require.NoError(t, d.SeekToLabelInt(1))
	item, err = d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, "a", string(item.Bytes))

	require.NoError(t, d.ExitMap())
	require.NoError(t, d.Finish())
}

func TestSeekToLabelInt_NotFound(t *testing.T) {
	data := []byte{0xA1, 0x01, 0x61, 0x61} // {1: "a"}

	d, err := New(data, ModeNormal)
	require.NoError(t, err)
	require.NoError(t, d.EnterMap())

	err = d.SeekToLabelInt(99)
	assert.ErrorIs(t, err, errs.ErrLabelNotFound)
	assert.True(t, errs.IsRecoverable(err))
}

func TestSeekToLabelStr(t *testing.T) {
	// {"x": 1, "y": 2}
	data := []byte{0xA2, 0x61, 0x78, 0x01, 0x61, 0x79, 0x02}

	d, err := New(data, ModeNormal)
	require.NoError(t, err)
	require.NoError(t, d.EnterMap())

	require.NoError(t, d.SeekToLabelStr([]byte("y")))
	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.Int64)
}

func TestSeekToLabelStr_SkipsNestedArrayValue(t *testing.T) {
	// {1: [100, 101], 2: "target"}; the sought label follows an entry whose
	// value is itself a multi-element array, exercising skipValue's walk
	// past that array's full content rather than just its head.
	data := []byte{
		0xA2,
		0x01, 0x82, 0x18, 0x64, 0x18, 0x65,
		0x02, 0x66, 't', 'a', 'r', 'g', 'e', 't',
	}

	d, err := New(data, ModeNormal)
	require.NoError(t, err)
	require.NoError(t, d.EnterMap())

	require.NoError(t, d.SeekToLabelInt(2))
	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, TypeTextString, item.Type)
	assert.Equal(t, "target", string(item.Bytes))

	require.NoError(t, d.ExitMap())
	require.NoError(t, d.Finish())
}

func TestFindByLabels_SkipsNestedMapValue(t *testing.T) {
	// {1: {3: 4}, 2: 9}; FindByLabels for label 2 must skip past the
	// first entry's map-typed value in full, not just its head.
	data := []byte{
		0xA2,
		0x01, 0xA1, 0x03, 0x04,
		0x02, 0x09,
	}

	d, err := New(data, ModeNormal)
	require.NoError(t, err)
	require.NoError(t, d.EnterMap())

	results, err := d.FindByLabels([]MapQuery{
		{LabelType: LabelInt64, Int64: 2},
	})
	require.NoError(t, err)
	require.True(t, results[0].Found)
	assert.Equal(t, int64(9), results[0].Item.Int64)

	require.NoError(t, d.ExitMap())
	require.NoError(t, d.Finish())
}

func TestEnterMapFromMapByLabelInt(t *testing.T) {
	// {1: {2: 3}}
	data := []byte{0xA1, 0x01, 0xA1, 0x02, 0x03}

	d, err := New(data, ModeNormal)
	require.NoError(t, err)
	require.NoError(t, d.EnterMap())

	require.NoError(t, d.EnterMapFromMapByLabelInt(1))
	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.Label.Int64)
	assert.Equal(t, int64(3), item.Int64)

	require.NoError(t, d.ExitMap())
	require.NoError(t, d.ExitMap())
	require.NoError(t, d.Finish())
}

func TestEnterArrayFromMapByLabelInt(t *testing.T) {
	// {1: [7, 8]}
	data := []byte{0xA1, 0x01, 0x82, 0x07, 0x08}

	d, err := New(data, ModeNormal)
	require.NoError(t, err)
	require.NoError(t, d.EnterMap())

	require.NoError(t, d.EnterArrayFromMapByLabelInt(1))
	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.Int64)
	item, err = d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(8), item.Int64)

	require.NoError(t, d.ExitArray())
	require.NoError(t, d.ExitMap())
	require.NoError(t, d.Finish())
}

func TestRewind_ReplaysMapEntries(t *testing.T) {
	data := []byte{0xA2, 0x01, 0x0A, 0x02, 0x14} // {1: 10, 2: 20}

	d, err := New(data, ModeNormal)
	require.NoError(t, err)
	require.NoError(t, d.EnterMap())

	first, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(10), first.Int64)

	require.NoError(t, d.Rewind())

	replay, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, first.Label.Int64, replay.Label.Int64)
	assert.Equal(t, int64(10), replay.Int64)

	second, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(20), second.Int64)

	require.NoError(t, d.ExitMap())
	require.NoError(t, d.Finish())
}

func TestPartialFinish_ReportsOffsetWithoutDestruct(t *testing.T) {
	d, err := New([]byte{0x00, 0x01}, ModeNormal)
	require.NoError(t, err)

	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.Int64)

	offset, err := d.PartialFinish()
	require.NoError(t, err)
	assert.Equal(t, 1, offset)

	item, err = d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Int64)
}

func TestGetNextTagNumber(t *testing.T) {
	d, err := New([]byte{0xC1, 0x00}, ModeNormal) // tag(1)(0)
	require.NoError(t, err)

	tagNum, err := d.GetNextTagNumber()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tagNum)

	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.Int64)
}

func TestGetNthTagNumberOfItemAndLast(t *testing.T) {
	d, err := New([]byte{0xC1, 0xC2, 0x00}, ModeNormal) // tag(1)(tag(2)(0))
	require.NoError(t, err)

	item, err := d.GetNext()
	require.NoError(t, err)

	n0, ok := d.GetNthTagNumberOfItem(&item, 0)
	require.True(t, ok)
	assert.Equal(t, uint64(1), n0)

	n1, ok := d.GetNthTagNumberOfItem(&item, 1)
	require.True(t, ok)
	assert.Equal(t, uint64(2), n1)

	lastN0, ok := d.GetNthTagNumberOfLast(0)
	require.True(t, ok)
	assert.Equal(t, uint64(1), lastN0)
}

func TestMapTagNumber_TableOverflow(t *testing.T) {
	var data []byte
	for i := 0; i < NumMappedTags+1; i++ {
		tagNum := uint64(LastUnmappedTag) + 1 + uint64(i)

		head := make([]byte, 5)
		head[0] = 0xDA // major 6, 4-byte argument
		binary.BigEndian.PutUint32(head[1:], uint32(tagNum))

		data = append(data, head...)
	}

	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	for i := 0; i < NumMappedTags; i++ {
		_, err := d.GetNextTagNumber()
		require.NoError(t, err)
	}

	_, err = d.GetNextTagNumber()
	assert.ErrorIs(t, err, errs.ErrTooManyTags)
	assert.True(t, errs.IsUnrecoverable(err))
}
