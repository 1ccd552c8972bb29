package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvstate/cbor/errs"
)

// deeplyNestedArrays builds n nested one-element arrays: [[[...0...]]].
func deeplyNestedArrays(n int) []byte {
	data := []byte{0x00} // innermost value: 0
	for i := 0; i < n; i++ {
		data = append([]byte{0x81}, data...) // array(1) prefix
	}
	return data
}

func TestNesting_WithinLimitSucceeds(t *testing.T) {
	data := deeplyNestedArrays(MaxNesting - 1)

	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	for i := 0; i < MaxNesting-1; i++ {
		item, err := d.GetNext()
		require.NoError(t, err)
		assert.Equal(t, TypeArray, item.Type)
	}

	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, TypeInt64, item.Type)

	require.NoError(t, d.Finish())
}

func TestNesting_ExceedsMaxNestingFails(t *testing.T) {
	data := deeplyNestedArrays(MaxNesting + 4)

	d, err := New(data, ModeNormal)
	require.NoError(t, err)

	var lastErr error
	for i := 0; i < MaxNesting+4; i++ {
		_, lastErr = d.GetNext()
		if lastErr != nil {
			break
		}
	}

	require.Error(t, lastErr)
	assert.ErrorIs(t, lastErr, errs.ErrNestingTooDeep)
	assert.True(t, errs.IsUnrecoverable(lastErr))
}

func TestMapStringsOnlyMode_RejectsIntegerLabel(t *testing.T) {
	data := []byte{0xA1, 0x01, 0x61, 0x61} // {1: "a"}, integer label

	d, err := New(data, ModeMapStringsOnly)
	require.NoError(t, err)

	require.NoError(t, d.EnterMap())

	_, err = d.GetNext()
	assert.ErrorIs(t, err, errs.ErrMapLabelType)
}

func TestMapStringsOnlyMode_AcceptsTextLabel(t *testing.T) {
	data := []byte{0xA1, 0x61, 0x61, 0x01} // {"a": 1}

	d, err := New(data, ModeMapStringsOnly)
	require.NoError(t, err)

	require.NoError(t, d.EnterMap())

	item, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, LabelTextString, item.Label.Type)
	assert.Equal(t, "a", string(item.Label.Bytes))

	require.NoError(t, d.ExitMap())
	require.NoError(t, d.Finish())
}
