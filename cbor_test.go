package cbor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dvstate/cbor"
	"github.com/dvstate/cbor/decoder"
)

func TestDecode_SingleItem(t *testing.T) {
	item, err := cbor.Decode([]byte{0x01}, decoder.ModeNormal)
	require.NoError(t, err)
	require.Equal(t, decoder.TypeInt64, item.Type)
	require.Equal(t, int64(1), item.Int64)
}

func TestDecode_ExtraBytesRejected(t *testing.T) {
	_, err := cbor.Decode([]byte{0x01, 0x02}, decoder.ModeNormal)
	require.Error(t, err)
}

func TestDecode_Array(t *testing.T) {
	item, err := cbor.Decode([]byte{0x83, 0x01, 0x02, 0x03}, decoder.ModeNormal)
	require.NoError(t, err)
	require.Equal(t, decoder.TypeArray, item.Type)
	require.Equal(t, 3, item.Count)
}

func TestDecodeSequence(t *testing.T) {
	// Two concatenated top-level items: 1, then "a".
	data := []byte{0x01, 0x61, 'a'}

	items, err := cbor.DecodeSequence(data, decoder.ModeNormal)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, decoder.TypeInt64, items[0].Type)
	require.Equal(t, decoder.TypeTextString, items[1].Type)
	require.Equal(t, "a", string(items[1].Bytes))
}

func TestNewDecoder(t *testing.T) {
	d, err := cbor.NewDecoder([]byte{0xf6}, decoder.ModeNormal)
	require.NoError(t, err)

	item, err := d.GetNext()
	require.NoError(t, err)
	require.Equal(t, decoder.TypeNull, item.Type)
}
