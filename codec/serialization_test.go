// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Version uint8
	Count   uint64
	Data    []byte
}

func TestSerializeRoundTrip(t *testing.T) {
	require := require.New(t)

	in := testRecord{Version: 1, Count: 42, Data: []byte{0xa, 0xb}}
	raw, err := Serialize(in)
	require.NoError(err)

	out, err := Deserialize[testRecord](raw)
	require.NoError(err)
	require.Equal(in, *out)
}

// Records are written through pointers and read back as bare values, so
// both forms must produce identical bytes with no Option framing.
func TestSerializePointerMatchesValue(t *testing.T) {
	require := require.New(t)

	in := testRecord{Version: 1, Count: 42, Data: []byte{0xa, 0xb}}
	byValue, err := Serialize(in)
	require.NoError(err)
	byPointer, err := Serialize(&in)
	require.NoError(err)
	require.Equal(byValue, byPointer)

	// version byte + u64 count + u32 length prefix + 2 data bytes
	require.Len(byPointer, 1+8+4+2)

	out, err := Deserialize[testRecord](byPointer)
	require.NoError(err)
	require.Equal(in, *out)
}

func TestSerializeNilPointer(t *testing.T) {
	_, err := Serialize[*testRecord](nil)
	require.ErrorIs(t, err, ErrNilValue)
}
