// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	require := require.New(t)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	msg := []byte("counter call")

	sig := Sign(msg, priv)
	require.True(Verify(msg, priv.PublicKey(), sig))
	require.False(Verify([]byte("other message"), priv.PublicKey(), sig))

	tampered := sig
	tampered[0] ^= 0x1
	require.False(Verify(msg, priv.PublicKey(), tampered))
}

func TestDistinctKeys(t *testing.T) {
	require := require.New(t)

	a, err := GeneratePrivateKey()
	require.NoError(err)
	b, err := GeneratePrivateKey()
	require.NoError(err)
	require.NotEqual(a.PublicKey(), b.PublicKey())

	msg := []byte("counter call")
	require.False(Verify(msg, b.PublicKey(), Sign(msg, a)))
}
