package common

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func TestKeccak256_IsDeterministic(t *testing.T) {
	require := require.New(t)

	data := []byte("hello")
	require.Equal(Keccak256(data), Keccak256(data))
	require.NotEqual(Keccak256(data), Keccak256([]byte("world")))
}

func TestKeccak256_SplitInputEqualsJointInput(t *testing.T) {
	require := require.New(t)

	joint := Keccak256([]byte("hello world"))
	split := Keccak256([]byte("hello "), []byte("world"))
	require.Equal(joint, split)
}

func TestKeccak256_EmptyInputHasKnownDigest(t *testing.T) {
	// The Keccak256 digest of the empty string is a well-known constant,
	// pinning the hash function choice across releases.
	const want = "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	got := Keccak256()
	require.Equal(t, want, hexutil.Encode(got[:]))
}
