package common

import (
	"golang.org/x/crypto/sha3"
)

// Hash is a 32-byte Keccak256 digest.
type Hash [32]byte

// Keccak256 computes the Keccak256 digest of the given data using a fresh
// hasher instance. Derivations must never share a hasher, since an
// accumulating hasher would make each digest depend on all preceding calls.
func Keccak256(data ...[]byte) Hash {
	hasher := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hasher.Write(d)
	}
	var res Hash
	copy(res[:], hasher.Sum(nil))
	return res
}
