package domain

import "github.com/ethereum/go-ethereum/common"

// Signature is the externally produced (v, r, s) triple. r and s are big-endian integers of any width;
// they are serialized exactly as given.
type Signature struct {
	V uint64
	R []byte
	S []byte
}

// NewSignature creates a Signature holding copies of r and s.
func NewSignature(v uint64, r, s []byte) Signature {
	return Signature{V: v, R: common.CopyBytes(r), S: common.CopyBytes(s)}
}
