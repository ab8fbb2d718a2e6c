package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// ErrInvalidHex indicates a byte-buffer hex string with odd length or non-hex characters.
	ErrInvalidHex = errors.New("invalid hex data")

	// ErrInvalidAddress indicates that a string is not 20 bytes of hex.
	ErrInvalidAddress = errors.New("invalid ethereum address format")
)

// DecodeHex decodes a hex string with an optional "0x" prefix into raw bytes.
// An empty string (or a bare prefix) yields an empty, non-nil buffer.
func DecodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, HexPrefix) {
		s = HexPrefix + s
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

// ParseAddress converts a 40-digit hex string, with or without "0x", into an address.
// Checksum casing is not verified.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: '%s'", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
