// Package domain defines the dynamic-fee transaction value object, its builder and the JSON field import.
package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"evm_tx_encoder/internal/utils"
)

// Address is a raw 20-byte account address. Checksum casing is not validated at this layer.
type Address = common.Address

// StorageKey is a raw 32-byte storage slot key.
type StorageKey = common.Hash

// ErrInvalidAddressFormat indicates that the provided string is not a 20-byte hex address.
var ErrInvalidAddressFormat = utils.ErrInvalidAddress

// NewAddress parses a hex address, with or without the "0x" prefix.
func NewAddress(addr string) (Address, error) {
	return utils.ParseAddress(strings.TrimSpace(addr))
}

// NewStorageKey parses a hex storage key that must decode to exactly 32 bytes.
func NewStorageKey(key string) (StorageKey, error) {
	b, err := utils.DecodeHex(strings.TrimSpace(key))
	if err != nil {
		return StorageKey{}, err
	}
	if len(b) != common.HashLength {
		return StorageKey{}, fmt.Errorf("%w: storage key must be %d bytes, got %d",
			utils.ErrInvalidHex, common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}
