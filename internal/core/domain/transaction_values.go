package domain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"evm_tx_encoder/internal/utils"
)

// ErrUint128Overflow indicates that a quantity does not fit in 128 bits.
var ErrUint128Overflow = errors.New("value exceeds 128 bits")

// Uint128 is an unsigned quantity of at most 128 bits, used for value, gas limit and fee fields.
// The zero value is 0.
type Uint128 struct {
	value uint256.Int
}

// NewUint128 creates a Uint128 from a uint64.
func NewUint128(v uint64) Uint128 {
	var u Uint128
	u.value.SetUint64(v)
	return u
}

// ParseUint128 parses a decimal or "0x"-prefixed hex string.
func ParseUint128(s string) (Uint128, error) {
	v, err := utils.ParseUint128(s)
	if err != nil {
		return Uint128{}, err
	}
	return Uint128{value: *v}, nil
}

// Uint128FromUint256 narrows a 256-bit integer, failing if it needs more than 128 bits.
func Uint128FromUint256(v *uint256.Int) (Uint128, error) {
	if v.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("%w: %s", ErrUint128Overflow, v.Hex())
	}
	return Uint128{value: *v}, nil
}

// Uint256 returns a copy of the quantity widened to 256 bits.
func (u Uint128) Uint256() *uint256.Int {
	v := u.value
	return &v
}

// BigInt returns the quantity as a new *big.Int.
func (u Uint128) BigInt() *big.Int {
	return u.value.ToBig()
}

// Bytes returns the minimal big-endian representation. Zero yields an empty slice.
func (u Uint128) Bytes() []byte {
	return u.value.Bytes()
}

// String returns the decimal representation.
func (u Uint128) String() string {
	return u.value.Dec()
}

// Hex returns the "0x"-prefixed hex representation without leading zeros.
func (u Uint128) Hex() string {
	return u.value.Hex()
}

// IsZero checks if the quantity is zero.
func (u Uint128) IsZero() bool {
	return u.value.IsZero()
}

// Equals checks if two quantities are equal.
func (u Uint128) Equals(other Uint128) bool {
	return u.value.Eq(&other.value)
}
