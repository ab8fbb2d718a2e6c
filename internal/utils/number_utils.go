// Package utils provides the field parsers that turn loosely-typed string input into
// fixed-width integers, byte buffers and addresses.
package utils

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// HexPrefix selects base-16 parsing when it leads a numeric token.
const HexPrefix = "0x"

var (
	// ErrInvalidNumber indicates that a token is not a valid decimal or hex number for its target width.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrNumberOverflow indicates that a token is well-formed but does not fit the target width.
	ErrNumberOverflow = errors.New("number overflows target width")
)

// ParseUint64 parses a decimal or "0x"-prefixed hex token into a uint64.
func ParseUint64(token string) (uint64, error) {
	digits, base, err := splitNumber(token)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %w: '%s' does not fit in 64 bits", ErrInvalidNumber, ErrNumberOverflow, token)
		}
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidNumber, token)
	}
	return v, nil
}

// ParseUint128 parses a decimal or "0x"-prefixed hex token into a value of at most 128 bits.
func ParseUint128(token string) (*uint256.Int, error) {
	digits, base, err := splitNumber(token)
	if err != nil {
		return nil, err
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidNumber, token)
	}
	if n.BitLen() > 128 {
		return nil, fmt.Errorf("%w: %w: '%s' does not fit in 128 bits", ErrInvalidNumber, ErrNumberOverflow, token)
	}

	v, _ := uint256.FromBig(n)
	return v, nil
}

// splitNumber strips the hex prefix and checks that every remaining character is a digit of the selected base.
func splitNumber(token string) (digits string, base int, err error) {
	if token == "" {
		return "", 0, fmt.Errorf("%w: empty string", ErrInvalidNumber)
	}

	digits, base = token, 10
	if strings.HasPrefix(token, HexPrefix) {
		digits, base = token[len(HexPrefix):], 16
		if digits == "" {
			return "", 0, fmt.Errorf("%w: hex string is too short '%s'", ErrInvalidNumber, token)
		}
	}

	for _, c := range digits {
		if !isDigit(c, base) {
			return "", 0, fmt.Errorf("%w: unexpected character %q in '%s'", ErrInvalidNumber, c, token)
		}
	}
	return digits, base, nil
}

func isDigit(c rune, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}
