package domain_test

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evm_tx_encoder/internal/core/domain"
	"evm_tx_encoder/internal/utils"
)

func TestParseUint128(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantDec string
		wantHex string
		wantErr bool
	}{
		{name: "Hex", input: "0x10", wantDec: "16", wantHex: "0x10"},
		{name: "Decimal", input: "16", wantDec: "16", wantHex: "0x10"},
		{name: "Zero", input: "0", wantDec: "0", wantHex: "0x0"},
		{name: "Invalid", input: "0xg", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseUint128(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, utils.ErrInvalidNumber))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDec, got.String())
			assert.Equal(t, tt.wantHex, got.Hex())
		})
	}
}

func TestUint128_Bytes(t *testing.T) {
	assert.Empty(t, domain.NewUint128(0).Bytes(), "zero has no bytes")
	assert.Equal(t, []byte{0x01}, domain.NewUint128(1).Bytes())
	assert.Equal(t, []byte{0x52, 0x08}, domain.NewUint128(21000).Bytes())

	maxVal, err := domain.ParseUint128("0xffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	assert.Len(t, maxVal.Bytes(), 16)
}

func TestUint128FromUint256(t *testing.T) {
	fits := new(uint256.Int).Lsh(uint256.NewInt(1), 127)
	got, err := domain.Uint128FromUint256(fits)
	require.NoError(t, err)
	assert.Equal(t, fits.Dec(), got.String())

	tooBig := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	_, err = domain.Uint128FromUint256(tooBig)
	assert.True(t, errors.Is(err, domain.ErrUint128Overflow))
}

func TestUint128_CopiesAreIndependent(t *testing.T) {
	v := domain.NewUint128(5)
	wide := v.Uint256()
	wide.SetUint64(99)
	assert.Equal(t, "5", v.String())

	b := v.BigInt()
	b.SetInt64(77)
	assert.Equal(t, "5", v.String())

	assert.True(t, v.Equals(domain.NewUint128(5)))
	assert.False(t, v.Equals(domain.NewUint128(6)))
	assert.True(t, domain.Uint128{}.IsZero())
}
