package utils_test

import (
	"errors"
	"testing"

	"evm_tx_encoder/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint64(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         uint64
		wantErr      bool
		wantOverflow bool
	}{
		{name: "Hex with prefix", input: "0x10", want: 16},
		{name: "Decimal", input: "16", want: 16},
		{name: "Zero", input: "0", want: 0},
		{name: "Hex zero", input: "0x0", want: 0},
		{name: "Uppercase hex digits", input: "0xFF", want: 255},
		{name: "Hex with leading zeros", input: "0x000a", want: 10},
		{name: "Max uint64 hex", input: "0xffffffffffffffff", want: ^uint64(0)},
		{name: "Max uint64 decimal", input: "18446744073709551615", want: ^uint64(0)},
		{name: "Invalid hex digit", input: "0xg", wantErr: true},
		{name: "Empty string", input: "", wantErr: true},
		{name: "Bare prefix", input: "0x", wantErr: true},
		{name: "Hex letters without prefix", input: "ff", wantErr: true},
		{name: "Uppercase prefix is not hex", input: "0X10", wantErr: true},
		{name: "Negative", input: "-1", wantErr: true},
		{name: "Plus sign", input: "+1", wantErr: true},
		{name: "Underscore", input: "1_000", wantErr: true},
		{name: "Whitespace", input: " 1", wantErr: true},
		{name: "Overflow decimal", input: "18446744073709551616", wantErr: true, wantOverflow: true},
		{name: "Overflow hex", input: "0x10000000000000000", wantErr: true, wantOverflow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.ParseUint64(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, utils.ErrInvalidNumber), "error should wrap ErrInvalidNumber")
				assert.Equal(t, tt.wantOverflow, errors.Is(err, utils.ErrNumberOverflow))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUint128(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		want         string
		wantErr      bool
		wantOverflow bool
	}{
		{name: "Hex with prefix", input: "0x10", want: "16"},
		{name: "Decimal", input: "16", want: "16"},
		{name: "One hundredth of an ether", input: "10000000000000000", want: "10000000000000000"},
		{name: "Above uint64", input: "0x10000000000000000", want: "18446744073709551616"},
		{
			name:  "Max uint128",
			input: "0xffffffffffffffffffffffffffffffff",
			want:  "340282366920938463463374607431768211455",
		},
		{name: "Leading zeros hex", input: "0x0000000000000000000000000000000000000001", want: "1"},
		{name: "Overflow", input: "0x100000000000000000000000000000000", wantErr: true, wantOverflow: true},
		{
			name:         "Overflow decimal",
			input:        "340282366920938463463374607431768211456",
			wantErr:      true,
			wantOverflow: true,
		},
		{name: "Invalid hex digit", input: "0xg", wantErr: true},
		{name: "Empty string", input: "", wantErr: true},
		{name: "Negative", input: "-5", wantErr: true},
		{name: "Decimal point", input: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.ParseUint128(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, utils.ErrInvalidNumber), "error should wrap ErrInvalidNumber")
				assert.Equal(t, tt.wantOverflow, errors.Is(err, utils.ErrNumberOverflow))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Dec())
		})
	}
}
