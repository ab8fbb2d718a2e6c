package domain_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evm_tx_encoder/internal/core/domain"
	"evm_tx_encoder/internal/utils"
)

func validFields() map[string]any {
	return map[string]any{
		"to":                   "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		"nonce":                "0",
		"value":                "10000000000000000",
		"gasLimit":             "21000",
		"maxPriorityFeePerGas": "1000000000",
		"maxFeePerGas":         "0x6fc23ac00",
		"chainId":              "1",
		"input":                "",
	}
}

func TestImportFields(t *testing.T) {
	tx, err := domain.ImportFields(validFields())
	require.NoError(t, err)

	require.NotNil(t, tx.To())
	assert.Equal(t, common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"), *tx.To())
	assert.Equal(t, uint64(0), tx.Nonce())
	assert.Equal(t, "10000000000000000", tx.Value().String())
	assert.Equal(t, "21000", tx.GasLimit().String())
	assert.Equal(t, "1000000000", tx.MaxPriorityFeePerGas().String())
	assert.Equal(t, "30000000000", tx.MaxFeePerGas().String())
	assert.Equal(t, uint64(1), tx.ChainID())
	assert.Empty(t, tx.Input())
	assert.Empty(t, tx.AccessList())
}

func TestImportJSON(t *testing.T) {
	raw := []byte(`{
		"to": "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		"nonce": "0x5",
		"value": "0",
		"gasLimit": "0x5208",
		"maxPriorityFeePerGas": "0",
		"maxFeePerGas": "1",
		"chainId": "0x1",
		"input": "0xa9059cbb",
		"accessList": [{"address": "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "storageKeys": []}]
	}`)

	tx, err := domain.ImportJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), tx.Nonce())
	assert.Equal(t, "21000", tx.GasLimit().String())
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, tx.Input())
	assert.Empty(t, tx.AccessList(), "access lists are never imported")
}

func TestImportJSON_NotAnObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"tx"`, `{`, ``} {
		_, err := domain.ImportJSON([]byte(raw))
		assert.True(t, errors.Is(err, domain.ErrMalformedImport), "input %q: %v", raw, err)
	}
}

func TestImportFields_MissingRequiredField(t *testing.T) {
	for _, field := range []string{"nonce", "value", "gasLimit", "maxPriorityFeePerGas", "maxFeePerGas", "chainId"} {
		t.Run(field, func(t *testing.T) {
			fields := validFields()
			delete(fields, field)

			_, err := domain.ImportFields(fields)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedImport))
			assert.False(t, errors.Is(err, utils.ErrInvalidNumber), "absence is not a parse error")
			assert.Contains(t, err.Error(), field)

			fields[field] = nil
			_, err = domain.ImportFields(fields)
			assert.True(t, errors.Is(err, domain.ErrMalformedImport), "null counts as missing")
		})
	}
}

func TestImportFields_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   any
		wantErr error
	}{
		{name: "Bad hex nonce", field: "nonce", value: "0xg", wantErr: utils.ErrInvalidNumber},
		{name: "Empty value", field: "value", value: "", wantErr: utils.ErrInvalidNumber},
		{name: "Chain id overflow", field: "chainId", value: "0x10000000000000000", wantErr: utils.ErrNumberOverflow},
		{name: "Fee overflow", field: "maxFeePerGas", value: "0x100000000000000000000000000000000", wantErr: utils.ErrNumberOverflow},
		{name: "Numeric JSON value", field: "gasLimit", value: float64(21000), wantErr: domain.ErrMalformedImport},
		{name: "Odd input", field: "input", value: "0xabc", wantErr: utils.ErrInvalidHex},
		{name: "Malformed recipient", field: "to", value: "0x1234", wantErr: utils.ErrInvalidAddress},
		{name: "Recipient not a string", field: "to", value: true, wantErr: domain.ErrMalformedImport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			fields[tt.field] = tt.value

			tx, err := domain.ImportFields(fields)
			assert.Nil(t, tx)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestImportFields_RecipientAbsentMeansContractCreation(t *testing.T) {
	for name, mutate := range map[string]func(map[string]any){
		"absent": func(f map[string]any) { delete(f, "to") },
		"null":   func(f map[string]any) { f["to"] = nil },
		"empty":  func(f map[string]any) { f["to"] = "" },
	} {
		t.Run(name, func(t *testing.T) {
			fields := validFields()
			mutate(fields)

			tx, err := domain.ImportFields(fields)
			require.NoError(t, err)
			assert.Nil(t, tx.To())
			assert.True(t, tx.IsContractCreation())
		})
	}
}

func TestImportFields_InputDefaultsToEmpty(t *testing.T) {
	fields := validFields()
	delete(fields, "input")

	tx, err := domain.ImportFields(fields)
	require.NoError(t, err)
	assert.NotNil(t, tx.Input())
	assert.Empty(t, tx.Input())
}

func TestHasAccessList(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "Absent", value: nil, want: false},
		{name: "Empty array", value: []any{}, want: false},
		{name: "Array with entry", value: []any{map[string]any{"address": "0x00"}}, want: true},
		{name: "Empty string", value: "", want: false},
		{name: "Empty array string", value: "[]", want: false},
		{name: "Non-empty string", value: "[{}]", want: true},
		{name: "Object", value: map[string]any{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			if tt.value != nil {
				fields["accessList"] = tt.value
			}
			assert.Equal(t, tt.want, domain.HasAccessList(fields))
		})
	}
}
