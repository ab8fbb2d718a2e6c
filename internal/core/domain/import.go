package domain

import (
	"encoding/json"
	"fmt"

	"evm_tx_encoder/internal/utils"
)

// JSON field names understood by ImportFields.
const (
	JSONFieldTo                   = "to"
	JSONFieldNonce                = "nonce"
	JSONFieldValue                = "value"
	JSONFieldGasLimit             = "gasLimit"
	JSONFieldMaxPriorityFeePerGas = "maxPriorityFeePerGas"
	JSONFieldMaxFeePerGas         = "maxFeePerGas"
	JSONFieldChainID              = "chainId"
	JSONFieldInput                = "input"
	JSONFieldAccessList           = "accessList"
)

// ImportJSON decodes a JSON object and passes it to ImportFields.
func ImportJSON(data []byte) (*Transaction, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	return ImportFields(fields)
}

// ImportFields builds a Transaction from string-valued fields, each decimal or "0x"-hex.
//
// nonce, value, gasLimit, maxPriorityFeePerGas, maxFeePerGas and chainId are required. A missing
// or null to (or an empty string) means contract creation; a malformed to is an error. input is
// optional hex. accessList is never imported; use HasAccessList to detect inputs that carry one.
func ImportFields(fields map[string]any) (*Transaction, error) {
	b := NewTransactionBuilder()

	to, ok, err := stringField(fields, JSONFieldTo)
	if err != nil {
		return nil, err
	}
	if ok && to != "" {
		addr, err := utils.ParseAddress(to)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", JSONFieldTo, err)
		}
		b.To(addr)
	}

	nonce, err := requiredUint64(fields, JSONFieldNonce)
	if err != nil {
		return nil, err
	}
	value, err := requiredUint128(fields, JSONFieldValue)
	if err != nil {
		return nil, err
	}
	gasLimit, err := requiredUint128(fields, JSONFieldGasLimit)
	if err != nil {
		return nil, err
	}
	tip, err := requiredUint128(fields, JSONFieldMaxPriorityFeePerGas)
	if err != nil {
		return nil, err
	}
	feeCap, err := requiredUint128(fields, JSONFieldMaxFeePerGas)
	if err != nil {
		return nil, err
	}
	chainID, err := requiredUint64(fields, JSONFieldChainID)
	if err != nil {
		return nil, err
	}

	input, ok, err := stringField(fields, JSONFieldInput)
	if err != nil {
		return nil, err
	}
	if ok {
		data, err := utils.DecodeHex(input)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", JSONFieldInput, err)
		}
		b.Input(data)
	}

	return b.Nonce(nonce).
		Value(value).
		GasLimit(gasLimit).
		MaxPriorityFeePerGas(tip).
		MaxFeePerGas(feeCap).
		ChainID(chainID).
		Build()
}

// HasAccessList reports whether fields carry a non-empty accessList, which ImportFields drops.
func HasAccessList(fields map[string]any) bool {
	switch v := fields[JSONFieldAccessList].(type) {
	case nil:
		return false
	case []any:
		return len(v) > 0
	case string:
		return v != "" && v != "[]"
	default:
		return true
	}
}

// stringField returns the named field, whether it was present and non-null, and an error if it is not a string.
func stringField(fields map[string]any, name string) (string, bool, error) {
	raw, ok := fields[name]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, fmt.Errorf("%w: field '%s' must be a string, got %T", ErrMalformedImport, name, raw)
	}
	return s, true, nil
}

func requiredString(fields map[string]any, name string) (string, error) {
	s, ok, err := stringField(fields, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: required field '%s' is missing", ErrMalformedImport, name)
	}
	return s, nil
}

func requiredUint64(fields map[string]any, name string) (uint64, error) {
	s, err := requiredString(fields, name)
	if err != nil {
		return 0, err
	}
	v, err := utils.ParseUint64(s)
	if err != nil {
		return 0, fmt.Errorf("field '%s': %w", name, err)
	}
	return v, nil
}

func requiredUint128(fields map[string]any, name string) (Uint128, error) {
	s, err := requiredString(fields, name)
	if err != nil {
		return Uint128{}, err
	}
	v, err := ParseUint128(s)
	if err != nil {
		return Uint128{}, fmt.Errorf("field '%s': %w", name, err)
	}
	return v, nil
}
