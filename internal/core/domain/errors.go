package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMandatoryFieldMissing indicates that Build was called before a mandatory field was set.
	ErrMandatoryFieldMissing = errors.New("mandatory field missing")

	// ErrMalformedImport indicates that a JSON import lacks a required field or is not a JSON object.
	ErrMalformedImport = errors.New("malformed transaction import")
)

// Builder field names reported by MandatoryFieldError.
const (
	FieldChainID      = "chain_id"
	FieldNonce        = "nonce"
	FieldGasLimit     = "gas_limit"
	FieldMaxFeePerGas = "max_fee_per_gas"
)

// MandatoryFieldError names the mandatory field a Build call was missing.
type MandatoryFieldError struct {
	Field string
}

func (e *MandatoryFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMandatoryFieldMissing, e.Field)
}

// Unwrap allows errors.Is(err, ErrMandatoryFieldMissing).
func (e *MandatoryFieldError) Unwrap() error {
	return ErrMandatoryFieldMissing
}
