package domain

import "github.com/ethereum/go-ethereum/common"

// TransactionBuilder accumulates transaction fields in any order. Setters may be called any number
// of times (last write wins) and return the builder for chaining. Mandatory fields are only checked
// by Build.
type TransactionBuilder struct {
	chainID              *uint64
	nonce                *uint64
	to                   *Address
	value                *Uint128
	input                []byte
	gasLimit             *Uint128
	maxFeePerGas         *Uint128
	maxPriorityFeePerGas *Uint128
	accessList           AccessList
}

// NewTransactionBuilder returns an empty builder.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{}
}

// ChainID sets the network identifier. Mandatory.
func (b *TransactionBuilder) ChainID(chainID uint64) *TransactionBuilder {
	b.chainID = &chainID
	return b
}

// Nonce sets the sender nonce. Mandatory.
func (b *TransactionBuilder) Nonce(nonce uint64) *TransactionBuilder {
	b.nonce = &nonce
	return b
}

// To sets the recipient.
func (b *TransactionBuilder) To(to Address) *TransactionBuilder {
	b.to = &to
	return b
}

// ClearTo removes a previously set recipient, making the transaction a contract creation.
func (b *TransactionBuilder) ClearTo() *TransactionBuilder {
	b.to = nil
	return b
}

// Value sets the amount transferred. Defaults to 0.
func (b *TransactionBuilder) Value(value Uint128) *TransactionBuilder {
	b.value = &value
	return b
}

// Input sets the call data or init code. Defaults to empty.
func (b *TransactionBuilder) Input(input []byte) *TransactionBuilder {
	b.input = common.CopyBytes(input)
	return b
}

// GasLimit sets the gas limit. Mandatory.
func (b *TransactionBuilder) GasLimit(gasLimit Uint128) *TransactionBuilder {
	b.gasLimit = &gasLimit
	return b
}

// MaxFeePerGas sets the fee cap. Mandatory.
func (b *TransactionBuilder) MaxFeePerGas(maxFeePerGas Uint128) *TransactionBuilder {
	b.maxFeePerGas = &maxFeePerGas
	return b
}

// MaxPriorityFeePerGas sets the tip cap. Defaults to 0.
func (b *TransactionBuilder) MaxPriorityFeePerGas(maxPriorityFeePerGas Uint128) *TransactionBuilder {
	b.maxPriorityFeePerGas = &maxPriorityFeePerGas
	return b
}

// AccessList sets the access list. Defaults to empty.
func (b *TransactionBuilder) AccessList(accessList AccessList) *TransactionBuilder {
	b.accessList = accessList.Copy()
	return b
}

// Build validates that chain_id, nonce, gas_limit and max_fee_per_gas are set and returns a new
// Transaction that shares no memory with the builder. The builder remains usable.
func (b *TransactionBuilder) Build() (*Transaction, error) {
	switch {
	case b.chainID == nil:
		return nil, &MandatoryFieldError{Field: FieldChainID}
	case b.nonce == nil:
		return nil, &MandatoryFieldError{Field: FieldNonce}
	case b.gasLimit == nil:
		return nil, &MandatoryFieldError{Field: FieldGasLimit}
	case b.maxFeePerGas == nil:
		return nil, &MandatoryFieldError{Field: FieldMaxFeePerGas}
	}

	tx := &Transaction{
		chainID:      *b.chainID,
		nonce:        *b.nonce,
		input:        make([]byte, len(b.input)),
		gasLimit:     *b.gasLimit,
		maxFeePerGas: *b.maxFeePerGas,
		accessList:   b.accessList.Copy(),
	}
	copy(tx.input, b.input)

	if b.to != nil {
		to := *b.to
		tx.to = &to
	}
	if b.value != nil {
		tx.value = *b.value
	}
	if b.maxPriorityFeePerGas != nil {
		tx.maxPriorityFeePerGas = *b.maxPriorityFeePerGas
	}
	return tx, nil
}
