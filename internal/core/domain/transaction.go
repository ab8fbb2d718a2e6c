package domain

import "github.com/ethereum/go-ethereum/common"

// DynamicFeeTxType is the EIP-2718 type byte of EIP-1559 transactions.
const DynamicFeeTxType byte = 0x02

// Transaction is an immutable EIP-1559 transaction. It is created through TransactionBuilder.Build
// or ImportFields, and every getter returns a copy of reference-typed fields.
type Transaction struct {
	chainID              uint64
	nonce                uint64
	to                   *Address
	value                Uint128
	input                []byte
	gasLimit             Uint128
	maxFeePerGas         Uint128
	maxPriorityFeePerGas Uint128
	accessList           AccessList
}

// Type returns the transaction type byte.
func (tx *Transaction) Type() byte { return DynamicFeeTxType }

// ChainID returns the network identifier.
func (tx *Transaction) ChainID() uint64 { return tx.chainID }

// Nonce returns the sender account nonce.
func (tx *Transaction) Nonce() uint64 { return tx.nonce }

// To returns a copy of the recipient, or nil for contract creation.
func (tx *Transaction) To() *Address {
	if tx.to == nil {
		return nil
	}
	to := *tx.to
	return &to
}

// IsContractCreation reports whether the transaction has no recipient.
func (tx *Transaction) IsContractCreation() bool { return tx.to == nil }

// Value returns the amount transferred.
func (tx *Transaction) Value() Uint128 { return tx.value }

// Input returns a copy of the call data or init code.
func (tx *Transaction) Input() []byte {
	return common.CopyBytes(tx.input)
}

// GasLimit returns the gas limit.
func (tx *Transaction) GasLimit() Uint128 { return tx.gasLimit }

// MaxFeePerGas returns the fee cap.
func (tx *Transaction) MaxFeePerGas() Uint128 { return tx.maxFeePerGas }

// MaxPriorityFeePerGas returns the tip cap.
func (tx *Transaction) MaxPriorityFeePerGas() Uint128 { return tx.maxPriorityFeePerGas }

// AccessList returns a deep copy of the access list.
func (tx *Transaction) AccessList() AccessList {
	return tx.accessList.Copy()
}
