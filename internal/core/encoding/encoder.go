// Package encoding serializes dynamic-fee transactions into their EIP-2718 typed RLP envelope and
// parses such envelopes back.
//
// Both payloads are the type byte 0x02 followed by one RLP list:
//
//	[chainId, nonce, maxPriorityFeePerGas, maxFeePerGas, gasLimit, to, value, input, accessList]
//	[chainId, nonce, maxPriorityFeePerGas, maxFeePerGas, gasLimit, to, value, input, accessList, v, r, s]
//
// The first is the signing payload, the second the broadcast payload.
package encoding

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"evm_tx_encoder/internal/core/domain"
)

// EncodeUnsigned returns the signing payload of tx.
func EncodeUnsigned(tx *domain.Transaction) []byte {
	return encode(tx, nil)
}

// EncodeSigned returns the broadcast payload of tx with sig appended. r and s are written verbatim.
func EncodeSigned(tx *domain.Transaction, sig domain.Signature) []byte {
	return encode(tx, &sig)
}

// SigningHash returns the keccak256 hash of the signing payload, which is what the signer signs.
func SigningHash(tx *domain.Transaction) common.Hash {
	return crypto.Keccak256Hash(EncodeUnsigned(tx))
}

// TxHash returns the keccak256 hash of the broadcast payload, the transaction's network identifier.
func TxHash(tx *domain.Transaction, sig domain.Signature) common.Hash {
	return crypto.Keccak256Hash(EncodeSigned(tx, sig))
}

func encode(tx *domain.Transaction, sig *domain.Signature) []byte {
	w := rlp.NewEncoderBuffer(nil)
	defer w.Flush()

	list := w.List()
	encodeFields(w, tx)
	if sig != nil {
		w.WriteUint64(sig.V)
		w.WriteBytes(sig.R)
		w.WriteBytes(sig.S)
	}
	w.ListEnd(list)

	return w.AppendToBytes([]byte{domain.DynamicFeeTxType})
}

// encodeFields writes the nine fields shared by both payloads, in consensus order.
func encodeFields(w rlp.EncoderBuffer, tx *domain.Transaction) {
	w.WriteUint64(tx.ChainID())
	w.WriteUint64(tx.Nonce())
	w.WriteUint256(tx.MaxPriorityFeePerGas().Uint256())
	w.WriteUint256(tx.MaxFeePerGas().Uint256())
	w.WriteUint256(tx.GasLimit().Uint256())
	if to := tx.To(); to != nil {
		w.WriteBytes(to.Bytes())
	} else {
		w.WriteBytes(nil)
	}
	w.WriteUint256(tx.Value().Uint256())
	w.WriteBytes(tx.Input())
	encodeAccessList(w, tx.AccessList())
}

func encodeAccessList(w rlp.EncoderBuffer, al domain.AccessList) {
	outer := w.List()
	for _, tuple := range al {
		entry := w.List()
		w.WriteBytes(tuple.Address.Bytes())
		keys := w.List()
		for _, key := range tuple.StorageKeys {
			w.WriteBytes(key.Bytes())
		}
		w.ListEnd(keys)
		w.ListEnd(entry)
	}
	w.ListEnd(outer)
}
