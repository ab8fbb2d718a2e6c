package application

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"evm_tx_encoder/internal/core/domain"
	"evm_tx_encoder/internal/core/encoding"
	"evm_tx_encoder/internal/utils"
	"evm_tx_encoder/pkg/txencoder"
)

// mapRequestToTransaction builds a domain Transaction from the public request DTO.
// Empty strings leave the builder default in place, so missing mandatory fields surface from Build.
func mapRequestToTransaction(req txencoder.TransactionRequest) (*domain.Transaction, error) {
	b := domain.NewTransactionBuilder()

	chainID, ok, err := optionalUint64(domain.JSONFieldChainID, req.ChainID)
	if err != nil {
		return nil, err
	}
	if ok {
		b.ChainID(chainID)
	}

	nonce, ok, err := optionalUint64(domain.JSONFieldNonce, req.Nonce)
	if err != nil {
		return nil, err
	}
	if ok {
		b.Nonce(nonce)
	}

	if req.To != "" {
		to, err := domain.NewAddress(req.To)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", domain.JSONFieldTo, err)
		}
		b.To(to)
	}

	value, ok, err := optionalUint128(domain.JSONFieldValue, req.Value)
	if err != nil {
		return nil, err
	}
	if ok {
		b.Value(value)
	}

	if req.Input != "" {
		input, err := utils.DecodeHex(req.Input)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", domain.JSONFieldInput, err)
		}
		b.Input(input)
	}

	gasLimit, ok, err := optionalUint128(domain.JSONFieldGasLimit, req.GasLimit)
	if err != nil {
		return nil, err
	}
	if ok {
		b.GasLimit(gasLimit)
	}

	maxFee, ok, err := optionalUint128(domain.JSONFieldMaxFeePerGas, req.MaxFeePerGas)
	if err != nil {
		return nil, err
	}
	if ok {
		b.MaxFeePerGas(maxFee)
	}

	tip, ok, err := optionalUint128(domain.JSONFieldMaxPriorityFeePerGas, req.MaxPriorityFeePerGas)
	if err != nil {
		return nil, err
	}
	if ok {
		b.MaxPriorityFeePerGas(tip)
	}

	if len(req.AccessList) > 0 {
		accessList, err := mapAccessList(req.AccessList)
		if err != nil {
			return nil, err
		}
		b.AccessList(accessList)
	}

	return b.Build()
}

func mapAccessList(tuples []txencoder.AccessTuple) (domain.AccessList, error) {
	accessList := make(domain.AccessList, 0, len(tuples))
	for i, tuple := range tuples {
		addr, err := domain.NewAddress(tuple.Address)
		if err != nil {
			return nil, fmt.Errorf("field '%s[%d].address': %w", domain.JSONFieldAccessList, i, err)
		}
		keys := make([]domain.StorageKey, 0, len(tuple.StorageKeys))
		for j, rawKey := range tuple.StorageKeys {
			key, err := domain.NewStorageKey(rawKey)
			if err != nil {
				return nil, fmt.Errorf("field '%s[%d].storageKeys[%d]': %w", domain.JSONFieldAccessList, i, j, err)
			}
			keys = append(keys, key)
		}
		accessList = append(accessList, domain.AccessTuple{Address: addr, StorageKeys: keys})
	}
	return accessList, nil
}

// mapSignatureRequest converts the public signature DTO. R and S are kept byte for byte.
func mapSignatureRequest(sig txencoder.SignatureRequest) (domain.Signature, error) {
	v, err := utils.ParseUint64(sig.V)
	if err != nil {
		return domain.Signature{}, fmt.Errorf("field 'v': %w", err)
	}
	r, err := utils.DecodeHex(sig.R)
	if err != nil {
		return domain.Signature{}, fmt.Errorf("field 'r': %w", err)
	}
	s, err := utils.DecodeHex(sig.S)
	if err != nil {
		return domain.Signature{}, fmt.Errorf("field 's': %w", err)
	}
	return domain.NewSignature(v, r, s), nil
}

// mapEncodeResponse renders an encoded payload. Hash is only set for signed payloads.
func mapEncodeResponse(tx *domain.Transaction, payload []byte, sig *domain.Signature) *txencoder.EncodeResponse {
	resp := &txencoder.EncodeResponse{
		Type:             hexutil.Encode([]byte{tx.Type()}),
		Payload:          hexutil.Encode(payload),
		SigningHash:      encoding.SigningHash(tx).Hex(),
		Signed:           sig != nil,
		ContractCreation: tx.IsContractCreation(),
	}
	if sig != nil {
		resp.Hash = encoding.TxHash(tx, *sig).Hex()
	}
	return resp
}

// mapDecodedToResponse converts a decoded payload to the public DTO.
func mapDecodedToResponse(decoded *encoding.Decoded) *txencoder.DecodeResponse {
	tx := decoded.Transaction
	resp := &txencoder.DecodeResponse{
		Type:        hexutil.Encode([]byte{tx.Type()}),
		Transaction: mapTransactionToRequest(tx),
		SigningHash: encoding.SigningHash(tx).Hex(),
	}
	if decoded.Signature != nil {
		sig := *decoded.Signature
		resp.Signature = &txencoder.SignatureRequest{
			V: strconv.FormatUint(sig.V, 10),
			R: hexutil.Encode(sig.R),
			S: hexutil.Encode(sig.S),
		}
		resp.Hash = encoding.TxHash(tx, sig).Hex()
	}
	return resp
}

func mapTransactionToRequest(tx *domain.Transaction) txencoder.TransactionRequest {
	req := txencoder.TransactionRequest{
		ChainID:              strconv.FormatUint(tx.ChainID(), 10),
		Nonce:                strconv.FormatUint(tx.Nonce(), 10),
		Value:                tx.Value().String(),
		Input:                hexutil.Encode(tx.Input()),
		GasLimit:             tx.GasLimit().String(),
		MaxFeePerGas:         tx.MaxFeePerGas().String(),
		MaxPriorityFeePerGas: tx.MaxPriorityFeePerGas().String(),
	}
	if to := tx.To(); to != nil {
		req.To = to.Hex()
	}
	for _, tuple := range tx.AccessList() {
		keys := make([]string, 0, len(tuple.StorageKeys))
		for _, key := range tuple.StorageKeys {
			keys = append(keys, key.Hex())
		}
		req.AccessList = append(req.AccessList, txencoder.AccessTuple{Address: tuple.Address.Hex(), StorageKeys: keys})
	}
	return req
}

func optionalUint64(field, token string) (uint64, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	v, err := utils.ParseUint64(token)
	if err != nil {
		return 0, false, fmt.Errorf("field '%s': %w", field, err)
	}
	return v, true, nil
}

func optionalUint128(field, token string) (domain.Uint128, bool, error) {
	if token == "" {
		return domain.Uint128{}, false, nil
	}
	v, err := domain.ParseUint128(token)
	if err != nil {
		return domain.Uint128{}, false, fmt.Errorf("field '%s': %w", field, err)
	}
	return v, true, nil
}
