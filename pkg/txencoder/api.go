// Package txencoder defines the public API contracts for the EIP-1559 transaction encoder service.
package txencoder

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrInvalidRequest marks errors caused by the caller's input rather than by the service.
var ErrInvalidRequest = errors.New("invalid request")

// AccessTuple is one access-list entry in API form.
type AccessTuple struct {
	Address     string   `json:"address"`
	StorageKeys []string `json:"storageKeys"`
}

// TransactionRequest describes a transaction with every numeric field as a decimal or "0x"-hex string.
// An empty To means contract creation. ChainID, Nonce, GasLimit and MaxFeePerGas are mandatory.
type TransactionRequest struct {
	ChainID              string        `json:"chainId"`
	Nonce                string        `json:"nonce"`
	To                   string        `json:"to,omitempty"`
	Value                string        `json:"value,omitempty"`
	Input                string        `json:"input,omitempty"`
	GasLimit             string        `json:"gasLimit"`
	MaxFeePerGas         string        `json:"maxFeePerGas"`
	MaxPriorityFeePerGas string        `json:"maxPriorityFeePerGas,omitempty"`
	AccessList           []AccessTuple `json:"accessList,omitempty"`
}

// SignatureRequest carries an externally produced signature. V is a number string, R and S are hex.
type SignatureRequest struct {
	V string `json:"v"`
	R string `json:"r"`
	S string `json:"s"`
}

// EncodeResponse is the result of encoding a transaction.
type EncodeResponse struct {
	Type              string `json:"type"`
	Payload           string `json:"payload"`
	SigningHash       string `json:"signingHash"`
	Hash              string `json:"hash,omitempty"`
	Signed            bool   `json:"signed"`
	ContractCreation  bool   `json:"contractCreation"`
	AccessListIgnored bool   `json:"accessListIgnored,omitempty"`
}

// DecodeResponse is the result of parsing an encoded payload.
// Numbers are rendered in decimal, byte strings in 0x-prefixed hex.
type DecodeResponse struct {
	Type        string             `json:"type"`
	Transaction TransactionRequest `json:"transaction"`
	Signature   *SignatureRequest  `json:"signature,omitempty"`
	SigningHash string             `json:"signingHash"`
	Hash        string             `json:"hash,omitempty"`
}

// Encoder defines the public interface of the transaction encoder service.
type Encoder interface {
	// EncodeUnsigned builds the transaction described by req and returns its signing payload.
	EncodeUnsigned(ctx context.Context, req TransactionRequest) (*EncodeResponse, error)

	// EncodeSigned builds the transaction described by req and returns its broadcast payload.
	EncodeSigned(ctx context.Context, req TransactionRequest, sig SignatureRequest) (*EncodeResponse, error)

	// Import builds a transaction from a flat JSON object of string fields.
	// The payload is signed when sig is not nil.
	Import(ctx context.Context, fields json.RawMessage, sig *SignatureRequest) (*EncodeResponse, error)

	// Decode parses a hex encoded signing or broadcast payload.
	Decode(ctx context.Context, payloadHex string) (*DecodeResponse, error)
}
