// Package restapi implements the RESTful API layer, including DTOs and handlers.
package restapi

import (
	"encoding/json"

	"evm_tx_encoder/pkg/txencoder"
)

// EncodeSignedRequest defines the expected JSON body for the POST /encode/signed endpoint.
type EncodeSignedRequest struct {
	Transaction txencoder.TransactionRequest `json:"transaction"`
	Signature   txencoder.SignatureRequest   `json:"signature"`
}

// ImportRequest defines the expected JSON body for the POST /import endpoint.
// Fields is the flat object of string fields; Signature is optional.
type ImportRequest struct {
	Fields    json.RawMessage             `json:"fields"`
	Signature *txencoder.SignatureRequest `json:"signature,omitempty"`
}

// DecodeRequest defines the expected JSON body for the POST /decode endpoint.
type DecodeRequest struct {
	Payload string `json:"payload"`
}

// ErrorResponse defines a standard structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse defines the structure for the GET /health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
