// Package application contains the service that turns API requests into encoded EIP-1559 transactions.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"evm_tx_encoder/internal/config"
	"evm_tx_encoder/internal/core/domain"
	"evm_tx_encoder/internal/core/encoding"
	"evm_tx_encoder/internal/logger"
	"evm_tx_encoder/internal/utils"
	"evm_tx_encoder/pkg/txencoder"
)

// ErrAccessListRejected is returned by Import for inputs carrying an access list when
// rejection is configured.
var ErrAccessListRejected = errors.New("access lists are not supported by JSON import")

// EncoderService implements the txencoder.Encoder interface. It holds no mutable state.
type EncoderService struct {
	logger                  logger.AppLogger
	rejectAccessListImports bool
}

// Compile-time check to ensure EncoderService implements txencoder.Encoder
var _ txencoder.Encoder = (*EncoderService)(nil)

// NewEncoderService creates a new instance of EncoderService.
func NewEncoderService(appLogger logger.AppLogger, cfg config.EncoderConfig) (*EncoderService, error) {
	if appLogger == nil {
		return nil, errors.New("NewEncoderService: appLogger is nil")
	}
	return &EncoderService{
		logger:                  appLogger.With("component", "EncoderService"),
		rejectAccessListImports: cfg.RejectAccessListImports,
	}, nil
}

// EncodeUnsigned returns the signing payload of the transaction described by req.
func (s *EncoderService) EncodeUnsigned(
	ctx context.Context,
	req txencoder.TransactionRequest,
) (*txencoder.EncodeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx, err := mapRequestToTransaction(req)
	if err != nil {
		s.logger.Debug("EncodeUnsigned: rejected request", "error", err)
		return nil, invalidRequest(err)
	}

	payload := encoding.EncodeUnsigned(tx)
	s.logger.Debug("Encoded unsigned transaction",
		"chainId", tx.ChainID(), "nonce", tx.Nonce(), "bytes", len(payload))
	return mapEncodeResponse(tx, payload, nil), nil
}

// EncodeSigned returns the broadcast payload of the transaction described by req.
func (s *EncoderService) EncodeSigned(
	ctx context.Context,
	req txencoder.TransactionRequest,
	sigReq txencoder.SignatureRequest,
) (*txencoder.EncodeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx, err := mapRequestToTransaction(req)
	if err != nil {
		s.logger.Debug("EncodeSigned: rejected request", "error", err)
		return nil, invalidRequest(err)
	}
	sig, err := mapSignatureRequest(sigReq)
	if err != nil {
		s.logger.Debug("EncodeSigned: rejected signature", "error", err)
		return nil, invalidRequest(err)
	}

	payload := encoding.EncodeSigned(tx, sig)
	s.logger.Debug("Encoded signed transaction",
		"chainId", tx.ChainID(), "nonce", tx.Nonce(), "bytes", len(payload))
	return mapEncodeResponse(tx, payload, &sig), nil
}

// Import builds a transaction from flat JSON string fields. An access list in the input is dropped,
// or rejected when the service is configured to do so.
func (s *EncoderService) Import(
	ctx context.Context,
	raw json.RawMessage,
	sigReq *txencoder.SignatureRequest,
) (*txencoder.EncodeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, invalidRequest(fmt.Errorf("%w: %v", domain.ErrMalformedImport, err))
	}

	accessListIgnored := domain.HasAccessList(fields)
	if accessListIgnored {
		if s.rejectAccessListImports {
			s.logger.Warn("Import: rejected input carrying an access list")
			return nil, invalidRequest(ErrAccessListRejected)
		}
		s.logger.Warn("Import: access list present in input and ignored")
	}

	tx, err := domain.ImportFields(fields)
	if err != nil {
		s.logger.Debug("Import: rejected fields", "error", err)
		return nil, invalidRequest(err)
	}

	var sig *domain.Signature
	payload := encoding.EncodeUnsigned(tx)
	if sigReq != nil {
		parsed, err := mapSignatureRequest(*sigReq)
		if err != nil {
			s.logger.Debug("Import: rejected signature", "error", err)
			return nil, invalidRequest(err)
		}
		sig = &parsed
		payload = encoding.EncodeSigned(tx, parsed)
	}

	s.logger.Debug("Imported transaction",
		"chainId", tx.ChainID(), "nonce", tx.Nonce(), "signed", sig != nil, "bytes", len(payload))

	resp := mapEncodeResponse(tx, payload, sig)
	resp.AccessListIgnored = accessListIgnored
	return resp, nil
}

// Decode parses a hex encoded signing or broadcast payload.
func (s *EncoderService) Decode(ctx context.Context, payloadHex string) (*txencoder.DecodeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := utils.DecodeHex(payloadHex)
	if err != nil {
		return nil, invalidRequest(fmt.Errorf("field 'payload': %w", err))
	}

	decoded, err := encoding.Decode(payload)
	if err != nil {
		s.logger.Debug("Decode: rejected payload", "error", err, "bytes", len(payload))
		return nil, invalidRequest(err)
	}

	s.logger.Debug("Decoded transaction", "signed", decoded.Signature != nil, "bytes", len(payload))
	return mapDecodedToResponse(decoded), nil
}

func invalidRequest(err error) error {
	return fmt.Errorf("%w: %w", txencoder.ErrInvalidRequest, err)
}
