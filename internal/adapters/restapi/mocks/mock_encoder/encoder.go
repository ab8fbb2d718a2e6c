// Package mock_encoder provides a testify mock of txencoder.Encoder.
package mock_encoder

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"evm_tx_encoder/pkg/txencoder"
)

// MockEncoder is a mock implementation of txencoder.Encoder.
type MockEncoder struct {
	mock.Mock
}

var _ txencoder.Encoder = (*MockEncoder)(nil)

func (m *MockEncoder) EncodeUnsigned(
	ctx context.Context,
	req txencoder.TransactionRequest,
) (*txencoder.EncodeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*txencoder.EncodeResponse)
	return resp, args.Error(1)
}

func (m *MockEncoder) EncodeSigned(
	ctx context.Context,
	req txencoder.TransactionRequest,
	sig txencoder.SignatureRequest,
) (*txencoder.EncodeResponse, error) {
	args := m.Called(ctx, req, sig)
	resp, _ := args.Get(0).(*txencoder.EncodeResponse)
	return resp, args.Error(1)
}

func (m *MockEncoder) Import(
	ctx context.Context,
	fields json.RawMessage,
	sig *txencoder.SignatureRequest,
) (*txencoder.EncodeResponse, error) {
	args := m.Called(ctx, fields, sig)
	resp, _ := args.Get(0).(*txencoder.EncodeResponse)
	return resp, args.Error(1)
}

func (m *MockEncoder) Decode(ctx context.Context, payloadHex string) (*txencoder.DecodeResponse, error) {
	args := m.Called(ctx, payloadHex)
	resp, _ := args.Get(0).(*txencoder.DecodeResponse)
	return resp, args.Error(1)
}
