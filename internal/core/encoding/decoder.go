package encoding

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"evm_tx_encoder/internal/core/domain"
)

var (
	// ErrUnexpectedType indicates a payload whose leading byte is not the dynamic-fee type.
	ErrUnexpectedType = errors.New("unexpected transaction type")

	// ErrMalformedPayload indicates a payload that is not a canonical dynamic-fee envelope.
	ErrMalformedPayload = errors.New("malformed transaction payload")
)

// Decoded is the result of parsing a signing or broadcast payload.
// Signature is nil for a signing payload.
type Decoded struct {
	Transaction *domain.Transaction
	Signature   *domain.Signature
}

// Decode parses a payload produced by EncodeUnsigned or EncodeSigned.
func Decode(payload []byte) (*Decoded, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}
	if payload[0] != domain.DynamicFeeTxType {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnexpectedType, payload[0])
	}

	body := payload[1:]
	kind, _, rest, err := rlp.Split(body)
	if err != nil {
		return nil, malformed("envelope", err)
	}
	if kind != rlp.List {
		return nil, malformed("envelope", rlp.ErrExpectedList)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after transaction list", ErrMalformedPayload, len(rest))
	}

	s := rlp.NewStream(bytes.NewReader(body), uint64(len(body)))
	if _, err := s.List(); err != nil {
		return nil, malformed("envelope", err)
	}

	b := domain.NewTransactionBuilder()

	chainID, err := s.Uint64()
	if err != nil {
		return nil, malformed("chainId", err)
	}
	nonce, err := s.Uint64()
	if err != nil {
		return nil, malformed("nonce", err)
	}
	tip, err := readUint128(s, "maxPriorityFeePerGas")
	if err != nil {
		return nil, err
	}
	feeCap, err := readUint128(s, "maxFeePerGas")
	if err != nil {
		return nil, err
	}
	gasLimit, err := readUint128(s, "gasLimit")
	if err != nil {
		return nil, err
	}

	to, err := s.Bytes()
	if err != nil {
		return nil, malformed("to", err)
	}
	switch len(to) {
	case 0:
	case common.AddressLength:
		b.To(common.BytesToAddress(to))
	default:
		return nil, fmt.Errorf("%w: to must be empty or %d bytes, got %d", ErrMalformedPayload, common.AddressLength, len(to))
	}

	value, err := readUint128(s, "value")
	if err != nil {
		return nil, err
	}
	input, err := s.Bytes()
	if err != nil {
		return nil, malformed("input", err)
	}
	accessList, err := decodeAccessList(s)
	if err != nil {
		return nil, err
	}

	var sig *domain.Signature
	if s.MoreDataInList() {
		sig, err = decodeSignature(s)
		if err != nil {
			return nil, err
		}
	}
	if err := s.ListEnd(); err != nil {
		return nil, malformed("envelope", err)
	}

	tx, err := b.ChainID(chainID).
		Nonce(nonce).
		MaxPriorityFeePerGas(tip).
		MaxFeePerGas(feeCap).
		GasLimit(gasLimit).
		Value(value).
		Input(input).
		AccessList(accessList).
		Build()
	if err != nil {
		return nil, err
	}
	return &Decoded{Transaction: tx, Signature: sig}, nil
}

func decodeAccessList(s *rlp.Stream) (domain.AccessList, error) {
	if _, err := s.List(); err != nil {
		return nil, malformed("accessList", err)
	}

	al := domain.AccessList{}
	for s.MoreDataInList() {
		if _, err := s.List(); err != nil {
			return nil, malformed("accessList entry", err)
		}
		addr, err := s.Bytes()
		if err != nil {
			return nil, malformed("accessList address", err)
		}
		if len(addr) != common.AddressLength {
			return nil, fmt.Errorf("%w: access list address must be %d bytes, got %d",
				ErrMalformedPayload, common.AddressLength, len(addr))
		}

		if _, err := s.List(); err != nil {
			return nil, malformed("accessList storage keys", err)
		}
		keys := []domain.StorageKey{}
		for s.MoreDataInList() {
			key, err := s.Bytes()
			if err != nil {
				return nil, malformed("accessList storage key", err)
			}
			if len(key) != common.HashLength {
				return nil, fmt.Errorf("%w: storage key must be %d bytes, got %d",
					ErrMalformedPayload, common.HashLength, len(key))
			}
			keys = append(keys, common.BytesToHash(key))
		}
		if err := s.ListEnd(); err != nil {
			return nil, malformed("accessList storage keys", err)
		}
		if err := s.ListEnd(); err != nil {
			return nil, malformed("accessList entry", err)
		}

		al = append(al, domain.AccessTuple{Address: common.BytesToAddress(addr), StorageKeys: keys})
	}
	if err := s.ListEnd(); err != nil {
		return nil, malformed("accessList", err)
	}
	return al, nil
}

func decodeSignature(s *rlp.Stream) (*domain.Signature, error) {
	v, err := s.Uint64()
	if err != nil {
		return nil, malformed("v", err)
	}
	r, err := s.Bytes()
	if err != nil {
		return nil, malformed("r", err)
	}
	sv, err := s.Bytes()
	if err != nil {
		return nil, malformed("s", err)
	}
	sig := domain.NewSignature(v, r, sv)
	return &sig, nil
}

func readUint128(s *rlp.Stream, field string) (domain.Uint128, error) {
	var v uint256.Int
	if err := s.ReadUint256(&v); err != nil {
		return domain.Uint128{}, malformed(field, err)
	}
	u, err := domain.Uint128FromUint256(&v)
	if err != nil {
		return domain.Uint128{}, fmt.Errorf("%w: %s: %w", ErrMalformedPayload, field, err)
	}
	return u, nil
}

func malformed(field string, err error) error {
	if errors.Is(err, rlp.EOL) {
		return fmt.Errorf("%w: %s: list ended early", ErrMalformedPayload, field)
	}
	return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, field, err)
}
