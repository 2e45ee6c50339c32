package serializer

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	// ErrChainIDRequired is returned by the generic serializer for typed envelopes without a chain id.
	ErrChainIDRequired = errors.New("chain id is required for typed transactions")
	// ErrUnsupportedType is returned by the generic serializer for types it cannot encode.
	ErrUnsupportedType = errors.New("unsupported transaction type")
)

// Signature is the optional signature appended when serializing a signed transaction.
type Signature struct {
	R *big.Int
	S *big.Int
	// V is the recovery id. Both 0/1 and 27/28 are accepted.
	V uint8
}

// Bytes returns the 65 byte [R || S || V] form with V normalized to 0/1.
func (s Signature) Bytes() []byte {
	out := make([]byte, 0, 65)
	out = append(out, common.LeftPadBytes(bigBytes(s.R), 32)...)
	out = append(out, common.LeftPadBytes(bigBytes(s.S), 32)...)
	v := s.V
	if v >= 27 {
		v -= 27
	}

	return append(out, v)
}

func bigBytes(n *big.Int) []byte {
	if n == nil {
		return nil
	}

	return n.Bytes()
}

// Func encodes a transaction request into its wire representation.
type Func func(req TransactionRequest, sig *Signature) ([]byte, error)

// Serializers is the serializer slot of a chain descriptor.
type Serializers struct {
	// Transaction replaces the generic transaction encoding when set.
	Transaction Func
}

// Serialize encodes req with the chain's transaction serializer when one is registered and with
// Generic otherwise. The hook's result is returned verbatim and the request is not validated
// before it is invoked.
func Serialize(s *Serializers, req TransactionRequest, sig *Signature) ([]byte, error) {
	if s != nil && s.Transaction != nil {
		return s.Transaction(req, sig)
	}

	return Generic(req, sig)
}

// Generic is the chain agnostic encoding: the canonical go-ethereum envelope for the request type,
// signed with the latest signer for the request's chain id when sig is provided.
func Generic(req TransactionRequest, sig *Signature) ([]byte, error) {
	data, err := TxData(req)
	if err != nil {
		return nil, err
	}

	tx := types.NewTx(data)
	if sig != nil {
		tx, err = tx.WithSignature(types.LatestSignerForChainID(req.ChainID), sig.Bytes())
		if err != nil {
			return nil, fmt.Errorf("failed to apply signature: %w", err)
		}
	}

	return tx.MarshalBinary()
}

// TxData converts req into the go-ethereum payload for its type.
func TxData(req TransactionRequest) (types.TxData, error) {
	switch t := TypeOf(req); t {
	case TypeLegacy:
		return &types.LegacyTx{
			Nonce:    req.Nonce,
			GasPrice: req.GasPrice,
			Gas:      req.Gas,
			To:       req.To,
			Value:    req.Value,
			Data:     req.Data,
		}, nil
	case TypeEIP2930:
		if req.ChainID == nil {
			return nil, ErrChainIDRequired
		}

		return &types.AccessListTx{
			ChainID:    req.ChainID,
			Nonce:      req.Nonce,
			GasPrice:   req.GasPrice,
			Gas:        req.Gas,
			To:         req.To,
			Value:      req.Value,
			Data:       req.Data,
			AccessList: req.AccessList,
		}, nil
	case TypeEIP1559:
		if req.ChainID == nil {
			return nil, ErrChainIDRequired
		}

		return &types.DynamicFeeTx{
			ChainID:    req.ChainID,
			Nonce:      req.Nonce,
			GasTipCap:  req.MaxPriorityFeePerGas,
			GasFeeCap:  req.MaxFeePerGas,
			Gas:        req.Gas,
			To:         req.To,
			Value:      req.Value,
			Data:       req.Data,
			AccessList: req.AccessList,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}
