package definitions

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
	"github.com/smartcontractkit/chainlink-chain-config/chain/serializer"
)

const CeloID = 42220

// CIP64TxType is the envelope type of Celo fee currency transactions.
const CIP64TxType = 0x7b

// TypeCIP64 marks a transaction request as a Celo fee currency transaction.
const TypeCIP64 serializer.Type = "cip64"

// ErrCIP64FeesRequired is returned when a fee currency transaction lacks EIP-1559 fee fields.
var ErrCIP64FeesRequired = errors.New("cip64 transactions require maxFeePerGas and maxPriorityFeePerGas")

// ErrCIP64FeeCurrencyRequired is returned when a fee currency transaction does not name its fee currency.
var ErrCIP64FeeCurrencyRequired = errors.New("cip64 transactions require a feeCurrency")

// Celo is the Celo mainnet.
func Celo() chain.Chain {
	return chain.Chain{
		ID:             CeloID,
		Name:           "Celo",
		NativeCurrency: chain.NativeCurrency{Name: "CELO", Symbol: "CELO", Decimals: 18},
		RPCURLs:        rpc("https://forno.celo.org"),
		BlockExplorers: explorer("Celo Explorer", "https://celoscan.io", "https://api.celoscan.io/api"),
		Contracts: map[string]chain.ContractEntry{
			chain.ContractMulticall3: multicall3(13112599),
		},
		Formatters:  CeloFormatters(),
		Serializers: &serializer.Serializers{Transaction: SerializeCelo},
	}
}

// CeloFormatters returns a new formatter registry for Celo. Blocks drop the proof of work fields
// Celo does not populate, and requests accept a feeCurrency.
func CeloFormatters() *formatter.Formatters {
	return &formatter.Formatters{
		Block: &formatter.Formatter{
			Type:    formatter.KindBlock,
			Exclude: []string{"difficulty", "gasLimit", "mixHash", "nonce", "uncles"},
			Format: func(raw formatter.Fields) (formatter.Fields, error) {
				out := formatter.Fields{}
				if r, ok := raw["randomness"]; ok {
					out["randomness"] = r
				}

				return out, nil
			},
		},
		Transaction: &formatter.Formatter{
			Type:   formatter.KindTransaction,
			Format: formatCeloTransaction,
		},
		TransactionRequest: &formatter.Formatter{
			Type:    formatter.KindTransactionRequest,
			Format:  formatCeloRequest,
			Accepts: []string{"feeCurrency"},
		},
	}
}

func formatCeloTransaction(raw formatter.Fields) (formatter.Fields, error) {
	out := formatter.Fields{}
	if raw["feeCurrency"] != nil {
		out["feeCurrency"] = raw["feeCurrency"]
	}
	if raw["type"] == "0x7b" {
		out["type"] = string(TypeCIP64)
		out["typeHex"] = "0x7b"
	}

	return out, nil
}

func formatCeloRequest(raw formatter.Fields) (formatter.Fields, error) {
	addr, ok, err := addressField(raw, "feeCurrency")
	if err != nil {
		return nil, &formatter.FormatterError{Kind: formatter.KindTransactionRequest, Field: "feeCurrency", Err: err}
	}
	if !ok {
		return formatter.Fields{}, nil
	}

	return formatter.Fields{"feeCurrency": addr.Hex(), "type": "0x7b"}, nil
}

// IsCIP64 reports whether req pays fees in a fee currency.
func IsCIP64(req serializer.TransactionRequest) bool {
	return req.Type == TypeCIP64 || req.Extra["feeCurrency"] != nil
}

// CIP64SigningHash returns the hash a sender signs for a fee currency transaction.
func CIP64SigningHash(req serializer.TransactionRequest) (common.Hash, error) {
	fields, err := cip64Fields(req)
	if err != nil {
		return common.Hash{}, err
	}
	payload, err := rlp.EncodeToBytes(fields)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode cip64 transaction: %w", err)
	}

	return crypto.Keccak256Hash([]byte{CIP64TxType}, payload), nil
}

// SerializeCelo encodes fee currency transactions as 0x7b || rlp([chainId, nonce,
// maxPriorityFeePerGas, maxFeePerGas, gas, to, value, data, accessList, feeCurrency, v, r, s]),
// omitting the signature fields when unsigned. Every other request uses the generic encoding.
func SerializeCelo(req serializer.TransactionRequest, sig *serializer.Signature) ([]byte, error) {
	if !IsCIP64(req) {
		return serializer.Generic(req, sig)
	}

	fields, err := cip64Fields(req)
	if err != nil {
		return nil, err
	}
	if sig != nil {
		v := sig.V
		if v >= 27 {
			v -= 27
		}
		fields = append(fields, new(big.Int).SetUint64(uint64(v)), sig.R, sig.S)
	}

	payload, err := rlp.EncodeToBytes(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cip64 transaction: %w", err)
	}

	return append([]byte{CIP64TxType}, payload...), nil
}

func cip64Fields(req serializer.TransactionRequest) ([]any, error) {
	if req.ChainID == nil {
		return nil, serializer.ErrChainIDRequired
	}
	if req.MaxFeePerGas == nil || req.MaxPriorityFeePerGas == nil {
		return nil, ErrCIP64FeesRequired
	}
	feeCurrency, ok, err := addressField(req.Extra, "feeCurrency")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCIP64FeeCurrencyRequired
	}

	return []any{
		req.ChainID,
		req.Nonce,
		req.MaxPriorityFeePerGas,
		req.MaxFeePerGas,
		req.Gas,
		optionalAddress(req.To),
		bigOrZero(req.Value),
		req.Data,
		req.AccessList,
		feeCurrency,
	}, nil
}

// optionalAddress encodes a missing recipient as the empty string, as contract creations do.
func optionalAddress(a *common.Address) any {
	if a == nil {
		return []byte{}
	}

	return *a
}

func bigOrZero(n *big.Int) *big.Int {
	if n == nil {
		return new(big.Int)
	}

	return n
}
