package serializer

import (
	"maps"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
)

// Type names the envelope a transaction request is serialized into.
type Type string

const (
	TypeLegacy  Type = "legacy"
	TypeEIP2930 Type = "eip2930"
	TypeEIP1559 Type = "eip1559"
)

// TransactionRequest is the generic serializable transaction. Chain specific fields declared by
// the chain's transactionRequest formatter travel in Extra.
type TransactionRequest struct {
	// Type is optional; when empty it is inferred by TypeOf.
	Type                 Type
	ChainID              *big.Int
	Nonce                uint64
	From                 *common.Address
	To                   *common.Address
	Value                *big.Int
	Data                 []byte
	Gas                  uint64
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	AccessList           types.AccessList
	Extra                formatter.Fields
}

// TypeOf returns the request's explicit type, or infers it from the fee fields that are set.
func TypeOf(req TransactionRequest) Type {
	switch {
	case req.Type != "":
		return req.Type
	case req.MaxFeePerGas != nil || req.MaxPriorityFeePerGas != nil:
		return TypeEIP1559
	case req.AccessList != nil && req.GasPrice != nil:
		return TypeEIP2930
	default:
		return TypeLegacy
	}
}

// Fields returns the JSON-RPC shape of the request with Extra merged in. Quantities are left as
// *big.Int; the generic transactionRequest formatter hex encodes them.
func (r TransactionRequest) Fields() formatter.Fields {
	f := formatter.Fields{}
	if r.Type != "" {
		f["type"] = string(r.Type)
	}
	if r.ChainID != nil {
		f["chainId"] = r.ChainID
	}
	if r.Nonce != 0 {
		f["nonce"] = r.Nonce
	}
	if r.From != nil {
		f["from"] = r.From.Hex()
	}
	if r.To != nil {
		f["to"] = r.To.Hex()
	}
	if r.Value != nil {
		f["value"] = r.Value
	}
	if len(r.Data) > 0 {
		f["data"] = hexutil.Encode(r.Data)
	}
	if r.Gas != 0 {
		f["gas"] = r.Gas
	}
	if r.GasPrice != nil {
		f["gasPrice"] = r.GasPrice
	}
	if r.MaxFeePerGas != nil {
		f["maxFeePerGas"] = r.MaxFeePerGas
	}
	if r.MaxPriorityFeePerGas != nil {
		f["maxPriorityFeePerGas"] = r.MaxPriorityFeePerGas
	}
	if r.AccessList != nil {
		f["accessList"] = r.AccessList
	}
	maps.Copy(f, r.Extra)

	return f
}

// Clone returns a copy of the request whose Extra map can be modified independently.
func (r TransactionRequest) Clone() TransactionRequest {
	out := r
	if r.Extra != nil {
		out.Extra = r.Extra.Clone()
	}

	return out
}
